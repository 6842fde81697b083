package siteconfig

import "context"

// Repository defines the interface for config entry persistence
type Repository interface {
	// FindAll returns every entry ordered by key
	FindAll(ctx context.Context) ([]Entry, error)

	// FindByKey finds one entry by its key
	FindByKey(ctx context.Context, key string) (*Entry, error)

	// Save creates or updates an entry
	Save(ctx context.Context, entry *Entry) error

	// DeleteByKey deletes one entry by its key
	DeleteByKey(ctx context.Context, key string) error
}
