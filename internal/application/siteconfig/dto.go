package siteconfig

import (
	"time"

	"github.com/google/uuid"
	"github.com/intercel/backend/internal/domain/siteconfig"
)

// UpsertEntryRequest sets one config key. An empty Type keeps the stored tag, or string for new keys.
type UpsertEntryRequest struct {
	Value string `json:"value"`
	Type  string `json:"type" binding:"omitempty,oneof=string number boolean json"`
}

// EntryResponse represents a config entry in admin API responses
type EntryResponse struct {
	ID        uuid.UUID `json:"id"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	Type      string    `json:"type"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToEntryResponse converts a domain Entry to EntryResponse
func ToEntryResponse(e *siteconfig.Entry) EntryResponse {
	return EntryResponse{
		ID:        e.ID,
		Key:       e.Key,
		Value:     e.Value,
		Type:      string(e.Type),
		UpdatedAt: e.UpdatedAt,
	}
}
