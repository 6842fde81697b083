package shared

import (
	"bytes"
	"time"

	"github.com/google/uuid"
)

// BaseEntity carries identity and timestamps for catalog entities
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity creates a new base entity with generated ID
func NewBaseEntity() BaseEntity {
	now := time.Now().UTC()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch records a modification
func (e *BaseEntity) Touch() {
	e.UpdatedAt = time.Now().UTC()
}

// CreatedBefore orders entities by creation time, then by id bytes,
// so two entities never compare equal unless they are the same record.
func (e *BaseEntity) CreatedBefore(other *BaseEntity) bool {
	if !e.CreatedAt.Equal(other.CreatedAt) {
		return e.CreatedAt.Before(other.CreatedAt)
	}
	return bytes.Compare(e.ID[:], other.ID[:]) < 0
}
