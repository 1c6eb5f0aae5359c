package model

import (
	"time"

	"github.com/google/uuid"
)

// Meta holds the server-assigned identity of a stored record.
type Meta struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewMeta mints a fresh identifier with both timestamps set to now.
func NewMeta(now time.Time) Meta {
	now = now.UTC()
	return Meta{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch returns m with UpdatedAt moved to now. UpdatedAt never goes backwards
// or repeats, even when the clock has not advanced since the last mutation.
func (m Meta) Touch(now time.Time) Meta {
	now = now.UTC()
	if !now.After(m.UpdatedAt) {
		now = m.UpdatedAt.Add(time.Nanosecond)
	}
	m.UpdatedAt = now
	return m
}

func (m Meta) Metadata() Meta {
	return m
}
