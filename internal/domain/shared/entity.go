package shared

import (
	"time"
)

// Entity is the base interface for all domain entities
type Entity interface {
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
}

// Timestamps provides the audit timestamps shared by all entities.
// Identifiers differ per aggregate (numeric for customers and channels,
// strings for shops and categories) so they live on the aggregates.
type Timestamps struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GetCreatedAt returns the creation timestamp
func (e *Timestamps) GetCreatedAt() time.Time {
	return e.CreatedAt
}

// GetUpdatedAt returns the last update timestamp
func (e *Timestamps) GetUpdatedAt() time.Time {
	return e.UpdatedAt
}

// Touch sets UpdatedAt to now
func (e *Timestamps) Touch() {
	e.UpdatedAt = time.Now()
}

// NewTimestamps returns timestamps set to now
func NewTimestamps() Timestamps {
	now := time.Now()
	return Timestamps{
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SoftDeletable is embedded by entities that are retired instead of removed
type SoftDeletable struct {
	DeletedAt *time.Time
}

// IsDeleted reports whether the entity has been soft deleted
func (s *SoftDeletable) IsDeleted() bool {
	return s.DeletedAt != nil
}

// MarkDeleted stamps the deletion time
func (s *SoftDeletable) MarkDeleted() {
	now := time.Now()
	s.DeletedAt = &now
}
