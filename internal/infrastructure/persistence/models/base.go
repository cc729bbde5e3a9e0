package models

import (
	"encoding/json"
	"time"

	"github.com/shopcrm/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// TimestampModel provides the audit columns shared by all models.
// It maps to the domain's Timestamps.
type TimestampModel struct {
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts TimestampModel to domain Timestamps
func (m *TimestampModel) ToDomain() shared.Timestamps {
	return shared.Timestamps{
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainTimestamps populates TimestampModel from domain Timestamps
func (m *TimestampModel) FromDomainTimestamps(t shared.Timestamps) {
	m.CreatedAt = t.CreatedAt
	m.UpdatedAt = t.UpdatedAt
}

// softDeleteToDomain converts a GORM soft delete column to the domain form
func softDeleteToDomain(d gorm.DeletedAt) shared.SoftDeletable {
	if !d.Valid {
		return shared.SoftDeletable{}
	}
	t := d.Time
	return shared.SoftDeletable{DeletedAt: &t}
}

// softDeleteFromDomain converts the domain soft delete marker to a GORM column
func softDeleteFromDomain(s shared.SoftDeletable) gorm.DeletedAt {
	if s.DeletedAt == nil {
		return gorm.DeletedAt{}
	}
	return gorm.DeletedAt{Time: *s.DeletedAt, Valid: true}
}

func encodeStrings(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func decodeStrings(raw string) []string {
	values := []string{}
	if raw == "" {
		return values
	}
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return []string{}
	}
	return values
}
