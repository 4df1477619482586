package entities

import (
	"strings"

	"astro/pkg/apperr"
)

// Type classifies celestial objects (galaxy, star, planet, ...).
type Type struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:255;not null" json:"name"`
}

func (Type) TableName() string { return "types" }

func (t *Type) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return apperr.Validation("name", "is required")
	}
	return nil
}
