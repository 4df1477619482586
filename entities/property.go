package entities

import (
	"strings"

	"astro/pkg/apperr"
)

// Property is a measurable quantity an observation can be annotated with.
type Property struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"size:255;not null" json:"name"`
	ValueType string `gorm:"size:255;not null" json:"value_type"` // float|string|...
}

func (Property) TableName() string { return "properties" }

func (p *Property) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return apperr.Validation("name", "is required")
	}
	if strings.TrimSpace(p.ValueType) == "" {
		return apperr.Validation("value_type", "is required")
	}
	return nil
}
