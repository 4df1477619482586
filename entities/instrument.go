package entities

import (
	"strings"

	"astro/pkg/apperr"
)

type Instrument struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:255;not null" json:"name"`
	Aperture string `gorm:"size:255" json:"aperture"`
	Power    string `gorm:"size:255" json:"power"`
}

func (Instrument) TableName() string { return "instruments" }

func (i *Instrument) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return apperr.Validation("name", "is required")
	}
	return nil
}
