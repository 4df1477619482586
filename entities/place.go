package entities

import (
	"strings"

	"astro/pkg/apperr"
)

type Place struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:255;not null" json:"name"`
	Lat      string `gorm:"size:255" json:"lat"`
	Lon      string `gorm:"size:255" json:"lon"`
	Alt      string `gorm:"size:255" json:"alt"`
	Timezone string `gorm:"size:255" json:"timezone"`
}

func (Place) TableName() string { return "places" }

func (p *Place) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return apperr.Validation("name", "is required")
	}
	return nil
}
