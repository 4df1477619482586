package entities

import (
	"encoding/json"
	"strings"

	"astro/pkg/apperr"
)

// Object is a catalogued celestial object. Props is free-form JSON text.
type Object struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:255;not null" json:"name"`
	Designation string `gorm:"size:255" json:"designation"`
	TypeID      uint   `gorm:"index;not null" json:"type_id"`
	Props       string `gorm:"type:text" json:"props"`

	Type *Type `gorm:"foreignKey:TypeID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (Object) TableName() string { return "objects" }

func (o *Object) Validate() error {
	if strings.TrimSpace(o.Name) == "" {
		return apperr.Validation("name", "is required")
	}
	if o.TypeID == 0 {
		return apperr.Validation("type_id", "is required")
	}
	if p := strings.TrimSpace(o.Props); p != "" && !json.Valid([]byte(p)) {
		return apperr.Validation("props", "must be valid JSON")
	}
	return nil
}
