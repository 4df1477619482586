package entities

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"astro/pkg/apperr"
)

type Observation struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	ObjectID            uint      `gorm:"index;not null" json:"object_id"`
	PlaceID             uint      `gorm:"index;not null" json:"place_id"`
	InstrumentID        uint      `gorm:"index;not null" json:"instrument_id"`
	ObservationDatetime time.Time `gorm:"index;not null" json:"observation_datetime"`
	ObservationText     string    `gorm:"type:text;not null" json:"observation_text"`
	PropertyID          *uint     `gorm:"index" json:"property_id"`
	PropertyValue       *string   `gorm:"size:255" json:"property_value"`

	Object     *Object     `gorm:"foreignKey:ObjectID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Place      *Place      `gorm:"foreignKey:PlaceID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Instrument *Instrument `gorm:"foreignKey:InstrumentID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Property   *Property   `gorm:"foreignKey:PropertyID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (Observation) TableName() string { return "observations" }

// BeforeSave stores datetimes in UTC so range comparisons agree across backends.
func (o *Observation) BeforeSave(*gorm.DB) error {
	o.ObservationDatetime = o.ObservationDatetime.UTC()
	return nil
}

func (o *Observation) Validate() error {
	switch {
	case o.ObjectID == 0:
		return apperr.Validation("object_id", "is required")
	case o.PlaceID == 0:
		return apperr.Validation("place_id", "is required")
	case o.InstrumentID == 0:
		return apperr.Validation("instrument_id", "is required")
	case o.ObservationDatetime.IsZero():
		return apperr.Validation("observation_datetime", "is required")
	case strings.TrimSpace(o.ObservationText) == "":
		return apperr.Validation("observation_text", "is required")
	}
	if o.PropertyValue != nil && o.PropertyID == nil {
		return apperr.Validation("property_value", "requires property_id")
	}
	return nil
}

// ObservationView is an observation joined with the display names of what it references.
// Not persisted.
type ObservationView struct {
	Observation
	ObjectName     string  `json:"object_name"`
	PlaceName      string  `json:"place_name"`
	InstrumentName string  `json:"instrument_name"`
	PropertyName   *string `json:"property_name"`
}
