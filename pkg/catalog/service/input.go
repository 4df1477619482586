package service

import (
	"net/url"
	"strconv"
	"strings"

	"astro/entities"
	"astro/pkg/apperr"
)

type TypeInput struct {
	Name *string `json:"name"`
}

func (in *TypeInput) Apply(t *entities.Type) error {
	setString(&t.Name, in.Name)
	return nil
}

func (in *TypeInput) FromForm(f url.Values) error {
	in.Name = formString(f, "name")
	return nil
}

type PropertyInput struct {
	Name      *string `json:"name"`
	ValueType *string `json:"value_type"`
}

func (in *PropertyInput) Apply(p *entities.Property) error {
	setString(&p.Name, in.Name)
	setString(&p.ValueType, in.ValueType)
	return nil
}

func (in *PropertyInput) FromForm(f url.Values) error {
	in.Name = formString(f, "name")
	in.ValueType = formString(f, "value_type")
	return nil
}

type PlaceInput struct {
	Name     *string `json:"name"`
	Lat      *string `json:"lat"`
	Lon      *string `json:"lon"`
	Alt      *string `json:"alt"`
	Timezone *string `json:"timezone"`
}

func (in *PlaceInput) Apply(p *entities.Place) error {
	setString(&p.Name, in.Name)
	setString(&p.Lat, in.Lat)
	setString(&p.Lon, in.Lon)
	setString(&p.Alt, in.Alt)
	setString(&p.Timezone, in.Timezone)
	return nil
}

func (in *PlaceInput) FromForm(f url.Values) error {
	in.Name = formString(f, "name")
	in.Lat = formString(f, "lat")
	in.Lon = formString(f, "lon")
	in.Alt = formString(f, "alt")
	in.Timezone = formString(f, "timezone")
	return nil
}

type InstrumentInput struct {
	Name     *string `json:"name"`
	Aperture *string `json:"aperture"`
	Power    *string `json:"power"`
}

func (in *InstrumentInput) Apply(i *entities.Instrument) error {
	setString(&i.Name, in.Name)
	setString(&i.Aperture, in.Aperture)
	setString(&i.Power, in.Power)
	return nil
}

func (in *InstrumentInput) FromForm(f url.Values) error {
	in.Name = formString(f, "name")
	in.Aperture = formString(f, "aperture")
	in.Power = formString(f, "power")
	return nil
}

type ObjectInput struct {
	Name        *string `json:"name"`
	Designation *string `json:"designation"`
	TypeID      *uint   `json:"type_id"`
	Props       *string `json:"props"`
}

func (in *ObjectInput) Apply(o *entities.Object) error {
	setString(&o.Name, in.Name)
	setString(&o.Designation, in.Designation)
	setString(&o.Props, in.Props)
	if in.TypeID != nil {
		o.TypeID = *in.TypeID
	}
	return nil
}

func (in *ObjectInput) FromForm(f url.Values) (err error) {
	in.Name = formString(f, "name")
	in.Designation = formString(f, "designation")
	in.Props = formString(f, "props")
	in.TypeID, err = formUint(f, "type_id")
	return err
}

// ObservationInput carries the datetime as text; see ParseDateTime for accepted layouts.
// property_id 0 clears the property together with its value.
type ObservationInput struct {
	ObjectID            *uint   `json:"object_id"`
	PlaceID             *uint   `json:"place_id"`
	InstrumentID        *uint   `json:"instrument_id"`
	ObservationDatetime *string `json:"observation_datetime"`
	ObservationText     *string `json:"observation_text"`
	PropertyID          *uint   `json:"property_id"`
	PropertyValue       *string `json:"property_value"`
}

func (in *ObservationInput) Apply(o *entities.Observation) error {
	if in.ObjectID != nil {
		o.ObjectID = *in.ObjectID
	}
	if in.PlaceID != nil {
		o.PlaceID = *in.PlaceID
	}
	if in.InstrumentID != nil {
		o.InstrumentID = *in.InstrumentID
	}
	if in.ObservationDatetime != nil {
		if strings.TrimSpace(*in.ObservationDatetime) == "" {
			return apperr.Validation("observation_datetime", "is required")
		}
		t, _, err := ParseDateTime(*in.ObservationDatetime)
		if err != nil {
			return apperr.Validation("observation_datetime", err.Error())
		}
		o.ObservationDatetime = t
	}
	setString(&o.ObservationText, in.ObservationText)
	if in.PropertyID != nil {
		if *in.PropertyID == 0 {
			o.PropertyID, o.PropertyValue = nil, nil
		} else {
			id := *in.PropertyID
			o.PropertyID = &id
		}
	}
	if in.PropertyValue != nil {
		if v := strings.TrimSpace(*in.PropertyValue); v == "" {
			o.PropertyValue = nil
		} else {
			o.PropertyValue = &v
		}
	}
	return nil
}

func (in *ObservationInput) FromForm(f url.Values) error {
	var err error
	if in.ObjectID, err = formUint(f, "object_id"); err != nil {
		return err
	}
	if in.PlaceID, err = formUint(f, "place_id"); err != nil {
		return err
	}
	if in.InstrumentID, err = formUint(f, "instrument_id"); err != nil {
		return err
	}
	if in.PropertyID, err = formUint(f, "property_id"); err != nil {
		return err
	}
	in.ObservationDatetime = formString(f, "observation_datetime")
	in.ObservationText = formString(f, "observation_text")
	in.PropertyValue = formString(f, "property_value")
	return nil
}

// ParseID parses a path or form id. Zero is rejected.
func ParseID(field, s string) (uint, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 0)
	if err != nil || n == 0 {
		return 0, apperr.Validation(field, "must be a positive integer")
	}
	return uint(n), nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func formString(f url.Values, key string) *string {
	if !f.Has(key) {
		return nil
	}
	v := f.Get(key)
	return &v
}

// formUint treats an empty field as 0 so required ids fail validation and optional ones clear.
func formUint(f url.Values, key string) (*uint, error) {
	if !f.Has(key) {
		return nil, nil
	}
	v := strings.TrimSpace(f.Get(key))
	if v == "" {
		var zero uint
		return &zero, nil
	}
	n, err := strconv.ParseUint(v, 10, 0)
	if err != nil {
		return nil, apperr.Validation(key, "must be a positive integer")
	}
	u := uint(n)
	return &u, nil
}
