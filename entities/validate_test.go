package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"astro/pkg/apperr"
)

func TestValidate(t *testing.T) {
	ptr := func(s string) *string { return &s }
	one := uint(1)
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		in    interface{ Validate() error }
		field string // empty when valid
	}{
		{"type ok", &Type{Name: "Planet"}, ""},
		{"type blank name", &Type{Name: "  "}, "name"},
		{"property missing value type", &Property{Name: "Magnitude"}, "value_type"},
		{"property ok", &Property{Name: "Magnitude", ValueType: "float"}, ""},
		{"place ok without coordinates", &Place{Name: "Greenwich"}, ""},
		{"instrument blank", &Instrument{}, "name"},
		{"object missing type", &Object{Name: "Europa"}, "type_id"},
		{"object bad props", &Object{Name: "Europa", TypeID: 1, Props: "{moons:"}, "props"},
		{"object ok", &Object{Name: "Europa", TypeID: 1, Props: `{"moons": 0}`}, ""},
		{"observation missing place", &Observation{ObjectID: 1, InstrumentID: 1, ObservationDatetime: at, ObservationText: "x"}, "place_id"},
		{"observation missing text", &Observation{ObjectID: 1, PlaceID: 1, InstrumentID: 1, ObservationDatetime: at}, "observation_text"},
		{"observation orphan value", &Observation{ObjectID: 1, PlaceID: 1, InstrumentID: 1, ObservationDatetime: at, ObservationText: "x", PropertyValue: ptr("3.4")}, "property_value"},
		{"observation ok", &Observation{ObjectID: 1, PlaceID: 1, InstrumentID: 1, ObservationDatetime: at, ObservationText: "x", PropertyID: &one, PropertyValue: ptr("3.4")}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.in.Validate()
			if tc.field == "" {
				assert.NoError(t, err)
				return
			}
			var ve *apperr.ValidationError
			if assert.ErrorAs(t, err, &ve) {
				assert.Equal(t, tc.field, ve.Field)
			}
		})
	}
}
