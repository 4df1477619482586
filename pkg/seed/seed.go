// Package seed loads a demo catalog from YAML fixtures through the catalog services.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"astro/pkg/catalog"
	"astro/pkg/catalog/service"
)

//go:embed fixtures.yaml
var defaultFixtures []byte

type Fixtures struct {
	Types        []string             `yaml:"types"`
	Properties   []PropertyFixture    `yaml:"properties"`
	Places       []PlaceFixture       `yaml:"places"`
	Instruments  []InstrumentFixture  `yaml:"instruments"`
	Objects      []ObjectFixture      `yaml:"objects"`
	Observations []ObservationFixture `yaml:"observations"`
}

type PropertyFixture struct {
	Name      string `yaml:"name"`
	ValueType string `yaml:"value_type"`
}

type PlaceFixture struct {
	Name     string `yaml:"name"`
	Lat      string `yaml:"lat"`
	Lon      string `yaml:"lon"`
	Alt      string `yaml:"alt"`
	Timezone string `yaml:"timezone"`
}

type InstrumentFixture struct {
	Name     string `yaml:"name"`
	Aperture string `yaml:"aperture"`
	Power    string `yaml:"power"`
}

// ObjectFixture names its type; Props is stored as JSON text.
type ObjectFixture struct {
	Name        string         `yaml:"name"`
	Designation string         `yaml:"designation"`
	Type        string         `yaml:"type"`
	Props       map[string]any `yaml:"props"`
}

// ObservationFixture refers to the other fixtures by name.
type ObservationFixture struct {
	Object     string `yaml:"object"`
	Place      string `yaml:"place"`
	Instrument string `yaml:"instrument"`
	Datetime   string `yaml:"datetime"`
	Text       string `yaml:"text"`
	Property   string `yaml:"property"`
	Value      string `yaml:"value"`
}

// Load reads fixtures from path, or the embedded demo catalog when path is empty.
func Load(path string) (*Fixtures, error) {
	if path == "" {
		return Parse(bytes.NewReader(defaultFixtures))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

func Parse(r io.Reader) (*Fixtures, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var fx Fixtures
	if err := dec.Decode(&fx); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}
	return &fx, nil
}

type Result struct {
	Skipped      bool
	Types        int
	Properties   int
	Places       int
	Instruments  int
	Objects      int
	Observations int
}

// Run applies fx inside one transaction on db. A failed seed leaves the catalog as it was,
// so the populated-catalog guard in Apply never sees a partial seed.
func Run(ctx context.Context, db *gorm.DB, fx *Fixtures, log *slog.Logger) (Result, error) {
	var res Result
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		res, err = Apply(ctx, catalog.NewServices(tx), fx, log)
		return err
	})
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

// Apply inserts fx unless the catalog already has types. Writes go straight through s;
// use Run to make them atomic.
func Apply(ctx context.Context, s catalog.Services, fx *Fixtures, log *slog.Logger) (Result, error) {
	if log == nil {
		log = slog.Default()
	}
	var res Result
	n, err := s.Types.Count(ctx)
	if err != nil {
		return res, err
	}
	if n > 0 {
		log.Info("catalog already populated, skipping seed", slog.Int64("types", n))
		res.Skipped = true
		return res, nil
	}

	typeIDs := map[string]uint{}
	for _, name := range fx.Types {
		t, err := s.Types.Create(ctx, &service.TypeInput{Name: &name})
		if err != nil {
			return res, fmt.Errorf("type %q: %w", name, err)
		}
		typeIDs[name] = t.ID
		res.Types++
	}

	propertyIDs := map[string]uint{}
	for _, p := range fx.Properties {
		v, err := s.Properties.Create(ctx, &service.PropertyInput{Name: &p.Name, ValueType: &p.ValueType})
		if err != nil {
			return res, fmt.Errorf("property %q: %w", p.Name, err)
		}
		propertyIDs[p.Name] = v.ID
		res.Properties++
	}

	placeIDs := map[string]uint{}
	for _, p := range fx.Places {
		v, err := s.Places.Create(ctx, &service.PlaceInput{Name: &p.Name, Lat: &p.Lat, Lon: &p.Lon, Alt: &p.Alt, Timezone: &p.Timezone})
		if err != nil {
			return res, fmt.Errorf("place %q: %w", p.Name, err)
		}
		placeIDs[p.Name] = v.ID
		res.Places++
	}

	instrumentIDs := map[string]uint{}
	for _, i := range fx.Instruments {
		v, err := s.Instruments.Create(ctx, &service.InstrumentInput{Name: &i.Name, Aperture: &i.Aperture, Power: &i.Power})
		if err != nil {
			return res, fmt.Errorf("instrument %q: %w", i.Name, err)
		}
		instrumentIDs[i.Name] = v.ID
		res.Instruments++
	}

	objectIDs := map[string]uint{}
	for _, o := range fx.Objects {
		typeID, err := lookup(typeIDs, "type", o.Type)
		if err != nil {
			return res, fmt.Errorf("object %q: %w", o.Name, err)
		}
		props := ""
		if len(o.Props) > 0 {
			raw, err := json.Marshal(o.Props)
			if err != nil {
				return res, fmt.Errorf("object %q props: %w", o.Name, err)
			}
			props = string(raw)
		}
		v, err := s.Objects.Create(ctx, &service.ObjectInput{Name: &o.Name, Designation: &o.Designation, TypeID: &typeID, Props: &props})
		if err != nil {
			return res, fmt.Errorf("object %q: %w", o.Name, err)
		}
		objectIDs[o.Name] = v.ID
		res.Objects++
	}

	for i, o := range fx.Observations {
		in, err := observationInput(o, objectIDs, placeIDs, instrumentIDs, propertyIDs)
		if err != nil {
			return res, fmt.Errorf("observation %d: %w", i+1, err)
		}
		if _, err := s.Observations.Create(ctx, in); err != nil {
			return res, fmt.Errorf("observation %d: %w", i+1, err)
		}
		res.Observations++
	}

	log.Info("catalog seeded",
		slog.Int("types", res.Types),
		slog.Int("objects", res.Objects),
		slog.Int("observations", res.Observations),
	)
	return res, nil
}

func observationInput(o ObservationFixture, objects, places, instruments, properties map[string]uint) (*service.ObservationInput, error) {
	objectID, err := lookup(objects, "object", o.Object)
	if err != nil {
		return nil, err
	}
	placeID, err := lookup(places, "place", o.Place)
	if err != nil {
		return nil, err
	}
	instrumentID, err := lookup(instruments, "instrument", o.Instrument)
	if err != nil {
		return nil, err
	}
	in := &service.ObservationInput{
		ObjectID:            &objectID,
		PlaceID:             &placeID,
		InstrumentID:        &instrumentID,
		ObservationDatetime: &o.Datetime,
		ObservationText:     &o.Text,
	}
	if o.Property != "" {
		propertyID, err := lookup(properties, "property", o.Property)
		if err != nil {
			return nil, err
		}
		in.PropertyID = &propertyID
		in.PropertyValue = &o.Value
	}
	return in, nil
}

func lookup(ids map[string]uint, entity, name string) (uint, error) {
	id, ok := ids[name]
	if !ok {
		return 0, fmt.Errorf("unknown %s %q", entity, name)
	}
	return id, nil
}
