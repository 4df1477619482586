package repository

import "astro/entities"

// ForeignKey describes a column of T pointing at another table.
type ForeignKey[T any] struct {
	Field  string // column and JSON name
	Table  string
	Entity string
	Value  func(*T) *uint // nil when the optional reference is unset
}

// Reference is a child table whose Column points back at the described entity.
type Reference struct {
	Table  string
	Column string
}

// Descriptor tells the generic repository how an entity relates to the rest of the schema.
type Descriptor[T any] struct {
	Entity       string
	Table        string
	ForeignKeys  []ForeignKey[T]
	ReferencedBy []Reference
}

var Types = Descriptor[entities.Type]{
	Entity:       "type",
	Table:        "types",
	ReferencedBy: []Reference{{Table: "objects", Column: "type_id"}},
}

var Properties = Descriptor[entities.Property]{
	Entity:       "property",
	Table:        "properties",
	ReferencedBy: []Reference{{Table: "observations", Column: "property_id"}},
}

var Places = Descriptor[entities.Place]{
	Entity:       "place",
	Table:        "places",
	ReferencedBy: []Reference{{Table: "observations", Column: "place_id"}},
}

var Instruments = Descriptor[entities.Instrument]{
	Entity:       "instrument",
	Table:        "instruments",
	ReferencedBy: []Reference{{Table: "observations", Column: "instrument_id"}},
}

var Objects = Descriptor[entities.Object]{
	Entity: "object",
	Table:  "objects",
	ForeignKeys: []ForeignKey[entities.Object]{
		{Field: "type_id", Table: "types", Entity: "type", Value: func(o *entities.Object) *uint { return &o.TypeID }},
	},
	ReferencedBy: []Reference{{Table: "observations", Column: "object_id"}},
}

var Observations = Descriptor[entities.Observation]{
	Entity: "observation",
	Table:  "observations",
	ForeignKeys: []ForeignKey[entities.Observation]{
		{Field: "object_id", Table: "objects", Entity: "object", Value: func(o *entities.Observation) *uint { return &o.ObjectID }},
		{Field: "place_id", Table: "places", Entity: "place", Value: func(o *entities.Observation) *uint { return &o.PlaceID }},
		{Field: "instrument_id", Table: "instruments", Entity: "instrument", Value: func(o *entities.Observation) *uint { return &o.InstrumentID }},
		{Field: "property_id", Table: "properties", Entity: "property", Value: func(o *entities.Observation) *uint { return o.PropertyID }},
	},
}
