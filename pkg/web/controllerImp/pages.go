package controllerImp

// Column is one table column; Lookup names the option list used to show a label for an id.
type Column struct {
	Key    string
	Label  string
	Lookup string
	Kind   string // "datetime" or empty
}

type Field struct {
	Name     string
	Label    string
	Kind     string // text|textarea|datetime|select
	Options  string // lookup for select fields
	Required bool
	Optional bool // select gets a "(none)" entry
}

type Page struct {
	Slug     string
	Title    string
	Singular string
	Columns  []Column
	Fields   []Field
}

var (
	TypesPage = Page{
		Slug: "types", Title: "Types", Singular: "Type",
		Columns: []Column{{Key: "id", Label: "ID"}, {Key: "name", Label: "Name"}},
		Fields:  []Field{{Name: "name", Label: "Name", Kind: "text", Required: true}},
	}
	PropertiesPage = Page{
		Slug: "properties", Title: "Properties", Singular: "Property",
		Columns: []Column{{Key: "id", Label: "ID"}, {Key: "name", Label: "Name"}, {Key: "value_type", Label: "Value type"}},
		Fields: []Field{
			{Name: "name", Label: "Name", Kind: "text", Required: true},
			{Name: "value_type", Label: "Value type", Kind: "text", Required: true},
		},
	}
	PlacesPage = Page{
		Slug: "places", Title: "Places", Singular: "Place",
		Columns: []Column{
			{Key: "id", Label: "ID"}, {Key: "name", Label: "Name"}, {Key: "lat", Label: "Lat"},
			{Key: "lon", Label: "Lon"}, {Key: "alt", Label: "Alt"}, {Key: "timezone", Label: "Timezone"},
		},
		Fields: []Field{
			{Name: "name", Label: "Name", Kind: "text", Required: true},
			{Name: "lat", Label: "Latitude", Kind: "text"},
			{Name: "lon", Label: "Longitude", Kind: "text"},
			{Name: "alt", Label: "Altitude", Kind: "text"},
			{Name: "timezone", Label: "Timezone", Kind: "text"},
		},
	}
	InstrumentsPage = Page{
		Slug: "instruments", Title: "Instruments", Singular: "Instrument",
		Columns: []Column{{Key: "id", Label: "ID"}, {Key: "name", Label: "Name"}, {Key: "aperture", Label: "Aperture"}, {Key: "power", Label: "Power"}},
		Fields: []Field{
			{Name: "name", Label: "Name", Kind: "text", Required: true},
			{Name: "aperture", Label: "Aperture", Kind: "text"},
			{Name: "power", Label: "Power", Kind: "text"},
		},
	}
	ObjectsPage = Page{
		Slug: "objects", Title: "Objects", Singular: "Object",
		Columns: []Column{
			{Key: "id", Label: "ID"}, {Key: "name", Label: "Name"}, {Key: "designation", Label: "Designation"},
			{Key: "type_id", Label: "Type", Lookup: "types"}, {Key: "props", Label: "Props"},
		},
		Fields: []Field{
			{Name: "name", Label: "Name", Kind: "text", Required: true},
			{Name: "designation", Label: "Designation", Kind: "text"},
			{Name: "type_id", Label: "Type", Kind: "select", Options: "types", Required: true},
			{Name: "props", Label: "Props (JSON)", Kind: "textarea"},
		},
	}
	ObservationsPage = Page{
		Slug: "observations", Title: "Observations", Singular: "Observation",
		Columns: observationColumns,
		Fields: []Field{
			{Name: "object_id", Label: "Object", Kind: "select", Options: "objects", Required: true},
			{Name: "place_id", Label: "Place", Kind: "select", Options: "places", Required: true},
			{Name: "instrument_id", Label: "Instrument", Kind: "select", Options: "instruments", Required: true},
			{Name: "observation_datetime", Label: "Date and time (UTC)", Kind: "datetime", Required: true},
			{Name: "observation_text", Label: "Notes", Kind: "textarea", Required: true},
			{Name: "property_id", Label: "Property", Kind: "select", Options: "properties", Optional: true},
			{Name: "property_value", Label: "Value", Kind: "text"},
		},
	}
)

var observationColumns = []Column{
	{Key: "id", Label: "ID"},
	{Key: "observation_datetime", Label: "Date (UTC)", Kind: "datetime"},
	{Key: "object_name", Label: "Object"},
	{Key: "place_name", Label: "Place"},
	{Key: "instrument_name", Label: "Instrument"},
	{Key: "property_name", Label: "Property"},
	{Key: "property_value", Label: "Value"},
	{Key: "observation_text", Label: "Notes"},
}

// Nav lists the entity pages in menu order.
var Nav = []Page{TypesPage, PropertiesPage, PlacesPage, InstrumentsPage, ObjectsPage, ObservationsPage}

func (p Page) columnLookups() []string {
	var keys []string
	for _, c := range p.Columns {
		keys = append(keys, c.Lookup)
	}
	return distinct(keys)
}

func (p Page) fieldLookups() []string {
	var keys []string
	for _, f := range p.Fields {
		keys = append(keys, f.Options)
	}
	return distinct(keys)
}

func distinct(keys []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, k := range keys {
		if k != "" && !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}
