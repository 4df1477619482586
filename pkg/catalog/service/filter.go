package service

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"astro/pkg/apperr"
	"astro/pkg/catalog/repository"
)

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

const dateLayout = "2006-01-02"

// ParseDateTime accepts RFC3339 and the naive layouts browsers and people type.
// Naive values are taken as UTC. dateOnly reports a bare YYYY-MM-DD.
func ParseDateTime(s string) (t time.Time, dateOnly bool, err error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), false, nil
		}
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t.UTC(), true, nil
	}
	return time.Time{}, false, fmt.Errorf("invalid datetime %q", s)
}

// ParseSearchFilter reads start_date, end_date, object_id, place_id and instrument_id.
// Empty values and "all" are treated as absent. A date-only end_date covers that whole day.
func ParseSearchFilter(q url.Values) (repository.SearchFilter, error) {
	var f repository.SearchFilter

	if v := searchValue(q, "start_date"); v != "" {
		t, _, err := ParseDateTime(v)
		if err != nil {
			return f, apperr.Validation("start_date", err.Error())
		}
		f.Start = &t
	}
	if v := searchValue(q, "end_date"); v != "" {
		t, dateOnly, err := ParseDateTime(v)
		if err != nil {
			return f, apperr.Validation("end_date", err.Error())
		}
		if dateOnly {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		f.End = &t
	}
	if f.Start != nil && f.End != nil && f.End.Before(*f.Start) {
		return f, apperr.Validation("end_date", "is before start_date")
	}

	for _, p := range []struct {
		key string
		dst **uint
	}{
		{"object_id", &f.ObjectID},
		{"place_id", &f.PlaceID},
		{"instrument_id", &f.InstrumentID},
	} {
		v := searchValue(q, p.key)
		if v == "" {
			continue
		}
		id, err := ParseID(p.key, v)
		if err != nil {
			return f, err
		}
		*p.dst = &id
	}
	return f, nil
}

func searchValue(q url.Values, key string) string {
	v := strings.TrimSpace(q.Get(key))
	if strings.EqualFold(v, "all") {
		return ""
	}
	return v
}

// Encode renders f back into query parameters, e.g. for an export link.
func Encode(f repository.SearchFilter) url.Values {
	q := url.Values{}
	if f.Start != nil {
		q.Set("start_date", f.Start.UTC().Format(time.RFC3339Nano))
	}
	if f.End != nil {
		q.Set("end_date", f.End.UTC().Format(time.RFC3339Nano))
	}
	if f.ObjectID != nil {
		q.Set("object_id", fmt.Sprint(*f.ObjectID))
	}
	if f.PlaceID != nil {
		q.Set("place_id", fmt.Sprint(*f.PlaceID))
	}
	if f.InstrumentID != nil {
		q.Set("instrument_id", fmt.Sprint(*f.InstrumentID))
	}
	return q
}
