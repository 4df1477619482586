package controllerImp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"astro/entities"
	"astro/pkg/catalog"
	"astro/pkg/catalog/service"
)

// record is a row decoded from its JSON form, so one set of templates serves every entity.
type record map[string]any

func toRecord(v any) (record, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var r record
	if err := dec.Decode(&r); err != nil {
		return nil, err
	}
	return r, nil
}

func (r record) id() string { return cell(r["id"]) }

// store adapts a catalog service to form-driven pages.
type store interface {
	list(ctx context.Context) ([]record, error)
	get(ctx context.Context, id uint) (record, error)
	create(ctx context.Context, form url.Values) (record, error)
	update(ctx context.Context, id uint, form url.Values) (record, error)
	delete(ctx context.Context, id uint) error
}

type entityStore[T any] struct {
	svc      service.Service[T]
	newInput func() service.Input[T]
}

func (s entityStore[T]) list(ctx context.Context) ([]record, error) {
	rows, err := s.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	return toRecords(rows)
}

func (s entityStore[T]) get(ctx context.Context, id uint) (record, error) {
	v, err := s.svc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toRecord(v)
}

func (s entityStore[T]) create(ctx context.Context, form url.Values) (record, error) {
	in := s.newInput()
	if err := in.FromForm(form); err != nil {
		return nil, err
	}
	v, err := s.svc.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	return toRecord(v)
}

func (s entityStore[T]) update(ctx context.Context, id uint, form url.Values) (record, error) {
	in := s.newInput()
	if err := in.FromForm(form); err != nil {
		return nil, err
	}
	v, err := s.svc.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	return toRecord(v)
}

func (s entityStore[T]) delete(ctx context.Context, id uint) error { return s.svc.Delete(ctx, id) }

type observationStore struct{ svc service.ObservationService }

func (s observationStore) list(ctx context.Context) ([]record, error) {
	rows, err := s.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	return toRecords(rows)
}

func (s observationStore) get(ctx context.Context, id uint) (record, error) {
	v, err := s.svc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toRecord(v)
}

func (s observationStore) create(ctx context.Context, form url.Values) (record, error) {
	var in service.ObservationInput
	if err := in.FromForm(form); err != nil {
		return nil, err
	}
	v, err := s.svc.Create(ctx, &in)
	if err != nil {
		return nil, err
	}
	return toRecord(v)
}

func (s observationStore) update(ctx context.Context, id uint, form url.Values) (record, error) {
	var in service.ObservationInput
	if err := in.FromForm(form); err != nil {
		return nil, err
	}
	v, err := s.svc.Update(ctx, id, &in)
	if err != nil {
		return nil, err
	}
	return toRecord(v)
}

func (s observationStore) delete(ctx context.Context, id uint) error { return s.svc.Delete(ctx, id) }

func toRecords[T any](rows []T) ([]record, error) {
	out := make([]record, 0, len(rows))
	for i := range rows {
		r, err := toRecord(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// Option is one entry of a select box.
type Option struct {
	Value string
	Label string
}

func options(ctx context.Context, c catalog.Services, keys []string) (map[string][]Option, error) {
	out := make(map[string][]Option, len(keys))
	for _, k := range keys {
		var (
			opts []Option
			err  error
		)
		switch k {
		case "types":
			opts, err = namedOptions(ctx, c.Types, func(t entities.Type) (uint, string) { return t.ID, t.Name })
		case "properties":
			opts, err = namedOptions(ctx, c.Properties, func(p entities.Property) (uint, string) { return p.ID, p.Name })
		case "places":
			opts, err = namedOptions(ctx, c.Places, func(p entities.Place) (uint, string) { return p.ID, p.Name })
		case "instruments":
			opts, err = namedOptions(ctx, c.Instruments, func(i entities.Instrument) (uint, string) { return i.ID, i.Name })
		case "objects":
			opts, err = namedOptions(ctx, c.Objects, func(o entities.Object) (uint, string) { return o.ID, o.Name })
		default:
			err = fmt.Errorf("unknown option list %q", k)
		}
		if err != nil {
			return nil, err
		}
		out[k] = opts
	}
	return out, nil
}

func namedOptions[T any](ctx context.Context, svc service.Service[T], label func(T) (uint, string)) ([]Option, error) {
	rows, err := svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Option, 0, len(rows))
	for _, r := range rows {
		id, name := label(r)
		out = append(out, Option{Value: fmt.Sprint(id), Label: name})
	}
	return out, nil
}

func optionLabel(opts []Option, value string) string {
	for _, o := range opts {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}
