package controllerImp

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"astro/entities"
	"astro/internal/logging"
	"astro/pkg/apperr"
	"astro/pkg/catalog"
	"astro/pkg/catalog/service"
	"astro/pkg/middleware"
)

const recentObservations = 5

type WebCtrl struct {
	cat   catalog.Services
	log   *slog.Logger
	pages []*entityPages
}

func New(cat catalog.Services, log *slog.Logger) *WebCtrl {
	if log == nil {
		log = slog.Default()
	}
	h := &WebCtrl{cat: cat, log: log}
	stores := map[string]store{
		TypesPage.Slug:        entityStore[entities.Type]{svc: cat.Types, newInput: func() service.Input[entities.Type] { return &service.TypeInput{} }},
		PropertiesPage.Slug:   entityStore[entities.Property]{svc: cat.Properties, newInput: func() service.Input[entities.Property] { return &service.PropertyInput{} }},
		PlacesPage.Slug:       entityStore[entities.Place]{svc: cat.Places, newInput: func() service.Input[entities.Place] { return &service.PlaceInput{} }},
		InstrumentsPage.Slug:  entityStore[entities.Instrument]{svc: cat.Instruments, newInput: func() service.Input[entities.Instrument] { return &service.InstrumentInput{} }},
		ObjectsPage.Slug:      entityStore[entities.Object]{svc: cat.Objects, newInput: func() service.Input[entities.Object] { return &service.ObjectInput{} }},
		ObservationsPage.Slug: observationStore{svc: cat.Observations},
	}
	for _, p := range Nav {
		h.pages = append(h.pages, &entityPages{page: p, store: stores[p.Slug], web: h})
	}
	return h
}

func (h *WebCtrl) Register(e *echo.Echo) {
	e.GET("/", h.Dashboard)
	g := e.Group("/web")
	g.GET("/search", h.Search)
	for _, p := range h.pages {
		p.register(g)
	}
}

// viewData is the template context shared by all pages.
type viewData struct {
	Title   string
	Nav     []Page
	Flash   *middleware.Flash
	Error   string
	Page    Page
	Columns []Column
	Rows    []tableRow
	Fields  []formField
	Action  string
	Editing bool

	Counts []countItem
	Search searchForm
	Export string
}

type tableRow struct {
	ID    string
	Cells []string
}

type formField struct {
	Field
	Value   string
	Choices []Option
}

type countItem struct {
	Title string
	Slug  string
	Count int64
}

type searchForm struct {
	StartDate    string
	EndDate      string
	ObjectID     string
	PlaceID      string
	InstrumentID string
	Objects      []Option
	Places       []Option
	Instruments  []Option
}

func (h *WebCtrl) render(c echo.Context, status int, name string, v viewData) error {
	v.Nav = Nav
	v.Flash = middleware.GetFlash(c)
	return c.Render(status, name, v)
}

func (h *WebCtrl) fail(c echo.Context, err error) error {
	status := apperr.HTTPStatus(err)
	if status >= 500 {
		logging.FromContext(c.Request().Context(), h.log).Error("page failed",
			slog.String("path", c.Path()), slog.String("error", err.Error()))
	}
	return echo.NewHTTPError(status, apperr.PublicMessage(err))
}

func (h *WebCtrl) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()
	counters := []func(context.Context) (int64, error){
		h.cat.Types.Count, h.cat.Properties.Count, h.cat.Places.Count,
		h.cat.Instruments.Count, h.cat.Objects.Count, h.cat.Observations.Count,
	}
	var counts []countItem
	for i, p := range Nav {
		n, err := counters[i](ctx)
		if err != nil {
			return h.fail(c, err)
		}
		counts = append(counts, countItem{Title: p.Title, Slug: p.Slug, Count: n})
	}

	recent, err := h.cat.Observations.Recent(ctx, recentObservations)
	if err != nil {
		return h.fail(c, err)
	}
	recs, err := toRecords(recent)
	if err != nil {
		return h.fail(c, err)
	}
	return h.render(c, http.StatusOK, "dashboard", viewData{
		Title:   "Dashboard",
		Counts:  counts,
		Columns: observationColumns,
		Rows:    buildRows(observationColumns, recs, nil),
	})
}

func (h *WebCtrl) Search(c echo.Context) error {
	ctx := c.Request().Context()
	q := c.QueryParams()
	opts, err := options(ctx, h.cat, []string{"objects", "places", "instruments"})
	if err != nil {
		return h.fail(c, err)
	}
	v := viewData{
		Title:   "Search observations",
		Columns: observationColumns,
		Search: searchForm{
			StartDate:    q.Get("start_date"),
			EndDate:      q.Get("end_date"),
			ObjectID:     q.Get("object_id"),
			PlaceID:      q.Get("place_id"),
			InstrumentID: q.Get("instrument_id"),
			Objects:      opts["objects"],
			Places:       opts["places"],
			Instruments:  opts["instruments"],
		},
	}

	f, err := service.ParseSearchFilter(q)
	if err != nil {
		v.Error = apperr.PublicMessage(err)
		return h.render(c, apperr.HTTPStatus(err), "search", v)
	}
	found, err := h.cat.Observations.Search(ctx, f)
	if err != nil {
		return h.fail(c, err)
	}
	recs, err := toRecords(found)
	if err != nil {
		return h.fail(c, err)
	}
	v.Rows = buildRows(observationColumns, recs, nil)
	v.Export = "/api/observations/export"
	if enc := service.Encode(f).Encode(); enc != "" {
		v.Export += "?" + enc
	}
	return h.render(c, http.StatusOK, "search", v)
}

// entityPages serves list, form and mutation routes for one entity.
type entityPages struct {
	page  Page
	store store
	web   *WebCtrl
}

func (p *entityPages) register(g *echo.Group) {
	base := "/" + p.page.Slug
	g.GET(base, p.list)
	g.GET(base+"/new", p.newForm)
	g.POST(base, p.create)
	g.GET(base+"/:id/edit", p.editForm)
	g.POST(base+"/:id", p.update)
	g.POST(base+"/:id/delete", p.delete)
}

func (p *entityPages) listURL() string { return "/web/" + p.page.Slug }

func (p *entityPages) list(c echo.Context) error {
	ctx := c.Request().Context()
	recs, err := p.store.list(ctx)
	if err != nil {
		return p.web.fail(c, err)
	}
	opts, err := options(ctx, p.web.cat, p.page.columnLookups())
	if err != nil {
		return p.web.fail(c, err)
	}
	return p.web.render(c, http.StatusOK, "list", viewData{
		Title:   p.page.Title,
		Page:    p.page,
		Columns: p.page.Columns,
		Rows:    buildRows(p.page.Columns, recs, opts),
	})
}

func (p *entityPages) newForm(c echo.Context) error {
	return p.renderForm(c, http.StatusOK, url.Values{}, p.listURL(), false, "")
}

func (p *entityPages) editForm(c echo.Context) error {
	id, err := service.ParseID("id", c.Param("id"))
	if err != nil {
		return p.redirectWithError(c, err)
	}
	rec, err := p.store.get(c.Request().Context(), id)
	if err != nil {
		if apperr.HTTPStatus(err) >= 500 {
			return p.web.fail(c, err)
		}
		return p.redirectWithError(c, err)
	}
	return p.renderForm(c, http.StatusOK, recordValues(p.page.Fields, rec), p.listURL()+"/"+rec.id(), true, "")
}

func (p *entityPages) create(c echo.Context) error {
	form, err := c.FormParams()
	if err != nil {
		return p.renderForm(c, http.StatusBadRequest, url.Values{}, p.listURL(), false, "invalid form")
	}
	rec, err := p.store.create(c.Request().Context(), form)
	if err != nil {
		return p.renderForm(c, apperr.HTTPStatus(err), form, p.listURL(), false, apperr.PublicMessage(err))
	}
	middleware.SetFlash(c, "success", p.page.Singular+" "+rec.id()+" created")
	return c.Redirect(http.StatusSeeOther, p.listURL())
}

func (p *entityPages) update(c echo.Context) error {
	id, err := service.ParseID("id", c.Param("id"))
	if err != nil {
		return p.redirectWithError(c, err)
	}
	action := p.listURL() + "/" + c.Param("id")
	form, err := c.FormParams()
	if err != nil {
		return p.renderForm(c, http.StatusBadRequest, url.Values{}, action, true, "invalid form")
	}
	if _, err := p.store.update(c.Request().Context(), id, form); err != nil {
		if apperr.HTTPStatus(err) == http.StatusNotFound {
			return p.redirectWithError(c, err)
		}
		return p.renderForm(c, apperr.HTTPStatus(err), form, action, true, apperr.PublicMessage(err))
	}
	middleware.SetFlash(c, "success", p.page.Singular+" "+c.Param("id")+" updated")
	return c.Redirect(http.StatusSeeOther, p.listURL())
}

func (p *entityPages) delete(c echo.Context) error {
	id, err := service.ParseID("id", c.Param("id"))
	if err != nil {
		return p.redirectWithError(c, err)
	}
	if err := p.store.delete(c.Request().Context(), id); err != nil {
		return p.redirectWithError(c, err)
	}
	middleware.SetFlash(c, "success", p.page.Singular+" "+c.Param("id")+" deleted")
	return c.Redirect(http.StatusSeeOther, p.listURL())
}

func (p *entityPages) redirectWithError(c echo.Context, err error) error {
	middleware.SetFlash(c, "error", apperr.PublicMessage(err))
	return c.Redirect(http.StatusSeeOther, p.listURL())
}

func (p *entityPages) renderForm(c echo.Context, status int, values url.Values, action string, editing bool, msg string) error {
	opts, err := options(c.Request().Context(), p.web.cat, p.page.fieldLookups())
	if err != nil {
		return p.web.fail(c, err)
	}
	fields := make([]formField, 0, len(p.page.Fields))
	for _, f := range p.page.Fields {
		ff := formField{Field: f, Value: values.Get(f.Name)}
		if f.Kind == "select" {
			if f.Optional {
				ff.Choices = append(ff.Choices, Option{Value: "", Label: "(none)"})
			}
			ff.Choices = append(ff.Choices, opts[f.Options]...)
		}
		fields = append(fields, ff)
	}
	title := "New " + p.page.Singular
	if editing {
		title = "Edit " + p.page.Singular
	}
	return p.web.render(c, status, "form", viewData{
		Title:   title,
		Page:    p.page,
		Fields:  fields,
		Action:  action,
		Editing: editing,
		Error:   msg,
	})
}

func buildRows(cols []Column, recs []record, opts map[string][]Option) []tableRow {
	rows := make([]tableRow, 0, len(recs))
	for _, r := range recs {
		row := tableRow{ID: r.id(), Cells: make([]string, 0, len(cols))}
		for _, col := range cols {
			v := cell(r[col.Key])
			if col.Kind == "datetime" {
				v = timeCell(r[col.Key], displayTime)
			}
			if col.Lookup != "" {
				v = optionLabel(opts[col.Lookup], v)
			}
			row.Cells = append(row.Cells, v)
		}
		rows = append(rows, row)
	}
	return rows
}

const datetimeLocal = "2006-01-02T15:04:05"

// recordValues turns a stored row into form values; datetimes use the datetime-local layout.
func recordValues(fields []Field, r record) url.Values {
	out := url.Values{}
	for _, f := range fields {
		v := cell(r[f.Name])
		if f.Kind == "datetime" {
			v = timeCell(r[f.Name], datetimeLocal)
		}
		if f.Kind == "select" && v == "0" {
			v = ""
		}
		out.Set(f.Name, v)
	}
	return out
}
