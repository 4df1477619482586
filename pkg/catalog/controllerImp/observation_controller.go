package controllerImp

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"astro/pkg/catalog/controller"
	"astro/pkg/catalog/service"
	"astro/pkg/export"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ObservationCtrl struct {
	svc service.ObservationService
	log *slog.Logger
}

func NewObservationCtrl(svc service.ObservationService, log *slog.Logger) *ObservationCtrl {
	if log == nil {
		log = slog.Default()
	}
	return &ObservationCtrl{svc: svc, log: log}
}

// Register mounts /search and /export ahead of the /:id routes on g.
func (h *ObservationCtrl) Register(g *echo.Group) {
	g.GET("/search", h.Search)
	g.GET("/export", h.Export)
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func (h *ObservationCtrl) List(c echo.Context) error {
	out, err := h.svc.List(c.Request().Context())
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ObservationCtrl) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, h.log, err)
	}
	out, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ObservationCtrl) Create(c echo.Context) error {
	var in service.ObservationInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	out, err := h.svc.Create(c.Request().Context(), &in)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *ObservationCtrl) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, h.log, err)
	}
	var in service.ObservationInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	out, err := h.svc.Update(c.Request().Context(), id, &in)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ObservationCtrl) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, h.log, err)
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return fail(c, h.log, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ObservationCtrl) Search(c echo.Context) error {
	f, err := service.ParseSearchFilter(c.QueryParams())
	if err != nil {
		return fail(c, h.log, err)
	}
	out, err := h.svc.Search(c.Request().Context(), f)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Export answers with the same rows as Search, as an xlsx attachment.
func (h *ObservationCtrl) Export(c echo.Context) error {
	f, err := service.ParseSearchFilter(c.QueryParams())
	if err != nil {
		return fail(c, h.log, err)
	}
	rows, err := h.svc.Search(c.Request().Context(), f)
	if err != nil {
		return fail(c, h.log, err)
	}
	var buf bytes.Buffer
	if err := export.WriteObservations(&buf, rows); err != nil {
		return fail(c, h.log, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="observations.xlsx"`)
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}

// Related lists the observations of the parent named by rel, e.g. GET /api/places/:id/observations.
func (h *ObservationCtrl) Related(rel service.Relation) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c)
		if err != nil {
			return fail(c, h.log, err)
		}
		out, err := h.svc.ListRelated(c.Request().Context(), rel, id)
		if err != nil {
			return fail(c, h.log, err)
		}
		return c.JSON(http.StatusOK, out)
	}
}

var _ controller.ObservationController = (*ObservationCtrl)(nil)
