package controllerImp

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"astro/pkg/catalog/controller"
	"astro/pkg/catalog/service"
)

// ResourceCtrl serves the JSON CRUD endpoints of one entity.
type ResourceCtrl[T any] struct {
	svc      service.Service[T]
	newInput func() service.Input[T]
	log      *slog.Logger
}

func NewResource[T any](svc service.Service[T], newInput func() service.Input[T], log *slog.Logger) *ResourceCtrl[T] {
	if log == nil {
		log = slog.Default()
	}
	return &ResourceCtrl[T]{svc: svc, newInput: newInput, log: log}
}

func (h *ResourceCtrl[T]) Register(g *echo.Group) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func (h *ResourceCtrl[T]) List(c echo.Context) error {
	out, err := h.svc.List(c.Request().Context())
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ResourceCtrl[T]) Get(c echo.Context) error {
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

func (h *ResourceCtrl[T]) Create(c echo.Context) error {
	in := h.newInput()
	if err := c.Bind(in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	out, err := h.svc.Create(c.Request().Context(), in)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *ResourceCtrl[T]) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, h.log, err)
	}
	in := h.newInput()
	if err := c.Bind(in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	out, err := h.svc.Update(c.Request().Context(), id, in)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ResourceCtrl[T]) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, h.log, err)
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return fail(c, h.log, err)
	}
	return c.NoContent(http.StatusNoContent)
}

var _ controller.ResourceController = (*ResourceCtrl[struct{}])(nil)
