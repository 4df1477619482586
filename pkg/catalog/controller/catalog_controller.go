package controller

import (
	"github.com/labstack/echo/v4"

	"astro/pkg/catalog/service"
)

type ResourceController interface {
	Register(g *echo.Group)
	List(c echo.Context) error
	Get(c echo.Context) error
	Create(c echo.Context) error
	Update(c echo.Context) error
	Delete(c echo.Context) error
}

type ObservationController interface {
	ResourceController
	Search(c echo.Context) error
	Export(c echo.Context) error
	Related(rel service.Relation) echo.HandlerFunc
}
