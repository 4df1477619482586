package router

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	"astro/entities"
	"astro/pkg/catalog"
	"astro/pkg/catalog/controller"
	apiCtrl "astro/pkg/catalog/controllerImp"
	"astro/pkg/catalog/service"
)

// API holds the JSON controllers mounted under /api.
type API struct {
	Types        controller.ResourceController
	Properties   controller.ResourceController
	Places       controller.ResourceController
	Instruments  controller.ResourceController
	Objects      controller.ResourceController
	Observations controller.ObservationController
}

func New(
	e *echo.Echo,
	api API,
	webCtrl interface{ Register(*echo.Echo) },
	healthCtrl interface{ Health(echo.Context) error },
	metricsHandler echo.HandlerFunc,
) *echo.Echo {
	e.GET("/health", healthCtrl.Health)
	if metricsHandler != nil {
		e.GET("/metrics", metricsHandler)
	}

	g := e.Group("/api")
	api.Types.Register(g.Group("/types"))
	api.Properties.Register(g.Group("/properties"))
	api.Places.Register(g.Group("/places"))
	api.Instruments.Register(g.Group("/instruments"))
	api.Objects.Register(g.Group("/objects"))
	api.Observations.Register(g.Group("/observations"))

	g.GET("/objects/:id/observations", api.Observations.Related(service.RelObject))
	g.GET("/places/:id/observations", api.Observations.Related(service.RelPlace))
	g.GET("/instruments/:id/observations", api.Observations.Related(service.RelInstrument))

	if webCtrl != nil {
		webCtrl.Register(e)
	}
	return e
}

// NewAPI builds the JSON controllers over the catalog services.
func NewAPI(s catalog.Services, log *slog.Logger) API {
	return API{
		Types:        apiCtrl.NewResource(s.Types, func() service.Input[entities.Type] { return &service.TypeInput{} }, log),
		Properties:   apiCtrl.NewResource(s.Properties, func() service.Input[entities.Property] { return &service.PropertyInput{} }, log),
		Places:       apiCtrl.NewResource(s.Places, func() service.Input[entities.Place] { return &service.PlaceInput{} }, log),
		Instruments:  apiCtrl.NewResource(s.Instruments, func() service.Input[entities.Instrument] { return &service.InstrumentInput{} }, log),
		Objects:      apiCtrl.NewResource(s.Objects, func() service.Input[entities.Object] { return &service.ObjectInput{} }, log),
		Observations: apiCtrl.NewObservationCtrl(s.Observations, log),
	}
}
