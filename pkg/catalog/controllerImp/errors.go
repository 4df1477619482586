package controllerImp

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	"astro/internal/logging"
	"astro/pkg/apperr"
	"astro/pkg/catalog/service"
)

// fail answers with {"error": msg} and the status mapped from err; 5xx are logged.
func fail(c echo.Context, log *slog.Logger, err error) error {
	status := apperr.HTTPStatus(err)
	if status >= 500 {
		logging.FromContext(c.Request().Context(), log).Error("request failed",
			slog.String("method", c.Request().Method),
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
		)
	}
	return c.JSON(status, echo.Map{"error": apperr.PublicMessage(err)})
}

func pathID(c echo.Context) (uint, error) {
	return service.ParseID("id", c.Param("id"))
}
