package controllerImp

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"astro/internal/logging"
)

var appStart = time.Now()

const pingTimeout = 800 * time.Millisecond

type HealthCtrl struct {
	db  *gorm.DB
	log *slog.Logger
}

func NewHealthCtrl(db *gorm.DB, log *slog.Logger) *HealthCtrl {
	if log == nil {
		log = slog.Default()
	}
	return &HealthCtrl{db: db, log: log}
}

type check struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

type healthResponse struct {
	Status    check            `json:"status"`
	UptimeSec int              `json:"uptime_sec"`
	Checks    map[string]check `json:"checks"`
	Time      string           `json:"time"`
}

// Health pings the store; 503 when it cannot be reached within pingTimeout.
func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), pingTimeout)
	defer cancel()

	store := h.pingStore(ctx)
	status := http.StatusOK
	if !store.OK {
		status = http.StatusServiceUnavailable
		logging.FromContext(c.Request().Context(), h.log).Warn("health check failed", slog.String("error", store.Err))
	}

	return c.JSON(status, healthResponse{
		Status:    check{OK: store.OK},
		UptimeSec: int(time.Since(appStart).Seconds()),
		Checks:    map[string]check{"database": store},
		Time:      time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *HealthCtrl) pingStore(ctx context.Context) check {
	if h.db == nil {
		return check{Err: "store not configured"}
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return check{Err: "db handle: " + err.Error()}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return check{Err: "ping: " + err.Error()}
	}
	return check{OK: true}
}
