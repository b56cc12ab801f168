package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hostelops/complaints/internal/service"
	"github.com/hostelops/complaints/pkg/logging"
)

type HealthHandler struct {
	Service *service.HealthService
	Ping    func(ctx context.Context) error
}

func (h *HealthHandler) Live(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func (h *HealthHandler) Ready(c echo.Context) error {
	if h.Ping != nil {
		if err := h.Ping(c.Request().Context()); err != nil {
			logging.FromContext(c.Request().Context()).Warn("readiness_failed", "status", http.StatusServiceUnavailable, "error", err)
			return c.NoContent(http.StatusServiceUnavailable)
		}
	}
	return c.NoContent(http.StatusOK)
}

func (h *HealthHandler) Config(c echo.Context) error {
	r := h.Service.Check(c.Request().Context())
	if !r.OK {
		return c.JSON(http.StatusServiceUnavailable, map[string]any{
			"status": "configuration issues found",
			"checks": r.Checks,
		})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"checks": r.Checks,
	})
}
