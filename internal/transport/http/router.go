package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/hostelops/complaints/internal/handlers"
	"github.com/hostelops/complaints/internal/metrics"
	"github.com/hostelops/complaints/internal/middleware/auth"
)

type Deps struct {
	Gateway          *auth.Gateway
	ComplaintHandler *handlers.ComplaintHandler
	AuthHandler      *handlers.AuthHandler
	HealthHandler    *handlers.HealthHandler
	Metrics          *metrics.Metrics
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", d.HealthHandler.Live)
	e.GET("/health/ready", d.HealthHandler.Ready)
	if d.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(d.Metrics.Handler()))
	}

	api := e.Group("/api")

	api.GET("/health", d.HealthHandler.Config)

	authGroup := api.Group("/auth")

	authGroup.POST("/register", d.AuthHandler.Register)
	authGroup.POST("/login", d.AuthHandler.Login)
	authGroup.POST("/seed", d.AuthHandler.Seed)

	complaints := api.Group("/complaints", d.Gateway.RequireAuth)

	complaints.POST("", d.ComplaintHandler.Create)
	complaints.GET("", d.ComplaintHandler.List)
	complaints.GET("/search", d.ComplaintHandler.Search)
	complaints.PUT("/:id", d.ComplaintHandler.UpdateStatus, d.Gateway.RequireAdmin)
	complaints.PATCH("/:id", d.ComplaintHandler.UpdateStatus, d.Gateway.RequireAdmin)
}
