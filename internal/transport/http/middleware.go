package httpserver

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	ecM "github.com/labstack/echo/v4/middleware"

	"github.com/hostelops/complaints/internal/metrics"
	loggingmw "github.com/hostelops/complaints/pkg/middleware/logging"
)

// Common is the middleware chain every route runs behind. Metrics sit outside
// the request logger so they see the status the error handler wrote.
func Common(logger *slog.Logger, m *metrics.Metrics) []echo.MiddlewareFunc {
	mws := []echo.MiddlewareFunc{
		ecM.Recover(),
		ecM.RequestID(),
	}
	if m != nil {
		mws = append(mws, m.Middleware)
	}
	return append(mws,
		loggingmw.RequestLogger(logger),
		ecM.Secure(),
		ecM.CORS(),
	)
}
