package auth

import (
	"github.com/labstack/echo/v4"

	"github.com/hostelops/complaints/internal/errs"
	"github.com/hostelops/complaints/pkg/logging"
)

func (g *Gateway) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		l := logging.FromContext(c.Request().Context()).With("middleware", "require_auth")

		id, err := g.Authenticate(c.Request())
		if err != nil {
			code := errs.HTTPStatus(err)
			l.Warn("auth_failed", "status", code, "error", err)
			return echo.NewHTTPError(code, "unauthorized").SetInternal(err)
		}

		setIdentity(c, id)
		return next(c)
	}
}
