package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hostelops/complaints/internal/errs"
	"github.com/hostelops/complaints/pkg/logging"
)

// RequireAdmin must run after RequireAuth.
func (g *Gateway) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		l := logging.FromContext(c.Request().Context()).With("middleware", "require_admin")

		id, ok := IdentityFrom(c)
		if !ok {
			l.Warn("admin_check_failed", "status", http.StatusUnauthorized, "reason", "no identity on context")
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized").SetInternal(errs.ErrMissingCredential)
		}
		if err := AuthorizeAdmin(id); err != nil {
			l.Warn("admin_check_failed", "status", http.StatusForbidden, "user_id", id.UserID, "role", id.Role)
			return echo.NewHTTPError(http.StatusForbidden, "admin access required").SetInternal(err)
		}
		return next(c)
	}
}
