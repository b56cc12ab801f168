package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hostelops/complaints/internal/errs"
	"github.com/hostelops/complaints/internal/middleware/auth"
	"github.com/hostelops/complaints/internal/models"
)

// httpError turns a taxonomy error into the echo error the client sees.
// Server-side causes stay internal.
func httpError(err error) *echo.HTTPError {
	code := errs.HTTPStatus(err)
	msg := err.Error()
	if code >= http.StatusInternalServerError {
		msg = http.StatusText(code)
	}
	return echo.NewHTTPError(code, msg).SetInternal(err)
}

func identity(c echo.Context) (models.Identity, error) {
	id, ok := auth.IdentityFrom(c)
	if !ok {
		return models.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized").SetInternal(errs.ErrMissingCredential)
	}
	return id, nil
}
