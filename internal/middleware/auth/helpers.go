package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/hostelops/complaints/internal/models"
)

const ctxIdentity = "identity"

const bearerPrefix = "Bearer "

// bearerToken returns the token of an "Authorization: Bearer <token>" header,
// or "" when the header is absent or shaped differently.
func bearerToken(r *http.Request) string {
	h := r.Header.Get(echo.HeaderAuthorization)
	if len(h) <= len(bearerPrefix) || !strings.EqualFold(h[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(h[len(bearerPrefix):])
}

func setIdentity(c echo.Context, id models.Identity) {
	c.Set(ctxIdentity, id)
	c.Set("user_id", id.UserID.String())
	c.Set("role", string(id.Role))
}

// IdentityFrom returns the identity stored by RequireAuth.
func IdentityFrom(c echo.Context) (models.Identity, bool) {
	id, ok := c.Get(ctxIdentity).(models.Identity)
	return id, ok
}
