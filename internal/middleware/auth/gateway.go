// Package auth is the gateway in front of the complaint routes. It turns a
// bearer header into a verified identity and enforces the admin role, without
// any store access.
package auth

import (
	"fmt"
	"net/http"

	"github.com/hostelops/complaints/internal/errs"
	"github.com/hostelops/complaints/internal/models"
)

type TokenVerifier interface {
	Verify(token string) (models.Identity, error)
}

type Gateway struct {
	Tokens TokenVerifier
}

func NewGateway(tokens TokenVerifier) *Gateway {
	return &Gateway{Tokens: tokens}
}

func (g *Gateway) Authenticate(r *http.Request) (models.Identity, error) {
	raw := bearerToken(r)
	if raw == "" {
		return models.Identity{}, errs.ErrMissingCredential
	}
	id, err := g.Tokens.Verify(raw)
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %w", errs.ErrUnauthorized, err)
	}
	return id, nil
}

func AuthorizeAdmin(id models.Identity) error {
	if !id.IsAdmin() {
		return fmt.Errorf("%w: admin access required", errs.ErrForbidden)
	}
	return nil
}
