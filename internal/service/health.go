package service

import (
	"context"
	"strings"

	"github.com/hostelops/complaints/internal/tokens"
)

type HealthReport struct {
	OK     bool              `json:"ok"`
	Checks map[string]string `json:"checks"`
}

// HealthService reports whether the process is configured well enough to
// serve logins and seeding.
type HealthService struct {
	Secret []byte
	Admin  AdminAccount
	Ping   func(ctx context.Context) error
}

func (s *HealthService) Check(ctx context.Context) HealthReport {
	r := HealthReport{OK: true, Checks: map[string]string{}}
	set := func(name string, ok bool, bad string) {
		if ok {
			r.Checks[name] = "ok"
			return
		}
		r.OK = false
		r.Checks[name] = bad
	}

	set("jwt_secret", len(s.Secret) >= tokens.MinSecretLen, "missing or shorter than 16 bytes")
	set("admin_email", strings.Contains(s.Admin.Email, "@"), "missing or invalid")
	set("admin_password", len(s.Admin.Password) >= 6, "missing or shorter than 6 characters")

	if s.Ping != nil {
		if err := s.Ping(ctx); err != nil {
			set("database", false, "unreachable")
		} else {
			set("database", true, "")
		}
	}
	return r
}
