package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hostelops/complaints/internal/errs"
	"github.com/hostelops/complaints/internal/events"
	"github.com/hostelops/complaints/internal/metrics"
	"github.com/hostelops/complaints/internal/models"
	"github.com/hostelops/complaints/internal/transport"
	"github.com/hostelops/complaints/pkg/logging"
)

var ErrAdminNotConfigured = errors.New("admin credentials are not configured")

type UserRepo interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUserIfNotExists(ctx context.Context, u *models.User) error
}

type TokenIssuer interface {
	Issue(id models.Identity) (string, error)
}

type PasswordHasher interface {
	HashPassword(password string) (string, error)
	CheckPassword(hash, password string) (bool, error)
}

type AdminAccount struct {
	Email    string
	Password string
	Name     string
}

type AuthService struct {
	Repo    UserRepo
	Tokens  TokenIssuer
	Hasher  PasswordHasher
	Admin   AdminAccount
	Events  EventPublisher
	Metrics *metrics.Metrics
	Now     func() time.Time
}

type AuthResult struct {
	User  *models.User
	Token string
}

type SeedResult struct {
	Created bool
	User    *models.User
	Token   string
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*AuthResult, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	l := logging.FromContext(ctx).With("svc", "auth.register", "email", req.Email)

	if err := validateStruct(req); err != nil {
		return nil, err
	}
	role, err := models.ParseRole(req.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: role must be student or admin", errs.ErrValidation)
	}

	user, err := s.createUser(ctx, req.Name, req.Email, req.Password, role)
	if err != nil {
		if errors.Is(err, errs.ErrConflict) {
			l.Warn("register_failed", "status", 409, "reason", "email already registered")
		} else {
			l.Error("register_failed", "status", 500, "error", err)
		}
		return nil, err
	}

	token, err := s.issue(user)
	if err != nil {
		l.Error("register_failed", "status", 500, "reason", "cannot issue token", "error", err)
		return nil, err
	}

	if s.Events != nil {
		if err := s.Events.PublishEvent(ctx, user.ID.String(), events.NewUserRegistered(user)); err != nil {
			l.Warn("event_publish_failed", "error", err)
		}
	}
	l.Info("register_success", "user_id", user.ID, "role", user.Role)
	return &AuthResult{User: user, Token: token}, nil
}

func (s *AuthService) Login(ctx context.Context, req transport.LoginRequest) (*AuthResult, error) {
	req.Email = normalizeEmail(req.Email)
	l := logging.FromContext(ctx).With("svc", "auth.login", "email", req.Email)

	if err := validateStruct(req); err != nil {
		return nil, err
	}

	user, err := s.Repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			s.Metrics.LoginFailed("unknown_email")
			l.Warn("login_failed", "status", 401, "reason", "unknown email")
			return nil, fmt.Errorf("%w: invalid email or password", errs.ErrUnauthorized)
		}
		l.Error("login_failed", "status", 500, "error", err)
		return nil, err
	}

	ok, err := s.Hasher.CheckPassword(user.PasswordHash, req.Password)
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "cannot compare password", "error", err)
		return nil, fmt.Errorf("check password: %w", err)
	}
	if !ok {
		s.Metrics.LoginFailed("bad_password")
		l.Warn("login_failed", "status", 401, "reason", "password mismatch")
		return nil, fmt.Errorf("%w: invalid email or password", errs.ErrUnauthorized)
	}

	token, err := s.issue(user)
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "cannot issue token", "error", err)
		return nil, err
	}

	l.Info("login_success", "user_id", user.ID)
	return &AuthResult{User: user, Token: token}, nil
}

// Seed creates the configured admin account once. Later calls find the
// account and return Created=false without touching it.
func (s *AuthService) Seed(ctx context.Context) (*SeedResult, error) {
	email := normalizeEmail(s.Admin.Email)
	l := logging.FromContext(ctx).With("svc", "auth.seed", "email", email)

	if email == "" || s.Admin.Password == "" {
		l.Error("seed_failed", "status", 500, "reason", "ADMIN_EMAIL or ADMIN_PASSWORD missing")
		return nil, ErrAdminNotConfigured
	}
	name := strings.TrimSpace(s.Admin.Name)
	if name == "" {
		name = "Admin"
	}

	existing, err := s.Repo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		l.Info("seed_skipped", "reason", "admin already exists")
		return &SeedResult{Created: false, User: existing}, nil
	case !errors.Is(err, errs.ErrNotFound):
		l.Error("seed_failed", "status", 500, "error", err)
		return nil, err
	}

	user, err := s.createUser(ctx, name, email, s.Admin.Password, models.RoleAdmin)
	if err != nil {
		if errors.Is(err, errs.ErrConflict) {
			l.Info("seed_skipped", "reason", "admin created concurrently")
			existing, gerr := s.Repo.GetUserByEmail(ctx, email)
			if gerr != nil {
				return nil, gerr
			}
			return &SeedResult{Created: false, User: existing}, nil
		}
		l.Error("seed_failed", "status", 500, "error", err)
		return nil, err
	}

	token, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	l.Info("seed_success", "user_id", user.ID)
	return &SeedResult{Created: true, User: user, Token: token}, nil
}

func (s *AuthService) createUser(ctx context.Context, name, email, password string, role models.Role) (*models.User, error) {
	pwHash, err := s.Hasher.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: pwHash,
		Role:         role,
		CreatedAt:    s.now(),
	}
	if err := s.Repo.CreateUserIfNotExists(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) issue(u *models.User) (string, error) {
	token, err := s.Tokens.Issue(models.Identity{UserID: u.ID, Email: u.Email, Role: u.Role})
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}
