// Command seed prepares a fresh database: it applies the schema and creates
// the configured admin account if it does not exist yet.
package main

import (
	"context"
	"os"
	"time"

	"github.com/hostelops/complaints/internal/repo"
	"github.com/hostelops/complaints/internal/service"
	"github.com/hostelops/complaints/internal/tokens"
	"github.com/hostelops/complaints/pkg/config"
	pkgdb "github.com/hostelops/complaints/pkg/db"
	"github.com/hostelops/complaints/pkg/hash"
	"github.com/hostelops/complaints/pkg/logging"
)

func main() {
	config.LoadEnvFile()
	cfg := config.Load()

	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")
	config.MustNonEmpty(cfg.AdminEmail, "ADMIN_EMAIL")
	config.MustNonEmpty(cfg.AdminPassword, "ADMIN_PASSWORD")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName, "cmd", "seed")
	ctx, cancel := context.WithTimeout(logging.IntoContext(context.Background(), logger), time.Minute)
	defer cancel()

	db, err := pkgdb.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		logger.Error("db_init_failed", "error", err)
		os.Exit(1)
	}
	defer pkgdb.Close(db)

	if err := repo.Migrate(db, cfg.DBMigrate, cfg.DBDriver, cfg.DatabaseURL); err != nil {
		logger.Error("migrate_failed", "error", err)
		os.Exit(1)
	}

	tok, err := tokens.NewService(cfg.JWTSecret, tokens.WithTTL(cfg.TokenTTL))
	if err != nil {
		logger.Error("token_service_init_failed", "error", err)
		os.Exit(1)
	}

	svc := &service.AuthService{
		Repo:   repo.New(db),
		Tokens: tok,
		Hasher: hash.NewHasher(cfg.BcryptCost),
		Admin:  service.AdminAccount{Email: cfg.AdminEmail, Password: cfg.AdminPassword, Name: cfg.AdminName},
	}
	res, err := svc.Seed(ctx)
	if err != nil {
		logger.Error("seed_failed", "error", err)
		os.Exit(1)
	}
	logger.Info("seed_done", "created", res.Created, "email", res.User.Email)
}
