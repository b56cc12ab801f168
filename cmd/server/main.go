package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/hostelops/complaints/internal/events"
	"github.com/hostelops/complaints/internal/handlers"
	"github.com/hostelops/complaints/internal/metrics"
	"github.com/hostelops/complaints/internal/middleware/auth"
	"github.com/hostelops/complaints/internal/repo"
	"github.com/hostelops/complaints/internal/search"
	"github.com/hostelops/complaints/internal/service"
	"github.com/hostelops/complaints/internal/tokens"
	httpserver "github.com/hostelops/complaints/internal/transport/http"
	"github.com/hostelops/complaints/pkg/config"
	pkgdb "github.com/hostelops/complaints/pkg/db"
	"github.com/hostelops/complaints/pkg/hash"
	"github.com/hostelops/complaints/pkg/logging"
)

type publisher interface {
	service.EventPublisher
	Close() error
}

func main() {
	config.LoadEnvFile()
	cfg := config.Load()

	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")
	config.MustOneOf(cfg.DBDriver, "DB_DRIVER", pkgdb.DriverPostgres, pkgdb.DriverSQLite)
	config.MustOneOf(cfg.DBMigrate, "DB_MIGRATE", repo.MigrateSQL, repo.MigrateAuto)

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	ctx := logging.IntoContext(context.Background(), logger)

	db, err := pkgdb.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		logger.Error("db_init_failed", "error", err)
		os.Exit(1)
	}
	if err := repo.Migrate(db, cfg.DBMigrate, cfg.DBDriver, cfg.DatabaseURL); err != nil {
		logger.Error("migrate_failed", "error", err)
		os.Exit(1)
	}

	tok, err := tokens.NewService(cfg.JWTSecret, tokens.WithTTL(cfg.TokenTTL))
	if err != nil {
		logger.Error("token_service_init_failed", "error", err)
		os.Exit(1)
	}

	var prod publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		prod = events.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		logger.Info("kafka_enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	var index service.ComplaintIndexer
	if cfg.ESURL != "" {
		esClient, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			logger.Error("es_init_failed", "error", err)
			os.Exit(1)
		}
		ix := search.New(esClient, cfg.ESIndex)
		if err := ix.EnsureIndex(ctx); err != nil {
			logger.Error("es_index_init_failed", "index", cfg.ESIndex, "error", err)
			os.Exit(1)
		}
		index = ix
	}

	m := metrics.New()
	store := repo.New(db)
	admin := service.AdminAccount{Email: cfg.AdminEmail, Password: cfg.AdminPassword, Name: cfg.AdminName}
	ping := func(ctx context.Context) error { return pkgdb.Ping(ctx, db) }

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(httpserver.Common(logger, m)...)

	deps := httpserver.Deps{
		Gateway: auth.NewGateway(tok),
		ComplaintHandler: handlers.NewComplaintHandler(&service.ComplaintService{
			Repo: store, Events: prod, Index: index, Metrics: m,
		}),
		AuthHandler: handlers.NewAuthHandler(&service.AuthService{
			Repo: store, Tokens: tok, Hasher: hash.NewHasher(cfg.BcryptCost), Admin: admin, Events: prod, Metrics: m,
		}),
		HealthHandler: &handlers.HealthHandler{
			Service: &service.HealthService{Secret: cfg.JWTSecret, Admin: admin, Ping: ping},
			Ping:    ping,
		},
		Metrics: m,
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("http_server_started", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http_server_error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	go func() {
		<-quit
		logger.Warn("force exit")
		os.Exit(1)
	}()

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_error", "error", err)
	}
	if err := pkgdb.Close(db); err != nil {
		logger.Error("db_close_error", "error", err)
	}
	if err := prod.Close(); err != nil {
		logger.Error("kafka_close_error", "error", err)
	}

	logger.Info("shutdown complete")
}
