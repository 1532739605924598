// Copyright (c) 2026 Velora. All rights reserved.
// Author: dev@velora.app

// Command api is the entry point for the Velora HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire identity, session, catalog, and billing.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/velora/velora/internal/api"
	"github.com/velora/velora/internal/billing"
	"github.com/velora/velora/internal/catalog"
	"github.com/velora/velora/internal/directory"
	"github.com/velora/velora/internal/identity"
	"github.com/velora/velora/internal/platform/config"
	"github.com/velora/velora/internal/platform/constants"
	"github.com/velora/velora/internal/platform/migration"
	pgstore "github.com/velora/velora/internal/platform/postgres"
	redisstore "github.com/velora/velora/internal/platform/redis"
	"github.com/velora/velora/internal/platform/sec"
	"github.com/velora/velora/internal/session"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("[Velora] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Tokens & Federated Sign-In ─────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	federated, err := identity.NewFederated(startupCtx, cfg)
	must(log, err, "discover oidc provider")
	if federated.Enabled() {
		log.Info("federated_sign_in_enabled", slog.String("provider", cfg.OIDCProviderURL))
	}

	// ── 7. Identity ───────────────────────────────────────────────────────
	userRepository := identity.NewPostgresUserRepository(pool)
	resetTokenRepository := identity.NewRedisResetTokenRepository(rdb)
	changeStream := identity.NewBroadcaster()
	identityService := identity.NewService(userRepository, resetTokenRepository, jwtSvc, changeStream)
	identityHandler := identity.NewHandler(identityService, federated, cfg.IsProduction(), cfg.IsDevelopment())

	// ── 8. Session Hub ────────────────────────────────────────────────────
	documentStore := directory.NewPostgresStore(pool)
	hub := session.NewHub(documentStore, log)
	sessionHandler := session.NewHandler(hub)

	// The hub follows every sign-in and sign-out on the change stream.
	unsubscribe := changeStream.Subscribe(func(change identity.Change) {
		hub.HandleChange(context.Background(), change)
	})
	defer unsubscribe()

	// ── 9. Catalog & Billing ──────────────────────────────────────────────
	catalogService := catalog.NewService(1)
	catalogHandler := catalog.NewHandler(catalog.NewCache(rdb, catalogService), catalogService.Genres())

	billingService := billing.NewService(1)
	billingHandler := billing.NewHandler(billingService, cfg.CheckoutSuccessURL, cfg.CheckoutCancelURL)

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	router := api.NewRouter(serverCtx, api.Dependencies{
		Config:   cfg,
		Logger:   log,
		Verifier: jwtSvc,
		Identity: identityHandler,
		Session:  sessionHandler,
		Catalog:  catalogHandler,
		Billing:  billingHandler,
		Health:   api.NewHealthHandler(pool, rdb),
	})
	server := api.NewServer(cfg, router)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server_listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	log.Info("shutting down server", slog.Duration("timeout", constants.ShutdownTimeout))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
