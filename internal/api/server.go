// Copyright (c) 2026 Velora. All rights reserved.
// Author: dev@velora.app

/*
Package api assembles the HTTP surface of the Velora backend.

It mounts the domain handlers under /api/v1 behind a shared middleware
chain and exposes the health probes at the root.

Route map:

	GET  /healthz, /readyz          — probes
	/api/v1/auth/...                — identity (register, login, reset, OIDC)
	/api/v1/me/...                  — session state, profiles, preferences,
	                                  interactions, watchlist (authenticated)
	/api/v1/catalog/...             — featured, genre rows, search (public)
	/api/v1/billing/...             — plans (public), checkout (authenticated)
*/
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/velora/velora/internal/billing"
	"github.com/velora/velora/internal/catalog"
	"github.com/velora/velora/internal/identity"
	"github.com/velora/velora/internal/platform/config"
	"github.com/velora/velora/internal/platform/constants"
	"github.com/velora/velora/internal/platform/middleware"
	"github.com/velora/velora/internal/session"
)

// Dependencies collects everything the router mounts.
type Dependencies struct {
	Config   *config.Config
	Logger   *slog.Logger
	Verifier middleware.TokenVerifier
	Identity *identity.Handler
	Session  *session.Handler
	Catalog  *catalog.Handler
	Billing  *billing.Handler
	Health   *HealthHandler
}

// NewRouter builds the full route tree with the shared middleware chain.
// The context bounds the rate limiter's cleanup goroutine.
func NewRouter(context context.Context, deps Dependencies) chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(deps.Logger))
	router.Use(middleware.PanicRecovery(deps.Logger))
	router.Use(middleware.CORS(deps.Config))
	router.Use(middleware.RateLimit(context))
	router.Use(middleware.Authenticate(deps.Verifier))

	router.Get("/healthz", deps.Health.Liveness)
	router.Get("/readyz", deps.Health.Readiness)

	router.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", deps.Identity.Routes())
		api.Mount("/catalog", deps.Catalog.Routes())
		api.Mount("/billing", deps.Billing.Routes())

		api.Group(func(protected chi.Router) {
			protected.Use(middleware.RequireAuth)
			protected.Mount("/me", deps.Session.Routes())
		})
	})

	return router
}

// NewServer wraps the router in an http.Server with the platform timeouts.
func NewServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           handler,
		ReadTimeout:       constants.DefaultReadTimeout,
		ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		WriteTimeout:      constants.DefaultWriteTimeout,
		IdleTimeout:       constants.DefaultIdleTimeout,
	}
}
