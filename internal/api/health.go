// Copyright (c) 2026 Velora. All rights reserved.
// Author: dev@velora.app

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/velora/velora/internal/platform/constants"
	"github.com/velora/velora/internal/platform/postgres"
	"github.com/velora/velora/internal/platform/redis"
	"github.com/velora/velora/internal/platform/respond"
)

const healthCheckTimeout = 2 * time.Second

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	db    *pgxpool.Pool
	cache *goredis.Client
}

// NewHealthHandler creates the probe handler.
func NewHealthHandler(db *pgxpool.Pool, cache *goredis.Client) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Liveness reports that the process is up. It never checks dependencies.
func (handler *HealthHandler) Liveness(writer http.ResponseWriter, request *http.Request) {
	respond.JSON(writer, http.StatusOK, map[string]string{
		constants.FieldStatus: "ok",
		"version":             constants.AppVersion,
	})
}

// Readiness reports whether the backing stores answer within the probe
// timeout. Any failing dependency flips the status to 503.
func (handler *HealthHandler) Readiness(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), healthCheckTimeout)
	defer cancel()

	checks := map[string]string{}
	status := http.StatusOK

	if err := postgres.Ping(ctx, handler.db); err != nil {
		checks["postgres"] = err.Error()
		status = http.StatusServiceUnavailable
	} else {
		checks["postgres"] = "ok"
	}

	if err := redis.Ping(ctx, handler.cache); err != nil {
		checks["redis"] = err.Error()
		status = http.StatusServiceUnavailable
	} else {
		checks["redis"] = "ok"
	}

	state := "ok"
	if status != http.StatusOK {
		state = "degraded"
	}
	respond.JSON(writer, status, map[string]any{
		constants.FieldStatus: state,
		constants.FieldChecks: checks,
	})
}
