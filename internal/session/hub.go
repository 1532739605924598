// Copyright (c) 2026 Velora. All rights reserved.
// Author: dev@velora.app

package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/velora/velora/internal/directory"
	"github.com/velora/velora/internal/identity"
	"github.com/velora/velora/internal/platform/constants"
)

// # Hub

// Hub owns one [Manager] per signed-in account.
//
// Managers come to life two ways: eagerly, when the identity change stream
// announces a sign-in, and lazily, when an authenticated request arrives
// for an account this process has not seen yet (e.g. after a restart).
type Hub struct {
	mu        sync.Mutex
	store     directory.Store
	logger    *slog.Logger
	bannerTTL time.Duration
	managers  map[string]*Manager
}

// NewHub creates an empty hub over the given directory store.
func NewHub(store directory.Store, logger *slog.Logger) *Hub {
	return &Hub{
		store:     store,
		logger:    logger,
		bannerTTL: constants.BannerTTL,
		managers:  make(map[string]*Manager),
	}
}

/*
HandleChange reacts to one identity change: a sign-in loads (or reloads)
the account's session, a sign-out clears and discards it.

Intended to be wired to [identity.Broadcaster.Subscribe] at startup.
*/
func (hub *Hub) HandleChange(context context.Context, change identity.Change) {
	if change.Session == nil {
		hub.mu.Lock()
		manager, found := hub.managers[change.UserID]
		delete(hub.managers, change.UserID)
		hub.mu.Unlock()

		if found {
			manager.Clear()
			hub.logger.Info("session_cleared", "user_id", change.UserID)
		}
		return
	}

	manager := hub.getOrCreate(change.UserID)
	manager.SignIn(context, change.Session.UserID, change.Session.Email, change.Session.DisplayName)
	hub.logger.Info("session_started", "user_id", change.UserID)
}

/*
Ensure returns the manager for an account, loading its document first if
this process has not seen the account yet.

Parameters:
  - context: Request context.
  - userID: The account id from the verified token.
  - email: The account email from the token.
  - displayName: The display name from the token, may be empty.

Returns:
  - *Manager: The account's session manager, never nil.
*/
func (hub *Hub) Ensure(context context.Context, userID, email, displayName string) *Manager {
	manager := hub.getOrCreate(userID)
	manager.EnsureLoaded(context, userID, email, displayName)
	return manager
}

// Manager returns the manager for an account, or nil when none exists.
func (hub *Hub) Manager(userID string) *Manager {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	return hub.managers[userID]
}

func (hub *Hub) getOrCreate(userID string) *Manager {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	manager, found := hub.managers[userID]
	if !found {
		manager = NewManager(hub.store, hub.logger, hub.bannerTTL)
		hub.managers[userID] = manager
	}
	return manager
}
