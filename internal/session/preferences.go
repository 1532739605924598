// Copyright (c) 2026 Velora. All rights reserved.
// Author: dev@velora.app

package session

import (
	"context"
	"fmt"
	"time"

	"github.com/velora/velora/internal/directory"
	"github.com/velora/velora/internal/platform/validate"
)

/*
UpdatePreferences merges a partial preference update into the session.

The merge is optimistic: local state changes first, then the whole
preferences object is written to the directory. A failed write keeps the
local change (last-writer-wins) and sets an error banner; the success
banner is set only after the write is confirmed.

Parameters:
  - context: Request context.
  - update: Fields to change; nil fields are left untouched.

Returns:
  - error: Validation or persistence failure. Nil (no-op) when no session
    is active.
*/
func (manager *Manager) UpdatePreferences(context context.Context, update PreferencesUpdate) error {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	if manager.userID == "" {
		return nil
	}

	validator := &validate.Validator{}
	if update.Language != nil {
		validator.LanguageTag("language", *update.Language)
	}
	if update.Quality != nil {
		validator.OneOf("quality", *update.Quality, "sd", "hd", "uhd")
	}
	if update.MaturityRating != nil {
		validator.OneOf("maturityRating", *update.MaturityRating, "G", "PG", "PG-13", "R", "NC-17")
	}
	if err := validator.Err(); err != nil {
		return err
	}

	update.applyTo(&manager.preferences)

	if err := manager.store.UpdateFields(context, manager.userID, map[string]any{
		directory.FieldPreferences: manager.preferences,
	}); err != nil {
		manager.logger.Error("session_preferences_update_failed", "user_id", manager.userID, "error", err)
		manager.banner.SetError(msgPreferencesFailed)
		return fmt.Errorf("session_preferences_update_failed: %w", err)
	}

	manager.banner.SetSuccess(msgPreferencesUpdated)
	return nil
}

// # Subscription

// SubscriptionInfo is the derived subscription view exposed to clients.
type SubscriptionInfo struct {
	HasSubscription bool                         `json:"hasSubscription"`
	Status          directory.SubscriptionStatus `json:"status"`
	Plan            string                       `json:"plan,omitempty"`
	EndDate         *time.Time                   `json:"endDate,omitempty"`
}

// HasActiveSubscription reports whether the subscription is active and its
// end date lies strictly in the future. A missing end date counts as
// expired.
func (manager *Manager) HasActiveSubscription() bool {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	return subscriptionActive(manager.subscription, time.Now())
}

// SubscriptionInfo returns the derived subscription view.
func (manager *Manager) SubscriptionInfo() SubscriptionInfo {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	return manager.subscriptionInfoLocked()
}

func (manager *Manager) subscriptionInfoLocked() SubscriptionInfo {
	info := SubscriptionInfo{Status: directory.SubscriptionInactive}
	if manager.subscription != nil {
		info.Status = manager.subscription.Status
		info.Plan = manager.subscription.Plan
		info.EndDate = manager.subscription.EndDate
	}
	info.HasSubscription = subscriptionActive(manager.subscription, time.Now())
	return info
}

func subscriptionActive(subscription *directory.Subscription, now time.Time) bool {
	if subscription == nil || subscription.Status != directory.SubscriptionActive {
		return false
	}
	return subscription.EndDate != nil && subscription.EndDate.After(now)
}
