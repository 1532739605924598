// Copyright (c) 2026 Velora. All rights reserved.
// Author: dev@velora.app

package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velora/velora/internal/directory"
	"github.com/velora/velora/internal/platform/apperr"
	"github.com/velora/velora/pkg/pointer"
)

func TestManager_UpdatePreferences(t *testing.T) {
	t.Run("partial_merge", func(t *testing.T) {
		manager, store := signedInManager(t)

		err := manager.UpdatePreferences(context.Background(), PreferencesUpdate{
			Language: pointer.To("fr"),
			Autoplay: pointer.To(false),
		})

		require.NoError(t, err)
		state := manager.Snapshot()
		assert.Equal(t, "fr", state.Preferences.Language)
		assert.False(t, state.Preferences.Autoplay)
		// Untouched fields keep their values.
		assert.Equal(t, "hd", state.Preferences.Quality)
		assert.Equal(t, "PG-13", state.Preferences.MaturityRating)

		stored, err := store.GetDocument(context.Background(), "acc-1")
		require.NoError(t, err)
		assert.Equal(t, "fr", stored.Preferences.Language)
		assert.False(t, stored.Preferences.Autoplay)

		require.NotNil(t, state.Banner)
		assert.Equal(t, BannerSuccess, state.Banner.Kind)
		assert.Equal(t, "Preferences updated successfully", state.Banner.Message)
	})

	t.Run("invalid_quality", func(t *testing.T) {
		manager, _ := signedInManager(t)

		err := manager.UpdatePreferences(context.Background(), PreferencesUpdate{
			Quality: pointer.To("8k"),
		})

		require.Error(t, err)
		assert.Equal(t, apperr.CodeValidation, apperr.As(err).Code)
		assert.Equal(t, "hd", manager.Snapshot().Preferences.Quality)
	})

	t.Run("invalid_language_tag", func(t *testing.T) {
		manager, _ := signedInManager(t)

		err := manager.UpdatePreferences(context.Background(), PreferencesUpdate{
			Language: pointer.To("not a tag!"),
		})

		require.Error(t, err)
		assert.Equal(t, "en", manager.Snapshot().Preferences.Language)
	})

	t.Run("persist_failure_keeps_local_change", func(t *testing.T) {
		manager, store := signedInManager(t)
		store.FailWrites = errors.New("directory unreachable")

		err := manager.UpdatePreferences(context.Background(), PreferencesUpdate{
			Language: pointer.To("fr"),
		})

		require.Error(t, err)
		state := manager.Snapshot()
		assert.Equal(t, "fr", state.Preferences.Language)
		require.NotNil(t, state.Banner)
		assert.Equal(t, BannerError, state.Banner.Kind)
		assert.Equal(t, "Failed to update preferences", state.Banner.Message)
	})
}

func TestSubscriptionActive(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	tests := []struct {
		name         string
		subscription *directory.Subscription
		want         bool
	}{
		{name: "nil_subscription", subscription: nil, want: false},
		{
			name:         "active_future_end",
			subscription: &directory.Subscription{Status: directory.SubscriptionActive, EndDate: &future},
			want:         true,
		},
		{
			name:         "active_expired",
			subscription: &directory.Subscription{Status: directory.SubscriptionActive, EndDate: &past},
			want:         false,
		},
		{
			name:         "active_end_exactly_now",
			subscription: &directory.Subscription{Status: directory.SubscriptionActive, EndDate: &now},
			want:         false,
		},
		{
			name:         "active_without_end",
			subscription: &directory.Subscription{Status: directory.SubscriptionActive},
			want:         false,
		},
		{
			name:         "cancelled_future_end",
			subscription: &directory.Subscription{Status: directory.SubscriptionCancelled, EndDate: &future},
			want:         false,
		},
		{
			name:         "inactive",
			subscription: &directory.Subscription{Status: directory.SubscriptionInactive},
			want:         false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, subscriptionActive(test.subscription, now))
		})
	}
}

func TestManager_SubscriptionInfo(t *testing.T) {
	manager, store := newTestManager()
	now := time.Now().UTC()
	future := now.Add(30 * 24 * time.Hour)
	account := directory.NewAccount("viewer@example.com", now)
	account.Subscription = &directory.Subscription{
		Status:  directory.SubscriptionActive,
		Plan:    "standard_monthly",
		EndDate: &future,
	}
	account.Profiles = []directory.Profile{directory.NewProfile("default", "Viewer", now)}
	require.NoError(t, store.SetDocument(context.Background(), "acc-1", account))

	manager.SignIn(context.Background(), "acc-1", "viewer@example.com", "")

	assert.True(t, manager.HasActiveSubscription())
	info := manager.SubscriptionInfo()
	assert.True(t, info.HasSubscription)
	assert.Equal(t, "standard_monthly", info.Plan)
	assert.Equal(t, directory.SubscriptionActive, info.Status)
}
