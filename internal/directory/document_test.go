// Copyright (c) 2026 Velora. All rights reserved.
// Author: dev@velora.app

package directory

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringSet_MarshalSorted(t *testing.T) {
	set := NewStringSet("zeta", "alpha", "mike")

	raw, err := json.Marshal(set)

	require.NoError(t, err)
	assert.JSONEq(t, `["alpha","mike","zeta"]`, string(raw))
}

func TestStringSet_UnmarshalDeduplicates(t *testing.T) {
	var set StringSet

	err := json.Unmarshal([]byte(`["603","603","550"]`), &set)

	require.NoError(t, err)
	assert.Equal(t, 2, set.Len())
	assert.True(t, set.Has("603"))
	assert.True(t, set.Has("550"))
}

func TestStringSet_AddRemoveIdempotent(t *testing.T) {
	set := NewStringSet()

	set.Add("550")
	set.Add("550")
	assert.Equal(t, 1, set.Len())

	set.Remove("550")
	set.Remove("550")
	assert.Equal(t, 0, set.Len())
}

func TestStringSet_CloneIsIndependent(t *testing.T) {
	original := NewStringSet("550")

	copied := original.Clone()
	copied.Add("603")

	assert.False(t, original.Has("603"))
	assert.True(t, copied.Has("603"))
}

func TestDefaultPreferences(t *testing.T) {
	preferences := DefaultPreferences()

	assert.Equal(t, "en", preferences.Language)
	assert.True(t, preferences.Autoplay)
	assert.Equal(t, "hd", preferences.Quality)
	assert.True(t, preferences.Notifications)
	assert.Equal(t, "PG-13", preferences.MaturityRating)
}

func TestNewAccount(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	account := NewAccount("viewer@example.com", now)

	require.NotNil(t, account.Preferences)
	assert.Equal(t, DefaultPreferences(), *account.Preferences)
	require.NotNil(t, account.Subscription)
	assert.Equal(t, SubscriptionInactive, account.Subscription.Status)
	assert.Empty(t, account.Profiles)
	assert.Equal(t, now, account.CreatedAt)
	assert.Equal(t, now, account.LastLogin)
}

func TestAccount_FindProfile(t *testing.T) {
	now := time.Now().UTC()
	account := NewAccount("viewer@example.com", now)
	account.Profiles = []Profile{
		NewProfile("default", "viewer", now),
		NewProfile("0198c8a0", "Kids", now),
	}

	t.Run("found", func(t *testing.T) {
		profile := account.FindProfile("0198c8a0")

		require.NotNil(t, profile)
		assert.Equal(t, "Kids", profile.Name)
	})

	t.Run("not_found", func(t *testing.T) {
		assert.Nil(t, account.FindProfile("missing"))
	})
}

func TestAccount_CloneIsDeep(t *testing.T) {
	now := time.Now().UTC()
	account := NewAccount("viewer@example.com", now)
	account.Profiles = []Profile{NewProfile("default", "viewer", now)}
	account.Profiles[0].Watchlist.Add("550")

	copied := account.Clone()
	copied.Profiles[0].Watchlist.Add("603")
	copied.Preferences.Language = "fr"

	assert.False(t, account.Profiles[0].Watchlist.Has("603"))
	assert.Equal(t, "en", account.Preferences.Language)
}
