// Copyright (c) 2026 Velora. All rights reserved.
// Author: dev@velora.app

package directory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velora/velora/internal/platform/apperr"
)

func TestMemoryStore_GetDocument_NotFound(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.GetDocument(context.Background(), "absent")

	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperr.CodeNotFound, appErr.Code)
}

func TestMemoryStore_SetGetRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	account := NewAccount("viewer@example.com", now)
	account.Profiles = []Profile{NewProfile("default", "viewer", now)}

	require.NoError(t, store.SetDocument(context.Background(), "acc-1", account))

	loaded, err := store.GetDocument(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.Equal(t, "viewer@example.com", loaded.Email)
	require.Len(t, loaded.Profiles, 1)
	assert.Equal(t, "default", loaded.Profiles[0].ID)

	// The store must hand out copies, not aliases.
	loaded.Email = "other@example.com"
	reloaded, err := store.GetDocument(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.Equal(t, "viewer@example.com", reloaded.Email)
}

func TestMemoryStore_UpdateFields(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	account := NewAccount("viewer@example.com", now)
	require.NoError(t, store.SetDocument(context.Background(), "acc-1", account))

	t.Run("merges_named_fields_only", func(t *testing.T) {
		err := store.UpdateFields(context.Background(), "acc-1", map[string]any{
			FieldLastActiveProfile: "default",
		})

		require.NoError(t, err)
		loaded, err := store.GetDocument(context.Background(), "acc-1")
		require.NoError(t, err)
		assert.Equal(t, "default", loaded.LastActiveProfile)
		assert.Equal(t, "viewer@example.com", loaded.Email)
	})

	t.Run("replaces_profiles_wholesale", func(t *testing.T) {
		profiles := []Profile{NewProfile("0198c8a0", "Kids", now)}

		err := store.UpdateFields(context.Background(), "acc-1", map[string]any{
			FieldProfiles: profiles,
		})

		require.NoError(t, err)
		loaded, err := store.GetDocument(context.Background(), "acc-1")
		require.NoError(t, err)
		require.Len(t, loaded.Profiles, 1)
		assert.Equal(t, "0198c8a0", loaded.Profiles[0].ID)
	})

	t.Run("missing_document", func(t *testing.T) {
		err := store.UpdateFields(context.Background(), "absent", map[string]any{
			FieldLastActiveProfile: "default",
		})

		require.Error(t, err)
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperr.CodeNotFound, appErr.Code)
	})
}

func TestMemoryStore_FailWrites(t *testing.T) {
	store := NewMemoryStore()
	now := time.Now().UTC()
	require.NoError(t, store.SetDocument(context.Background(), "acc-1", NewAccount("viewer@example.com", now)))

	boom := errors.New("directory unavailable")
	store.FailWrites = boom

	err := store.UpdateFields(context.Background(), "acc-1", map[string]any{
		FieldLastActiveProfile: "default",
	})
	assert.ErrorIs(t, err, boom)

	err = store.SetDocument(context.Background(), "acc-1", NewAccount("viewer@example.com", now))
	assert.ErrorIs(t, err, boom)
}
