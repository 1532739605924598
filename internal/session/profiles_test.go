// Copyright (c) 2026 Velora. All rights reserved.
// Author: dev@velora.app

package session

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velora/velora/internal/platform/apperr"
	"github.com/velora/velora/pkg/pointer"
)

// # Create

func TestManager_CreateProfile(t *testing.T) {
	t.Run("success_activates_and_persists", func(t *testing.T) {
		manager, store := signedInManager(t)

		profile, err := manager.CreateProfile(context.Background(), CreateProfileInput{
			Name:    "Kids",
			IsChild: true,
		})

		require.NoError(t, err)
		require.NotNil(t, profile)
		assert.NotEmpty(t, profile.ID)
		assert.NotEqual(t, "default", profile.ID)
		assert.True(t, profile.IsChild)

		state := manager.Snapshot()
		require.Len(t, state.Profiles, 2)
		require.NotNil(t, state.CurrentProfile)
		assert.Equal(t, profile.ID, state.CurrentProfile.ID)
		require.NotNil(t, state.Banner)
		assert.Equal(t, BannerSuccess, state.Banner.Kind)

		stored, err := store.GetDocument(context.Background(), "acc-1")
		require.NoError(t, err)
		assert.Len(t, stored.Profiles, 2)
		assert.Equal(t, profile.ID, stored.LastActiveProfile)
	})

	t.Run("name_too_long", func(t *testing.T) {
		manager, store := signedInManager(t)

		_, err := manager.CreateProfile(context.Background(), CreateProfileInput{
			Name: strings.Repeat("x", 21),
		})

		require.Error(t, err)
		assert.Equal(t, apperr.CodeValidation, apperr.As(err).Code)
		assert.Len(t, manager.Snapshot().Profiles, 1)

		stored, storeErr := store.GetDocument(context.Background(), "acc-1")
		require.NoError(t, storeErr)
		assert.Len(t, stored.Profiles, 1)
	})

	t.Run("empty_name", func(t *testing.T) {
		manager, _ := signedInManager(t)

		_, err := manager.CreateProfile(context.Background(), CreateProfileInput{Name: "  "})

		require.Error(t, err)
		assert.Equal(t, apperr.CodeValidation, apperr.As(err).Code)
	})

	t.Run("profile_limit", func(t *testing.T) {
		manager, _ := signedInManager(t)
		for i := 0; i < 4; i++ {
			_, err := manager.CreateProfile(context.Background(), CreateProfileInput{Name: "Extra"})
			require.NoError(t, err)
		}

		_, err := manager.CreateProfile(context.Background(), CreateProfileInput{Name: "One too many"})

		require.Error(t, err)
		assert.Equal(t, apperr.CodeInvariantViolation, apperr.As(err).Code)
		assert.Equal(t, "Maximum number of profiles reached", err.Error())
		assert.Len(t, manager.Snapshot().Profiles, 5)
	})

	t.Run("persistence_failure_leaves_state_untouched", func(t *testing.T) {
		manager, store := signedInManager(t)
		store.FailWrites = errors.New("directory unreachable")

		_, err := manager.CreateProfile(context.Background(), CreateProfileInput{Name: "Kids"})

		require.Error(t, err)
		state := manager.Snapshot()
		assert.Len(t, state.Profiles, 1)
		require.NotNil(t, state.Banner)
		assert.Equal(t, "Failed to create profile", state.Banner.Message)
	})
}

// # Update

func TestManager_UpdateProfile(t *testing.T) {
	t.Run("partial_update_round_trip", func(t *testing.T) {
		manager, store := signedInManager(t)

		err := manager.UpdateProfile(context.Background(), "default", ProfileUpdate{
			Name:    pointer.To("Family"),
			IsChild: pointer.To(true),
		})

		require.NoError(t, err)
		state := manager.Snapshot()
		require.NotNil(t, state.CurrentProfile)
		assert.Equal(t, "Family", state.CurrentProfile.Name)
		assert.True(t, state.CurrentProfile.IsChild)

		stored, err := store.GetDocument(context.Background(), "acc-1")
		require.NoError(t, err)
		assert.Equal(t, "Family", stored.Profiles[0].Name)
		assert.True(t, stored.Profiles[0].IsChild)
	})

	t.Run("unset_fields_stay", func(t *testing.T) {
		manager, _ := signedInManager(t)
		require.NoError(t, manager.UpdateProfile(context.Background(), "default", ProfileUpdate{
			Avatar: pointer.To("avatar-3"),
		}))

		state := manager.Snapshot()
		assert.Equal(t, "Viewer", state.Profiles[0].Name)
		assert.Equal(t, "avatar-3", state.Profiles[0].Avatar)
	})

	t.Run("unknown_profile", func(t *testing.T) {
		manager, _ := signedInManager(t)

		err := manager.UpdateProfile(context.Background(), "missing", ProfileUpdate{Name: pointer.To("X")})

		require.Error(t, err)
		assert.Equal(t, apperr.CodeNotFound, apperr.As(err).Code)
	})
}

// # Delete

func TestManager_DeleteProfile(t *testing.T) {
	t.Run("last_profile_is_protected", func(t *testing.T) {
		manager, store := signedInManager(t)

		err := manager.DeleteProfile(context.Background(), "default")

		require.Error(t, err)
		assert.Equal(t, apperr.CodeInvariantViolation, apperr.As(err).Code)
		assert.Equal(t, "Cannot delete the last profile", err.Error())
		assert.Len(t, manager.Snapshot().Profiles, 1)

		stored, storeErr := store.GetDocument(context.Background(), "acc-1")
		require.NoError(t, storeErr)
		assert.Len(t, stored.Profiles, 1)
	})

	t.Run("deleting_active_reassigns", func(t *testing.T) {
		manager, _ := signedInManager(t)
		created, err := manager.CreateProfile(context.Background(), CreateProfileInput{Name: "Kids"})
		require.NoError(t, err)
		require.Equal(t, created.ID, manager.Snapshot().CurrentProfile.ID)

		require.NoError(t, manager.DeleteProfile(context.Background(), created.ID))

		state := manager.Snapshot()
		require.Len(t, state.Profiles, 1)
		require.NotNil(t, state.CurrentProfile)
		assert.Equal(t, "default", state.CurrentProfile.ID)
	})

	t.Run("unknown_profile", func(t *testing.T) {
		manager, _ := signedInManager(t)
		_, err := manager.CreateProfile(context.Background(), CreateProfileInput{Name: "Kids"})
		require.NoError(t, err)

		err = manager.DeleteProfile(context.Background(), "missing")

		require.Error(t, err)
		assert.Equal(t, apperr.CodeNotFound, apperr.As(err).Code)
	})
}

// # Switch

func TestManager_SwitchProfile(t *testing.T) {
	t.Run("switch_is_synchronous", func(t *testing.T) {
		manager, store := signedInManager(t)
		created, err := manager.CreateProfile(context.Background(), CreateProfileInput{Name: "Kids"})
		require.NoError(t, err)

		switched, err := manager.SwitchProfile(context.Background(), "default")

		require.NoError(t, err)
		require.NotNil(t, switched)
		assert.Equal(t, "default", switched.ID)
		assert.Equal(t, "default", manager.Snapshot().CurrentProfile.ID)

		stored, err := store.GetDocument(context.Background(), "acc-1")
		require.NoError(t, err)
		assert.Equal(t, "default", stored.LastActiveProfile)

		// And back again, immediately.
		switched, err = manager.SwitchProfile(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, switched.ID)
	})

	t.Run("unknown_profile", func(t *testing.T) {
		manager, _ := signedInManager(t)

		_, err := manager.SwitchProfile(context.Background(), "missing")

		require.Error(t, err)
		assert.Equal(t, apperr.CodeNotFound, apperr.As(err).Code)
	})

	t.Run("persist_failure_keeps_local_switch", func(t *testing.T) {
		manager, store := signedInManager(t)
		_, err := manager.CreateProfile(context.Background(), CreateProfileInput{Name: "Kids"})
		require.NoError(t, err)
		store.FailWrites = errors.New("directory unreachable")

		switched, err := manager.SwitchProfile(context.Background(), "default")

		require.NoError(t, err)
		assert.Equal(t, "default", switched.ID)
		assert.Equal(t, "default", manager.Snapshot().CurrentProfile.ID)
	})
}

// Profile ids issued for new profiles are time-ordered and unique.
func TestManager_CreateProfile_IDsAreUnique(t *testing.T) {
	manager, _ := signedInManager(t)

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		profile, err := manager.CreateProfile(context.Background(), CreateProfileInput{Name: "P"})
		require.NoError(t, err)
		assert.False(t, seen[profile.ID])
		seen[profile.ID] = true
		time.Sleep(time.Millisecond)
	}
}
