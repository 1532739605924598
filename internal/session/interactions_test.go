// Copyright (c) 2026 Velora. All rights reserved.
// Author: dev@velora.app

package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInteraction(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Interaction
		wantErr bool
	}{
		{name: "like", input: "like", want: InteractionLike},
		{name: "dislike", input: "dislike", want: InteractionDislike},
		{name: "remove", input: "remove", want: InteractionRemove},
		{name: "unknown", input: "meh", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := ParseInteraction(test.input)
			if test.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestManager_TrackInteraction_MutualExclusivity(t *testing.T) {
	manager, store := signedInManager(t)

	require.NoError(t, manager.TrackInteraction(context.Background(), "550", InteractionLike))
	state := manager.Snapshot()
	assert.True(t, state.CurrentProfile.LikedMovies.Has("550"))
	assert.False(t, state.CurrentProfile.DislikedMovies.Has("550"))

	require.NoError(t, manager.TrackInteraction(context.Background(), "550", InteractionDislike))
	state = manager.Snapshot()
	assert.False(t, state.CurrentProfile.LikedMovies.Has("550"))
	assert.True(t, state.CurrentProfile.DislikedMovies.Has("550"))

	require.NoError(t, manager.TrackInteraction(context.Background(), "550", InteractionRemove))
	state = manager.Snapshot()
	assert.False(t, state.CurrentProfile.LikedMovies.Has("550"))
	assert.False(t, state.CurrentProfile.DislikedMovies.Has("550"))

	// The profile list in the directory mirrors the active profile.
	stored, err := store.GetDocument(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Profiles[0].LikedMovies.Len())
	assert.Equal(t, 0, stored.Profiles[0].DislikedMovies.Len())
}

func TestManager_TrackInteraction_RemoveIsIdempotent(t *testing.T) {
	manager, _ := signedInManager(t)

	require.NoError(t, manager.TrackInteraction(context.Background(), "550", InteractionRemove))
	require.NoError(t, manager.TrackInteraction(context.Background(), "550", InteractionRemove))

	state := manager.Snapshot()
	assert.Equal(t, 0, state.CurrentProfile.LikedMovies.Len())
	assert.Equal(t, 0, state.CurrentProfile.DislikedMovies.Len())
}

func TestManager_TrackInteraction_PersistFailureKeepsLocalState(t *testing.T) {
	manager, store := signedInManager(t)
	store.FailWrites = errors.New("directory unreachable")

	err := manager.TrackInteraction(context.Background(), "550", InteractionLike)

	require.Error(t, err)
	state := manager.Snapshot()
	// Optimistic: the local reaction stands even though the write failed.
	assert.True(t, state.CurrentProfile.LikedMovies.Has("550"))
	require.NotNil(t, state.Banner)
	assert.Equal(t, BannerError, state.Banner.Kind)
	assert.Equal(t, "Failed to save your reaction", state.Banner.Message)
}

func TestManager_Watchlist(t *testing.T) {
	t.Run("add_is_deduplicated", func(t *testing.T) {
		manager, store := signedInManager(t)

		require.NoError(t, manager.AddToWatchlist(context.Background(), "550"))
		require.NoError(t, manager.AddToWatchlist(context.Background(), "550"))

		state := manager.Snapshot()
		assert.Equal(t, 1, state.CurrentProfile.Watchlist.Len())

		stored, err := store.GetDocument(context.Background(), "acc-1")
		require.NoError(t, err)
		assert.Equal(t, 1, stored.Profiles[0].Watchlist.Len())
	})

	t.Run("remove_absent_is_noop", func(t *testing.T) {
		manager, _ := signedInManager(t)

		require.NoError(t, manager.RemoveFromWatchlist(context.Background(), "550"))

		assert.Equal(t, 0, manager.Snapshot().CurrentProfile.Watchlist.Len())
	})

	t.Run("add_then_remove", func(t *testing.T) {
		manager, _ := signedInManager(t)

		require.NoError(t, manager.AddToWatchlist(context.Background(), "550"))
		require.NoError(t, manager.RemoveFromWatchlist(context.Background(), "550"))

		assert.Equal(t, 0, manager.Snapshot().CurrentProfile.Watchlist.Len())
	})

	t.Run("no_active_profile_is_noop", func(t *testing.T) {
		manager, store := newTestManager()
		// Fresh document, no profiles yet.
		manager.SignIn(context.Background(), "acc-1", "viewer@example.com", "")

		require.NoError(t, manager.AddToWatchlist(context.Background(), "550"))

		stored, err := store.GetDocument(context.Background(), "acc-1")
		require.NoError(t, err)
		assert.Empty(t, stored.Profiles)
	})
}
