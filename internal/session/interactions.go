// Copyright (c) 2026 Velora. All rights reserved.
// Author: dev@velora.app

package session

import (
	"context"
	"fmt"

	"github.com/velora/velora/internal/directory"
	"github.com/velora/velora/internal/platform/apperr"
)

// # Content Interactions

// Interaction is a viewer's reaction to one title.
type Interaction string

const (
	InteractionLike    Interaction = "like"
	InteractionDislike Interaction = "dislike"
	InteractionRemove  Interaction = "remove"
)

// ParseInteraction validates a wire value.
func ParseInteraction(value string) (Interaction, error) {
	switch Interaction(value) {
	case InteractionLike, InteractionDislike, InteractionRemove:
		return Interaction(value), nil
	}
	return "", apperr.ValidationError("Interaction must be one of: like, dislike, remove")
}

/*
TrackInteraction records a like, dislike, or removal for the active profile.

A title is liked or disliked, never both: liking removes any dislike and
vice versa, and "remove" clears the title from both sets. The local state
changes first; the profile list is then persisted, and a failed write keeps
the local change and sets an error banner.

Parameters:
  - context: Request context.
  - movieID: The title being reacted to.
  - kind: like, dislike, or remove.

Returns:
  - error: Persistence failure. Nil (no-op) when no session or no active
    profile.
*/
func (manager *Manager) TrackInteraction(context context.Context, movieID string, kind Interaction) error {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	if manager.userID == "" || manager.current == nil {
		return nil
	}

	mutate := func(profile *directory.Profile) {
		switch kind {
		case InteractionLike:
			profile.LikedMovies.Add(movieID)
			profile.DislikedMovies.Remove(movieID)
		case InteractionDislike:
			profile.DislikedMovies.Add(movieID)
			profile.LikedMovies.Remove(movieID)
		case InteractionRemove:
			profile.LikedMovies.Remove(movieID)
			profile.DislikedMovies.Remove(movieID)
		}
	}

	return manager.mutateCurrentLocked(context, mutate, "session_interaction_persist_failed", msgReactionFailed)
}

/*
AddToWatchlist puts a title on the active profile's watchlist. Adding a
title that is already listed is a no-op at the set level.

Returns:
  - error: Persistence failure. Nil (no-op) when no session or no active
    profile.
*/
func (manager *Manager) AddToWatchlist(context context.Context, movieID string) error {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	if manager.userID == "" || manager.current == nil {
		return nil
	}

	return manager.mutateCurrentLocked(context, func(profile *directory.Profile) {
		profile.Watchlist.Add(movieID)
	}, "session_watchlist_persist_failed", msgWatchlistFailed)
}

// RemoveFromWatchlist takes a title off the active profile's watchlist.
func (manager *Manager) RemoveFromWatchlist(context context.Context, movieID string) error {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	if manager.userID == "" || manager.current == nil {
		return nil
	}

	return manager.mutateCurrentLocked(context, func(profile *directory.Profile) {
		profile.Watchlist.Remove(movieID)
	}, "session_watchlist_persist_failed", msgWatchlistFailed)
}

// mutateCurrentLocked applies a mutation to the active profile and its
// entry in the profile list, then persists the list. The local mutation is
// never rolled back on a failed write. Caller holds the lock.
func (manager *Manager) mutateCurrentLocked(context context.Context, mutate func(*directory.Profile), event, bannerMessage string) error {
	mutate(manager.current)
	if listed := manager.findProfileLocked(manager.current.ID); listed != nil {
		mutate(listed)
	}

	if err := manager.store.UpdateFields(context, manager.userID, map[string]any{
		directory.FieldProfiles: manager.profiles,
	}); err != nil {
		manager.logger.Error(event, "user_id", manager.userID, "profile_id", manager.current.ID, "error", err)
		manager.banner.SetError(bannerMessage)
		return fmt.Errorf("%s: %w", event, err)
	}
	return nil
}
