// Copyright (c) 2026 Velora. All rights reserved.
// Author: dev@velora.app

/*
Package session maintains the authenticated viewing state for each account:
preferences, subscription status, the profile list, and the active profile.

It is the only writer of directory documents. State changes follow an
optimistic, last-writer-wins discipline: local state is updated first, the
directory write happens after, and a failed write surfaces a transient
error banner without rolling the local change back.

Architecture:

  - Hub: One Manager per signed-in account, driven by the identity change
    stream and by lazy loading on first authenticated request.
  - Manager: Per-account state machine. All operations serialize on one
    mutex, so within a process there are no interleaved read-modify-write
    races; across processes the directory store stays last-writer-wins.
  - bannerBoard: Auto-clearing transient messages (5 seconds).

Every operation is a no-op when no session is active, so handlers never
need to special-case the signed-out state.
*/
package session

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/velora/velora/internal/directory"
	"github.com/velora/velora/internal/platform/apperr"
	"github.com/velora/velora/internal/platform/constants"
)

// # Banner Messages

const (
	msgLoadFailed         = "Failed to load user data"
	msgCreateFailed       = "Failed to create profile"
	msgUpdateFailed       = "Failed to update profile"
	msgDeleteFailed       = "Failed to delete profile"
	msgPreferencesFailed  = "Failed to update preferences"
	msgReactionFailed     = "Failed to save your reaction"
	msgWatchlistFailed    = "Failed to update watchlist"
	msgProfileLimit       = "Maximum number of profiles reached"
	msgProfileName        = "Profile name must be 1-20 characters"
	msgLastProfile        = "Cannot delete the last profile"
	msgPreferencesUpdated = "Preferences updated successfully"
	msgProfileUpdated     = "Profile updated successfully"
	msgProfileDeleted     = "Profile deleted successfully"
)

// # Manager

// Manager holds the in-memory session state for one account.
type Manager struct {
	mu     sync.Mutex
	store  directory.Store
	logger *slog.Logger
	banner *bannerBoard

	userID       string
	email        string
	displayName  string
	loading      bool
	ready        bool
	preferences  directory.Preferences
	subscription *directory.Subscription
	profiles     []directory.Profile
	current      *directory.Profile
	watchHistory []directory.WatchEvent
	analytics    directory.Analytics
}

// NewManager creates an idle manager with no session attached.
func NewManager(store directory.Store, logger *slog.Logger, bannerTTL time.Duration) *Manager {
	return &Manager{
		store:  store,
		logger: logger,
		banner: newBannerBoard(bannerTTL),
	}
}

/*
SignIn attaches an identity to the manager and loads its account document.

A missing document is created with default preferences and an inactive
subscription. An existing document with no profiles gets a bootstrap
profile with the fixed id "default". Load failures leave the session
active but degraded: an error banner is set and the next request retries.

Parameters:
  - context: Request context.
  - userID: The account id from the verified token.
  - email: The account email.
  - displayName: Optional display name, used to name the bootstrap profile.
*/
func (manager *Manager) SignIn(context context.Context, userID, email, displayName string) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	manager.userID = userID
	manager.email = email
	manager.displayName = displayName
	manager.loading = true
	manager.ready = false
	manager.load(context)
}

// EnsureLoaded loads the account document only when it is not already in
// memory. Called on authenticated requests so a process restart does not
// strand valid tokens.
func (manager *Manager) EnsureLoaded(context context.Context, userID, email, displayName string) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	if manager.ready && manager.userID == userID {
		return
	}

	manager.userID = userID
	manager.email = email
	manager.displayName = displayName
	manager.loading = true
	manager.ready = false
	manager.load(context)
}

// Clear resets the manager to the signed-out state.
func (manager *Manager) Clear() {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	manager.userID = ""
	manager.email = ""
	manager.displayName = ""
	manager.loading = false
	manager.ready = false
	manager.preferences = directory.Preferences{}
	manager.subscription = nil
	manager.profiles = nil
	manager.current = nil
	manager.watchHistory = nil
	manager.analytics = directory.Analytics{}
	manager.banner.Clear()
}

// Active reports whether a session is attached.
func (manager *Manager) Active() bool {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	return manager.userID != ""
}

// # State Snapshot

// State is a point-in-time copy of the session, safe to hand to encoders.
type State struct {
	UserID         string                 `json:"userId"`
	Email          string                 `json:"email"`
	Loading        bool                   `json:"loading"`
	Preferences    directory.Preferences  `json:"preferences"`
	Subscription   SubscriptionInfo       `json:"subscription"`
	Profiles       []directory.Profile    `json:"profiles"`
	CurrentProfile *directory.Profile     `json:"currentProfile,omitempty"`
	WatchHistory   []directory.WatchEvent `json:"watchHistory"`
	Analytics      directory.Analytics    `json:"analytics"`
	Banner         *Banner                `json:"banner,omitempty"`
}

// Snapshot returns a deep copy of the current session state.
func (manager *Manager) Snapshot() State {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	state := State{
		UserID:       manager.userID,
		Email:        manager.email,
		Loading:      manager.loading,
		Preferences:  manager.preferences,
		Subscription: manager.subscriptionInfoLocked(),
		Profiles:     make([]directory.Profile, 0, len(manager.profiles)),
		WatchHistory: append([]directory.WatchEvent(nil), manager.watchHistory...),
		Analytics:    manager.analytics,
		Banner:       manager.banner.Current(),
	}
	for _, profile := range manager.profiles {
		state.Profiles = append(state.Profiles, profile.Clone())
	}
	if manager.current != nil {
		copied := manager.current.Clone()
		state.CurrentProfile = &copied
	}
	return state
}

// # Document Loading

// load populates the manager from the directory store. Caller holds the lock.
func (manager *Manager) load(context context.Context) {
	defer func() { manager.loading = false }()

	created := false
	document, err := manager.store.GetDocument(context, manager.userID)
	if err != nil {
		appErr := apperr.As(err)
		if appErr == nil || appErr.Code != apperr.CodeNotFound {
			manager.logger.Error("session_document_load_failed", "user_id", manager.userID, "error", err)
			manager.banner.SetError(msgLoadFailed)
			return
		}

		document = directory.NewAccount(manager.email, time.Now().UTC())
		if err := manager.store.SetDocument(context, manager.userID, document); err != nil {
			manager.logger.Error("session_document_create_failed", "user_id", manager.userID, "error", err)
			manager.banner.SetError(msgLoadFailed)
			return
		}
		created = true
		manager.logger.Info("session_document_created", "user_id", manager.userID)
	}

	if document.Preferences != nil {
		manager.preferences = *document.Preferences
	} else {
		manager.preferences = directory.DefaultPreferences()
	}
	manager.subscription = document.Subscription
	manager.profiles = document.Profiles
	manager.watchHistory = document.WatchHistory
	manager.analytics = document.Analytics

	// Bootstrap runs for pre-existing accounts that lost (or never had)
	// their profiles; a document created just now stays empty until the
	// next load, matching the storefront's original behavior.
	if !created && len(manager.profiles) == 0 {
		manager.bootstrapProfile(context)
	}

	manager.current = nil
	if len(manager.profiles) > 0 {
		active := manager.findProfileLocked(document.LastActiveProfile)
		if active == nil {
			active = &manager.profiles[0]
		}
		copied := active.Clone()
		manager.current = &copied
	}

	manager.ready = true

	now := time.Now().UTC()
	if err := manager.store.UpdateFields(context, manager.userID, map[string]any{
		directory.FieldLastLogin: now,
	}); err != nil {
		// Best effort only.
		manager.logger.Warn("session_last_login_update_failed", "user_id", manager.userID, "error", err)
	}
}

// bootstrapProfile creates the fixed "default" profile. Caller holds the lock.
func (manager *Manager) bootstrapProfile(context context.Context) {
	profile := directory.NewProfile(constants.DefaultProfileID, manager.defaultProfileName(), time.Now().UTC())
	profiles := []directory.Profile{profile}

	if err := manager.store.UpdateFields(context, manager.userID, map[string]any{
		directory.FieldProfiles: profiles,
	}); err != nil {
		manager.logger.Error("session_profile_bootstrap_failed", "user_id", manager.userID, "error", err)
		return
	}
	manager.profiles = profiles
}

// defaultProfileName derives the bootstrap profile name from the identity.
func (manager *Manager) defaultProfileName() string {
	if manager.displayName != "" {
		return manager.displayName
	}
	if at := strings.Index(manager.email, "@"); at > 0 {
		return manager.email[:at]
	}
	return "Default"
}

// # Shared Helpers

// findProfileLocked returns a pointer into the profile slice. Caller holds
// the lock.
func (manager *Manager) findProfileLocked(id string) *directory.Profile {
	if id == "" {
		return nil
	}
	for i := range manager.profiles {
		if manager.profiles[i].ID == id {
			return &manager.profiles[i]
		}
	}
	return nil
}

// CurrentBanner returns the visible banner, or nil.
func (manager *Manager) CurrentBanner() *Banner {
	return manager.banner.Current()
}
