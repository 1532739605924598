// Copyright (c) 2026 Velora. All rights reserved.
// Author: dev@velora.app

package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velora/velora/internal/directory"
	"github.com/velora/velora/internal/identity"
)

const testBannerTTL = 50 * time.Millisecond

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestManager() (*Manager, *directory.MemoryStore) {
	store := directory.NewMemoryStore()
	return NewManager(store, testLogger(), testBannerTTL), store
}

// seedAccount stores a document for acc-1 with the given profiles.
func seedAccount(t *testing.T, store *directory.MemoryStore, profiles ...directory.Profile) {
	t.Helper()
	now := time.Now().UTC()
	account := directory.NewAccount("viewer@example.com", now)
	account.Profiles = profiles
	require.NoError(t, store.SetDocument(context.Background(), "acc-1", account))
}

// signedInManager returns a manager signed in over a document that holds a
// single bootstrapped "default" profile.
func signedInManager(t *testing.T) (*Manager, *directory.MemoryStore) {
	t.Helper()
	manager, store := newTestManager()
	seedAccount(t, store)
	manager.SignIn(context.Background(), "acc-1", "viewer@example.com", "Viewer")
	require.True(t, manager.Active())
	return manager, store
}

// failingStore returns errors from every operation.
type failingStore struct{ err error }

func (store failingStore) GetDocument(context.Context, string) (*directory.Account, error) {
	return nil, store.err
}
func (store failingStore) SetDocument(context.Context, string, *directory.Account) error {
	return store.err
}
func (store failingStore) UpdateFields(context.Context, string, map[string]any) error {
	return store.err
}

// # Sign-In

func TestManager_SignIn_CreatesMissingDocument(t *testing.T) {
	manager, store := newTestManager()

	manager.SignIn(context.Background(), "acc-1", "viewer@example.com", "")

	state := manager.Snapshot()
	assert.False(t, state.Loading)
	assert.Equal(t, directory.DefaultPreferences(), state.Preferences)
	// A freshly created document gets its bootstrap profile on the next
	// load, not on the same one.
	assert.Empty(t, state.Profiles)
	assert.Nil(t, state.CurrentProfile)

	stored, err := store.GetDocument(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.Equal(t, "viewer@example.com", stored.Email)
	assert.Equal(t, directory.SubscriptionInactive, stored.Subscription.Status)
}

func TestManager_SignIn_BootstrapsDefaultProfile(t *testing.T) {
	manager, store := newTestManager()
	seedAccount(t, store)

	manager.SignIn(context.Background(), "acc-1", "viewer@example.com", "Viewer")

	state := manager.Snapshot()
	require.Len(t, state.Profiles, 1)
	assert.Equal(t, "default", state.Profiles[0].ID)
	assert.Equal(t, "Viewer", state.Profiles[0].Name)
	require.NotNil(t, state.CurrentProfile)
	assert.Equal(t, "default", state.CurrentProfile.ID)

	stored, err := store.GetDocument(context.Background(), "acc-1")
	require.NoError(t, err)
	require.Len(t, stored.Profiles, 1)
	assert.Equal(t, "default", stored.Profiles[0].ID)
}

func TestManager_SignIn_BootstrapNameFallsBackToEmail(t *testing.T) {
	manager, store := newTestManager()
	seedAccount(t, store)

	manager.SignIn(context.Background(), "acc-1", "viewer@example.com", "")

	state := manager.Snapshot()
	require.Len(t, state.Profiles, 1)
	assert.Equal(t, "viewer", state.Profiles[0].Name)
}

func TestManager_SignIn_RestoresLastActiveProfile(t *testing.T) {
	manager, store := newTestManager()
	now := time.Now().UTC()
	account := directory.NewAccount("viewer@example.com", now)
	account.Profiles = []directory.Profile{
		directory.NewProfile("default", "Viewer", now),
		directory.NewProfile("0198c8a0", "Kids", now),
	}
	account.LastActiveProfile = "0198c8a0"
	require.NoError(t, store.SetDocument(context.Background(), "acc-1", account))

	manager.SignIn(context.Background(), "acc-1", "viewer@example.com", "")

	state := manager.Snapshot()
	require.NotNil(t, state.CurrentProfile)
	assert.Equal(t, "0198c8a0", state.CurrentProfile.ID)
}

func TestManager_SignIn_DefaultsWhenPreferencesMissing(t *testing.T) {
	manager, store := newTestManager()
	now := time.Now().UTC()
	account := directory.NewAccount("viewer@example.com", now)
	account.Preferences = nil
	account.Profiles = []directory.Profile{directory.NewProfile("default", "Viewer", now)}
	require.NoError(t, store.SetDocument(context.Background(), "acc-1", account))

	manager.SignIn(context.Background(), "acc-1", "viewer@example.com", "")

	assert.Equal(t, directory.DefaultPreferences(), manager.Snapshot().Preferences)
}

func TestManager_SignIn_LoadFailureSetsBanner(t *testing.T) {
	store := failingStore{err: errors.New("directory unreachable")}
	manager := NewManager(store, testLogger(), testBannerTTL)

	manager.SignIn(context.Background(), "acc-1", "viewer@example.com", "")

	state := manager.Snapshot()
	assert.False(t, state.Loading)
	require.NotNil(t, state.Banner)
	assert.Equal(t, BannerError, state.Banner.Kind)
	assert.Equal(t, "Failed to load user data", state.Banner.Message)
	// Session stays attached so a later request can retry the load.
	assert.True(t, manager.Active())
}

func TestManager_SignIn_DocumentCreateFailureSetsBanner(t *testing.T) {
	manager, store := newTestManager()
	store.FailWrites = errors.New("directory unreachable")

	manager.SignIn(context.Background(), "acc-1", "viewer@example.com", "")

	state := manager.Snapshot()
	require.NotNil(t, state.Banner)
	assert.Equal(t, "Failed to load user data", state.Banner.Message)
}

// # Clear

func TestManager_Clear(t *testing.T) {
	manager, _ := signedInManager(t)

	manager.Clear()

	assert.False(t, manager.Active())
	state := manager.Snapshot()
	assert.Empty(t, state.UserID)
	assert.Empty(t, state.Profiles)
	assert.Nil(t, state.CurrentProfile)
	assert.Nil(t, state.Banner)
}

func TestManager_NoSession_OperationsAreNoOps(t *testing.T) {
	manager, store := newTestManager()

	profile, err := manager.CreateProfile(context.Background(), CreateProfileInput{Name: "Kids"})
	assert.NoError(t, err)
	assert.Nil(t, profile)

	assert.NoError(t, manager.UpdateProfile(context.Background(), "default", ProfileUpdate{}))
	assert.NoError(t, manager.DeleteProfile(context.Background(), "default"))

	switched, err := manager.SwitchProfile(context.Background(), "default")
	assert.NoError(t, err)
	assert.Nil(t, switched)

	assert.NoError(t, manager.UpdatePreferences(context.Background(), PreferencesUpdate{}))
	assert.NoError(t, manager.TrackInteraction(context.Background(), "550", InteractionLike))
	assert.NoError(t, manager.AddToWatchlist(context.Background(), "550"))

	// Nothing was ever written.
	_, err = store.GetDocument(context.Background(), "acc-1")
	assert.Error(t, err)
}

// # Hub

func TestHub_HandleChange(t *testing.T) {
	store := directory.NewMemoryStore()
	seedAccount(t, store)
	hub := NewHub(store, testLogger())

	session := &identity.Session{UserID: "acc-1", Email: "viewer@example.com", DisplayName: "Viewer"}
	hub.HandleChange(context.Background(), identity.Change{UserID: "acc-1", Session: session})

	manager := hub.Manager("acc-1")
	require.NotNil(t, manager)
	assert.True(t, manager.Active())

	hub.HandleChange(context.Background(), identity.Change{UserID: "acc-1"})

	assert.False(t, manager.Active())
	assert.Nil(t, hub.Manager("acc-1"))
}

func TestHub_EnsureLoadsLazily(t *testing.T) {
	store := directory.NewMemoryStore()
	seedAccount(t, store)
	hub := NewHub(store, testLogger())

	manager := hub.Ensure(context.Background(), "acc-1", "viewer@example.com", "Viewer")

	require.NotNil(t, manager)
	assert.True(t, manager.Active())
	require.Len(t, manager.Snapshot().Profiles, 1)

	// A second Ensure reuses the loaded manager.
	assert.Same(t, manager, hub.Ensure(context.Background(), "acc-1", "viewer@example.com", "Viewer"))
}
