// Copyright (c) 2026 Velora. All rights reserved.
// Author: dev@velora.app

package session

import (
	"context"
	"fmt"
	"time"

	"github.com/velora/velora/internal/directory"
	"github.com/velora/velora/internal/platform/apperr"
	"github.com/velora/velora/internal/platform/constants"
	"github.com/velora/velora/internal/platform/validate"
	"github.com/velora/velora/pkg/slice"
	"github.com/velora/velora/pkg/uuidv7"
)

// CreateProfileInput carries the fields for a new profile.
type CreateProfileInput struct {
	Name         string   `json:"name"`
	Avatar       string   `json:"avatar"`
	IsChild      bool     `json:"isChild"`
	PinProtected bool     `json:"pinProtected"`
	Restrictions []string `json:"restrictions"`
}

/*
CreateProfile adds a profile and makes it the active one.

Invariant checks (profile limit, name length) run against local state
before any directory call, so a rejected create mutates nothing. The new
profile id is a time-ordered unique token, never "default".

Parameters:
  - context: Request context.
  - input: The profile fields.

Returns:
  - *directory.Profile: The created profile, nil when no session is active.
  - error: Validation or persistence failure; the matching error banner is
    already set when non-nil.
*/
func (manager *Manager) CreateProfile(context context.Context, input CreateProfileInput) (*directory.Profile, error) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	if manager.userID == "" {
		return nil, nil
	}

	if err := validateProfileName(input.Name); err != nil {
		manager.banner.SetError(err.Error())
		return nil, err
	}
	if len(manager.profiles) >= constants.MaxProfilesPerAccount {
		err := apperr.InvariantViolation(msgProfileLimit)
		manager.banner.SetError(err.Error())
		return nil, err
	}

	profile := directory.NewProfile(uuidv7.Must(), input.Name, time.Now().UTC())
	profile.Avatar = input.Avatar
	profile.IsChild = input.IsChild
	profile.PinProtected = input.PinProtected
	profile.Restrictions = directory.NewStringSet(input.Restrictions...)

	profiles := append(cloneProfiles(manager.profiles), profile)
	if err := manager.store.UpdateFields(context, manager.userID, map[string]any{
		directory.FieldProfiles:          profiles,
		directory.FieldLastActiveProfile: profile.ID,
	}); err != nil {
		manager.logger.Error("session_profile_create_failed", "user_id", manager.userID, "error", err)
		manager.banner.SetError(msgCreateFailed)
		return nil, fmt.Errorf("session_profile_create_failed: %w", err)
	}

	manager.profiles = profiles
	copied := profile.Clone()
	manager.current = &copied
	manager.banner.SetSuccess(fmt.Sprintf("Profile %q created successfully", profile.Name))

	result := profile.Clone()
	return &result, nil
}

/*
UpdateProfile applies a partial update to one profile.

Parameters:
  - context: Request context.
  - profileID: The profile to update.
  - update: Fields to change; nil fields are left untouched.

Returns:
  - error: NotFound for an unknown id, validation or persistence failure.
    Nil (no-op) when no session is active.
*/
func (manager *Manager) UpdateProfile(context context.Context, profileID string, update ProfileUpdate) error {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	if manager.userID == "" {
		return nil
	}

	if update.Name != nil {
		if err := validateProfileName(*update.Name); err != nil {
			manager.banner.SetError(err.Error())
			return err
		}
	}

	profiles := cloneProfiles(manager.profiles)
	var target *directory.Profile
	for i := range profiles {
		if profiles[i].ID == profileID {
			target = &profiles[i]
			break
		}
	}
	if target == nil {
		return apperr.NotFound("Profile")
	}
	update.applyTo(target)

	if err := manager.store.UpdateFields(context, manager.userID, map[string]any{
		directory.FieldProfiles: profiles,
	}); err != nil {
		manager.logger.Error("session_profile_update_failed", "user_id", manager.userID, "profile_id", profileID, "error", err)
		manager.banner.SetError(msgUpdateFailed)
		return fmt.Errorf("session_profile_update_failed: %w", err)
	}

	manager.profiles = profiles
	if manager.current != nil && manager.current.ID == profileID {
		copied := target.Clone()
		manager.current = &copied
	}
	manager.banner.SetSuccess(msgProfileUpdated)
	return nil
}

/*
DeleteProfile removes a profile. Deleting the last remaining profile is
rejected before any directory call. When the active profile is deleted,
the first remaining profile becomes active.

Parameters:
  - context: Request context.
  - profileID: The profile to delete.

Returns:
  - error: InvariantViolation for the last profile, NotFound for an unknown
    id, or a persistence failure. Nil (no-op) when no session is active.
*/
func (manager *Manager) DeleteProfile(context context.Context, profileID string) error {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	if manager.userID == "" {
		return nil
	}

	if len(manager.profiles) <= 1 {
		err := apperr.InvariantViolation(msgLastProfile)
		manager.banner.SetError(err.Error())
		return err
	}
	if manager.findProfileLocked(profileID) == nil {
		return apperr.NotFound("Profile")
	}

	profiles := slice.Filter(cloneProfiles(manager.profiles), func(profile directory.Profile) bool {
		return profile.ID != profileID
	})

	fields := map[string]any{directory.FieldProfiles: profiles}
	deletedActive := manager.current != nil && manager.current.ID == profileID
	if deletedActive {
		fields[directory.FieldLastActiveProfile] = profiles[0].ID
	}

	if err := manager.store.UpdateFields(context, manager.userID, fields); err != nil {
		manager.logger.Error("session_profile_delete_failed", "user_id", manager.userID, "profile_id", profileID, "error", err)
		manager.banner.SetError(msgDeleteFailed)
		return fmt.Errorf("session_profile_delete_failed: %w", err)
	}

	manager.profiles = profiles
	if deletedActive {
		copied := profiles[0].Clone()
		manager.current = &copied
	}
	manager.banner.SetSuccess(msgProfileDeleted)
	return nil
}

/*
SwitchProfile makes another profile active.

The switch is applied to local state immediately; the lastActiveProfile
write to the directory is best effort, and a failed write is only logged.

Parameters:
  - context: Request context.
  - profileID: The profile to activate.

Returns:
  - *directory.Profile: The newly active profile, nil when no session.
  - error: NotFound for an unknown id.
*/
func (manager *Manager) SwitchProfile(context context.Context, profileID string) (*directory.Profile, error) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	if manager.userID == "" {
		return nil, nil
	}

	target := manager.findProfileLocked(profileID)
	if target == nil {
		return nil, apperr.NotFound("Profile")
	}

	copied := target.Clone()
	manager.current = &copied

	if err := manager.store.UpdateFields(context, manager.userID, map[string]any{
		directory.FieldLastActiveProfile: profileID,
	}); err != nil {
		// The in-memory switch stands regardless.
		manager.logger.Warn("session_profile_switch_persist_failed", "user_id", manager.userID, "profile_id", profileID, "error", err)
	}

	result := target.Clone()
	return &result, nil
}

// # Helpers

func validateProfileName(name string) error {
	validator := &validate.Validator{}
	validator.Required("name", name).MaxLen("name", name, constants.ProfileNameMaxLen)
	if validator.HasErrors() {
		return apperr.ValidationError(msgProfileName, apperr.FieldError{
			Field:   "name",
			Message: msgProfileName,
		})
	}
	return nil
}

func cloneProfiles(profiles []directory.Profile) []directory.Profile {
	return slice.Map(profiles, directory.Profile.Clone)
}
