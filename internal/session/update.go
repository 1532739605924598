// Copyright (c) 2026 Velora. All rights reserved.
// Author: dev@velora.app

package session

import "github.com/velora/velora/internal/directory"

// # Partial Updates
//
// Update payloads use pointer fields so "absent" and "set to zero value"
// stay distinguishable. Only non-nil fields are applied.

// ProfileUpdate is a partial update for one profile.
type ProfileUpdate struct {
	Name         *string   `json:"name,omitempty"`
	Avatar       *string   `json:"avatar,omitempty"`
	IsChild      *bool     `json:"isChild,omitempty"`
	PinProtected *bool     `json:"pinProtected,omitempty"`
	Restrictions *[]string `json:"restrictions,omitempty"`
}

// applyTo merges the set fields into the profile.
func (update ProfileUpdate) applyTo(profile *directory.Profile) {
	if update.Name != nil {
		profile.Name = *update.Name
	}
	if update.Avatar != nil {
		profile.Avatar = *update.Avatar
	}
	if update.IsChild != nil {
		profile.IsChild = *update.IsChild
	}
	if update.PinProtected != nil {
		profile.PinProtected = *update.PinProtected
	}
	if update.Restrictions != nil {
		profile.Restrictions = directory.NewStringSet(*update.Restrictions...)
	}
}

// PreferencesUpdate is a partial update for account preferences.
type PreferencesUpdate struct {
	Language       *string `json:"language,omitempty"`
	Autoplay       *bool   `json:"autoplay,omitempty"`
	Quality        *string `json:"quality,omitempty"`
	Notifications  *bool   `json:"notifications,omitempty"`
	MaturityRating *string `json:"maturityRating,omitempty"`
}

// applyTo merges the set fields into the preferences.
func (update PreferencesUpdate) applyTo(preferences *directory.Preferences) {
	if update.Language != nil {
		preferences.Language = *update.Language
	}
	if update.Autoplay != nil {
		preferences.Autoplay = *update.Autoplay
	}
	if update.Quality != nil {
		preferences.Quality = *update.Quality
	}
	if update.Notifications != nil {
		preferences.Notifications = *update.Notifications
	}
	if update.MaturityRating != nil {
		preferences.MaturityRating = *update.MaturityRating
	}
}
