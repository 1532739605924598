// Copyright (c) 2026 Velora. All rights reserved.
// Author: dev@velora.app

/*
Package directory models the remote directory store: a document-oriented
persistence service holding exactly one document per account.

The document embeds everything the storefront needs at sign-in time —
preferences, subscription status, and the ordered list of viewing profiles
with their interaction state.

# Architecture

  - Entities: Account, Profile, Preferences, Subscription (pure data).
  - Store: The persistence contract (read-one, write-whole, merge-fields).
  - Implementations: PostgreSQL JSONB (production), in-memory (tests).

The session layer is the sole writer of these documents.
*/
package directory

import (
	"encoding/json"
	"sort"
	"time"
)

// # Document Field Names

// Top-level merge keys accepted by [Store.UpdateFields]. The store merges at
// the top level only; list-valued fields such as profiles are always written
// as full-array replacements.
const (
	FieldPreferences       = "preferences"
	FieldSubscription      = "subscription"
	FieldProfiles          = "profiles"
	FieldLastActiveProfile = "lastActiveProfile"
	FieldLastLogin         = "lastLogin"
	FieldWatchHistory      = "watchHistory"
	FieldAnalytics         = "analytics"
)

// # Subscription Status

// SubscriptionStatus enumerates the lifecycle states of a subscription.
type SubscriptionStatus string

const (
	SubscriptionInactive  SubscriptionStatus = "inactive"
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

// # Entities

// Account is the root persisted record for one authenticated identity.
type Account struct {
	Email             string        `json:"email"`
	CreatedAt         time.Time     `json:"createdAt"`
	LastLogin         time.Time     `json:"lastLogin"`
	Preferences       *Preferences  `json:"preferences,omitempty"`
	Subscription      *Subscription `json:"subscription,omitempty"`
	Profiles          []Profile     `json:"profiles"`
	LastActiveProfile string        `json:"lastActiveProfile,omitempty"`
	WatchHistory      []WatchEvent  `json:"watchHistory"`
	Analytics         Analytics     `json:"analytics"`
}

// Preferences holds the account-wide playback and UI settings.
type Preferences struct {
	Language       string `json:"language"`
	Autoplay       bool   `json:"autoplay"`
	Quality        string `json:"quality"` // 'sd', 'hd', 'uhd'
	Notifications  bool   `json:"notifications"`
	MaturityRating string `json:"maturityRating"`
}

// Subscription mirrors the billing state attached to the account.
type Subscription struct {
	Status            SubscriptionStatus `json:"status"`
	Plan              string             `json:"plan,omitempty"`
	StartDate         *time.Time         `json:"startDate,omitempty"`
	EndDate           *time.Time         `json:"endDate,omitempty"`
	BillingCustomerID string             `json:"billingCustomerId,omitempty"`
}

// Profile is one viewing persona within an Account.
//
// # Invariants
//
// Profile ids are unique within an account. A movie id appears in at most
// one of LikedMovies / DislikedMovies at any time.
type Profile struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Avatar           string         `json:"avatar,omitempty"`
	IsChild          bool           `json:"isChild"`
	PinProtected     bool           `json:"pinProtected"`
	Restrictions     StringSet      `json:"restrictions"`
	LikedMovies      StringSet      `json:"likedMovies"`
	DislikedMovies   StringSet      `json:"dislikedMovies"`
	Watchlist        StringSet      `json:"watchlist"`
	ContinueWatching []ResumeMarker `json:"continueWatching"`
	WatchStats       WatchStats     `json:"watchStats"`
	CreatedAt        time.Time      `json:"createdAt"`
}

// ResumeMarker records where playback stopped for one title.
type ResumeMarker struct {
	MovieID         string    `json:"movieId"`
	PositionSeconds int       `json:"positionSeconds"`
	DurationSeconds int       `json:"durationSeconds"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// WatchStats aggregates viewing counters per profile.
type WatchStats struct {
	TotalHours  float64    `json:"totalHours"`
	TotalMovies int        `json:"totalMovies"`
	TotalSeries int        `json:"totalSeries"`
	LastWatched *time.Time `json:"lastWatched,omitempty"`
}

// WatchEvent is one account-level watch-history entry.
type WatchEvent struct {
	MovieID   string    `json:"movieId"`
	WatchedAt time.Time `json:"watchedAt"`
}

// Analytics aggregates account-level viewing metrics.
type Analytics struct {
	TotalWatchTime float64    `json:"totalWatchTime"`
	MoviesWatched  int        `json:"moviesWatched"`
	SeriesWatched  int        `json:"seriesWatched"`
	AverageRating  float64    `json:"averageRating"`
	FavoriteGenres []string   `json:"favoriteGenres"`
	LastWatched    *time.Time `json:"lastWatched,omitempty"`
}

// # Constructors

// DefaultPreferences returns the fixed default preference set applied to
// accounts whose stored document carries no preferences.
func DefaultPreferences() Preferences {
	return Preferences{
		Language:       "en",
		Autoplay:       true,
		Quality:        "hd",
		Notifications:  true,
		MaturityRating: "PG-13",
	}
}

// NewAccount builds a fresh account document for a first successful sign-in:
// default preferences, an inactive subscription shell, and no profiles yet.
func NewAccount(email string, now time.Time) *Account {
	prefs := DefaultPreferences()
	return &Account{
		Email:        email,
		CreatedAt:    now,
		LastLogin:    now,
		Preferences:  &prefs,
		Subscription: &Subscription{Status: SubscriptionInactive},
		Profiles:     []Profile{},
		WatchHistory: []WatchEvent{},
		Analytics:    Analytics{FavoriteGenres: []string{}},
	}
}

// NewProfile builds a profile with zeroed interaction sets and stats.
func NewProfile(id, name string, now time.Time) Profile {
	return Profile{
		ID:               id,
		Name:             name,
		Restrictions:     NewStringSet(),
		LikedMovies:      NewStringSet(),
		DislikedMovies:   NewStringSet(),
		Watchlist:        NewStringSet(),
		ContinueWatching: []ResumeMarker{},
		CreatedAt:        now,
	}
}

// # Document Helpers

// FindProfile returns a pointer into Profiles for the given id, or nil.
func (account *Account) FindProfile(id string) *Profile {
	for i := range account.Profiles {
		if account.Profiles[i].ID == id {
			return &account.Profiles[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the account document.
//
// Copies go through the JSON codec so that the result is exactly what a
// remote round trip would produce.
func (account *Account) Clone() *Account {
	raw, err := json.Marshal(account)
	if err != nil {
		// The document model contains only JSON-safe types.
		panic("directory: account not marshallable: " + err.Error())
	}

	copied := &Account{}
	if err := json.Unmarshal(raw, copied); err != nil {
		panic("directory: account not unmarshallable: " + err.Error())
	}
	return copied
}

// Clone returns a deep copy of the profile.
func (profile Profile) Clone() Profile {
	copied := profile
	copied.Restrictions = profile.Restrictions.Clone()
	copied.LikedMovies = profile.LikedMovies.Clone()
	copied.DislikedMovies = profile.DislikedMovies.Clone()
	copied.Watchlist = profile.Watchlist.Clone()
	copied.ContinueWatching = append([]ResumeMarker(nil), profile.ContinueWatching...)
	return copied
}

// # String Set

// StringSet is an unordered unique-element container for content ids and
// restriction tags.
//
// # Wire Format
//
// It marshals as a sorted JSON array and deduplicates on unmarshal, so that
// repeated toggles can never grow the stored document.
type StringSet map[string]struct{}

// NewStringSet builds a set from the given values, dropping duplicates.
func NewStringSet(values ...string) StringSet {
	set := make(StringSet, len(values))
	for _, value := range values {
		set[value] = struct{}{}
	}
	return set
}

// Add inserts a value. Adding an existing value is a no-op.
func (set StringSet) Add(value string) {
	set[value] = struct{}{}
}

// Remove deletes a value. Removing an absent value is a no-op.
func (set StringSet) Remove(value string) {
	delete(set, value)
}

// Has reports whether the value is present.
func (set StringSet) Has(value string) bool {
	_, found := set[value]
	return found
}

// Len returns the number of elements.
func (set StringSet) Len() int {
	return len(set)
}

// Values returns the elements sorted ascending.
func (set StringSet) Values() []string {
	values := make([]string, 0, len(set))
	for value := range set {
		values = append(values, value)
	}
	sort.Strings(values)
	return values
}

// Clone returns an independent copy of the set.
func (set StringSet) Clone() StringSet {
	copied := make(StringSet, len(set))
	for value := range set {
		copied[value] = struct{}{}
	}
	return copied
}

// MarshalJSON encodes the set as a sorted JSON array.
func (set StringSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(set.Values())
}

// UnmarshalJSON decodes a JSON array, collapsing duplicate elements.
func (set *StringSet) UnmarshalJSON(data []byte) error {
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*set = NewStringSet(values...)
	return nil
}
