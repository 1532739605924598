// Copyright (c) 2026 Velora. All rights reserved.
// Author: dev@velora.app

package identity

import (
	"context"
	"time"
)

// # Repository Contracts

// UserRepository is the persistence contract for identity accounts.
type UserRepository interface {
	/*
		Create inserts a new user.

		Parameters:
		  - context: Request context.
		  - user: The user to persist; ID and timestamps must be set.

		Returns:
		  - error: apperr.Conflict on a duplicate email.
	*/
	Create(context context.Context, user *User) error

	// FindByID loads a user by primary key. Returns apperr.NotFound when absent.
	FindByID(context context.Context, id string) (*User, error)

	// FindByEmail loads a user by unique email. Returns apperr.NotFound when absent.
	FindByEmail(context context.Context, email string) (*User, error)

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(context context.Context, id, passwordHash string) error

	// UpdateLastLogin records the most recent successful sign-in time.
	UpdateLastLogin(context context.Context, id string, at time.Time) error
}

// ResetTokenRepository stores short-lived password-reset tokens.
//
// Tokens are opaque to the repository; the service hashes them before
// storage so a cache dump never exposes a usable token.
type ResetTokenRepository interface {
	// Save stores a token-hash to user-id mapping with an expiry.
	Save(context context.Context, tokenHash, userID string, timeToLive time.Duration) error

	// Consume returns the user id for a token hash and deletes the mapping.
	// Returns apperr.NotFound when the token is unknown or expired.
	Consume(context context.Context, tokenHash string) (string, error)
}
