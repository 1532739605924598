// Copyright (c) 2026 Velora. All rights reserved.
// Author: dev@velora.app

/*
Package identity implements the authentication provider for Velora.

It owns account credentials, access-token issuance, password reset, and the
optional federated (OIDC) sign-in flow. Every successful sign-in or sign-out
is published on a change stream; the session layer subscribes to that stream
and is the only consumer of it.

Architecture:

  - Service: Credential verification, registration, reset, change publishing.
  - Broadcaster: The in-process identity change stream.
  - Federated: OIDC authorization-code flow against an external provider.
  - Repositories: PostgreSQL for accounts, Redis for reset tokens.

The package never reads or writes account documents; that is the directory
store's territory.
*/
package identity

import "time"

// # Entity

// User represents one registered identity.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	DisplayName  string     `json:"display_name,omitempty"`
	Provider     string     `json:"provider"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

// Sign-in providers.
const (
	ProviderPassword  = "password"
	ProviderFederated = "oidc"
)

// # Session

// Session is the authenticated state handed to clients and published on the
// change stream after a successful sign-in.
type Session struct {
	UserID      string    `json:"user_id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name,omitempty"`
	AccessToken string    `json:"access_token"`
	IssuedAt    time.Time `json:"issued_at"`
}
