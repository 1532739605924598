// Copyright (c) 2026 Velora. All rights reserved.
// Author: dev@velora.app

package identity

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/velora/velora/internal/platform/config"
)

// # Federated Sign-In (OIDC)

// Federated drives the OIDC authorization-code flow against an external
// identity provider.
//
// When no provider is configured the value is inert: Enabled reports false
// and the HTTP layer hides the federated routes.
type Federated struct {
	oauth    oauth2.Config
	verifier *oidc.IDTokenVerifier
	enabled  bool
}

/*
NewFederated discovers the configured OIDC provider.

Parameters:
  - context: Used for provider discovery.
  - cfg: Runtime configuration; discovery is skipped when no provider URL
    is set.

Returns:
  - *Federated: The flow driver (possibly disabled).
  - error: Discovery failure against a configured provider.
*/
func NewFederated(context context.Context, cfg *config.Config) (*Federated, error) {
	if !cfg.FederatedEnabled() {
		return &Federated{}, nil
	}

	provider, err := oidc.NewProvider(context, cfg.OIDCProviderURL)
	if err != nil {
		return nil, fmt.Errorf("identity_oidc_discovery_failed: %w", err)
	}

	return &Federated{
		oauth: oauth2.Config{
			ClientID:     cfg.OIDCClientID,
			ClientSecret: cfg.OIDCClientSecret,
			RedirectURL:  cfg.OIDCRedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
		verifier: provider.Verifier(&oidc.Config{ClientID: cfg.OIDCClientID}),
		enabled:  true,
	}, nil
}

// Enabled reports whether a provider is configured.
func (federated *Federated) Enabled() bool {
	return federated.enabled
}

// AuthCodeURL returns the provider URL to redirect the browser to.
func (federated *Federated) AuthCodeURL(state string) string {
	return federated.oauth.AuthCodeURL(state)
}

/*
Exchange redeems an authorization code and verifies the returned ID token.

Parameters:
  - context: Request context.
  - code: The authorization code from the provider callback.

Returns:
  - *FederatedIdentity: The verified subject, email, and display name.
  - error: Exchange or verification failure.
*/
func (federated *Federated) Exchange(context context.Context, code string) (*FederatedIdentity, error) {
	token, err := federated.oauth.Exchange(context, code)
	if err != nil {
		return nil, ErrNetwork(fmt.Errorf("identity_oidc_exchange_failed: %w", err))
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return nil, fmt.Errorf("identity_oidc_missing_id_token")
	}

	idToken, err := federated.verifier.Verify(context, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("identity_oidc_verify_failed: %w", err)
	}

	var claims struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("identity_oidc_claims_failed: %w", err)
	}

	return &FederatedIdentity{
		Subject:     idToken.Subject,
		Email:       claims.Email,
		DisplayName: claims.Name,
	}, nil
}
