// Copyright (c) 2026 Velora. All rights reserved.
// Author: dev@velora.app

package identity

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/velora/velora/internal/platform/apperr"
	"github.com/velora/velora/internal/platform/ctxutil"
	"github.com/velora/velora/internal/platform/sec"
	"github.com/velora/velora/pkg/uuidv7"
)

// # Policy

const (
	// AccessTokenTTL is the lifetime of issued access tokens.
	AccessTokenTTL = 1 * time.Hour

	// ResetTokenTTL is how long a password-reset token stays redeemable.
	ResetTokenTTL = 1 * time.Hour

	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 6

	resetTokenBytes = 32
)

// TokenProvider issues signed access tokens. Implemented by [sec.TokenService].
type TokenProvider interface {
	GenerateAccessToken(userID, email, displayName string, timeToLive time.Duration) (string, error)
}

// # Service

// Service implements registration, sign-in, sign-out, and password reset.
type Service struct {
	users       UserRepository
	resetTokens ResetTokenRepository
	tokens      TokenProvider
	stream      *Broadcaster
	throttle    *loginThrottle
}

// NewService wires an identity service from its dependencies.
func NewService(users UserRepository, resetTokens ResetTokenRepository, tokens TokenProvider, stream *Broadcaster) *Service {
	return &Service{
		users:       users,
		resetTokens: resetTokens,
		tokens:      tokens,
		stream:      stream,
		throttle:    newLoginThrottle(),
	}
}

// SignUpInput carries the registration form fields.
type SignUpInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

/*
SignUp registers a new password account and signs it in immediately.

Parameters:
  - context: Request context.
  - input: Email, password, and optional display name.

Returns:
  - *Session: The freshly issued session.
  - error: One of the taxonomy errors (duplicate account, malformed email,
    weak password) or a storage failure.
*/
func (service *Service) SignUp(context context.Context, input SignUpInput) (*Session, error) {
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if len(input.Password) < MinPasswordLength {
		return nil, ErrWeakPassword()
	}

	passwordHash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("identity_sign_up_hash_failed: %w", err)
	}

	now := time.Now().UTC()
	user := &User{
		ID:           uuidv7.Must(),
		Email:        email,
		PasswordHash: passwordHash,
		DisplayName:  strings.TrimSpace(input.DisplayName),
		Provider:     ProviderPassword,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := service.users.Create(context, user); err != nil {
		return nil, err
	}

	return service.issueSession(context, user)
}

/*
SignInWithPassword verifies credentials and establishes a session.

Repeated failures for one email trip a throttle that rejects further
attempts until capacity regenerates.

Parameters:
  - context: Request context.
  - email: The account email.
  - password: The plain-text password to verify.

Returns:
  - *Session: The issued session on success.
  - error: Taxonomy error (unknown account, wrong credential, too many
    attempts) or a storage failure.
*/
func (service *Service) SignInWithPassword(context context.Context, email, password string) (*Session, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if !service.throttle.Allow(normalized) {
		return nil, ErrTooManyAttempts()
	}

	user, err := service.users.FindByEmail(context, normalized)
	if err != nil {
		if appErr := apperr.As(err); appErr != nil && appErr.Code == apperr.CodeNotFound {
			return nil, ErrUnknownAccount()
		}
		return nil, err
	}

	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrWrongCredential()
	}

	return service.issueSession(context, user)
}

// FederatedIdentity is the verified claim set returned by the OIDC provider.
type FederatedIdentity struct {
	Subject     string
	Email       string
	DisplayName string
}

/*
SignInFederated establishes a session for an externally verified identity,
registering the account on first sight.

Parameters:
  - context: Request context.
  - identity: Claims extracted from a verified ID token.

Returns:
  - *Session: The issued session.
  - error: Validation or storage failure.
*/
func (service *Service) SignInFederated(context context.Context, identity FederatedIdentity) (*Session, error) {
	email, err := normalizeEmail(identity.Email)
	if err != nil {
		return nil, err
	}

	user, err := service.users.FindByEmail(context, email)
	if err != nil {
		appErr := apperr.As(err)
		if appErr == nil || appErr.Code != apperr.CodeNotFound {
			return nil, err
		}

		now := time.Now().UTC()
		user = &User{
			ID:          uuidv7.Must(),
			Email:       email,
			DisplayName: strings.TrimSpace(identity.DisplayName),
			Provider:    ProviderFederated,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := service.users.Create(context, user); err != nil {
			return nil, err
		}
	}

	return service.issueSession(context, user)
}

// SignOut publishes the sign-out change for the user. Access tokens are
// stateless, so there is nothing to revoke server-side.
func (service *Service) SignOut(context context.Context, userID string) {
	service.stream.Publish(Change{UserID: userID})
}

/*
SendPasswordReset issues a single-use reset token for the account.

To avoid account enumeration the call succeeds silently when the email is
unknown; no token is issued in that case.

Parameters:
  - context: Request context.
  - email: The account email.

Returns:
  - string: The plain reset token, empty for unknown accounts. The caller
    is responsible for delivering it to the user out of band.
  - error: Validation or storage failure.
*/
func (service *Service) SendPasswordReset(context context.Context, email string) (string, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return "", err
	}

	user, err := service.users.FindByEmail(context, normalized)
	if err != nil {
		if appErr := apperr.As(err); appErr != nil && appErr.Code == apperr.CodeNotFound {
			return "", nil
		}
		return "", err
	}

	token, err := sec.GenerateSecureToken(resetTokenBytes)
	if err != nil {
		return "", fmt.Errorf("identity_reset_token_generate_failed: %w", err)
	}
	if err := service.resetTokens.Save(context, sec.HashToken(token), user.ID, ResetTokenTTL); err != nil {
		return "", err
	}
	return token, nil
}

/*
ResetPassword redeems a reset token and replaces the account password.

Parameters:
  - context: Request context.
  - token: The plain token from [Service.SendPasswordReset].
  - newPassword: The replacement password.

Returns:
  - error: Unauthorized when the token is unknown or expired, weak-password
    validation failure, or a storage failure.
*/
func (service *Service) ResetPassword(context context.Context, token, newPassword string) error {
	if len(newPassword) < MinPasswordLength {
		return ErrWeakPassword()
	}

	userID, err := service.resetTokens.Consume(context, sec.HashToken(token))
	if err != nil {
		if appErr := apperr.As(err); appErr != nil && appErr.Code == apperr.CodeNotFound {
			return apperr.Unauthorized("Reset link is invalid or has expired.")
		}
		return err
	}

	passwordHash, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("identity_reset_hash_failed: %w", err)
	}
	return service.users.UpdatePassword(context, userID, passwordHash)
}

// # Internals

// issueSession signs a token, records the login time, and publishes the
// sign-in change.
func (service *Service) issueSession(context context.Context, user *User) (*Session, error) {
	accessToken, err := service.tokens.GenerateAccessToken(user.ID, user.Email, user.DisplayName, AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("identity_token_issue_failed: %w", err)
	}

	now := time.Now().UTC()
	if err := service.users.UpdateLastLogin(context, user.ID, now); err != nil {
		// Best effort: a stale login timestamp never blocks a sign-in.
		ctxutil.GetLogger(context).Warn("identity_last_login_update_failed",
			"user_id", user.ID, "error", err)
	}

	session := &Session{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		AccessToken: accessToken,
		IssuedAt:    now,
	}
	service.stream.Publish(Change{UserID: user.ID, Session: session})
	return session, nil
}

// normalizeEmail lower-cases, trims, and syntax-checks an email address.
func normalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", ErrMalformedEmail()
	}
	if _, err := mail.ParseAddress(normalized); err != nil {
		return "", ErrMalformedEmail()
	}
	return normalized, nil
}
