// Copyright (c) 2026 Velora. All rights reserved.
// Author: dev@velora.app

package identity

import (
	"net/http"

	"github.com/velora/velora/internal/platform/apperr"
)

// # Error Taxonomy
//
// Authentication failures map to a small closed set of user-facing messages.
// The message text is part of the client contract: the storefront surfaces
// these strings verbatim as banners, so they must stay stable.

// ErrDuplicateAccount reports a registration attempt for a taken email.
func ErrDuplicateAccount() *apperr.AppError {
	return apperr.Conflict("Email is already registered. Please sign in.")
}

// ErrMalformedEmail reports a syntactically invalid email address.
func ErrMalformedEmail() *apperr.AppError {
	return apperr.ValidationError("Invalid email address.")
}

// ErrWeakPassword reports a password below the minimum length.
func ErrWeakPassword() *apperr.AppError {
	return apperr.ValidationError("Password should be at least 6 characters.")
}

// ErrUnknownAccount reports a sign-in attempt for an unregistered email.
func ErrUnknownAccount() *apperr.AppError {
	return apperr.Unauthorized("No account found with this email.")
}

// ErrWrongCredential reports a failed password check.
func ErrWrongCredential() *apperr.AppError {
	return apperr.Unauthorized("Incorrect password.")
}

// ErrTooManyAttempts reports that the per-email sign-in throttle tripped.
func ErrTooManyAttempts() *apperr.AppError {
	return &apperr.AppError{
		Code:       apperr.CodeRateLimited,
		Message:    "Too many attempts. Please try again later.",
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// ErrNetwork reports an unreachable upstream dependency.
func ErrNetwork(cause error) *apperr.AppError {
	return apperr.Unavailable("Network error. Please check your connection.", cause)
}

// ErrGeneric is the fallback for any unrecognized failure.
func ErrGeneric(cause error) *apperr.AppError {
	return &apperr.AppError{
		Code:       apperr.CodeInternal,
		Message:    "An error occurred. Please try again.",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// MapError normalizes any error from the identity flow into the taxonomy.
// Errors already classified pass through unchanged; everything else becomes
// the generic fallback.
func MapError(err error) *apperr.AppError {
	if appErr := apperr.As(err); appErr != nil {
		return appErr
	}
	return ErrGeneric(err)
}
