// Copyright (c) 2026 Velora. All rights reserved.
// Author: dev@velora.app

package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velora/velora/internal/platform/apperr"
)

func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "valid_value", value: "hello", wantErr: false},
		{name: "empty_string", value: "", wantErr: true},
		{name: "whitespace_only", value: "   ", wantErr: true},
		{name: "tab_and_newline", value: "\t\n", wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			v := &Validator{}
			err := v.Required("field", test.value).Err()
			if test.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidator_MaxLen(t *testing.T) {
	v := &Validator{}
	assert.NoError(t, v.MaxLen("name", "12345678901234567890", 20).Err())

	v = &Validator{}
	assert.Error(t, v.MaxLen("name", "123456789012345678901", 20).Err())

	// Unicode characters count as one.
	v = &Validator{}
	assert.NoError(t, v.MaxLen("name", "héllo wörld é", 20).Err())
}

func TestValidator_Email(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "valid_email", value: "viewer@example.com", wantErr: false},
		{name: "missing_at", value: "viewer.example.com", wantErr: true},
		{name: "missing_domain", value: "viewer@", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			v := &Validator{}
			err := v.Email("email", test.value).Err()
			if test.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidator_LanguageTag(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "bare_language", value: "en", wantErr: false},
		{name: "language_with_region", value: "pt-BR", wantErr: false},
		{name: "not_a_tag", value: "not a tag!", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			v := &Validator{}
			err := v.LanguageTag("language", test.value).Err()
			if test.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidator_OneOf(t *testing.T) {
	v := &Validator{}
	assert.NoError(t, v.OneOf("quality", "hd", "sd", "hd", "uhd").Err())

	v = &Validator{}
	assert.Error(t, v.OneOf("quality", "8k", "sd", "hd", "uhd").Err())
}

func TestValidator_Chain(t *testing.T) {
	v := &Validator{}
	err := v.
		Required("name", "Kids").
		MaxLen("name", "Kids", 20).
		OneOf("quality", "hd", "sd", "hd", "uhd").
		Err()

	assert.NoError(t, err)
}

func TestValidator_ChainCollectsAllFailures(t *testing.T) {
	v := &Validator{}
	err := v.
		Required("name", "").
		Email("email", "nope").
		Err()

	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperr.CodeValidation, appErr.Code)
	assert.Len(t, appErr.Details, 2)
	assert.True(t, v.HasErrors())
}

func TestValidator_Custom(t *testing.T) {
	v := &Validator{}
	assert.Error(t, v.Custom("position", true, "Must not be negative").Err())

	v = &Validator{}
	assert.NoError(t, v.Custom("position", false, "Must not be negative").Err())
}
