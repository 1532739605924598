// Copyright (c) 2026 Velora. All rights reserved.
// Author: dev@velora.app

package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/velora/velora/internal/platform/apperr"
)

// # In-Memory Store

// MemoryStore is a Store kept entirely in process memory.
//
// Documents round-trip through the JSON codec on every read and write, so
// callers observe the same value semantics as the PostgreSQL store. Used by
// tests and by local development without a database.
type MemoryStore struct {
	mu        sync.Mutex
	documents map[string]*Account

	// FailWrites, when set, makes every write operation return this error.
	// Intended for exercising persistence-failure paths in tests.
	FailWrites error
}

// NewMemoryStore creates an empty in-memory document store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{documents: make(map[string]*Account)}
}

// GetDocument implements [Store].
func (store *MemoryStore) GetDocument(context context.Context, accountID string) (*Account, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	account, found := store.documents[accountID]
	if !found {
		return nil, apperr.NotFound("Account document")
	}
	return account.Clone(), nil
}

// SetDocument implements [Store].
func (store *MemoryStore) SetDocument(context context.Context, accountID string, account *Account) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.FailWrites != nil {
		return store.FailWrites
	}
	store.documents[accountID] = account.Clone()
	return nil
}

// UpdateFields implements [Store].
func (store *MemoryStore) UpdateFields(context context.Context, accountID string, fields map[string]any) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.FailWrites != nil {
		return store.FailWrites
	}

	account, found := store.documents[accountID]
	if !found {
		return apperr.NotFound("Account document")
	}

	// Merge at the top level through raw JSON, mirroring the JSONB
	// concatenation the PostgreSQL store performs.
	raw, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("directory_document_encode_failed: %w", err)
	}
	merged := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &merged); err != nil {
		return fmt.Errorf("directory_document_decode_failed: %w", err)
	}
	for name, value := range fields {
		encoded, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("directory_document_patch_encode_failed: %w", err)
		}
		merged[name] = encoded
	}
	raw, err = json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("directory_document_merge_failed: %w", err)
	}

	updated := &Account{}
	if err := json.Unmarshal(raw, updated); err != nil {
		return fmt.Errorf("directory_document_merge_decode_failed: %w", err)
	}
	store.documents[accountID] = updated
	return nil
}
