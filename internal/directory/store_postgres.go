// Copyright (c) 2026 Velora. All rights reserved.
// Author: dev@velora.app

package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/velora/velora/internal/platform/apperr"
	"github.com/velora/velora/internal/platform/dberr"
)

// # PostgreSQL Store

// PostgresStore persists account documents as JSONB rows, one per account.
//
// Top-level field merges map onto the JSONB concatenation operator, which
// replaces named keys wholesale and keeps the rest of the document intact.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore creates a document store backed by the given pool.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// GetDocument implements [Store].
func (store *PostgresStore) GetDocument(context context.Context, accountID string) (*Account, error) {
	query := `
		SELECT document
		FROM directory.document
		WHERE accountid = $1`

	var raw []byte
	if err := store.db.QueryRow(context, query, accountID).Scan(&raw); err != nil {
		return nil, dberr.Wrap(err, "directory_document_get")
	}

	account := &Account{}
	if err := json.Unmarshal(raw, account); err != nil {
		return nil, fmt.Errorf("directory_document_decode_failed: %w", err)
	}
	return account, nil
}

// SetDocument implements [Store].
func (store *PostgresStore) SetDocument(context context.Context, accountID string, account *Account) error {
	raw, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("directory_document_encode_failed: %w", err)
	}

	query := `
		INSERT INTO directory.document (accountid, document, createdat, updatedat)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (accountid)
		DO UPDATE SET document = EXCLUDED.document, updatedat = EXCLUDED.updatedat`

	if _, err := store.db.Exec(context, query, accountID, raw, time.Now().UTC()); err != nil {
		return dberr.Wrap(err, "directory_document_set")
	}
	return nil
}

// UpdateFields implements [Store].
func (store *PostgresStore) UpdateFields(context context.Context, accountID string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	patch, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("directory_document_patch_encode_failed: %w", err)
	}

	query := `
		UPDATE directory.document
		SET document = document || $2::jsonb, updatedat = $3
		WHERE accountid = $1`

	tag, err := store.db.Exec(context, query, accountID, patch, time.Now().UTC())
	if err != nil {
		return dberr.Wrap(err, "directory_document_update")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Account document")
	}
	return nil
}
