// Copyright (c) 2026 Velora. All rights reserved.
// Author: dev@velora.app

package directory

import "context"

// # Store Contract

// Store is the persistence contract for account documents.
//
// Writes are last-writer-wins: the store performs no versioning and no
// conflict detection. Callers that need read-modify-write semantics must
// re-read before writing.
type Store interface {
	/*
		GetDocument loads the document for an account.

		Parameters:
		  - context: Request context.
		  - accountID: The owning account id.

		Returns:
		  - *Account: The stored document.
		  - error: apperr.NotFound when no document exists yet.
	*/
	GetDocument(context context.Context, accountID string) (*Account, error)

	/*
		SetDocument writes the whole document, creating it when absent.

		Parameters:
		  - context: Request context.
		  - accountID: The owning account id.
		  - account: The full document to store.

		Returns:
		  - error: Storage failure, if any.
	*/
	SetDocument(context context.Context, accountID string, account *Account) error

	/*
		UpdateFields merges the given top-level fields into an existing
		document. Fields not named in the map are left untouched; named
		fields are replaced wholesale.

		Parameters:
		  - context: Request context.
		  - accountID: The owning account id.
		  - fields: Top-level field names (see Field* constants) to values.

		Returns:
		  - error: apperr.NotFound when no document exists for the account.
	*/
	UpdateFields(context context.Context, accountID string, fields map[string]any) error
}
