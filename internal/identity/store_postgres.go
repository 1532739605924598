// Copyright (c) 2026 Velora. All rights reserved.
// Author: dev@velora.app

package identity

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/velora/velora/internal/platform/dberr"
)

// PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

// # PostgreSQL Repository

// PostgresUserRepository persists users in the users.account table.
type PostgresUserRepository struct {
	db *pgxpool.Pool
}

// NewPostgresUserRepository creates a user repository backed by the pool.
func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// Create implements [UserRepository].
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := `
		INSERT INTO users.account (id, email, passwordhash, displayname, provider, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := repository.db.Exec(context, query,
		user.ID, user.Email, user.PasswordHash, user.DisplayName,
		user.Provider, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrDuplicateAccount()
		}
		return dberr.Wrap(err, "identity_user_create")
	}
	return nil
}

// FindByID implements [UserRepository].
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	return repository.findOne(context, `WHERE id = $1`, id)
}

// FindByEmail implements [UserRepository].
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	return repository.findOne(context, `WHERE email = $1`, email)
}

func (repository *PostgresUserRepository) findOne(context context.Context, where string, arg any) (*User, error) {
	query := `
		SELECT id, email, passwordhash, displayname, provider, createdat, updatedat, lastloginat
		FROM users.account ` + where

	user := &User{}
	err := repository.db.QueryRow(context, query, arg).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.DisplayName,
		&user.Provider, &user.CreatedAt, &user.UpdatedAt, &user.LastLoginAt)
	if err != nil {
		return nil, dberr.Wrap(err, "identity_user_find")
	}
	return user, nil
}

// UpdatePassword implements [UserRepository].
func (repository *PostgresUserRepository) UpdatePassword(context context.Context, id, passwordHash string) error {
	query := `
		UPDATE users.account
		SET passwordhash = $2, updatedat = $3
		WHERE id = $1`

	if _, err := repository.db.Exec(context, query, id, passwordHash, time.Now().UTC()); err != nil {
		return dberr.Wrap(err, "identity_user_update_password")
	}
	return nil
}

// UpdateLastLogin implements [UserRepository].
func (repository *PostgresUserRepository) UpdateLastLogin(context context.Context, id string, at time.Time) error {
	query := `
		UPDATE users.account
		SET lastloginat = $2, updatedat = $2
		WHERE id = $1`

	if _, err := repository.db.Exec(context, query, id, at); err != nil {
		return dberr.Wrap(err, "identity_user_update_last_login")
	}
	return nil
}
