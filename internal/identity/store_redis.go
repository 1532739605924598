// Copyright (c) 2026 Velora. All rights reserved.
// Author: dev@velora.app

package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/velora/velora/internal/platform/apperr"
	"github.com/velora/velora/internal/platform/constants"
)

// # Redis Reset-Token Repository

// RedisResetTokenRepository keeps password-reset tokens in Redis with a TTL
// so expiry needs no sweeper.
type RedisResetTokenRepository struct {
	client *redis.Client
}

// NewRedisResetTokenRepository creates a reset-token repository.
func NewRedisResetTokenRepository(client *redis.Client) *RedisResetTokenRepository {
	return &RedisResetTokenRepository{client: client}
}

// Save implements [ResetTokenRepository].
func (repository *RedisResetTokenRepository) Save(context context.Context, tokenHash, userID string, timeToLive time.Duration) error {
	key := constants.RedisPrefixResetToken + tokenHash
	if err := repository.client.Set(context, key, userID, timeToLive).Err(); err != nil {
		return fmt.Errorf("identity_reset_token_save_failed: %w", err)
	}
	return nil
}

// Consume implements [ResetTokenRepository].
func (repository *RedisResetTokenRepository) Consume(context context.Context, tokenHash string) (string, error) {
	key := constants.RedisPrefixResetToken + tokenHash

	userID, err := repository.client.GetDel(context, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", apperr.NotFound("Reset token")
	}
	if err != nil {
		return "", fmt.Errorf("identity_reset_token_consume_failed: %w", err)
	}
	return userID, nil
}
