// Copyright (c) 2026 Velora. All rights reserved.
// Author: dev@velora.app

package catalog

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/velora/velora/internal/platform/constants"
	"github.com/velora/velora/internal/platform/ctxutil"
)

// # Read-Through Cache

// Cache wraps a [Provider] with a Redis read-through layer for the
// featured title and genre rows. Search goes straight through: queries
// are unbounded and canned lookups are cheap.
//
// Redis failures degrade to the inner provider; the catalog never goes
// down because the cache did.
type Cache struct {
	client *redis.Client
	inner  Provider
}

// NewCache wraps a provider.
func NewCache(client *redis.Client, inner Provider) *Cache {
	return &Cache{client: client, inner: inner}
}

// GetFeatured implements [Provider].
func (cache *Cache) GetFeatured(ctx context.Context) (*ContentItem, error) {
	item := &ContentItem{}
	if cache.lookup(ctx, constants.RedisPrefixFeatured, item) {
		return item, nil
	}

	item, err := cache.inner.GetFeatured(ctx)
	if err != nil {
		return nil, err
	}
	cache.fill(ctx, constants.RedisPrefixFeatured, item)
	return item, nil
}

// GetByGenre implements [Provider].
func (cache *Cache) GetByGenre(ctx context.Context, genre string) ([]ContentItem, error) {
	key := constants.RedisPrefixCatalog + genre

	items := []ContentItem{}
	if cache.lookup(ctx, key, &items) {
		return items, nil
	}

	items, err := cache.inner.GetByGenre(ctx, genre)
	if err != nil {
		return nil, err
	}
	cache.fill(ctx, key, items)
	return items, nil
}

// Search implements [Provider]. Never cached.
func (cache *Cache) Search(ctx context.Context, query string) ([]ContentItem, error) {
	return cache.inner.Search(ctx, query)
}

// lookup reports whether the key was found and decoded into target.
func (cache *Cache) lookup(ctx context.Context, key string, target any) bool {
	raw, err := cache.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			ctxutil.GetLogger(ctx).Warn("catalog_cache_read_failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(raw, target); err != nil {
		ctxutil.GetLogger(ctx).Warn("catalog_cache_decode_failed", "key", key, "error", err)
		return false
	}
	return true
}

// fill stores a value best effort.
func (cache *Cache) fill(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := cache.client.Set(ctx, key, raw, constants.CatalogCacheTTL).Err(); err != nil {
		ctxutil.GetLogger(ctx).Warn("catalog_cache_write_failed", "key", key, "error", err)
	}
}
