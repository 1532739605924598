// Copyright (c) 2026 Velora. All rights reserved.
// Author: dev@velora.app

package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	return NewService(0)
}

func TestService_GetFeatured(t *testing.T) {
	service := newTestService()

	item, err := service.GetFeatured(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "The Midnight Sky", item.Title)
	assert.NotEmpty(t, item.VideoURL)
	assert.NotEmpty(t, item.Gradient)
}

func TestService_GetByGenre(t *testing.T) {
	service := newTestService()

	t.Run("known_genre", func(t *testing.T) {
		items, err := service.GetByGenre(context.Background(), "action")

		require.NoError(t, err)
		require.Len(t, items, 5)
		assert.Equal(t, "Extraction", items[0].Title)
	})

	t.Run("case_insensitive", func(t *testing.T) {
		items, err := service.GetByGenre(context.Background(), "Drama")

		require.NoError(t, err)
		assert.Len(t, items, 4)
	})

	t.Run("unknown_genre_yields_empty_row", func(t *testing.T) {
		items, err := service.GetByGenre(context.Background(), "western")

		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestService_Search(t *testing.T) {
	service := newTestService()

	t.Run("case_insensitive_substring", func(t *testing.T) {
		items, err := service.Search(context.Background(), "old guard")

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "The Old Guard", items[0].Title)
	})

	t.Run("results_are_capped", func(t *testing.T) {
		items, err := service.Search(context.Background(), "the")

		require.NoError(t, err)
		assert.Len(t, items, 8)
	})

	t.Run("blank_query_yields_nothing", func(t *testing.T) {
		items, err := service.Search(context.Background(), "   ")

		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("no_match", func(t *testing.T) {
		items, err := service.Search(context.Background(), "zzzz")

		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestService_Genres(t *testing.T) {
	service := newTestService()

	genres := service.Genres()

	assert.Equal(t, []string{"action", "comedy", "drama", "horror", "documentary"}, genres)

	// Callers get a copy, not the backing slice.
	genres[0] = "mutated"
	assert.Equal(t, "action", service.Genres()[0])
}

func TestService_WaitHonorsCancellation(t *testing.T) {
	service := NewService(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.GetFeatured(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}
