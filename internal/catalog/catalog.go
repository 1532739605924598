// Copyright (c) 2026 Velora. All rights reserved.
// Author: dev@velora.app

/*
Package catalog serves the storefront's browsing surface: a featured title,
genre rows, and title search.

The content is a canned, in-process dataset standing in for a licensed
metadata feed. Lookups simulate upstream latency so client loading states
stay exercised in development; the latency is injectable and set to zero
in tests.

Architecture:

  - Service: The canned provider with simulated latency.
  - Cache: Redis read-through wrapper over any Provider.
  - Handler: The HTTP surface under /catalog.
*/
package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/velora/velora/internal/platform/constants"
)

// ContentItem is one title in the catalog. Field names follow the metadata
// feed's wire format; only the featured title carries overview, video, and
// gradient data.
type ContentItem struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview,omitempty"`
	PosterPath   string  `json:"poster_path,omitempty"`
	BackdropPath string  `json:"backdrop_path,omitempty"`
	ReleaseDate  string  `json:"release_date"`
	VoteAverage  float64 `json:"vote_average"`
	VideoURL     string  `json:"video_url,omitempty"`
	Gradient     string  `json:"gradient,omitempty"`
}

// Latency simulated per lookup kind, mirroring the feed the canned data
// stands in for.
const (
	FeaturedDelay = 1 * time.Second
	GenreDelay    = 500 * time.Millisecond
	SearchDelay   = 300 * time.Millisecond
)

// Provider is the lookup contract shared by the canned service and its
// caching wrapper.
type Provider interface {
	GetFeatured(ctx context.Context) (*ContentItem, error)
	GetByGenre(ctx context.Context, genre string) ([]ContentItem, error)
	Search(ctx context.Context, query string) ([]ContentItem, error)
}

// # Service

// Service serves the canned catalog.
type Service struct {
	// delayScale scales the simulated latency; 0 disables it entirely.
	delayScale float64
}

// NewService creates the canned catalog provider. delayScale of 1 gives
// production-like latency, 0 disables delays (tests).
func NewService(delayScale float64) *Service {
	return &Service{delayScale: delayScale}
}

// Genres lists the genre row identifiers in display order.
func (service *Service) Genres() []string {
	genres := make([]string, len(genreOrder))
	copy(genres, genreOrder)
	return genres
}

/*
GetFeatured returns the hero title for the landing page.

Returns:
  - *ContentItem: The featured title.
  - error: Context cancellation during the simulated delay.
*/
func (service *Service) GetFeatured(ctx context.Context) (*ContentItem, error) {
	if err := service.wait(ctx, FeaturedDelay); err != nil {
		return nil, err
	}
	item := featuredContent
	return &item, nil
}

/*
GetByGenre returns the row of titles for one genre.

An unknown genre yields an empty row, not an error: the storefront renders
an empty shelf rather than failing the whole page.

Returns:
  - []ContentItem: The titles, possibly empty.
  - error: Context cancellation during the simulated delay.
*/
func (service *Service) GetByGenre(ctx context.Context, genre string) ([]ContentItem, error) {
	if err := service.wait(ctx, GenreDelay); err != nil {
		return nil, err
	}

	items, found := contentByGenre[strings.ToLower(genre)]
	if !found {
		return []ContentItem{}, nil
	}
	return append([]ContentItem(nil), items...), nil
}

/*
Search returns titles whose name contains the query, case-insensitive,
capped at 8 results. An empty or whitespace query yields no results.

Returns:
  - []ContentItem: At most 8 matches.
  - error: Context cancellation during the simulated delay.
*/
func (service *Service) Search(ctx context.Context, query string) ([]ContentItem, error) {
	if err := service.wait(ctx, SearchDelay); err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return []ContentItem{}, nil
	}

	results := []ContentItem{}
	for _, genre := range genreOrder {
		for _, item := range contentByGenre[genre] {
			if strings.Contains(strings.ToLower(item.Title), needle) {
				results = append(results, item)
				if len(results) == constants.CatalogSearchLimit {
					return results, nil
				}
			}
		}
	}
	return results, nil
}

// wait sleeps for the scaled delay, honoring cancellation.
func (service *Service) wait(ctx context.Context, delay time.Duration) error {
	scaled := time.Duration(float64(delay) * service.delayScale)
	if scaled <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(scaled)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
