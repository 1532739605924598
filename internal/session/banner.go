// Copyright (c) 2026 Velora. All rights reserved.
// Author: dev@velora.app

package session

import (
	"sync"
	"time"
)

// # Transient Banners

// BannerKind distinguishes error from success banners.
type BannerKind string

const (
	BannerError   BannerKind = "error"
	BannerSuccess BannerKind = "success"
)

// Banner is one transient user-facing message.
type Banner struct {
	Kind    BannerKind `json:"kind"`
	Message string     `json:"message"`
}

// bannerBoard holds at most one visible banner and clears it automatically
// after a fixed interval.
//
// Setting a new banner replaces the current one and restarts the interval,
// so the latest message always gets the full display time. A sequence
// number guards against a stale timer clearing a newer banner.
type bannerBoard struct {
	mu      sync.Mutex
	ttl     time.Duration
	current *Banner
	timer   *time.Timer
	seq     uint64
}

func newBannerBoard(ttl time.Duration) *bannerBoard {
	return &bannerBoard{ttl: ttl}
}

// SetError shows an error banner.
func (board *bannerBoard) SetError(message string) {
	board.set(Banner{Kind: BannerError, Message: message})
}

// SetSuccess shows a success banner.
func (board *bannerBoard) SetSuccess(message string) {
	board.set(Banner{Kind: BannerSuccess, Message: message})
}

func (board *bannerBoard) set(banner Banner) {
	board.mu.Lock()
	defer board.mu.Unlock()

	if board.timer != nil {
		board.timer.Stop()
	}
	board.seq++
	board.current = &banner

	seq := board.seq
	board.timer = time.AfterFunc(board.ttl, func() {
		board.mu.Lock()
		defer board.mu.Unlock()
		if board.seq == seq {
			board.current = nil
		}
	})
}

// Clear removes the banner immediately.
func (board *bannerBoard) Clear() {
	board.mu.Lock()
	defer board.mu.Unlock()

	if board.timer != nil {
		board.timer.Stop()
	}
	board.seq++
	board.current = nil
}

// Current returns the visible banner, or nil.
func (board *bannerBoard) Current() *Banner {
	board.mu.Lock()
	defer board.mu.Unlock()

	if board.current == nil {
		return nil
	}
	copied := *board.current
	return &copied
}
