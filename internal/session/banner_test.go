// Copyright (c) 2026 Velora. All rights reserved.
// Author: dev@velora.app

package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBannerBoard_AutoClears(t *testing.T) {
	board := newBannerBoard(40 * time.Millisecond)

	board.SetError("boom")
	require.NotNil(t, board.Current())

	time.Sleep(100 * time.Millisecond)
	assert.Nil(t, board.Current())
}

func TestBannerBoard_ReplacementRestartsTimer(t *testing.T) {
	board := newBannerBoard(60 * time.Millisecond)

	board.SetError("first")
	time.Sleep(40 * time.Millisecond)
	board.SetSuccess("second")

	// The first banner's interval has elapsed, but the replacement gets
	// its own full display time.
	time.Sleep(40 * time.Millisecond)
	current := board.Current()
	require.NotNil(t, current)
	assert.Equal(t, BannerSuccess, current.Kind)
	assert.Equal(t, "second", current.Message)

	time.Sleep(60 * time.Millisecond)
	assert.Nil(t, board.Current())
}

func TestBannerBoard_Clear(t *testing.T) {
	board := newBannerBoard(time.Minute)

	board.SetError("boom")
	board.Clear()

	assert.Nil(t, board.Current())
}

func TestBannerBoard_LatestWins(t *testing.T) {
	board := newBannerBoard(time.Minute)

	board.SetError("first")
	board.SetError("second")
	board.SetSuccess("third")

	current := board.Current()
	require.NotNil(t, current)
	assert.Equal(t, "third", current.Message)
	assert.Equal(t, BannerSuccess, current.Kind)
}
