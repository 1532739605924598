// Copyright (c) 2026 Velora. All rights reserved.
// Author: dev@velora.app

package identity

import (
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// # Sign-In Throttle

const (
	// throttleBurst is how many attempts one email gets before refill kicks in.
	throttleBurst = 5

	// throttleRefill is how fast attempt capacity regenerates per email.
	throttleRefill = 12 * time.Second

	// throttleIdleTTL is how long an email must stay quiet before its
	// limiter entry is eligible for pruning.
	throttleIdleTTL = 15 * time.Minute

	// throttlePruneThreshold bounds the entry map; pruning runs whenever
	// the map grows past this size.
	throttlePruneThreshold = 1024
)

type throttleEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// loginThrottle limits password sign-in attempts per email address.
//
// Throttling is keyed on the target account rather than the source IP so a
// credential-stuffing run against one account is slowed regardless of how
// many addresses it comes from.
type loginThrottle struct {
	mu      sync.Mutex
	entries map[string]*throttleEntry
}

func newLoginThrottle() *loginThrottle {
	return &loginThrottle{entries: make(map[string]*throttleEntry)}
}

// Allow consumes one attempt for the email and reports whether it may proceed.
func (throttle *loginThrottle) Allow(email string) bool {
	throttle.mu.Lock()
	defer throttle.mu.Unlock()

	now := time.Now()
	key := strings.ToLower(email)

	entry, found := throttle.entries[key]
	if !found {
		entry = &throttleEntry{limiter: rate.NewLimiter(rate.Every(throttleRefill), throttleBurst)}
		throttle.entries[key] = entry
	}
	entry.lastSeen = now

	if len(throttle.entries) > throttlePruneThreshold {
		throttle.pruneLocked(now)
	}

	return entry.limiter.Allow()
}

// pruneLocked drops entries idle past the TTL. Caller holds the lock.
func (throttle *loginThrottle) pruneLocked(now time.Time) {
	for key, entry := range throttle.entries {
		if now.Sub(entry.lastSeen) > throttleIdleTTL {
			delete(throttle.entries, key)
		}
	}
}
