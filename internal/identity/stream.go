// Copyright (c) 2026 Velora. All rights reserved.
// Author: dev@velora.app

package identity

import "sync"

// # Change Stream

// Change is one event on the identity change stream. Session is non-nil for
// a sign-in and nil for a sign-out.
type Change struct {
	UserID  string
	Session *Session
}

// ChangeHandler receives identity changes. Handlers run synchronously in
// publication order; a slow handler delays later subscribers.
type ChangeHandler func(change Change)

// Broadcaster is the in-process identity change stream.
//
// Subscribers registered at startup receive every subsequent sign-in and
// sign-out exactly once, in order.
type Broadcaster struct {
	mu       sync.Mutex
	handlers map[int]ChangeHandler
	nextID   int
}

// NewBroadcaster creates an empty change stream.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{handlers: make(map[int]ChangeHandler)}
}

/*
Subscribe registers a handler for future changes.

Parameters:
  - handler: Called for every change published after registration.

Returns:
  - func(): Unsubscribes the handler. Safe to call more than once.
*/
func (broadcaster *Broadcaster) Subscribe(handler ChangeHandler) func() {
	broadcaster.mu.Lock()
	defer broadcaster.mu.Unlock()

	id := broadcaster.nextID
	broadcaster.nextID++
	broadcaster.handlers[id] = handler

	return func() {
		broadcaster.mu.Lock()
		defer broadcaster.mu.Unlock()
		delete(broadcaster.handlers, id)
	}
}

// Publish delivers a change to all current subscribers.
func (broadcaster *Broadcaster) Publish(change Change) {
	broadcaster.mu.Lock()
	handlers := make([]ChangeHandler, 0, len(broadcaster.handlers))
	for _, handler := range broadcaster.handlers {
		handlers = append(handlers, handler)
	}
	broadcaster.mu.Unlock()

	// Handlers run outside the lock so a subscriber may unsubscribe
	// from within its own callback.
	for _, handler := range handlers {
		handler(change)
	}
}
