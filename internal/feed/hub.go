// ============================================================================
// ecsfault - Fault Reporting for the mDW ECS Toolkit
// ============================================================================
//
// Package:     feed
// Description: Live broadcast of handled faults to WebSocket clients
// Author:      Mike Stoffels
// Created:     2026-10-15
// License:     MIT
// ============================================================================

package feed

import (
	"sync"
	"sync/atomic"

	"github.com/msto63/ecsfault/internal/journal"
)

// DefaultBuffer is the per-subscriber queue length
const DefaultBuffer = 64

// Hub fans out fault records to subscribers
type Hub struct {
	mu      sync.RWMutex
	subs    map[uint64]chan *journal.Record
	nextID  uint64
	buffer  int
	closed  bool
	dropped atomic.Uint64
}

// NewHub creates a hub. A buffer <= 0 uses DefaultBuffer.
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Hub{
		subs:   make(map[uint64]chan *journal.Record),
		buffer: buffer,
	}
}

// Subscribe registers a new subscriber. The returned function removes it
// and closes the channel; calling it more than once is safe.
func (h *Hub) Subscribe() (<-chan *journal.Record, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan *journal.Record, h.buffer)
	if h.closed {
		close(ch)
		return ch, func() {}
	}

	id := h.nextID
	h.nextID++
	h.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if sub, ok := h.subs[id]; ok {
				delete(h.subs, id)
				close(sub)
			}
		})
	}
}

// Publish delivers rec to every subscriber without blocking.
// Subscribers with a full queue miss the record.
func (h *Hub) Publish(rec *journal.Record) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.subs {
		select {
		case ch <- rec:
		default:
			h.dropped.Add(1)
		}
	}
}

// Subscribers returns the number of active subscribers
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Dropped returns how many deliveries were skipped because of full queues
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}

// Close closes all subscriber channels. Later subscriptions receive a
// closed channel.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}
