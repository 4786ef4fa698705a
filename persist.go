// persist.go implements the background writer that pushes store snapshots
// into the KV without blocking the caller.
//
// Writes are queued per key and coalesced: if the collection is saved twice
// before the first write starts, only the newer value is written. A single
// goroutine applies writes, so the KV always sees them in mutation order.
package main

import (
	"context"
	"log"
	"sync"
)

type writer struct {
	kv KV

	mu      sync.Mutex
	pending map[string]string
	keys    []string // order in which pending keys were first queued

	wake    chan struct{}
	flushes chan chan struct{}
	stop    chan struct{}
	done    chan struct{}

	onError func(key string, err error)
}

// newWriter starts the writer goroutine. onError is called for every failed
// write; nil logs the failure.
func newWriter(kv KV, onError func(key string, err error)) *writer {
	if onError == nil {
		onError = func(key string, err error) {
			log.Printf("persist %s: %v", key, err)
		}
	}
	w := &writer{
		kv:      kv,
		pending: make(map[string]string),
		wake:    make(chan struct{}, 1),
		flushes: make(chan chan struct{}),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
		onError: onError,
	}
	go w.run()
	return w
}

// enqueue schedules key=value for writing and returns immediately.
func (w *writer) enqueue(key, value string) {
	w.mu.Lock()
	if _, ok := w.pending[key]; !ok {
		w.keys = append(w.keys, key)
	}
	w.pending[key] = value
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *writer) run() {
	defer close(w.done)
	for {
		select {
		case <-w.wake:
			w.drain()
		case ack := <-w.flushes:
			w.drain()
			close(ack)
		case <-w.stop:
			w.drain()
			return
		}
	}
}

func (w *writer) drain() {
	w.mu.Lock()
	pending, keys := w.pending, w.keys
	w.pending = make(map[string]string)
	w.keys = nil
	w.mu.Unlock()

	for _, key := range keys {
		// Writes are not tied to any caller's lifetime.
		if err := w.kv.Set(context.Background(), key, pending[key]); err != nil {
			w.onError(key, err)
		}
	}
}

// flush blocks until every write queued before the call has been attempted.
func (w *writer) flush(ctx context.Context) error {
	ack := make(chan struct{})
	select {
	case w.flushes <- ack:
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-ack:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// close drains outstanding writes and stops the goroutine. Safe to call
// more than once.
func (w *writer) close(ctx context.Context) error {
	w.mu.Lock()
	select {
	case <-w.stop:
	default:
		close(w.stop)
	}
	w.mu.Unlock()

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
