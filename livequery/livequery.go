// Package livequery reproduces snapshot-listener semantics over a change
// stream: a subscription delivers the full current result set once on
// start and again after every matching change, and delivers nothing once
// stopped. The guiding invariant is that no snapshot ever reaches a
// consumer that has detached.
package livequery

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Watcher is the part of a change stream a subscription drives.
// *mongo.ChangeStream satisfies it.
type Watcher interface {
	Next(ctx context.Context) bool
	Close(ctx context.Context) error
	Err() error
}

// FetchFunc re-reads the full current result set for the subscribed query.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

type Subscription[T any] struct {
	snapshots chan []T
	cancel    context.CancelFunc
	done      chan struct{}
}

// Subscribe starts delivering snapshots until the context is cancelled or
// Stop is called. A slow consumer only ever sees the latest snapshot;
// stale ones are replaced, not queued.
func Subscribe[T any](ctx context.Context, watcher Watcher, fetch FetchFunc[T], log *logrus.Logger) *Subscription[T] {
	ctx, cancel := context.WithCancel(ctx)
	s := &Subscription[T]{
		snapshots: make(chan []T, 1),
		cancel:    cancel,
		done:      make(chan struct{}),
	}
	go s.run(ctx, watcher, fetch, log)
	return s
}

// Snapshots yields full result sets. The channel closes when the
// subscription stops.
func (s *Subscription[T]) Snapshots() <-chan []T {
	return s.snapshots
}

// Stop cancels the subscription and waits until no further delivery can
// happen.
func (s *Subscription[T]) Stop() {
	s.cancel()
	<-s.done
}

func (s *Subscription[T]) run(ctx context.Context, watcher Watcher, fetch FetchFunc[T], log *logrus.Logger) {
	defer close(s.snapshots)
	defer close(s.done)
	defer watcher.Close(context.Background())

	s.refetch(ctx, fetch, log)

	for watcher.Next(ctx) {
		s.refetch(ctx, fetch, log)
	}

	if err := watcher.Err(); err != nil && ctx.Err() == nil && log != nil {
		log.WithError(err).Error("live query stream ended")
	}
}

func (s *Subscription[T]) refetch(ctx context.Context, fetch FetchFunc[T], log *logrus.Logger) {
	if ctx.Err() != nil {
		return
	}
	items, err := fetch(ctx)
	if err != nil {
		if ctx.Err() == nil && log != nil {
			log.WithError(err).Error("live query snapshot fetch failed")
		}
		return
	}
	s.deliver(ctx, items)
}

func (s *Subscription[T]) deliver(ctx context.Context, items []T) {
	for {
		select {
		case <-ctx.Done():
			return
		case s.snapshots <- items:
			return
		default:
		}
		// Channel full: drop the stale snapshot and try again.
		select {
		case <-s.snapshots:
		default:
		}
	}
}
