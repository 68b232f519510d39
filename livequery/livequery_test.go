package livequery

import (
	"context"
	"sync"
	"testing"
	"time"
)

// fakeStream drives a subscription the way a change stream would: Next
// blocks until an event arrives or the context ends.
type fakeStream struct {
	events chan struct{}

	mu     sync.Mutex
	closed bool
}

func newFakeStream() *fakeStream {
	return &fakeStream{events: make(chan struct{})}
}

func (f *fakeStream) Next(ctx context.Context) bool {
	select {
	case _, ok := <-f.events:
		return ok
	case <-ctx.Done():
		return false
	}
}

func (f *fakeStream) Close(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeStream) Err() error { return nil }

func (f *fakeStream) wasClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

type versionedFetch struct {
	mu   sync.Mutex
	data []string
}

func (v *versionedFetch) set(data []string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.data = data
}

func (v *versionedFetch) fetch(ctx context.Context) ([]string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.data, nil
}

func waitSnapshot(t *testing.T, sub *Subscription[string]) []string {
	t.Helper()
	select {
	case snapshot, ok := <-sub.Snapshots():
		if !ok {
			t.Fatal("snapshot channel closed unexpectedly")
		}
		return snapshot
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
		return nil
	}
}

func TestSubscribeDeliversInitialSnapshot(t *testing.T) {
	stream := newFakeStream()
	source := &versionedFetch{data: []string{"a", "b"}}

	sub := Subscribe(context.Background(), stream, source.fetch, nil)
	defer sub.Stop()

	snapshot := waitSnapshot(t, sub)
	if len(snapshot) != 2 {
		t.Fatalf("expected initial snapshot of 2, got %v", snapshot)
	}
}

func TestSubscribeRedeliversFullSetOnChange(t *testing.T) {
	stream := newFakeStream()
	source := &versionedFetch{data: []string{"a"}}

	sub := Subscribe(context.Background(), stream, source.fetch, nil)
	defer sub.Stop()

	waitSnapshot(t, sub)

	source.set([]string{"a", "b", "c"})
	stream.events <- struct{}{}

	snapshot := waitSnapshot(t, sub)
	if len(snapshot) != 3 {
		t.Fatalf("expected re-fetched snapshot of 3, got %v", snapshot)
	}
}

func TestSlowConsumerOnlySeesLatestSnapshot(t *testing.T) {
	stream := newFakeStream()
	source := &versionedFetch{data: []string{"v1"}}

	sub := Subscribe(context.Background(), stream, source.fetch, nil)
	defer sub.Stop()

	// Nothing reads while two more versions land; the stale one must be
	// replaced, not queued.
	source.set([]string{"v2", "v2"})
	stream.events <- struct{}{}
	source.set([]string{"v3", "v3", "v3"})
	stream.events <- struct{}{}

	deadline := time.After(2 * time.Second)
	for {
		snapshot := waitSnapshot(t, sub)
		if len(snapshot) == 3 {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("never saw the latest snapshot, last: %v", snapshot)
		default:
		}
	}
}

func TestStopClosesChannelAndStream(t *testing.T) {
	stream := newFakeStream()
	source := &versionedFetch{data: []string{"a"}}

	sub := Subscribe(context.Background(), stream, source.fetch, nil)
	waitSnapshot(t, sub)

	sub.Stop()

	if !stream.wasClosed() {
		t.Error("underlying stream not closed on Stop")
	}

	// No delivery after stop: the channel must drain and close.
	for range sub.Snapshots() {
	}
}

func TestNoDeliveryAfterContextCancel(t *testing.T) {
	stream := newFakeStream()
	source := &versionedFetch{data: []string{"a"}}

	ctx, cancel := context.WithCancel(context.Background())
	sub := Subscribe(ctx, stream, source.fetch, nil)
	waitSnapshot(t, sub)

	cancel()

	select {
	case _, ok := <-sub.Snapshots():
		if ok {
			// A snapshot already in flight at cancel time is tolerated,
			// but the channel must close right after.
			if _, open := <-sub.Snapshots(); open {
				t.Fatal("subscription kept delivering after cancel")
			}
		}
	case <-time.After(2 * time.Second):
		t.Fatal("snapshot channel never closed after cancel")
	}
}
