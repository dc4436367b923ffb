package sync

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memorySource struct {
	mu   sync.Mutex
	rows map[string][]string
	err  error
}

func (s *memorySource) Fetch(ctx context.Context, conversationID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := make([]string, len(s.rows[conversationID]))
	copy(out, s.rows[conversationID])
	return out, nil
}

func (s *memorySource) append(conversationID, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[conversationID] = append(s.rows[conversationID], body)
}

func (s *memorySource) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

type snapshotSink struct {
	mu   sync.Mutex
	last []string
	errs []error
}

func (s *snapshotSink) update(_ string, snapshot []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = snapshot
}

func (s *snapshotSink) fail(_ string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs = append(s.errs, err)
}

func (s *snapshotSink) snapshot() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

func (s *snapshotSink) errCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.errs)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestReconcilerRefetchesOnNotification(t *testing.T) {
	hub := NewHub()
	source := &memorySource{rows: map[string][]string{"c1": {"oi"}}}
	sink := &snapshotSink{}

	// Long poll interval so only the push path can explain the refetch
	r := NewReconciler[[]string](hub, source, time.Minute, sink.update, sink.fail)
	r.Watch(context.Background(), "c1")
	defer r.Stop()

	waitFor(t, func() bool { return len(sink.snapshot()) == 1 })

	source.append("c1", "tudo bem?")
	hub.Publish(MessagesTable, "c1")

	waitFor(t, func() bool { return len(sink.snapshot()) == 2 })
	assert.Equal(t, []string{"oi", "tudo bem?"}, sink.snapshot())
}

func TestReconcilerConvergesByPollingWithoutNotification(t *testing.T) {
	hub := NewHub()
	source := &memorySource{rows: map[string][]string{"c1": nil}}
	sink := &snapshotSink{}

	r := NewReconciler[[]string](hub, source, 20*time.Millisecond, sink.update, sink.fail)
	r.Watch(context.Background(), "c1")
	defer r.Stop()

	// Insert directly into the store; no Publish on purpose
	source.append("c1", "m1")
	source.append("c1", "m2")
	source.append("c1", "m3")

	waitFor(t, func() bool { return len(sink.snapshot()) == 3 })
	assert.Equal(t, []string{"m1", "m2", "m3"}, sink.snapshot())
}

func TestReconcilerSwitchCancelsPreviousSubscription(t *testing.T) {
	hub := NewHub()
	source := &memorySource{rows: map[string][]string{
		"c1": {"a"},
		"c2": {"x", "y"},
	}}
	sink := &snapshotSink{}

	r := NewReconciler[[]string](hub, source, time.Minute, sink.update, sink.fail)
	r.Watch(context.Background(), "c1")
	waitFor(t, func() bool { return len(sink.snapshot()) == 1 })

	r.Watch(context.Background(), "c2")
	waitFor(t, func() bool { return len(sink.snapshot()) == 2 })

	// A change on the abandoned conversation must not surface
	source.append("c1", "b")
	hub.Publish(MessagesTable, "c1")
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, []string{"x", "y"}, sink.snapshot())

	r.Stop()
}

func TestReconcilerSurfacesFetchErrorsAndRecovers(t *testing.T) {
	hub := NewHub()
	source := &memorySource{rows: map[string][]string{"c1": {"a"}}}
	sink := &snapshotSink{}

	r := NewReconciler[[]string](hub, source, time.Minute, sink.update, sink.fail)
	r.Watch(context.Background(), "c1")
	defer r.Stop()

	waitFor(t, func() bool { return len(sink.snapshot()) == 1 })

	source.fail(errors.New("store indisponível"))
	hub.Publish(MessagesTable, "c1")
	waitFor(t, func() bool { return sink.errCount() == 1 })

	// No automatic retry happened before the next trigger
	assert.Equal(t, 1, sink.errCount())

	source.fail(nil)
	source.append("c1", "b")
	hub.Publish(MessagesTable, "c1")
	waitFor(t, func() bool { return len(sink.snapshot()) == 2 })
}

func TestHubPublishWithoutSubscribersIsNoOp(t *testing.T) {
	hub := NewHub()
	require.NotPanics(t, func() {
		hub.Publish(MessagesTable, "nobody")
	})
}

func TestHubUnsubscribeStopsDelivery(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe(MessagesTable, "c1")

	hub.Publish(MessagesTable, "c1")
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected a ping")
	}

	cancel()
	hub.Publish(MessagesTable, "c1")
	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("received ping after unsubscribe")
		}
	default:
	}
}
