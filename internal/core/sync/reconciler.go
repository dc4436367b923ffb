package sync

import (
	"context"
	"sync"
	"time"
)

// DefaultPollInterval is the fallback refetch period used when the push
// notification for a change is missed.
const DefaultPollInterval = 5 * time.Second

// MessagesTable is the hub table name for conversation message changes
const MessagesTable = "connect_messages"

// Source re-reads the full current state for one conversation. No
// incremental diffing: every trigger reloads the authoritative sequence.
type Source[T any] interface {
	Fetch(ctx context.Context, conversationID string) (T, error)
}

// SourceFunc adapts a function to the Source interface
type SourceFunc[T any] func(ctx context.Context, conversationID string) (T, error)

func (f SourceFunc[T]) Fetch(ctx context.Context, conversationID string) (T, error) {
	return f(ctx, conversationID)
}

// Reconciler keeps a locally observed snapshot consistent with the durable
// store for one conversation at a time. Propagation delay is bounded by
// max(push latency, poll interval).
type Reconciler[T any] struct {
	hub      *Hub
	source   Source[T]
	interval time.Duration

	onUpdate func(conversationID string, snapshot T)
	onError  func(conversationID string, err error)

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewReconciler wires a reconciler to the hub and source. onError may be
// nil; fetch failures are then dropped until the next trigger.
func NewReconciler[T any](
	hub *Hub,
	source Source[T],
	interval time.Duration,
	onUpdate func(conversationID string, snapshot T),
	onError func(conversationID string, err error),
) *Reconciler[T] {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Reconciler[T]{
		hub:      hub,
		source:   source,
		interval: interval,
		onUpdate: onUpdate,
		onError:  onError,
	}
}

// Watch switches the reconciler to conversationID. Any previous watch is
// fully torn down (subscription and timer released) before the new one
// starts, so two conversations are never reconciled concurrently.
func (r *Reconciler[T]) Watch(ctx context.Context, conversationID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stopLocked()

	watchCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	notify, unsubscribe := r.hub.Subscribe(MessagesTable, conversationID)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer unsubscribe()

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		// Prime the snapshot immediately on switch
		r.refetch(watchCtx, conversationID)

		for {
			select {
			case <-watchCtx.Done():
				return
			case <-notify:
				r.refetch(watchCtx, conversationID)
			case <-ticker.C:
				r.refetch(watchCtx, conversationID)
			}
		}
	}()
}

// Stop tears down the current watch. Safe to call repeatedly.
func (r *Reconciler[T]) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
}

func (r *Reconciler[T]) stopLocked() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.wg.Wait()
}

// refetch reloads the full sequence once. A failure surfaces through
// onError and is not retried before the next notification or tick.
func (r *Reconciler[T]) refetch(ctx context.Context, conversationID string) {
	snapshot, err := r.source.Fetch(ctx, conversationID)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		if r.onError != nil {
			r.onError(conversationID, err)
		}
		return
	}
	if r.onUpdate != nil {
		r.onUpdate(conversationID, snapshot)
	}
}
