package sync

import (
	"sync"
)

// Hub is an in-process change-notification exchange keyed by table and
// filter value, mirroring the subscription contract of the durable store.
// It is injected where needed; there is no package-level instance.
type Hub struct {
	mu   sync.RWMutex
	subs map[subKey]map[int]chan struct{}
	next int
}

type subKey struct {
	table string
	id    string
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[subKey]map[int]chan struct{}),
	}
}

// Subscribe registers interest in changes to (table, id). The returned
// channel carries coalesced pings, not payloads; subscribers re-read the
// source of truth. The cancel func must be called on every exit path.
func (h *Hub) Subscribe(table, id string) (<-chan struct{}, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	key := subKey{table: table, id: id}
	if h.subs[key] == nil {
		h.subs[key] = make(map[int]chan struct{})
	}

	token := h.next
	h.next++

	// Buffer of one: a pending ping already forces a refetch, extra pings
	// carry no additional information.
	ch := make(chan struct{}, 1)
	h.subs[key][token] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if set, ok := h.subs[key]; ok {
			delete(set, token)
			if len(set) == 0 {
				delete(h.subs, key)
			}
		}
	}

	return ch, cancel
}

// Publish notifies every subscriber of (table, id). Never blocks: a
// subscriber with a ping already pending is skipped.
func (h *Hub) Publish(table, id string) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.subs[subKey{table: table, id: id}] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
