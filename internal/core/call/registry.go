package call

import "sync"

// Registry holds one Session per attendant so the single-active-call rule
// is enforced in memory before any record is written. Sessions are created
// lazily on first use and reused across calls.
type Registry struct {
	mu       sync.Mutex
	factory  *RingerFactory
	sessions map[string]*Session
}

func NewRegistry(factory *RingerFactory) *Registry {
	return &Registry{
		factory:  factory,
		sessions: make(map[string]*Session),
	}
}

func (r *Registry) session(key string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[key]
	if !ok {
		s = NewSession(r.factory, nil)
		r.sessions[key] = s
	}
	return s
}

// Dial claims the attendant's call slot and starts the ringing indicator.
// ErrCallInProgress when the attendant already holds a non-ended call.
func (r *Registry) Dial(key string) error {
	return r.session(key).Dial()
}

// Answer moves the attendant's call to in progress, starting the derived
// elapsed counter.
func (r *Registry) Answer(key string) error {
	return r.session(key).Answer()
}

// Hangup releases the attendant's call slot
func (r *Registry) Hangup(key string) {
	r.session(key).Hangup()
}

// Elapsed reports the derived in-call seconds of the attendant's session
func (r *Registry) Elapsed(key string) int {
	return r.session(key).Elapsed()
}

// Close tears down every session. Used on shutdown.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		s.Close()
	}
	r.sessions = make(map[string]*Session)
}
