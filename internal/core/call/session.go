package call

import (
	"errors"
	"sync"
	"time"
)

// State of the single active call slot of a client session
type State string

const (
	StateIdle       State = "idle"
	StateDialing    State = "dialing"
	StateRinging    State = "ringing"
	StateInProgress State = "in_progress"
	StateEnded      State = "ended"
)

// ErrCallInProgress is returned when a new call is started while the
// session already holds a non-idle call.
var ErrCallInProgress = errors.New("another call is already active")

// Session tracks at most one active call. All mutation goes through the
// transition methods; elapsed time and audio state are derivations of the
// tracked state, never stored counters.
type Session struct {
	mu sync.Mutex

	state     State
	startedAt time.Time
	muted     bool

	factory *RingerFactory
	ringer  Ringer

	onTick     func(seconds int)
	tickCancel chan struct{}
	tickWG     sync.WaitGroup

	now func() time.Time
}

// NewSession creates an idle call session. factory supplies the ringing
// indicator; onTick (optional) receives the derived elapsed seconds once
// per second while a call is in progress.
func NewSession(factory *RingerFactory, onTick func(seconds int)) *Session {
	return &Session{
		state:   StateIdle,
		factory: factory,
		onTick:  onTick,
		now:     time.Now,
	}
}

// Dial moves idle → dialing and starts the ringing indicator
func (s *Session) Dial() error {
	return s.startRinging(StateDialing)
}

// Ring moves idle → ringing (inbound call) and starts the indicator
func (s *Session) Ring() error {
	return s.startRinging(StateRinging)
}

func (s *Session) startRinging(target State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateIdle && s.state != StateEnded {
		return ErrCallInProgress
	}

	ringer, err := s.factory.Acquire()
	if err != nil {
		return err
	}
	if err := ringer.Start(); err != nil {
		return err
	}

	s.ringer = ringer
	s.state = target
	return nil
}

// Answer moves dialing/ringing → in_progress: the ringing indicator stops
// and the elapsed counter starts from now.
func (s *Session) Answer() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateDialing && s.state != StateRinging {
		return errors.New("no call to answer")
	}

	s.stopRingerLocked()
	s.state = StateInProgress
	s.startedAt = s.now()
	s.startTickerLocked()
	return nil
}

// Hangup ends the call from any non-idle state: counter stopped and reset,
// audio stopped and rewound.
func (s *Session) Hangup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateIdle {
		return
	}
	s.teardownLocked()
	s.state = StateEnded
}

// Reset returns the session to idle, releasing anything still held
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teardownLocked()
	s.state = StateIdle
}

// Close releases all timers and audio. The session must not be reused.
func (s *Session) Close() {
	s.Reset()
}

// SetMuted flips the output toggle. Mute has no effect on transitions or
// on the elapsed counter.
func (s *Session) SetMuted(muted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.muted = muted
}

func (s *Session) Muted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.muted
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Elapsed derives the in-call seconds from the wall clock. Zero whenever
// no call is in progress.
func (s *Session) Elapsed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsedLocked()
}

func (s *Session) elapsedLocked() int {
	if s.state != StateInProgress {
		return 0
	}
	return int(s.now().Sub(s.startedAt) / time.Second)
}

// startTickerLocked emits the derived elapsed value once per second.
// Each tick recomputes from the wall clock, so the counter self-corrects
// after scheduling jitter instead of drifting.
func (s *Session) startTickerLocked() {
	if s.onTick == nil {
		return
	}

	cancel := make(chan struct{})
	s.tickCancel = cancel

	s.tickWG.Add(1)
	go func() {
		defer s.tickWG.Done()
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-cancel:
				return
			case <-ticker.C:
				s.mu.Lock()
				elapsed := s.elapsedLocked()
				inProgress := s.state == StateInProgress
				s.mu.Unlock()
				if inProgress {
					s.onTick(elapsed)
				}
			}
		}
	}()
}

func (s *Session) stopRingerLocked() {
	if s.ringer != nil {
		s.ringer.Stop()
		s.ringer = nil
	}
}

func (s *Session) teardownLocked() {
	s.stopRingerLocked()
	if s.tickCancel != nil {
		close(s.tickCancel)
		s.tickCancel = nil
	}
	s.startedAt = time.Time{}
}
