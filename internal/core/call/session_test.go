package call

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRinger struct {
	mu      sync.Mutex
	started int
	stopped int
	failOn  error
}

func (f *fakeRinger) Start() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOn != nil {
		return f.failOn
	}
	f.started++
	return nil
}

func (f *fakeRinger) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped++
}

func factoryFor(r Ringer) *RingerFactory {
	return &RingerFactory{
		LoadPrimary: func() (Ringer, error) { return r, nil },
	}
}

func TestDialStartsRingerAndAnswerStopsIt(t *testing.T) {
	ringer := &fakeRinger{}
	session := NewSession(factoryFor(ringer), nil)
	defer session.Close()

	require.NoError(t, session.Dial())
	assert.Equal(t, StateDialing, session.State())
	assert.Equal(t, 1, ringer.started)

	require.NoError(t, session.Answer())
	assert.Equal(t, StateInProgress, session.State())
	assert.Equal(t, 1, ringer.stopped)
}

func TestSecondCallRejectedWhileActive(t *testing.T) {
	session := NewSession(factoryFor(&fakeRinger{}), nil)
	defer session.Close()

	require.NoError(t, session.Dial())
	assert.ErrorIs(t, session.Ring(), ErrCallInProgress)
	assert.ErrorIs(t, session.Dial(), ErrCallInProgress)
}

func TestElapsedDerivedFromWallClock(t *testing.T) {
	session := NewSession(factoryFor(&fakeRinger{}), nil)
	defer session.Close()

	current := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	session.now = func() time.Time { return current }

	require.NoError(t, session.Dial())
	require.NoError(t, session.Answer())
	assert.Equal(t, 0, session.Elapsed())

	current = current.Add(5 * time.Second)
	assert.Equal(t, 5, session.Elapsed())

	// Jitter in between does not accumulate: elapsed is recomputed, not
	// incremented
	current = current.Add(1500 * time.Millisecond)
	assert.Equal(t, 6, session.Elapsed())
}

func TestHangupResetsElapsedAndStopsAudio(t *testing.T) {
	ringer := &fakeRinger{}
	session := NewSession(factoryFor(ringer), nil)
	defer session.Close()

	current := time.Now()
	session.now = func() time.Time { return current }

	require.NoError(t, session.Dial())
	require.NoError(t, session.Answer())
	current = current.Add(42 * time.Second)
	require.Equal(t, 42, session.Elapsed())

	session.Hangup()
	assert.Equal(t, StateEnded, session.State())
	assert.Equal(t, 0, session.Elapsed())
}

func TestHangupDuringRingingStopsRinger(t *testing.T) {
	ringer := &fakeRinger{}
	session := NewSession(factoryFor(ringer), nil)
	defer session.Close()

	require.NoError(t, session.Ring())
	session.Hangup()
	assert.Equal(t, 1, ringer.stopped)
	assert.Equal(t, StateEnded, session.State())
}

func TestNewCallAllowedAfterEnded(t *testing.T) {
	session := NewSession(factoryFor(&fakeRinger{}), nil)
	defer session.Close()

	require.NoError(t, session.Dial())
	session.Hangup()
	require.NoError(t, session.Dial())
	assert.Equal(t, StateDialing, session.State())
}

func TestMuteDoesNotAffectTransitions(t *testing.T) {
	session := NewSession(factoryFor(&fakeRinger{}), nil)
	defer session.Close()

	session.SetMuted(true)
	require.NoError(t, session.Dial())
	require.NoError(t, session.Answer())
	assert.True(t, session.Muted())
	assert.Equal(t, StateInProgress, session.State())

	session.SetMuted(false)
	assert.Equal(t, StateInProgress, session.State())
}

func TestFactoryFallsBackWhenPrimaryFails(t *testing.T) {
	fallback := &fakeRinger{}
	factory := &RingerFactory{
		LoadPrimary: func() (Ringer, error) { return nil, errors.New("asset não carregou") },
		Fallback:    func() Ringer { return fallback },
	}

	ringer, err := factory.Acquire()
	require.NoError(t, err)
	require.NoError(t, ringer.Start())
	assert.Equal(t, 1, fallback.started)
}

func TestFactoryFailsWithoutAnySource(t *testing.T) {
	factory := &RingerFactory{}
	_, err := factory.Acquire()
	assert.Error(t, err)
}
