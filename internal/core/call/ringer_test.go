package call

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeToneOutput struct {
	mu      sync.Mutex
	starts  [][]float64
	stops   int
	playing bool
}

func (f *fakeToneOutput) StartTones(freqs ...float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.starts = append(f.starts, freqs)
	f.playing = true
}

func (f *fakeToneOutput) StopTones() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
	f.playing = false
}

func (f *fakeToneOutput) startCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.starts)
}

func (f *fakeToneOutput) isPlaying() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.playing
}

func TestTwoToneRingerEmitsBothFrequencies(t *testing.T) {
	out := &fakeToneOutput{}
	ringer := NewTwoToneRinger(out)

	require.NoError(t, ringer.Start())

	deadline := time.Now().Add(time.Second)
	for out.startCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	ringer.Stop()

	require.NotEmpty(t, out.starts)
	assert.Equal(t, []float64{ToneLowHz, ToneHighHz}, out.starts[0])
}

func TestTwoToneRingerStopSilencesOutput(t *testing.T) {
	out := &fakeToneOutput{}
	ringer := NewTwoToneRinger(out)

	require.NoError(t, ringer.Start())
	ringer.Stop()

	assert.False(t, out.isPlaying())
}

func TestTwoToneRingerStopIsIdempotent(t *testing.T) {
	out := &fakeToneOutput{}
	ringer := NewTwoToneRinger(out)

	// Stop before start must not panic
	ringer.Stop()

	require.NoError(t, ringer.Start())
	ringer.Stop()
	ringer.Stop()

	assert.False(t, out.isPlaying())
}

func TestTwoToneRingerStartIsIdempotent(t *testing.T) {
	out := &fakeToneOutput{}
	ringer := NewTwoToneRinger(out)

	require.NoError(t, ringer.Start())
	require.NoError(t, ringer.Start())
	ringer.Stop()
}
