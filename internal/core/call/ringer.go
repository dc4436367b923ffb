package call

import (
	"fmt"
	"sync"
	"time"
)

// Synthesized fallback ringtone parameters: two superimposed tones gated
// in a 1s-on/3s-off cadence, the classic ringback pattern.
const (
	ToneLowHz  = 400.0
	ToneHighHz = 450.0

	gateOnDuration  = 1 * time.Second
	gateOffDuration = 3 * time.Second
)

// Ringer produces the audible ringing indicator. Start may be called once
// per acquisition; Stop must always be safe to call, including before
// Start and more than once.
type Ringer interface {
	Start() error
	Stop()
}

// RingerFactory is the explicit two-step acquisition strategy: try the
// primary asset, and on load failure hand out the synthesized fallback.
// The fallback contract is declared here rather than hidden in an error
// listener.
type RingerFactory struct {
	LoadPrimary func() (Ringer, error)
	Fallback    func() Ringer
}

// Acquire returns the primary ringer when its asset loads, otherwise the
// synthesized fallback. It only fails when neither path is configured.
func (f *RingerFactory) Acquire() (Ringer, error) {
	if f.LoadPrimary != nil {
		ringer, err := f.LoadPrimary()
		if err == nil {
			return ringer, nil
		}
	}
	if f.Fallback == nil {
		return nil, fmt.Errorf("no ringtone source available")
	}
	return f.Fallback(), nil
}

// ToneOutput is the audio boundary the synthesized ringer drives. The
// implementation (a client audio device, a test fake) renders the tones;
// this package only decides when they sound.
type ToneOutput interface {
	StartTones(freqs ...float64)
	StopTones()
}

// DiscardToneOutput swallows the tones. Used in headless deployments where
// the ringing indicator has no audio device to drive.
type DiscardToneOutput struct{}

func (DiscardToneOutput) StartTones(...float64) {}
func (DiscardToneOutput) StopTones()            {}

// TwoToneRinger emits the 400/450 Hz pair in the gate cadence until
// stopped.
type TwoToneRinger struct {
	out ToneOutput

	mu   sync.Mutex
	stop chan struct{}
	wg   sync.WaitGroup
}

func NewTwoToneRinger(out ToneOutput) *TwoToneRinger {
	return &TwoToneRinger{out: out}
}

func (r *TwoToneRinger) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stop != nil {
		return nil // already ringing
	}
	r.stop = make(chan struct{})

	r.wg.Add(1)
	go r.loop(r.stop)
	return nil
}

func (r *TwoToneRinger) loop(stop chan struct{}) {
	defer r.wg.Done()

	for {
		r.out.StartTones(ToneLowHz, ToneHighHz)
		select {
		case <-stop:
			r.out.StopTones()
			return
		case <-time.After(gateOnDuration):
		}

		r.out.StopTones()
		select {
		case <-stop:
			return
		case <-time.After(gateOffDuration):
		}
	}
}

func (r *TwoToneRinger) Stop() {
	r.mu.Lock()
	stop := r.stop
	r.stop = nil
	r.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	r.wg.Wait()
}
