// Package sound plays short feedback cues for finished attempts.
package sound

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Player reacts to attempt outcomes.
type Player interface {
	Reject()
	NewBest()
	Close()
}

// Nop is a silent Player.
type Nop struct{}

func (Nop) Reject() {}
func (Nop) NewBest() {}
func (Nop) Close() {}

// Manager plays cues through the system speaker.
type Manager struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	active bool
}

// NewManager initialises the speaker and starts an empty mixer.
func NewManager() (*Manager, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("failed to init speaker: %w", err)
	}
	m := &Manager{mixer: &beep.Mixer{}, active: true}
	speaker.Play(m.mixer)
	return m, nil
}

// Reject plays a low buzz.
func (m *Manager) Reject() {
	m.add(Buzz())
}

// NewBest plays a rising chime.
func (m *Manager) NewBest() {
	m.add(Chime())
}

// Close silences the mixer. Further cues are dropped.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.active {
		return
	}
	speaker.Lock()
	m.mixer.Clear()
	speaker.Unlock()
	m.active = false
}

func (m *Manager) add(s beep.Streamer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.active {
		return
	}
	speaker.Lock()
	m.mixer.Add(s)
	speaker.Unlock()
}

// Buzz is the rejection cue: 150ms of a soft square wave at 110Hz.
func Buzz() beep.Streamer {
	return newTone(110, 150*time.Millisecond, 0.2, true)
}

// Chime is the new-best cue: three ascending notes.
func Chime() beep.Streamer {
	return beep.Seq(
		newTone(523.25, 90*time.Millisecond, 0.25, false),
		newTone(659.25, 90*time.Millisecond, 0.25, false),
		newTone(783.99, 160*time.Millisecond, 0.25, false),
	)
}

// tone is a fixed-length oscillator with a linear fade-out.
type tone struct {
	freq   float64
	gain   float64
	square bool
	phase  float64
	pos    int
	total  int
}

func newTone(freq float64, d time.Duration, gain float64, square bool) *tone {
	return &tone{freq: freq, gain: gain, square: square, total: sampleRate.N(d)}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}
		val := math.Sin(2 * math.Pi * t.phase)
		if t.square {
			val = 1
			if t.phase >= 0.5 {
				val = -1
			}
		}
		fade := 1 - float64(t.pos)/float64(t.total)
		val *= t.gain * fade
		samples[i][0] = val
		samples[i][1] = val

		t.phase += t.freq / float64(sampleRate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }
