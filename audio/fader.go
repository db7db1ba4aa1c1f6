// Package audio applies tweened gain to beep streams.
package audio

import (
	"math"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/matt-g-everett/curve/curve"
	"github.com/matt-g-everett/curve/tween"
)

// Fader scales a stream by a gain that an animation can change while the
// stream plays. SetGain is safe to call from any goroutine.
type Fader struct {
	streamer beep.Streamer
	gain     atomic.Uint64
}

// NewFader wraps s with an initial gain.
func NewFader(s beep.Streamer, gain float64) *Fader {
	f := &Fader{streamer: s}
	f.gain.Store(math.Float64bits(gain))
	return f
}

// SetGain is an OnChange callback for a Float animation.
func (f *Fader) SetGain(g tween.Float) {
	f.gain.Store(math.Float64bits(float64(g)))
}

// Gain returns the current gain.
func (f *Fader) Gain() float64 {
	return math.Float64frombits(f.gain.Load())
}

func (f *Fader) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.streamer.Stream(samples)
	g := f.Gain()
	for i := 0; i < n; i++ {
		samples[i][0] *= g
		samples[i][1] *= g
	}
	return n, ok
}

func (f *Fader) Err() error { return f.streamer.Err() }

// automation applies a pre-rendered gain curve sample by sample.
type automation struct {
	streamer beep.Streamer
	gains    []float64
	times    []float64
	total    int
	position int
}

// Automate scales s by a rendered Float animation, interpolating linearly
// between keyframes at the stream's sample rate. After the last keyframe the
// final gain is held.
func Automate(s beep.Streamer, kf *curve.Keyframes[tween.Float], rate beep.SampleRate) beep.Streamer {
	a := &automation{streamer: s, times: kf.Times(), total: rate.N(kf.Duration)}
	for _, v := range kf.Values(0) {
		a.gains = append(a.gains, float64(v))
	}
	return a
}

func (a *automation) gainAt(position int) float64 {
	last := len(a.gains) - 1
	if a.total <= 0 || position >= a.total {
		return a.gains[last]
	}
	at := float64(position) / float64(a.total)
	for i := 0; i < last; i++ {
		if at < a.times[i+1] {
			span := a.times[i+1] - a.times[i]
			return tween.Lerp(a.gains[i], a.gains[i+1], (at-a.times[i])/span)
		}
	}
	return a.gains[last]
}

func (a *automation) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = a.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		g := a.gainAt(a.position)
		samples[i][0] *= g
		samples[i][1] *= g
		a.position++
	}
	return n, ok
}

func (a *automation) Err() error { return a.streamer.Err() }
