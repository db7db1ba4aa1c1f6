package curve

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/matt-g-everett/curve/easing"
	"github.com/matt-g-everett/curve/tween"
)

// ErrTypeMismatch is returned by RenderConverted when an interpolated value is
// not of the conversion's input type.
var ErrTypeMismatch = errors.New("interpolated value has the wrong type for conversion")

// RenderOptions configures a keyframe render.
type RenderOptions struct {
	Easing easing.Equation
	// Rate is the sample rate in frames per second; DefaultFrameRate if zero.
	Rate float64
}

// A Keyframe is one sample. Time is normalized so that the animation's
// duration is 1.
type Keyframe[T any] struct {
	Time   float64 `json:"time"`
	Values []T     `json:"values"`
}

// Value returns the first track's value.
func (k Keyframe[T]) Value() T {
	return k.Values[0]
}

// Keyframes is a precomputed animation for declarative playback.
type Keyframes[T any] struct {
	Duration time.Duration
	Frames   []Keyframe[T]
	// FillForwards asks the player to hold the last value after the end.
	FillForwards bool
}

// Len returns the number of samples.
func (k *Keyframes[T]) Len() int {
	return len(k.Frames)
}

// Times returns the normalized sample times.
func (k *Keyframes[T]) Times() []float64 {
	times := make([]float64, len(k.Frames))
	for i, f := range k.Frames {
		times[i] = f.Time
	}
	return times
}

// Values returns one track's samples.
func (k *Keyframes[T]) Values(track int) []T {
	values := make([]T, len(k.Frames))
	for i, f := range k.Frames {
		values[i] = f.Values[track]
	}
	return values
}

// MarshalJSON writes the duration in seconds.
func (k Keyframes[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Duration     float64       `json:"duration"`
		FillForwards bool          `json:"fillForwards"`
		Frames       []Keyframe[T] `json:"frames"`
	}{k.Duration.Seconds(), k.FillForwards, k.Frames})
}

// Render samples the animation at a fixed rate without scheduling it. The
// samples cover the whole duration: the last one falls on or after the end.
func (a *Animation[T]) Render(opts RenderOptions) *Keyframes[T] {
	rate := opts.Rate
	if rate <= 0 {
		rate = DefaultFrameRate
	}
	fn := opts.Easing.Func()
	duration := a.Duration()
	seconds := duration.Seconds()

	out := &Keyframes[T]{Duration: duration, FillForwards: true}
	if duration <= 0 {
		out.Frames = []Keyframe[T]{{Time: 0, Values: a.tween(1)}}
		return out
	}

	count := int(math.Ceil(rate*seconds)) + 1
	out.Frames = make([]Keyframe[T], count)
	for i := 0; i < count; i++ {
		at := float64(i) / rate
		elapsed := duration
		if at < seconds {
			elapsed = time.Duration(math.Round(at * float64(time.Second)))
		}
		out.Frames[i] = Keyframe[T]{
			Time:   at / seconds,
			Values: a.tween(evaluate(fn, elapsed, duration)),
		}
	}
	return out
}

func (a *Animation[T]) tween(progress float64) []T {
	values := make([]T, len(a.start))
	for i := range a.start {
		values[i] = a.start[i].Tween(a.end[i], progress)
	}
	return values
}

// RenderConverted renders a and passes every sample through conv. If any
// value is not an In, no keyframes are returned.
func RenderConverted[T tween.Tweenable[T], In, Out any](a *Animation[T], conv func(In) Out, opts RenderOptions) (*Keyframes[Out], error) {
	rendered := a.Render(opts)

	out := &Keyframes[Out]{
		Duration:     rendered.Duration,
		FillForwards: rendered.FillForwards,
		Frames:       make([]Keyframe[Out], len(rendered.Frames)),
	}
	for i, f := range rendered.Frames {
		values := make([]Out, len(f.Values))
		for j, v := range f.Values {
			in, ok := any(v).(In)
			if !ok {
				return nil, fmt.Errorf("%w: %T", ErrTypeMismatch, v)
			}
			values[j] = conv(in)
		}
		out.Frames[i] = Keyframe[Out]{Time: f.Time, Values: values}
	}
	return out, nil
}
