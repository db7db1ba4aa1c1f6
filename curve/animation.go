// Package curve runs tweens over time. An Animation is armed on a Scheduler,
// which advances every running animation once per frame and pushes the
// interpolated values to the animation's callbacks. Animations can also be
// rendered ahead of time into a fixed-rate list of keyframes.
package curve

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/matt-g-everett/curve/easing"
	"github.com/matt-g-everett/curve/tween"
)

var (
	// ErrNoTracks is returned when an animation is built without values.
	ErrNoTracks = errors.New("animation needs at least one track")
	// ErrTrackMismatch is returned when start and end value counts differ.
	ErrTrackMismatch = errors.New("start and end track counts differ")
)

// ID identifies an animation for its whole lifetime.
type ID uint64

var lastID atomic.Uint64

func nextID() ID {
	return ID(lastID.Add(1))
}

// State is the lifecycle stage of an animation.
type State int

const (
	// Created animations have not been run yet.
	Created State = iota
	// Running animations are registered and receive ticks.
	Running
	// Completed animations reached their end time, possibly by a forced cancel.
	Completed
	// Cancelled animations were stopped without completing.
	Cancelled
)

func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Options configures an animation when it is run.
type Options[T any] struct {
	Easing easing.Equation
	Delay  time.Duration

	// OnChange receives the value of a single-track animation every tick.
	OnChange func(T)
	// OnChangeAll receives every track's value, in construction order, for
	// animations with more than one track.
	OnChangeAll func([]T)
	// OnComplete is called once. Success is false for any kind of cancellation.
	OnComplete func(success bool)
}

// An Animation tweens one or more tracks from their start to their end values.
type Animation[T tween.Tweenable[T]] struct {
	id    ID
	start []T
	end   []T

	mu        sync.Mutex
	duration  time.Duration
	state     State
	forced    bool
	opts      Options[T]
	fn        easing.Func
	startTime time.Time
	endTime   time.Time
	scheduler *Scheduler
}

// New creates an animation with one track per start/end pair. Negative
// durations are treated as zero.
func New[T tween.Tweenable[T]](start, end []T, duration time.Duration) (*Animation[T], error) {
	if len(start) == 0 || len(end) == 0 {
		return nil, ErrNoTracks
	}
	if len(start) != len(end) {
		return nil, fmt.Errorf("%w: %d start, %d end", ErrTrackMismatch, len(start), len(end))
	}
	if duration < 0 {
		duration = 0
	}

	a := new(Animation[T])
	a.id = nextID()
	a.start = append([]T(nil), start...)
	a.end = append([]T(nil), end...)
	a.duration = duration
	a.state = Created
	return a, nil
}

// From creates a single-track animation.
func From[T tween.Tweenable[T]](start, end T, duration time.Duration) *Animation[T] {
	a, _ := New([]T{start}, []T{end}, duration)
	return a
}

// ID returns the animation's handle.
func (a *Animation[T]) ID() ID {
	return a.id
}

// Tracks returns the number of parallel tracks.
func (a *Animation[T]) Tracks() int {
	return len(a.start)
}

// State returns the current lifecycle state.
func (a *Animation[T]) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Done reports whether the animation has completed or been cancelled.
func (a *Animation[T]) Done() bool {
	s := a.State()
	return s == Completed || s == Cancelled
}

// Duration returns the animation length. A forced cancellation shortens it.
func (a *Animation[T]) Duration() time.Duration {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.duration
}

// Run arms the animation on s and starts the scheduler's frame driver if it
// is not already running. Only a newly created animation can be run; later
// calls do nothing.
func (a *Animation[T]) Run(s *Scheduler, opts Options[T]) *Animation[T] {
	a.mu.Lock()
	if a.state != Created {
		a.mu.Unlock()
		return a
	}
	a.opts = opts
	a.fn = opts.Easing.Func()
	a.scheduler = s
	a.startTime = s.Now().Add(opts.Delay)
	a.endTime = a.startTime.Add(a.duration)
	a.state = Running
	a.mu.Unlock()

	s.register(a)
	s.Start()
	return a
}

// Cancel stops a running animation.
//
// Without forceComplete the animation freezes where it is: no further values
// are emitted and OnComplete(false) is called. With forceComplete the end is
// moved to now, the final value is emitted synchronously and OnComplete(false)
// follows.
func (a *Animation[T]) Cancel(forceComplete bool) *Animation[T] {
	a.mu.Lock()
	if a.state != Running {
		a.mu.Unlock()
		return a
	}
	s := a.scheduler

	if !forceComplete {
		a.state = Cancelled
		onComplete := a.opts.OnComplete
		a.mu.Unlock()

		s.remove(a.id)
		if onComplete != nil {
			onComplete(false)
		}
		return a
	}

	now := s.Now()
	if now.Before(a.startTime) {
		a.startTime = now
	}
	a.endTime = now
	a.duration = a.endTime.Sub(a.startTime)
	a.forced = true
	a.mu.Unlock()

	a.Tick(now)
	return a
}

// Tick advances the animation to now and emits the interpolated values. It
// does nothing unless the animation is running and its delay has passed.
func (a *Animation[T]) Tick(now time.Time) {
	a.mu.Lock()
	if a.state != Running || now.Before(a.startTime) {
		a.mu.Unlock()
		return
	}
	if now.After(a.endTime) {
		now = a.endTime
	}

	values := a.tween(evaluate(a.fn, now.Sub(a.startTime), a.duration))

	finished := !now.Before(a.endTime)
	if finished {
		a.state = Completed
	}
	success := !a.forced
	opts := a.opts
	a.mu.Unlock()

	// Callbacks run unlocked so they may run or cancel animations.
	if len(values) == 1 {
		if opts.OnChange != nil {
			opts.OnChange(values[0])
		}
	} else if opts.OnChangeAll != nil {
		opts.OnChangeAll(values)
	}
	if finished && opts.OnComplete != nil {
		opts.OnComplete(success)
	}
}

// evaluate returns the eased progress fraction. A zero duration is already
// finished.
func evaluate(fn easing.Func, elapsed, duration time.Duration) float64 {
	if duration <= 0 {
		return 1
	}
	return fn(easing.Props(elapsed.Seconds(), 0, 1, duration.Seconds()))
}
