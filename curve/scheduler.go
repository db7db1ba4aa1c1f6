package curve

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// A Ticker is anything the scheduler can advance. Animations of every value
// type satisfy it.
type Ticker interface {
	ID() ID
	Tick(now time.Time)
	Done() bool
}

// Scheduler advances every running animation once per frame and drops the
// ones that have finished.
//
// Frames are processed on a single goroutine. Run may be called from any
// goroutine; a Cancel from outside the frame goroutine that must not race a
// tick in flight should be sent through Post.
type Scheduler struct {
	clock  clock.Clock
	frames FrameSource

	mu      sync.Mutex
	entries map[ID]Ticker
	posted  []func()
	started bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewScheduler creates an empty scheduler. A nil clock uses the wall clock.
// With a nil frame source the host is expected to call OnFrame itself.
func NewScheduler(clk clock.Clock, frames FrameSource) *Scheduler {
	if clk == nil {
		clk = clock.New()
	}

	s := new(Scheduler)
	s.clock = clk
	s.frames = frames
	s.entries = make(map[ID]Ticker)
	return s
}

// Now reads the scheduler's clock.
func (s *Scheduler) Now() time.Time {
	return s.clock.Now()
}

// Start binds the frame driver to the frame source. Calling it again does
// nothing.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return
	}
	s.started = true
	if s.frames == nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.drive(ctx, s.frames.Frames(ctx), s.done)
	log.Println("Frame driver started")
}

// Started reports whether Start has been called.
func (s *Scheduler) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

// Stop unbinds the frame driver and waits for the frame in progress. Running
// animations stay registered.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.started = false
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
		log.Println("Frame driver stopped")
	}
}

func (s *Scheduler) drive(ctx context.Context, frames <-chan time.Time, done chan<- struct{}) {
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			return
		case now, ok := <-frames:
			if !ok {
				return
			}
			s.OnFrame(now)
		}
	}
}

// OnFrame ticks every registered animation at now and removes the finished
// ones. Animations registered by callbacks during the frame are first ticked
// on the next frame.
func (s *Scheduler) OnFrame(now time.Time) {
	s.mu.Lock()
	posted := s.posted
	s.posted = nil
	live := make([]Ticker, 0, len(s.entries))
	for _, t := range s.entries {
		live = append(live, t)
	}
	s.mu.Unlock()

	for _, fn := range posted {
		fn()
	}
	for _, t := range live {
		t.Tick(now)
	}

	s.mu.Lock()
	for id, t := range s.entries {
		if t.Done() {
			delete(s.entries, id)
		}
	}
	s.mu.Unlock()
}

// Post queues fn to run on the frame goroutine at the start of the next frame.
func (s *Scheduler) Post(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posted = append(s.posted, fn)
}

// Len returns the number of registered animations.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Contains reports whether the animation with id is registered.
func (s *Scheduler) Contains(id ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[id]
	return ok
}

func (s *Scheduler) register(t Ticker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[t.ID()] = t
}

func (s *Scheduler) remove(id ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}
