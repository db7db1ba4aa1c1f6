package curve

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
)

// DefaultFrameRate is the nominal number of frames per second.
const DefaultFrameRate = 60.0

// A FrameSource delivers one increasing timestamp per display frame until ctx
// is done. Deliveries must never overlap.
type FrameSource interface {
	Frames(ctx context.Context) <-chan time.Time
}

// TickerSource produces frames from a ticker on Clock, the wall clock if nil.
type TickerSource struct {
	Rate  float64
	Clock clock.Clock
}

// Interval returns the time between frames, using DefaultFrameRate if Rate is
// not positive.
func (t TickerSource) Interval() time.Duration {
	rate := t.Rate
	if rate <= 0 {
		rate = DefaultFrameRate
	}
	return time.Duration(float64(time.Second) / rate)
}

// Frames implements FrameSource.
func (t TickerSource) Frames(ctx context.Context) <-chan time.Time {
	clk := t.Clock
	if clk == nil {
		clk = clock.New()
	}
	ticker := clk.Ticker(t.Interval())

	ch := make(chan time.Time)
	go func() {
		defer close(ch)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				select {
				case ch <- now:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return ch
}

// ChannelSource forwards frames from a channel owned by the host, such as a
// render loop's vsync signal.
type ChannelSource <-chan time.Time

// Frames implements FrameSource.
func (c ChannelSource) Frames(ctx context.Context) <-chan time.Time {
	return c
}
