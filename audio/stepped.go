package audio

import (
	"time"

	"github.com/benbjohnson/clock"
	"github.com/gopxl/beep"
	"github.com/matt-g-everett/curve/curve"
)

// stepped runs a scheduler on the stream's own time instead of the wall clock.
type stepped struct {
	streamer beep.Streamer
	sch      *curve.Scheduler
	clk      *clock.Mock
	origin   time.Time
	rate     beep.SampleRate
	block    int
	pending  int
	position int
}

// Stepped lets live animations shape an offline stream. Every block of
// samples one frame long starts with a scheduler frame at the block's stream
// time, so callbacks such as Fader.SetGain apply to the whole block. clk must
// be the scheduler's clock.
func Stepped(s beep.Streamer, sch *curve.Scheduler, clk *clock.Mock, rate beep.SampleRate, frameRate float64) beep.Streamer {
	interval := curve.TickerSource{Rate: frameRate}.Interval()
	block := rate.N(interval)
	if block < 1 {
		block = 1
	}
	return &stepped{streamer: s, sch: sch, clk: clk, origin: clk.Now(), rate: rate, block: block}
}

func (st *stepped) Stream(samples [][2]float64) (n int, ok bool) {
	for n < len(samples) {
		if st.pending == 0 {
			st.sch.OnFrame(st.clk.Now())
			st.pending = st.block
		}
		m := st.pending
		if m > len(samples)-n {
			m = len(samples) - n
		}

		k, ok := st.streamer.Stream(samples[n : n+m])
		n += k
		st.pending -= k
		st.position += k
		st.clk.Set(st.origin.Add(st.rate.D(st.position)))
		if !ok {
			return n, n > 0
		}
		if k < m {
			break
		}
	}
	return n, true
}

func (st *stepped) Err() error { return st.streamer.Err() }
