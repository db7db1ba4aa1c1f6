package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
)

// Tone generates a sine wave of the given frequency and length.
func Tone(freq float64, duration time.Duration, rate beep.SampleRate) (beep.Streamer, error) {
	sine, err := generators.SineTone(rate, freq)
	if err != nil {
		return nil, fmt.Errorf("tone at %vHz: %w", freq, err)
	}
	return beep.Take(rate.N(duration), sine), nil
}
