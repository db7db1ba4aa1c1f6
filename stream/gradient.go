package stream

import (
	"github.com/matt-g-everett/curve/tween"
)

// Stop is a colour pinned to a position between 0 and 1 along the strip.
type Stop struct {
	Color tween.Color
	Pos   float64
}

// Gradient is a list of stops in increasing position order.
type Gradient []Stop

// EvenGradient spaces the colours evenly from one end of the strip to the
// other.
func EvenGradient(colours []tween.Color) Gradient {
	g := make(Gradient, len(colours))
	for i, c := range colours {
		g[i].Color = c
		if len(colours) > 1 {
			g[i].Pos = float64(i) / float64(len(colours)-1)
		}
	}
	return g
}

// At gets the colour at position t.
func (g Gradient) At(t float64) tween.Color {
	if t <= g[0].Pos {
		return g[0].Color
	}
	for i := 0; i < len(g)-1; i++ {
		c1 := g[i]
		c2 := g[i+1]
		if c1.Pos <= t && t <= c2.Pos {
			if c2.Pos == c1.Pos {
				return c2.Color
			}
			return c1.Color.Tween(c2.Color, (t-c1.Pos)/(c2.Pos-c1.Pos))
		}
	}

	// Past the last stop.
	return g[len(g)-1].Color
}
