// Package term previews animations in a terminal.
package term

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/matt-g-everett/curve/tween"
)

const (
	marker = '●'
	block  = '█'
)

// Preview draws a moving marker, a level bar along the bottom row and a
// colour swatch in the top-left corner. The setters are animation callbacks
// and may be called from the frame goroutine.
type Preview struct {
	screen tcell.Screen

	mu     sync.Mutex
	point  tween.Point
	level  float64
	colour tween.Color
}

// NewPreview creates a Preview on an initialized screen.
func NewPreview(screen tcell.Screen) *Preview {
	p := new(Preview)
	p.screen = screen
	return p
}

// SetPoint moves the marker, in cells.
func (p *Preview) SetPoint(pt tween.Point) {
	p.mu.Lock()
	p.point = pt
	p.mu.Unlock()
}

// SetLevel sets the bar's filled fraction; it is clamped to [0, 1] when drawn.
func (p *Preview) SetLevel(f tween.Float) {
	p.mu.Lock()
	p.level = float64(f)
	p.mu.Unlock()
}

// SetColor sets the swatch colour.
func (p *Preview) SetColor(c tween.Color) {
	p.mu.Lock()
	p.colour = c
	p.mu.Unlock()
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Draw renders the current state and shows it.
func (p *Preview) Draw() {
	p.mu.Lock()
	pt, level, colour := p.point, p.level, p.colour
	p.mu.Unlock()

	s := p.screen
	s.Clear()
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}

	r, g, b := colour.Premultiplied().Clamped().RGB255()
	swatch := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
	for x := 0; x < 4 && x < w; x++ {
		s.SetContent(x, 0, block, nil, swatch)
	}

	x := clampInt(int(math.Round(pt.X)), 0, w-1)
	y := clampInt(int(math.Round(pt.Y)), 0, h-1)
	s.SetContent(x, y, marker, nil, tcell.StyleDefault.Foreground(tcell.ColorYellow))

	filled := clampInt(int(math.Round(level*float64(w))), 0, w)
	bar := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	for i := 0; i < filled; i++ {
		s.SetContent(i, h-1, block, nil, bar)
	}
	s.Show()
}

// Run redraws every interval until ctx is done or the user presses Escape,
// q or Ctrl-C. The caller owns the screen and finalizes it afterwards.
func (p *Preview) Run(ctx context.Context, interval time.Duration) {
	quit := make(chan struct{})
	go func() {
		for {
			ev := p.screen.PollEvent()
			switch ev := ev.(type) {
			case nil:
				return
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
					(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					close(quit)
					return
				}
			case *tcell.EventResize:
				p.screen.Sync()
			}
		}
	}()

	redraw := time.NewTicker(interval)
	defer redraw.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-quit:
			return
		case <-redraw.C:
			p.Draw()
		}
	}
}
