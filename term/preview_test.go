package term

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/gdamore/tcell/v2"
	"github.com/matt-g-everett/curve/curve"
	"github.com/matt-g-everett/curve/tween"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	screen.SetSize(20, 10)
	t.Cleanup(screen.Fini)
	return screen
}

func runeAt(s tcell.Screen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}

func TestDrawMarkerAndBar(t *testing.T) {
	screen := newScreen(t)
	p := NewPreview(screen)
	p.SetPoint(tween.Point{X: 5.4, Y: 3.6})
	p.SetLevel(0.5)
	p.Draw()

	if r := runeAt(screen, 5, 4); r != marker {
		t.Errorf("Expected marker at (5,4), got %q", r)
	}
	for x := 0; x < 20; x++ {
		r := runeAt(screen, x, 9)
		if x < 10 && r != block {
			t.Errorf("Expected bar at column %d, got %q", x, r)
		}
		if x >= 10 && r == block {
			t.Errorf("Unexpected bar at column %d", x)
		}
	}
}

func TestDrawClamps(t *testing.T) {
	tests := []struct {
		name  string
		point tween.Point
		x, y  int
	}{
		{"Left and above", tween.Point{X: -3, Y: -8}, 0, 0},
		{"Right and below", tween.Point{X: 100, Y: 100}, 19, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			screen := newScreen(t)
			p := NewPreview(screen)
			p.SetPoint(tt.point)
			p.SetLevel(-1)
			p.Draw()
			if r := runeAt(screen, tt.x, tt.y); r != marker {
				t.Errorf("Expected marker at (%d,%d), got %q", tt.x, tt.y, r)
			}
		})
	}

	screen := newScreen(t)
	p := NewPreview(screen)
	p.SetPoint(tween.Point{X: 10, Y: 5})
	p.SetLevel(1.7)
	p.Draw()
	if r := runeAt(screen, 19, 9); r != block {
		t.Errorf("Expected a full bar, got %q", r)
	}
}

func TestSwatchColour(t *testing.T) {
	screen := newScreen(t)
	p := NewPreview(screen)
	c, err := tween.ParseColor("#ff8000")
	if err != nil {
		t.Fatalf("ParseColor failed: %v", err)
	}
	p.SetColor(c)
	p.SetPoint(tween.Point{X: 10, Y: 5})
	p.Draw()

	_, _, style, _ := screen.GetContent(0, 0)
	fg, _, _ := style.Decompose()
	if fg != tcell.NewRGBColor(255, 128, 0) {
		t.Errorf("Unexpected swatch colour %v", fg)
	}
}

func TestPreviewFollowsAnimation(t *testing.T) {
	screen := newScreen(t)
	p := NewPreview(screen)

	clk := clock.NewMock()
	start := clk.Now()
	sch := curve.NewScheduler(clk, nil)
	a := curve.From(tween.Point{X: 0, Y: 0}, tween.Point{X: 10, Y: 8}, time.Second)
	a.Run(sch, curve.Options[tween.Point]{OnChange: p.SetPoint})

	sch.OnFrame(start.Add(500 * time.Millisecond))
	p.Draw()
	if r := runeAt(screen, 5, 4); r != marker {
		t.Errorf("Expected marker halfway, got %q", r)
	}
}

func TestRunQuitsOnKey(t *testing.T) {
	screen := newScreen(t)
	p := NewPreview(screen)

	done := make(chan struct{})
	go func() {
		p.Run(context.Background(), time.Millisecond)
		close(done)
	}()

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return")
	}
}
