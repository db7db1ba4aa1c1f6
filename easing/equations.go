// Package easing implements Penner-style timing equations.
//
// Every equation maps an elapsed time t, a begin value b, a change c and a
// duration d to an eased value. Callers interpolating between arbitrary
// values usually pass b=0 and c=1 to get a progress fraction back.
package easing

import (
	"math"

	"github.com/fogleman/ease"
)

// TimingProps is the input to a timing function.
type TimingProps struct {
	T float64 // elapsed
	B float64 // begin
	C float64 // change
	D float64 // duration

	Extras []any
}

// Props builds a TimingProps without extras.
func Props(t, b, c, d float64) TimingProps {
	return TimingProps{T: t, B: b, C: c, D: d}
}

// Func is a pure timing function.
type Func func(TimingProps) float64

// DefaultOvershoot is the classic back easing coefficient (10% overshoot).
const DefaultOvershoot = 1.70158

// Overshoot in the InOut back variant is scaled by this factor.
const backInOutScale = 1.525

func linear(p TimingProps) float64 {
	return p.C*p.T/p.D + p.B
}

func cubicIn(p TimingProps) float64 {
	t := p.T / p.D
	return p.C*t*t*t + p.B
}

func cubicOut(p TimingProps) float64 {
	t := p.T/p.D - 1
	return p.C*(t*t*t+1) + p.B
}

func cubicInOut(p TimingProps) float64 {
	t := p.T / (p.D / 2)
	if t < 1 {
		return p.C/2*t*t*t + p.B
	}
	t -= 2
	return p.C/2*(t*t*t+2) + p.B
}

func circIn(p TimingProps) float64 {
	t := p.T / p.D
	return -p.C*(math.Sqrt(1-t*t)-1) + p.B
}

func circOut(p TimingProps) float64 {
	t := p.T/p.D - 1
	return p.C*math.Sqrt(1-t*t) + p.B
}

func circInOut(p TimingProps) float64 {
	t := p.T / (p.D / 2)
	if t < 1 {
		return -p.C/2*(math.Sqrt(1-t*t)-1) + p.B
	}
	t -= 2
	return p.C/2*(math.Sqrt(1-t*t)+1) + p.B
}

func backIn(s float64) Func {
	return func(p TimingProps) float64 {
		t := p.T / p.D
		return p.C*t*t*((s+1)*t-s) + p.B
	}
}

func backOut(s float64) Func {
	return func(p TimingProps) float64 {
		t := p.T/p.D - 1
		return p.C*(t*t*((s+1)*t+s)+1) + p.B
	}
}

func backInOut(s float64) Func {
	s *= backInOutScale
	return func(p TimingProps) float64 {
		t := p.T / (p.D / 2)
		if t < 1 {
			return p.C/2*(t*t*((s+1)*t-s)) + p.B
		}
		t -= 2
		return p.C/2*(t*t*((s+1)*t+s)+2) + p.B
	}
}

// bounceOut is the four-segment bounce settling into the end value.
func bounceOut(p TimingProps) float64 {
	t, b, c := p.T/p.D, p.B, p.C
	switch {
	case t < 1/2.75:
		return c*(7.5625*t*t) + b
	case t < 2/2.75:
		t -= 1.5 / 2.75
		return c*(7.5625*t*t+0.75) + b
	case t < 2.5/2.75:
		t -= 2.25 / 2.75
		return c*(7.5625*t*t+0.9375) + b
	default:
		t -= 2.625 / 2.75
		return c*(7.5625*t*t+0.984375) + b
	}
}

// bounceIn mirrors bounceOut in time.
func bounceIn(p TimingProps) float64 {
	return p.C - bounceOut(Props(p.D-p.T, 0, p.C, p.D)) + p.B
}

// bounceInOut runs bounceIn over the first half and bounceOut over the second.
func bounceInOut(p TimingProps) float64 {
	if p.T < p.D/2 {
		return bounceIn(Props(p.T*2, 0, p.C, p.D))*0.5 + p.B
	}
	return bounceOut(Props(p.T*2-p.D, 0, p.C, p.D))*0.5 + p.C*0.5 + p.B
}

// normalized adapts a [0,1] -> [0,1] curve to the (t, b, c, d) form.
func normalized(f func(float64) float64) Func {
	return func(p TimingProps) float64 {
		return p.C*f(p.T/p.D) + p.B
	}
}

var (
	quadIn     = normalized(ease.InQuad)
	quadOut    = normalized(ease.OutQuad)
	quadInOut  = normalized(ease.InOutQuad)
	quartIn    = normalized(ease.InQuart)
	quartOut   = normalized(ease.OutQuart)
	quartInOut = normalized(ease.InOutQuart)
	sineIn     = normalized(ease.InSine)
	sineOut    = normalized(ease.OutSine)
	sineInOut  = normalized(ease.InOutSine)
	expoIn     = normalized(ease.InExpo)
	expoOut    = normalized(ease.OutExpo)
	expoInOut  = normalized(ease.InOutExpo)
)
