package easing

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownEquation is returned by Parse for names it does not recognise.
var ErrUnknownEquation = errors.New("unknown easing equation")

// Kind enumerates the equation variants.
type Kind int

// The zero Kind is Linear.
const (
	KindLinear Kind = iota
	KindBounceOut
	KindBounceIn
	KindBounceInOut
	KindCircOut
	KindCircIn
	KindCircInOut
	KindCubicOut
	KindCubicIn
	KindCubicInOut
	KindBackOut
	KindBackIn
	KindBackInOut
	KindQuadOut
	KindQuadIn
	KindQuadInOut
	KindQuartOut
	KindQuartIn
	KindQuartInOut
	KindSineOut
	KindSineIn
	KindSineInOut
	KindExpoOut
	KindExpoIn
	KindExpoInOut
	KindCustom
)

var kindNames = map[Kind]string{
	KindLinear:      "linear",
	KindBounceOut:   "bounceOut",
	KindBounceIn:    "bounceIn",
	KindBounceInOut: "bounceInOut",
	KindCircOut:     "circOut",
	KindCircIn:      "circIn",
	KindCircInOut:   "circInOut",
	KindCubicOut:    "cubicOut",
	KindCubicIn:     "cubicIn",
	KindCubicInOut:  "cubicInOut",
	KindBackOut:     "backOut",
	KindBackIn:      "backIn",
	KindBackInOut:   "backInOut",
	KindQuadOut:     "quadOut",
	KindQuadIn:      "quadIn",
	KindQuadInOut:   "quadInOut",
	KindQuartOut:    "quartOut",
	KindQuartIn:     "quartIn",
	KindQuartInOut:  "quartInOut",
	KindSineOut:     "sineOut",
	KindSineIn:      "sineIn",
	KindSineInOut:   "sineInOut",
	KindExpoOut:     "expoOut",
	KindExpoIn:      "expoIn",
	KindExpoInOut:   "expoInOut",
	KindCustom:      "custom",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Equation selects one timing function. The zero value is Linear.
type Equation struct {
	kind      Kind
	overshoot float64
	custom    Func
}

// Linear moves at constant speed.
func Linear() Equation { return Equation{kind: KindLinear} }

// BounceOut lands on the end value and bounces off it with decaying height.
func BounceOut() Equation { return Equation{kind: KindBounceOut} }

// BounceIn mirrors BounceOut: the bounces grow before it leaves the begin value.
func BounceIn() Equation { return Equation{kind: KindBounceIn} }

// BounceInOut bounces in for the first half and out for the second.
func BounceInOut() Equation { return Equation{kind: KindBounceInOut} }

// CircOut follows a quarter circle, fast at first.
func CircOut() Equation { return Equation{kind: KindCircOut} }

// CircIn follows a quarter circle, slow at first.
func CircIn() Equation { return Equation{kind: KindCircIn} }

// CircInOut joins CircIn and CircOut at the midpoint.
func CircInOut() Equation { return Equation{kind: KindCircInOut} }

// CubicOut decelerates along a cubic.
func CubicOut() Equation { return Equation{kind: KindCubicOut} }

// CubicIn accelerates along a cubic.
func CubicIn() Equation { return Equation{kind: KindCubicIn} }

// CubicInOut accelerates then decelerates along a cubic.
func CubicInOut() Equation { return Equation{kind: KindCubicInOut} }

// QuadOut decelerates along a parabola.
func QuadOut() Equation { return Equation{kind: KindQuadOut} }

// QuadIn accelerates along a parabola.
func QuadIn() Equation { return Equation{kind: KindQuadIn} }

// QuadInOut accelerates then decelerates along a parabola.
func QuadInOut() Equation { return Equation{kind: KindQuadInOut} }

// QuartOut decelerates along a quartic.
func QuartOut() Equation { return Equation{kind: KindQuartOut} }

// QuartIn accelerates along a quartic.
func QuartIn() Equation { return Equation{kind: KindQuartIn} }

// QuartInOut accelerates then decelerates along a quartic.
func QuartInOut() Equation { return Equation{kind: KindQuartInOut} }

// SineOut decelerates along a quarter sine wave.
func SineOut() Equation { return Equation{kind: KindSineOut} }

// SineIn accelerates along a quarter sine wave.
func SineIn() Equation { return Equation{kind: KindSineIn} }

// SineInOut follows half a cosine wave.
func SineInOut() Equation { return Equation{kind: KindSineInOut} }

// ExpoOut decelerates exponentially.
func ExpoOut() Equation { return Equation{kind: KindExpoOut} }

// ExpoIn accelerates exponentially.
func ExpoIn() Equation { return Equation{kind: KindExpoIn} }

// ExpoInOut accelerates then decelerates exponentially.
func ExpoInOut() Equation { return Equation{kind: KindExpoInOut} }

// BackOut overshoots the end value before settling.
func BackOut(overshoot float64) Equation {
	return Equation{kind: KindBackOut, overshoot: overshoot}
}

// BackIn pulls back behind the begin value before leaving.
func BackIn(overshoot float64) Equation {
	return Equation{kind: KindBackIn, overshoot: overshoot}
}

// BackInOut combines BackIn and BackOut. The overshoot is scaled by 1.525.
func BackInOut(overshoot float64) Equation {
	return Equation{kind: KindBackInOut, overshoot: overshoot}
}

// Custom wraps a caller supplied function. It is not validated.
func Custom(fn Func) Equation {
	return Equation{kind: KindCustom, custom: fn}
}

// Kind reports the variant.
func (e Equation) Kind() Kind { return e.kind }

// Overshoot reports the back coefficient; zero for other variants.
func (e Equation) Overshoot() float64 { return e.overshoot }

// Func resolves the equation to its timing function.
func (e Equation) Func() Func {
	switch e.kind {
	case KindBounceOut:
		return bounceOut
	case KindBounceIn:
		return bounceIn
	case KindBounceInOut:
		return bounceInOut
	case KindCircOut:
		return circOut
	case KindCircIn:
		return circIn
	case KindCircInOut:
		return circInOut
	case KindCubicOut:
		return cubicOut
	case KindCubicIn:
		return cubicIn
	case KindCubicInOut:
		return cubicInOut
	case KindBackOut:
		return backOut(e.overshoot)
	case KindBackIn:
		return backIn(e.overshoot)
	case KindBackInOut:
		return backInOut(e.overshoot)
	case KindQuadOut:
		return quadOut
	case KindQuadIn:
		return quadIn
	case KindQuadInOut:
		return quadInOut
	case KindQuartOut:
		return quartOut
	case KindQuartIn:
		return quartIn
	case KindQuartInOut:
		return quartInOut
	case KindSineOut:
		return sineOut
	case KindSineIn:
		return sineIn
	case KindSineInOut:
		return sineInOut
	case KindExpoOut:
		return expoOut
	case KindExpoIn:
		return expoIn
	case KindExpoInOut:
		return expoInOut
	case KindCustom:
		if e.custom != nil {
			return e.custom
		}
	}
	return linear
}

// Eval is shorthand for e.Func()(p).
func (e Equation) Eval(p TimingProps) float64 {
	return e.Func()(p)
}

func (e Equation) String() string {
	switch e.kind {
	case KindBackOut, KindBackIn, KindBackInOut:
		return fmt.Sprintf("%s(%g)", e.kind, e.overshoot)
	}
	return e.kind.String()
}

// Parse resolves an equation by its camelCase name, e.g. "bounceOut". Back
// variants get DefaultOvershoot; use WithOvershoot to change it. Custom
// equations cannot be parsed.
func Parse(name string) (Equation, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return Linear(), nil
	}
	for k, n := range kindNames {
		if k == KindCustom || strings.ToLower(n) != key {
			continue
		}
		return Equation{kind: k}.WithOvershoot(DefaultOvershoot), nil
	}
	return Equation{}, fmt.Errorf("%w: %q", ErrUnknownEquation, name)
}

// WithOvershoot returns a back variant with a new overshoot. Zero is allowed
// and removes the overshoot. Other variants are returned unchanged.
func (e Equation) WithOvershoot(overshoot float64) Equation {
	switch e.kind {
	case KindBackOut, KindBackIn, KindBackInOut:
		e.overshoot = overshoot
	}
	return e
}

// Names lists every name Parse accepts, sorted.
func Names() []string {
	names := make([]string, 0, len(kindNames)-1)
	for k, n := range kindNames {
		if k != KindCustom {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}
