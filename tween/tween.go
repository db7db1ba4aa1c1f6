// Package tween defines how values are interpolated between a begin and an end
// value for a given progress fraction.
package tween

// A Tweenable value can produce an intermediate value between itself and end.
// Progress is not clamped: values below 0 or above 1 extrapolate linearly.
type Tweenable[T any] interface {
	Tween(end T, progress float64) T
}

// Number is any scalar that Lerp can interpolate.
type Number interface {
	~float32 | ~float64
}

// Lerp interpolates a scalar.
func Lerp[N Number](begin, end N, progress float64) N {
	return begin + (end-begin)*N(progress)
}

// Float is a float64 that can be tweened.
type Float float64

// Tween implements Tweenable.
func (f Float) Tween(end Float, progress float64) Float {
	return Lerp(f, end, progress)
}

// Point is a 2D location.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Tween interpolates x and y independently.
func (p Point) Tween(end Point, progress float64) Point {
	return Point{
		X: Lerp(p.X, end.X, progress),
		Y: Lerp(p.Y, end.Y, progress),
	}
}

// Size is a 2D extent.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Tween interpolates width and height independently.
func (s Size) Tween(end Size, progress float64) Size {
	return Size{
		Width:  Lerp(s.Width, end.Width, progress),
		Height: Lerp(s.Height, end.Height, progress),
	}
}

// Rect is an origin and a size.
type Rect struct {
	Origin Point `json:"origin"`
	Size   Size  `json:"size"`
}

// Tween interpolates the origin and the size separately.
func (r Rect) Tween(end Rect, progress float64) Rect {
	return Rect{
		Origin: r.Origin.Tween(end.Origin, progress),
		Size:   r.Size.Tween(end.Size, progress),
	}
}
