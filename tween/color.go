package tween

import (
	"encoding/json"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB colour with an alpha channel.
type Color struct {
	colorful.Color
	Alpha float64
}

// NewColor wraps an opaque colorful.Color.
func NewColor(c colorful.Color) Color {
	return Color{Color: c, Alpha: 1}
}

// ParseColor reads an opaque colour from a "#rrggbb" string.
func ParseColor(hex string) (Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, err
	}
	return NewColor(c), nil
}

// Tween interpolates red, green, blue and alpha independently in sRGB space.
func (c Color) Tween(end Color, progress float64) Color {
	return Color{
		Color: colorful.Color{
			R: Lerp(c.R, end.R, progress),
			G: Lerp(c.G, end.G, progress),
			B: Lerp(c.B, end.B, progress),
		},
		Alpha: Lerp(c.Alpha, end.Alpha, progress),
	}
}

// Premultiplied returns the colour scaled by its alpha.
func (c Color) Premultiplied() colorful.Color {
	return colorful.Color{R: c.R * c.Alpha, G: c.G * c.Alpha, B: c.B * c.Alpha}
}

// MarshalJSON writes the clamped hex value and the alpha.
func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Hex   string  `json:"hex"`
		Alpha float64 `json:"alpha"`
	}{c.Clamped().Hex(), c.Alpha})
}
