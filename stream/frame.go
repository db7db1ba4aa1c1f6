package stream

import (
	"encoding/binary"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/curve/tween"
)

// Frame represents a frame of RGB pixels to display on an ledrx device.
type Frame struct {
	pixels []colorful.Color
}

// NewFrame creates a black frame with numPixels pixels.
func NewFrame(numPixels int) *Frame {
	f := new(Frame)
	f.pixels = make([]colorful.Color, numPixels)
	return f
}

// Len returns the number of pixels.
func (f *Frame) Len() int {
	return len(f.pixels)
}

// Pixel returns the colour at i.
func (f *Frame) Pixel(i int) colorful.Color {
	return f.pixels[i]
}

// Fill sets every pixel to c, premultiplied by its alpha.
func (f *Frame) Fill(c tween.Color) {
	p := c.Premultiplied()
	for i := range f.pixels {
		f.pixels[i] = p
	}
}

// Blend samples the gradient at every pixel, premultiplied by alpha.
func (f *Frame) Blend(g Gradient) {
	if len(g) == 0 {
		return
	}
	last := float64(len(f.pixels) - 1)
	for i := range f.pixels {
		t := 0.0
		if last > 0 {
			t = float64(i) / last
		}
		f.pixels[i] = g.At(t).Premultiplied()
	}
}

// InterpolateFrame blends f towards f2 pixel by pixel. Pixels past the end of
// f2 keep their colour from f.
func (f *Frame) InterpolateFrame(f2 *Frame, transitionPoint float64) *Frame {
	out := NewFrame(len(f.pixels))
	copy(out.pixels, f.pixels)
	for i := range f.pixels {
		if i >= len(f2.pixels) {
			break
		}
		out.pixels[i] = tween.NewColor(f.pixels[i]).Tween(tween.NewColor(f2.pixels[i]), transitionPoint).Color
	}
	return out
}

// MarshalBinary converts a Frame into binary data: a little-endian pixel
// count followed by clamped RGB bytes.
func (f *Frame) MarshalBinary() (data []byte, err error) {
	if len(f.pixels) > 0xffff {
		return nil, fmt.Errorf("frame too long: %d pixels", len(f.pixels))
	}
	data = make([]byte, 2, (len(f.pixels)*3)+2)
	binary.LittleEndian.PutUint16(data, uint16(len(f.pixels)))
	for _, p := range f.pixels {
		r, g, b := p.Clamped().RGB255()
		data = append(data, r, g, b)
	}

	return data, nil
}

// UnmarshalBinary reads data written by MarshalBinary.
func (f *Frame) UnmarshalBinary(data []byte) error {
	if len(data) < 2 {
		return fmt.Errorf("frame header truncated")
	}
	n := int(binary.LittleEndian.Uint16(data))
	if len(data) != 2+n*3 {
		return fmt.Errorf("frame of %d pixels has %d bytes", n, len(data))
	}
	f.pixels = make([]colorful.Color, n)
	for i := range f.pixels {
		o := 2 + i*3
		f.pixels[i] = colorful.Color{
			R: float64(data[o]) / 255,
			G: float64(data[o+1]) / 255,
			B: float64(data[o+2]) / 255,
		}
	}
	return nil
}
