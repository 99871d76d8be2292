// Package filter implements the 16 SVG filter primitives of spec.md §4.6:
// a named-result pipeline operating on straight-alpha pixel buffers,
// composited back into the discrete layer by the render package's Effects
// hook.
package filter

import (
	"image"
	"image/color"
)

// Buffer is a straight-alpha RGBA pixel buffer in [0,1] per channel. The
// Open Question decision recorded in DESIGN.md keeps filter math in
// straight alpha throughout the pipeline; only the raster output-surface
// boundary premultiplies.
type Buffer struct {
	Pix  []float64 // R,G,B,A per pixel, row-major
	W, H int
}

// NewBuffer allocates a transparent w x h buffer.
func NewBuffer(w, h int) *Buffer {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Buffer{Pix: make([]float64, w*h*4), W: w, H: h}
}

func (b *Buffer) idx(x, y int) int { return (y*b.W + x) * 4 }

// At returns the straight-alpha color at (x,y), or transparent black
// outside the buffer.
func (b *Buffer) At(x, y int) (r, g, bl, a float64) {
	if x < 0 || y < 0 || x >= b.W || y >= b.H {
		return 0, 0, 0, 0
	}
	i := b.idx(x, y)
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3]
}

// Set writes the straight-alpha color at (x,y).
func (b *Buffer) Set(x, y int, r, g, bl, a float64) {
	if x < 0 || y < 0 || x >= b.W || y >= b.H {
		return
	}
	i := b.idx(x, y)
	b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3] = r, g, bl, a
}

// FromImage converts a non-premultiplied image.NRGBA into a straight-alpha
// Buffer.
func FromImage(img *image.NRGBA) *Buffer {
	b := NewBuffer(img.Rect.Dx(), img.Rect.Dy())
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			c := img.NRGBAAt(img.Rect.Min.X+x, img.Rect.Min.Y+y)
			b.Set(x, y, float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, float64(c.A)/255)
		}
	}
	return b
}

// ToImage premultiplies and converts back to an image.RGBA, the one point
// in the pipeline where straight alpha crosses to a premultiplied
// output surface (spec.md's Open Question decision).
func (b *Buffer) ToImage() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, b.W, b.H))
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			r, g, bl, a := b.At(x, y)
			out.SetRGBA(x, y, premultiply(r, g, bl, a))
		}
	}
	return out
}

func premultiply(r, g, bl, a float64) color.RGBA {
	clamp := func(f float64) uint8 {
		if f < 0 {
			f = 0
		}
		if f > 255 {
			f = 255
		}
		return uint8(f + 0.5)
	}
	return color.RGBA{
		R: clamp(r * a * 255),
		G: clamp(g * a * 255),
		B: clamp(bl * a * 255),
		A: clamp(a * 255),
	}
}
