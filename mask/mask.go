// Package mask applies SVG luminance masks (spec.md §4.5): a <mask>'s
// content is rendered offscreen, reduced to a luminance value per pixel,
// and used to scale the alpha of the layer it masks — the render
// package's pixel-format-agnostic Effects.ApplyMask hook implemented
// against the raster backend.
package mask

import (
	"image/color"

	"github.com/GNOME/librsvg-sub001/geometry"
	"github.com/GNOME/librsvg-sub001/raster"
	"github.com/GNOME/librsvg-sub001/render"
	"github.com/GNOME/librsvg-sub001/style"
	"github.com/GNOME/librsvg-sub001/tree"
)

// Apply renders maskNode's content into an offscreen layer the same size
// as layer, converts it to a luminance map (0.2125 R + 0.7154 G + 0.0721 B,
// scaled by the mask content's own alpha), and multiplies layer's alpha by
// that map in place.
//
// Only the raster backend supports masking: LayerDriver is only ever
// implemented by raster.Renderer, so a non-raster layer is returned
// unmodified (documented limitation, mirrors vectorout's lack of discrete
// layer support).
func Apply(maskNode *tree.Node, defs *tree.Defs, sheet style.Stylesheet, ctx geometry.Context, effects render.Effects, layer render.LayerDriver, bounds render.BBox) render.LayerDriver {
	target, ok := layer.(*raster.Renderer)
	if !ok {
		return layer
	}
	b := target.Image.Bounds()
	content := raster.NewRenderer(b.Dx(), b.Dy())

	w := render.NewWalker(defs, sheet)
	w.Effects = effects
	for _, c := range maskNode.Children {
		w.Render(c, ctx, content)
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			lum := luminance(content.Image.RGBAAt(x, y))
			tc := target.Image.RGBAAt(x, y)
			target.Image.SetRGBA(x, y, color.RGBA{
				R: scale(tc.R, lum),
				G: scale(tc.G, lum),
				B: scale(tc.B, lum),
				A: scale(tc.A, lum),
			})
		}
	}
	return target
}

func luminance(c color.RGBA) float64 {
	if c.A == 0 {
		return 0
	}
	a := float64(c.A) / 255
	r := float64(c.R) / 255 / a
	g := float64(c.G) / 255 / a
	b := float64(c.B) / 255 / a
	return (0.2125*r + 0.7154*g + 0.0721*b) * a
}

func scale(v uint8, f float64) uint8 {
	r := float64(v) * f
	if r < 0 {
		return 0
	}
	if r > 255 {
		return 255
	}
	return uint8(r + 0.5)
}
