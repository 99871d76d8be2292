// Package raster adapts github.com/srwiley/rasterx to the render.Driver
// contract, producing an image.RGBA pixel buffer — spec.md §1's "raster
// pixel buffer" output mode.
package raster

import (
	"image"
	"image/color"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

	"github.com/GNOME/librsvg-sub001/geometry"
	"github.com/GNOME/librsvg-sub001/render"
	"github.com/GNOME/librsvg-sub001/style"
)

var (
	_ render.Driver      = (*Renderer)(nil)
	_ render.LayerDriver = (*Renderer)(nil)
	_ render.Filler      = filler{}
	_ render.Stroker     = stroker{}
)

// Renderer wraps a rasterx.Dasher the same way the teacher's
// svgraster.Renderer does, generalized to the render package's interfaces.
type Renderer struct {
	dasher *rasterx.Dasher
	Image  *image.RGBA
}

// NewRenderer allocates a w x h RGBA buffer and a scanner over it.
func NewRenderer(w, h int) *Renderer {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	return &Renderer{dasher: rasterx.NewDasher(w, h, scanner), Image: img}
}

func (r *Renderer) SetupDrawers(willFill, willStroke bool) (render.Filler, render.Stroker) {
	var f render.Filler
	var s render.Stroker
	if willFill {
		f = filler{Filler: &r.dasher.Filler}
	}
	if willStroke {
		s = stroker{Dasher: r.dasher}
	}
	return f, s
}

// NewLayer allocates a same-size offscreen Renderer for a discrete
// transparency group (spec.md §4.5). Full-canvas rather than
// bounds-cropped: simpler composite-back arithmetic at the cost of some
// memory, acceptable at the sizes this library targets.
func (r *Renderer) NewLayer(bounds render.BBox) render.LayerDriver {
	b := r.Image.Bounds()
	return NewRenderer(b.Dx(), b.Dy())
}

// CompositeBack blends layer over r per spec.md §4.5's fixed order
// (filter/mask already applied by the caller; this step folds in opacity
// and the blend mode, Porter-Duff "over" otherwise).
func (r *Renderer) CompositeBack(layer render.LayerDriver, opacity float64, blend style.BlendMode, bounds render.BBox) {
	src, ok := layer.(*Renderer)
	if !ok {
		return
	}
	rect := r.Image.Bounds().Intersect(src.Image.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			dr, dg, db, da := straight(r.Image.RGBAAt(x, y))
			sr, sg, sb, sa := straight(src.Image.RGBAAt(x, y))
			sa *= opacity
			sr, sg, sb = blendRGB(blend, sr, sg, sb, dr, dg, db)
			outA := sa + da*(1-sa)
			var outR, outG, outB float64
			if outA > 0 {
				outR = (sr*sa + dr*da*(1-sa)) / outA
				outG = (sg*sa + dg*da*(1-sa)) / outA
				outB = (sb*sa + db*da*(1-sa)) / outA
			}
			r.Image.Set(x, y, strainToRGBA(outR, outG, outB, outA))
		}
	}
}

func straight(c color.RGBA) (r, g, b, a float64) {
	// image.RGBA.RGBAAt returns alpha-premultiplied color.RGBA values.
	a = float64(c.A) / 255
	if a == 0 {
		return 0, 0, 0, 0
	}
	r = float64(c.R) / 255 / a
	g = float64(c.G) / 255 / a
	b = float64(c.B) / 255 / a
	return
}

func strainToRGBA(r, g, b, a float64) color.RGBA {
	clamp := func(f float64) uint8 {
		if f < 0 {
			return 0
		}
		if f > 1 {
			return 255
		}
		return uint8(f*255 + 0.5)
	}
	return color.RGBA{R: clamp(r * a), G: clamp(g * a), B: clamp(b * a), A: clamp(a)}
}

func blendRGB(mode style.BlendMode, sr, sg, sb, dr, dg, db float64) (float64, float64, float64) {
	switch mode {
	case style.BlendMultiply:
		return sr * dr, sg * dg, sb * db
	case style.BlendScreen:
		return sr + dr - sr*dr, sg + dg - sg*dg, sb + db - sb*db
	case style.BlendDarken:
		return minf(sr, dr), minf(sg, dg), minf(sb, db)
	case style.BlendLighten:
		return maxf(sr, dr), maxf(sg, dg), maxf(sb, db)
	default:
		return sr, sg, sb
	}
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

type filler struct{ *rasterx.Filler }
type stroker struct{ *rasterx.Dasher }

func toFixed(p geometry.Point) fixed.Point26_6 {
	return fixed.Point26_6{X: fToFixed(p.X), Y: fToFixed(p.Y)}
}

func fToFixed(f float64) fixed.Int26_6 { return fixed.Int26_6(f * 64) }

func (f filler) Start(a geometry.Point)  { f.Filler.Start(toFixed(a)) }
func (f filler) Line(b geometry.Point)   { f.Filler.Line(toFixed(b)) }
func (f filler) CubeBezier(b, c, d geometry.Point) {
	f.Filler.CubeBezier(toFixed(b), toFixed(c), toFixed(d))
}
func (s stroker) Start(a geometry.Point) { s.Dasher.Start(toFixed(a)) }
func (s stroker) Line(b geometry.Point)  { s.Dasher.Line(toFixed(b)) }
func (s stroker) CubeBezier(b, c, d geometry.Point) {
	s.Dasher.CubeBezier(toFixed(b), toFixed(c), toFixed(d))
}

func (f filler) SetColor(p style.Paint, opacity float64) { setColorFromPaint(p, opacity, f.Scanner) }
func (s stroker) SetColor(p style.Paint, opacity float64) { setColorFromPaint(p, opacity, s.Scanner) }

func setColorFromPaint(p style.Paint, opacity float64, scanner rasterx.Scanner) {
	switch c := p.(type) {
	case style.PlainColor:
		scanner.SetColor(rasterx.ApplyOpacity(c, opacity))
	case style.Gradient:
		g := c
		if g.Units == style.ObjectBoundingBox {
			r := scanner.GetPathExtent()
			mnx, mny := float64(r.Min.X)/64, float64(r.Min.Y)/64
			mxx, mxy := float64(r.Max.X)/64, float64(r.Max.Y)/64
			g.Bounds.X, g.Bounds.Y = mnx, mny
			g.Bounds.W, g.Bounds.H = mxx-mnx, mxy-mny
		}
		rg := toRasterxGradient(g)
		scanner.SetColor(rg.GetColorFunction(opacity))
	}
}

func toRasterxGradient(g style.Gradient) rasterx.Gradient {
	var points [5]float64
	isRadial := false
	switch dir := g.Direction.(type) {
	case style.Linear:
		points[0], points[1], points[2], points[3] = dir[0], dir[1], dir[2], dir[3]
	case style.Radial:
		points[0], points[1], points[2], points[3], points[4] = dir[0], dir[1], dir[2], dir[3], dir[4]
		isRadial = true
	}
	stops := make([]rasterx.GradStop, len(g.Stops))
	for i, s := range g.Stops {
		stops[i] = rasterx.GradStop{StopColor: s.StopColor, Offset: s.Offset, Opacity: 1}
	}
	return rasterx.Gradient{
		Points:   points,
		Stops:    stops,
		Bounds:   rasterx.Bounds{X: g.Bounds.X, Y: g.Bounds.Y, W: g.Bounds.W, H: g.Bounds.H},
		Matrix:   rasterx.Matrix2D(g.Matrix),
		Spread:   rasterx.SpreadMethod(g.Spread),
		Units:    rasterx.GradientUnits(g.Units),
		IsRadial: isRadial,
	}
}

var joinToJoin = [...]rasterx.JoinMode{
	style.Miter:     rasterx.Miter,
	style.MiterClip: rasterx.MiterClip,
	style.Round:     rasterx.Round,
	style.Bevel:      rasterx.Bevel,
	style.Arc:       rasterx.Arc,
	style.ArcClip:   rasterx.ArcClip,
}

var capToFunc = [...]rasterx.CapFunc{
	style.ButtCap:      rasterx.ButtCap,
	style.SquareCap:    rasterx.SquareCap,
	style.RoundCap:     rasterx.RoundCap,
	style.CubicCap:     rasterx.CubicCap,
	style.QuadraticCap: rasterx.QuadraticCap,
}

var gapToFunc = [...]rasterx.GapFunc{
	style.FlatGap:      rasterx.FlatGap,
	style.RoundGap:     rasterx.RoundGap,
	style.CubicGap:     rasterx.CubicGap,
	style.QuadraticGap: rasterx.QuadraticGap,
}

func (s stroker) SetStrokeOptions(o render.StrokeOptions) {
	lead, trail := o.LeadCap, o.TailCap
	if lead == style.NilCap {
		lead = trail
	}
	if trail == style.NilCap {
		trail = lead
	}
	gap := o.Gap
	if gap == style.NilGap {
		gap = style.FlatGap
	}
	s.SetStroke(
		fToFixed(o.LineWidth), fToFixed(o.MiterLimit),
		capToFunc[lead], capToFunc[trail], gapToFunc[gap], joinToJoin[o.Join],
		o.Dash.Array, o.Dash.Offset,
	)
}
