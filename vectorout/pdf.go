// Package vectorout implements the retained-backend Driver of spec.md
// §1(b): instead of rasterizing, it replays the walker's draw calls as
// operations against a github.com/jung-kurt/gofpdf document.
package vectorout

import (
	"github.com/jung-kurt/gofpdf"

	"github.com/GNOME/librsvg-sub001/geometry"
	"github.com/GNOME/librsvg-sub001/render"
	"github.com/GNOME/librsvg-sub001/style"
)

var (
	_ render.Driver  = Renderer{}
	_ render.Filler  = &filler{}
	_ render.Stroker = &stroker{}
)

// Renderer writes into a caller-owned *gofpdf.Fpdf, generalizing the
// teacher's svgpdf.Renderer from the old fixed.Point26_6 Driver to this
// package's float64 render.Driver.
type Renderer struct {
	pdf *gofpdf.Fpdf
}

// NewRenderer wraps pdf; the caller owns its page setup and lifecycle.
func NewRenderer(pdf *gofpdf.Fpdf) Renderer {
	return Renderer{pdf: pdf}
}

func (r Renderer) SetupDrawers(willFill, willStroke bool) (render.Filler, render.Stroker) {
	var f render.Filler
	var s render.Stroker
	if willFill {
		f = &filler{pather: pather{pdf: r.pdf}}
	}
	if willStroke {
		s = &stroker{pather: pather{pdf: r.pdf}}
	}
	return f, s
}

// pather implements the path-construction operations shared by filling and
// stroking, the teacher's svgpdf.pather generalized to geometry.Point.
type pather struct {
	pdf *gofpdf.Fpdf
}

func (p pather) Clear() {
	// gofpdf has no "discard the current path" primitive; each shape opens
	// its own MoveTo/Line/CurveTo sequence and DrawPath closes it, so there
	// is nothing to reset between shapes — the teacher's pather.Clear
	// panicked for the same reason (the call was never expected to carry
	// meaning for this backend) but a render.Drawer is required to accept
	// it, so this is a no-op rather than a panic.
}

func (p pather) Start(a geometry.Point) { p.pdf.MoveTo(a.X, a.Y) }
func (p pather) Line(b geometry.Point)  { p.pdf.LineTo(b.X, b.Y) }
func (p pather) CubeBezier(b, c, d geometry.Point) {
	p.pdf.CurveBezierCubicTo(b.X, b.Y, c.X, c.Y, d.X, d.Y)
}
func (p pather) Stop(closeLoop bool) {
	if closeLoop {
		p.pdf.ClosePath()
	}
}

type filler struct {
	pather
	nonZeroWinding bool
	paint          style.Paint
	opacity        float64
}

func (f *filler) SetWinding(v bool) { f.nonZeroWinding = v }

func (f *filler) SetColor(p style.Paint, opacity float64) {
	f.paint, f.opacity = p, opacity
	applyFillColor(f.pdf, p, opacity)
}

func (f *filler) Draw() {
	styleStr := "f*"
	if f.nonZeroWinding {
		styleStr = "f"
	}
	f.pdf.DrawPath(styleStr)
}

type stroker struct {
	pather
	opts render.StrokeOptions
}

func (s *stroker) SetStrokeOptions(o render.StrokeOptions) { s.opts = o }

func (s *stroker) SetColor(p style.Paint, opacity float64) {
	applyStrokeColor(s.pdf, p, opacity, s.opts)
}

func (s *stroker) Draw() {
	s.pdf.DrawPath("D")
}

func applyFillColor(pdf *gofpdf.Fpdf, p style.Paint, opacity float64) {
	switch c := p.(type) {
	case style.PlainColor:
		pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
		opacity *= float64(c.A) / 255
	case style.Gradient:
		// gofpdf has no native gradient fill; approximate with the first
		// stop's color, a documented limitation of the retained backend.
		if len(c.Stops) > 0 {
			col := c.Stops[0].StopColor
			pdf.SetFillColor(int(col.R), int(col.G), int(col.B))
		}
	}
	pdf.SetAlpha(clampUnit(opacity), "Normal")
}

func applyStrokeColor(pdf *gofpdf.Fpdf, p style.Paint, opacity float64, opts render.StrokeOptions) {
	switch c := p.(type) {
	case style.PlainColor:
		pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
		opacity *= float64(c.A) / 255
	case style.Gradient:
		if len(c.Stops) > 0 {
			col := c.Stops[0].StopColor
			pdf.SetDrawColor(int(col.R), int(col.G), int(col.B))
		}
	}
	pdf.SetAlpha(clampUnit(opacity), "Normal")
	pdf.SetLineWidth(opts.LineWidth)
	if len(opts.Dash.Array) > 0 {
		pdf.SetDashPattern(opts.Dash.Array, opts.Dash.Offset)
	} else {
		pdf.SetDashPattern(nil, 0)
	}
}

func clampUnit(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
