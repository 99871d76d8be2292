// Package librsvg renders SVG 1.1 documents to a raster pixel buffer or a
// vector PDF, wiring the tree/style/render/filter/mask/clip/marker
// packages behind a single Handle facade (spec.md §4.1), generalizing the
// teacher's ReadIconStream + SvgIcon.Draw entry points from "icon subset"
// to "conformant document."
package librsvg

import (
	"image"
	"image/color"

	"github.com/GNOME/librsvg-sub001/clip"
	"github.com/GNOME/librsvg-sub001/filter"
	"github.com/GNOME/librsvg-sub001/geometry"
	"github.com/GNOME/librsvg-sub001/marker"
	"github.com/GNOME/librsvg-sub001/mask"
	"github.com/GNOME/librsvg-sub001/raster"
	"github.com/GNOME/librsvg-sub001/render"
	"github.com/GNOME/librsvg-sub001/style"
	"github.com/GNOME/librsvg-sub001/tree"
)

// Handle is the single entry point: feed bytes via Write, Close, then
// render via RenderToPixbuf or RenderDocument.
type Handle struct {
	t *tree.Handle
}

// NewHandle constructs a Handle; opts configure DPI, base URI, the
// entity-expansion cap, and the logger, forwarded to the tree package.
func NewHandle(opts ...Option) *Handle {
	var topts []tree.Option
	for _, o := range opts {
		o(&topts)
	}
	return &Handle{t: tree.NewHandle(topts...)}
}

// Write feeds document bytes; see tree.Handle.Write.
func (h *Handle) Write(p []byte) (int, error) { return h.t.Write(p) }

// Close finishes parsing; see tree.Handle.Close.
func (h *Handle) Close() error { return h.t.Close() }

// Titles and Descriptions surface a document's accumulated <title>/<desc>
// text (spec.md §4.1).
func (h *Handle) Titles() []string       { return h.t.Titles }
func (h *Handle) Descriptions() []string { return h.t.Descriptions }

// Dimensions resolves the document's intrinsic pixel size from its root
// width/height attributes, defaulting to 100x100 per SVG 1.1 §5.1.2 when
// either is absent or resolves to zero.
func (h *Handle) Dimensions() (w, h2 float64) {
	w, h2 = 100, 100
	dpiX, dpiY := h.t.DPI()
	ctx := geometry.Context{DPIx: dpiX, DPIy: dpiY}
	if h.t.Root == nil {
		return
	}
	if v, ok := h.t.Root.Attr("width"); ok {
		if f, err := ctx.ResolveLength(v, geometry.RefWidth); err == nil && f > 0 {
			w = f
		}
	}
	if v, ok := h.t.Root.Attr("height"); ok {
		if f, err := ctx.ResolveLength(v, geometry.RefHeight); err == nil && f > 0 {
			h2 = f
		}
	}
	return
}

// buildEffects wires the filter/mask/clip/marker packages behind the
// render package's pixel-format-agnostic hook bundle, the one place this
// module's packages are all imported together.
func (h *Handle) buildEffects(ctx geometry.Context) render.Effects {
	var eff render.Effects
	eff.ResolveClip = func(ref string, defs *tree.Defs, bounds render.BBox) (geometry.Path, bool) {
		return clip.Resolve(ref, defs, ctx)
	}
	eff.ApplyMask = func(ref string, defs *tree.Defs, layer render.LayerDriver, bounds render.BBox) render.LayerDriver {
		node, ok := defs.Lookup(ref)
		if !ok || node.Kind != tree.KindMask {
			return layer
		}
		return mask.Apply(node, defs, h.t.Sheet, ctx, eff, layer, bounds)
	}
	eff.ApplyFilter = func(ref string, layer render.LayerDriver, bounds render.BBox) render.LayerDriver {
		node, ok := h.t.Defs.Lookup(ref)
		if !ok || node.Kind != tree.KindFilter {
			return layer
		}
		r, isRaster := layer.(*raster.Renderer)
		if !isRaster {
			return layer
		}
		source := filter.FromImage(toNRGBA(r.Image))
		out := filter.Run(node, source)
		copyBufferInto(r, out)
		return r
	}
	eff.InstanceMarkers = func(path geometry.Path, props style.Properties, defs *tree.Defs) []render.MarkerPlacement {
		insts := marker.Instances(path, props, defs, props.StrokeWidth)
		placements := make([]render.MarkerPlacement, len(insts))
		for i, ins := range insts {
			placements[i] = render.MarkerPlacement{Node: ins.Node, Transform: ins.Transform}
		}
		return placements
	}
	return eff
}

// RenderToPixbuf rasterizes the document into an RGBA image at its
// intrinsic size scaled by the handle's DPI.
func (h *Handle) RenderToPixbuf() (*image.RGBA, error) {
	if h.t.Root == nil {
		return nil, tree.ErrEmptyDocument
	}
	w, hgt := h.Dimensions()
	iw, ih := int(w+0.5), int(hgt+0.5)
	if iw < 1 {
		iw = 1
	}
	if ih < 1 {
		ih = 1
	}
	r := raster.NewRenderer(iw, ih)
	h.renderInto(r, iw, ih)
	return r.Image, nil
}

// RenderDocument paints the document into a caller-supplied Driver (e.g. a
// vectorout.Renderer for PDF output), returning the accumulated bounding
// box (spec.md §1's two output modes).
func (h *Handle) RenderDocument(d render.Driver, w, hgt int) (render.BBox, error) {
	if h.t.Root == nil {
		return render.BBox{}, tree.ErrEmptyDocument
	}
	return h.renderInto(d, w, hgt), nil
}

// toNRGBA un-premultiplies an alpha-premultiplied image.RGBA (the raster
// backend's native format) into the straight-alpha image.NRGBA the filter
// package's FromImage expects.
func toNRGBA(img *image.RGBA) *image.NRGBA {
	out := image.NewNRGBA(img.Rect)
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			if c.A == 0 {
				continue
			}
			a := float64(c.A) / 255
			clampByte := func(f float64) uint8 {
				if f < 0 {
					return 0
				}
				if f > 255 {
					return 255
				}
				return uint8(f + 0.5)
			}
			out.SetNRGBA(x, y, color.NRGBA{
				R: clampByte(float64(c.R) / a),
				G: clampByte(float64(c.G) / a),
				B: clampByte(float64(c.B) / a),
				A: c.A,
			})
		}
	}
	return out
}

func copyBufferInto(r *raster.Renderer, b *filter.Buffer) {
	out := b.ToImage()
	rect := r.Image.Bounds().Intersect(out.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			r.Image.SetRGBA(x, y, out.RGBAAt(x, y))
		}
	}
}

func (h *Handle) renderInto(d render.Driver, w, hgt int) render.BBox {
	dpiX, dpiY := h.t.DPI()
	ctx := geometry.Context{DPIx: dpiX, DPIy: dpiY, ViewportW: float64(w), ViewportH: float64(hgt)}
	walker := render.NewWalker(h.t.Defs, h.t.Sheet)
	walker.Effects = h.buildEffects(ctx)
	return walker.Render(h.t.Root, ctx, d)
}
