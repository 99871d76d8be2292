// Package render walks a display tree (the tree package's Node graph),
// resolves the style cascade and geometry at each node, and drives a
// caller-supplied backend through the Driver/Filler/Stroker interfaces —
// the generalization of the teacher's svgicon/draw.go from "one shape" to
// "one subtree with its own discrete layer" (spec.md §4.1, §4.5).
package render

import (
	"github.com/GNOME/librsvg-sub001/geometry"
	"github.com/GNOME/librsvg-sub001/style"
)

// Drawer accumulates one path's segments and paints it, exactly like the
// teacher's svgicon.Drawer except in float64 user-space points instead of
// fixed.Point26_6 device points — the backend is responsible for its own
// device-space conversion.
type Drawer interface {
	Clear()
	Start(a geometry.Point)
	Line(b geometry.Point)
	CubeBezier(b, c, d geometry.Point)
	Stop(closeLoop bool)
	SetColor(paint style.Paint, opacity float64)
	Draw()
}

// Filler additionally selects the fill rule.
type Filler interface {
	Drawer
	SetWinding(nonZeroWinding bool)
}

// Stroker additionally accepts stroke parameters.
type Stroker interface {
	Drawer
	SetStrokeOptions(StrokeOptions)
}

// StrokeOptions parametrizes a Stroker, reusing the style package's
// join/cap/gap/dash vocabulary instead of the teacher's duplicate
// definitions in svgicon/draw.go.
type StrokeOptions struct {
	LineWidth        float64
	Join             style.JoinMode
	LeadCap, TailCap style.CapMode
	Gap              style.GapMode
	MiterLimit       float64
	Dash             style.Dash
}

// Driver is the backend collaborator a Walker paints through: a rasterizer
// producing a pixel buffer, or a retained vector writer (spec.md §1).
type Driver interface {
	// SetupDrawers is called once per shape; either return may be nil to
	// skip that operation, mirroring the teacher's willFill/willStroke
	// contract.
	SetupDrawers(willFill, willStroke bool) (Filler, Stroker)
}

// LayerDriver is an optional capability of a Driver: backends that can
// render into an offscreen layer and composite it back support discrete
// transparency groups (filter/mask/opacity/blend, spec.md §4.5). A Driver
// that does not implement it still renders shapes directly; opacity is
// then applied per-paint-color instead of as a group effect, and
// filter/mask/blend are skipped (a documented limitation of non-raster
// backends such as vectorout).
type LayerDriver interface {
	Driver
	NewLayer(bounds BBox) LayerDriver
	CompositeBack(layer LayerDriver, opacity float64, blend style.BlendMode, bounds BBox)
}
