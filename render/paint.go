package render

import (
	"image/color"

	"github.com/GNOME/librsvg-sub001/geometry"
	"github.com/GNOME/librsvg-sub001/style"
	"github.com/GNOME/librsvg-sub001/tree"
)

// maxGradientHrefChain bounds the xlink:href inheritance chain a gradient
// can chase (SVG 1.1 §13.2.4), mirroring the <use> recursion cap.
const maxGradientHrefChain = 32

// resolvePaint turns an unresolved url(#id) fill/stroke reference (style.
// parsePaintRef's placeholder) into a concrete style.Gradient by looking
// the id up in defs and reading its stops/units/spread/transform, chasing
// xlink:href inheritance. Anything else passes through unchanged; an
// unresolvable or empty-of-stops reference paints nothing (spec.md's
// "missing reference" taxonomy, not a fallback to black).
func resolvePaint(p style.Paint, defs *tree.Defs) style.Paint {
	id, ok := style.PaintRefID(p)
	if !ok {
		return p
	}
	node, ok := defs.Lookup(id)
	if !ok {
		return nil
	}
	switch node.Kind {
	case tree.KindLinearGradient, tree.KindRadialGradient:
		g, ok := buildGradient(node, defs, 0)
		if !ok {
			return nil
		}
		return g
	default:
		return nil
	}
}

// buildGradient reads a <linearGradient>/<radialGradient> node's own
// attributes and <stop> children, first inheriting from an xlink:href
// target (SVG 1.1 §13.2.4: direction, stops, units, spread, and transform
// are all inheritable, each overridden by whatever this node sets itself).
func buildGradient(node *tree.Node, defs *tree.Defs, depth int) (style.Gradient, bool) {
	if depth > maxGradientHrefChain {
		return style.Gradient{}, false
	}

	g := style.Gradient{Matrix: geometry.Identity}
	switch node.Kind {
	case tree.KindLinearGradient:
		g.Direction = style.Linear{0, 0, 1, 0}
	case tree.KindRadialGradient:
		g.Direction = style.Radial{0.5, 0.5, 0.5, 0.5, 0.5, 0.5}
	default:
		return style.Gradient{}, false
	}

	if href, ok := gradientHref(node); ok {
		if base, ok := defs.Lookup(href); ok {
			if parent, ok := buildGradient(base, defs, depth+1); ok {
				g = parent
			}
		}
	}

	switch node.Kind {
	case tree.KindLinearGradient:
		lin, _ := g.Direction.(style.Linear)
		readLinearAttrs(node, &lin)
		g.Direction = lin
	case tree.KindRadialGradient:
		rad, _ := g.Direction.(style.Radial)
		readRadialAttrs(node, &rad)
		g.Direction = rad
	}

	if v, ok := node.Attr("gradientUnits"); ok {
		if v == "userSpaceOnUse" {
			g.Units = style.UserSpaceOnUse
		} else {
			g.Units = style.ObjectBoundingBox
		}
	}
	if v, ok := node.Attr("spreadMethod"); ok {
		switch v {
		case "reflect":
			g.Spread = style.ReflectSpread
		case "repeat":
			g.Spread = style.RepeatSpread
		default:
			g.Spread = style.PadSpread
		}
	}
	// gradientTransform is captured into TransformAttr by the builder
	// (shared with transform/patternTransform), not the generic Attrs map.
	if node.TransformAttr != "" {
		if m, err := geometry.ParseTransformList(node.TransformAttr, geometry.Identity); err == nil {
			g.Matrix = m
		}
	}

	if stops := readStops(node); len(stops) > 0 {
		g.Stops = stops
	}
	if len(g.Stops) == 0 {
		return style.Gradient{}, false
	}
	return g, true
}

func gradientHref(n *tree.Node) (string, bool) {
	v, ok := n.Attr("href")
	if !ok {
		v, ok = n.Attr("xlink:href")
	}
	if !ok || len(v) == 0 || v[0] != '#' {
		return "", false
	}
	return v[1:], true
}

func readLinearAttrs(n *tree.Node, lin *style.Linear) {
	if v, ok := n.Attr("x1"); ok {
		if f, err := geometry.ParseBareNumber(v); err == nil {
			lin[0] = f
		}
	}
	if v, ok := n.Attr("y1"); ok {
		if f, err := geometry.ParseBareNumber(v); err == nil {
			lin[1] = f
		}
	}
	if v, ok := n.Attr("x2"); ok {
		if f, err := geometry.ParseBareNumber(v); err == nil {
			lin[2] = f
		}
	}
	if v, ok := n.Attr("y2"); ok {
		if f, err := geometry.ParseBareNumber(v); err == nil {
			lin[3] = f
		}
	}
}

func readRadialAttrs(n *tree.Node, rad *style.Radial) {
	setFx, setFy := false, false
	if v, ok := n.Attr("cx"); ok {
		if f, err := geometry.ParseBareNumber(v); err == nil {
			rad[0] = f
		}
	}
	if v, ok := n.Attr("cy"); ok {
		if f, err := geometry.ParseBareNumber(v); err == nil {
			rad[1] = f
		}
	}
	if v, ok := n.Attr("fx"); ok {
		setFx = true
		if f, err := geometry.ParseBareNumber(v); err == nil {
			rad[2] = f
		}
	}
	if v, ok := n.Attr("fy"); ok {
		setFy = true
		if f, err := geometry.ParseBareNumber(v); err == nil {
			rad[3] = f
		}
	}
	if v, ok := n.Attr("r"); ok {
		if f, err := geometry.ParseBareNumber(v); err == nil {
			rad[4] = f
		}
	}
	if v, ok := n.Attr("fr"); ok {
		if f, err := geometry.ParseBareNumber(v); err == nil {
			rad[5] = f
		}
	}
	if !setFx { // fx defaults to cx
		rad[2] = rad[0]
	}
	if !setFy { // fy defaults to cy
		rad[3] = rad[1]
	}
}

func readStops(node *tree.Node) []style.GradStop {
	var stops []style.GradStop
	for _, c := range node.Children {
		if c.Kind != tree.KindStop {
			continue
		}
		var stop style.GradStop
		if v := stopDecl(c, "offset", "0"); v != "" {
			if f, err := geometry.ParseBareNumber(v); err == nil {
				stop.Offset = clamp01(f)
			}
		}
		col, _, err := style.ParseColor(stopDecl(c, "stop-color", "black"))
		if err != nil {
			col = color.NRGBA{A: 255}
		}
		if op, err := geometry.ParseBareNumber(stopDecl(c, "stop-opacity", "1")); err == nil {
			col.A = scaleAlpha(col.A, op)
		}
		stop.StopColor = col
		stops = append(stops, stop)
	}
	return stops
}

// stopDecl reads prop from a <stop>'s presentation attributes or inline
// style first (a <stop> is never cascaded by the style package, since it's
// a defOnlyKinds node), falling back to its plain attribute map, then def.
func stopDecl(n *tree.Node, prop, def string) string {
	for _, d := range n.InlineStyle {
		if d.Property == prop {
			return d.Value
		}
	}
	for _, d := range n.PresentationAttrs {
		if d.Property == prop {
			return d.Value
		}
	}
	if v, ok := n.Attr(prop); ok {
		return v
	}
	return def
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func scaleAlpha(a uint8, f float64) uint8 {
	f = clamp01(f)
	v := float64(a) * f
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
