package style

import (
	"strconv"
	"strings"

	"github.com/GNOME/librsvg-sub001/geometry"
)

// Element is the minimal per-element data the cascade needs: its own
// declarations (presentation attributes and inline style as two separate
// lists, merged by Resolve in the order of spec.md §4.2 point 3-4), its tag,
// id, and classes for CSS rule matching.
type Element struct {
	Tag     string
	ID      string
	Classes []string
	Attrs   []Declaration // presentation attributes, in document order
	Inline  []Declaration // inline style="...", in document order
}

// appliedDecl pairs a declaration with the precedence tier it was matched
// at, so !important can be compared within and across tiers.
type appliedDecl struct {
	Declaration
	tier int // 0=inherited(n/a) 1=CSS 2=presentation-attr 3=inline
	order int
}

// Resolve merges inherited values from parent with sheet-matched and
// element-declared properties, in the precedence order of spec.md §4.2:
// inherited -> CSS rule (*, tag, .class, tag.class, #id) -> presentation
// attribute -> inline style, with !important able to re-raise an earlier
// tier over a later one (the Open Question decision in DESIGN.md).
func Resolve(parent Properties, el Element, sheet Stylesheet, ctx geometry.Context) Properties {
	result := parent // testable property 3: unset properties equal the parent's.

	classSet := make(map[string]bool, len(el.Classes))
	for _, c := range el.Classes {
		classSet[c] = true
	}

	var applied []appliedDecl
	order := 0
	for _, kind := range []SelectorKind{SelAll, SelTag, SelClass, SelTagClass, SelID} {
		for _, rule := range sheet.Rules {
			if rule.Selector.Kind != kind || !rule.Selector.matches(el.Tag, el.ID, classSet) {
				continue
			}
			for _, d := range rule.Decls {
				applied = append(applied, appliedDecl{Declaration: d, tier: 1, order: order})
				order++
			}
		}
	}
	for _, d := range el.Attrs {
		applied = append(applied, appliedDecl{Declaration: d, tier: 2, order: order})
		order++
	}
	for _, d := range el.Inline {
		applied = append(applied, appliedDecl{Declaration: d, tier: 3, order: order})
		order++
	}

	// Stable-sort by (important, tier, order): non-important declarations
	// apply strictly by cascade tier/order; !important declarations apply
	// afterwards in the same relative order, so the last !important wins
	// over any non-important one regardless of tier.
	stableSortApplied(applied)

	for _, a := range applied {
		applyDeclaration(&result, a.Property, a.Value, ctx)
	}
	return result
}

func stableSortApplied(a []appliedDecl) {
	// insertion sort: the slice is small (a handful of declarations per
	// element) and this keeps the tie-break logic easy to read.
	for i := 1; i < len(a); i++ {
		j := i
		for j > 0 && less(a[j], a[j-1]) {
			a[j], a[j-1] = a[j-1], a[j]
			j--
		}
	}
}

func less(x, y appliedDecl) bool {
	if x.Important != y.Important {
		return !x.Important // non-important sorts first
	}
	if x.tier != y.tier {
		return x.tier < y.tier
	}
	return x.order < y.order
}

func applyDeclaration(p *Properties, key, v string, ctx geometry.Context) {
	key = strings.ToLower(strings.TrimSpace(key))
	v = strings.TrimSpace(v)
	switch key {
	case "fill":
		if paint, ok := parsePaintRef(v); ok {
			p.Fill = paint
			return
		}
		col, isNone, err := ParseColor(v)
		if err != nil && !IsCurrentColor(err) {
			return // malformed value: fall back to inherited default (spec §7)
		}
		if isNone {
			p.Fill = nil
			return
		}
		p.Fill = PlainColor(col)
	case "stroke":
		if paint, ok := parsePaintRef(v); ok {
			p.Stroke = paint
			return
		}
		col, isNone, err := ParseColor(v)
		if err != nil && !IsCurrentColor(err) {
			return
		}
		if isNone {
			p.Stroke = nil
			return
		}
		p.Stroke = PlainColor(col)
	case "opacity":
		if f, err := readFraction(v); err == nil {
			p.Opacity = f
		}
	case "fill-opacity":
		if f, err := readFraction(v); err == nil {
			p.FillOpacity = f
		}
	case "stroke-opacity":
		if f, err := readFraction(v); err == nil {
			p.StrokeOpacity = f
		}
	case "stroke-width":
		if f, err := ctx.ResolveLength(v, geometry.RefDiagonal); err == nil {
			p.StrokeWidth = f
		}
	case "stroke-linecap":
		p.TailCap = parseCap(v)
		p.LeadCap = p.TailCap
	case "stroke-leadlinecap": // non-standard, carried from the teacher
		p.LeadCap = parseCap(v)
	case "stroke-linejoin":
		p.Join = parseJoin(v)
	case "stroke-linegap": // non-standard, carried from the teacher
		p.Gap = parseGap(v)
	case "stroke-miterlimit":
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			p.MiterLimit = f
		}
	case "stroke-dashoffset":
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			p.Dash.Offset = f
		}
	case "stroke-dasharray":
		if v == "none" {
			p.Dash.Array = nil
			return
		}
		p.Dash.Array = parseDashArray(v)
	case "fill-rule", "clip-rule":
		p.NonZeroWinding = v != "evenodd"
	case "font-family":
		p.Font.Family = v
	case "font-size":
		if f, err := ctx.ResolveLength(v, geometry.RefDiagonal); err == nil {
			p.Font.SizePx = f
		}
	case "font-style":
		p.Font.Style = v
	case "font-weight":
		p.Font.Weight = v
	case "font-stretch":
		p.Font.Stretch = v
	case "text-decoration":
		p.Font.Decoration = v
	case "text-anchor":
		switch v {
		case "middle":
			p.TextAnchor = AnchorMiddle
		case "end":
			p.TextAnchor = AnchorEnd
		default:
			p.TextAnchor = AnchorStart
		}
	case "direction":
		p.Direction = v
	case "visibility":
		switch v {
		case "hidden":
			p.Visibility = VisibilityHidden
		case "collapse":
			p.Visibility = VisibilityCollapse
		default:
			p.Visibility = VisibilityVisible
		}
	case "flood-color":
		if col, _, err := ParseColor(v); err == nil {
			p.FloodColor = PlainColor(col)
		}
	case "flood-opacity":
		if f, err := readFraction(v); err == nil {
			p.FloodOpacity = f
		}
	case "stop-color":
		if col, _, err := ParseColor(v); err == nil {
			p.StopColor = PlainColor(col)
		}
	case "stop-opacity":
		if f, err := readFraction(v); err == nil {
			p.StopOpacity = f
		}
	case "clip-path":
		p.ClipPath = parseRefAttr(v)
	case "mask":
		p.Mask = parseRefAttr(v)
	case "filter":
		p.Filter = parseRefAttr(v)
	case "marker-start":
		p.MarkerStart = parseRefAttr(v)
	case "marker-mid":
		p.MarkerMid = parseRefAttr(v)
	case "marker-end":
		p.MarkerEnd = parseRefAttr(v)
	case "marker":
		r := parseRefAttr(v)
		p.MarkerStart, p.MarkerMid, p.MarkerEnd = r, r, r
	case "enable-background":
		p.EnableBackground = v == "new"
	case "mix-blend-mode", "comp-op":
		p.BlendMode = parseBlend(v)
	}
}

func readFraction(v string) (float64, error) {
	v = strings.TrimSpace(v)
	d := 1.0
	if strings.HasSuffix(v, "%") {
		d = 100
		v = strings.TrimSuffix(v, "%")
	}
	f, err := strconv.ParseFloat(v, 64)
	return f / d, err
}

func parseDashArray(v string) []float64 {
	fields := strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ' ' })
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil
		}
		out = append(out, n)
	}
	if len(out)%2 == 1 {
		// spec.md §4.3 edge case: an odd dasharray length duplicates itself.
		out = append(out, out...)
	}
	return out
}

func parseCap(v string) CapMode {
	switch v {
	case "round":
		return RoundCap
	case "square":
		return SquareCap
	case "cubic":
		return CubicCap
	case "quadratic":
		return QuadraticCap
	default:
		return ButtCap
	}
}

func parseJoin(v string) JoinMode {
	switch v {
	case "round":
		return Round
	case "bevel":
		return Bevel
	case "miter-clip":
		return MiterClip
	case "arc":
		return Arc
	case "arc-clip":
		return ArcClip
	default:
		return Miter
	}
}

func parseGap(v string) GapMode {
	switch v {
	case "round":
		return RoundGap
	case "cubic":
		return CubicGap
	case "quadratic":
		return QuadraticGap
	default:
		return FlatGap
	}
}

func parseBlend(v string) BlendMode {
	switch v {
	case "multiply":
		return BlendMultiply
	case "screen":
		return BlendScreen
	case "darken":
		return BlendDarken
	case "lighten":
		return BlendLighten
	default:
		return BlendNormal
	}
}

// parseRefAttr extracts the id from a url(#name) or #name reference
// (spec.md §4.4): whitespace after "url(" is tolerated, the first ")"
// terminates.
func parseRefAttr(v string) Reference {
	v = strings.TrimSpace(v)
	if v == "none" || v == "" {
		return Reference{}
	}
	if strings.HasPrefix(v, "url(") {
		rest := strings.TrimSpace(v[len("url("):])
		end := strings.IndexByte(rest, ')')
		if end < 0 {
			return Reference{}
		}
		rest = strings.TrimSpace(rest[:end])
		rest = strings.Trim(rest, `"'`)
		return Reference{ID: strings.TrimPrefix(rest, "#"), IsSet: true}
	}
	if strings.HasPrefix(v, "#") {
		return Reference{ID: v[1:], IsSet: true}
	}
	return Reference{}
}

// parsePaintRef recognizes a fill/stroke value of the form url(#id) used
// to reference a gradient/pattern paint server; resolution into an actual
// Paint happens in the tree/render layer which owns the Defs table.
func parsePaintRef(v string) (Paint, bool) {
	if strings.HasPrefix(strings.TrimSpace(v), "url(") {
		return unresolvedPaintRef{ref: parseRefAttr(v)}, true
	}
	return nil, false
}

// unresolvedPaintRef is a placeholder Paint carrying the referenced id;
// the render package resolves it against the Defs table before drawing.
type unresolvedPaintRef struct{ ref Reference }

func (unresolvedPaintRef) isPaint() {}

// PaintRefID returns the id an unresolved paint reference points to, and
// whether p is such a reference.
func PaintRefID(p Paint) (string, bool) {
	if r, ok := p.(unresolvedPaintRef); ok {
		return r.ref.ID, true
	}
	return "", false
}
