package style

// JoinMode selects how stroke segments bridge a join (spec.md §3), kept in
// the teacher's enumeration (svgicon/draw.go JoinMode) plus the two
// non-standard Arc/ArcClip modes it already carried.
type JoinMode uint8

const (
	Miter JoinMode = iota
	MiterClip
	Round
	Bevel
	Arc
	ArcClip
)

// CapMode selects how open subpath ends are capped.
type CapMode uint8

const (
	NilCap CapMode = iota
	ButtCap
	SquareCap
	RoundCap
	CubicCap
	QuadraticCap
)

// GapMode selects how a convex-side gap is bridged when the miter limit is
// exceeded (non-standard, carried from the teacher's draw.go).
type GapMode uint8

const (
	NilGap GapMode = iota
	FlatGap
	RoundGap
	CubicGap
	QuadraticGap
)

// TextAnchor is the text-anchor property.
type TextAnchor uint8

const (
	AnchorStart TextAnchor = iota
	AnchorMiddle
	AnchorEnd
)

// Visibility is the visibility property.
type Visibility uint8

const (
	VisibilityVisible Visibility = iota
	VisibilityHidden
	VisibilityCollapse
)

// BlendMode is the comp-op / mix-blend-mode property consulted when
// compositing a discrete layer back into its parent (spec.md §4.5).
type BlendMode uint8

const (
	BlendNormal BlendMode = iota
	BlendMultiply
	BlendScreen
	BlendDarken
	BlendLighten
)

// Dash is the stroke-dasharray/stroke-dashoffset pair.
type Dash struct {
	Array  []float64
	Offset float64
}

// Reference is a resolved (or still-unresolved) url(#id) / #id reference,
// e.g. for clip-path, mask, filter, marker-start/mid/end.
type Reference struct {
	ID    string
	IsSet bool
}

// Font carries the inheritable font-* properties consulted by the
// external text-shaping collaborator (spec.md §1 scope note: font
// rasterization itself is out of scope, but the resolved font description
// is part of the cascade's output).
type Font struct {
	Family     string
	SizePx     float64
	Style      string
	Weight     string
	Stretch    string
	Decoration string
}

// Properties is the fully-cascaded "state block" of spec.md §3, minus the
// render-only fields (current affine, saved layer buffer, pre-clip bbox)
// which live in the render package alongside the state stack.
type Properties struct {
	Fill, Stroke               Paint
	FillOpacity, StrokeOpacity float64
	Opacity                    float64

	StrokeWidth      float64
	Join             JoinMode
	LeadCap, TailCap CapMode
	Gap              GapMode
	MiterLimit       float64
	Dash             Dash
	NonZeroWinding   bool

	Font Font

	TextAnchor TextAnchor
	Direction  string // "ltr" | "rtl"
	Visibility Visibility

	FloodColor   PlainColor
	FloodOpacity float64
	StopColor    PlainColor
	StopOpacity  float64

	ClipPath, Mask, Filter                   Reference
	MarkerStart, MarkerMid, MarkerEnd        Reference
	EnableBackground                         bool
	BlendMode                                BlendMode
}

// Default is the resolved style of the root <svg>'s implicit parent: fill
// black, full opacity, no stroke, nonzero winding (spec.md's DefaultStyle
// in the teacher's svgicon/parse.go, generalized to the full property set).
var Default = Properties{
	Fill:           NewPlainColor(0, 0, 0, 0xff),
	FillOpacity:    1,
	StrokeOpacity:  1,
	Opacity:        1,
	StrokeWidth:    1,
	MiterLimit:     4,
	NonZeroWinding: true,
	TailCap:        ButtCap,
	Join:           Miter,
	FloodOpacity:   1,
	StopOpacity:    1,
	Font:           Font{Family: "sans-serif", SizePx: 16},
}

// HasDiscreteLayer reports whether the node must be drawn into its own
// transparency group (spec.md §4.5).
func (p Properties) HasDiscreteLayer() bool {
	return p.Filter.IsSet || p.Mask.IsSet || p.Opacity < 1 ||
		p.EnableBackground || p.BlendMode != BlendNormal
}

// presentationProperties is every key applyDeclaration recognizes. The
// tree builder consults it to split an element's attributes into style
// declarations (fed to the cascade) versus geometry/structural attributes
// (d, cx, points, stdDeviation, ...) left for the geometry/render/filter
// packages to resolve directly.
var presentationProperties = map[string]bool{
	"fill": true, "stroke": true, "opacity": true,
	"fill-opacity": true, "stroke-opacity": true, "stroke-width": true,
	"stroke-linecap": true, "stroke-leadlinecap": true, "stroke-linejoin": true,
	"stroke-linegap": true, "stroke-miterlimit": true, "stroke-dashoffset": true,
	"stroke-dasharray": true, "fill-rule": true, "clip-rule": true,
	"font-family": true, "font-size": true, "font-style": true,
	"font-weight": true, "font-stretch": true, "text-decoration": true,
	"text-anchor": true, "direction": true, "visibility": true,
	"flood-color": true, "flood-opacity": true, "stop-color": true,
	"stop-opacity": true, "clip-path": true, "mask": true, "filter": true,
	"marker-start": true, "marker-mid": true, "marker-end": true, "marker": true,
	"enable-background": true, "mix-blend-mode": true, "comp-op": true,
}

// IsPresentationProperty reports whether name is one of the cascaded style
// properties applyDeclaration understands.
func IsPresentationProperty(name string) bool {
	return presentationProperties[name]
}
