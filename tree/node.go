// Package tree implements the SAX-driven display-tree builder of
// spec.md §4.1: an incremental XML parser that recognizes SVG elements and
// materializes the in-memory node tree consumed by the style cascade and
// renderer.
package tree

import "github.com/GNOME/librsvg-sub001/style"

// Kind tags a Node's variant, covering the ~30 display-tree node kinds of
// spec.md §3.
type Kind uint8

const (
	KindGroup Kind = iota
	KindSVG
	KindSymbol
	KindSwitch
	KindUse
	KindRect
	KindCircle
	KindEllipse
	KindLine
	KindPolyline
	KindPolygon
	KindPath
	KindText
	KindTSpan
	KindImage
	KindMarker
	KindMask
	KindClipPath
	KindFilter
	KindFeBlend
	KindFeColorMatrix
	KindFeComponentTransfer
	KindFeFuncR
	KindFeFuncG
	KindFeFuncB
	KindFeFuncA
	KindFeComposite
	KindFeConvolveMatrix
	KindFeDiffuseLighting
	KindFeSpecularLighting
	KindFeDisplacementMap
	KindFeFlood
	KindFeGaussianBlur
	KindFeImage
	KindFeMerge
	KindFeMergeNode
	KindFeMorphology
	KindFeOffset
	KindFeTile
	KindFeTurbulence
	KindFeDistantLight
	KindFePointLight
	KindFeSpotLight
	KindLinearGradient
	KindRadialGradient
	KindStop
	KindPattern
	KindTitle
	KindDesc
	KindCharsBucket // unrecognized element; kept so child counts stay consistent (spec.md §4.1)
)

// elementKinds maps recognized SVG element local names to their Kind.
// Unknown names fall back to KindCharsBucket in the builder.
var elementKinds = map[string]Kind{
	"svg":                 KindSVG,
	"g":                   KindGroup,
	"symbol":              KindSymbol,
	"switch":              KindSwitch,
	"use":                 KindUse,
	"rect":                KindRect,
	"circle":              KindCircle,
	"ellipse":             KindEllipse,
	"line":                KindLine,
	"polyline":            KindPolyline,
	"polygon":             KindPolygon,
	"path":                KindPath,
	"text":                KindText,
	"tspan":               KindTSpan,
	"image":               KindImage,
	"marker":              KindMarker,
	"mask":                KindMask,
	"clipPath":            KindClipPath,
	"filter":              KindFilter,
	"feBlend":             KindFeBlend,
	"feColorMatrix":       KindFeColorMatrix,
	"feComponentTransfer": KindFeComponentTransfer,
	"feFuncR":             KindFeFuncR,
	"feFuncG":             KindFeFuncG,
	"feFuncB":             KindFeFuncB,
	"feFuncA":             KindFeFuncA,
	"feComposite":         KindFeComposite,
	"feConvolveMatrix":    KindFeConvolveMatrix,
	"feDiffuseLighting":   KindFeDiffuseLighting,
	"feSpecularLighting":  KindFeSpecularLighting,
	"feDisplacementMap":   KindFeDisplacementMap,
	"feFlood":             KindFeFlood,
	"feGaussianBlur":      KindFeGaussianBlur,
	"feImage":             KindFeImage,
	"feMerge":             KindFeMerge,
	"feMergeNode":         KindFeMergeNode,
	"feMorphology":        KindFeMorphology,
	"feOffset":            KindFeOffset,
	"feTile":              KindFeTile,
	"feTurbulence":        KindFeTurbulence,
	"feDistantLight":      KindFeDistantLight,
	"fePointLight":        KindFePointLight,
	"feSpotLight":         KindFeSpotLight,
	"linearGradient":      KindLinearGradient,
	"radialGradient":      KindRadialGradient,
	"stop":                KindStop,
	"pattern":             KindPattern,
	"title":               KindTitle,
	"desc":                KindDesc,
}

// Node is one display-tree element (spec.md §3). Style is resolved lazily:
// during parse a Node carries only its own declarations (PresentationAttrs
// / InlineStyle), not inherited values — resolution happens per spec.md's
// invariant only when the render package walks the tree.
type Node struct {
	Kind    Kind
	TagName string // the element's local name verbatim, for CSS tag selectors
	ID      string
	Classes []string

	PresentationAttrs []style.Declaration
	InlineStyle       []style.Declaration
	TransformAttr     string

	// Attrs holds every other element-specific attribute verbatim
	// (cx/cy/r, x1/y1/x2/y2, d, in/in2/result, stdDeviation, ...),
	// resolved against viewport/DPI by the geometry/render/filter
	// packages that know what each belongs to.
	Attrs map[string]string

	Text string // accumulated character data, for title/desc/chars-bucket

	Parent   *Node // non-owning back-reference
	Children []*Node
}

// Attr returns the raw value of a non-presentation attribute, and whether
// it was present.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.Attrs[name]
	return v, ok
}
