package style

import (
	"image/color"

	"github.com/GNOME/librsvg-sub001/geometry"
)

// Paint is either a PlainColor or a Gradient, resolved from a fill/stroke
// value (spec.md §3 state block "fill/stroke paint servers").
type Paint interface{ isPaint() }

// PlainColor is a solid fill/stroke paint.
type PlainColor color.NRGBA

func (PlainColor) isPaint() {}

// NewPlainColor builds a PlainColor from 8-bit channels.
func NewPlainColor(r, g, b, a uint8) PlainColor {
	return PlainColor(color.NRGBA{R: r, G: g, B: b, A: a})
}

// GradientUnits controls whether a gradient/mask/clip/filter region is
// expressed in the object's bounding box or in user space (glossary:
// objectBoundingBox / userSpaceOnUse).
type GradientUnits uint8

const (
	ObjectBoundingBox GradientUnits = iota
	UserSpaceOnUse
)

// SpreadMethod controls gradient repetition beyond its defined stops.
type SpreadMethod uint8

const (
	PadSpread SpreadMethod = iota
	ReflectSpread
	RepeatSpread
)

// GradStop is one <stop> of a gradient.
type GradStop struct {
	Offset    float64
	StopColor color.NRGBA
}

// Direction distinguishes a linear gradient's endpoints from a radial
// gradient's circles.
type Direction interface{ isRadial() bool }

// Linear holds x1,y1,x2,y2 (fractions of the bounds by default).
type Linear [4]float64

func (Linear) isRadial() bool { return false }

// Radial holds cx,cy,fx,fy,r,fr.
type Radial [6]float64

func (Radial) isRadial() bool { return true }

// Gradient is a resolved linearGradient or radialGradient paint server.
type Gradient struct {
	Direction Direction
	Stops     []GradStop
	Bounds    Bounds
	Matrix    geometry.Matrix2D
	Spread    SpreadMethod
	Units     GradientUnits
}

func (Gradient) isPaint() {}

// Bounds is an axis-aligned rectangle, mirroring spec.md §3's Bbox minus
// the virgin flag (paint-server bounds are always definite once resolved).
type Bounds struct{ X, Y, W, H float64 }
