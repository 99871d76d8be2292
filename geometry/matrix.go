// Package geometry implements the affine-transform, length-unit, and path
// grammar parsing shared by the style cascade and the renderer.
package geometry

import "math"

// Matrix2D is a 2x3 affine matrix mapping (x,y) -> (a*x+c*y+e, b*x+d*y+f).
type Matrix2D struct {
	A, B, C, D, E, F float64
}

// Identity is the neutral affine transform.
var Identity = Matrix2D{A: 1, D: 1}

// Mult returns the product n·m: a point is mapped by m first and then by n,
// so appending each transform-list function with Mult gives SVG's
// right-to-left composition order.
func (n Matrix2D) Mult(m Matrix2D) Matrix2D {
	return Matrix2D{
		A: n.A*m.A + n.C*m.B,
		B: n.B*m.A + n.D*m.B,
		C: n.A*m.C + n.C*m.D,
		D: n.B*m.C + n.D*m.D,
		E: n.A*m.E + n.C*m.F + n.E,
		F: n.B*m.E + n.D*m.F + n.F,
	}
}

// Translate returns m translated by (tx, ty).
func (m Matrix2D) Translate(tx, ty float64) Matrix2D {
	return m.Mult(Matrix2D{A: 1, D: 1, E: tx, F: ty})
}

// Scale returns m scaled by (sx, sy). A zero sy copies sx, matching the SVG
// default for a single-argument scale().
func (m Matrix2D) Scale(sx, sy float64) Matrix2D {
	if sy == 0 {
		sy = sx
	}
	return m.Mult(Matrix2D{A: sx, D: sy})
}

// Rotate returns m rotated by theta radians.
func (m Matrix2D) Rotate(theta float64) Matrix2D {
	sin, cos := math.Sin(theta), math.Cos(theta)
	return m.Mult(Matrix2D{A: cos, B: sin, C: -sin, D: cos})
}

// SkewX returns m skewed along x by theta radians.
func (m Matrix2D) SkewX(theta float64) Matrix2D {
	return m.Mult(Matrix2D{A: 1, D: 1, C: math.Tan(theta)})
}

// SkewY returns m skewed along y by theta radians.
func (m Matrix2D) SkewY(theta float64) Matrix2D {
	return m.Mult(Matrix2D{A: 1, D: 1, B: math.Tan(theta)})
}

// TransformPoint maps (x, y) through m.
func (m Matrix2D) TransformPoint(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// Apply maps p through m.
func (m Matrix2D) Apply(p Point) Point {
	x, y := m.TransformPoint(p.X, p.Y)
	return Point{X: x, Y: y}
}

// Determinant returns the determinant of the linear part of m.
func (m Matrix2D) Determinant() float64 {
	return m.A*m.D - m.B*m.C
}

// Invert returns the inverse of m. Used for testable property 1
// (round-trip idempotence of transform parsing).
func (m Matrix2D) Invert() Matrix2D {
	det := m.Determinant()
	if det == 0 {
		return Identity
	}
	inv := 1 / det
	a := m.D * inv
	b := -m.B * inv
	c := -m.C * inv
	d := m.A * inv
	e := -(a*m.E + c*m.F)
	f := -(b*m.E + d*m.F)
	return Matrix2D{A: a, B: b, C: c, D: d, E: e, F: f}
}
