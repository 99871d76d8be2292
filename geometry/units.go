package geometry

import (
	"math"
	"strconv"
	"strings"
)

var sqrt2 = math.Sqrt(2)

// Unit is an SVG length unit suffix.
type Unit uint8

const (
	Px Unit = iota
	Cm
	Mm
	Pt
	In
	Q
	Pc
	Percent
	Em
	Ex
)

var suffixes = [...]string{Px: "px", Cm: "cm", Mm: "mm", Pt: "pt", In: "in", Q: "Q", Pc: "pc", Percent: "%", Em: "em", Ex: "ex"}

// toPx holds the pixel-per-unit ratio at the reference DPI of 96, matching
// the teacher's svgicon/units.go table. Em/Ex are resolved separately
// against the current font-size, not through this table.
var toPx = [...]float64{Px: 1, Cm: 96. / 2.54, Mm: 9.6 / 2.54, Pt: 96. / 72., In: 96., Q: 96. / 40. / 2.54, Pc: 96. / 6., Percent: 1, Em: 1, Ex: 1}

// findUnit splits a length string into its numeric value and unit suffix.
func findUnit(s string) (Unit, string) {
	s = strings.TrimSpace(s)
	// longer/more specific suffixes first so "pt" isn't mistaken for "%".
	for _, u := range []Unit{Percent, Cm, Mm, Pt, In, Q, Pc, Em, Ex, Px} {
		if suf := suffixes[u]; strings.HasSuffix(s, suf) {
			return u, strings.TrimSpace(strings.TrimSuffix(s, suf))
		}
	}
	return Px, s
}

// Context carries the DPI and viewport/font state a length must resolve
// against (spec.md §4.3).
type Context struct {
	DPIx, DPIy       float64
	ViewportW, ViewportH float64
	FontSizePx       float64
}

// ReferenceKind selects which axis a percentage-length resolves against.
type ReferenceKind uint8

const (
	RefWidth ReferenceKind = iota
	RefHeight
	RefDiagonal
)

// ResolveLength converts a CSS/SVG length string to pixels.
func (c Context) ResolveLength(s string, ref ReferenceKind) (float64, error) {
	unit, numStr := findUnit(s)
	value, err := strconv.ParseFloat(numStr, 64)
	if err != nil {
		return 0, err
	}
	switch unit {
	case Percent:
		switch ref {
		case RefWidth:
			return value / 100 * c.ViewportW, nil
		case RefHeight:
			return value / 100 * c.ViewportH, nil
		default:
			diag := math.Sqrt(c.ViewportW*c.ViewportW+c.ViewportH*c.ViewportH) / sqrt2
			return value / 100 * diag, nil
		}
	case Em:
		return value * c.FontSizePx, nil
	case Ex:
		return value * c.FontSizePx * 0.5, nil
	case In:
		// physical units resolve against DPI, not the fixed 96 reference.
		dpi := c.DPIx
		if ref == RefHeight {
			dpi = c.DPIy
		}
		return value * dpi, nil
	case Cm, Mm, Pt, Q, Pc:
		dpi := c.DPIx
		if ref == RefHeight {
			dpi = c.DPIy
		}
		return value * toPx[unit] * dpi / 96., nil
	default:
		return value, nil
	}
}

// ParseBareNumber parses a number with no font or viewport context: a
// trailing "%" divides the value by 100 and any other unit suffix is
// dropped unconverted (used for gradient coordinates and stop
// offset/opacity).
func ParseBareNumber(s string) (float64, error) {
	unit, numStr := findUnit(s)
	value, err := strconv.ParseFloat(numStr, 64)
	if unit == Percent {
		value /= 100
	}
	return value, err
}
