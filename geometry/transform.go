package geometry

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrBadTransform is returned for a malformed transform-list function or
// argument count.
var ErrBadTransform = errors.New("geometry: malformed transform")

// ParseTransformList parses an SVG transform="..." attribute value and
// composes the resulting matrices, right to left, onto base.
func ParseTransformList(v string, base Matrix2D) (Matrix2D, error) {
	m := base
	for _, chunk := range strings.Split(v, ")") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		name, argStr, ok := strings.Cut(chunk, "(")
		if !ok || len(argStr) == 0 {
			return m, ErrBadTransform
		}
		args, err := parseNumberList(argStr)
		if err != nil {
			return m, err
		}
		m, err = applyTransformFunc(m, strings.ToLower(strings.TrimSpace(name)), args)
		if err != nil {
			return m, err
		}
	}
	return m, nil
}

func parseNumberList(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' || r == '\n' })
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, ErrBadTransform
		}
		out = append(out, v)
	}
	return out, nil
}

func applyTransformFunc(m Matrix2D, name string, args []float64) (Matrix2D, error) {
	switch name {
	case "rotate":
		switch len(args) {
		case 1:
			return m.Rotate(args[0] * math.Pi / 180), nil
		case 3:
			return m.Translate(args[1], args[2]).
				Rotate(args[0] * math.Pi / 180).
				Translate(-args[1], -args[2]), nil
		}
	case "translate":
		switch len(args) {
		case 1:
			return m.Translate(args[0], 0), nil
		case 2:
			return m.Translate(args[0], args[1]), nil
		}
	case "scale":
		switch len(args) {
		case 1:
			return m.Scale(args[0], 0), nil
		case 2:
			return m.Scale(args[0], args[1]), nil
		}
	case "skewx":
		if len(args) == 1 {
			return m.SkewX(args[0] * math.Pi / 180), nil
		}
	case "skewy":
		if len(args) == 1 {
			return m.SkewY(args[0] * math.Pi / 180), nil
		}
	case "matrix":
		if len(args) == 6 {
			return m.Mult(Matrix2D{A: args[0], B: args[1], C: args[2], D: args[3], E: args[4], F: args[5]}), nil
		}
	}
	return m, ErrBadTransform
}
