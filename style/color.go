// Package style implements the CSS-style cascade described in spec.md
// §4.2: presentation attributes, inline style declarations, and matched
// <style> rules merged over inherited values.
package style

import (
	"errors"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ErrBadColor is returned when a color value cannot be parsed; callers
// fall back to the documented default and continue (spec.md §7).
var ErrBadColor = errors.New("style: malformed color")

// ParseColor parses an SVG/CSS color in hex, rgb(), or named form,
// grounded on the teacher's ParseSVGColor (svgpath/parse.go).
func ParseColor(s string) (color.NRGBA, bool, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "":
		return color.NRGBA{}, false, ErrBadColor
	case "none":
		return color.NRGBA{}, true, nil // "none" paints nothing; ok=true, zero paint
	case "currentcolor":
		return color.NRGBA{}, false, errCurrentColor
	}
	if strings.HasPrefix(v, "#") {
		r, g, b, a, err := parseHex(v[1:])
		return color.NRGBA{R: r, G: g, B: b, A: a}, false, err
	}
	if strings.HasPrefix(v, "rgba(") && strings.HasSuffix(v, ")") {
		return parseRGBFunc(v[5:len(v)-1], true)
	}
	if strings.HasPrefix(v, "rgb(") && strings.HasSuffix(v, ")") {
		return parseRGBFunc(v[4:len(v)-1], false)
	}
	if named, ok := colornames.Map[v]; ok {
		r, g, b, a := named.RGBA()
		return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}, false, nil
	}
	return color.NRGBA{}, false, ErrBadColor
}

// errCurrentColor signals the caller should substitute the inherited
// "color" property value; not a parse failure.
var errCurrentColor = errors.New("style: currentColor")

// IsCurrentColor reports whether err is the currentColor sentinel.
func IsCurrentColor(err error) bool { return errors.Is(err, errCurrentColor) }

func parseHex(s string) (r, g, b, a uint8, err error) {
	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	case 4:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2], s[3], s[3]})
	}
	if len(s) != 6 && len(s) != 8 {
		return 0, 0, 0, 0, ErrBadColor
	}
	vals := make([]uint8, 0, 4)
	for i := 0; i+2 <= len(s); i += 2 {
		n, perr := strconv.ParseUint(s[i:i+2], 16, 8)
		if perr != nil {
			return 0, 0, 0, 0, ErrBadColor
		}
		vals = append(vals, uint8(n))
	}
	a = 0xff
	if len(vals) == 4 {
		a = vals[3]
	}
	return vals[0], vals[1], vals[2], a, nil
}

func parseRGBFunc(body string, hasAlpha bool) (color.NRGBA, bool, error) {
	parts := strings.Split(body, ",")
	want := 3
	if hasAlpha {
		want = 4
	}
	if len(parts) != want {
		return color.NRGBA{}, false, ErrBadColor
	}
	vals := make([]uint8, 3)
	for i := 0; i < 3; i++ {
		v, err := parseChannel(strings.TrimSpace(parts[i]))
		if err != nil {
			return color.NRGBA{}, false, err
		}
		vals[i] = v
	}
	a := uint8(0xff)
	if hasAlpha {
		f, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil {
			return color.NRGBA{}, false, ErrBadColor
		}
		a = uint8(clamp01(f) * 0xff)
	}
	return color.NRGBA{R: vals[0], G: vals[1], B: vals[2], A: a}, false, nil
}

func parseChannel(s string) (uint8, error) {
	if strings.HasSuffix(s, "%") {
		n, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return 0, ErrBadColor
		}
		return uint8(clamp01(n/100) * 0xff), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, ErrBadColor
	}
	if n < 0 {
		n = 0
	}
	if n > 255 {
		n = 255
	}
	return uint8(n), nil
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
