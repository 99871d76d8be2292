package geometry

import (
	"errors"
	"math"
	"strconv"
)

// ErrBadPathData is returned for a malformed "d" attribute.
var ErrBadPathData = errors.New("geometry: malformed path data")

// ParsePathData tokenizes an SVG path data string (spec.md §4.3) into a
// lowered Path (arcs and quadratics already converted to cubics).
func ParsePathData(d string) (Path, error) {
	t := pathTokenizer{s: d}
	var b Builder
	var cmd byte
	first := true
	for {
		t.skipWhitespace()
		if t.done() {
			break
		}
		c := t.peek()
		explicit := false
		if isCommandLetter(c) {
			cmd = c
			t.pos++
			explicit = true
		} else if first {
			return nil, ErrBadPathData
		}
		// An implicit lineto follows a moveto's extra coordinate pairs
		// (spec.md §4.3 edge case).
		if cmd == 'm' || cmd == 'M' {
			if !explicit {
				if cmd == 'm' {
					cmd = 'l'
				} else {
					cmd = 'L'
				}
			}
		}
		first = false

		switch cmd {
		case 'M', 'm':
			x, y, err := t.point()
			if err != nil {
				return nil, err
			}
			if cmd == 'm' {
				x, y = b.cur.X+x, b.cur.Y+y
			}
			b.MoveTo(x, y)
		case 'L', 'l':
			x, y, err := t.point()
			if err != nil {
				return nil, err
			}
			if cmd == 'l' {
				x, y = b.cur.X+x, b.cur.Y+y
			}
			b.LineTo(x, y)
		case 'H', 'h':
			x, err := t.number()
			if err != nil {
				return nil, err
			}
			if cmd == 'h' {
				x += b.cur.X
			}
			b.LineTo(x, b.cur.Y)
		case 'V', 'v':
			y, err := t.number()
			if err != nil {
				return nil, err
			}
			if cmd == 'v' {
				y += b.cur.Y
			}
			b.LineTo(b.cur.X, y)
		case 'C', 'c':
			x1, y1, err := t.point()
			if err != nil {
				return nil, err
			}
			x2, y2, err := t.point()
			if err != nil {
				return nil, err
			}
			x, y, err := t.point()
			if err != nil {
				return nil, err
			}
			if cmd == 'c' {
				ox, oy := b.cur.X, b.cur.Y
				x1, y1, x2, y2, x, y = x1+ox, y1+oy, x2+ox, y2+oy, x+ox, y+oy
			}
			b.CubicTo(Point{x1, y1}, Point{x2, y2}, x, y)
		case 'S', 's':
			x2, y2, err := t.point()
			if err != nil {
				return nil, err
			}
			x, y, err := t.point()
			if err != nil {
				return nil, err
			}
			if cmd == 's' {
				ox, oy := b.cur.X, b.cur.Y
				x2, y2, x, y = x2+ox, y2+oy, x+ox, y+oy
			}
			c1 := b.ReflectPoint()
			b.CubicTo(c1, Point{x2, y2}, x, y)
		case 'Q', 'q':
			cx, cy, err := t.point()
			if err != nil {
				return nil, err
			}
			x, y, err := t.point()
			if err != nil {
				return nil, err
			}
			if cmd == 'q' {
				ox, oy := b.cur.X, b.cur.Y
				cx, cy, x, y = cx+ox, cy+oy, x+ox, y+oy
			}
			b.QuadTo(cx, cy, x, y)
		case 'T', 't':
			x, y, err := t.point()
			if err != nil {
				return nil, err
			}
			if cmd == 't' {
				x, y = b.cur.X+x, b.cur.Y+y
			}
			c := b.ReflectPoint()
			b.QuadTo(c.X, c.Y, x, y)
		case 'A', 'a':
			rx, err := t.number()
			if err != nil {
				return nil, err
			}
			ry, err := t.number()
			if err != nil {
				return nil, err
			}
			rot, err := t.number()
			if err != nil {
				return nil, err
			}
			largeArc, err := t.flag()
			if err != nil {
				return nil, err
			}
			sweep, err := t.flag()
			if err != nil {
				return nil, err
			}
			x, y, err := t.point()
			if err != nil {
				return nil, err
			}
			if cmd == 'a' {
				x, y = b.cur.X+x, b.cur.Y+y
			}
			appendArc(&b, rx, ry, rot, largeArc, sweep, x, y)
		case 'Z', 'z':
			if !explicit {
				return nil, ErrBadPathData
			}
			b.Close()
		default:
			return nil, ErrBadPathData
		}
	}
	return b.Path, nil
}

func isCommandLetter(c byte) bool {
	switch c {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v', 'C', 'c', 'S', 's',
		'Q', 'q', 'T', 't', 'A', 'a', 'Z', 'z':
		return true
	}
	return false
}

type pathTokenizer struct {
	s   string
	pos int
}

func (t *pathTokenizer) done() bool { return t.pos >= len(t.s) }
func (t *pathTokenizer) peek() byte { return t.s[t.pos] }

func (t *pathTokenizer) skipWhitespace() {
	for !t.done() {
		switch t.s[t.pos] {
		case ' ', '\t', '\r', '\n', ',':
			t.pos++
		default:
			return
		}
	}
}

func (t *pathTokenizer) flag() (bool, error) {
	t.skipWhitespace()
	if t.done() {
		return false, ErrBadPathData
	}
	c := t.s[t.pos]
	if c != '0' && c != '1' {
		return false, ErrBadPathData
	}
	t.pos++
	return c == '1', nil
}

func (t *pathTokenizer) number() (float64, error) {
	t.skipWhitespace()
	start := t.pos
	if t.done() {
		return 0, ErrBadPathData
	}
	if t.s[t.pos] == '+' || t.s[t.pos] == '-' {
		t.pos++
	}
	sawDigit := false
	for !t.done() && isDigit(t.s[t.pos]) {
		t.pos++
		sawDigit = true
	}
	if !t.done() && t.s[t.pos] == '.' {
		t.pos++
		for !t.done() && isDigit(t.s[t.pos]) {
			t.pos++
			sawDigit = true
		}
	}
	if !sawDigit {
		return 0, ErrBadPathData
	}
	if !t.done() && (t.s[t.pos] == 'e' || t.s[t.pos] == 'E') {
		save := t.pos
		t.pos++
		if !t.done() && (t.s[t.pos] == '+' || t.s[t.pos] == '-') {
			t.pos++
		}
		expDigit := false
		for !t.done() && isDigit(t.s[t.pos]) {
			t.pos++
			expDigit = true
		}
		if !expDigit {
			t.pos = save
		}
	}
	v, err := strconv.ParseFloat(t.s[start:t.pos], 64)
	if err != nil {
		return 0, ErrBadPathData
	}
	return v, nil
}

func (t *pathTokenizer) point() (x, y float64, err error) {
	x, err = t.number()
	if err != nil {
		return
	}
	y, err = t.number()
	return
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// maxArcSpan is the maximum radians a single lowered cubic may span
// (testable property 6: every segment spans <= pi/2 + epsilon).
const maxArcSpan = math.Pi / 2

// appendArc lowers an elliptical arc to cubic Beziers via the
// endpoint-to-center parameterization of SVG Appendix F.6, following the
// Maisonobe approximation used in the teacher's svgpath/shapes.go addArc.
func appendArc(b *Builder, rx, ry, rotDeg float64, largeArc, sweep bool, x2, y2 float64) {
	x1, y1 := b.cur.X, b.cur.Y
	if rx == 0 || ry == 0 || (x1 == x2 && y1 == y2) {
		b.LineTo(x2, y2)
		return
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	phi := rotDeg * math.Pi / 180
	sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)

	// Step 1: compute (x1', y1').
	dx2, dy2 := (x1-x2)/2, (y1-y2)/2
	x1p := cosPhi*dx2 + sinPhi*dy2
	y1p := -sinPhi*dx2 + cosPhi*dy2

	// correct out-of-range radii (F.6.6.2).
	lambda := (x1p*x1p)/(rx*rx) + (y1p*y1p)/(ry*ry)
	if lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}
	if rx < 1e-9 || ry < 1e-9 {
		b.LineTo(x2, y2)
		return
	}

	// Step 2: compute (cx', cy').
	sign := 1.0
	if largeArc == sweep {
		sign = -1
	}
	num := rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p
	den := rx*rx*y1p*y1p + ry*ry*x1p*x1p
	co := 0.0
	if den > 1e-12 && num > 0 {
		co = sign * math.Sqrt(num/den)
	}
	cxp := co * (rx * y1p / ry)
	cyp := co * (-ry * x1p / rx)

	// Step 3: compute (cx, cy) from (cx', cy').
	cx := cosPhi*cxp - sinPhi*cyp + (x1+x2)/2
	cy := sinPhi*cxp + cosPhi*cyp + (y1+y2)/2

	angle := func(ux, uy, vx, vy float64) float64 {
		dot := ux*vx + uy*vy
		lenU := math.Hypot(ux, uy)
		lenV := math.Hypot(vx, vy)
		a := math.Acos(clamp(dot/(lenU*lenV), -1, 1))
		if ux*vy-uy*vx < 0 {
			a = -a
		}
		return a
	}

	theta1 := angle(1, 0, (x1p-cxp)/rx, (y1p-cyp)/ry)
	deltaTheta := angle((x1p-cxp)/rx, (y1p-cyp)/ry, (-x1p-cxp)/rx, (-y1p-cyp)/ry)
	if !sweep && deltaTheta > 0 {
		deltaTheta -= 2 * math.Pi
	} else if sweep && deltaTheta < 0 {
		deltaTheta += 2 * math.Pi
	}

	segs := int(math.Ceil(math.Abs(deltaTheta) / maxArcSpan))
	if segs < 1 {
		segs = 1
	}
	dTheta := deltaTheta / float64(segs)
	alpha := math.Sin(dTheta) * (math.Sqrt(4+3*math.Tan(dTheta/2)*math.Tan(dTheta/2)) - 1) / 3

	pointAt := func(theta float64) (px, py, dxv, dyv float64) {
		cosT, sinT := math.Cos(theta), math.Sin(theta)
		ex, ey := rx*cosT, ry*sinT
		px = cx + cosPhi*ex - sinPhi*ey
		py = cy + sinPhi*ex + cosPhi*ey
		ex1, ey1 := -rx*sinT, ry*cosT
		dxv = cosPhi*ex1 - sinPhi*ey1
		dyv = sinPhi*ex1 + cosPhi*ey1
		return
	}

	theta := theta1
	lx, ly, ldx, ldy := pointAt(theta)
	for i := 1; i <= segs; i++ {
		theta = theta1 + dTheta*float64(i)
		var px, py, dxv, dyv float64
		if i == segs {
			px, py = x2, y2
			_, _, dxv, dyv = pointAt(theta)
		} else {
			px, py, dxv, dyv = pointAt(theta)
		}
		c1 := Point{lx + alpha*ldx, ly + alpha*ldy}
		c2 := Point{px - alpha*dxv, py - alpha*dyv}
		b.CubicTo(c1, c2, px, py)
		lx, ly, ldx, ldy = px, py, dxv, dyv
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
