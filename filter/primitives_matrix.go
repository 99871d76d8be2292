package filter

import (
	"math"
	"strconv"
	"strings"

	"github.com/GNOME/librsvg-sub001/tree"
)

// feColorMatrix applies a 4x5 row-major matrix to each premultiplied-free
// (straight alpha) pixel, per SVG 1.1 §15.10. "saturate" and "hueRotate"
// and "luminanceToAlpha" fall back to their equivalent generated matrices;
// an explicit "matrix" type reads 20 numbers directly.
func feColorMatrix(n *tree.Node, in *Buffer) *Buffer {
	typ := firstAttr(n, "type")
	if typ == "" {
		typ = "matrix"
	}
	var m [20]float64
	switch typ {
	case "saturate":
		s := numAttr(n, "values", 1)
		m = saturateMatrix(s)
	case "hueRotate":
		m = hueRotateMatrix(numAttr(n, "values", 0))
	case "luminanceToAlpha":
		m = [20]float64{
			0, 0, 0, 0, 0,
			0, 0, 0, 0, 0,
			0, 0, 0, 0, 0,
			0.2125, 0.7154, 0.0721, 0, 0,
		}
	default:
		m = parseMatrixValues(firstAttr(n, "values"))
	}
	out := NewBuffer(in.W, in.H)
	for y := 0; y < in.H; y++ {
		for x := 0; x < in.W; x++ {
			r, g, b, a := in.At(x, y)
			nr := m[0]*r + m[1]*g + m[2]*b + m[3]*a + m[4]
			ng := m[5]*r + m[6]*g + m[7]*b + m[8]*a + m[9]
			nb := m[10]*r + m[11]*g + m[12]*b + m[13]*a + m[14]
			na := m[15]*r + m[16]*g + m[17]*b + m[18]*a + m[19]
			out.Set(x, y, clamp01(nr), clamp01(ng), clamp01(nb), clamp01(na))
		}
	}
	return out
}

func parseMatrixValues(v string) [20]float64 {
	var m [20]float64
	m[0], m[6], m[12], m[18] = 1, 1, 1, 1 // identity fallback
	fields := strings.Fields(strings.ReplaceAll(v, ",", " "))
	if len(fields) != 20 {
		return m
	}
	for i, f := range fields {
		if n, err := strconv.ParseFloat(f, 64); err == nil {
			m[i] = n
		}
	}
	return m
}

func saturateMatrix(s float64) [20]float64 {
	return [20]float64{
		0.213 + 0.787*s, 0.715 - 0.715*s, 0.072 - 0.072*s, 0, 0,
		0.213 - 0.213*s, 0.715 + 0.285*s, 0.072 - 0.072*s, 0, 0,
		0.213 - 0.213*s, 0.715 - 0.715*s, 0.072 + 0.928*s, 0, 0,
		0, 0, 0, 1, 0,
	}
}

func hueRotateMatrix(degrees float64) [20]float64 {
	rad := degrees * math.Pi / 180
	c, s := math.Cos(rad), math.Sin(rad)
	return [20]float64{
		0.213 + c*0.787 - s*0.213, 0.715 - c*0.715 - s*0.715, 0.072 - c*0.072 + s*0.928, 0, 0,
		0.213 - c*0.213 + s*0.143, 0.715 + c*0.285 + s*0.140, 0.072 - c*0.072 - s*0.283, 0, 0,
		0.213 - c*0.213 - s*0.787, 0.715 - c*0.715 + s*0.715, 0.072 + c*0.928 + s*0.072, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// feComponentTransfer applies independent transfer functions per channel
// (spec.md §4.6): identity (default), table, discrete, linear, gamma.
func feComponentTransfer(n *tree.Node, in *Buffer) *Buffer {
	var fr, fg, fb, fa func(float64) float64 = identityFn, identityFn, identityFn, identityFn
	for _, c := range n.Children {
		fn := transferFunc(c)
		switch c.Kind {
		case tree.KindFeFuncR:
			fr = fn
		case tree.KindFeFuncG:
			fg = fn
		case tree.KindFeFuncB:
			fb = fn
		case tree.KindFeFuncA:
			fa = fn
		}
	}
	out := NewBuffer(in.W, in.H)
	for y := 0; y < in.H; y++ {
		for x := 0; x < in.W; x++ {
			r, g, b, a := in.At(x, y)
			out.Set(x, y, clamp01(fr(r)), clamp01(fg(g)), clamp01(fb(b)), clamp01(fa(a)))
		}
	}
	return out
}

func identityFn(v float64) float64 { return v }

func transferFunc(n *tree.Node) func(float64) float64 {
	switch firstAttr(n, "type") {
	case "table":
		table := parseFloatList(firstAttr(n, "tableValues"))
		return func(c float64) float64 { return tableLookup(table, c, false) }
	case "discrete":
		table := parseFloatList(firstAttr(n, "tableValues"))
		return func(c float64) float64 { return tableLookup(table, c, true) }
	case "linear":
		slope := numAttr(n, "slope", 1)
		intercept := numAttr(n, "intercept", 0)
		return func(c float64) float64 { return slope*c + intercept }
	case "gamma":
		amp := numAttr(n, "amplitude", 1)
		exp := numAttr(n, "exponent", 1)
		off := numAttr(n, "offset", 0)
		return func(c float64) float64 { return amp*math.Pow(c, exp) + off }
	default:
		return identityFn
	}
}

func tableLookup(table []float64, c float64, discrete bool) float64 {
	n := len(table)
	if n == 0 {
		return c
	}
	if n == 1 {
		return table[0]
	}
	if discrete {
		k := int(c * float64(n))
		if k >= n {
			k = n - 1
		}
		return table[k]
	}
	k := int(c * float64(n-1))
	if k >= n-1 {
		return table[n-1]
	}
	frac := c*float64(n-1) - float64(k)
	return table[k] + frac*(table[k+1]-table[k])
}

func parseFloatList(v string) []float64 {
	fields := strings.Fields(strings.ReplaceAll(v, ",", " "))
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		if n, err := strconv.ParseFloat(f, 64); err == nil {
			out = append(out, n)
		}
	}
	return out
}

// feConvolveMatrix applies a general kernel, per SVG 1.1 §15.14.
func feConvolveMatrix(n *tree.Node, in *Buffer) *Buffer {
	ox, oy := numPairAttr(n, "order", 3, 3)
	order := [2]int{int(ox), int(oy)}
	kernel := parseFloatList(firstAttr(n, "kernelMatrix"))
	if len(kernel) != order[0]*order[1] || order[0] <= 0 || order[1] <= 0 {
		return in
	}
	divisor := numAttr(n, "divisor", sumKernel(kernel))
	if divisor == 0 {
		divisor = 1
	}
	bias := numAttr(n, "bias", 0)
	tx := int(numAttr(n, "targetX", float64(order[0]/2)))
	ty := int(numAttr(n, "targetY", float64(order[1]/2)))
	preserveAlpha := firstAttr(n, "preserveAlpha") == "true"
	edgeMode := firstAttr(n, "edgeMode")

	out := NewBuffer(in.W, in.H)
	for y := 0; y < in.H; y++ {
		for x := 0; x < in.W; x++ {
			var sr, sg, sb, sa float64
			for j := 0; j < order[1]; j++ {
				for i := 0; i < order[0]; i++ {
					kv := kernel[(order[1]-j-1)*order[0]+(order[0]-i-1)]
					sx, sy := x-tx+i, y-ty+j
					r, g, b, a := sampleEdge(in, sx, sy, edgeMode)
					if preserveAlpha {
						sr += r * kv
						sg += g * kv
						sb += b * kv
					} else {
						sr += r * a * kv
						sg += g * a * kv
						sb += b * a * kv
						sa += a * kv
					}
				}
			}
			_, _, _, origA := in.At(x, y)
			if preserveAlpha {
				out.Set(x, y, clamp01(sr/divisor+bias), clamp01(sg/divisor+bias), clamp01(sb/divisor+bias), origA)
			} else {
				na := clamp01(sa/divisor + bias)
				if na > 0 {
					out.Set(x, y, clamp01(sr/divisor+bias)/na, clamp01(sg/divisor+bias)/na, clamp01(sb/divisor+bias)/na, na)
				} else {
					out.Set(x, y, 0, 0, 0, 0)
				}
			}
		}
	}
	return out
}

func sumKernel(k []float64) float64 {
	s := 0.0
	for _, v := range k {
		s += v
	}
	if s == 0 {
		return 1
	}
	return s
}

func sampleEdge(b *Buffer, x, y int, mode string) (r, g, bl, a float64) {
	switch mode {
	case "wrap":
		x = ((x % b.W) + b.W) % b.W
		y = ((y % b.H) + b.H) % b.H
	case "none":
		// leave out-of-range samples transparent
	default: // "duplicate" (default per spec)
		if x < 0 {
			x = 0
		}
		if x >= b.W {
			x = b.W - 1
		}
		if y < 0 {
			y = 0
		}
		if y >= b.H {
			y = b.H - 1
		}
	}
	return b.At(x, y)
}

// feMorphology erodes or dilates all four channels over a rectangular
// (2*rx+1) x (2*ry+1) structuring element, per SVG 1.1 §15.16.
func feMorphology(n *tree.Node, in *Buffer) *Buffer {
	rx, ry := numPairAttr(n, "radius", 0, 0)
	erode := firstAttr(n, "operator") == "erode"
	kx, ky := int(rx), int(ry)
	out := NewBuffer(in.W, in.H)
	for y := 0; y < in.H; y++ {
		for x := 0; x < in.W; x++ {
			r, g, b, a := in.At(x, y)
			if erode {
				r, g, b, a = 1, 1, 1, 1
			}
			for j := -ky; j <= ky; j++ {
				for i := -kx; i <= kx; i++ {
					sr, sg, sb, sa := in.At(x+i, y+j)
					if erode {
						r, g, b, a = min(r, sr), min(g, sg), min(b, sb), min(a, sa)
					} else {
						r, g, b, a = max(r, sr), max(g, sg), max(b, sb), max(a, sa)
					}
				}
			}
			out.Set(x, y, r, g, b, a)
		}
	}
	return out
}

// feDisplacementMap shifts each sample of in by a scaled channel reading
// from in2, per SVG 1.1 §15.15.
func feDisplacementMap(n *tree.Node, in, in2 *Buffer) *Buffer {
	scale := numAttr(n, "scale", 0)
	xSel := channelSelector(firstAttr(n, "xChannelSelector"))
	ySel := channelSelector(firstAttr(n, "yChannelSelector"))
	out := NewBuffer(in.W, in.H)
	for y := 0; y < in.H; y++ {
		for x := 0; x < in.W; x++ {
			r2, g2, b2, a2 := in2.At(x, y)
			dx := scale * (xSel(r2, g2, b2, a2) - 0.5)
			dy := scale * (ySel(r2, g2, b2, a2) - 0.5)
			r, g, b, a := in.At(x+int(dx), y+int(dy))
			out.Set(x, y, r, g, b, a)
		}
	}
	return out
}

func channelSelector(name string) func(r, g, b, a float64) float64 {
	switch name {
	case "R":
		return func(r, g, b, a float64) float64 { return r }
	case "G":
		return func(r, g, b, a float64) float64 { return g }
	case "B":
		return func(r, g, b, a float64) float64 { return b }
	default:
		return func(r, g, b, a float64) float64 { return a }
	}
}

// feTile repeats in's subregion (here approximated by its own full extent,
// since the filter-primitive-subregion model is out of this module's
// scope) across the full buffer.
func feTile(n *tree.Node, in *Buffer) *Buffer {
	return in
}
