package filter

import (
	"math"

	"github.com/GNOME/librsvg-sub001/style"
	"github.com/GNOME/librsvg-sub001/tree"
)

// feGaussianBlur approximates a true Gaussian with three passes of a box
// blur, the standard reference algorithm from SVG 1.1 §15.13.
func feGaussianBlur(n *tree.Node, in *Buffer) *Buffer {
	sx, sy := numPairAttr(n, "stdDeviation", 0, 0)
	out := in
	if sx > 0 {
		d := boxSize(sx)
		out = boxBlurHoriz(out, d)
		out = boxBlurHoriz(out, d)
		out = boxBlurHoriz(out, d)
	}
	if sy > 0 {
		d := boxSize(sy)
		out = boxBlurVert(out, d)
		out = boxBlurVert(out, d)
		out = boxBlurVert(out, d)
	}
	return out
}

func boxSize(stdDeviation float64) int {
	d := int(math.Floor(stdDeviation*3*math.Sqrt(2*math.Pi)/4 + 0.5))
	if d < 1 {
		d = 1
	}
	if d%2 == 0 {
		d++
	}
	return d
}

func boxBlurHoriz(in *Buffer, d int) *Buffer {
	r := d / 2
	out := NewBuffer(in.W, in.H)
	for y := 0; y < in.H; y++ {
		for x := 0; x < in.W; x++ {
			var sr, sg, sb, sa float64
			for k := -r; k <= r; k++ {
				cr, cg, cb, ca := in.At(x+k, y)
				sr += cr
				sg += cg
				sb += cb
				sa += ca
			}
			n := float64(2*r + 1)
			out.Set(x, y, sr/n, sg/n, sb/n, sa/n)
		}
	}
	return out
}

func boxBlurVert(in *Buffer, d int) *Buffer {
	r := d / 2
	out := NewBuffer(in.W, in.H)
	for y := 0; y < in.H; y++ {
		for x := 0; x < in.W; x++ {
			var sr, sg, sb, sa float64
			for k := -r; k <= r; k++ {
				cr, cg, cb, ca := in.At(x, y+k)
				sr += cr
				sg += cg
				sb += cb
				sa += ca
			}
			n := float64(2*r + 1)
			out.Set(x, y, sr/n, sg/n, sb/n, sa/n)
		}
	}
	return out
}

// feTurbulence generates Perlin noise over the whole buffer, per SVG 1.1
// Appendix F; "fractalNoise" sums signed octaves, "turbulence" sums their
// absolute value.
func feTurbulence(n *tree.Node, w, h int) *Buffer {
	fx, fy := numPairAttr(n, "baseFrequency", 0, 0)
	octaves := intAttr(n, "numOctaves", 1)
	seed := int32(numAttr(n, "seed", 0))
	fractal := firstAttr(n, "type") == "fractalNoise"
	g := newTurbulenceGen(seed)

	out := NewBuffer(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r := g.turbulence(0, float64(x), float64(y), octaves, fx, fy, fractal)
			gr := g.turbulence(1, float64(x), float64(y), octaves, fx, fy, fractal)
			b := g.turbulence(2, float64(x), float64(y), octaves, fx, fy, fractal)
			a := g.turbulence(3, float64(x), float64(y), octaves, fx, fy, fractal)
			if fractal {
				r, gr, b, a = (r+1)/2, (gr+1)/2, (b+1)/2, (a+1)/2
			}
			out.Set(x, y, clamp01(r), clamp01(gr), clamp01(b), clamp01(a))
		}
	}
	return out
}

// feDiffuseLighting and feSpecularLighting treat the input's alpha channel
// as a bump-mapped height field (SVG 1.1 §15.17/§15.18), lit by a distant
// or point light source; "spot" light falls back to a point light at the
// same position (a documented simplification, see DESIGN.md).
func feDiffuseLighting(n *tree.Node, in *Buffer) *Buffer {
	surfaceScale := numAttr(n, "surfaceScale", 1)
	diffuseConstant := numAttr(n, "diffuseConstant", 1)
	lr, lg, lb := lightColor(n)
	light := findLight(n)

	out := NewBuffer(in.W, in.H)
	for y := 0; y < in.H; y++ {
		for x := 0; x < in.W; x++ {
			nx, ny, nz := surfaceNormal(in, x, y, surfaceScale)
			lx, ly, lz := light.vectorAt(float64(x), float64(y), alphaHeight(in, x, y, surfaceScale))
			ndotl := nx*lx + ny*ly + nz*lz
			if ndotl < 0 {
				ndotl = 0
			}
			f := diffuseConstant * ndotl
			out.Set(x, y, clamp01(f*lr), clamp01(f*lg), clamp01(f*lb), 1)
		}
	}
	return out
}

func feSpecularLighting(n *tree.Node, in *Buffer) *Buffer {
	surfaceScale := numAttr(n, "surfaceScale", 1)
	specularConstant := numAttr(n, "specularConstant", 1)
	specularExponent := numAttr(n, "specularExponent", 1)
	lr, lg, lb := lightColor(n)
	light := findLight(n)

	out := NewBuffer(in.W, in.H)
	for y := 0; y < in.H; y++ {
		for x := 0; x < in.W; x++ {
			nx, ny, nz := surfaceNormal(in, x, y, surfaceScale)
			lx, ly, lz := light.vectorAt(float64(x), float64(y), alphaHeight(in, x, y, surfaceScale))
			hx, hy, hz := normalize(lx, ly, lz+1)
			ndoth := nx*hx + ny*hy + nz*hz
			if ndoth < 0 {
				ndoth = 0
			}
			f := specularConstant * math.Pow(ndoth, specularExponent)
			r, g, b := clamp01(f*lr), clamp01(f*lg), clamp01(f*lb)
			a := math.Max(r, math.Max(g, b))
			out.Set(x, y, r, g, b, a)
		}
	}
	return out
}

func lightColor(n *tree.Node) (r, g, b float64) {
	col, _, err := style.ParseColor(firstPresentationValue(n, "lighting-color", "white"))
	if err != nil {
		return 1, 1, 1
	}
	return float64(col.R) / 255, float64(col.G) / 255, float64(col.B) / 255
}

func alphaHeight(in *Buffer, x, y int, scale float64) float64 {
	_, _, _, a := in.At(x, y)
	return a * scale
}

func surfaceNormal(in *Buffer, x, y int, scale float64) (nx, ny, nz float64) {
	h := func(dx, dy int) float64 { return alphaHeight(in, x+dx, y+dy, scale) }
	sx := (h(1, -1) + 2*h(1, 0) + h(1, 1)) - (h(-1, -1) + 2*h(-1, 0) + h(-1, 1))
	sy := (h(-1, 1) + 2*h(0, 1) + h(1, 1)) - (h(-1, -1) + 2*h(0, -1) + h(1, -1))
	return normalize(-sx/4, -sy/4, 1)
}

func normalize(x, y, z float64) (float64, float64, float64) {
	l := math.Sqrt(x*x + y*y + z*z)
	if l == 0 {
		return 0, 0, 1
	}
	return x / l, y / l, z / l
}

type lightSource struct {
	kind               tree.Kind
	azimuth, elevation float64
	x, y, z            float64
}

func (l lightSource) vectorAt(px, py, pz float64) (float64, float64, float64) {
	if l.kind == tree.KindFeDistantLight {
		az, el := l.azimuth*math.Pi/180, l.elevation*math.Pi/180
		return normalize(math.Cos(az)*math.Cos(el), math.Sin(az)*math.Cos(el), math.Sin(el))
	}
	return normalize(l.x-px, l.y-py, l.z-pz)
}

func findLight(n *tree.Node) lightSource {
	for _, c := range n.Children {
		switch c.Kind {
		case tree.KindFeDistantLight:
			return lightSource{kind: c.Kind, azimuth: numAttr(c, "azimuth", 0), elevation: numAttr(c, "elevation", 0)}
		case tree.KindFePointLight, tree.KindFeSpotLight:
			return lightSource{kind: tree.KindFePointLight, x: numAttr(c, "x", 0), y: numAttr(c, "y", 0), z: numAttr(c, "z", 0)}
		}
	}
	return lightSource{kind: tree.KindFeDistantLight, elevation: 45}
}
