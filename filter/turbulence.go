package filter

import "math"

// turbulenceGen implements the Perlin-noise generator from SVG 1.1
// Appendix F (feTurbulence): a Park-Miller LCG seeds per-channel gradient
// lattices, and noise2 interpolates them with the spec's cubic fade curve.
// This is a direct, self-contained port — not Go's math/rand, which uses a
// different algorithm and would not reproduce the spec's reference output.
type turbulenceGen struct {
	lat    [256 + 256 + 2]int
	grad   [4][256 + 256 + 2][2]float64
}

const (
	bSize = 0x100
	bM    = 0xff
)

func setupSeed(seed int32) int32 {
	if seed <= 0 {
		seed = -(seed % (2147483646)) + 1
	}
	if seed > 2147483646 {
		seed = 2147483646
	}
	return seed
}

func randomNext(seed int32) int32 {
	const (
		ra = 16807
		rm = 2147483647
		rq = 127773
		rr = 2836
	)
	result := ra*(seed%rq) - rr*(seed/rq)
	if result <= 0 {
		result += rm
	}
	return result
}

func newTurbulenceGen(seed int32) *turbulenceGen {
	g := &turbulenceGen{}
	s := setupSeed(seed)
	for k := 0; k < 4; k++ {
		for i := 0; i < bSize; i++ {
			if k == 0 {
				g.lat[i] = i
			}
			s = randomNext(s)
			a := float64(s%(bSize+bSize)-bSize) / bSize
			s = randomNext(s)
			b := float64(s%(bSize+bSize)-bSize) / bSize
			length := math.Hypot(a, b)
			if length == 0 {
				length = 1
			}
			g.grad[k][i][0] = a / length
			g.grad[k][i][1] = b / length
		}
	}
	for i := bSize - 1; i > 0; i-- {
		s = randomNext(s)
		j := int(s) % bSize
		if j < 0 {
			j += bSize
		}
		g.lat[i], g.lat[j] = g.lat[j], g.lat[i]
	}
	for i := 0; i < bSize+2; i++ {
		g.lat[bSize+i] = g.lat[i]
		for k := 0; k < 4; k++ {
			g.grad[k][bSize+i] = g.grad[k][i]
		}
	}
	return g
}

func sCurve(t float64) float64 { return t * t * (3 - 2*t) }
func lerp(t, a, b float64) float64 { return a + t*(b-a) }

func (g *turbulenceGen) noise2(channel int, x, y float64) float64 {
	t := x + 4096
	bx0 := int(t) & bM
	bx1 := (bx0 + 1) & bM
	rx0 := t - math.Floor(t)
	rx1 := rx0 - 1

	t = y + 4096
	by0 := int(t) & bM
	by1 := (by0 + 1) & bM
	ry0 := t - math.Floor(t)
	ry1 := ry0 - 1

	i := g.lat[bx0]
	j := g.lat[bx1]

	b00 := g.lat[i+by0]
	b10 := g.lat[j+by0]
	b01 := g.lat[i+by1]
	b11 := g.lat[j+by1]

	sx := sCurve(rx0)
	sy := sCurve(ry0)

	q := g.grad[channel][b00]
	u := rx0*q[0] + ry0*q[1]
	q = g.grad[channel][b10]
	v := rx1*q[0] + ry0*q[1]
	a := lerp(sx, u, v)

	q = g.grad[channel][b01]
	u = rx0*q[0] + ry1*q[1]
	q = g.grad[channel][b11]
	v = rx1*q[0] + ry1*q[1]
	b := lerp(sx, u, v)

	return lerp(sy, a, b)
}

func (g *turbulenceGen) turbulence(channel int, x, y float64, octaves int, fx, fy float64, fractalSum bool) float64 {
	sum := 0.0
	vx, vy := x*fx, y*fy
	ratio := 1.0
	for o := 0; o < octaves; o++ {
		n := g.noise2(channel, vx, vy)
		if fractalSum {
			sum += n / ratio
		} else {
			sum += math.Abs(n) / ratio
		}
		vx *= 2
		vy *= 2
		ratio *= 2
	}
	return sum
}
