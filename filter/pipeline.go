package filter

import (
	"strconv"
	"strings"

	"github.com/GNOME/librsvg-sub001/tree"
)

// Pipeline resolves a <filter>'s primitive chain, tracking named
// intermediate results and the in/in2 default-chaining rule of spec.md
// §4.6: an omitted "in" on the first primitive means SourceGraphic, on
// every later one it means the previous primitive's result.
type Pipeline struct {
	results map[string]*Buffer
	source  *Buffer
	last    *Buffer
}

// Run executes every primitive child of filterNode in document order
// against source (straight-alpha) and returns the final buffer. Every
// primitive works over the whole source buffer: no filter region or
// primitive subregion is applied.
func Run(filterNode *tree.Node, source *Buffer) *Buffer {
	p := &Pipeline{
		results: map[string]*Buffer{"SourceGraphic": source, "SourceAlpha": alphaOnly(source)},
		source:  source,
		last:    source,
	}
	for _, c := range filterNode.Children {
		in := p.resolve(firstAttr(c, "in"))
		in2 := p.resolve(firstAttr(c, "in2"))
		out := p.apply(c, in, in2)
		if out == nil {
			continue
		}
		if name, ok := c.Attr("result"); ok && name != "" {
			p.results[name] = out
		}
		p.last = out
	}
	return p.last
}

func (p *Pipeline) resolve(name string) *Buffer {
	if name == "" {
		return p.last
	}
	if b, ok := p.results[name]; ok {
		return b
	}
	return p.last
}

func firstAttr(n *tree.Node, name string) string {
	v, _ := n.Attr(name)
	return v
}

func (p *Pipeline) apply(n *tree.Node, in, in2 *Buffer) *Buffer {
	switch n.Kind {
	case tree.KindFeFlood:
		return feFlood(n, dimsOf(in, p.source))
	case tree.KindFeOffset:
		return feOffset(n, in)
	case tree.KindFeMerge:
		return feMerge(n, p)
	case tree.KindFeBlend:
		return feBlend(n, in, in2)
	case tree.KindFeComposite:
		return feComposite(n, in, in2)
	case tree.KindFeColorMatrix:
		return feColorMatrix(n, in)
	case tree.KindFeComponentTransfer:
		return feComponentTransfer(n, in)
	case tree.KindFeGaussianBlur:
		return feGaussianBlur(n, in)
	case tree.KindFeMorphology:
		return feMorphology(n, in)
	case tree.KindFeConvolveMatrix:
		return feConvolveMatrix(n, in)
	case tree.KindFeDisplacementMap:
		return feDisplacementMap(n, in, in2)
	case tree.KindFeTile:
		return feTile(n, in)
	case tree.KindFeTurbulence:
		return feTurbulence(n, dimsOf(in, p.source))
	case tree.KindFeDiffuseLighting:
		return feDiffuseLighting(n, in)
	case tree.KindFeSpecularLighting:
		return feSpecularLighting(n, in)
	case tree.KindFeImage:
		return in // out of scope: no concrete URI I/O (spec.md §1 Non-goals); passes its input through
	}
	return nil
}

func dimsOf(b, fallback *Buffer) (w, h int) {
	if b != nil {
		return b.W, b.H
	}
	return fallback.W, fallback.H
}

func alphaOnly(b *Buffer) *Buffer {
	out := NewBuffer(b.W, b.H)
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			_, _, _, a := b.At(x, y)
			out.Set(x, y, 0, 0, 0, a)
		}
	}
	return out
}

func numAttr(n *tree.Node, name string, def float64) float64 {
	v, ok := n.Attr(name)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return def
	}
	return f
}

func numPairAttr(n *tree.Node, name string, def1, def2 float64) (float64, float64) {
	v, ok := n.Attr(name)
	if !ok {
		return def1, def2
	}
	fields := strings.Fields(strings.ReplaceAll(v, ",", " "))
	a, b := def1, def2
	if len(fields) >= 1 {
		if f, err := strconv.ParseFloat(fields[0], 64); err == nil {
			a, b = f, f
		}
	}
	if len(fields) >= 2 {
		if f, err := strconv.ParseFloat(fields[1], 64); err == nil {
			b = f
		}
	}
	return a, b
}

func intAttr(n *tree.Node, name string, def int) int {
	v, ok := n.Attr(name)
	if !ok {
		return def
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return i
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
