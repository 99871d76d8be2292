package render

import (
	"math"
	"strconv"
	"strings"

	"github.com/GNOME/librsvg-sub001/geometry"
	"github.com/GNOME/librsvg-sub001/tree"
)

// kappa approximates a quarter circle with a single cubic Bezier, the same
// constant every Bezier-based renderer in the pack uses for circle/ellipse
// lowering.
const kappa = 0.5522847498307936

// pathForShape lowers a shape node's attributes to a geometry.Path, the
// generalization of the teacher's per-element draw functions
// (svgicon/svg_elements.go's rectF/circleF/ellipseF/lineF/polylineF) that,
// instead of emitting Drawer calls immediately, build a Path the walker can
// clip, stroke, and bound uniformly.
// ShapePath exposes pathForShape to other packages (clip) that need
// a node's lowered geometry without re-walking the whole display tree.
func ShapePath(n *tree.Node, ctx geometry.Context) (geometry.Path, error) {
	return pathForShape(n, ctx)
}

func pathForShape(n *tree.Node, ctx geometry.Context) (geometry.Path, error) {
	switch n.Kind {
	case tree.KindRect:
		return rectPath(n, ctx)
	case tree.KindCircle:
		cx := lenAttr(n, ctx, "cx", geometry.RefWidth)
		cy := lenAttr(n, ctx, "cy", geometry.RefHeight)
		r := lenAttr(n, ctx, "r", geometry.RefDiagonal)
		return ellipsePath(cx, cy, r, r), nil
	case tree.KindEllipse:
		cx := lenAttr(n, ctx, "cx", geometry.RefWidth)
		cy := lenAttr(n, ctx, "cy", geometry.RefHeight)
		rx := lenAttr(n, ctx, "rx", geometry.RefWidth)
		ry := lenAttr(n, ctx, "ry", geometry.RefHeight)
		return ellipsePath(cx, cy, rx, ry), nil
	case tree.KindLine:
		var b geometry.Builder
		b.MoveTo(lenAttr(n, ctx, "x1", geometry.RefWidth), lenAttr(n, ctx, "y1", geometry.RefHeight))
		b.LineTo(lenAttr(n, ctx, "x2", geometry.RefWidth), lenAttr(n, ctx, "y2", geometry.RefHeight))
		return b.Path, nil
	case tree.KindPolyline, tree.KindPolygon:
		return polyPath(n, n.Kind == tree.KindPolygon), nil
	case tree.KindPath:
		d, _ := n.Attr("d")
		return geometry.ParsePathData(d)
	}
	return nil, nil
}

func lenAttr(n *tree.Node, ctx geometry.Context, name string, ref geometry.ReferenceKind) float64 {
	v, ok := n.Attr(name)
	if !ok {
		return 0
	}
	f, err := ctx.ResolveLength(v, ref)
	if err != nil {
		return 0
	}
	return f
}

func rectPath(n *tree.Node, ctx geometry.Context) (geometry.Path, error) {
	x := lenAttr(n, ctx, "x", geometry.RefWidth)
	y := lenAttr(n, ctx, "y", geometry.RefHeight)
	w := lenAttr(n, ctx, "width", geometry.RefWidth)
	h := lenAttr(n, ctx, "height", geometry.RefHeight)
	rx := lenAttr(n, ctx, "rx", geometry.RefWidth)
	ry := lenAttr(n, ctx, "ry", geometry.RefHeight)
	if rxStr, ok := n.Attr("rx"); !ok || rxStr == "" {
		rx = ry
	}
	if ryStr, ok := n.Attr("ry"); !ok || ryStr == "" {
		ry = rx
	}
	if w <= 0 || h <= 0 {
		return nil, nil
	}
	if rx <= 0 || ry <= 0 {
		var b geometry.Builder
		b.MoveTo(x, y)
		b.LineTo(x+w, y)
		b.LineTo(x+w, y+h)
		b.LineTo(x, y+h)
		b.Close()
		return b.Path, nil
	}
	if rx > w/2 {
		rx = w / 2
	}
	if ry > h/2 {
		ry = h / 2
	}
	var b geometry.Builder
	b.MoveTo(x+rx, y)
	b.LineTo(x+w-rx, y)
	b.CubicTo(geometry.Point{X: x + w - rx + rx*kappa, Y: y}, geometry.Point{X: x + w, Y: y + ry - ry*kappa}, x+w, y+ry)
	b.LineTo(x+w, y+h-ry)
	b.CubicTo(geometry.Point{X: x + w, Y: y + h - ry + ry*kappa}, geometry.Point{X: x + w - rx + rx*kappa, Y: y + h}, x+w-rx, y+h)
	b.LineTo(x+rx, y+h)
	b.CubicTo(geometry.Point{X: x + rx - rx*kappa, Y: y + h}, geometry.Point{X: x, Y: y + h - ry + ry*kappa}, x, y+h-ry)
	b.LineTo(x, y+ry)
	b.CubicTo(geometry.Point{X: x, Y: y + ry - ry*kappa}, geometry.Point{X: x + rx - rx*kappa, Y: y}, x+rx, y)
	b.Close()
	return b.Path, nil
}

func ellipsePath(cx, cy, rx, ry float64) geometry.Path {
	if rx <= 0 || ry <= 0 {
		return nil
	}
	var b geometry.Builder
	b.MoveTo(cx+rx, cy)
	b.CubicTo(geometry.Point{X: cx + rx, Y: cy + ry*kappa}, geometry.Point{X: cx + rx*kappa, Y: cy + ry}, cx, cy+ry)
	b.CubicTo(geometry.Point{X: cx - rx*kappa, Y: cy + ry}, geometry.Point{X: cx - rx, Y: cy + ry*kappa}, cx-rx, cy)
	b.CubicTo(geometry.Point{X: cx - rx, Y: cy - ry*kappa}, geometry.Point{X: cx - rx*kappa, Y: cy - ry}, cx, cy-ry)
	b.CubicTo(geometry.Point{X: cx + rx*kappa, Y: cy - ry}, geometry.Point{X: cx + rx, Y: cy - ry*kappa}, cx+rx, cy)
	b.Close()
	return b.Path
}

func polyPath(n *tree.Node, closed bool) geometry.Path {
	pts, _ := n.Attr("points")
	fields := strings.FieldsFunc(pts, func(r rune) bool { return r == ',' || r == ' ' || r == '\n' || r == '\t' })
	var nums []float64
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil
		}
		nums = append(nums, v)
	}
	if len(nums) < 4 {
		return nil
	}
	var b geometry.Builder
	b.MoveTo(nums[0], nums[1])
	for i := 2; i+1 < len(nums); i += 2 {
		b.LineTo(nums[i], nums[i+1])
	}
	if closed {
		b.Close()
	}
	return b.Path
}

// TransformPath maps every point of p through m, for painting a path
// already lowered in local coordinates into the current user space.
func TransformPath(p geometry.Path, m geometry.Matrix2D) geometry.Path {
	out := make(geometry.Path, len(p))
	for i, seg := range p {
		out[i] = geometry.Segment{
			Kind:  seg.Kind,
			To:    m.Apply(seg.To),
			Ctrl1: m.Apply(seg.Ctrl1),
			Ctrl2: m.Apply(seg.Ctrl2),
		}
	}
	return out
}

// approxArcLength returns the straight-line distance between from and to.
// Nothing in the module calls it; marker placement tests for zero-length
// segments with its own isDegenerate.
func approxArcLength(from, to geometry.Point) float64 {
	dx, dy := to.X-from.X, to.Y-from.Y
	return math.Hypot(dx, dy)
}
