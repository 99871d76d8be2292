// Package marker instances <marker> subtrees at a shape's path vertices,
// oriented along the local tangent (spec.md §4.8).
package marker

import (
	"math"

	"github.com/GNOME/librsvg-sub001/geometry"
	"github.com/GNOME/librsvg-sub001/style"
	"github.com/GNOME/librsvg-sub001/tree"
)

// Instance is one marker placement: the <marker> node to paint and the
// transform (vertex translation + orientation rotation + markerUnits
// scale) to push before painting it.
type Instance struct {
	Node      *tree.Node
	Transform geometry.Matrix2D
}

// vertex is a path node with its incoming and outgoing tangent direction
// (radians); degenerate (zero-length) tangents are marked invalid so the
// caller can fall back per spec.md's Open Question decision.
type vertex struct {
	at              geometry.Point
	inAngle         float64
	outAngle        float64
	haveIn, haveOut bool
}

// Instances computes marker placements for path's vertices, given the
// resolved marker-start/-mid/-end references and the shape's stroke
// width (used when markerUnits is the default "strokeWidth").
func Instances(path geometry.Path, props style.Properties, defs *tree.Defs, strokeWidth float64) []Instance {
	verts := pathVertices(path)
	if len(verts) == 0 {
		return nil
	}
	var out []Instance
	add := func(ref style.Reference, v vertex, lastAngle *float64) {
		if !ref.IsSet {
			return
		}
		node, ok := defs.Lookup(ref.ID)
		if !ok || node.Kind != tree.KindMarker {
			return
		}
		angle := orientation(v, *lastAngle)
		*lastAngle = angle
		scale := 1.0
		if markerUnits(node) == "strokeWidth" {
			scale = strokeWidth
		}
		m := geometry.Identity.Translate(v.at.X, v.at.Y).Rotate(angle).Scale(scale, scale)
		out = append(out, Instance{Node: node, Transform: m})
	}

	lastAngle := 0.0
	for i, v := range verts {
		switch {
		case i == 0:
			add(props.MarkerStart, v, &lastAngle)
		case i == len(verts)-1:
			add(props.MarkerEnd, v, &lastAngle)
		default:
			add(props.MarkerMid, v, &lastAngle)
		}
	}
	return out
}

func markerUnits(n *tree.Node) string {
	if v, ok := n.Attr("markerUnits"); ok {
		return v
	}
	return "strokeWidth"
}

// orientation averages the in/out tangent angles at a vertex (spec.md
// §4.8's bisector rule for interior vertices); a degenerate tangent at
// either side falls back to the other side, and if both are degenerate it
// falls back to the previous marker's angle.
func orientation(v vertex, lastAngle float64) float64 {
	switch {
	case v.haveIn && v.haveOut:
		return bisect(v.inAngle, v.outAngle)
	case v.haveIn:
		return v.inAngle
	case v.haveOut:
		return v.outAngle
	default:
		return lastAngle
	}
}

func bisect(a, b float64) float64 {
	d := math.Atan2(math.Sin(b-a), math.Cos(b-a))
	return a + d/2
}

func pathVertices(path geometry.Path) []vertex {
	var verts []vertex
	var prev, subpathStart geometry.Point
	havePrev := false
	for i, seg := range path {
		switch seg.Kind {
		case geometry.SegMoveTo:
			verts = append(verts, vertex{at: seg.To})
			prev, subpathStart, havePrev = seg.To, seg.To, true
		case geometry.SegLineTo:
			ang := math.Atan2(seg.To.Y-prev.Y, seg.To.X-prev.X)
			degenerate := isDegenerate(prev, seg.To)
			if !degenerate {
				setOut(verts, i, ang)
			}
			verts = append(verts, vertex{at: seg.To, inAngle: ang, haveIn: !degenerate})
			prev, havePrev = seg.To, true
		case geometry.SegCubicTo:
			outAng := math.Atan2(seg.Ctrl1.Y-prev.Y, seg.Ctrl1.X-prev.X)
			if isDegenerate(prev, seg.Ctrl1) {
				outAng = math.Atan2(seg.To.Y-prev.Y, seg.To.X-prev.X)
			}
			if !isDegenerate(prev, seg.Ctrl1) || !isDegenerate(prev, seg.To) {
				setOut(verts, i, outAng)
			}
			inAng := math.Atan2(seg.To.Y-seg.Ctrl2.Y, seg.To.X-seg.Ctrl2.X)
			haveIn := !isDegenerate(seg.Ctrl2, seg.To)
			if !haveIn {
				inAng = outAng
			}
			verts = append(verts, vertex{at: seg.To, inAngle: inAng, haveIn: haveIn})
			prev, havePrev = seg.To, true
		case geometry.SegClose:
			if havePrev && !isDegenerate(prev, subpathStart) {
				ang := math.Atan2(subpathStart.Y-prev.Y, subpathStart.X-prev.X)
				setOut(verts, i, ang)
			}
		}
	}
	return verts
}

func setOut(verts []vertex, segIdx int, angle float64) {
	if len(verts) == 0 {
		return
	}
	last := &verts[len(verts)-1]
	last.outAngle = angle
	last.haveOut = true
}

func isDegenerate(a, b geometry.Point) bool {
	const eps = 1e-9
	return math.Hypot(b.X-a.X, b.Y-a.Y) < eps
}
