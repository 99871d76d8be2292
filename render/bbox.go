package render

import "github.com/GNOME/librsvg-sub001/geometry"

// BBox is an axis-aligned bounding box accumulated while walking a subtree,
// used both to resolve objectBoundingBox-unit paint servers/filters/masks
// and to size a discrete layer's offscreen buffer.
type BBox struct {
	set                    bool
	MinX, MinY, MaxX, MaxY float64
}

// Add extends the box to cover p.
func (b *BBox) Add(p geometry.Point) {
	if !b.set {
		b.MinX, b.MinY, b.MaxX, b.MaxY = p.X, p.Y, p.X, p.Y
		b.set = true
		return
	}
	if p.X < b.MinX {
		b.MinX = p.X
	}
	if p.X > b.MaxX {
		b.MaxX = p.X
	}
	if p.Y < b.MinY {
		b.MinY = p.Y
	}
	if p.Y > b.MaxY {
		b.MaxY = p.Y
	}
}

// AddPath extends the box to cover every point of p (segment endpoints and
// control points, a conservative but cheap hull that never underestimates).
func (b *BBox) AddPath(p geometry.Path) {
	for _, seg := range p {
		b.Add(seg.To)
		if seg.Kind == geometry.SegCubicTo {
			b.Add(seg.Ctrl1)
			b.Add(seg.Ctrl2)
		}
	}
}

// Union merges o into b.
func (b *BBox) Union(o BBox) {
	if !o.set {
		return
	}
	b.Add(geometry.Point{X: o.MinX, Y: o.MinY})
	b.Add(geometry.Point{X: o.MaxX, Y: o.MaxY})
}

// Width and Height report the box's extent, 0 if nothing was ever added.
func (b BBox) Width() float64  { return b.MaxX - b.MinX }
func (b BBox) Height() float64 { return b.MaxY - b.MinY }

// IsEmpty reports whether the box never had a point added to it.
func (b BBox) IsEmpty() bool { return !b.set }

// ObjectBoundingBoxMatrix returns the affine mapping the unit square
// [0,1]x[0,1] onto b, used to resolve objectBoundingBox-unit content
// (gradients, masks, filter regions; spec.md §4.4/§4.5).
func (b BBox) ObjectBoundingBoxMatrix() geometry.Matrix2D {
	return geometry.Matrix2D{A: b.Width(), B: 0, C: 0, D: b.Height(), E: b.MinX, F: b.MinY}
}
