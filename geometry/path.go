package geometry

// Path is an ordered sequence of lowered path segments (spec.md §3): all
// quadratic and arc inputs are converted to cubics at parse time.
type Path []Segment

// SegmentKind tags a Segment's variant.
type SegmentKind uint8

const (
	SegMoveTo SegmentKind = iota
	SegLineTo
	SegCubicTo
	SegClose
)

// Segment is one lowered path command. Only Cubic segments carry control
// points; MoveTo/LineTo carry their single endpoint in To.
type Segment struct {
	Kind     SegmentKind
	To       Point
	Ctrl1    Point
	Ctrl2    Point
}

// Point is a plain 2D coordinate (not fixed-point: geometry stays in
// float64 until the raster backend rasterizes it, matching the teacher's
// late conversion to fixed.Int26_6 in svgraster).
type Point struct{ X, Y float64 }

// Builder accumulates a Path, tracking the current point and the
// "reflection point" used by smooth-curve commands (S/T), per spec §3.
type Builder struct {
	Path            Path
	cur, start      Point
	reflect         Point
	haveReflect     bool
	lastWasCubicLike bool
}

func (b *Builder) MoveTo(x, y float64) {
	b.cur = Point{x, y}
	b.start = b.cur
	b.haveReflect = false
	b.Path = append(b.Path, Segment{Kind: SegMoveTo, To: b.cur})
}

func (b *Builder) LineTo(x, y float64) {
	b.cur = Point{x, y}
	b.haveReflect = false
	b.Path = append(b.Path, Segment{Kind: SegLineTo, To: b.cur})
}

func (b *Builder) CubicTo(c1, c2 Point, x, y float64) {
	b.Path = append(b.Path, Segment{Kind: SegCubicTo, Ctrl1: c1, Ctrl2: c2, To: Point{x, y}})
	b.reflect = Point{2*x - c2.X, 2*y - c2.Y}
	b.haveReflect = true
	b.cur = Point{x, y}
}

// QuadTo lowers a quadratic Bezier to the equivalent cubic (testable
// property 2: no quadratic segments survive in the output Path).
func (b *Builder) QuadTo(cx, cy, x, y float64) {
	c1 := Point{b.cur.X + 2.0/3.0*(cx-b.cur.X), b.cur.Y + 2.0/3.0*(cy-b.cur.Y)}
	c2 := Point{x + 2.0/3.0*(cx-x), y + 2.0/3.0*(cy-y)}
	b.Path = append(b.Path, Segment{Kind: SegCubicTo, Ctrl1: c1, Ctrl2: c2, To: Point{x, y}})
	b.reflect = Point{2*x - cx, 2*y - cy}
	b.haveReflect = true
	b.cur = Point{x, y}
}

func (b *Builder) Close() {
	b.Path = append(b.Path, Segment{Kind: SegClose, To: b.start})
	b.cur = b.start
	b.haveReflect = false
}

// ReflectPoint returns the reflection of the previous curve's last control
// point about the current point, for the "smooth" S/T commands; if the
// previous command was not a curve, it returns the current point itself
// (per SVG 1.1 §8.3.6).
func (b *Builder) ReflectPoint() Point {
	if b.haveReflect {
		return b.reflect
	}
	return b.cur
}

func (b *Builder) Current() Point { return b.cur }
