package render

import (
	"github.com/GNOME/librsvg-sub001/geometry"
	"github.com/GNOME/librsvg-sub001/style"
	"github.com/GNOME/librsvg-sub001/tree"
)

// defOnlyKinds never paint when reached through ordinary document flow —
// they are only ever rendered by reference (gradient stops, filter
// primitives, markers instanced from marker-start/mid/end, mask/clipPath
// content pulled in by a referencing node).
var defOnlyKinds = map[tree.Kind]bool{
	tree.KindLinearGradient: true, tree.KindRadialGradient: true, tree.KindStop: true,
	tree.KindPattern: true, tree.KindMarker: true, tree.KindMask: true,
	tree.KindClipPath: true, tree.KindFilter: true, tree.KindSymbol: true,
	tree.KindTitle: true, tree.KindDesc: true,

	// filter primitives: consumed directly by the filter package's
	// pipeline, never walked as paintable shapes.
	tree.KindFeBlend: true, tree.KindFeColorMatrix: true, tree.KindFeComponentTransfer: true,
	tree.KindFeFuncR: true, tree.KindFeFuncG: true, tree.KindFeFuncB: true, tree.KindFeFuncA: true,
	tree.KindFeComposite: true, tree.KindFeConvolveMatrix: true, tree.KindFeDiffuseLighting: true,
	tree.KindFeSpecularLighting: true, tree.KindFeDisplacementMap: true, tree.KindFeFlood: true,
	tree.KindFeGaussianBlur: true, tree.KindFeImage: true, tree.KindFeMerge: true,
	tree.KindFeMergeNode: true, tree.KindFeMorphology: true, tree.KindFeOffset: true,
	tree.KindFeTile: true, tree.KindFeTurbulence: true, tree.KindFeDistantLight: true,
	tree.KindFePointLight: true, tree.KindFeSpotLight: true,
}

const maxUseRecursion = 32

// Walker drives a Driver over a display tree.
type Walker struct {
	Defs    *tree.Defs
	Sheet   style.Stylesheet
	Effects Effects
}

// NewWalker builds a Walker bound to a parsed document's defs/stylesheet.
func NewWalker(defs *tree.Defs, sheet style.Stylesheet) *Walker {
	return &Walker{Defs: defs, Sheet: sheet}
}

// Render paints root and its subtree into d, starting from ctx's viewport
// and an identity transform (spec.md §4.1/§4.5 top-level entry point).
func (w *Walker) Render(root *tree.Node, ctx geometry.Context, d Driver) BBox {
	stack := NewStack(ctx)
	var bbox BBox
	w.walk(root, stack, d, &bbox)
	return bbox
}

func (w *Walker) walk(n *tree.Node, stack *Stack, d Driver, bbox *BBox) {
	if n == nil || defOnlyKinds[n.Kind] {
		return
	}
	frame := stack.Push(n, w.Sheet)
	defer stack.Pop()

	if frame.Props.Visibility == style.VisibilityCollapse {
		return
	}

	switch n.Kind {
	case tree.KindUse:
		w.walkUse(n, stack, d, bbox)
		return
	case tree.KindSwitch:
		w.walkSwitch(n, stack, d, bbox)
		return
	case tree.KindSVG, tree.KindGroup:
		w.paintChildren(n, stack, d, bbox)
		return
	}

	path, err := pathForShape(n, frame.Ctx)
	if err != nil || len(path) == 0 {
		w.paintChildren(n, stack, d, bbox)
		return
	}
	path = TransformPath(path, frame.Transform)

	if ld, ok := d.(LayerDriver); ok && frame.Props.HasDiscreteLayer() {
		var shapeBBox BBox
		shapeBBox.AddPath(path)
		layerProps := frame.Props
		layerProps.Opacity = 1 // applied once, as a group effect, by CompositeBack
		compositeDiscreteLayer(ld, w.Defs, frame.Props, shapeBBox, w.Effects, func(layer Driver) {
			w.paintShape(path, layerProps, layer, bbox)
			w.paintMarkers(n, path, frame.Props, frame.Ctx, layer, bbox)
		})
		bbox.Union(shapeBBox)
		return
	}
	w.paintShape(path, frame.Props, d, bbox)
	w.paintMarkers(n, path, frame.Props, frame.Ctx, d, bbox)
}

// markerEligible lists the shape kinds spec.md §4.8 instances markers
// along; rect/circle/ellipse/image/text are excluded.
var markerEligible = map[tree.Kind]bool{
	tree.KindPath: true, tree.KindLine: true, tree.KindPolyline: true, tree.KindPolygon: true,
}

func (w *Walker) paintMarkers(n *tree.Node, path geometry.Path, props style.Properties, ctx geometry.Context, d Driver, bbox *BBox) {
	if !markerEligible[n.Kind] || w.Effects.InstanceMarkers == nil {
		return
	}
	if !props.MarkerStart.IsSet && !props.MarkerMid.IsSet && !props.MarkerEnd.IsSet {
		return
	}
	for _, placement := range w.Effects.InstanceMarkers(path, props, w.Defs) {
		stack := NewStack(ctx)
		frame := stack.Push(placement.Node, w.Sheet)
		frame.Transform = placement.Transform
		stack.frames[len(stack.frames)-1] = frame
		w.paintChildren(placement.Node, stack, d, bbox)
	}
}

func (w *Walker) paintChildren(n *tree.Node, stack *Stack, d Driver, bbox *BBox) {
	for _, c := range n.Children {
		w.walk(c, stack, d, bbox)
	}
}

func (w *Walker) paintShape(path geometry.Path, props style.Properties, d Driver, bbox *BBox) {
	bbox.AddPath(path)

	clip := path
	if props.ClipPath.IsSet && w.Effects.ResolveClip != nil {
		var shapeBBox BBox
		shapeBBox.AddPath(path)
		if clipped, ok := w.Effects.ResolveClip(props.ClipPath.ID, w.Defs, shapeBBox); ok {
			clip = clipped
		}
	}

	fillPaint := w.resolvePaint(props.Fill)
	strokePaint := w.resolvePaint(props.Stroke)
	willFill := fillPaint != nil
	willStroke := strokePaint != nil && props.StrokeWidth > 0
	if !willFill && !willStroke {
		return
	}
	filler, stroker := d.SetupDrawers(willFill, willStroke)
	if filler != nil {
		drawPath(filler, clip)
		filler.SetWinding(props.NonZeroWinding)
		filler.SetColor(fillPaint, props.FillOpacity*props.Opacity)
		filler.Draw()
	}
	if stroker != nil {
		drawPath(stroker, clip)
		stroker.SetStrokeOptions(StrokeOptions{
			LineWidth:  props.StrokeWidth,
			Join:       props.Join,
			LeadCap:    props.LeadCap,
			TailCap:    props.TailCap,
			Gap:        props.Gap,
			MiterLimit: props.MiterLimit,
			Dash:       props.Dash,
		})
		stroker.SetColor(strokePaint, props.StrokeOpacity*props.Opacity)
		stroker.Draw()
	}
}

// resolvePaint looks up a url(#id) fill/stroke reference against the
// walker's Defs table (paint.go's package-level resolvePaint). A plain
// color passes through unchanged.
func (w *Walker) resolvePaint(p style.Paint) style.Paint {
	return resolvePaint(p, w.Defs)
}

func drawPath(dr Drawer, path geometry.Path) {
	dr.Clear()
	open := false
	for _, seg := range path {
		switch seg.Kind {
		case geometry.SegMoveTo:
			if open {
				dr.Stop(false)
			}
			dr.Start(seg.To)
			open = true
		case geometry.SegLineTo:
			dr.Line(seg.To)
		case geometry.SegCubicTo:
			dr.CubeBezier(seg.Ctrl1, seg.Ctrl2, seg.To)
		case geometry.SegClose:
			dr.Stop(true)
			open = false
		}
	}
	if open {
		dr.Stop(false)
	}
}

func (w *Walker) walkUse(n *tree.Node, stack *Stack, d Driver, bbox *BBox) {
	if stack.Top().UseDepth >= maxUseRecursion {
		return
	}
	href, ok := n.Attr("href")
	if !ok {
		href, ok = n.Attr("xlink:href")
	}
	if !ok || len(href) == 0 || href[0] != '#' {
		return
	}
	target, ok := w.Defs.Lookup(href[1:])
	if !ok || target == n {
		return
	}
	frame := stack.Top()
	frame.UseDepth++
	stack.frames[len(stack.frames)-1] = frame
	if target.Kind == tree.KindSymbol {
		// walk skips a <symbol> (defOnlyKinds); a <use> draws its children.
		stack.Push(target, w.Sheet)
		w.paintChildren(target, stack, d, bbox)
		stack.Pop()
		return
	}
	w.walk(target, stack, d, bbox)
}

func (w *Walker) walkSwitch(n *tree.Node, stack *Stack, d Driver, bbox *BBox) {
	for _, c := range n.Children {
		if _, unsupported := c.Attr("requiredExtensions"); unsupported {
			continue
		}
		w.walk(c, stack, d, bbox)
		return
	}
}
