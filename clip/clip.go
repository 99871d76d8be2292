// Package clip resolves clip-path references into a single geometry.Path
// (spec.md §4.5): a <clipPath>'s children are lowered to shape geometry
// and concatenated into one path, clipped against with the nonzero
// winding rule — the render package's Effects.ResolveClip hook.
package clip

import (
	"github.com/GNOME/librsvg-sub001/geometry"
	"github.com/GNOME/librsvg-sub001/render"
	"github.com/GNOME/librsvg-sub001/tree"
)

// clipKinds lists the shape kinds a <clipPath> may directly contain
// (spec.md §4.5); <use> is resolved one level by following its href.
var clipKinds = map[tree.Kind]bool{
	tree.KindRect: true, tree.KindCircle: true, tree.KindEllipse: true,
	tree.KindLine: true, tree.KindPolyline: true, tree.KindPolygon: true,
	tree.KindPath: true, tree.KindText: true,
}

// Resolve looks up ref in defs, requires it to be a <clipPath>, and
// concatenates its children's lowered shape geometry into one Path. An
// unresolvable reference or an empty clipPath returns ok=false, meaning
// "no clip" rather than "clip everything".
func Resolve(ref string, defs *tree.Defs, ctx geometry.Context) (geometry.Path, bool) {
	node, ok := defs.Lookup(ref)
	if !ok || node.Kind != tree.KindClipPath {
		return nil, false
	}
	var out geometry.Path
	for _, c := range node.Children {
		target := c
		if target.Kind == tree.KindUse {
			href, ok := resolveHref(target, defs)
			if !ok {
				continue
			}
			target = href
		}
		if !clipKinds[target.Kind] {
			continue
		}
		p, err := render.ShapePath(target, ctx)
		if err != nil {
			continue
		}
		out = append(out, p...)
	}
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}

func resolveHref(n *tree.Node, defs *tree.Defs) (*tree.Node, bool) {
	href, ok := n.Attr("href")
	if !ok {
		href, ok = n.Attr("xlink:href")
	}
	if !ok || len(href) < 2 || href[0] != '#' {
		return nil, false
	}
	return defs.Lookup(href[1:])
}
