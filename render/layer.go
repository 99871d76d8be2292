package render

import (
	"github.com/GNOME/librsvg-sub001/geometry"
	"github.com/GNOME/librsvg-sub001/style"
	"github.com/GNOME/librsvg-sub001/tree"
)

// Effects bundles the pixel-level collaborators a discrete layer needs
// (spec.md §4.5): filter, mask, and clip are each optional — nil means
// "not referenced by this node," not "no-op the whole layer." They are
// supplied by the facade that wires the filter/mask/clip packages so this
// package stays free of any raster pixel-format dependency.
type Effects struct {
	ApplyFilter     func(ref string, layer LayerDriver, bounds BBox) LayerDriver
	ApplyMask       func(ref string, defs *tree.Defs, layer LayerDriver, bounds BBox) LayerDriver
	ResolveClip     func(ref string, defs *tree.Defs, bounds BBox) (geometry.Path, bool)
	InstanceMarkers func(path geometry.Path, props style.Properties, defs *tree.Defs) []MarkerPlacement
}

// MarkerPlacement is one marker-start/-mid/-end instancing at a path
// vertex: the <marker> node to render and the transform to push before
// walking it (vertex translation, tangent-orientation rotation, and the
// markerUnits scale), mirroring the marker package's own Instance type
// without this package importing it.
type MarkerPlacement struct {
	Node      *tree.Node
	Transform geometry.Matrix2D
}

// compositeDiscreteLayer runs paint against a new offscreen layer and
// composites the result back into parent per filter -> opacity -> mask ->
// blend (spec.md §4.5's fixed order), when the Driver supports it.
func compositeDiscreteLayer(parent LayerDriver, defs *tree.Defs, props style.Properties, bounds BBox, eff Effects, paint func(Driver)) {
	layer := parent.NewLayer(bounds)
	paint(layer)

	effective := layer
	if props.Filter.IsSet && eff.ApplyFilter != nil {
		effective = eff.ApplyFilter(props.Filter.ID, effective, bounds)
	}
	// Opacity is folded into CompositeBack by the caller via props.Opacity;
	// the mask hook runs after the filter, per the fixed composite order.
	if props.Mask.IsSet && eff.ApplyMask != nil {
		effective = eff.ApplyMask(props.Mask.ID, defs, effective, bounds)
	}
	parent.CompositeBack(effective, props.Opacity, props.BlendMode, bounds)
}
