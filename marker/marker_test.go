package marker_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/GNOME/librsvg-sub001/geometry"
	"github.com/GNOME/librsvg-sub001/marker"
	"github.com/GNOME/librsvg-sub001/style"
	"github.com/GNOME/librsvg-sub001/tree"
)

func TestInstancesPlacesStartMidEnd(t *testing.T) {
	h := tree.NewHandle()
	_, err := h.Write([]byte(`<svg><marker id="m"><circle r="1"/></marker></svg>`))
	require.NoError(t, err)
	require.NoError(t, h.Close())

	path := geometry.Path{
		{Kind: geometry.SegMoveTo, To: geometry.Point{X: 0, Y: 0}},
		{Kind: geometry.SegLineTo, To: geometry.Point{X: 10, Y: 0}},
		{Kind: geometry.SegLineTo, To: geometry.Point{X: 10, Y: 10}},
	}
	props := style.Default
	props.MarkerStart = style.Reference{ID: "m", IsSet: true}
	props.MarkerMid = style.Reference{ID: "m", IsSet: true}
	props.MarkerEnd = style.Reference{ID: "m", IsSet: true}

	instances := marker.Instances(path, props, h.Defs, 1)
	require.Len(t, instances, 3)
	require.Equal(t, 0.0, instances[0].Transform.E)
	require.Equal(t, 10.0, instances[2].Transform.E)
}
