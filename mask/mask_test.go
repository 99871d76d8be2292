package mask_test

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/GNOME/librsvg-sub001/geometry"
	"github.com/GNOME/librsvg-sub001/mask"
	"github.com/GNOME/librsvg-sub001/raster"
	"github.com/GNOME/librsvg-sub001/render"
	"github.com/GNOME/librsvg-sub001/tree"
)

func TestApplyScalesAlphaByLuminance(t *testing.T) {
	h := tree.NewHandle()
	_, err := h.Write([]byte(`<svg><mask id="m"><rect width="10" height="10" fill="white"/></mask></svg>`))
	require.NoError(t, err)
	require.NoError(t, h.Close())

	maskNode, ok := h.Defs.Lookup("m")
	require.True(t, ok)

	r := raster.NewRenderer(10, 10)
	ctx := geometry.Context{DPIx: 96, DPIy: 96, ViewportW: 10, ViewportH: 10}
	r.Image.SetRGBA(5, 5, color.RGBA{R: 255, A: 255})

	out := mask.Apply(maskNode, h.Defs, h.Sheet, ctx, render.Effects{}, r, render.BBox{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10})
	require.NotNil(t, out)
	// A white mask has luminance 1, so the pixel keeps its full alpha.
	require.Equal(t, uint8(255), r.Image.RGBAAt(5, 5).A)
}
