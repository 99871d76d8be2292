package raster

import (
	"testing"

	"github.com/GNOME/librsvg-sub001/geometry"
	"github.com/GNOME/librsvg-sub001/render"
	"github.com/GNOME/librsvg-sub001/tree"
	"github.com/stretchr/testify/require"
)

func TestRenderSolidRectToImage(t *testing.T) {
	h := tree.NewHandle()
	_, err := h.Write([]byte(`<svg><rect x="2" y="2" width="6" height="6" fill="red"/></svg>`))
	require.NoError(t, err)
	require.NoError(t, h.Close())

	r := NewRenderer(10, 10)
	w := render.NewWalker(h.Defs, h.Sheet)
	w.Render(h.Root, geometry.Context{DPIx: 96, DPIy: 96, ViewportW: 10, ViewportH: 10}, r)

	c := r.Image.RGBAAt(5, 5)
	require.Equal(t, uint8(255), c.R)
	require.Equal(t, uint8(0), c.G)
	require.Equal(t, uint8(0), c.B)
	require.Equal(t, uint8(255), c.A)
}

func TestHalfOpacityRectPremultiplies(t *testing.T) {
	h := tree.NewHandle()
	_, err := h.Write([]byte(`<svg><rect x="0" y="0" width="10" height="10" fill="red" opacity="0.5"/></svg>`))
	require.NoError(t, err)
	require.NoError(t, h.Close())

	r := NewRenderer(10, 10)
	w := render.NewWalker(h.Defs, h.Sheet)
	w.Render(h.Root, geometry.Context{DPIx: 96, DPIy: 96, ViewportW: 10, ViewportH: 10}, r)

	c := r.Image.RGBAAt(5, 5)
	require.InDelta(t, 127, int(c.A), 2)
	require.InDelta(t, 127, int(c.R), 2) // premultiplied at the output-surface boundary
}
