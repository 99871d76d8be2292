package render

import (
	"image/color"
	"testing"

	"github.com/GNOME/librsvg-sub001/geometry"
	"github.com/GNOME/librsvg-sub001/style"
	"github.com/stretchr/testify/require"
)

func TestWalkerResolvesLinearGradientFill(t *testing.T) {
	h := parseHandle(t, `<svg>
		<linearGradient id="g" x1="0" y1="0" x2="1" y2="0">
			<stop offset="0" stop-color="#ff0000"/>
			<stop offset="1" stop-color="#0000ff" stop-opacity="0.5"/>
		</linearGradient>
		<rect x="0" y="0" width="10" height="10" fill="url(#g)"/>
	</svg>`)
	w := NewWalker(h.Defs, h.Sheet)
	d := &fakeDriver{}
	w.Render(h.Root, geometry.Context{DPIx: 96, DPIy: 96, ViewportW: 100, ViewportH: 100}, d)

	require.NotNil(t, d.filler)
	g, ok := d.filler.color.(style.Gradient)
	require.True(t, ok, "fill should resolve to a style.Gradient, got %T", d.filler.color)
	require.Equal(t, style.Linear{0, 0, 1, 0}, g.Direction)
	require.Len(t, g.Stops, 2)
	require.Equal(t, color.NRGBA{R: 255, A: 255}, g.Stops[0].StopColor)
	require.Equal(t, color.NRGBA{B: 255, A: 128}, g.Stops[1].StopColor)
}

func TestWalkerUnresolvableGradientPaintsNothing(t *testing.T) {
	h := parseHandle(t, `<svg><rect x="0" y="0" width="10" height="10" fill="url(#missing)"/></svg>`)
	w := NewWalker(h.Defs, h.Sheet)
	d := &fakeDriver{}
	w.Render(h.Root, geometry.Context{DPIx: 96, DPIy: 96, ViewportW: 100, ViewportH: 100}, d)
	require.Nil(t, d.filler)
}

func TestWalkerGradientInheritsStopsViaHref(t *testing.T) {
	h := parseHandle(t, `<svg>
		<linearGradient id="base">
			<stop offset="0" stop-color="#00ff00"/>
			<stop offset="1" stop-color="#00ff00"/>
		</linearGradient>
		<linearGradient id="g" href="#base" x2="0" y2="1"/>
		<rect x="0" y="0" width="10" height="10" fill="url(#g)"/>
	</svg>`)
	w := NewWalker(h.Defs, h.Sheet)
	d := &fakeDriver{}
	w.Render(h.Root, geometry.Context{DPIx: 96, DPIy: 96, ViewportW: 100, ViewportH: 100}, d)

	g, ok := d.filler.color.(style.Gradient)
	require.True(t, ok)
	require.Equal(t, style.Linear{0, 0, 0, 1}, g.Direction)
	require.Len(t, g.Stops, 2)
}
