package render

import (
	"testing"

	"github.com/GNOME/librsvg-sub001/geometry"
	"github.com/GNOME/librsvg-sub001/style"
	"github.com/GNOME/librsvg-sub001/tree"
	"github.com/stretchr/testify/require"
)

type fakeDrawer struct {
	calls  []string
	color  style.Paint
	opac   float64
	drawn  bool
}

func (f *fakeDrawer) Clear()                 { f.calls = append(f.calls, "clear") }
func (f *fakeDrawer) Start(a geometry.Point) { f.calls = append(f.calls, "start") }
func (f *fakeDrawer) Line(b geometry.Point)  { f.calls = append(f.calls, "line") }
func (f *fakeDrawer) CubeBezier(b, c, d geometry.Point) { f.calls = append(f.calls, "cube") }
func (f *fakeDrawer) Stop(closeLoop bool)    { f.calls = append(f.calls, "stop") }
func (f *fakeDrawer) SetColor(p style.Paint, opacity float64) {
	f.color, f.opac = p, opacity
}
func (f *fakeDrawer) Draw() { f.drawn = true }

type fakeFiller struct {
	fakeDrawer
	nonZero bool
}

func (f *fakeFiller) SetWinding(v bool) { f.nonZero = v }

type fakeDriver struct {
	filler *fakeFiller
}

func (d *fakeDriver) SetupDrawers(willFill, willStroke bool) (Filler, Stroker) {
	var f Filler
	if willFill {
		d.filler = &fakeFiller{}
		f = d.filler
	}
	return f, nil
}

func parseHandle(t *testing.T, src string) *tree.Handle {
	t.Helper()
	h := tree.NewHandle()
	_, err := h.Write([]byte(src))
	require.NoError(t, err)
	require.NoError(t, h.Close())
	return h
}

func TestWalkerPaintsSolidRect(t *testing.T) {
	h := parseHandle(t, `<svg><rect x="0" y="0" width="10" height="10" fill="red"/></svg>`)
	w := NewWalker(h.Defs, h.Sheet)
	d := &fakeDriver{}
	bbox := w.Render(h.Root, geometry.Context{DPIx: 96, DPIy: 96, ViewportW: 100, ViewportH: 100}, d)

	require.False(t, bbox.IsEmpty())
	require.NotNil(t, d.filler)
	require.True(t, d.filler.drawn)
	require.Equal(t, style.NewPlainColor(255, 0, 0, 255), d.filler.color)
	require.InDelta(t, 1.0, d.filler.opac, 1e-9)
}

func TestWalkerHonorsOpacity(t *testing.T) {
	h := parseHandle(t, `<svg><rect x="0" y="0" width="10" height="10" fill="red" opacity="0.5"/></svg>`)
	w := NewWalker(h.Defs, h.Sheet)
	d := &fakeDriver{}
	w.Render(h.Root, geometry.Context{DPIx: 96, DPIy: 96, ViewportW: 100, ViewportH: 100}, d)
	require.InDelta(t, 0.5, d.filler.opac, 1e-9)
}

func TestWalkerResolvesUse(t *testing.T) {
	h := parseHandle(t, `<svg><rect id="r" x="0" y="0" width="5" height="5" fill="blue"/><use href="#r"/></svg>`)
	w := NewWalker(h.Defs, h.Sheet)
	d := &fakeDriver{}
	bbox := w.Render(h.Root, geometry.Context{DPIx: 96, DPIy: 96, ViewportW: 100, ViewportH: 100}, d)
	require.False(t, bbox.IsEmpty())
	require.Equal(t, style.NewPlainColor(0, 0, 255, 255), d.filler.color)
}
