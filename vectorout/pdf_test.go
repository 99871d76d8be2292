package vectorout

import (
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/require"

	"github.com/GNOME/librsvg-sub001/geometry"
	"github.com/GNOME/librsvg-sub001/render"
	"github.com/GNOME/librsvg-sub001/tree"
)

func TestRenderRectToPDFProducesNoError(t *testing.T) {
	h := tree.NewHandle()
	_, err := h.Write([]byte(`<svg><rect x="1" y="1" width="5" height="5" fill="blue"/></svg>`))
	require.NoError(t, err)
	require.NoError(t, h.Close())

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.AddPage()
	r := NewRenderer(pdf)
	w := render.NewWalker(h.Defs, h.Sheet)
	w.Render(h.Root, geometry.Context{DPIx: 72, DPIy: 72, ViewportW: 100, ViewportH: 100}, r)

	require.NoError(t, pdf.Error())
}
