package librsvg_test

import (
	"bytes"
	"compress/gzip"
	"testing"

	"github.com/stretchr/testify/require"

	librsvg "github.com/GNOME/librsvg-sub001"
)

func render(t *testing.T, doc string) *librsvg.Handle {
	t.Helper()
	h := librsvg.NewHandle()
	_, err := h.Write([]byte(doc))
	require.NoError(t, err)
	require.NoError(t, h.Close())
	return h
}

func TestRenderToPixbufSolidRect(t *testing.T) {
	h := render(t, `<svg width="20" height="20"><rect width="20" height="20" fill="#ff0000"/></svg>`)
	img, err := h.RenderToPixbuf()
	require.NoError(t, err)
	r, g, b, a := img.RGBAAt(5, 5).R, img.RGBAAt(5, 5).G, img.RGBAAt(5, 5).B, img.RGBAAt(5, 5).A
	require.EqualValues(t, 255, r)
	require.EqualValues(t, 0, g)
	require.EqualValues(t, 0, b)
	require.EqualValues(t, 255, a)
}

func TestRenderToPixbufPathEqualsRect(t *testing.T) {
	rectH := render(t, `<svg width="10" height="10"><rect x="0" y="0" width="10" height="10" fill="#00ff00"/></svg>`)
	pathH := render(t, `<svg width="10" height="10"><path d="M0 0 L10 0 L10 10 L0 10 Z" fill="#00ff00"/></svg>`)

	rectImg, err := rectH.RenderToPixbuf()
	require.NoError(t, err)
	pathImg, err := pathH.RenderToPixbuf()
	require.NoError(t, err)
	require.Equal(t, rectImg.RGBAAt(3, 3), pathImg.RGBAAt(3, 3))
}

func TestRenderToPixbufCSSClassCascade(t *testing.T) {
	h := render(t, `<svg width="10" height="10"><style>.a{fill:#0000ff}</style><rect class="a" width="10" height="10"/></svg>`)
	img, err := h.RenderToPixbuf()
	require.NoError(t, err)
	c := img.RGBAAt(5, 5)
	require.EqualValues(t, 0, c.R)
	require.EqualValues(t, 0, c.G)
	require.EqualValues(t, 255, c.B)
}

func TestWriteAcceptsGzipCompressedDocument(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte(`<svg width="4" height="4"><rect width="4" height="4" fill="#fff"/></svg>`))
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	h := librsvg.NewHandle()
	_, err = h.Write(buf.Bytes())
	require.NoError(t, err)
	require.NoError(t, h.Close())

	img, err := h.RenderToPixbuf()
	require.NoError(t, err)
	require.EqualValues(t, 255, img.RGBAAt(1, 1).R)
}

func TestDimensionsDefaultsTo100WhenUnspecified(t *testing.T) {
	h := render(t, `<svg><rect width="10" height="10"/></svg>`)
	w, hgt := h.Dimensions()
	require.Equal(t, 100.0, w)
	require.Equal(t, 100.0, hgt)
}

func TestTitlesAndDescriptionsCollected(t *testing.T) {
	h := render(t, `<svg><title>Example</title><desc>A description</desc><rect width="1" height="1"/></svg>`)
	require.Equal(t, []string{"Example"}, h.Titles())
	require.Equal(t, []string{"A description"}, h.Descriptions())
}
