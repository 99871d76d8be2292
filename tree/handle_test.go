package tree

import (
	"bytes"
	"compress/gzip"
	"testing"

	"github.com/stretchr/testify/require"
)

func parseString(t *testing.T, src string) *Handle {
	t.Helper()
	h := NewHandle()
	_, err := h.Write([]byte(src))
	require.NoError(t, err)
	require.NoError(t, h.Close())
	return h
}

func TestHandleParsesBasicTree(t *testing.T) {
	h := parseString(t, `<svg xmlns="http://www.w3.org/2000/svg"><g id="a"><rect id="r" fill="red" width="10" height="10"/></g></svg>`)
	require.Equal(t, StateClosedOk, h.State())
	require.Equal(t, KindSVG, h.Root.Kind)
	require.Len(t, h.Root.Children, 1)

	g, ok := h.Defs.Lookup("a")
	require.True(t, ok)
	require.Equal(t, KindGroup, g.Kind)

	r, ok := h.Defs.Lookup("r")
	require.True(t, ok)
	require.Equal(t, KindRect, r.Kind)
	require.Equal(t, "10", r.Attrs["width"])
	require.Len(t, r.PresentationAttrs, 1)
	require.Equal(t, "fill", r.PresentationAttrs[0].Property)
}

func TestHandleGzipInput(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte(`<svg><rect width="1" height="1"/></svg>`))
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	h := NewHandle()
	_, err = h.Write(buf.Bytes())
	require.NoError(t, err)
	require.NoError(t, h.Close())
	require.Equal(t, StateClosedOk, h.State())
	require.Equal(t, KindRect, h.Root.Children[0].Kind)
}

func TestHandleCollectsTitleText(t *testing.T) {
	h := parseString(t, `<svg><title>hello</title></svg>`)
	require.Equal(t, []string{"hello"}, h.Titles)
}

func TestHandleEmptyDocumentErrors(t *testing.T) {
	h := NewHandle()
	require.ErrorIs(t, h.Close(), ErrEmptyDocument)
}

func TestHandleStyleElementFeedsSheet(t *testing.T) {
	h := parseString(t, `<svg><style>.a { fill: blue }</style><rect class="a" width="1" height="1"/></svg>`)
	require.Len(t, h.Sheet.Rules, 1)
}

func TestHandleMultipleWrites(t *testing.T) {
	h := NewHandle()
	_, err := h.Write([]byte(`<svg><rect`))
	require.NoError(t, err)
	_, err = h.Write([]byte(` width="1" height="1"/></svg>`))
	require.NoError(t, err)
	require.NoError(t, h.Close())
	require.Equal(t, KindRect, h.Root.Children[0].Kind)
}
