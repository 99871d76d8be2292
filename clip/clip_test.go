package clip_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/GNOME/librsvg-sub001/clip"
	"github.com/GNOME/librsvg-sub001/geometry"
	"github.com/GNOME/librsvg-sub001/tree"
)

func TestResolveConcatenatesClipPathChildren(t *testing.T) {
	h := tree.NewHandle()
	_, err := h.Write([]byte(`<svg><clipPath id="c"><rect width="10" height="10"/></clipPath></svg>`))
	require.NoError(t, err)
	require.NoError(t, h.Close())

	ctx := geometry.Context{DPIx: 96, DPIy: 96, ViewportW: 100, ViewportH: 100}
	path, ok := clip.Resolve("c", h.Defs, ctx)
	require.True(t, ok)
	require.NotEmpty(t, path)
}

func TestResolveMissingReferenceReturnsFalse(t *testing.T) {
	h := tree.NewHandle()
	_, err := h.Write([]byte(`<svg/>`))
	require.NoError(t, err)
	require.NoError(t, h.Close())

	ctx := geometry.Context{DPIx: 96, DPIy: 96}
	_, ok := clip.Resolve("missing", h.Defs, ctx)
	require.False(t, ok)
}
