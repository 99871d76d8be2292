package geometry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveLengthPercent(t *testing.T) {
	c := Context{DPIx: 96, DPIy: 96, ViewportW: 200, ViewportH: 100}
	w, err := c.ResolveLength("50%", RefWidth)
	require.NoError(t, err)
	require.Equal(t, 100.0, w)

	h, err := c.ResolveLength("50%", RefHeight)
	require.NoError(t, err)
	require.Equal(t, 50.0, h)
}

func TestResolveLengthEm(t *testing.T) {
	c := Context{DPIx: 96, DPIy: 96, FontSizePx: 16}
	v, err := c.ResolveLength("2em", RefWidth)
	require.NoError(t, err)
	require.Equal(t, 32.0, v)
}

func TestResolveLengthPhysical(t *testing.T) {
	c := Context{DPIx: 96, DPIy: 96}
	v, err := c.ResolveLength("1in", RefWidth)
	require.NoError(t, err)
	require.Equal(t, 96.0, v)
}
