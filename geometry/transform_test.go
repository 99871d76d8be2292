package geometry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTransformRoundTrip(t *testing.T) {
	cases := []string{
		"translate(10,20)",
		"scale(2,3)",
		"rotate(45)",
		"rotate(30 5 5)",
		"skewX(10) skewY(5)",
		"matrix(1,0,0,1,5,5)",
		"translate(1 2) scale(2) rotate(90)",
	}
	for _, c := range cases {
		m, err := ParseTransformList(c, Identity)
		require.NoError(t, err, c)
		round := m.Mult(m.Invert())
		const eps = 1e-9
		require.InDelta(t, 1.0, round.A, eps, c)
		require.InDelta(t, 0.0, round.B, eps, c)
		require.InDelta(t, 0.0, round.C, eps, c)
		require.InDelta(t, 1.0, round.D, eps, c)
		require.InDelta(t, 0.0, round.E, eps, c)
		require.InDelta(t, 0.0, round.F, eps, c)
	}
}

func TestTransformDefaults(t *testing.T) {
	m, err := ParseTransformList("translate(5)", Identity)
	require.NoError(t, err)
	x, y := m.TransformPoint(0, 0)
	require.Equal(t, 5.0, x)
	require.Equal(t, 0.0, y)

	m, err = ParseTransformList("scale(2)", Identity)
	require.NoError(t, err)
	x, y = m.TransformPoint(3, 4)
	require.Equal(t, 6.0, x)
	require.Equal(t, 8.0, y)
}

func TestTransformMalformed(t *testing.T) {
	_, err := ParseTransformList("translate(1,2,3)", Identity)
	require.ErrorIs(t, err, ErrBadTransform)
}
