package style

import (
	"testing"

	"github.com/GNOME/librsvg-sub001/geometry"
	"github.com/stretchr/testify/require"
)

func TestCascadeMonotonicity(t *testing.T) {
	parent := Default
	parent.Fill = NewPlainColor(1, 2, 3, 255)
	child := Resolve(parent, Element{Tag: "g"}, Stylesheet{}, geometry.Context{})
	require.Equal(t, parent.Fill, child.Fill)
}

func TestCascadeClassRule(t *testing.T) {
	sheet, err := ParseStylesheet(".a { fill: blue }")
	require.NoError(t, err)
	el := Element{Tag: "rect", Classes: []string{"a"}}
	result := Resolve(Default, el, sheet, geometry.Context{})
	require.Equal(t, NewPlainColor(0, 0, 255, 255), result.Fill)
}

func TestCascadePresentationAttrOverridesCSS(t *testing.T) {
	sheet, err := ParseStylesheet("rect { fill: blue }")
	require.NoError(t, err)
	el := Element{
		Tag:   "rect",
		Attrs: []Declaration{{Property: "fill", Value: "red"}},
	}
	result := Resolve(Default, el, sheet, geometry.Context{})
	require.Equal(t, NewPlainColor(255, 0, 0, 255), result.Fill)
}

func TestCascadeImportantWins(t *testing.T) {
	sheet, err := ParseStylesheet("rect { fill: blue !important }")
	require.NoError(t, err)
	el := Element{
		Tag:   "rect",
		Attrs: []Declaration{{Property: "fill", Value: "red"}},
	}
	result := Resolve(Default, el, sheet, geometry.Context{})
	require.Equal(t, NewPlainColor(0, 0, 255, 255), result.Fill)
}

func TestOddDashArrayDuplicates(t *testing.T) {
	out := parseDashArray("1,2,3")
	require.Equal(t, []float64{1, 2, 3, 1, 2, 3}, out)
}
