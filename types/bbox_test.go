package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
)

func Test_BoundingBoxCalculator(t *testing.T) {
	b := NewBoundingBoxCalculator()
	_, _, _, _, ok := b.GetBounds()
	require.False(t, ok)

	b.AddPoint(math.NaN(), math.NaN())
	_, ok = b.Box()
	require.False(t, ok)

	b.AddPoint(1, 2)
	b.AddFlat([]float64{-1, 5, 0, 3, 4, -2, 9}, 3)
	minX, minY, maxX, maxY, ok := b.GetBounds()
	require.True(t, ok)
	require.Equal(t, []float64{-1, 2, 3, 5}, []float64{minX, minY, maxX, maxY})

	b.AddBox(Box2D{MinX: -3, MinY: 0, MaxX: 0, MaxY: 8})
	box, ok := b.Box()
	require.True(t, ok)
	require.Equal(t, Box2D{MinX: -3, MinY: 0, MaxX: 3, MaxY: 8}, box)
}

func Test_BoundsOf(t *testing.T) {
	testCases := map[string]struct {
		g        geom.T
		expected Box2D
		ok       bool
	}{
		"nil":         {nil, Box2D{}, false},
		"empty-point": {geom.NewPointEmpty(geom.XY), Box2D{}, false},
		"point":       {geom.NewPointFlat(geom.XY, []float64{3, 4}), Box2D{3, 4, 3, 4}, true},
		"xyz-line":    {geom.NewLineStringFlat(geom.XYZ, []float64{0, 0, 100, 2, -1, -100}), Box2D{0, -1, 2, 0}, true},
		"multipoint-with-empty": {
			geom.NewMultiPointFlat(geom.XY, []float64{1, 1, math.NaN(), math.NaN(), 5, -5}),
			Box2D{1, -5, 5, 1}, true,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			box, ok := BoundsOf(tc.g)
			require.Equal(t, tc.ok, ok)
			require.Equal(t, tc.expected, box)
		})
	}
}

func Test_Box2D_Intersects(t *testing.T) {
	unit := Box2D{0, 0, 1, 1}
	testCases := map[string]struct {
		other    Box2D
		expected bool
	}{
		"overlap":  {Box2D{0.5, 0.5, 2, 2}, true},
		"touching": {Box2D{1, 0, 2, 1}, true},
		"inside":   {Box2D{0.2, 0.2, 0.4, 0.4}, true},
		"left":     {Box2D{-2, 0, -1, 1}, false},
		"above":    {Box2D{0, 1.5, 1, 2}, false},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tc.expected, unit.Intersects(tc.other))
			require.Equal(t, tc.expected, tc.other.Intersects(unit))
		})
	}

	require.True(t, unit.Contains(1, 0))
	require.False(t, unit.Contains(1.1, 0))
}
