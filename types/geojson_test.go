package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"github.com/hangxie/geocolumn/common"
)

func Test_roundCoordinate(t *testing.T) {
	orig := geoJSONCoordPrecision
	defer func() { geoJSONCoordPrecision = orig }()

	testCases := map[string]struct {
		precision int
		input     float64
		expected  float64
	}{
		"disabled_rounding":   {-1, 1.23456789, 1.23456789},
		"zero_precision":      {0, 1.23456789, 1.0},
		"default_precision_6": {6, 1.23456789, 1.234568},
		"negative_input":      {2, -1.236, -1.24},
		"zero_input":          {3, 0.0, 0.0},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			geoJSONCoordPrecision = tc.precision
			require.Equal(t, tc.expected, roundCoordinate(tc.input))
		})
	}
}

func decodeJSON(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func Test_GeoJSON(t *testing.T) {
	origFeature, origPrecision := geoJSONAsFeature, geoJSONCoordPrecision
	defer func() {
		geoJSONAsFeature, geoJSONCoordPrecision = origFeature, origPrecision
	}()

	p := geom.NewPointFlat(geom.XY, []float64{1.123456789, 2.987654321})

	SetGeoJSONAsFeature(false)
	SetGeoJSONCoordinatePrecision(2)
	data, err := GeoJSON(p)
	require.NoError(t, err)
	gj := decodeJSON(t, data)
	require.Equal(t, "Point", gj["type"])
	require.Equal(t, []any{1.12, 2.99}, gj["coordinates"])
	// the input is not modified
	require.Equal(t, 1.123456789, p.X())

	SetGeoJSONAsFeature(true)
	SetGeoJSONCoordinatePrecision(-1)
	data, err = GeoJSON(p)
	require.NoError(t, err)
	gj = decodeJSON(t, data)
	require.Equal(t, "Feature", gj["type"])
	require.Equal(t, map[string]any{}, gj["properties"])
	geometry := gj["geometry"].(map[string]any)
	require.Equal(t, []any{1.123456789, 2.987654321}, geometry["coordinates"])

	data, err = GeoJSON(nil)
	require.NoError(t, err)
	require.Equal(t, "null", string(data))
}

func Test_GeoJSON_Shapes(t *testing.T) {
	orig := geoJSONAsFeature
	defer func() { geoJSONAsFeature = orig }()
	SetGeoJSONAsFeature(false)

	testCases := map[string]struct {
		g        geom.T
		expected string
	}{
		"linestring": {geom.NewLineStringFlat(geom.XY, []float64{0, 0, 1, 1}), "LineString"},
		"polygon":    {geom.NewPolygonFlat(geom.XY, []float64{0, 0, 1, 0, 1, 1, 0, 0}, []int{8}), "Polygon"},
		"multipoint": {geom.NewMultiPointFlat(geom.XY, []float64{0, 0, 1, 1}), "MultiPoint"},
		"multilinestring": {
			geom.NewMultiLineStringFlat(geom.XY, []float64{0, 0, 1, 1}, []int{4}), "MultiLineString",
		},
		"multipolygon": {
			geom.NewMultiPolygonFlat(geom.XY, []float64{0, 0, 1, 0, 1, 1, 0, 0}, [][]int{{8}}), "MultiPolygon",
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			data, err := GeoJSON(tc.g)
			require.NoError(t, err)
			require.Equal(t, tc.expected, decodeJSON(t, data)["type"])
		})
	}

	_, err := GeoJSON(geom.NewGeometryCollection())
	require.ErrorIs(t, err, common.ErrShapeMismatch)
}
