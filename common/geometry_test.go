package common

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
)

func Test_GeometryTypeIDs(t *testing.T) {
	// ids are a wire contract shared with WKB codes and union type codes
	testCases := map[string]struct {
		typ           GeometryType
		id            int8
		name          string
		extensionName string
	}{
		"point":           {GeometryTypePoint, 1, "Point", "geoarrow.point"},
		"linestring":      {GeometryTypeLineString, 2, "LineString", "geoarrow.linestring"},
		"polygon":         {GeometryTypePolygon, 3, "Polygon", "geoarrow.polygon"},
		"multipoint":      {GeometryTypeMultiPoint, 4, "MultiPoint", "geoarrow.multipoint"},
		"multilinestring": {GeometryTypeMultiLineString, 5, "MultiLineString", "geoarrow.multilinestring"},
		"multipolygon":    {GeometryTypeMultiPolygon, 6, "MultiPolygon", "geoarrow.multipolygon"},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tc.id, int8(tc.typ))
			require.Equal(t, tc.name, tc.typ.String())
			require.Equal(t, tc.extensionName, tc.typ.ExtensionName())
			parsed, err := ParseGeometryType(tc.id)
			require.NoError(t, err)
			require.Equal(t, tc.typ, parsed)
		})
	}
	require.Equal(t, "geoarrow.geometry", GeometryTypeMixed.ExtensionName())
}

func Test_ParseGeometryType_Unknown(t *testing.T) {
	for _, id := range []int8{0, 7, 8, -1, 100} {
		_, err := ParseGeometryType(id)
		require.ErrorIs(t, err, ErrUnknownGeometryType)
	}
	require.Equal(t, "GeometryType(42)", GeometryType(42).String())
	require.Equal(t, "", GeometryType(42).ExtensionName())
}

func Test_GeometryTypeOf(t *testing.T) {
	testCases := map[string]struct {
		g        geom.T
		expected GeometryType
		errMsg   string
	}{
		"point":      {geom.NewPointFlat(geom.XY, []float64{1, 2}), GeometryTypePoint, ""},
		"linestring": {geom.NewLineStringFlat(geom.XY, []float64{0, 0, 1, 1}), GeometryTypeLineString, ""},
		"polygon":    {geom.NewPolygon(geom.XY), GeometryTypePolygon, ""},
		"multipoint": {geom.NewMultiPoint(geom.XY), GeometryTypeMultiPoint, ""},
		"multiline":  {geom.NewMultiLineString(geom.XY), GeometryTypeMultiLineString, ""},
		"multipoly":  {geom.NewMultiPolygon(geom.XY), GeometryTypeMultiPolygon, ""},
		"collection": {geom.NewGeometryCollection(), 0, "unsupported geometry *geom.GeometryCollection"},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			actual, err := GeometryTypeOf(tc.g)
			if tc.errMsg == "" {
				require.NoError(t, err)
				require.Equal(t, tc.expected, actual)
				return
			}
			require.ErrorIs(t, err, ErrShapeMismatch)
			require.Contains(t, err.Error(), tc.errMsg)
		})
	}
}

func Test_IsNilGeometry(t *testing.T) {
	testCases := map[string]struct {
		g        geom.T
		expected bool
	}{
		"untyped":         {nil, true},
		"point":           {(*geom.Point)(nil), true},
		"linestring":      {(*geom.LineString)(nil), true},
		"polygon":         {(*geom.Polygon)(nil), true},
		"multipoint":      {(*geom.MultiPoint)(nil), true},
		"multilinestring": {(*geom.MultiLineString)(nil), true},
		"multipolygon":    {(*geom.MultiPolygon)(nil), true},
		"empty-point":     {geom.NewPointEmpty(geom.XY), false},
		"collection":      {geom.NewGeometryCollection(), false},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tc.expected, IsNilGeometry(tc.g))
		})
	}
}

func Test_CloneGeometry(t *testing.T) {
	line := geom.NewLineStringFlat(geom.XY, []float64{0, 0, 1, 1}).SetSRID(4326)
	clone, err := CloneGeometry(line)
	require.NoError(t, err)
	require.Equal(t, 4326, clone.SRID())
	clone.FlatCoords()[0] = 9
	require.Equal(t, 0.0, line.FlatCoords()[0])

	_, err = CloneGeometry(geom.NewGeometryCollection())
	require.ErrorIs(t, err, ErrShapeMismatch)
}
