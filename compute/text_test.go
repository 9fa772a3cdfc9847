package compute

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"github.com/hangxie/geocolumn/common"
	"github.com/hangxie/geocolumn/geoarray"
	"github.com/hangxie/geocolumn/wkb"
)

func stringColumn(mem memory.Allocator, values []string, valid []bool) *array.String {
	b := array.NewStringBuilder(mem)
	defer b.Release()
	b.AppendValues(values, valid)
	return b.NewStringArray()
}

func Test_AsText(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer mem.AssertSize(t, 0)

	points, err := geoarray.PointArrayFromGeoms([]geom.T{
		geom.NewPointFlat(geom.XY, []float64{1, 2.5}), nil, geom.NewPointEmpty(geom.XY),
	})
	require.NoError(t, err)
	out, err := AsText(mem, points)
	require.NoError(t, err)
	defer out.Release()
	require.Equal(t, 3, out.Len())
	require.Equal(t, "POINT (1 2.5)", out.Value(0))
	require.True(t, out.IsNull(1))
	require.Equal(t, "POINT EMPTY", out.Value(2))

	poly := geom.NewPolygonFlat(geom.XY, []float64{0, 0, 4, 0, 4, 4, 0, 0}, []int{8}).SetSRID(4326)
	blobs, err := wkb.ArrayFromGeoms[int32](wkb.DialectEWKB, []geom.T{poly, nil})
	require.NoError(t, err)

	plain, err := AsText(mem, blobs)
	require.NoError(t, err)
	defer plain.Release()
	require.Equal(t, "POLYGON ((0 0, 4 0, 4 4, 0 0))", plain.Value(0))
	require.True(t, plain.IsNull(1))

	ewkt, err := AsEWKT(mem, blobs)
	require.NoError(t, err)
	defer ewkt.Release()
	require.Equal(t, "SRID=4326;POLYGON ((0 0, 4 0, 4 4, 0 0))", ewkt.Value(0))

	// no SRID, no prefix
	bare, err := AsEWKT(mem, points)
	require.NoError(t, err)
	defer bare.Release()
	require.Equal(t, "POINT (1 2.5)", bare.Value(0))
}

func Test_ParseText(t *testing.T) {
	testCases := map[string]struct {
		text     string
		expected geom.T
		srid     int
		errMsg   string
	}{
		"point":      {"POINT (1 2)", geom.NewPointFlat(geom.XY, []float64{1, 2}), 0, ""},
		"ewkt":       {"SRID=4269;POINT(-71.064544 42.28787)", geom.NewPointFlat(geom.XY, []float64{-71.064544, 42.28787}), 4269, ""},
		"lower-srid": {" srid=3857 ; LINESTRING (0 0, 1 1)", geom.NewLineStringFlat(geom.XY, []float64{0, 0, 1, 1}), 3857, ""},
		"no-semi":    {"SRID=4326 POINT (1 2)", nil, 0, "without ';'"},
		"bad-srid":   {"SRID=abc;POINT (1 2)", nil, 0, `EWKT SRID "abc"`},
		"bad-wkt":    {"POINT (1", nil, 0, "WKT"},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			g, err := ParseText(tc.text)
			if tc.errMsg != "" {
				require.ErrorIs(t, err, common.ErrDecode)
				require.Contains(t, err.Error(), tc.errMsg)
				return
			}
			require.NoError(t, err)
			requireGeomEqual(t, tc.expected, g)
			require.Equal(t, tc.srid, g.SRID())
		})
	}
}

func Test_FromText(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer mem.AssertSize(t, 0)

	texts := stringColumn(mem,
		[]string{"LINESTRING (0 0, 1 1)", "", "SRID=4326;LINESTRING (2 2, 3 3, 4 4)"},
		[]bool{true, false, true})
	defer texts.Release()

	arr, err := FromText[int32](texts)
	require.NoError(t, err)
	require.Equal(t, common.GeometryTypeLineString, arr.GeometryType())
	require.Equal(t, 3, arr.Len())
	require.True(t, arr.IsNull(1))
	g, err := arr.ValueAsGeom(2)
	require.NoError(t, err)
	requireGeomEqual(t, geom.NewLineStringFlat(geom.XY, []float64{2, 2, 3, 3, 4, 4}), g)

	blobs, err := FromTextWKB[int64](wkb.DialectGeoPackage, texts)
	require.NoError(t, err)
	require.Equal(t, 1, blobs.NullCount())
	v, err := blobs.Value(2)
	require.NoError(t, err)
	srid, err := v.SRID()
	require.NoError(t, err)
	require.Equal(t, 4326, srid)

	// text survives a render and parse cycle
	rendered, err := AsEWKT(mem, blobs)
	require.NoError(t, err)
	defer rendered.Release()
	back, err := FromTextWKB[int64](wkb.DialectGeoPackage, rendered)
	require.NoError(t, err)
	want, err := blobs.ToGeoms()
	require.NoError(t, err)
	got, err := back.ToGeoms()
	require.NoError(t, err)
	for i := range want {
		requireGeomEqual(t, want[i], got[i])
	}

	mixed := stringColumn(mem, []string{"POINT (1 2)", "POLYGON ((0 0, 1 0, 1 1, 0 0))"}, nil)
	defer mixed.Release()
	m, err := FromText[int32](mixed)
	require.NoError(t, err)
	require.Equal(t, common.GeometryTypeMixed, m.GeometryType())

	bad := stringColumn(mem, []string{"POINT (1 2)", "CIRCLE (0 0)"}, nil)
	defer bad.Release()
	_, err = FromText[int32](bad)
	require.ErrorIs(t, err, common.ErrDecode)
	require.Contains(t, err.Error(), "row 1")

	collection := stringColumn(mem, []string{"GEOMETRYCOLLECTION (POINT (1 2))"}, nil)
	defer collection.Release()
	_, err = FromText[int32](collection)
	require.ErrorIs(t, err, common.ErrShapeMismatch)
}
