package geoarray

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"github.com/hangxie/geocolumn/buffer"
	"github.com/hangxie/geocolumn/common"
)

func oneOfEach() []geom.T {
	s := samples()
	return []geom.T{
		s["point"].first,
		s["linestring"].first,
		s["polygon"].first,
		s["multipoint"].first,
		s["multilinestring"].first,
		s["multipolygon"].first,
	}
}

func Test_MixedGeometryArray_Dispatch(t *testing.T) {
	geoms := oneOfEach()
	arr, err := MixedGeometryArrayFromGeoms[int32](geoms)
	require.NoError(t, err)
	require.Equal(t, len(geoms), arr.Len())
	require.Equal(t, []int8{1, 2, 3, 4, 5, 6}, arr.TypeIDs())
	require.Equal(t, common.ExtensionNameGeometry, arr.ExtensionName())

	for i := range arr.Len() {
		v, err := arr.Value(i)
		require.NoError(t, err)
		require.Equal(t, common.GeometryType(arr.TypeIDs()[i]), v.GeometryType())
		requireGeomEqual(t, geoms[i], v.ToGeo())
	}
}

func Test_MixedGeometryArray_Nulls(t *testing.T) {
	ls := geom.NewLineStringFlat(geom.XY, []float64{0, 0, 1, 1})
	b := NewMixedGeometryArrayBuilder[int64](3)
	require.NoError(t, b.PushGeometry(ls))
	b.PushNull()
	require.NoError(t, b.PushGeometry(geom.NewPointFlat(geom.XY, []float64{4, 5})))
	arr := b.Build()

	require.Equal(t, 1, arr.NullCount())
	require.True(t, arr.IsNull(1))
	require.Equal(t, []int8{2, 1, 1}, arr.TypeIDs())
	require.Equal(t, []int32{0, 0, 1}, arr.Offsets())
	require.True(t, arr.Children().Points.IsNull(0))

	v, err := arr.Value(1)
	require.NoError(t, err)
	require.Nil(t, v)

	g, err := arr.ValueAsGeom(2)
	require.NoError(t, err)
	requireGeomEqual(t, geom.NewPointFlat(geom.XY, []float64{4, 5}), g)

	_, err = arr.Value(3)
	require.ErrorIs(t, err, common.ErrOutOfRange)
}

func Test_MixedGeometryArrayBuilder_TypedNil(t *testing.T) {
	b := NewMixedGeometryArrayBuilder[int32](3)
	require.NoError(t, b.PushGeometry((*geom.LineString)(nil)))
	require.NoError(t, b.PushGeometry(geom.NewPointFlat(geom.XY, []float64{1, 2})))
	require.NoError(t, b.PushGeometry((*geom.MultiPolygon)(nil)))
	arr := b.Build()

	require.Equal(t, 3, arr.Len())
	require.Equal(t, 2, arr.NullCount())
	require.True(t, arr.IsNull(0))
	require.True(t, arr.IsNull(2))
	require.Equal(t, []int8{1, 1, 1}, arr.TypeIDs())

	kind, err := NarrowestKind([]geom.T{(*geom.LineString)(nil), geom.NewPointFlat(geom.XY, []float64{1, 2})})
	require.NoError(t, err)
	require.Equal(t, common.GeometryTypePoint, kind)
}

func Test_NewMixedGeometryArray_Rejects(t *testing.T) {
	points, err := PointArrayFromGeoms([]geom.T{geom.NewPointFlat(geom.XY, []float64{1, 1}), nil})
	require.NoError(t, err)
	children := MixedChildren[int32]{Points: points}

	testCases := map[string]struct {
		typeIDs []int8
		offsets []int32
		nulls   *buffer.NullBuffer
		errIs   error
		errMsg  string
	}{
		"length-mismatch": {[]int8{1}, []int32{0, 1}, nil, common.ErrMalformedBuffer, "1 type ids and 2 offsets"},
		"unknown-id":      {[]int8{7}, []int32{0}, nil, common.ErrUnknownGeometryType, "geometry type id 7"},
		"missing-arm":     {[]int8{3}, []int32{0}, nil, common.ErrMissingUnionArm, "row 0 references Polygon"},
		"child-bounds":    {[]int8{1}, []int32{2}, nil, common.ErrMalformedBuffer, "offset 2 outside Point child of 2 rows"},
		"null-on-valid": {
			[]int8{1}, []int32{0}, buffer.NewNullBufferFromBools([]bool{false}),
			common.ErrMalformedBuffer, "null row 0 points at a valid Point slot",
		},
		"nulls-length": {
			[]int8{1, 1}, []int32{0, 1}, buffer.NewNullBufferFromBools([]bool{false}),
			common.ErrMalformedBuffer, "covers 1 rows, array has 2",
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := NewMixedGeometryArray(tc.typeIDs, tc.offsets, tc.nulls, children)
			require.ErrorIs(t, err, tc.errIs)
			require.Contains(t, err.Error(), tc.errMsg)
		})
	}

	arr, err := NewMixedGeometryArray([]int8{1, 1}, []int32{0, 1}, buffer.NewNullBufferFromBools([]bool{true, false}), children)
	require.NoError(t, err)
	require.Equal(t, 1, arr.NullCount())
}

func Test_MixedGeometryArray_CorruptDispatch(t *testing.T) {
	// bypass the constructor to reach the read path checks
	points, err := PointArrayFromGeoms([]geom.T{geom.NewPointFlat(geom.XY, []float64{1, 1})})
	require.NoError(t, err)
	arr := &MixedGeometryArray[int32]{
		arrayBase: arrayBase{length: 2},
		typeIDs:   []int8{6, 0},
		offsets:   []int32{0, 0},
		children:  MixedChildren[int32]{Points: points},
	}

	_, err = arr.Value(0)
	require.ErrorIs(t, err, common.ErrMissingUnionArm)
	_, err = arr.Value(1)
	require.ErrorIs(t, err, common.ErrUnknownGeometryType)
	_, err = ToGeoms(arr)
	require.ErrorIs(t, err, common.ErrMissingUnionArm)
}
