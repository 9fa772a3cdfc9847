package compute

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"github.com/hangxie/geocolumn/common"
	"github.com/hangxie/geocolumn/types"
	"github.com/hangxie/geocolumn/wkb"
)

func Test_MakeEnvelope(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer mem.AssertSize(t, 0)

	boxes := types.BuildBox2DArray(mem, []*types.Box2D{
		{MinX: 10, MinY: 10, MaxX: 11, MaxY: 12},
		nil,
		{MinX: -1, MinY: -1, MaxX: -1, MaxY: -1},
	})
	defer boxes.Release()

	arr, err := MakeEnvelope[int32](boxes)
	require.NoError(t, err)
	require.Equal(t, 3, arr.Len())
	require.True(t, arr.IsNull(1))

	g, err := arr.ValueAsGeom(0)
	require.NoError(t, err)
	requireGeomEqual(t, geom.NewPolygonFlat(geom.XY,
		[]float64{10, 10, 10, 12, 11, 12, 11, 10, 10, 10}, []int{10}), g)

	// the envelope's own extent is the box it came from
	box, ok := types.BoundsOf(g)
	require.True(t, ok)
	require.Equal(t, types.Box2D{MinX: 10, MinY: 10, MaxX: 11, MaxY: 12}, box)

	blobs, err := MakeEnvelopeWKB[int32](wkb.DialectEWKB, boxes, 4236)
	require.NoError(t, err)
	require.Equal(t, 1, blobs.NullCount())
	v, err := blobs.Value(2)
	require.NoError(t, err)
	srid, err := v.SRID()
	require.NoError(t, err)
	require.Equal(t, 4236, srid)

	_, err = MakeEnvelopeWKB[int32](wkb.Dialect(0), boxes, 0)
	require.ErrorIs(t, err, common.ErrUnknownDialect)
}
