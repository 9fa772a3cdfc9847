package compute

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/twpayne/go-geom"

	"github.com/hangxie/geocolumn/common"
	"github.com/hangxie/geocolumn/geoarray"
	"github.com/hangxie/geocolumn/types"
	"github.com/hangxie/geocolumn/wkb"
)

// EnvelopePolygon returns the closed rectangle of box, starting at
// (MinX, MinY) and going through (MinX, MaxY).
func EnvelopePolygon(box types.Box2D) *geom.Polygon {
	return geom.NewPolygonFlat(geom.XY, []float64{
		box.MinX, box.MinY,
		box.MinX, box.MaxY,
		box.MaxX, box.MaxY,
		box.MaxX, box.MinY,
		box.MinX, box.MinY,
	}, []int{10})
}

func envelopes(boxes *array.Struct, srid int) ([]geom.T, error) {
	geoms := make([]geom.T, boxes.Len())
	for i := range boxes.Len() {
		box, err := types.Box2DValue(boxes, i)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if box != nil {
			geoms[i] = EnvelopePolygon(*box).SetSRID(srid)
		}
	}
	return geoms, nil
}

// MakeEnvelope turns a box column, as built by types.BuildBox2DArray, into a
// polygon column; null boxes become null rows.
func MakeEnvelope[O common.Offset](boxes *array.Struct) (*geoarray.PolygonArray[O], error) {
	geoms, err := envelopes(boxes, 0)
	if err != nil {
		return nil, err
	}
	return geoarray.PolygonArrayFromGeoms[O](geoms)
}

// MakeEnvelopeWKB is MakeEnvelope producing blobs of dialect d, with srid
// written into the dialects that carry one.
func MakeEnvelopeWKB[O common.Offset](d wkb.Dialect, boxes *array.Struct, srid int) (*wkb.Array[O], error) {
	geoms, err := envelopes(boxes, srid)
	if err != nil {
		return nil, err
	}
	return wkb.ArrayFromGeoms[O](d, geoms)
}
