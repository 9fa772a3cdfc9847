package compute

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/twpayne/go-geom"

	"github.com/hangxie/geocolumn/common"
	"github.com/hangxie/geocolumn/geoarray"
	"github.com/hangxie/geocolumn/types"
)

// IntersectsBox returns the ids of the rows whose bounding box intersects
// box. It is a candidate filter; callers needing exact predicates refine
// the result.
func IntersectsBox(arr geoarray.GeometryArray, box types.Box2D) (*roaring.Bitmap, error) {
	boxes, err := Boxes(arr)
	if err != nil {
		return nil, err
	}
	hits := roaring.New()
	for i, b := range boxes {
		if b != nil && b.Intersects(box) {
			hits.Add(uint32(i))
		}
	}
	return hits, nil
}

// Take builds a new array of the same kind from the rows in ids, in
// ascending id order.
func Take[O common.Offset](arr geoarray.GeometryArray, ids *roaring.Bitmap) (geoarray.GeometryArray, error) {
	geoms := make([]geom.T, 0, ids.GetCardinality())
	it := ids.Iterator()
	for it.HasNext() {
		i := int(it.Next())
		if i >= arr.Len() {
			return nil, fmt.Errorf("row id %d of %d: %w", i, arr.Len(), common.ErrOutOfRange)
		}
		g, err := arr.ValueAsGeom(i)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		geoms = append(geoms, g)
	}
	return geoarray.BuildFromGeoms[O](arr.GeometryType(), geoms)
}
