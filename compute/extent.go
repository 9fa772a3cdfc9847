package compute

import (
	"context"

	"github.com/hangxie/geocolumn/common"
	"github.com/hangxie/geocolumn/geoarray"
	"github.com/hangxie/geocolumn/types"
	"github.com/hangxie/geocolumn/wkb"
)

// Boxes returns the bounding box of every row of a typed or mixed array,
// read straight from the coordinate windows. Null and empty rows get nil.
func Boxes(arr geoarray.GeometryArray) ([]*types.Box2D, error) {
	out := make([]*types.Box2D, arr.Len())
	for i := range arr.Len() {
		g, err := arr.Geometry(i)
		if err != nil {
			return nil, err
		}
		if g == nil {
			continue
		}
		b := types.NewBoundingBoxCalculator()
		b.AddFlat(g.Coords().Values(), 2)
		if box, ok := b.Box(); ok {
			out[i] = &box
		}
	}
	return out, nil
}

// Extent returns the bounds of all valid rows, false when there are no
// coordinates at all.
func Extent(arr geoarray.GeometryArray) (types.Box2D, bool, error) {
	b := types.NewBoundingBoxCalculator()
	for i := range arr.Len() {
		g, err := arr.Geometry(i)
		if err != nil {
			return types.Box2D{}, false, err
		}
		if g != nil {
			b.AddFlat(g.Coords().Values(), 2)
		}
	}
	box, ok := b.Box()
	return box, ok, nil
}

// BoxesWKB decodes every row of a blob array and returns its bounds.
func BoxesWKB[O common.Offset](ctx context.Context, arr *wkb.Array[O], opts Options) ([]*types.Box2D, error) {
	return Map(ctx, arr.Len(), opts, func(i int) (*types.Box2D, error) {
		g, err := arr.ValueAsGeom(i)
		if err != nil || g == nil {
			return nil, err
		}
		box, ok := types.BoundsOf(g)
		if !ok {
			return nil, nil
		}
		return &box, nil
	})
}

// ExtentWKB merges the row bounds of a blob array.
func ExtentWKB[O common.Offset](ctx context.Context, arr *wkb.Array[O], opts Options) (types.Box2D, bool, error) {
	boxes, err := BoxesWKB(ctx, arr, opts)
	if err != nil {
		return types.Box2D{}, false, err
	}
	b := types.NewBoundingBoxCalculator()
	for _, box := range boxes {
		if box != nil {
			b.AddBox(*box)
		}
	}
	box, ok := b.Box()
	return box, ok, nil
}
