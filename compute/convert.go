package compute

import (
	"context"
	"fmt"

	"github.com/hangxie/geocolumn/common"
	"github.com/hangxie/geocolumn/geoarray"
	"github.com/hangxie/geocolumn/wkb"
)

// ToWKB encodes a typed or mixed array as blobs of dialect d.
func ToWKB[O common.Offset](ctx context.Context, arr geoarray.GeometryArray, d wkb.Dialect, opts Options) (*wkb.Array[O], error) {
	if _, err := wkb.WKBTypeID(d); err != nil {
		return nil, err
	}
	payloads, err := Map(ctx, arr.Len(), opts, func(i int) ([]byte, error) {
		g, err := arr.ValueAsGeom(i)
		if err != nil || g == nil {
			return nil, err
		}
		return wkb.Encode(d, g)
	})
	if err != nil {
		return nil, err
	}
	return fromPayloads[O](d, payloads)
}

// FromWKB decodes a blob array into the narrowest typed array that holds
// every row, or a mixed array when shapes differ.
func FromWKB[O common.Offset](arr *wkb.Array[O]) (geoarray.GeometryArray, error) {
	geoms, err := arr.ToGeoms()
	if err != nil {
		return nil, err
	}
	kind, err := geoarray.NarrowestKind(geoms)
	if err != nil {
		return nil, fmt.Errorf("decode %s column: %w", arr.Dialect(), err)
	}
	return geoarray.BuildFromGeoms[O](kind, geoms)
}
