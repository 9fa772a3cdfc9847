package compute

import (
	"context"

	"github.com/cespare/xxhash/v2"

	"github.com/hangxie/geocolumn/geoarray"
	"github.com/hangxie/geocolumn/wkb"
)

// Fingerprints hashes the little-endian WKB encoding of every row with
// xxhash. Equal geometries hash equally whatever array they came from;
// null rows hash to 0.
func Fingerprints(ctx context.Context, arr geoarray.GeometryArray, opts Options) ([]uint64, error) {
	return Map(ctx, arr.Len(), opts, func(i int) (uint64, error) {
		g, err := arr.ValueAsGeom(i)
		if err != nil || g == nil {
			return 0, err
		}
		payload, err := wkb.Encode(wkb.DialectWKB, g)
		if err != nil {
			return 0, err
		}
		return xxhash.Sum64(payload), nil
	})
}
