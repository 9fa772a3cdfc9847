package geoarray

import (
	"fmt"

	"github.com/twpayne/go-geom"

	"github.com/hangxie/geocolumn/common"
)

// BuildFromGeoms builds an array of kind from owned geometries; nil entries
// become null rows. GeometryTypeMixed accepts any of the six shapes.
func BuildFromGeoms[O common.Offset](kind common.GeometryType, geoms []geom.T) (GeometryArray, error) {
	switch kind {
	case common.GeometryTypePoint:
		return asArray(PointArrayFromGeoms(geoms))
	case common.GeometryTypeLineString:
		return asArray(LineStringArrayFromGeoms[O](geoms))
	case common.GeometryTypePolygon:
		return asArray(PolygonArrayFromGeoms[O](geoms))
	case common.GeometryTypeMultiPoint:
		return asArray(MultiPointArrayFromGeoms[O](geoms))
	case common.GeometryTypeMultiLineString:
		return asArray(MultiLineStringArrayFromGeoms[O](geoms))
	case common.GeometryTypeMultiPolygon:
		return asArray(MultiPolygonArrayFromGeoms[O](geoms))
	case common.GeometryTypeMixed:
		return asArray(MixedGeometryArrayFromGeoms[O](geoms))
	default:
		return nil, fmt.Errorf("array kind %s: %w", kind, common.ErrUnknownGeometryType)
	}
}

func asArray[A GeometryArray](arr A, err error) (GeometryArray, error) {
	if err != nil {
		return nil, err
	}
	return arr, nil
}

// NarrowestKind returns the single shape shared by all non-nil geometries,
// or GeometryTypeMixed when shapes differ or every row is nil.
func NarrowestKind(geoms []geom.T) (common.GeometryType, error) {
	kind := common.GeometryTypeMixed
	for i, g := range geoms {
		if common.IsNilGeometry(g) {
			continue
		}
		t, err := common.GeometryTypeOf(g)
		if err != nil {
			return 0, fmt.Errorf("row %d: %w", i, err)
		}
		switch kind {
		case common.GeometryTypeMixed:
			kind = t
		case t:
		default:
			return common.GeometryTypeMixed, nil
		}
	}
	return kind, nil
}
