package common

import (
	"fmt"

	"github.com/twpayne/go-geom"
)

// Offset is the integer type of an offset buffer: int32 for regular lists,
// int64 for large lists.
type Offset interface {
	int32 | int64
}

// GeometryType identifies one of the six concrete geometry shapes. The
// numeric values are shared with WKB geometry codes and the dense union type
// codes of a mixed geometry column; they must never be renumbered.
type GeometryType int8

const (
	GeometryTypePoint           GeometryType = 1
	GeometryTypeLineString      GeometryType = 2
	GeometryTypePolygon         GeometryType = 3
	GeometryTypeMultiPoint      GeometryType = 4
	GeometryTypeMultiLineString GeometryType = 5
	GeometryTypeMultiPolygon    GeometryType = 6
)

// GeometryTypeMixed is not a union arm; it tags a column that mixes shapes.
const GeometryTypeMixed GeometryType = 8

const (
	ExtensionNamePoint           = "geoarrow.point"
	ExtensionNameLineString      = "geoarrow.linestring"
	ExtensionNamePolygon         = "geoarrow.polygon"
	ExtensionNameMultiPoint      = "geoarrow.multipoint"
	ExtensionNameMultiLineString = "geoarrow.multilinestring"
	ExtensionNameMultiPolygon    = "geoarrow.multipolygon"
	ExtensionNameGeometry        = "geoarrow.geometry"
)

type geometryTypeInfo struct {
	name          string
	extensionName string
}

var geometryTypes = map[GeometryType]geometryTypeInfo{
	GeometryTypePoint:           {"Point", ExtensionNamePoint},
	GeometryTypeLineString:      {"LineString", ExtensionNameLineString},
	GeometryTypePolygon:         {"Polygon", ExtensionNamePolygon},
	GeometryTypeMultiPoint:      {"MultiPoint", ExtensionNameMultiPoint},
	GeometryTypeMultiLineString: {"MultiLineString", ExtensionNameMultiLineString},
	GeometryTypeMultiPolygon:    {"MultiPolygon", ExtensionNameMultiPolygon},
	GeometryTypeMixed:           {"Geometry", ExtensionNameGeometry},
}

// UnionGeometryTypes lists the union arms in type-code order.
var UnionGeometryTypes = []GeometryType{
	GeometryTypePoint,
	GeometryTypeLineString,
	GeometryTypePolygon,
	GeometryTypeMultiPoint,
	GeometryTypeMultiLineString,
	GeometryTypeMultiPolygon,
}

// ParseGeometryType maps a stored type id back to a GeometryType.
func ParseGeometryType(id int8) (GeometryType, error) {
	t := GeometryType(id)
	if !t.IsUnionArm() {
		return 0, fmt.Errorf("geometry type id %d: %w", id, ErrUnknownGeometryType)
	}
	return t, nil
}

// IsUnionArm reports whether t is one of the six concrete shapes.
func (t GeometryType) IsUnionArm() bool {
	return t >= GeometryTypePoint && t <= GeometryTypeMultiPolygon
}

func (t GeometryType) String() string {
	if info, ok := geometryTypes[t]; ok {
		return info.name
	}
	return fmt.Sprintf("GeometryType(%d)", int8(t))
}

// ExtensionName returns the GeoArrow extension name of t, or "" when t is unknown.
func (t GeometryType) ExtensionName() string {
	return geometryTypes[t].extensionName
}

// GeometryTypeOf returns the shape of an owned geometry. Geometry collections
// and unknown implementations are rejected with ErrShapeMismatch.
func GeometryTypeOf(g geom.T) (GeometryType, error) {
	switch g.(type) {
	case *geom.Point:
		return GeometryTypePoint, nil
	case *geom.LineString:
		return GeometryTypeLineString, nil
	case *geom.Polygon:
		return GeometryTypePolygon, nil
	case *geom.MultiPoint:
		return GeometryTypeMultiPoint, nil
	case *geom.MultiLineString:
		return GeometryTypeMultiLineString, nil
	case *geom.MultiPolygon:
		return GeometryTypeMultiPolygon, nil
	default:
		return 0, fmt.Errorf("unsupported geometry %T: %w", g, ErrShapeMismatch)
	}
}

// IsNilGeometry reports whether g is nil or a nil pointer to one of the six
// shapes. Both stand for a null row.
func IsNilGeometry(g geom.T) bool {
	switch g := g.(type) {
	case nil:
		return true
	case *geom.Point:
		return g == nil
	case *geom.LineString:
		return g == nil
	case *geom.Polygon:
		return g == nil
	case *geom.MultiPoint:
		return g == nil
	case *geom.MultiLineString:
		return g == nil
	case *geom.MultiPolygon:
		return g == nil
	}
	return false
}

// WithSRID stamps srid on g in place and returns it; 0 leaves g alone.
func WithSRID(g geom.T, srid int) geom.T {
	if srid == 0 {
		return g
	}
	switch g := g.(type) {
	case *geom.Point:
		return g.SetSRID(srid)
	case *geom.LineString:
		return g.SetSRID(srid)
	case *geom.Polygon:
		return g.SetSRID(srid)
	case *geom.MultiPoint:
		return g.SetSRID(srid)
	case *geom.MultiLineString:
		return g.SetSRID(srid)
	case *geom.MultiPolygon:
		return g.SetSRID(srid)
	case *geom.GeometryCollection:
		return g.SetSRID(srid)
	}
	return g
}

// CloneGeometry deep copies one of the six supported shapes, SRID included.
func CloneGeometry(g geom.T) (geom.T, error) {
	switch g := g.(type) {
	case *geom.Point:
		return g.Clone(), nil
	case *geom.LineString:
		return g.Clone(), nil
	case *geom.Polygon:
		return g.Clone(), nil
	case *geom.MultiPoint:
		return g.Clone(), nil
	case *geom.MultiLineString:
		return g.Clone(), nil
	case *geom.MultiPolygon:
		return g.Clone(), nil
	default:
		return nil, fmt.Errorf("unsupported geometry %T: %w", g, ErrShapeMismatch)
	}
}
