package compute

import (
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/hangxie/geocolumn/common"
	"github.com/hangxie/geocolumn/geoarray"
)

var typeNames = map[common.GeometryType]string{
	common.GeometryTypePoint:           "ST_Point",
	common.GeometryTypeLineString:      "ST_LineString",
	common.GeometryTypePolygon:         "ST_Polygon",
	common.GeometryTypeMultiPoint:      "ST_MultiPoint",
	common.GeometryTypeMultiLineString: "ST_MultiLineString",
	common.GeometryTypeMultiPolygon:    "ST_MultiPolygon",
}

// GeometryTypeName is the ST_ style name of a shape, "" for unknown ids.
func GeometryTypeName(t common.GeometryType) string { return typeNames[t] }

// GeometryTypeNames returns a string column naming the shape of each row;
// null rows stay null. The caller owns the result.
func GeometryTypeNames(mem memory.Allocator, arr geoarray.GeometryArray) (*array.String, error) {
	b := array.NewStringBuilder(mem)
	defer b.Release()
	b.Reserve(arr.Len())
	for i := range arr.Len() {
		g, err := arr.Geometry(i)
		if err != nil {
			return nil, err
		}
		if g == nil {
			b.AppendNull()
			continue
		}
		b.Append(GeometryTypeName(g.GeometryType()))
	}
	return b.NewStringArray(), nil
}
