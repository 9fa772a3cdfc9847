package compute

import (
	"context"
	"fmt"

	"github.com/twpayne/go-geom"

	"github.com/hangxie/geocolumn/buffer"
	"github.com/hangxie/geocolumn/common"
	"github.com/hangxie/geocolumn/geoarray"
	"github.com/hangxie/geocolumn/wkb"
)

// TranslateArray shifts every coordinate of a typed or mixed array by
// (dx, dy). The result shares offsets and validity with arr; only the
// coordinate buffer is new.
func TranslateArray[O common.Offset](arr geoarray.GeometryArray, dx, dy float64) (geoarray.GeometryArray, error) {
	switch a := arr.(type) {
	case *geoarray.MixedGeometryArray[O]:
		children, err := translateChildren(a.Children(), dx, dy)
		if err != nil {
			return nil, err
		}
		return asArray(geoarray.NewMixedGeometryArray(a.TypeIDs(), a.Offsets(), a.Nulls(), children))
	default:
		return translateTyped[O](arr, dx, dy)
	}
}

func translateTyped[O common.Offset](arr geoarray.GeometryArray, dx, dy float64) (geoarray.GeometryArray, error) {
	switch a := arr.(type) {
	case *geoarray.PointArray:
		return asArray(geoarray.NewPointArray(shiftCoords(a.Coords(), dx, dy), a.Nulls()))
	case *geoarray.LineStringArray[O]:
		return asArray(geoarray.NewLineStringArray(shiftCoords(a.Coords(), dx, dy), a.GeomOffsets(), a.Nulls()))
	case *geoarray.PolygonArray[O]:
		return asArray(geoarray.NewPolygonArray(shiftCoords(a.Coords(), dx, dy), a.GeomOffsets(), a.RingOffsets(), a.Nulls()))
	case *geoarray.MultiPointArray[O]:
		return asArray(geoarray.NewMultiPointArray(shiftCoords(a.Coords(), dx, dy), a.GeomOffsets(), a.Nulls()))
	case *geoarray.MultiLineStringArray[O]:
		return asArray(geoarray.NewMultiLineStringArray(shiftCoords(a.Coords(), dx, dy), a.GeomOffsets(), a.RingOffsets(), a.Nulls()))
	case *geoarray.MultiPolygonArray[O]:
		return asArray(geoarray.NewMultiPolygonArray(shiftCoords(a.Coords(), dx, dy),
			a.GeomOffsets(), a.PolygonOffsets(), a.RingOffsets(), a.Nulls()))
	default:
		return nil, fmt.Errorf("translate %T: %w", arr, common.ErrShapeMismatch)
	}
}

func translateChildren[O common.Offset](c geoarray.MixedChildren[O], dx, dy float64) (geoarray.MixedChildren[O], error) {
	var out geoarray.MixedChildren[O]
	var err error
	if c.Points != nil {
		if out.Points, err = shiftArm[O](c.Points, dx, dy); err != nil {
			return out, err
		}
	}
	if c.LineStrings != nil {
		if out.LineStrings, err = shiftArm[O](c.LineStrings, dx, dy); err != nil {
			return out, err
		}
	}
	if c.Polygons != nil {
		if out.Polygons, err = shiftArm[O](c.Polygons, dx, dy); err != nil {
			return out, err
		}
	}
	if c.MultiPoints != nil {
		if out.MultiPoints, err = shiftArm[O](c.MultiPoints, dx, dy); err != nil {
			return out, err
		}
	}
	if c.MultiLineStrings != nil {
		if out.MultiLineStrings, err = shiftArm[O](c.MultiLineStrings, dx, dy); err != nil {
			return out, err
		}
	}
	if c.MultiPolygons != nil {
		if out.MultiPolygons, err = shiftArm[O](c.MultiPolygons, dx, dy); err != nil {
			return out, err
		}
	}
	return out, nil
}

// shiftArm translates one union arm keeping its concrete type.
func shiftArm[O common.Offset, A geoarray.GeometryArray](arr A, dx, dy float64) (A, error) {
	var zero A
	moved, err := translateTyped[O](arr, dx, dy)
	if err != nil {
		return zero, err
	}
	return moved.(A), nil
}

// asArray keeps a failed constructor from leaking a typed nil.
func asArray[A geoarray.GeometryArray](arr A, err error) (geoarray.GeometryArray, error) {
	if err != nil {
		return nil, err
	}
	return arr, nil
}

func shiftCoords(c buffer.CoordBuffer, dx, dy float64) buffer.CoordBuffer {
	b := buffer.NewCoordBufferBuilder(c.Len())
	for i := range c.Len() {
		x, y := c.XY(i)
		b.PushXY(x+dx, y+dy)
	}
	return b.Build()
}

// TranslateGeom returns a shifted copy of g.
func TranslateGeom(g geom.T, dx, dy float64) (geom.T, error) {
	clone, err := common.CloneGeometry(g)
	if err != nil {
		return nil, err
	}
	flat, stride := clone.FlatCoords(), clone.Stride()
	for i := 0; i+1 < len(flat); i += stride {
		flat[i] += dx
		flat[i+1] += dy
	}
	return clone, nil
}

// Translate shifts every row of a blob array and re-encodes it in the same
// dialect.
func Translate[O common.Offset](ctx context.Context, arr *wkb.Array[O], dx, dy float64, opts Options) (*wkb.Array[O], error) {
	payloads, err := Map(ctx, arr.Len(), opts, func(i int) ([]byte, error) {
		g, err := arr.ValueAsGeom(i)
		if err != nil || g == nil {
			return nil, err
		}
		moved, err := TranslateGeom(g, dx, dy)
		if err != nil {
			return nil, err
		}
		return wkb.Encode(arr.Dialect(), moved)
	})
	if err != nil {
		return nil, err
	}
	return fromPayloads[O](arr.Dialect(), payloads)
}

// fromPayloads builds a blob array; nil payloads are null rows.
func fromPayloads[O common.Offset](d wkb.Dialect, payloads [][]byte) (*wkb.Array[O], error) {
	b, err := wkb.NewBuilder[O](d, len(payloads))
	if err != nil {
		return nil, err
	}
	for i, p := range payloads {
		if err := b.AppendWKB(p); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
	}
	return b.Build(), nil
}
