package geoarray

import (
	"fmt"
	"iter"

	"github.com/twpayne/go-geom"

	"github.com/hangxie/geocolumn/buffer"
	"github.com/hangxie/geocolumn/common"
	"github.com/hangxie/geocolumn/scalar"
)

// PolygonArray nests geomOffsets over ringOffsets over coordinates. The first
// ring of each polygon is its exterior.
type PolygonArray[O common.Offset] struct {
	arrayBase
	coords      buffer.CoordBuffer
	geomOffsets buffer.OffsetBuffer[O]
	ringOffsets buffer.OffsetBuffer[O]
}

func NewPolygonArray[O common.Offset](coords buffer.CoordBuffer, geomOffsets, ringOffsets buffer.OffsetBuffer[O], nulls *buffer.NullBuffer) (*PolygonArray[O], error) {
	if err := buffer.CheckTerminalOffset("ring", ringOffsets, coords.Len()); err != nil {
		return nil, err
	}
	if err := buffer.CheckTerminalOffset("geometry", geomOffsets, ringOffsets.RowCount()); err != nil {
		return nil, err
	}
	if err := buffer.CheckNulls(nulls, geomOffsets.RowCount()); err != nil {
		return nil, err
	}
	return &PolygonArray[O]{
		arrayBase:   arrayBase{nulls: nulls, length: geomOffsets.RowCount()},
		coords:      coords,
		geomOffsets: geomOffsets,
		ringOffsets: ringOffsets,
	}, nil
}

func (a *PolygonArray[O]) Coords() buffer.CoordBuffer { return a.coords }

func (a *PolygonArray[O]) GeomOffsets() buffer.OffsetBuffer[O] { return a.geomOffsets }

func (a *PolygonArray[O]) RingOffsets() buffer.OffsetBuffer[O] { return a.ringOffsets }

func (a *PolygonArray[O]) GeometryType() common.GeometryType { return common.GeometryTypePolygon }

func (a *PolygonArray[O]) ExtensionName() string { return common.ExtensionNamePolygon }

func (a *PolygonArray[O]) Value(i int) (*scalar.Polygon[O], error) {
	if err := a.checkIndex(i); err != nil {
		return nil, err
	}
	if a.IsNull(i) {
		return nil, nil
	}
	return scalar.NewPolygon(a.coords, a.geomOffsets, a.ringOffsets, i)
}

func (a *PolygonArray[O]) Geometry(i int) (scalar.Geometry, error) {
	v, err := a.Value(i)
	return geometryOf(v, err)
}

func (a *PolygonArray[O]) ValueAsGeom(i int) (geom.T, error) {
	v, err := a.Value(i)
	if err != nil || v == nil {
		return nil, err
	}
	return v.ToGeo(), nil
}

func (a *PolygonArray[O]) ToGeoms() ([]geom.T, error) { return ToGeoms(a) }

func (a *PolygonArray[O]) All() iter.Seq2[int, *scalar.Polygon[O]] {
	return func(yield func(int, *scalar.Polygon[O]) bool) {
		for i := range a.length {
			v, _ := a.Value(i)
			if !yield(i, v) {
				return
			}
		}
	}
}

// ringWriter appends polygons ring by ring. Polygon and multipolygon
// builders share it.
type ringWriter[O common.Offset] struct {
	coords      *buffer.CoordBufferBuilder
	ringOffsets *buffer.OffsetBufferBuilder[O]
}

// pushRings appends the rings of p, exterior first, and returns the ring count.
func (w ringWriter[O]) pushRings(p *geom.Polygon) int {
	n := p.NumLinearRings()
	for i := range n {
		ring := p.LinearRing(i)
		w.coords.PushFlat(ring.FlatCoords(), ring.Stride())
		w.ringOffsets.PushLength(ring.NumCoords())
	}
	return n
}

type PolygonArrayBuilder[O common.Offset] struct {
	ringWriter[O]
	geomOffsets *buffer.OffsetBufferBuilder[O]
	validity    *buffer.NullBufferBuilder
}

func NewPolygonArrayBuilder[O common.Offset](capacity int) *PolygonArrayBuilder[O] {
	return &PolygonArrayBuilder[O]{
		ringWriter: ringWriter[O]{
			coords:      buffer.NewCoordBufferBuilder(capacity),
			ringOffsets: buffer.NewOffsetBufferBuilder[O](capacity),
		},
		geomOffsets: buffer.NewOffsetBufferBuilder[O](capacity),
		validity:    buffer.NewNullBufferBuilder(capacity),
	}
}

func (b *PolygonArrayBuilder[O]) Len() int { return b.validity.Len() }

func (b *PolygonArrayBuilder[O]) PushNull() {
	b.geomOffsets.PushEmpty()
	b.validity.AppendNull()
}

func (b *PolygonArrayBuilder[O]) PushPolygon(p *geom.Polygon) error {
	if p == nil {
		b.PushNull()
		return nil
	}
	if err := checkLayout(p); err != nil {
		return err
	}
	b.geomOffsets.PushLength(b.pushRings(p))
	b.validity.AppendValid()
	return nil
}

func (b *PolygonArrayBuilder[O]) PushGeometry(g geom.T) error {
	if g == nil {
		b.PushNull()
		return nil
	}
	p, ok := g.(*geom.Polygon)
	if !ok {
		return shapeMismatch(common.GeometryTypePolygon, g)
	}
	return b.PushPolygon(p)
}

func (b *PolygonArrayBuilder[O]) Build() *PolygonArray[O] {
	return mustBuild(NewPolygonArray(b.coords.Build(), b.geomOffsets.Build(), b.ringOffsets.Build(), b.validity.Finish()))
}

func PolygonArrayFromGeoms[O common.Offset](geoms []geom.T) (*PolygonArray[O], error) {
	b := NewPolygonArrayBuilder[O](len(geoms))
	for i, g := range geoms {
		if err := b.PushGeometry(g); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
	}
	return b.Build(), nil
}
