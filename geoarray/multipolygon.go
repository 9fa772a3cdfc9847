package geoarray

import (
	"fmt"
	"iter"

	"github.com/twpayne/go-geom"

	"github.com/hangxie/geocolumn/buffer"
	"github.com/hangxie/geocolumn/common"
	"github.com/hangxie/geocolumn/scalar"
)

// MultiPolygonArray nests geomOffsets over polygonOffsets over ringOffsets
// over coordinates.
type MultiPolygonArray[O common.Offset] struct {
	arrayBase
	coords         buffer.CoordBuffer
	geomOffsets    buffer.OffsetBuffer[O]
	polygonOffsets buffer.OffsetBuffer[O]
	ringOffsets    buffer.OffsetBuffer[O]
}

func NewMultiPolygonArray[O common.Offset](coords buffer.CoordBuffer, geomOffsets, polygonOffsets, ringOffsets buffer.OffsetBuffer[O], nulls *buffer.NullBuffer) (*MultiPolygonArray[O], error) {
	if err := buffer.CheckTerminalOffset("ring", ringOffsets, coords.Len()); err != nil {
		return nil, err
	}
	if err := buffer.CheckTerminalOffset("polygon", polygonOffsets, ringOffsets.RowCount()); err != nil {
		return nil, err
	}
	if err := buffer.CheckTerminalOffset("geometry", geomOffsets, polygonOffsets.RowCount()); err != nil {
		return nil, err
	}
	if err := buffer.CheckNulls(nulls, geomOffsets.RowCount()); err != nil {
		return nil, err
	}
	return &MultiPolygonArray[O]{
		arrayBase:      arrayBase{nulls: nulls, length: geomOffsets.RowCount()},
		coords:         coords,
		geomOffsets:    geomOffsets,
		polygonOffsets: polygonOffsets,
		ringOffsets:    ringOffsets,
	}, nil
}

func (a *MultiPolygonArray[O]) Coords() buffer.CoordBuffer { return a.coords }

func (a *MultiPolygonArray[O]) GeomOffsets() buffer.OffsetBuffer[O] { return a.geomOffsets }

func (a *MultiPolygonArray[O]) PolygonOffsets() buffer.OffsetBuffer[O] { return a.polygonOffsets }

func (a *MultiPolygonArray[O]) RingOffsets() buffer.OffsetBuffer[O] { return a.ringOffsets }

func (a *MultiPolygonArray[O]) GeometryType() common.GeometryType {
	return common.GeometryTypeMultiPolygon
}

func (a *MultiPolygonArray[O]) ExtensionName() string { return common.ExtensionNameMultiPolygon }

func (a *MultiPolygonArray[O]) Value(i int) (*scalar.MultiPolygon[O], error) {
	if err := a.checkIndex(i); err != nil {
		return nil, err
	}
	if a.IsNull(i) {
		return nil, nil
	}
	return scalar.NewMultiPolygon(a.coords, a.geomOffsets, a.polygonOffsets, a.ringOffsets, i)
}

func (a *MultiPolygonArray[O]) Geometry(i int) (scalar.Geometry, error) {
	v, err := a.Value(i)
	return geometryOf(v, err)
}

func (a *MultiPolygonArray[O]) ValueAsGeom(i int) (geom.T, error) {
	v, err := a.Value(i)
	if err != nil || v == nil {
		return nil, err
	}
	return v.ToGeo(), nil
}

func (a *MultiPolygonArray[O]) ToGeoms() ([]geom.T, error) { return ToGeoms(a) }

func (a *MultiPolygonArray[O]) All() iter.Seq2[int, *scalar.MultiPolygon[O]] {
	return func(yield func(int, *scalar.MultiPolygon[O]) bool) {
		for i := range a.length {
			v, _ := a.Value(i)
			if !yield(i, v) {
				return
			}
		}
	}
}

type MultiPolygonArrayBuilder[O common.Offset] struct {
	ringWriter[O]
	polygonOffsets *buffer.OffsetBufferBuilder[O]
	geomOffsets    *buffer.OffsetBufferBuilder[O]
	validity       *buffer.NullBufferBuilder
}

func NewMultiPolygonArrayBuilder[O common.Offset](capacity int) *MultiPolygonArrayBuilder[O] {
	return &MultiPolygonArrayBuilder[O]{
		ringWriter: ringWriter[O]{
			coords:      buffer.NewCoordBufferBuilder(capacity),
			ringOffsets: buffer.NewOffsetBufferBuilder[O](capacity),
		},
		polygonOffsets: buffer.NewOffsetBufferBuilder[O](capacity),
		geomOffsets:    buffer.NewOffsetBufferBuilder[O](capacity),
		validity:       buffer.NewNullBufferBuilder(capacity),
	}
}

func (b *MultiPolygonArrayBuilder[O]) Len() int { return b.validity.Len() }

func (b *MultiPolygonArrayBuilder[O]) PushNull() {
	b.geomOffsets.PushEmpty()
	b.validity.AppendNull()
}

func (b *MultiPolygonArrayBuilder[O]) PushMultiPolygon(m *geom.MultiPolygon) error {
	if m == nil {
		b.PushNull()
		return nil
	}
	if err := checkLayout(m); err != nil {
		return err
	}
	n := m.NumPolygons()
	for i := range n {
		b.polygonOffsets.PushLength(b.pushRings(m.Polygon(i)))
	}
	b.geomOffsets.PushLength(n)
	b.validity.AppendValid()
	return nil
}

func (b *MultiPolygonArrayBuilder[O]) PushGeometry(g geom.T) error {
	if g == nil {
		b.PushNull()
		return nil
	}
	m, ok := g.(*geom.MultiPolygon)
	if !ok {
		return shapeMismatch(common.GeometryTypeMultiPolygon, g)
	}
	return b.PushMultiPolygon(m)
}

func (b *MultiPolygonArrayBuilder[O]) Build() *MultiPolygonArray[O] {
	return mustBuild(NewMultiPolygonArray(b.coords.Build(), b.geomOffsets.Build(), b.polygonOffsets.Build(), b.ringOffsets.Build(), b.validity.Finish()))
}

func MultiPolygonArrayFromGeoms[O common.Offset](geoms []geom.T) (*MultiPolygonArray[O], error) {
	b := NewMultiPolygonArrayBuilder[O](len(geoms))
	for i, g := range geoms {
		if err := b.PushGeometry(g); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
	}
	return b.Build(), nil
}
