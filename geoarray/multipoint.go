package geoarray

import (
	"fmt"
	"iter"
	"math"

	"github.com/twpayne/go-geom"

	"github.com/hangxie/geocolumn/buffer"
	"github.com/hangxie/geocolumn/common"
	"github.com/hangxie/geocolumn/scalar"
)

// MultiPointArray partitions the coordinates directly; each coordinate of a
// row is one member point.
type MultiPointArray[O common.Offset] struct {
	arrayBase
	coords      buffer.CoordBuffer
	geomOffsets buffer.OffsetBuffer[O]
}

func NewMultiPointArray[O common.Offset](coords buffer.CoordBuffer, geomOffsets buffer.OffsetBuffer[O], nulls *buffer.NullBuffer) (*MultiPointArray[O], error) {
	if err := buffer.CheckTerminalOffset("geometry", geomOffsets, coords.Len()); err != nil {
		return nil, err
	}
	if err := buffer.CheckNulls(nulls, geomOffsets.RowCount()); err != nil {
		return nil, err
	}
	return &MultiPointArray[O]{
		arrayBase:   arrayBase{nulls: nulls, length: geomOffsets.RowCount()},
		coords:      coords,
		geomOffsets: geomOffsets,
	}, nil
}

func (a *MultiPointArray[O]) Coords() buffer.CoordBuffer { return a.coords }

func (a *MultiPointArray[O]) GeomOffsets() buffer.OffsetBuffer[O] { return a.geomOffsets }

func (a *MultiPointArray[O]) GeometryType() common.GeometryType {
	return common.GeometryTypeMultiPoint
}

func (a *MultiPointArray[O]) ExtensionName() string { return common.ExtensionNameMultiPoint }

func (a *MultiPointArray[O]) Value(i int) (*scalar.MultiPoint[O], error) {
	if err := a.checkIndex(i); err != nil {
		return nil, err
	}
	if a.IsNull(i) {
		return nil, nil
	}
	return scalar.NewMultiPoint(a.coords, a.geomOffsets, i)
}

func (a *MultiPointArray[O]) Geometry(i int) (scalar.Geometry, error) {
	v, err := a.Value(i)
	return geometryOf(v, err)
}

func (a *MultiPointArray[O]) ValueAsGeom(i int) (geom.T, error) {
	v, err := a.Value(i)
	if err != nil || v == nil {
		return nil, err
	}
	return v.ToGeo(), nil
}

func (a *MultiPointArray[O]) ToGeoms() ([]geom.T, error) { return ToGeoms(a) }

func (a *MultiPointArray[O]) All() iter.Seq2[int, *scalar.MultiPoint[O]] {
	return func(yield func(int, *scalar.MultiPoint[O]) bool) {
		for i := range a.length {
			v, _ := a.Value(i)
			if !yield(i, v) {
				return
			}
		}
	}
}

type MultiPointArrayBuilder[O common.Offset] struct {
	coords      *buffer.CoordBufferBuilder
	geomOffsets *buffer.OffsetBufferBuilder[O]
	validity    *buffer.NullBufferBuilder
}

func NewMultiPointArrayBuilder[O common.Offset](capacity int) *MultiPointArrayBuilder[O] {
	return &MultiPointArrayBuilder[O]{
		coords:      buffer.NewCoordBufferBuilder(capacity),
		geomOffsets: buffer.NewOffsetBufferBuilder[O](capacity),
		validity:    buffer.NewNullBufferBuilder(capacity),
	}
}

func (b *MultiPointArrayBuilder[O]) Len() int { return b.validity.Len() }

func (b *MultiPointArrayBuilder[O]) PushNull() {
	b.geomOffsets.PushEmpty()
	b.validity.AppendNull()
}

func (b *MultiPointArrayBuilder[O]) PushMultiPoint(m *geom.MultiPoint) error {
	if m == nil {
		b.PushNull()
		return nil
	}
	if err := checkLayout(m); err != nil {
		return err
	}
	n := m.NumPoints()
	for i := range n {
		p := m.Point(i)
		if p.Empty() {
			b.coords.PushXY(math.NaN(), math.NaN())
			continue
		}
		b.coords.PushXY(p.X(), p.Y())
	}
	b.geomOffsets.PushLength(n)
	b.validity.AppendValid()
	return nil
}

func (b *MultiPointArrayBuilder[O]) PushGeometry(g geom.T) error {
	if g == nil {
		b.PushNull()
		return nil
	}
	m, ok := g.(*geom.MultiPoint)
	if !ok {
		return shapeMismatch(common.GeometryTypeMultiPoint, g)
	}
	return b.PushMultiPoint(m)
}

func (b *MultiPointArrayBuilder[O]) Build() *MultiPointArray[O] {
	return mustBuild(NewMultiPointArray(b.coords.Build(), b.geomOffsets.Build(), b.validity.Finish()))
}

func MultiPointArrayFromGeoms[O common.Offset](geoms []geom.T) (*MultiPointArray[O], error) {
	b := NewMultiPointArrayBuilder[O](len(geoms))
	for i, g := range geoms {
		if err := b.PushGeometry(g); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
	}
	return b.Build(), nil
}
