package geoarray

import (
	"fmt"
	"iter"

	"github.com/twpayne/go-geom"

	"github.com/hangxie/geocolumn/buffer"
	"github.com/hangxie/geocolumn/common"
	"github.com/hangxie/geocolumn/scalar"
)

// MultiLineStringArray has the same two-level nesting as PolygonArray, but
// its rings are independent lines.
type MultiLineStringArray[O common.Offset] struct {
	arrayBase
	coords      buffer.CoordBuffer
	geomOffsets buffer.OffsetBuffer[O]
	ringOffsets buffer.OffsetBuffer[O]
}

func NewMultiLineStringArray[O common.Offset](coords buffer.CoordBuffer, geomOffsets, ringOffsets buffer.OffsetBuffer[O], nulls *buffer.NullBuffer) (*MultiLineStringArray[O], error) {
	if err := buffer.CheckTerminalOffset("line", ringOffsets, coords.Len()); err != nil {
		return nil, err
	}
	if err := buffer.CheckTerminalOffset("geometry", geomOffsets, ringOffsets.RowCount()); err != nil {
		return nil, err
	}
	if err := buffer.CheckNulls(nulls, geomOffsets.RowCount()); err != nil {
		return nil, err
	}
	return &MultiLineStringArray[O]{
		arrayBase:   arrayBase{nulls: nulls, length: geomOffsets.RowCount()},
		coords:      coords,
		geomOffsets: geomOffsets,
		ringOffsets: ringOffsets,
	}, nil
}

func (a *MultiLineStringArray[O]) Coords() buffer.CoordBuffer { return a.coords }

func (a *MultiLineStringArray[O]) GeomOffsets() buffer.OffsetBuffer[O] { return a.geomOffsets }

func (a *MultiLineStringArray[O]) RingOffsets() buffer.OffsetBuffer[O] { return a.ringOffsets }

func (a *MultiLineStringArray[O]) GeometryType() common.GeometryType {
	return common.GeometryTypeMultiLineString
}

func (a *MultiLineStringArray[O]) ExtensionName() string {
	return common.ExtensionNameMultiLineString
}

func (a *MultiLineStringArray[O]) Value(i int) (*scalar.MultiLineString[O], error) {
	if err := a.checkIndex(i); err != nil {
		return nil, err
	}
	if a.IsNull(i) {
		return nil, nil
	}
	return scalar.NewMultiLineString(a.coords, a.geomOffsets, a.ringOffsets, i)
}

func (a *MultiLineStringArray[O]) Geometry(i int) (scalar.Geometry, error) {
	v, err := a.Value(i)
	return geometryOf(v, err)
}

func (a *MultiLineStringArray[O]) ValueAsGeom(i int) (geom.T, error) {
	v, err := a.Value(i)
	if err != nil || v == nil {
		return nil, err
	}
	return v.ToGeo(), nil
}

func (a *MultiLineStringArray[O]) ToGeoms() ([]geom.T, error) { return ToGeoms(a) }

func (a *MultiLineStringArray[O]) All() iter.Seq2[int, *scalar.MultiLineString[O]] {
	return func(yield func(int, *scalar.MultiLineString[O]) bool) {
		for i := range a.length {
			v, _ := a.Value(i)
			if !yield(i, v) {
				return
			}
		}
	}
}

type MultiLineStringArrayBuilder[O common.Offset] struct {
	coords      *buffer.CoordBufferBuilder
	ringOffsets *buffer.OffsetBufferBuilder[O]
	geomOffsets *buffer.OffsetBufferBuilder[O]
	validity    *buffer.NullBufferBuilder
}

func NewMultiLineStringArrayBuilder[O common.Offset](capacity int) *MultiLineStringArrayBuilder[O] {
	return &MultiLineStringArrayBuilder[O]{
		coords:      buffer.NewCoordBufferBuilder(capacity),
		ringOffsets: buffer.NewOffsetBufferBuilder[O](capacity),
		geomOffsets: buffer.NewOffsetBufferBuilder[O](capacity),
		validity:    buffer.NewNullBufferBuilder(capacity),
	}
}

func (b *MultiLineStringArrayBuilder[O]) Len() int { return b.validity.Len() }

func (b *MultiLineStringArrayBuilder[O]) PushNull() {
	b.geomOffsets.PushEmpty()
	b.validity.AppendNull()
}

func (b *MultiLineStringArrayBuilder[O]) PushMultiLineString(m *geom.MultiLineString) error {
	if m == nil {
		b.PushNull()
		return nil
	}
	if err := checkLayout(m); err != nil {
		return err
	}
	n := m.NumLineStrings()
	for i := range n {
		line := m.LineString(i)
		b.coords.PushFlat(line.FlatCoords(), line.Stride())
		b.ringOffsets.PushLength(line.NumCoords())
	}
	b.geomOffsets.PushLength(n)
	b.validity.AppendValid()
	return nil
}

func (b *MultiLineStringArrayBuilder[O]) PushGeometry(g geom.T) error {
	if g == nil {
		b.PushNull()
		return nil
	}
	m, ok := g.(*geom.MultiLineString)
	if !ok {
		return shapeMismatch(common.GeometryTypeMultiLineString, g)
	}
	return b.PushMultiLineString(m)
}

func (b *MultiLineStringArrayBuilder[O]) Build() *MultiLineStringArray[O] {
	return mustBuild(NewMultiLineStringArray(b.coords.Build(), b.geomOffsets.Build(), b.ringOffsets.Build(), b.validity.Finish()))
}

func MultiLineStringArrayFromGeoms[O common.Offset](geoms []geom.T) (*MultiLineStringArray[O], error) {
	b := NewMultiLineStringArrayBuilder[O](len(geoms))
	for i, g := range geoms {
		if err := b.PushGeometry(g); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
	}
	return b.Build(), nil
}
