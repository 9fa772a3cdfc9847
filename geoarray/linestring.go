package geoarray

import (
	"fmt"
	"iter"

	"github.com/twpayne/go-geom"

	"github.com/hangxie/geocolumn/buffer"
	"github.com/hangxie/geocolumn/common"
	"github.com/hangxie/geocolumn/scalar"
)

// LineStringArray partitions the coordinates directly with geomOffsets.
type LineStringArray[O common.Offset] struct {
	arrayBase
	coords      buffer.CoordBuffer
	geomOffsets buffer.OffsetBuffer[O]
}

func NewLineStringArray[O common.Offset](coords buffer.CoordBuffer, geomOffsets buffer.OffsetBuffer[O], nulls *buffer.NullBuffer) (*LineStringArray[O], error) {
	if err := buffer.CheckTerminalOffset("geometry", geomOffsets, coords.Len()); err != nil {
		return nil, err
	}
	if err := buffer.CheckNulls(nulls, geomOffsets.RowCount()); err != nil {
		return nil, err
	}
	return &LineStringArray[O]{
		arrayBase:   arrayBase{nulls: nulls, length: geomOffsets.RowCount()},
		coords:      coords,
		geomOffsets: geomOffsets,
	}, nil
}

func (a *LineStringArray[O]) Coords() buffer.CoordBuffer { return a.coords }

func (a *LineStringArray[O]) GeomOffsets() buffer.OffsetBuffer[O] { return a.geomOffsets }

func (a *LineStringArray[O]) GeometryType() common.GeometryType {
	return common.GeometryTypeLineString
}

func (a *LineStringArray[O]) ExtensionName() string { return common.ExtensionNameLineString }

func (a *LineStringArray[O]) Value(i int) (*scalar.LineString[O], error) {
	if err := a.checkIndex(i); err != nil {
		return nil, err
	}
	if a.IsNull(i) {
		return nil, nil
	}
	return scalar.NewLineString(a.coords, a.geomOffsets, i)
}

func (a *LineStringArray[O]) Geometry(i int) (scalar.Geometry, error) {
	v, err := a.Value(i)
	return geometryOf(v, err)
}

func (a *LineStringArray[O]) ValueAsGeom(i int) (geom.T, error) {
	v, err := a.Value(i)
	if err != nil || v == nil {
		return nil, err
	}
	return v.ToGeo(), nil
}

func (a *LineStringArray[O]) ToGeoms() ([]geom.T, error) { return ToGeoms(a) }

func (a *LineStringArray[O]) All() iter.Seq2[int, *scalar.LineString[O]] {
	return func(yield func(int, *scalar.LineString[O]) bool) {
		for i := range a.length {
			v, _ := a.Value(i)
			if !yield(i, v) {
				return
			}
		}
	}
}

type LineStringArrayBuilder[O common.Offset] struct {
	coords      *buffer.CoordBufferBuilder
	geomOffsets *buffer.OffsetBufferBuilder[O]
	validity    *buffer.NullBufferBuilder
}

func NewLineStringArrayBuilder[O common.Offset](capacity int) *LineStringArrayBuilder[O] {
	return &LineStringArrayBuilder[O]{
		coords:      buffer.NewCoordBufferBuilder(capacity),
		geomOffsets: buffer.NewOffsetBufferBuilder[O](capacity),
		validity:    buffer.NewNullBufferBuilder(capacity),
	}
}

func (b *LineStringArrayBuilder[O]) Len() int { return b.validity.Len() }

func (b *LineStringArrayBuilder[O]) PushNull() {
	b.geomOffsets.PushEmpty()
	b.validity.AppendNull()
}

func (b *LineStringArrayBuilder[O]) PushLineString(l *geom.LineString) error {
	if l == nil {
		b.PushNull()
		return nil
	}
	if err := checkLayout(l); err != nil {
		return err
	}
	b.coords.PushFlat(l.FlatCoords(), l.Stride())
	b.geomOffsets.PushLength(l.NumCoords())
	b.validity.AppendValid()
	return nil
}

func (b *LineStringArrayBuilder[O]) PushGeometry(g geom.T) error {
	if g == nil {
		b.PushNull()
		return nil
	}
	l, ok := g.(*geom.LineString)
	if !ok {
		return shapeMismatch(common.GeometryTypeLineString, g)
	}
	return b.PushLineString(l)
}

func (b *LineStringArrayBuilder[O]) Build() *LineStringArray[O] {
	return mustBuild(NewLineStringArray(b.coords.Build(), b.geomOffsets.Build(), b.validity.Finish()))
}

func LineStringArrayFromGeoms[O common.Offset](geoms []geom.T) (*LineStringArray[O], error) {
	b := NewLineStringArrayBuilder[O](len(geoms))
	for i, g := range geoms {
		if err := b.PushGeometry(g); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
	}
	return b.Build(), nil
}
