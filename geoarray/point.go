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

// PointArray stores one coordinate per row. Null rows still occupy a
// coordinate slot.
type PointArray struct {
	arrayBase
	coords buffer.CoordBuffer
}

func NewPointArray(coords buffer.CoordBuffer, nulls *buffer.NullBuffer) (*PointArray, error) {
	if err := buffer.CheckNulls(nulls, coords.Len()); err != nil {
		return nil, err
	}
	return &PointArray{arrayBase: arrayBase{nulls: nulls, length: coords.Len()}, coords: coords}, nil
}

func (a *PointArray) Coords() buffer.CoordBuffer { return a.coords }

func (a *PointArray) GeometryType() common.GeometryType { return common.GeometryTypePoint }

func (a *PointArray) ExtensionName() string { return common.ExtensionNamePoint }

func (a *PointArray) Value(i int) (*scalar.Point, error) {
	if err := a.checkIndex(i); err != nil {
		return nil, err
	}
	if a.IsNull(i) {
		return nil, nil
	}
	return scalar.NewPoint(a.coords, i)
}

func (a *PointArray) Geometry(i int) (scalar.Geometry, error) {
	v, err := a.Value(i)
	return geometryOf(v, err)
}

func (a *PointArray) ValueAsGeom(i int) (geom.T, error) {
	v, err := a.Value(i)
	if err != nil || v == nil {
		return nil, err
	}
	return v.ToGeo(), nil
}

func (a *PointArray) ToGeoms() ([]geom.T, error) { return ToGeoms(a) }

// All yields every row; the view is nil for null rows.
func (a *PointArray) All() iter.Seq2[int, *scalar.Point] {
	return func(yield func(int, *scalar.Point) bool) {
		for i := range a.length {
			v, _ := a.Value(i)
			if !yield(i, v) {
				return
			}
		}
	}
}

type PointArrayBuilder struct {
	coords   *buffer.CoordBufferBuilder
	validity *buffer.NullBufferBuilder
}

func NewPointArrayBuilder(capacity int) *PointArrayBuilder {
	return &PointArrayBuilder{
		coords:   buffer.NewCoordBufferBuilder(capacity),
		validity: buffer.NewNullBufferBuilder(capacity),
	}
}

func (b *PointArrayBuilder) Len() int { return b.validity.Len() }

func (b *PointArrayBuilder) PushNull() {
	b.coords.PushXY(math.NaN(), math.NaN())
	b.validity.AppendNull()
}

// PushPoint appends p, or a null row when p is nil. An empty point is stored
// as (NaN, NaN).
func (b *PointArrayBuilder) PushPoint(p *geom.Point) error {
	if p == nil {
		b.PushNull()
		return nil
	}
	if err := checkLayout(p); err != nil {
		return err
	}
	if p.Empty() {
		b.coords.PushXY(math.NaN(), math.NaN())
	} else {
		b.coords.PushXY(p.X(), p.Y())
	}
	b.validity.AppendValid()
	return nil
}

func (b *PointArrayBuilder) PushGeometry(g geom.T) error {
	if g == nil {
		b.PushNull()
		return nil
	}
	p, ok := g.(*geom.Point)
	if !ok {
		return shapeMismatch(common.GeometryTypePoint, g)
	}
	return b.PushPoint(p)
}

func (b *PointArrayBuilder) Build() *PointArray {
	return mustBuild(NewPointArray(b.coords.Build(), b.validity.Finish()))
}

// PointArrayFromGeoms is a convenience over PointArrayBuilder.
func PointArrayFromGeoms(geoms []geom.T) (*PointArray, error) {
	b := NewPointArrayBuilder(len(geoms))
	for i, g := range geoms {
		if err := b.PushGeometry(g); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
	}
	return b.Build(), nil
}
