package geoarray

import (
	"fmt"

	"github.com/twpayne/go-geom"

	"github.com/hangxie/geocolumn/buffer"
	"github.com/hangxie/geocolumn/common"
	"github.com/hangxie/geocolumn/scalar"
)

// MixedChildren holds one optional typed array per union arm.
type MixedChildren[O common.Offset] struct {
	Points           *PointArray
	LineStrings      *LineStringArray[O]
	Polygons         *PolygonArray[O]
	MultiPoints      *MultiPointArray[O]
	MultiLineStrings *MultiLineStringArray[O]
	MultiPolygons    *MultiPolygonArray[O]
}

// child returns the arm selected by t, or nil when it is absent.
func (c *MixedChildren[O]) child(t common.GeometryType) GeometryArray {
	switch t {
	case common.GeometryTypePoint:
		if c.Points != nil {
			return c.Points
		}
	case common.GeometryTypeLineString:
		if c.LineStrings != nil {
			return c.LineStrings
		}
	case common.GeometryTypePolygon:
		if c.Polygons != nil {
			return c.Polygons
		}
	case common.GeometryTypeMultiPoint:
		if c.MultiPoints != nil {
			return c.MultiPoints
		}
	case common.GeometryTypeMultiLineString:
		if c.MultiLineStrings != nil {
			return c.MultiLineStrings
		}
	case common.GeometryTypeMultiPolygon:
		if c.MultiPolygons != nil {
			return c.MultiPolygons
		}
	}
	return nil
}

// MixedGeometryArray is a dense union of the six typed arrays: typeIDs[i]
// selects the arm, offsets[i] the row inside it.
type MixedGeometryArray[O common.Offset] struct {
	arrayBase
	typeIDs  []int8
	offsets  []int32
	children MixedChildren[O]
}

// NewMixedGeometryArray validates that every row references a present arm
// within its bounds, and that null rows point at null slots.
func NewMixedGeometryArray[O common.Offset](typeIDs []int8, offsets []int32, nulls *buffer.NullBuffer, children MixedChildren[O]) (*MixedGeometryArray[O], error) {
	if len(typeIDs) != len(offsets) {
		return nil, fmt.Errorf("%d type ids and %d offsets: %w", len(typeIDs), len(offsets), common.ErrMalformedBuffer)
	}
	if err := buffer.CheckNulls(nulls, len(typeIDs)); err != nil {
		return nil, err
	}
	for i, id := range typeIDs {
		t, err := common.ParseGeometryType(id)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		child := children.child(t)
		if child == nil {
			return nil, fmt.Errorf("row %d references %s: %w", i, t, common.ErrMissingUnionArm)
		}
		off := int(offsets[i])
		if off < 0 || off >= child.Len() {
			return nil, fmt.Errorf("row %d offset %d outside %s child of %d rows: %w", i, off, t, child.Len(), common.ErrMalformedBuffer)
		}
		if nulls.IsNull(i) && !child.IsNull(off) {
			return nil, fmt.Errorf("null row %d points at a valid %s slot: %w", i, t, common.ErrMalformedBuffer)
		}
	}
	return &MixedGeometryArray[O]{
		arrayBase: arrayBase{nulls: nulls, length: len(typeIDs)},
		typeIDs:   typeIDs,
		offsets:   offsets,
		children:  children,
	}, nil
}

func (a *MixedGeometryArray[O]) TypeIDs() []int8 { return a.typeIDs }

func (a *MixedGeometryArray[O]) Offsets() []int32 { return a.offsets }

func (a *MixedGeometryArray[O]) Children() MixedChildren[O] { return a.children }

func (a *MixedGeometryArray[O]) GeometryType() common.GeometryType { return common.GeometryTypeMixed }

func (a *MixedGeometryArray[O]) ExtensionName() string { return common.ExtensionNameGeometry }

// Value dispatches row i to its arm. A missing arm or an unknown id is data
// corruption and reported as an error.
func (a *MixedGeometryArray[O]) Value(i int) (scalar.Geometry, error) {
	if err := a.checkIndex(i); err != nil {
		return nil, err
	}
	if a.IsNull(i) {
		return nil, nil
	}
	t, err := common.ParseGeometryType(a.typeIDs[i])
	if err != nil {
		return nil, fmt.Errorf("row %d: %w", i, err)
	}
	child := a.children.child(t)
	if child == nil {
		return nil, fmt.Errorf("row %d references %s: %w", i, t, common.ErrMissingUnionArm)
	}
	return child.Geometry(int(a.offsets[i]))
}

func (a *MixedGeometryArray[O]) Geometry(i int) (scalar.Geometry, error) { return a.Value(i) }

func (a *MixedGeometryArray[O]) ValueAsGeom(i int) (geom.T, error) {
	v, err := a.Value(i)
	if err != nil || v == nil {
		return nil, err
	}
	return v.ToGeo(), nil
}

func (a *MixedGeometryArray[O]) ToGeoms() ([]geom.T, error) { return ToGeoms(a) }

// MixedGeometryArrayBuilder creates arm builders on first use.
type MixedGeometryArrayBuilder[O common.Offset] struct {
	typeIDs  []int8
	offsets  []int32
	validity *buffer.NullBufferBuilder

	points           *PointArrayBuilder
	lineStrings      *LineStringArrayBuilder[O]
	polygons         *PolygonArrayBuilder[O]
	multiPoints      *MultiPointArrayBuilder[O]
	multiLineStrings *MultiLineStringArrayBuilder[O]
	multiPolygons    *MultiPolygonArrayBuilder[O]
}

func NewMixedGeometryArrayBuilder[O common.Offset](capacity int) *MixedGeometryArrayBuilder[O] {
	return &MixedGeometryArrayBuilder[O]{
		typeIDs:  make([]int8, 0, capacity),
		offsets:  make([]int32, 0, capacity),
		validity: buffer.NewNullBufferBuilder(capacity),
	}
}

func (b *MixedGeometryArrayBuilder[O]) Len() int { return len(b.typeIDs) }

func (b *MixedGeometryArrayBuilder[O]) pointBuilder() *PointArrayBuilder {
	if b.points == nil {
		b.points = NewPointArrayBuilder(0)
	}
	return b.points
}

// PushNull stores a null slot in the point arm and clears the row's bit.
func (b *MixedGeometryArrayBuilder[O]) PushNull() {
	points := b.pointBuilder()
	b.record(common.GeometryTypePoint, points.Len())
	points.PushNull()
	b.validity.AppendNull()
}

func (b *MixedGeometryArrayBuilder[O]) record(t common.GeometryType, offset int) {
	b.typeIDs = append(b.typeIDs, int8(t))
	b.offsets = append(b.offsets, int32(offset))
}

// PushGeometry appends g to the arm matching its shape; nil, typed or not,
// appends a null.
func (b *MixedGeometryArrayBuilder[O]) PushGeometry(g geom.T) error {
	if common.IsNilGeometry(g) {
		b.PushNull()
		return nil
	}
	t, err := common.GeometryTypeOf(g)
	if err != nil {
		return err
	}
	if err := checkLayout(g); err != nil {
		return err
	}
	switch t {
	case common.GeometryTypePoint:
		child := b.pointBuilder()
		b.record(t, child.Len())
		err = child.PushGeometry(g)
	case common.GeometryTypeLineString:
		if b.lineStrings == nil {
			b.lineStrings = NewLineStringArrayBuilder[O](0)
		}
		b.record(t, b.lineStrings.Len())
		err = b.lineStrings.PushGeometry(g)
	case common.GeometryTypePolygon:
		if b.polygons == nil {
			b.polygons = NewPolygonArrayBuilder[O](0)
		}
		b.record(t, b.polygons.Len())
		err = b.polygons.PushGeometry(g)
	case common.GeometryTypeMultiPoint:
		if b.multiPoints == nil {
			b.multiPoints = NewMultiPointArrayBuilder[O](0)
		}
		b.record(t, b.multiPoints.Len())
		err = b.multiPoints.PushGeometry(g)
	case common.GeometryTypeMultiLineString:
		if b.multiLineStrings == nil {
			b.multiLineStrings = NewMultiLineStringArrayBuilder[O](0)
		}
		b.record(t, b.multiLineStrings.Len())
		err = b.multiLineStrings.PushGeometry(g)
	case common.GeometryTypeMultiPolygon:
		if b.multiPolygons == nil {
			b.multiPolygons = NewMultiPolygonArrayBuilder[O](0)
		}
		b.record(t, b.multiPolygons.Len())
		err = b.multiPolygons.PushGeometry(g)
	}
	if err != nil {
		// layout and shape were checked above; arm builders cannot fail here
		panic(fmt.Sprintf("mixed builder arm rejected a checked geometry: %v", err))
	}
	b.validity.AppendValid()
	return nil
}

func (b *MixedGeometryArrayBuilder[O]) Build() *MixedGeometryArray[O] {
	var children MixedChildren[O]
	if b.points != nil {
		children.Points = b.points.Build()
	}
	if b.lineStrings != nil {
		children.LineStrings = b.lineStrings.Build()
	}
	if b.polygons != nil {
		children.Polygons = b.polygons.Build()
	}
	if b.multiPoints != nil {
		children.MultiPoints = b.multiPoints.Build()
	}
	if b.multiLineStrings != nil {
		children.MultiLineStrings = b.multiLineStrings.Build()
	}
	if b.multiPolygons != nil {
		children.MultiPolygons = b.multiPolygons.Build()
	}
	return mustBuild(NewMixedGeometryArray(b.typeIDs, b.offsets, b.validity.Finish(), children))
}

// MixedGeometryArrayFromGeoms is a convenience over MixedGeometryArrayBuilder.
func MixedGeometryArrayFromGeoms[O common.Offset](geoms []geom.T) (*MixedGeometryArray[O], error) {
	b := NewMixedGeometryArrayBuilder[O](len(geoms))
	for i, g := range geoms {
		if err := b.PushGeometry(g); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
	}
	return b.Build(), nil
}
