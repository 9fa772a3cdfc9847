// Package geoarray holds the columnar geometry arrays. Each array keeps its
// coordinates in one flat buffer and partitions them with as many levels of
// offsets as its shape needs.
package geoarray

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/twpayne/go-geom"

	"github.com/hangxie/geocolumn/buffer"
	"github.com/hangxie/geocolumn/common"
	"github.com/hangxie/geocolumn/scalar"
)

// GeometryArray is the read API shared by the typed arrays and the mixed
// array.
type GeometryArray interface {
	Len() int
	IsNull(i int) bool
	NullCount() int
	GeometryType() common.GeometryType
	ExtensionName() string
	// Geometry returns the view of row i, or nil for a null row.
	Geometry(i int) (scalar.Geometry, error)
	// ValueAsGeom materializes row i, or returns nil for a null row.
	ValueAsGeom(i int) (geom.T, error)
	// ToArrow exports the array as a GeoArrow extension array sharing the
	// same buffers. The caller owns the result and must release it.
	ToArrow() arrow.Array
}

type arrayBase struct {
	nulls  *buffer.NullBuffer
	length int
}

func (a *arrayBase) Len() int { return a.length }

func (a *arrayBase) IsNull(i int) bool { return a.nulls.IsNull(i) }

func (a *arrayBase) NullCount() int { return a.nulls.NullCount() }

// Nulls returns the validity buffer, nil when every row is valid.
func (a *arrayBase) Nulls() *buffer.NullBuffer { return a.nulls }

func (a *arrayBase) checkIndex(i int) error {
	if i < 0 || i >= a.length {
		return fmt.Errorf("row %d of %d: %w", i, a.length, common.ErrOutOfRange)
	}
	return nil
}

// ToGeoms materializes every row of arr; null rows become nil.
func ToGeoms(arr GeometryArray) ([]geom.T, error) {
	out := make([]geom.T, arr.Len())
	for i := range arr.Len() {
		g, err := arr.ValueAsGeom(i)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = g
	}
	return out, nil
}

// geometryOf keeps a nil view from turning into a non-nil interface value.
func geometryOf[T any, P interface {
	*T
	scalar.Geometry
}](v P, err error) (scalar.Geometry, error) {
	if err != nil || v == nil {
		return nil, err
	}
	return v, nil
}

func checkLayout(g geom.T) error {
	if g.Layout() != geom.XY {
		return fmt.Errorf("layout %v of %T, only XY is stored: %w", g.Layout(), g, common.ErrShapeMismatch)
	}
	return nil
}

func shapeMismatch(want common.GeometryType, g geom.T) error {
	return fmt.Errorf("cannot push %T into a %s array: %w", g, want, common.ErrShapeMismatch)
}

// mustBuild turns a constructor failure inside a builder into a panic; a
// builder only produces consistent buffers.
func mustBuild[A any](arr A, err error) A {
	if err != nil {
		panic(fmt.Sprintf("builder produced an invalid array: %v", err))
	}
	return arr
}
