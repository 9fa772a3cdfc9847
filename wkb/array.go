package wkb

import (
	"fmt"
	"iter"

	"github.com/twpayne/go-geom"

	"github.com/hangxie/geocolumn/buffer"
	"github.com/hangxie/geocolumn/common"
)

// Array is a column of binary geometries sharing one dialect. Offsets
// address the tag-stripped payload bytes.
type Array[O common.Offset] struct {
	buf     Buffer
	offsets buffer.OffsetBuffer[O]
	nulls   *buffer.NullBuffer
}

// NewArray checks the buffer layout and decodes every valid payload once.
// Reads never decode again to validate.
func NewArray[O common.Offset](buf Buffer, offsets buffer.OffsetBuffer[O], nulls *buffer.NullBuffer) (*Array[O], error) {
	arr, err := newArray(buf, offsets, nulls)
	if err != nil {
		return nil, err
	}
	for i := range arr.Len() {
		if arr.IsNull(i) {
			continue
		}
		if _, err := Decode(buf.Dialect(), arr.payload(i)); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
	}
	return arr, nil
}

func newArray[O common.Offset](buf Buffer, offsets buffer.OffsetBuffer[O], nulls *buffer.NullBuffer) (*Array[O], error) {
	if _, err := WKBTypeID(buf.Dialect()); err != nil {
		return nil, err
	}
	if err := buffer.CheckTerminalOffset("payload", offsets, buf.Len()); err != nil {
		return nil, err
	}
	if err := buffer.CheckNulls(nulls, offsets.RowCount()); err != nil {
		return nil, err
	}
	return &Array[O]{buf: buf, offsets: offsets, nulls: nulls}, nil
}

func (a *Array[O]) Len() int { return a.offsets.RowCount() }

func (a *Array[O]) IsNull(i int) bool { return a.nulls.IsNull(i) }

func (a *Array[O]) NullCount() int { return a.nulls.NullCount() }

func (a *Array[O]) Nulls() *buffer.NullBuffer { return a.nulls }

func (a *Array[O]) Dialect() Dialect { return a.buf.Dialect() }

func (a *Array[O]) Buffer() Buffer { return a.buf }

func (a *Array[O]) Offsets() buffer.OffsetBuffer[O] { return a.offsets }

func (a *Array[O]) payload(i int) []byte {
	start, end := a.offsets.At(i), a.offsets.At(i+1)
	return a.buf.Data()[start:end:end]
}

// Value returns the view of row i, nil for a null row.
func (a *Array[O]) Value(i int) (*Geometry, error) {
	if i < 0 || i >= a.Len() {
		return nil, fmt.Errorf("row %d of %d: %w", i, a.Len(), common.ErrOutOfRange)
	}
	if a.IsNull(i) {
		return nil, nil
	}
	return &Geometry{dialect: a.Dialect(), payload: a.payload(i)}, nil
}

// ValueAsGeom decodes row i, nil for a null row.
func (a *Array[O]) ValueAsGeom(i int) (geom.T, error) {
	v, err := a.Value(i)
	if err != nil || v == nil {
		return nil, err
	}
	return v.ToGeo()
}

// ToGeoms decodes every row; null rows become nil.
func (a *Array[O]) ToGeoms() ([]geom.T, error) {
	out := make([]geom.T, a.Len())
	for i := range out {
		g, err := a.ValueAsGeom(i)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = g
	}
	return out, nil
}

// All yields every row view; null rows yield nil.
func (a *Array[O]) All() iter.Seq2[int, *Geometry] {
	return func(yield func(int, *Geometry) bool) {
		for i := range a.Len() {
			v, _ := a.Value(i)
			if !yield(i, v) {
				return
			}
		}
	}
}

// Geometry is a view of one payload.
type Geometry struct {
	dialect Dialect
	payload []byte
}

// Bytes returns the payload without the dialect tag. Callers must not
// modify it.
func (g *Geometry) Bytes() []byte { return g.payload }

func (g *Geometry) Dialect() Dialect { return g.dialect }

func (g *Geometry) ToGeo() (geom.T, error) { return Decode(g.dialect, g.payload) }

func (g *Geometry) SRID() (int, error) { return SRID(g.dialect, g.payload) }
