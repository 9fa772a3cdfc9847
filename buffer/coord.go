package buffer

import (
	"fmt"

	"github.com/hangxie/geocolumn/common"
)

// CoordBuffer is a flat run of interleaved x/y float64 values. Point i lives
// at slots 2i and 2i+1.
type CoordBuffer struct {
	values []float64
}

// NewCoordBuffer wraps values without copying. The slice must not be
// modified afterwards.
func NewCoordBuffer(values []float64) (CoordBuffer, error) {
	if len(values)%2 != 0 {
		return CoordBuffer{}, fmt.Errorf("coordinate buffer has odd length %d: %w", len(values), common.ErrMalformedBuffer)
	}
	return CoordBuffer{values: values}, nil
}

// Len returns the number of points.
func (c CoordBuffer) Len() int {
	return len(c.values) / 2
}

func (c CoordBuffer) X(i int) (float64, bool) {
	if i < 0 || i >= c.Len() {
		return 0, false
	}
	return c.values[2*i], true
}

func (c CoordBuffer) Y(i int) (float64, bool) {
	if i < 0 || i >= c.Len() {
		return 0, false
	}
	return c.values[2*i+1], true
}

// XY reads point i without a bounds check beyond the one the runtime does.
// Callers index through validated offsets.
func (c CoordBuffer) XY(i int) (float64, float64) {
	return c.values[2*i], c.values[2*i+1]
}

// Slice returns the points [offset, offset+length) sharing the same backing
// storage.
func (c CoordBuffer) Slice(offset, length int) (CoordBuffer, error) {
	if offset < 0 || length < 0 || offset+length > c.Len() {
		return CoordBuffer{}, fmt.Errorf("slice [%d, %d) of %d points: %w", offset, offset+length, c.Len(), common.ErrOutOfRange)
	}
	return CoordBuffer{values: c.values[2*offset : 2*(offset+length) : 2*(offset+length)]}, nil
}

// Values exposes the interleaved storage. Callers must treat it as read-only.
func (c CoordBuffer) Values() []float64 {
	return c.values
}

// CoordBufferBuilder accumulates points for a CoordBuffer.
type CoordBufferBuilder struct {
	values []float64
}

func NewCoordBufferBuilder(capacity int) *CoordBufferBuilder {
	return &CoordBufferBuilder{values: make([]float64, 0, 2*capacity)}
}

func (b *CoordBufferBuilder) PushXY(x, y float64) {
	b.values = append(b.values, x, y)
}

// PushFlat appends every point of a flat coordinate slice, keeping the first
// two ordinates of each stride.
func (b *CoordBufferBuilder) PushFlat(flat []float64, stride int) {
	for i := 0; i+stride <= len(flat); i += stride {
		b.values = append(b.values, flat[i], flat[i+1])
	}
}

// Len returns the number of points pushed so far.
func (b *CoordBufferBuilder) Len() int {
	return len(b.values) / 2
}

// Build freezes the builder. The builder must not be used afterwards.
func (b *CoordBufferBuilder) Build() CoordBuffer {
	values := b.values
	b.values = nil
	return CoordBuffer{values: values}
}
