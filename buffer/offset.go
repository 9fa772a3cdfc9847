package buffer

import (
	"fmt"
	"math"

	"github.com/hangxie/geocolumn/common"
)

// OffsetBuffer partitions the buffer one level below into groups: group i
// spans [At(i), At(i+1)).
type OffsetBuffer[O common.Offset] struct {
	values []O
}

// NewOffsetBuffer wraps values without copying after checking that there is
// at least one entry, the first is not negative, and the sequence never
// decreases.
func NewOffsetBuffer[O common.Offset](values []O) (OffsetBuffer[O], error) {
	if len(values) == 0 {
		return OffsetBuffer[O]{}, fmt.Errorf("offset buffer is empty: %w", common.ErrMalformedBuffer)
	}
	if values[0] < 0 {
		return OffsetBuffer[O]{}, fmt.Errorf("offset buffer starts at %d: %w", values[0], common.ErrMalformedBuffer)
	}
	for i := 1; i < len(values); i++ {
		if values[i] < values[i-1] {
			return OffsetBuffer[O]{}, fmt.Errorf("offset %d (%d) is less than offset %d (%d): %w",
				i, values[i], i-1, values[i-1], common.ErrMalformedBuffer)
		}
	}
	return OffsetBuffer[O]{values: values}, nil
}

// Len returns the number of offset entries, one more than RowCount.
func (o OffsetBuffer[O]) Len() int {
	return len(o.values)
}

// RowCount returns the number of groups.
func (o OffsetBuffer[O]) RowCount() int {
	if len(o.values) == 0 {
		return 0
	}
	return len(o.values) - 1
}

func (o OffsetBuffer[O]) At(i int) int {
	return int(o.values[i])
}

// Last returns the terminal offset, which bounds the child buffer.
func (o OffsetBuffer[O]) Last() int {
	if len(o.values) == 0 {
		return 0
	}
	return int(o.values[len(o.values)-1])
}

// StartEnd returns the half-open child range of group i.
func (o OffsetBuffer[O]) StartEnd(i int) (int, int, error) {
	if i < 0 || i+1 >= len(o.values) {
		return 0, 0, fmt.Errorf("offset index %d of %d entries: %w", i+1, len(o.values), common.ErrOutOfRange)
	}
	return int(o.values[i]), int(o.values[i+1]), nil
}

// Values exposes the raw offsets. Callers must treat it as read-only.
func (o OffsetBuffer[O]) Values() []O {
	return o.values
}

// OffsetBufferBuilder records group lengths as cumulative offsets. It starts
// with the leading zero already in place.
type OffsetBufferBuilder[O common.Offset] struct {
	values []O
}

func NewOffsetBufferBuilder[O common.Offset](capacity int) *OffsetBufferBuilder[O] {
	values := make([]O, 1, capacity+1)
	return &OffsetBufferBuilder[O]{values: values}
}

// PushLength closes a group of n children.
func (b *OffsetBufferBuilder[O]) PushLength(n int) {
	b.values = append(b.values, toOffset[O](int(b.values[len(b.values)-1])+n))
}

// PushEmpty closes a zero-width group, repeating the previous offset. Null
// rows use it.
func (b *OffsetBufferBuilder[O]) PushEmpty() {
	b.values = append(b.values, b.values[len(b.values)-1])
}

// Last returns the current cumulative child count.
func (b *OffsetBufferBuilder[O]) Last() int {
	return int(b.values[len(b.values)-1])
}

// RowCount returns the number of groups pushed so far.
func (b *OffsetBufferBuilder[O]) RowCount() int {
	return len(b.values) - 1
}

// Build freezes the builder. The builder must not be used afterwards.
func (b *OffsetBufferBuilder[O]) Build() OffsetBuffer[O] {
	values := b.values
	b.values = nil
	return OffsetBuffer[O]{values: values}
}

// toOffset panics when n does not fit O. Builders only reach it after
// appending more children than the offset width can address.
func toOffset[O common.Offset](n int) O {
	var zero O
	if _, narrow := any(zero).(int32); narrow && n > math.MaxInt32 {
		panic(fmt.Sprintf("offset %d overflows int32", n))
	}
	return O(n)
}
