package buffer

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow/bitutil"

	"github.com/hangxie/geocolumn/common"
)

// NullBuffer is an LSB-ordered validity bitmap: a set bit marks a present
// row. A nil *NullBuffer means every row is valid.
type NullBuffer struct {
	bitmap    []byte
	offset    int
	length    int
	nullCount int
}

// NewNullBuffer wraps an Arrow-compatible validity bitmap covering bits
// [offset, offset+length).
func NewNullBuffer(bitmap []byte, offset, length int) (*NullBuffer, error) {
	if offset < 0 || length < 0 {
		return nil, fmt.Errorf("validity window [%d, +%d): %w", offset, length, common.ErrMalformedBuffer)
	}
	if need := int(bitutil.BytesForBits(int64(offset + length))); len(bitmap) < need {
		return nil, fmt.Errorf("validity bitmap has %d bytes, need %d: %w", len(bitmap), need, common.ErrMalformedBuffer)
	}
	return &NullBuffer{
		bitmap:    bitmap,
		offset:    offset,
		length:    length,
		nullCount: length - bitutil.CountSetBits(bitmap, offset, length),
	}, nil
}

// NewNullBufferFromBools builds a validity bitmap from one flag per row.
func NewNullBufferFromBools(valid []bool) *NullBuffer {
	b := NewNullBufferBuilder(len(valid))
	for _, v := range valid {
		b.Append(v)
	}
	return b.Finish()
}

// Len returns the number of rows covered, 0 for a nil buffer.
func (n *NullBuffer) Len() int {
	if n == nil {
		return 0
	}
	return n.length
}

func (n *NullBuffer) IsValid(i int) bool {
	if n == nil {
		return true
	}
	return bitutil.BitIsSet(n.bitmap, n.offset+i)
}

func (n *NullBuffer) IsNull(i int) bool {
	return !n.IsValid(i)
}

func (n *NullBuffer) NullCount() int {
	if n == nil {
		return 0
	}
	return n.nullCount
}

// Bitmap returns the bitmap realigned so that row 0 is bit 0, copying only
// when the window does not start on a byte boundary.
func (n *NullBuffer) Bitmap() []byte {
	if n == nil {
		return nil
	}
	size := int(bitutil.BytesForBits(int64(n.length)))
	if n.offset%8 == 0 {
		start := n.offset / 8
		return n.bitmap[start : start+size]
	}
	out := make([]byte, size)
	bitutil.CopyBitmap(n.bitmap, n.offset, n.length, out, 0)
	return out
}

// Slice narrows the buffer to rows [offset, offset+length) without copying.
func (n *NullBuffer) Slice(offset, length int) (*NullBuffer, error) {
	if n == nil {
		return nil, nil
	}
	if offset < 0 || length < 0 || offset+length > n.length {
		return nil, fmt.Errorf("slice [%d, %d) of %d rows: %w", offset, offset+length, n.length, common.ErrOutOfRange)
	}
	return NewNullBuffer(n.bitmap, n.offset+offset, length)
}

// NullBufferBuilder accumulates validity bits row by row.
type NullBufferBuilder struct {
	bits   []byte
	length int
	nulls  int
}

func NewNullBufferBuilder(capacity int) *NullBufferBuilder {
	return &NullBufferBuilder{bits: make([]byte, 0, bitutil.BytesForBits(int64(capacity)))}
}

func (b *NullBufferBuilder) Append(valid bool) {
	if b.length%8 == 0 {
		b.bits = append(b.bits, 0)
	}
	if valid {
		bitutil.SetBit(b.bits, b.length)
	} else {
		b.nulls++
	}
	b.length++
}

func (b *NullBufferBuilder) AppendValid() { b.Append(true) }

func (b *NullBufferBuilder) AppendNull() { b.Append(false) }

func (b *NullBufferBuilder) Len() int { return b.length }

// Finish freezes the builder. It returns nil when no null was appended.
func (b *NullBufferBuilder) Finish() *NullBuffer {
	defer func() { b.bits, b.length, b.nulls = nil, 0, 0 }()
	if b.nulls == 0 {
		return nil
	}
	return &NullBuffer{bitmap: b.bits, length: b.length, nullCount: b.nulls}
}
