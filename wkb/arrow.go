package wkb

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/hangxie/geocolumn/common"
)

func isLarge[O common.Offset]() bool {
	var zero O
	_, ok := any(zero).(int64)
	return ok
}

// ToArrow exports the array as a Binary column, LargeBinary for int64
// offsets. Each valid row is the dialect tag followed by its payload, so
// the column is self describing row by row. The caller owns the result.
func (a *Array[O]) ToArrow(mem memory.Allocator) arrow.Array {
	dt := arrow.BinaryTypes.Binary
	if isLarge[O]() {
		dt = arrow.BinaryTypes.LargeBinary
	}
	b := array.NewBinaryBuilder(mem, dt)
	defer b.Release()
	b.Reserve(a.Len())
	b.ReserveData(a.buf.Len() + a.Len())

	tag := byte(a.Dialect())
	row := make([]byte, 0, 64)
	for i := range a.Len() {
		if a.IsNull(i) {
			b.AppendNull()
			continue
		}
		row = append(append(row[:0], tag), a.payload(i)...)
		b.Append(row)
	}
	return b.NewArray()
}

type binaryColumn interface {
	arrow.Array
	Value(i int) []byte
}

func binaryOf[O common.Offset](arr arrow.Array) (binaryColumn, error) {
	switch col := arr.(type) {
	case *array.Binary:
		if !isLarge[O]() {
			return col, nil
		}
	case *array.LargeBinary:
		if isLarge[O]() {
			return col, nil
		}
	}
	return nil, fmt.Errorf("arrow column of type %s: %w", arr.DataType(), common.ErrShapeMismatch)
}

// ArrayFromArrow imports a column written by ToArrow. Every valid row must
// carry the same dialect tag; a column of only nulls becomes plain WKB.
func ArrayFromArrow[O common.Offset](arr arrow.Array) (*Array[O], error) {
	col, err := binaryOf[O](arr)
	if err != nil {
		return nil, err
	}
	dialect := DialectWKB
	found := false
	for i := range col.Len() {
		if col.IsNull(i) {
			continue
		}
		row := col.Value(i)
		if len(row) == 0 {
			return nil, fmt.Errorf("row %d has no dialect tag: %w", i, common.ErrMalformedBuffer)
		}
		d, err := DecodeWKBDialect(row[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if !found {
			dialect, found = d, true
		} else if d != dialect {
			return nil, fmt.Errorf("row %d is %s in a %s column: %w", i, d, dialect, common.ErrMalformedBuffer)
		}
	}
	return fromBinary[O](col, dialect, 1)
}

// ArrayFromArrowWithDialect imports a column of untagged payloads.
func ArrayFromArrowWithDialect[O common.Offset](arr arrow.Array, d Dialect) (*Array[O], error) {
	col, err := binaryOf[O](arr)
	if err != nil {
		return nil, err
	}
	return fromBinary[O](col, d, 0)
}

// fromBinary copies each valid row after skipping skip leading bytes.
func fromBinary[O common.Offset](col binaryColumn, d Dialect, skip int) (*Array[O], error) {
	b, err := NewBuilder[O](d, col.Len())
	if err != nil {
		return nil, err
	}
	for i := range col.Len() {
		if col.IsNull(i) {
			b.AppendNull()
			continue
		}
		if err := b.appendChecked(col.Value(i)[skip:]); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}
