package types

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/hangxie/geocolumn/common"
)

// Box2DFields is the struct layout of a bounding box column.
func Box2DFields() []arrow.Field {
	return []arrow.Field{
		{Name: "xmin", Type: arrow.PrimitiveTypes.Float64},
		{Name: "ymin", Type: arrow.PrimitiveTypes.Float64},
		{Name: "xmax", Type: arrow.PrimitiveTypes.Float64},
		{Name: "ymax", Type: arrow.PrimitiveTypes.Float64},
	}
}

// BuildBox2DArray builds a struct column from boxes; a nil entry becomes a
// null row. The caller owns the result and must release it.
func BuildBox2DArray(mem memory.Allocator, boxes []*Box2D) *array.Struct {
	b := array.NewStructBuilder(mem, arrow.StructOf(Box2DFields()...))
	defer b.Release()
	b.Reserve(len(boxes))

	fields := make([]*array.Float64Builder, b.NumField())
	for i := range fields {
		fields[i] = b.FieldBuilder(i).(*array.Float64Builder)
	}
	for _, box := range boxes {
		if box == nil {
			b.AppendNull()
			continue
		}
		b.Append(true)
		fields[0].Append(box.MinX)
		fields[1].Append(box.MinY)
		fields[2].Append(box.MaxX)
		fields[3].Append(box.MaxY)
	}
	return b.NewStructArray()
}

// Box2DValue reads row i of a column built by BuildBox2DArray. A null row
// returns (nil, nil).
func Box2DValue(arr *array.Struct, i int) (*Box2D, error) {
	if i < 0 || i >= arr.Len() {
		return nil, fmt.Errorf("row %d of %d: %w", i, arr.Len(), common.ErrOutOfRange)
	}
	if arr.NumField() != 4 {
		return nil, fmt.Errorf("box column has %d fields: %w", arr.NumField(), common.ErrShapeMismatch)
	}
	if arr.IsNull(i) {
		return nil, nil
	}
	var v [4]float64
	for f := range v {
		col, ok := arr.Field(f).(*array.Float64)
		if !ok {
			return nil, fmt.Errorf("box field %d is %s: %w", f, arr.Field(f).DataType(), common.ErrShapeMismatch)
		}
		v[f] = col.Value(i)
	}
	return &Box2D{MinX: v[0], MinY: v[1], MaxX: v[2], MaxY: v[3]}, nil
}
