package compute

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/hangxie/geocolumn/common"
	"github.com/hangxie/geocolumn/wkb"
)

// SRIDs returns an int32 column with the SRID carried by each payload
// header; null rows stay null and dialects without an SRID report 0. The
// caller owns the result.
func SRIDs[O common.Offset](mem memory.Allocator, arr *wkb.Array[O]) (*array.Int32, error) {
	b := array.NewInt32Builder(mem)
	defer b.Release()
	b.Reserve(arr.Len())
	for i := range arr.Len() {
		v, err := arr.Value(i)
		if err != nil {
			return nil, err
		}
		if v == nil {
			b.AppendNull()
			continue
		}
		srid, err := v.SRID()
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		b.Append(int32(srid))
	}
	return b.NewInt32Array(), nil
}
