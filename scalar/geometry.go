// Package scalar provides read-only views over single rows of a geometry
// array. A view copies only slice headers; the coordinate and offset storage
// stays shared with the array it came from.
package scalar

import (
	"fmt"

	"github.com/twpayne/go-geom"

	"github.com/hangxie/geocolumn/buffer"
	"github.com/hangxie/geocolumn/common"
)

// Geometry is implemented by exactly the six row views of this package.
type Geometry interface {
	GeometryType() common.GeometryType
	// ToGeo materializes the row into an owned go-geom geometry.
	ToGeo() geom.T
	// Coords returns the coordinates covered by the row, sharing storage.
	Coords() buffer.CoordBuffer
	sealed()
}

// coordRange slices [start, end) out of coords. The range always comes from
// validated offsets.
func coordRange(coords buffer.CoordBuffer, start, end int) buffer.CoordBuffer {
	c, err := coords.Slice(start, end-start)
	if err != nil {
		panic(fmt.Sprintf("coordinate window of a validated array: %v", err))
	}
	return c
}

// flatCopy returns a fresh copy of the interleaved coordinates [start, end).
func flatCopy(coords buffer.CoordBuffer, start, end int) []float64 {
	values := coords.Values()
	flat := make([]float64, 2*(end-start))
	copy(flat, values[2*start:2*end])
	return flat
}

// relativeEnds converts offsets[from..to] into go-geom ends, which are
// positions in the flat slice relative to the first coordinate.
func relativeEnds[O common.Offset](offsets buffer.OffsetBuffer[O], from, to int) []int {
	base := offsets.At(from)
	ends := make([]int, 0, to-from)
	for i := from + 1; i <= to; i++ {
		ends = append(ends, 2*(offsets.At(i)-base))
	}
	return ends
}
