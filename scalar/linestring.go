package scalar

import (
	"github.com/twpayne/go-geom"

	"github.com/hangxie/geocolumn/buffer"
	"github.com/hangxie/geocolumn/common"
)

// LineString is a view of the coordinates between two consecutive offsets.
// Polygon rings and multi-linestring members are served by the same view.
type LineString[O common.Offset] struct {
	coords     buffer.CoordBuffer
	offsets    buffer.OffsetBuffer[O]
	index      int
	start, end int
}

// NewLineString builds the view of row index of offsets.
func NewLineString[O common.Offset](coords buffer.CoordBuffer, offsets buffer.OffsetBuffer[O], index int) (*LineString[O], error) {
	start, end, err := offsets.StartEnd(index)
	if err != nil {
		return nil, err
	}
	return &LineString[O]{coords: coords, offsets: offsets, index: index, start: start, end: end}, nil
}

// lineStringAt skips the bounds check for offsets already validated.
func lineStringAt[O common.Offset](coords buffer.CoordBuffer, offsets buffer.OffsetBuffer[O], index int) *LineString[O] {
	return &LineString[O]{coords: coords, offsets: offsets, index: index, start: offsets.At(index), end: offsets.At(index + 1)}
}

func (l *LineString[O]) NumCoords() int { return l.end - l.start }

func (l *LineString[O]) Coord(i int) (*Point, bool) {
	if i < 0 || i >= l.NumCoords() {
		return nil, false
	}
	return &Point{coords: l.coords, index: l.start + i}, true
}

func (l *LineString[O]) GeometryType() common.GeometryType { return common.GeometryTypeLineString }

func (l *LineString[O]) Coords() buffer.CoordBuffer { return coordRange(l.coords, l.start, l.end) }

func (l *LineString[O]) ToGeo() geom.T {
	return geom.NewLineStringFlat(geom.XY, flatCopy(l.coords, l.start, l.end))
}

func (l *LineString[O]) sealed() {}
