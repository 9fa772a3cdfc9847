package scalar

import (
	"github.com/twpayne/go-geom"

	"github.com/hangxie/geocolumn/buffer"
	"github.com/hangxie/geocolumn/common"
)

// MultiPoint is a view of the coordinates of one row, each one a point.
type MultiPoint[O common.Offset] struct {
	coords      buffer.CoordBuffer
	geomOffsets buffer.OffsetBuffer[O]
	index       int
	start, end  int
}

func NewMultiPoint[O common.Offset](coords buffer.CoordBuffer, geomOffsets buffer.OffsetBuffer[O], index int) (*MultiPoint[O], error) {
	start, end, err := geomOffsets.StartEnd(index)
	if err != nil {
		return nil, err
	}
	return &MultiPoint[O]{coords: coords, geomOffsets: geomOffsets, index: index, start: start, end: end}, nil
}

func (m *MultiPoint[O]) NumPoints() int { return m.end - m.start }

func (m *MultiPoint[O]) Point(i int) (*Point, bool) {
	if i < 0 || i >= m.NumPoints() {
		return nil, false
	}
	return &Point{coords: m.coords, index: m.start + i}, true
}

func (m *MultiPoint[O]) GeometryType() common.GeometryType { return common.GeometryTypeMultiPoint }

func (m *MultiPoint[O]) Coords() buffer.CoordBuffer { return coordRange(m.coords, m.start, m.end) }

func (m *MultiPoint[O]) ToGeo() geom.T {
	return geom.NewMultiPointFlat(geom.XY, flatCopy(m.coords, m.start, m.end))
}

func (m *MultiPoint[O]) sealed() {}

// MultiLineString is a view of a run of independent lines.
type MultiLineString[O common.Offset] struct {
	coords      buffer.CoordBuffer
	geomOffsets buffer.OffsetBuffer[O]
	ringOffsets buffer.OffsetBuffer[O]
	index       int
	start, end  int
}

func NewMultiLineString[O common.Offset](coords buffer.CoordBuffer, geomOffsets, ringOffsets buffer.OffsetBuffer[O], index int) (*MultiLineString[O], error) {
	start, end, err := geomOffsets.StartEnd(index)
	if err != nil {
		return nil, err
	}
	return &MultiLineString[O]{coords: coords, geomOffsets: geomOffsets, ringOffsets: ringOffsets, index: index, start: start, end: end}, nil
}

func (m *MultiLineString[O]) NumLines() int { return m.end - m.start }

func (m *MultiLineString[O]) Line(i int) (*LineString[O], bool) {
	if i < 0 || i >= m.NumLines() {
		return nil, false
	}
	return lineStringAt(m.coords, m.ringOffsets, m.start+i), true
}

func (m *MultiLineString[O]) GeometryType() common.GeometryType {
	return common.GeometryTypeMultiLineString
}

func (m *MultiLineString[O]) Coords() buffer.CoordBuffer {
	return coordRange(m.coords, m.ringOffsets.At(m.start), m.ringOffsets.At(m.end))
}

func (m *MultiLineString[O]) ToGeo() geom.T {
	flat := flatCopy(m.coords, m.ringOffsets.At(m.start), m.ringOffsets.At(m.end))
	return geom.NewMultiLineStringFlat(geom.XY, flat, relativeEnds(m.ringOffsets, m.start, m.end))
}

func (m *MultiLineString[O]) sealed() {}

// MultiPolygon is a view of a run of polygons, each a run of rings.
type MultiPolygon[O common.Offset] struct {
	coords         buffer.CoordBuffer
	geomOffsets    buffer.OffsetBuffer[O]
	polygonOffsets buffer.OffsetBuffer[O]
	ringOffsets    buffer.OffsetBuffer[O]
	index          int
	start, end     int
}

func NewMultiPolygon[O common.Offset](coords buffer.CoordBuffer, geomOffsets, polygonOffsets, ringOffsets buffer.OffsetBuffer[O], index int) (*MultiPolygon[O], error) {
	start, end, err := geomOffsets.StartEnd(index)
	if err != nil {
		return nil, err
	}
	return &MultiPolygon[O]{
		coords:         coords,
		geomOffsets:    geomOffsets,
		polygonOffsets: polygonOffsets,
		ringOffsets:    ringOffsets,
		index:          index,
		start:          start,
		end:            end,
	}, nil
}

func (m *MultiPolygon[O]) NumPolygons() int { return m.end - m.start }

func (m *MultiPolygon[O]) Polygon(i int) (*Polygon[O], bool) {
	if i < 0 || i >= m.NumPolygons() {
		return nil, false
	}
	return polygonAt(m.coords, m.polygonOffsets, m.ringOffsets, m.start+i), true
}

func (m *MultiPolygon[O]) GeometryType() common.GeometryType { return common.GeometryTypeMultiPolygon }

func (m *MultiPolygon[O]) Coords() buffer.CoordBuffer {
	firstRing, lastRing := m.polygonOffsets.At(m.start), m.polygonOffsets.At(m.end)
	return coordRange(m.coords, m.ringOffsets.At(firstRing), m.ringOffsets.At(lastRing))
}

func (m *MultiPolygon[O]) ToGeo() geom.T {
	firstRing, lastRing := m.polygonOffsets.At(m.start), m.polygonOffsets.At(m.end)
	base := m.ringOffsets.At(firstRing)
	flat := flatCopy(m.coords, base, m.ringOffsets.At(lastRing))
	endss := make([][]int, 0, m.NumPolygons())
	for p := m.start; p < m.end; p++ {
		ends := make([]int, 0, m.polygonOffsets.At(p+1)-m.polygonOffsets.At(p))
		for r := m.polygonOffsets.At(p) + 1; r <= m.polygonOffsets.At(p+1); r++ {
			ends = append(ends, 2*(m.ringOffsets.At(r)-base))
		}
		endss = append(endss, ends)
	}
	return geom.NewMultiPolygonFlat(geom.XY, flat, endss)
}

func (m *MultiPolygon[O]) sealed() {}
