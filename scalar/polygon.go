package scalar

import (
	"github.com/twpayne/go-geom"

	"github.com/hangxie/geocolumn/buffer"
	"github.com/hangxie/geocolumn/common"
)

// Polygon is a view of a run of rings. The first ring is the exterior, the
// rest are interiors in order.
type Polygon[O common.Offset] struct {
	coords      buffer.CoordBuffer
	geomOffsets buffer.OffsetBuffer[O]
	ringOffsets buffer.OffsetBuffer[O]
	index       int
	start, end  int
}

func NewPolygon[O common.Offset](coords buffer.CoordBuffer, geomOffsets, ringOffsets buffer.OffsetBuffer[O], index int) (*Polygon[O], error) {
	start, end, err := geomOffsets.StartEnd(index)
	if err != nil {
		return nil, err
	}
	return &Polygon[O]{coords: coords, geomOffsets: geomOffsets, ringOffsets: ringOffsets, index: index, start: start, end: end}, nil
}

func polygonAt[O common.Offset](coords buffer.CoordBuffer, geomOffsets, ringOffsets buffer.OffsetBuffer[O], index int) *Polygon[O] {
	return &Polygon[O]{
		coords:      coords,
		geomOffsets: geomOffsets,
		ringOffsets: ringOffsets,
		index:       index,
		start:       geomOffsets.At(index),
		end:         geomOffsets.At(index + 1),
	}
}

func (p *Polygon[O]) NumRings() int { return p.end - p.start }

// Exterior returns false for an empty polygon.
func (p *Polygon[O]) Exterior() (*LineString[O], bool) {
	if p.NumRings() == 0 {
		return nil, false
	}
	return lineStringAt(p.coords, p.ringOffsets, p.start), true
}

func (p *Polygon[O]) NumInteriors() int {
	return max(p.NumRings()-1, 0)
}

func (p *Polygon[O]) Interior(i int) (*LineString[O], bool) {
	if i < 0 || i >= p.NumInteriors() {
		return nil, false
	}
	return lineStringAt(p.coords, p.ringOffsets, p.start+1+i), true
}

func (p *Polygon[O]) GeometryType() common.GeometryType { return common.GeometryTypePolygon }

func (p *Polygon[O]) Coords() buffer.CoordBuffer {
	return coordRange(p.coords, p.ringOffsets.At(p.start), p.ringOffsets.At(p.end))
}

func (p *Polygon[O]) ToGeo() geom.T {
	return p.toGeo()
}

func (p *Polygon[O]) toGeo() *geom.Polygon {
	flat := flatCopy(p.coords, p.ringOffsets.At(p.start), p.ringOffsets.At(p.end))
	return geom.NewPolygonFlat(geom.XY, flat, relativeEnds(p.ringOffsets, p.start, p.end))
}

func (p *Polygon[O]) sealed() {}
