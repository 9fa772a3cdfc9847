package scalar

import (
	"fmt"
	"math"

	"github.com/twpayne/go-geom"

	"github.com/hangxie/geocolumn/buffer"
	"github.com/hangxie/geocolumn/common"
)

// Point is a view of one coordinate. An empty point is stored as (NaN, NaN).
type Point struct {
	coords buffer.CoordBuffer
	index  int
}

func NewPoint(coords buffer.CoordBuffer, index int) (*Point, error) {
	if index < 0 || index >= coords.Len() {
		return nil, fmt.Errorf("point %d of %d: %w", index, coords.Len(), common.ErrOutOfRange)
	}
	return &Point{coords: coords, index: index}, nil
}

func (p *Point) X() float64 {
	x, _ := p.coords.XY(p.index)
	return x
}

func (p *Point) Y() float64 {
	_, y := p.coords.XY(p.index)
	return y
}

func (p *Point) IsEmpty() bool {
	x, y := p.coords.XY(p.index)
	return math.IsNaN(x) && math.IsNaN(y)
}

func (p *Point) GeometryType() common.GeometryType { return common.GeometryTypePoint }

func (p *Point) Coords() buffer.CoordBuffer { return coordRange(p.coords, p.index, p.index+1) }

func (p *Point) ToGeo() geom.T {
	if p.IsEmpty() {
		return geom.NewPointEmpty(geom.XY)
	}
	x, y := p.coords.XY(p.index)
	return geom.NewPointFlat(geom.XY, []float64{x, y})
}

func (p *Point) sealed() {}
