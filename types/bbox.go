package types

import (
	"math"

	"github.com/twpayne/go-geom"
)

// BoundingBoxCalculator accumulates the xy bounds of coordinates. NaN
// ordinates, which mark empty points, are skipped.
type BoundingBoxCalculator struct {
	minX, minY, maxX, maxY float64
	initialized            bool
}

func NewBoundingBoxCalculator() *BoundingBoxCalculator {
	return &BoundingBoxCalculator{}
}

// AddPoint adds a coordinate point to the bounding box calculation
func (b *BoundingBoxCalculator) AddPoint(x, y float64) {
	if math.IsNaN(x) || math.IsNaN(y) {
		return
	}
	if !b.initialized {
		b.minX, b.maxX = x, x
		b.minY, b.maxY = y, y
		b.initialized = true
		return
	}

	b.minX = min(b.minX, x)
	b.maxX = max(b.maxX, x)
	b.minY = min(b.minY, y)
	b.maxY = max(b.maxY, y)
}

// AddFlat adds every coordinate of an interleaved slice; only the first two
// ordinates of each stride are read.
func (b *BoundingBoxCalculator) AddFlat(flat []float64, stride int) {
	if stride < 2 {
		return
	}
	for i := 0; i+1 < len(flat); i += stride {
		b.AddPoint(flat[i], flat[i+1])
	}
}

// AddGeom adds the coordinates of g; nil is ignored.
func (b *BoundingBoxCalculator) AddGeom(g geom.T) {
	if g == nil {
		return
	}
	b.AddFlat(g.FlatCoords(), g.Stride())
}

// AddBox merges another box.
func (b *BoundingBoxCalculator) AddBox(box Box2D) {
	b.AddPoint(box.MinX, box.MinY)
	b.AddPoint(box.MaxX, box.MaxY)
}

// GetBounds returns the calculated bounding box coordinates
func (b *BoundingBoxCalculator) GetBounds() (minX, minY, maxX, maxY float64, ok bool) {
	if !b.initialized {
		return 0, 0, 0, 0, false
	}
	return b.minX, b.minY, b.maxX, b.maxY, true
}

// Box returns the bounds as a Box2D, false when nothing was added.
func (b *BoundingBoxCalculator) Box() (Box2D, bool) {
	minX, minY, maxX, maxY, ok := b.GetBounds()
	return Box2D{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}, ok
}

// Box2D is an axis aligned rectangle.
type Box2D struct {
	MinX, MinY, MaxX, MaxY float64
}

// BoundsOf returns the bounds of g, false for nil or empty geometries.
func BoundsOf(g geom.T) (Box2D, bool) {
	b := NewBoundingBoxCalculator()
	b.AddGeom(g)
	return b.Box()
}

// Intersects reports whether the two boxes share at least one point; touching
// edges count.
func (b Box2D) Intersects(o Box2D) bool {
	return b.MinX <= o.MaxX && o.MinX <= b.MaxX && b.MinY <= o.MaxY && o.MinY <= b.MaxY
}

// Contains reports whether (x, y) lies inside b or on its edge.
func (b Box2D) Contains(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}
