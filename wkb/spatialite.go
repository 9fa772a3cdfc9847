package wkb

import (
	"fmt"
	"math"

	"github.com/twpayne/go-geom"

	"github.com/hangxie/geocolumn/common"
	"github.com/hangxie/geocolumn/types"
)

// SpatiaLite BLOB markers.
const (
	spatiaLiteStart  = 0x00
	spatiaLiteMBREnd = 0x7C
	spatiaLiteEntity = 0x69
	spatiaLiteEnd    = 0xFE
)

// Only the XY classes are handled; their ids match the WKB type ids.
const (
	spatiaLitePoint           = 1
	spatiaLiteLineString      = 2
	spatiaLitePolygon         = 3
	spatiaLiteMultiPoint      = 4
	spatiaLiteMultiLineString = 5
	spatiaLiteMultiPolygon    = 6
)

// smallest encodings, used to bound counts read from the blob
const (
	spatiaLiteRingMin        = 4
	spatiaLiteEntityMin      = 1 + 4 + 4
	spatiaLitePointEntityMin = 1 + 4 + 16
)

func decodeSpatiaLite(payload []byte) (geom.T, error) {
	r := newByteReader(payload)
	r.expect(spatiaLiteStart, "start marker")
	r.setOrder(r.byte("byte order"))
	srid := int(int32(r.uint32("srid")))
	r.next(32, "mbr")
	r.expect(spatiaLiteMBREnd, "mbr end marker")
	class := r.uint32("class")
	if r.err != nil {
		return nil, r.err
	}

	var g geom.T
	switch class {
	case spatiaLitePoint:
		g = pointFromXY(r.xy(1))
	case spatiaLiteLineString:
		g = geom.NewLineStringFlat(geom.XY, r.xy(r.count("point count", 16)))
	case spatiaLitePolygon:
		flat, ends := readSpatiaLiteRings(r, nil)
		g = geom.NewPolygonFlat(geom.XY, flat, ends)
	case spatiaLiteMultiPoint:
		n := r.count("entity count", spatiaLitePointEntityMin)
		var flat []float64
		for range n {
			readSpatiaLiteEntity(r, spatiaLitePoint)
			flat = append(flat, r.xy(1)...)
		}
		g = geom.NewMultiPointFlat(geom.XY, flat)
	case spatiaLiteMultiLineString:
		n := r.count("entity count", spatiaLiteEntityMin)
		var flat []float64
		ends := make([]int, 0, n)
		for range n {
			readSpatiaLiteEntity(r, spatiaLiteLineString)
			flat = append(flat, r.xy(r.count("point count", 16))...)
			ends = append(ends, len(flat))
		}
		g = geom.NewMultiLineStringFlat(geom.XY, flat, ends)
	case spatiaLiteMultiPolygon:
		n := r.count("entity count", spatiaLiteEntityMin)
		var flat []float64
		endss := make([][]int, 0, n)
		for range n {
			readSpatiaLiteEntity(r, spatiaLitePolygon)
			var ends []int
			flat, ends = readSpatiaLiteRings(r, flat)
			endss = append(endss, ends)
		}
		g = geom.NewMultiPolygonFlat(geom.XY, flat, endss)
	default:
		return nil, fmt.Errorf("class %d: %w", class, common.ErrShapeMismatch)
	}
	r.expect(spatiaLiteEnd, "end marker")
	r.done()
	if r.err != nil {
		return nil, r.err
	}
	return common.WithSRID(g, srid), nil
}

func readSpatiaLiteEntity(r *byteReader, class uint32) {
	r.expect(spatiaLiteEntity, "entity marker")
	if got := r.uint32("entity class"); r.err == nil && got != class {
		r.err = fmt.Errorf("entity class %d inside a collection of class %d", got, class)
	}
}

// readSpatiaLiteRings appends the rings of one polygon to flat and returns
// their end positions in flat.
func readSpatiaLiteRings(r *byteReader, flat []float64) ([]float64, []int) {
	n := r.count("ring count", spatiaLiteRingMin)
	ends := make([]int, 0, n)
	for range n {
		flat = append(flat, r.xy(r.count("point count", 16))...)
		ends = append(ends, len(flat))
	}
	return flat, ends
}

func pointFromXY(flat []float64) *geom.Point {
	if len(flat) == 2 && math.IsNaN(flat[0]) && math.IsNaN(flat[1]) {
		return geom.NewPointEmpty(geom.XY)
	}
	return geom.NewPointFlat(geom.XY, flat)
}

func encodeSpatiaLite(g geom.T) ([]byte, error) {
	if g.Layout() != geom.XY {
		return nil, fmt.Errorf("layout %v, only XY is supported: %w", g.Layout(), common.ErrShapeMismatch)
	}
	w := &byteWriter{buf: make([]byte, 0, 44+8*len(g.FlatCoords())+1)}
	w.byte(spatiaLiteStart)
	w.byte(1)
	w.uint32(uint32(int32(g.SRID())))
	box, _ := types.BoundsOf(g)
	w.float64(box.MinX)
	w.float64(box.MinY)
	w.float64(box.MaxX)
	w.float64(box.MaxY)
	w.byte(spatiaLiteMBREnd)

	switch g := g.(type) {
	case *geom.Point:
		w.uint32(spatiaLitePoint)
		w.point(g)
	case *geom.LineString:
		w.uint32(spatiaLiteLineString)
		w.points(g.FlatCoords())
	case *geom.Polygon:
		w.uint32(spatiaLitePolygon)
		w.rings(g)
	case *geom.MultiPoint:
		w.uint32(spatiaLiteMultiPoint)
		w.uint32(uint32(g.NumPoints()))
		for i := range g.NumPoints() {
			w.entity(spatiaLitePoint)
			w.point(g.Point(i))
		}
	case *geom.MultiLineString:
		w.uint32(spatiaLiteMultiLineString)
		w.uint32(uint32(g.NumLineStrings()))
		for i := range g.NumLineStrings() {
			w.entity(spatiaLiteLineString)
			w.points(g.LineString(i).FlatCoords())
		}
	case *geom.MultiPolygon:
		w.uint32(spatiaLiteMultiPolygon)
		w.uint32(uint32(g.NumPolygons()))
		for i := range g.NumPolygons() {
			w.entity(spatiaLitePolygon)
			w.rings(g.Polygon(i))
		}
	default:
		return nil, fmt.Errorf("%T: %w", g, common.ErrShapeMismatch)
	}
	w.byte(spatiaLiteEnd)
	return w.buf, nil
}

func (w *byteWriter) entity(class uint32) {
	w.byte(spatiaLiteEntity)
	w.uint32(class)
}

// point writes an empty point as (NaN, NaN).
func (w *byteWriter) point(p *geom.Point) {
	if p.Empty() {
		w.float64(math.NaN())
		w.float64(math.NaN())
		return
	}
	w.float64(p.X())
	w.float64(p.Y())
}

// points writes a count followed by the pairs of an XY flat slice.
func (w *byteWriter) points(flat []float64) {
	w.uint32(uint32(len(flat) / 2))
	for _, v := range flat {
		w.float64(v)
	}
}

func (w *byteWriter) rings(p *geom.Polygon) {
	w.uint32(uint32(p.NumLinearRings()))
	for i := range p.NumLinearRings() {
		w.points(p.LinearRing(i).FlatCoords())
	}
}
