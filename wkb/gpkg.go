package wkb

import (
	"fmt"

	"github.com/twpayne/go-geom"

	"github.com/hangxie/geocolumn/types"
)

// GeoPackage binary header flag bits.
const (
	gpkgFlagLittleEndian = 0x01
	gpkgFlagEmpty        = 0x10
	gpkgFlagExtended     = 0x20
	gpkgEnvelopeShift    = 1
	gpkgEnvelopeMask     = 0x07
)

// envelope byte sizes by indicator: none, xy, xyz, xym, xyzm
var gpkgEnvelopeSizes = [...]int{0, 32, 48, 48, 64}

type geoPackageHeader struct {
	srid  int
	empty bool
}

func readGeoPackageHeader(r *byteReader) geoPackageHeader {
	var h geoPackageHeader
	magic := r.next(2, "magic")
	if r.err == nil && string(magic) != "GP" {
		r.err = fmt.Errorf("magic %q is not GP", magic)
		return h
	}
	r.expect(0, "version")
	flags := r.byte("flags")
	if r.err != nil {
		return h
	}
	if flags&gpkgFlagExtended != 0 {
		r.err = fmt.Errorf("extended geometry type flag is not supported")
		return h
	}
	r.setOrder(flags & gpkgFlagLittleEndian)
	h.srid = int(int32(r.uint32("srs id")))
	h.empty = flags&gpkgFlagEmpty != 0
	indicator := int(flags>>gpkgEnvelopeShift) & gpkgEnvelopeMask
	if indicator >= len(gpkgEnvelopeSizes) {
		if r.err == nil {
			r.err = fmt.Errorf("envelope indicator %d", indicator)
		}
		return h
	}
	r.next(gpkgEnvelopeSizes[indicator], "envelope")
	return h
}

func decodeGeoPackage(payload []byte) (geom.T, error) {
	r := newByteReader(payload)
	h := readGeoPackageHeader(r)
	body := r.rest()
	if r.err != nil {
		return nil, r.err
	}
	return decodePlainWKB(body, h.srid)
}

// encodeGeoPackage writes a little-endian header with an xy envelope, or
// the empty flag and no envelope when g has no coordinates.
func encodeGeoPackage(g geom.T) ([]byte, error) {
	body, err := encodePlainWKB(g)
	if err != nil {
		return nil, err
	}
	w := &byteWriter{buf: make([]byte, 0, 8+32+len(body))}
	w.bytes([]byte("GP"))
	w.byte(0)
	box, ok := types.BoundsOf(g)
	flags := byte(gpkgFlagLittleEndian)
	if ok {
		flags |= 1 << gpkgEnvelopeShift
	} else {
		flags |= gpkgFlagEmpty
	}
	w.byte(flags)
	w.uint32(uint32(int32(g.SRID())))
	if ok {
		w.float64(box.MinX)
		w.float64(box.MaxX)
		w.float64(box.MinY)
		w.float64(box.MaxY)
	}
	w.bytes(body)
	return w.buf, nil
}
