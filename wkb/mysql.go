package wkb

import (
	"github.com/twpayne/go-geom"
)

// MySQL stores geometries as a 4 byte little-endian SRID followed by WKB.

func decodeMySQL(payload []byte) (geom.T, error) {
	r := newByteReader(payload)
	srid := int(int32(r.uint32("srid")))
	body := r.rest()
	if r.err != nil {
		return nil, r.err
	}
	return decodePlainWKB(body, srid)
}

func encodeMySQL(g geom.T) ([]byte, error) {
	body, err := encodePlainWKB(g)
	if err != nil {
		return nil, err
	}
	w := &byteWriter{buf: make([]byte, 0, 4+len(body))}
	w.uint32(uint32(int32(g.SRID())))
	w.bytes(body)
	return w.buf, nil
}
