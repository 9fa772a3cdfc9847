package wkb

import (
	"fmt"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/ewkb"
	"github.com/twpayne/go-geom/encoding/wkb"
	"github.com/twpayne/go-geom/encoding/wkbcommon"

	"github.com/hangxie/geocolumn/common"
)

const ewkbSRIDFlag = 0x20000000

// empty points travel as (NaN, NaN) in every dialect
var emptyPointAsNaN = wkbcommon.WKBOptionEmptyPointHandling(wkbcommon.EmptyPointHandlingNaN)

func decodeError(d Dialect, err error) error {
	return fmt.Errorf("%s payload: %w: %w", d, common.ErrDecode, err)
}

// Decode parses one payload of dialect d. The SRID carried by the envelope,
// if any, is set on the result.
func Decode(d Dialect, payload []byte) (geom.T, error) {
	var g geom.T
	var err error
	switch d {
	case DialectWKB:
		g, err = wkb.Unmarshal(payload, emptyPointAsNaN)
	case DialectEWKB:
		g, err = ewkb.Unmarshal(payload)
	case DialectGeoPackage:
		g, err = decodeGeoPackage(payload)
	case DialectMySQL:
		g, err = decodeMySQL(payload)
	case DialectSpatiaLite:
		g, err = decodeSpatiaLite(payload)
	default:
		return nil, fmt.Errorf("dialect %d: %w", uint8(d), common.ErrUnknownDialect)
	}
	if err != nil {
		return nil, decodeError(d, err)
	}
	return g, nil
}

// Encode writes g in dialect d, little-endian. The SRID of g goes into the
// envelope for dialects that carry one.
func Encode(d Dialect, g geom.T) ([]byte, error) {
	if common.IsNilGeometry(g) {
		return nil, fmt.Errorf("encode nil geometry: %w", common.ErrShapeMismatch)
	}
	var out []byte
	var err error
	switch d {
	case DialectWKB:
		out, err = wkb.Marshal(g, wkb.NDR, emptyPointAsNaN)
	case DialectEWKB:
		out, err = ewkb.Marshal(g, ewkb.NDR)
	case DialectGeoPackage:
		out, err = encodeGeoPackage(g)
	case DialectMySQL:
		out, err = encodeMySQL(g)
	case DialectSpatiaLite:
		out, err = encodeSpatiaLite(g)
	default:
		return nil, fmt.Errorf("dialect %d: %w", uint8(d), common.ErrUnknownDialect)
	}
	if err != nil {
		return nil, fmt.Errorf("encode %T as %s: %w", g, d, err)
	}
	return out, nil
}

// SRID reads the spatial reference id from the payload header without
// decoding coordinates. Plain WKB has none and reports 0.
func SRID(d Dialect, payload []byte) (int, error) {
	r := newByteReader(payload)
	srid := 0
	switch d {
	case DialectWKB:
		return 0, nil
	case DialectEWKB:
		r.setOrder(r.byte("byte order"))
		if t := r.uint32("geometry type"); t&ewkbSRIDFlag != 0 {
			srid = int(int32(r.uint32("srid")))
		}
	case DialectGeoPackage:
		h := readGeoPackageHeader(r)
		srid = h.srid
	case DialectMySQL:
		srid = int(int32(r.uint32("srid")))
	case DialectSpatiaLite:
		r.expect(spatiaLiteStart, "start marker")
		r.setOrder(r.byte("byte order"))
		srid = int(int32(r.uint32("srid")))
	default:
		return 0, fmt.Errorf("dialect %d: %w", uint8(d), common.ErrUnknownDialect)
	}
	if r.err != nil {
		return 0, decodeError(d, r.err)
	}
	return srid, nil
}

// decodePlainWKB decodes the ISO WKB body that follows a header.
func decodePlainWKB(body []byte, srid int) (geom.T, error) {
	g, err := wkb.Unmarshal(body, emptyPointAsNaN)
	if err != nil {
		return nil, err
	}
	return common.WithSRID(g, srid), nil
}

func encodePlainWKB(g geom.T) ([]byte, error) {
	return wkb.Marshal(g, wkb.NDR, emptyPointAsNaN)
}
