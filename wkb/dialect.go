// Package wkb stores geometries as binary blobs in one of several WKB
// dialects. A buffer carries its dialect as a single leading tag byte.
package wkb

import (
	"fmt"

	"github.com/hangxie/geocolumn/common"
)

// Dialect identifies the binary envelope around a geometry payload.
type Dialect uint8

const (
	DialectWKB        Dialect = 1
	DialectEWKB       Dialect = 2
	DialectGeoPackage Dialect = 3
	DialectMySQL      Dialect = 4
	DialectSpatiaLite Dialect = 5
)

var dialectNames = map[Dialect]string{
	DialectWKB:        "WKB",
	DialectEWKB:       "EWKB",
	DialectGeoPackage: "GeoPackage",
	DialectMySQL:      "MySQL",
	DialectSpatiaLite: "SpatiaLite",
}

func (d Dialect) String() string {
	if name, ok := dialectNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Dialect(%d)", uint8(d))
}

// Valid reports whether d is one of the five known dialects.
func (d Dialect) Valid() bool {
	_, ok := dialectNames[d]
	return ok
}

// WKBTypeID returns the tag byte stored in front of a buffer of dialect d.
func WKBTypeID(d Dialect) (byte, error) {
	if !d.Valid() {
		return 0, fmt.Errorf("dialect %d: %w", uint8(d), common.ErrUnknownDialect)
	}
	return byte(d), nil
}

// DecodeWKBDialect is the inverse of WKBTypeID.
func DecodeWKBDialect(tag byte) (Dialect, error) {
	d := Dialect(tag)
	if !d.Valid() {
		return 0, fmt.Errorf("dialect tag %#02x: %w", tag, common.ErrUnknownDialect)
	}
	return d, nil
}
