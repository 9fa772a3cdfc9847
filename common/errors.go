package common

import "errors"

var (
	// ErrMalformedBuffer reports a violated offset, null-length or coordinate
	// buffer invariant. It is only raised when an array is constructed.
	ErrMalformedBuffer = errors.New("malformed buffer")
	// ErrOutOfRange reports a row or element index beyond the declared length.
	ErrOutOfRange = errors.New("index out of range")
	// ErrUnknownDialect reports a WKB dialect tag byte outside the known set.
	ErrUnknownDialect = errors.New("unknown wkb dialect")
	// ErrDecode reports a payload that does not parse for its declared dialect.
	ErrDecode = errors.New("cannot decode geometry")
	// ErrShapeMismatch reports a geometry whose shape or layout does not fit
	// the array it is pushed into.
	ErrShapeMismatch = errors.New("geometry shape mismatch")
	// ErrMissingUnionArm reports a mixed array row referencing an absent child.
	ErrMissingUnionArm = errors.New("missing union arm")
	// ErrUnknownGeometryType reports a type id outside the six known shapes.
	ErrUnknownGeometryType = errors.New("unknown geometry type")
)
