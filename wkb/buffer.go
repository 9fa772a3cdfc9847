package wkb

import (
	"fmt"

	"github.com/hangxie/geocolumn/common"
)

// Buffer is a dialect tag byte followed by concatenated payloads.
type Buffer struct {
	store []byte
}

// NewBuffer prefixes payloads with the tag of d. payloads is copied.
func NewBuffer(payloads []byte, d Dialect) (Buffer, error) {
	tag, err := WKBTypeID(d)
	if err != nil {
		return Buffer{}, err
	}
	store := make([]byte, 0, 1+len(payloads))
	store = append(store, tag)
	return Buffer{store: append(store, payloads...)}, nil
}

// BufferFromBytes wraps a tagged store without copying.
func BufferFromBytes(store []byte) (Buffer, error) {
	if len(store) == 0 {
		return Buffer{}, fmt.Errorf("buffer has no dialect tag: %w", common.ErrMalformedBuffer)
	}
	if _, err := DecodeWKBDialect(store[0]); err != nil {
		return Buffer{}, err
	}
	return Buffer{store: store}, nil
}

// Dialect returns the tagged dialect, 0 for the zero Buffer.
func (b Buffer) Dialect() Dialect {
	if len(b.store) == 0 {
		return 0
	}
	return Dialect(b.store[0])
}

// Data returns the payload bytes with the tag stripped.
func (b Buffer) Data() []byte {
	if len(b.store) == 0 {
		return nil
	}
	return b.store[1:]
}

// Len is the payload length, excluding the tag.
func (b Buffer) Len() int {
	return max(len(b.store)-1, 0)
}

// Bytes returns the tagged store.
func (b Buffer) Bytes() []byte { return b.store }
