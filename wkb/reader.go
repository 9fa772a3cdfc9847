package wkb

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// byteReader walks a payload with a sticky error. Once a read runs past the
// end every following read returns zero and err stays set.
type byteReader struct {
	buf   []byte
	off   int
	order binary.ByteOrder
	err   error
}

func newByteReader(buf []byte) *byteReader {
	return &byteReader{buf: buf, order: binary.LittleEndian}
}

func (r *byteReader) next(n int, what string) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || r.off+n > len(r.buf) {
		r.err = fmt.Errorf("read %s at byte %d of %d: %w", what, r.off, len(r.buf), io.ErrUnexpectedEOF)
		return nil
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b
}

func (r *byteReader) byte(what string) byte {
	if b := r.next(1, what); b != nil {
		return b[0]
	}
	return 0
}

func (r *byteReader) uint32(what string) uint32 {
	if b := r.next(4, what); b != nil {
		return r.order.Uint32(b)
	}
	return 0
}

func (r *byteReader) float64(what string) float64 {
	if b := r.next(8, what); b != nil {
		return math.Float64frombits(r.order.Uint64(b))
	}
	return 0
}

// count reads an element count and checks that at least count*minSize bytes
// remain, so a corrupt count cannot trigger a huge allocation.
func (r *byteReader) count(what string, minSize int) int {
	n := r.uint32(what)
	if r.err != nil {
		return 0
	}
	if int64(n)*int64(minSize) > int64(len(r.buf)-r.off) {
		r.err = fmt.Errorf("%s %d exceeds remaining %d bytes: %w", what, n, len(r.buf)-r.off, io.ErrUnexpectedEOF)
		return 0
	}
	return int(n)
}

// setOrder switches byte order from a WKB-style order byte (0 big, 1 little).
func (r *byteReader) setOrder(b byte) {
	if r.err != nil {
		return
	}
	switch b {
	case 0:
		r.order = binary.BigEndian
	case 1:
		r.order = binary.LittleEndian
	default:
		r.err = fmt.Errorf("byte order %#02x at byte %d", b, r.off-1)
	}
}

func (r *byteReader) rest() []byte {
	if r.err != nil {
		return nil
	}
	b := r.buf[r.off:]
	r.off = len(r.buf)
	return b
}

// byteWriter appends little-endian values.
type byteWriter struct {
	buf []byte
}

func (w *byteWriter) byte(b byte) { w.buf = append(w.buf, b) }

func (w *byteWriter) uint32(v uint32) { w.buf = binary.LittleEndian.AppendUint32(w.buf, v) }

func (w *byteWriter) float64(v float64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, math.Float64bits(v))
}

func (w *byteWriter) bytes(b []byte) { w.buf = append(w.buf, b...) }

// expect reads one byte and fails unless it equals want.
func (r *byteReader) expect(want byte, what string) {
	off := r.off
	if got := r.byte(what); r.err == nil && got != want {
		r.err = fmt.Errorf("%s at byte %d is %#02x, want %#02x", what, off, got, want)
	}
}

// xy reads n interleaved coordinate pairs.
func (r *byteReader) xy(n int) []float64 {
	flat := make([]float64, 0, 2*n)
	for range n {
		flat = append(flat, r.float64("x"), r.float64("y"))
	}
	return flat
}

// done fails if bytes remain after the last expected field.
func (r *byteReader) done() {
	if r.err == nil && r.off != len(r.buf) {
		r.err = fmt.Errorf("%d trailing bytes", len(r.buf)-r.off)
	}
}
