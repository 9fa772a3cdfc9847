package wkb

import (
	"fmt"

	"github.com/twpayne/go-geom"

	"github.com/hangxie/geocolumn/buffer"
	"github.com/hangxie/geocolumn/common"
)

// Builder appends payloads of one dialect. Every payload is decoded once on
// the way in.
type Builder[O common.Offset] struct {
	dialect  Dialect
	store    []byte
	offsets  *buffer.OffsetBufferBuilder[O]
	validity *buffer.NullBufferBuilder
}

func NewBuilder[O common.Offset](d Dialect, capacity int) (*Builder[O], error) {
	tag, err := WKBTypeID(d)
	if err != nil {
		return nil, err
	}
	store := make([]byte, 1, 1+capacity*32)
	store[0] = tag
	return &Builder[O]{
		dialect:  d,
		store:    store,
		offsets:  buffer.NewOffsetBufferBuilder[O](capacity),
		validity: buffer.NewNullBufferBuilder(capacity),
	}, nil
}

func (b *Builder[O]) Len() int { return b.validity.Len() }

func (b *Builder[O]) Dialect() Dialect { return b.dialect }

func (b *Builder[O]) AppendNull() {
	b.offsets.PushEmpty()
	b.validity.AppendNull()
}

// AppendWKB appends a payload already in the builder's dialect; nil is a
// null row.
func (b *Builder[O]) AppendWKB(payload []byte) error {
	if payload == nil {
		b.AppendNull()
		return nil
	}
	return b.appendChecked(payload)
}

func (b *Builder[O]) appendChecked(payload []byte) error {
	if _, err := Decode(b.dialect, payload); err != nil {
		return fmt.Errorf("row %d: %w", b.Len(), err)
	}
	b.push(payload)
	return nil
}

// AppendGeometry encodes g in the builder's dialect; nil is a null row.
func (b *Builder[O]) AppendGeometry(g geom.T) error {
	if common.IsNilGeometry(g) {
		b.AppendNull()
		return nil
	}
	payload, err := Encode(b.dialect, g)
	if err != nil {
		return fmt.Errorf("row %d: %w", b.Len(), err)
	}
	return b.appendChecked(payload)
}

func (b *Builder[O]) push(payload []byte) {
	b.store = append(b.store, payload...)
	b.offsets.PushLength(len(payload))
	b.validity.AppendValid()
}

// Build freezes the builder into an Array. The builder must not be used
// afterwards.
func (b *Builder[O]) Build() *Array[O] {
	arr, err := newArray(Buffer{store: b.store}, b.offsets.Build(), b.validity.Finish())
	if err != nil {
		panic(fmt.Sprintf("wkb builder produced an invalid array: %v", err))
	}
	return arr
}

// ArrayFromGeoms encodes geoms in dialect d; nil entries become null rows.
func ArrayFromGeoms[O common.Offset](d Dialect, geoms []geom.T) (*Array[O], error) {
	b, err := NewBuilder[O](d, len(geoms))
	if err != nil {
		return nil, err
	}
	for _, g := range geoms {
		if err := b.AppendGeometry(g); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}
