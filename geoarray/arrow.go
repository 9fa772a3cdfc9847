package geoarray

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/hangxie/geocolumn/buffer"
	"github.com/hangxie/geocolumn/common"
)

const extensionNameKey = "ARROW:extension:name"

func coordType() *arrow.FixedSizeListType {
	return arrow.FixedSizeListOfField(2, arrow.Field{Name: "xy", Type: arrow.PrimitiveTypes.Float64})
}

func isLarge[O common.Offset]() bool {
	var zero O
	_, ok := any(zero).(int64)
	return ok
}

func listType[O common.Offset](name string, elem arrow.DataType) arrow.DataType {
	field := arrow.Field{Name: name, Type: elem}
	if isLarge[O]() {
		return arrow.LargeListOfField(field)
	}
	return arrow.ListOfField(field)
}

func lineStringStorageType[O common.Offset]() arrow.DataType {
	return listType[O]("vertices", coordType())
}

func polygonStorageType[O common.Offset]() arrow.DataType {
	return listType[O]("rings", lineStringStorageType[O]())
}

func multiPointStorageType[O common.Offset]() arrow.DataType {
	return listType[O]("points", coordType())
}

func multiLineStringStorageType[O common.Offset]() arrow.DataType {
	return listType[O]("linestrings", lineStringStorageType[O]())
}

func multiPolygonStorageType[O common.Offset]() arrow.DataType {
	return listType[O]("polygons", polygonStorageType[O]())
}

func offsetBytes[O common.Offset](values []O) []byte {
	switch v := any(values).(type) {
	case []int32:
		return arrow.Int32Traits.CastToBytes(v)
	case []int64:
		return arrow.Int64Traits.CastToBytes(v)
	}
	panic("unreachable offset width")
}

func castOffsets[O common.Offset](b []byte) []O {
	var zero O
	switch any(zero).(type) {
	case int32:
		return any(arrow.Int32Traits.CastFromBytes(b)).([]O)
	default:
		return any(arrow.Int64Traits.CastFromBytes(b)).([]O)
	}
}

func validityBuffer(nulls *buffer.NullBuffer) *memory.Buffer {
	if nulls == nil {
		return nil
	}
	return memory.NewBufferBytes(nulls.Bitmap())
}

func coordData(coords buffer.CoordBuffer, nulls *buffer.NullBuffer) arrow.ArrayData {
	values := coords.Values()
	floats := array.NewData(arrow.PrimitiveTypes.Float64, len(values),
		[]*memory.Buffer{nil, memory.NewBufferBytes(arrow.Float64Traits.CastToBytes(values))}, nil, 0, 0)
	defer floats.Release()
	return array.NewData(coordType(), coords.Len(), []*memory.Buffer{validityBuffer(nulls)},
		[]arrow.ArrayData{floats}, nulls.NullCount(), 0)
}

// listData wraps child in a list level and takes over the caller's
// reference to child.
func listData[O common.Offset](dt arrow.DataType, offsets buffer.OffsetBuffer[O], nulls *buffer.NullBuffer, child arrow.ArrayData) arrow.ArrayData {
	defer child.Release()
	return array.NewData(dt, offsets.RowCount(),
		[]*memory.Buffer{validityBuffer(nulls), memory.NewBufferBytes(offsetBytes(offsets.Values()))},
		[]arrow.ArrayData{child}, nulls.NullCount(), 0)
}

func wrapExtension(t common.GeometryType, data arrow.ArrayData) arrow.Array {
	defer data.Release()
	storage := array.MakeFromData(data)
	defer storage.Release()
	return array.NewExtensionArrayWithStorage(NewExtensionType(t, data.DataType()), storage)
}

func (a *PointArray) ToArrow() arrow.Array {
	return wrapExtension(common.GeometryTypePoint, coordData(a.coords, a.nulls))
}

func (a *LineStringArray[O]) ToArrow() arrow.Array {
	return wrapExtension(common.GeometryTypeLineString,
		listData(lineStringStorageType[O](), a.geomOffsets, a.nulls, coordData(a.coords, nil)))
}

func (a *MultiPointArray[O]) ToArrow() arrow.Array {
	return wrapExtension(common.GeometryTypeMultiPoint,
		listData(multiPointStorageType[O](), a.geomOffsets, a.nulls, coordData(a.coords, nil)))
}

func (a *PolygonArray[O]) ToArrow() arrow.Array {
	rings := listData(lineStringStorageType[O](), a.ringOffsets, nil, coordData(a.coords, nil))
	return wrapExtension(common.GeometryTypePolygon,
		listData(polygonStorageType[O](), a.geomOffsets, a.nulls, rings))
}

func (a *MultiLineStringArray[O]) ToArrow() arrow.Array {
	lines := listData(lineStringStorageType[O](), a.ringOffsets, nil, coordData(a.coords, nil))
	return wrapExtension(common.GeometryTypeMultiLineString,
		listData(multiLineStringStorageType[O](), a.geomOffsets, a.nulls, lines))
}

func (a *MultiPolygonArray[O]) ToArrow() arrow.Array {
	rings := listData(lineStringStorageType[O](), a.ringOffsets, nil, coordData(a.coords, nil))
	polygons := listData(polygonStorageType[O](), a.polygonOffsets, nil, rings)
	return wrapExtension(common.GeometryTypeMultiPolygon,
		listData(multiPolygonStorageType[O](), a.geomOffsets, a.nulls, polygons))
}

// ToArrow exports a dense union whose type codes are the geometry type ids.
// Only present arms become union children.
func (a *MixedGeometryArray[O]) ToArrow() arrow.Array {
	var (
		fields   []arrow.Field
		codes    []arrow.UnionTypeCode
		children []arrow.ArrayData
	)
	for _, t := range common.UnionGeometryTypes {
		child := a.children.child(t)
		if child == nil {
			continue
		}
		ext := child.ToArrow()
		storage := ext.(array.ExtensionArray).Storage()
		fields = append(fields, arrow.Field{
			Name:     t.String(),
			Type:     storage.DataType(),
			Nullable: true,
			Metadata: arrow.NewMetadata([]string{extensionNameKey}, []string{t.ExtensionName()}),
		})
		codes = append(codes, arrow.UnionTypeCode(t))
		storage.Data().Retain()
		children = append(children, storage.Data())
		ext.Release()
	}
	dt := arrow.DenseUnionOf(fields, codes)
	data := array.NewData(dt, a.length, []*memory.Buffer{
		nil,
		memory.NewBufferBytes(arrow.Int8Traits.CastToBytes(a.typeIDs)),
		memory.NewBufferBytes(arrow.Int32Traits.CastToBytes(a.offsets)),
	}, children, 0, 0)
	for _, c := range children {
		c.Release()
	}
	return wrapExtension(common.GeometryTypeMixed, data)
}

// storageOf unwraps an extension array, refusing one of another geometry
// type. Bare storage is accepted as is.
func storageOf(arr arrow.Array, t common.GeometryType) (arrow.ArrayData, error) {
	data := arr.Data()
	if ext, ok := arr.(array.ExtensionArray); ok {
		if name := ext.ExtensionType().ExtensionName(); name != t.ExtensionName() {
			return nil, fmt.Errorf("extension %s is not %s: %w", name, t.ExtensionName(), common.ErrShapeMismatch)
		}
		data = ext.Storage().Data()
	}
	if err := checkStorage(t, data.DataType()); err != nil {
		return nil, err
	}
	return data, nil
}

func nullsOf(data arrow.ArrayData) (*buffer.NullBuffer, error) {
	if data.NullN() == 0 || data.Buffers()[0] == nil {
		return nil, nil
	}
	return buffer.NewNullBuffer(data.Buffers()[0].Bytes(), data.Offset(), data.Len())
}

// coordsOf returns the interleaved values of points [start, end) of an xy
// fixed size list, without copying.
func coordsOf(data arrow.ArrayData, start, end int) (buffer.CoordBuffer, error) {
	if len(data.Children()) != 1 {
		return buffer.CoordBuffer{}, fmt.Errorf("coordinate list without values: %w", common.ErrMalformedBuffer)
	}
	floats := data.Children()[0]
	var values []float64
	if b := floats.Buffers()[1]; b != nil {
		values = arrow.Float64Traits.CastFromBytes(b.Bytes())
	}
	lo := floats.Offset() + 2*(data.Offset()+start)
	hi := lo + 2*(end-start)
	if start < 0 || end < start || hi > len(values) {
		return buffer.CoordBuffer{}, fmt.Errorf("points [%d, %d) outside coordinate storage: %w", start, end, common.ErrMalformedBuffer)
	}
	return buffer.NewCoordBuffer(values[lo:hi:hi])
}

// listLevel reads rows [start, end) of one list level. Offsets are rebased to
// start at zero; childStart and childEnd give the matching child window.
type listLevel[O common.Offset] struct {
	offsets              buffer.OffsetBuffer[O]
	child                arrow.ArrayData
	childStart, childEnd int
}

func readListLevel[O common.Offset](data arrow.ArrayData, start, end int) (listLevel[O], error) {
	if isLarge[O]() != (data.DataType().ID() == arrow.LARGE_LIST) {
		return listLevel[O]{}, fmt.Errorf("list type %s does not match the offset width: %w", data.DataType(), common.ErrShapeMismatch)
	}
	if len(data.Children()) != 1 {
		return listLevel[O]{}, fmt.Errorf("list without child: %w", common.ErrMalformedBuffer)
	}
	var raw []O
	if b := data.Buffers()[1]; b != nil {
		raw = castOffsets[O](b.Bytes())
	}
	if end == start && len(raw) == 0 {
		raw = []O{0}
	}
	lo, hi := data.Offset()+start, data.Offset()+end+1
	if start < 0 || end < start || hi > len(raw) {
		return listLevel[O]{}, fmt.Errorf("list rows [%d, %d) outside offset storage: %w", start, end, common.ErrMalformedBuffer)
	}
	seg := raw[lo:hi]
	base := seg[0]
	if base != 0 {
		rebased := make([]O, len(seg))
		for i, v := range seg {
			rebased[i] = v - base
		}
		seg = rebased
	}
	offsets, err := buffer.NewOffsetBuffer(seg)
	if err != nil {
		return listLevel[O]{}, err
	}
	return listLevel[O]{
		offsets:    offsets,
		child:      data.Children()[0],
		childStart: int(base),
		childEnd:   int(base) + offsets.Last(),
	}, nil
}

func PointArrayFromArrow(arr arrow.Array) (*PointArray, error) {
	data, err := storageOf(arr, common.GeometryTypePoint)
	if err != nil {
		return nil, err
	}
	coords, err := coordsOf(data, 0, data.Len())
	if err != nil {
		return nil, err
	}
	nulls, err := nullsOf(data)
	if err != nil {
		return nil, err
	}
	return NewPointArray(coords, nulls)
}

// readOneLevel covers the shapes whose only list level sits over points.
func readOneLevel[O common.Offset](arr arrow.Array, t common.GeometryType) (buffer.CoordBuffer, listLevel[O], *buffer.NullBuffer, error) {
	data, err := storageOf(arr, t)
	if err != nil {
		return buffer.CoordBuffer{}, listLevel[O]{}, nil, err
	}
	geoms, err := readListLevel[O](data, 0, data.Len())
	if err != nil {
		return buffer.CoordBuffer{}, listLevel[O]{}, nil, err
	}
	coords, err := coordsOf(geoms.child, geoms.childStart, geoms.childEnd)
	if err != nil {
		return buffer.CoordBuffer{}, listLevel[O]{}, nil, err
	}
	nulls, err := nullsOf(data)
	return coords, geoms, nulls, err
}

// readTwoLevels covers the shapes with a ring or line level over points.
func readTwoLevels[O common.Offset](data arrow.ArrayData, start, end int) (buffer.CoordBuffer, listLevel[O], listLevel[O], error) {
	outer, err := readListLevel[O](data, start, end)
	if err != nil {
		return buffer.CoordBuffer{}, listLevel[O]{}, listLevel[O]{}, err
	}
	inner, err := readListLevel[O](outer.child, outer.childStart, outer.childEnd)
	if err != nil {
		return buffer.CoordBuffer{}, listLevel[O]{}, listLevel[O]{}, err
	}
	coords, err := coordsOf(inner.child, inner.childStart, inner.childEnd)
	return coords, outer, inner, err
}

func LineStringArrayFromArrow[O common.Offset](arr arrow.Array) (*LineStringArray[O], error) {
	coords, geoms, nulls, err := readOneLevel[O](arr, common.GeometryTypeLineString)
	if err != nil {
		return nil, err
	}
	return NewLineStringArray(coords, geoms.offsets, nulls)
}

func MultiPointArrayFromArrow[O common.Offset](arr arrow.Array) (*MultiPointArray[O], error) {
	coords, geoms, nulls, err := readOneLevel[O](arr, common.GeometryTypeMultiPoint)
	if err != nil {
		return nil, err
	}
	return NewMultiPointArray(coords, geoms.offsets, nulls)
}

func PolygonArrayFromArrow[O common.Offset](arr arrow.Array) (*PolygonArray[O], error) {
	data, err := storageOf(arr, common.GeometryTypePolygon)
	if err != nil {
		return nil, err
	}
	coords, geoms, rings, err := readTwoLevels[O](data, 0, data.Len())
	if err != nil {
		return nil, err
	}
	nulls, err := nullsOf(data)
	if err != nil {
		return nil, err
	}
	return NewPolygonArray(coords, geoms.offsets, rings.offsets, nulls)
}

func MultiLineStringArrayFromArrow[O common.Offset](arr arrow.Array) (*MultiLineStringArray[O], error) {
	data, err := storageOf(arr, common.GeometryTypeMultiLineString)
	if err != nil {
		return nil, err
	}
	coords, geoms, lines, err := readTwoLevels[O](data, 0, data.Len())
	if err != nil {
		return nil, err
	}
	nulls, err := nullsOf(data)
	if err != nil {
		return nil, err
	}
	return NewMultiLineStringArray(coords, geoms.offsets, lines.offsets, nulls)
}

func MultiPolygonArrayFromArrow[O common.Offset](arr arrow.Array) (*MultiPolygonArray[O], error) {
	data, err := storageOf(arr, common.GeometryTypeMultiPolygon)
	if err != nil {
		return nil, err
	}
	geoms, err := readListLevel[O](data, 0, data.Len())
	if err != nil {
		return nil, err
	}
	coords, polygons, rings, err := readTwoLevels[O](geoms.child, geoms.childStart, geoms.childEnd)
	if err != nil {
		return nil, err
	}
	nulls, err := nullsOf(data)
	if err != nil {
		return nil, err
	}
	return NewMultiPolygonArray(coords, geoms.offsets, polygons.offsets, rings.offsets, nulls)
}

// MixedGeometryArrayFromArrow reads a dense union keyed by geometry type ids.
// A row is null when the child slot it points at is null.
func MixedGeometryArrayFromArrow[O common.Offset](arr arrow.Array) (*MixedGeometryArray[O], error) {
	data, err := storageOf(arr, common.GeometryTypeMixed)
	if err != nil {
		return nil, err
	}
	dt := data.DataType().(*arrow.DenseUnionType)
	n, off := data.Len(), data.Offset()
	bufs := data.Buffers()
	if len(bufs) < 3 || (n > 0 && (bufs[1] == nil || bufs[2] == nil)) {
		return nil, fmt.Errorf("dense union without type ids or offsets: %w", common.ErrMalformedBuffer)
	}
	var typeIDs []int8
	var offsets []int32
	if n > 0 {
		typeIDs = arrow.Int8Traits.CastFromBytes(bufs[1].Bytes())
		offsets = arrow.Int32Traits.CastFromBytes(bufs[2].Bytes())
		if off+n > len(typeIDs) || off+n > len(offsets) {
			return nil, fmt.Errorf("dense union rows outside storage: %w", common.ErrMalformedBuffer)
		}
		typeIDs, offsets = typeIDs[off:off+n], offsets[off:off+n]
	}

	var children MixedChildren[O]
	for j, code := range dt.TypeCodes() {
		t, err := common.ParseGeometryType(int8(code))
		if err != nil {
			return nil, err
		}
		child := array.MakeFromData(data.Children()[j])
		err = children.set(t, child)
		child.Release()
		if err != nil {
			return nil, fmt.Errorf("union arm %s: %w", t, err)
		}
	}

	validity := buffer.NewNullBufferBuilder(n)
	for i := range n {
		valid := true
		if t, err := common.ParseGeometryType(typeIDs[i]); err == nil {
			if child := children.child(t); child != nil && int(offsets[i]) < child.Len() && offsets[i] >= 0 {
				valid = !child.IsNull(int(offsets[i]))
			}
		}
		validity.Append(valid)
	}
	return NewMixedGeometryArray(typeIDs, offsets, validity.Finish(), children)
}

func (c *MixedChildren[O]) set(t common.GeometryType, arr arrow.Array) error {
	var err error
	switch t {
	case common.GeometryTypePoint:
		c.Points, err = PointArrayFromArrow(arr)
	case common.GeometryTypeLineString:
		c.LineStrings, err = LineStringArrayFromArrow[O](arr)
	case common.GeometryTypePolygon:
		c.Polygons, err = PolygonArrayFromArrow[O](arr)
	case common.GeometryTypeMultiPoint:
		c.MultiPoints, err = MultiPointArrayFromArrow[O](arr)
	case common.GeometryTypeMultiLineString:
		c.MultiLineStrings, err = MultiLineStringArrayFromArrow[O](arr)
	case common.GeometryTypeMultiPolygon:
		c.MultiPolygons, err = MultiPolygonArrayFromArrow[O](arr)
	}
	return err
}

// FromArrow dispatches on the extension name of arr.
func FromArrow[O common.Offset](arr arrow.Array) (GeometryArray, error) {
	ext, ok := arr.(array.ExtensionArray)
	if !ok {
		return nil, fmt.Errorf("%s is not a geometry extension array: %w", arr.DataType(), common.ErrShapeMismatch)
	}
	switch ext.ExtensionType().ExtensionName() {
	case common.ExtensionNamePoint:
		return asArray(PointArrayFromArrow(arr))
	case common.ExtensionNameLineString:
		return asArray(LineStringArrayFromArrow[O](arr))
	case common.ExtensionNamePolygon:
		return asArray(PolygonArrayFromArrow[O](arr))
	case common.ExtensionNameMultiPoint:
		return asArray(MultiPointArrayFromArrow[O](arr))
	case common.ExtensionNameMultiLineString:
		return asArray(MultiLineStringArrayFromArrow[O](arr))
	case common.ExtensionNameMultiPolygon:
		return asArray(MultiPolygonArrayFromArrow[O](arr))
	case common.ExtensionNameGeometry:
		return asArray(MixedGeometryArrayFromArrow[O](arr))
	default:
		return nil, fmt.Errorf("extension %s: %w", ext.ExtensionType().ExtensionName(), common.ErrUnknownGeometryType)
	}
}
