package geoarray

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/hangxie/geocolumn/common"
)

// ExtensionType tags a GeoArrow storage layout with its geometry type.
type ExtensionType struct {
	arrow.ExtensionBase
	geometryType common.GeometryType
}

func NewExtensionType(t common.GeometryType, storage arrow.DataType) *ExtensionType {
	return &ExtensionType{ExtensionBase: arrow.ExtensionBase{Storage: storage}, geometryType: t}
}

func (e *ExtensionType) GeometryType() common.GeometryType { return e.geometryType }

func (*ExtensionType) ArrayType() reflect.Type { return reflect.TypeOf(ExtensionArray{}) }

func (e *ExtensionType) ExtensionName() string { return e.geometryType.ExtensionName() }

func (e *ExtensionType) String() string {
	return fmt.Sprintf("extension<%s[%s]>", e.ExtensionName(), e.Storage)
}

func (e *ExtensionType) ExtensionEquals(other arrow.ExtensionType) bool {
	return e.ExtensionName() == other.ExtensionName() && arrow.TypeEqual(e.Storage, other.StorageType())
}

func (*ExtensionType) Serialize() string { return "" }

// Deserialize rebuilds the type for a registered name, checking that the
// storage nests deep enough for the geometry type.
func (e *ExtensionType) Deserialize(storage arrow.DataType, _ string) (arrow.ExtensionType, error) {
	if err := checkStorage(e.geometryType, storage); err != nil {
		return nil, err
	}
	return NewExtensionType(e.geometryType, storage), nil
}

// ExtensionArray is the arrow array type of every geometry extension type.
type ExtensionArray struct {
	array.ExtensionArrayBase
}

var storageDepths = map[common.GeometryType]int{
	common.GeometryTypePoint:           0,
	common.GeometryTypeLineString:      1,
	common.GeometryTypePolygon:         2,
	common.GeometryTypeMultiPoint:      1,
	common.GeometryTypeMultiLineString: 2,
	common.GeometryTypeMultiPolygon:    3,
}

func checkStorage(t common.GeometryType, storage arrow.DataType) error {
	if t == common.GeometryTypeMixed {
		if _, ok := storage.(*arrow.DenseUnionType); !ok {
			return fmt.Errorf("%s storage %s is not a dense union: %w", t.ExtensionName(), storage, common.ErrShapeMismatch)
		}
		return nil
	}
	want, known := storageDepths[t]
	if !known {
		return fmt.Errorf("geometry type %s: %w", t, common.ErrUnknownGeometryType)
	}
	if depth, ok := listDepth(storage); !ok || depth != want {
		return fmt.Errorf("%s storage %s: %w", t.ExtensionName(), storage, common.ErrShapeMismatch)
	}
	return nil
}

// listDepth counts the list levels above an interleaved xy coordinate.
func listDepth(dt arrow.DataType) (int, bool) {
	depth := 0
	for {
		switch t := dt.(type) {
		case *arrow.FixedSizeListType:
			return depth, t.Len() == 2 && t.Elem().ID() == arrow.FLOAT64
		case *arrow.LargeListType:
			dt = t.Elem()
		case *arrow.ListType:
			dt = t.Elem()
		default:
			return 0, false
		}
		depth++
	}
}

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterExtensionTypes registers the seven geometry extension types with
// arrow so that IPC readers hand back ExtensionArray values.
func RegisterExtensionTypes() error {
	registerOnce.Do(func() {
		prototypes := []*ExtensionType{
			NewExtensionType(common.GeometryTypePoint, coordType()),
			NewExtensionType(common.GeometryTypeLineString, lineStringStorageType[int32]()),
			NewExtensionType(common.GeometryTypePolygon, polygonStorageType[int32]()),
			NewExtensionType(common.GeometryTypeMultiPoint, multiPointStorageType[int32]()),
			NewExtensionType(common.GeometryTypeMultiLineString, multiLineStringStorageType[int32]()),
			NewExtensionType(common.GeometryTypeMultiPolygon, multiPolygonStorageType[int32]()),
			NewExtensionType(common.GeometryTypeMixed, arrow.DenseUnionOf(nil, nil)),
		}
		for _, p := range prototypes {
			if err := arrow.RegisterExtensionType(p); err != nil {
				registerErr = fmt.Errorf("register %s: %w", p.ExtensionName(), err)
				return
			}
		}
	})
	return registerErr
}
