package compute

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkt"

	"github.com/hangxie/geocolumn/common"
	"github.com/hangxie/geocolumn/geoarray"
	"github.com/hangxie/geocolumn/wkb"
)

const ewktSRIDPrefix = "SRID="

// GeomRows is satisfied by typed, mixed and blob arrays.
type GeomRows interface {
	Len() int
	ValueAsGeom(i int) (geom.T, error)
}

// AsText renders every row as WKT; null rows stay null. The caller owns the
// result.
func AsText(mem memory.Allocator, arr GeomRows) (*array.String, error) {
	return renderText(mem, arr, false)
}

// AsEWKT renders every row as WKT prefixed with "SRID=n;" when the row
// carries a non-zero SRID. The caller owns the result.
func AsEWKT(mem memory.Allocator, arr GeomRows) (*array.String, error) {
	return renderText(mem, arr, true)
}

func renderText(mem memory.Allocator, arr GeomRows, extended bool) (*array.String, error) {
	b := array.NewStringBuilder(mem)
	defer b.Release()
	b.Reserve(arr.Len())
	for i := range arr.Len() {
		g, err := arr.ValueAsGeom(i)
		if err != nil {
			return nil, err
		}
		if g == nil {
			b.AppendNull()
			continue
		}
		text, err := wkt.Marshal(g)
		if err != nil {
			return nil, fmt.Errorf("row %d: WKT: %w", i, err)
		}
		if extended && g.SRID() != 0 {
			text = ewktSRIDPrefix + strconv.Itoa(g.SRID()) + ";" + text
		}
		b.Append(text)
	}
	return b.NewStringArray(), nil
}

// ParseText parses WKT, or EWKT when s starts with "SRID=n;". Failures wrap
// common.ErrDecode.
func ParseText(s string) (geom.T, error) {
	s = strings.TrimSpace(s)
	srid := 0
	if len(s) >= len(ewktSRIDPrefix) && strings.EqualFold(s[:len(ewktSRIDPrefix)], ewktSRIDPrefix) {
		head, body, ok := strings.Cut(s[len(ewktSRIDPrefix):], ";")
		if !ok {
			return nil, fmt.Errorf("EWKT without ';' after SRID: %w", common.ErrDecode)
		}
		n, err := strconv.ParseInt(strings.TrimSpace(head), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("EWKT SRID %q: %w: %w", head, common.ErrDecode, err)
		}
		srid, s = int(n), strings.TrimSpace(body)
	}
	g, err := wkt.Unmarshal(s)
	if err != nil {
		return nil, fmt.Errorf("WKT: %w: %w", common.ErrDecode, err)
	}
	return common.WithSRID(g, srid), nil
}

func parseColumn(texts *array.String) ([]geom.T, error) {
	geoms := make([]geom.T, texts.Len())
	for i := range texts.Len() {
		if texts.IsNull(i) {
			continue
		}
		g, err := ParseText(texts.Value(i))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		geoms[i] = g
	}
	return geoms, nil
}

// FromText parses a WKT or EWKT column into the narrowest typed array that
// holds every row, or a mixed array when shapes differ. Null strings become
// null rows. SRIDs are dropped since typed arrays do not carry them.
func FromText[O common.Offset](texts *array.String) (geoarray.GeometryArray, error) {
	geoms, err := parseColumn(texts)
	if err != nil {
		return nil, err
	}
	kind, err := geoarray.NarrowestKind(geoms)
	if err != nil {
		return nil, err
	}
	return geoarray.BuildFromGeoms[O](kind, geoms)
}

// FromTextWKB parses a WKT or EWKT column into blobs of dialect d. EWKT
// SRIDs are kept by the dialects that carry one.
func FromTextWKB[O common.Offset](d wkb.Dialect, texts *array.String) (*wkb.Array[O], error) {
	geoms, err := parseColumn(texts)
	if err != nil {
		return nil, err
	}
	return wkb.ArrayFromGeoms[O](d, geoms)
}
