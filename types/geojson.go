package types

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/hangxie/geocolumn/common"
)

var (
	// wrap rendered geometries in a Feature with empty properties
	geoJSONAsFeature = true

	// digits after the decimal point, negative keeps full precision
	geoJSONCoordPrecision = 6
)

// SetGeoJSONAsFeature switches GeoJSON between Feature and bare geometry output.
func SetGeoJSONAsFeature(asFeature bool) { geoJSONAsFeature = asFeature }

// SetGeoJSONCoordinatePrecision sets how many decimals GeoJSON keeps per
// coordinate; the default is 6 and a negative value turns rounding off.
func SetGeoJSONCoordinatePrecision(precision int) { geoJSONCoordPrecision = precision }

type feature struct {
	Type       string          `json:"type"`
	Geometry   json.RawMessage `json:"geometry"`
	Properties map[string]any  `json:"properties"`
}

// GeoJSON renders g with the package settings. A nil geometry renders as
// JSON null.
func GeoJSON(g geom.T) ([]byte, error) {
	if g == nil {
		return []byte("null"), nil
	}
	rounded, err := roundGeom(g)
	if err != nil {
		return nil, err
	}
	body, err := geojson.Marshal(rounded)
	if err != nil {
		return nil, fmt.Errorf("encode %T as GeoJSON: %w", g, err)
	}
	if !geoJSONAsFeature {
		return body, nil
	}
	return json.Marshal(feature{Type: "Feature", Geometry: body, Properties: map[string]any{}})
}

// roundCoordinate applies geoJSONCoordPrecision to v.
func roundCoordinate(v float64) float64 {
	if geoJSONCoordPrecision < 0 {
		return v
	}
	pow := math.Pow(10, float64(geoJSONCoordPrecision))
	return math.Round(v*pow) / pow
}

// roundGeom returns a copy of g with rounded coordinates, or g itself when
// rounding is disabled.
func roundGeom(g geom.T) (geom.T, error) {
	if geoJSONCoordPrecision < 0 {
		return g, nil
	}
	clone, err := common.CloneGeometry(g)
	if err != nil {
		return nil, fmt.Errorf("GeoJSON: %w", err)
	}
	flat := clone.FlatCoords()
	for i, v := range flat {
		flat[i] = roundCoordinate(v)
	}
	return clone, nil
}
