//go:build example

package main

import (
	"context"
	"fmt"
	"log"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/hangxie/geocolumn/compute"
	"github.com/hangxie/geocolumn/geoarray"
	"github.com/hangxie/geocolumn/types"
	"github.com/hangxie/geocolumn/wkb"
)

func main() {
	rows := []geom.T{
		geom.NewPointFlat(geom.XY, []float64{-122.4, 37.8}),
		nil,
		geom.NewLineStringFlat(geom.XY, []float64{-122.4, 37.8, -122.41, 37.81}),
		geom.NewPolygonFlat(geom.XY, []float64{0, 0, 4, 0, 4, 4, 0, 0, 1, 1, 2, 1, 2, 2, 1, 1}, []int{8, 16}),
	}

	// rows of different shapes land in a mixed array
	kind, err := geoarray.NarrowestKind(rows)
	if err != nil {
		log.Fatal(err)
	}
	arr, err := geoarray.BuildFromGeoms[int32](kind, rows)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s array with %d rows, %d null\n", arr.ExtensionName(), arr.Len(), arr.NullCount())

	types.SetGeoJSONAsFeature(false)
	types.SetGeoJSONCoordinatePrecision(3)
	for i := range arr.Len() {
		g, err := arr.ValueAsGeom(i)
		if err != nil {
			log.Fatal(err)
		}
		out, err := types.GeoJSON(g)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("row %d: %s\n", i, out)
	}

	extent, ok, err := compute.Extent(arr)
	if err != nil {
		log.Fatal(err)
	}
	if ok {
		fmt.Printf("extent: %+v\n", extent)
	}

	hits, err := compute.IntersectsBox(arr, types.Box2D{MinX: -1, MinY: -1, MaxX: 1, MaxY: 1})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("rows near the origin:", hits.ToArray())

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()
	opts := compute.Options{Concurrency: 2, Logger: logger}

	blobs, err := compute.ToWKB[int32](context.Background(), arr, wkb.DialectGeoPackage, opts)
	if err != nil {
		log.Fatal(err)
	}
	moved, err := compute.Translate(context.Background(), blobs, 10, 10, opts)
	if err != nil {
		log.Fatal(err)
	}
	back, err := compute.FromWKB(moved)
	if err != nil {
		log.Fatal(err)
	}
	g, err := back.ValueAsGeom(0)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("translated first row: %v\n", g.FlatCoords())

	text, err := compute.AsEWKT(memory.DefaultAllocator, moved)
	if err != nil {
		log.Fatal(err)
	}
	defer text.Release()
	for i := range text.Len() {
		if text.IsValid(i) {
			fmt.Printf("row %d as text: %s\n", i, text.Value(i))
		}
	}
}
