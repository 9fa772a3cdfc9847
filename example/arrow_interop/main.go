//go:build example

package main

import (
	"fmt"
	"log"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/twpayne/go-geom"

	"github.com/hangxie/geocolumn/compute"
	"github.com/hangxie/geocolumn/geoarray"
	"github.com/hangxie/geocolumn/types"
	"github.com/hangxie/geocolumn/wkb"
)

func main() {
	if err := geoarray.RegisterExtensionTypes(); err != nil {
		log.Fatal(err)
	}
	mem := memory.NewGoAllocator()

	polygons, err := geoarray.PolygonArrayFromGeoms[int64]([]geom.T{
		geom.NewPolygonFlat(geom.XY, []float64{0, 0, 1, 0, 1, 1, 0, 0}, []int{8}),
		nil,
		geom.NewPolygonFlat(geom.XY, []float64{5, 5, 7, 5, 7, 8, 5, 5}, []int{8}),
	})
	if err != nil {
		log.Fatal(err)
	}

	// export shares the coordinate and offset buffers
	out := polygons.ToArrow()
	defer out.Release()
	ext := out.(array.ExtensionArray)
	fmt.Printf("%s: %s\n", ext.ExtensionType().ExtensionName(), ext.Storage().DataType())

	back, err := geoarray.FromArrow[int64](out)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("imported %d rows\n", back.Len())

	boxes, err := compute.Boxes(back)
	if err != nil {
		log.Fatal(err)
	}
	column := types.BuildBox2DArray(mem, boxes)
	defer column.Release()
	fmt.Println("boxes:", column)

	envelopes, err := compute.MakeEnvelope[int32](column)
	if err != nil {
		log.Fatal(err)
	}
	wktColumn, err := compute.AsText(mem, envelopes)
	if err != nil {
		log.Fatal(err)
	}
	defer wktColumn.Release()
	fmt.Println("envelopes:", wktColumn)

	blobs, err := wkb.ArrayFromGeoms[int32](wkb.DialectEWKB, []geom.T{
		geom.NewPointFlat(geom.XY, []float64{1, 2}).SetSRID(4326),
	})
	if err != nil {
		log.Fatal(err)
	}
	binary := blobs.ToArrow(mem)
	defer binary.Release()
	fmt.Println("tagged blob column:", binary.DataType(), binary.Len())

	srids, err := compute.SRIDs(mem, blobs)
	if err != nil {
		log.Fatal(err)
	}
	defer srids.Release()
	fmt.Println("srids:", srids)
}
