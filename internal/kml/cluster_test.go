package kml

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rnleach/satfire/internal/cluster"
	"github.com/rnleach/satfire/internal/geo"
	"github.com/rnleach/satfire/internal/pixel"
	"github.com/rnleach/satfire/internal/satimage"
)

func TestWriteClusterProducesBalancedPolygons(t *testing.T) {
	p := pixel.New(
		geo.Coord{Lat: 45, Lon: -120}, geo.Coord{Lat: 44, Lon: -120},
		geo.Coord{Lat: 44, Lon: -119}, geo.Coord{Lat: 45, Lon: -119},
		12, 34, 345, 1, 10, 0,
	)

	c := cluster.Cluster{
		Provenance: cluster.Provenance{
			Satellite: satimage.G16,
			Sector:    satimage.FDCF,
			ScanStart: time.Date(2021, 4, 10, 12, 0, 0, 0, time.UTC),
			ScanEnd:   time.Date(2021, 4, 10, 12, 10, 0, 0, time.UTC),
		},
		Pixels:         pixel.List{p},
		TotalPower:     12,
		TotalArea:      34,
		MaxTemperature: 345,
		MaxScanAngle:   1,
	}

	var buf bytes.Buffer
	w, err := NewXMLWriter(&buf)
	if err != nil {
		t.Fatalf("NewXMLWriter: %v", err)
	}

	if err := WriteCluster(w, c, "#fireStyle"); err != nil {
		t.Fatalf("WriteCluster: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	out := buf.String()
	if strings.Count(out, "<Polygon>") != strings.Count(out, "</Polygon>") {
		t.Fatalf("expected balanced Polygon tags, got:\n%s", out)
	}
	if !strings.Contains(out, "<styleUrl>#fireStyle</styleUrl>") {
		t.Fatalf("expected style URL reference, got:\n%s", out)
	}
	if !strings.Contains(out, "-120,45,0") {
		t.Fatalf("expected the pixel's UL corner as a ring vertex, got:\n%s", out)
	}
}
