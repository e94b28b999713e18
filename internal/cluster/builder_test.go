package cluster

import (
	"testing"
	"time"

	"github.com/rnleach/satfire/internal/geo"
	"github.com/rnleach/satfire/internal/satimage"
)

func firePointAt(x, y int) satimage.FirePoint {
	lat := 44.0 + float64(y)
	lon := -119.0 + float64(x)
	return satimage.FirePoint{
		X: x, Y: y,
		Power: 1, Area: 1, Temperature: 300, ScanAngle: 1,
		MaskFlag: 10, DataQualityFlag: 0,
		UL: geo.Coord{Lat: lat + 1, Lon: lon},
		LL: geo.Coord{Lat: lat, Lon: lon},
		LR: geo.Coord{Lat: lat, Lon: lon + 1},
		UR: geo.Coord{Lat: lat + 1, Lon: lon + 1},
	}
}

func testProvenance() Provenance {
	return Provenance{
		Satellite: satimage.G16,
		Sector:    satimage.FDCF,
		ScanStart: time.Date(2021, 4, 10, 12, 0, 0, 0, time.UTC),
		ScanEnd:   time.Date(2021, 4, 10, 12, 10, 0, 0, time.UTC),
	}
}

func TestBuildScenarioS4(t *testing.T) {
	points := []satimage.FirePoint{
		firePointAt(0, 0),
		firePointAt(0, 1),
		firePointAt(2, 2),
		firePointAt(3, 2),
	}

	clusters := Build(points, testProvenance())

	if len(clusters) != 2 {
		t.Fatalf("expected 2 clusters, got %d", len(clusters))
	}

	counts := make(map[int]bool)
	for _, c := range clusters {
		counts[len(c.Pixels)] = true
	}
	if !counts[2] || len(counts) != 1 {
		t.Fatalf("expected both clusters to have 2 members, got cluster sizes %v", counts)
	}
}

func TestBuildSinglePointIsItsOwnCluster(t *testing.T) {
	points := []satimage.FirePoint{firePointAt(0, 0)}
	clusters := Build(points, testProvenance())

	if len(clusters) != 1 || len(clusters[0].Pixels) != 1 {
		t.Fatalf("expected one singleton cluster, got %+v", clusters)
	}
}

func TestBuildEveryPointIsAccountedForExactlyOnce(t *testing.T) {
	points := []satimage.FirePoint{
		firePointAt(0, 0), firePointAt(1, 0), firePointAt(1, 1),
		firePointAt(10, 10), firePointAt(10, 11),
		firePointAt(50, 50),
	}

	clusters := Build(points, testProvenance())

	total := 0
	for _, c := range clusters {
		total += len(c.Pixels)
	}
	if total != len(points) {
		t.Fatalf("expected every point accounted for exactly once, got %d of %d", total, len(points))
	}
}
