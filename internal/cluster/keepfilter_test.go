package cluster

import (
	"testing"

	"github.com/rnleach/satfire/internal/geo"
	"github.com/rnleach/satfire/internal/pixel"
)

func pixelWithFlag(maskFlag int16) pixel.Pixel {
	return pixel.New(
		geo.Coord{Lat: 1, Lon: 0}, geo.Coord{Lat: 0, Lon: 0},
		geo.Coord{Lat: 0, Lon: 1}, geo.Coord{Lat: 1, Lon: 1},
		1, 1, 300, 1, maskFlag, 0,
	)
}

func TestKeepRejectsWideScanAngle(t *testing.T) {
	c := Cluster{
		MaxScanAngle: 8.3,
		Pixels:       pixel.List{pixelWithFlag(10)},
	}
	if Keep(c) {
		t.Fatalf("expected cluster at the scan-angle boundary to be rejected")
	}
}

func TestKeepRequiresAGoodMaskFlag(t *testing.T) {
	c := Cluster{
		MaxScanAngle: 1,
		Pixels:       pixel.List{pixelWithFlag(0)},
	}
	if Keep(c) {
		t.Fatalf("expected cluster with no good mask flag to be rejected")
	}

	c.Pixels = pixel.List{pixelWithFlag(0), pixelWithFlag(31)}
	if !Keep(c) {
		t.Fatalf("expected cluster with at least one good mask flag to be kept")
	}
}

func TestKeepIsIdempotent(t *testing.T) {
	clusters := []Cluster{
		{MaxScanAngle: 1, Pixels: pixel.List{pixelWithFlag(10)}},
		{MaxScanAngle: 9, Pixels: pixel.List{pixelWithFlag(10)}},
	}

	once := KeepAll(clusters)
	twice := KeepAll(once)

	if len(once) != len(twice) {
		t.Fatalf("expected KeepAll to be idempotent, got %d then %d", len(once), len(twice))
	}
}
