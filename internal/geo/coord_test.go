package geo

import "testing"

func TestCoordIsClose(t *testing.T) {
	a := Coord{Lat: 44.5, Lon: -119.5}
	b := Coord{Lat: 44.5 + 1e-9, Lon: -119.5 - 1e-9}

	if !a.IsClose(b, 1e-6) {
		t.Fatalf("expected nearly identical coords to be close")
	}
	if a.IsClose(Coord{Lat: 45.5, Lon: -119.5}, 1e-6) {
		t.Fatalf("expected a 1-degree difference to not be close")
	}
}

func TestTriangleCentroid(t *testing.T) {
	c := TriangleCentroid(
		Coord{Lat: 0, Lon: 0},
		Coord{Lat: 3, Lon: 0},
		Coord{Lat: 0, Lon: 3},
	)
	if c.Lat != 1 || c.Lon != 1 {
		t.Fatalf("unexpected centroid: %+v", c)
	}
}
