package geo

import (
	"math"
	"testing"
)

func TestLineIntersect_CrossingSegments(t *testing.T) {
	l1 := Line{Start: Coord{Lat: 0, Lon: 0}, End: Coord{Lat: 2, Lon: 2}}
	l2 := Line{Start: Coord{Lat: 0, Lon: 2}, End: Coord{Lat: 2, Lon: 0}}

	res, ok := l1.Intersect(l2, 1e-9)
	if !ok {
		t.Fatalf("expected an intersection")
	}
	if math.Abs(res.Intersection.Lat-1) > 1e-9 || math.Abs(res.Intersection.Lon-1) > 1e-9 {
		t.Fatalf("unexpected intersection point: %+v", res.Intersection)
	}
	if res.IntersectIsEndpoints {
		t.Fatalf("midpoint crossing should not be classified as an endpoint touch")
	}
}

func TestLineIntersect_ParallelLines(t *testing.T) {
	l1 := Line{Start: Coord{Lat: 0, Lon: 0}, End: Coord{Lat: 0, Lon: 1}}
	l2 := Line{Start: Coord{Lat: 1, Lon: 0}, End: Coord{Lat: 1, Lon: 1}}

	if _, ok := l1.Intersect(l2, 1e-9); ok {
		t.Fatalf("parallel lines must not report an intersection")
	}
}

func TestLineIntersect_SharedEndpoint(t *testing.T) {
	l1 := Line{Start: Coord{Lat: 0, Lon: 0}, End: Coord{Lat: 1, Lon: 1}}
	l2 := Line{Start: Coord{Lat: 1, Lon: 1}, End: Coord{Lat: 2, Lon: 0}}

	res, ok := l1.Intersect(l2, 1e-6)
	if !ok {
		t.Fatalf("expected an intersection at the shared corner")
	}
	if !res.IntersectIsEndpoints {
		t.Fatalf("shared corner should be classified as an endpoint touch")
	}
}

func TestLineIntersect_OutsideSegment(t *testing.T) {
	l1 := Line{Start: Coord{Lat: 0, Lon: 0}, End: Coord{Lat: 1, Lon: 1}}
	l2 := Line{Start: Coord{Lat: 3, Lon: 0}, End: Coord{Lat: 0, Lon: 3}}

	if _, ok := l1.Intersect(l2, 1e-9); ok {
		t.Fatalf("the lines, extended, would cross, but not within either segment")
	}
}
