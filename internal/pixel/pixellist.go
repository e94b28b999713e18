package pixel

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/rnleach/satfire/internal/geo"
)

// List is an ordered, owned sequence of pixels. It preserves insertion
// order.
type List []Pixel

// NewList creates an empty list with the given capacity hint.
func NewList(capacity int) List {
	return make(List, 0, capacity)
}

// finite reports whether v is neither NaN nor infinite.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// TotalPower sums the Power of every pixel in the list, skipping any pixel
// whose power is NaN or infinite.
func (l List) TotalPower() float64 {
	vals := make([]float64, 0, len(l))
	for _, p := range l {
		if finite(p.Power) {
			vals = append(vals, p.Power)
		}
	}
	return floats.Sum(vals)
}

// TotalArea sums the Area of every pixel in the list, skipping any pixel
// whose area is NaN or infinite.
func (l List) TotalArea() float64 {
	vals := make([]float64, 0, len(l))
	for _, p := range l {
		if finite(p.Area) {
			vals = append(vals, p.Area)
		}
	}
	return floats.Sum(vals)
}

// MaxTemperature reduces the list's temperatures with a min-identity of
// negative infinity, skipping NaN/infinite values.
func (l List) MaxTemperature() float64 {
	maxVal := math.Inf(-1)
	for _, p := range l {
		if finite(p.Temperature) && p.Temperature > maxVal {
			maxVal = p.Temperature
		}
	}
	return maxVal
}

// MaxScanAngle reduces the list's scan angles with a min-identity of
// negative infinity, skipping NaN/infinite values.
func (l List) MaxScanAngle() float64 {
	maxVal := math.Inf(-1)
	for _, p := range l {
		if finite(p.ScanAngle) && p.ScanAngle > maxVal {
			maxVal = p.ScanAngle
		}
	}
	return maxVal
}

// Centroid is the arithmetic mean of the per-pixel centroids. It panics on
// an empty list (a geometry precondition violation — see the project
// specification's error-handling design).
func (l List) Centroid() geo.Coord {
	if len(l) == 0 {
		panic("pixel.List.Centroid: empty list has no centroid")
	}

	var sumLat, sumLon float64
	for _, p := range l {
		c := p.Centroid()
		sumLat += c.Lat
		sumLon += c.Lon
	}

	n := float64(len(l))
	return geo.Coord{Lat: sumLat / n, Lon: sumLon / n}
}

// BoundingBox is the componentwise min/max bounding box over every pixel in
// the list. It panics on an empty list.
func (l List) BoundingBox() geo.BoundingBox {
	if len(l) == 0 {
		panic("pixel.List.BoundingBox: empty list has no bounding box")
	}

	minLat, maxLat := math.Inf(1), math.Inf(-1)
	minLon, maxLon := math.Inf(1), math.Inf(-1)

	for _, p := range l {
		minLat = math.Min(minLat, math.Min(p.LL.Lat, p.LR.Lat))
		maxLat = math.Max(maxLat, math.Max(p.UL.Lat, p.UR.Lat))
		minLon = math.Min(minLon, math.Min(p.LL.Lon, p.LR.Lon))
		maxLon = math.Max(maxLon, math.Max(p.UL.Lon, p.UR.Lon))
	}

	return geo.BoundingBox{
		LL: geo.Coord{Lat: minLat, Lon: minLon},
		UR: geo.Coord{Lat: maxLat, Lon: maxLon},
	}
}

// MaxMerge merges other into a copy of l: for each pixel in other, the
// first approximately-equal (at OverlapFudgeFactor) pixel already in the
// result is replaced by its pixel-wise MaxMerge; pixels with no match are
// appended as-is.
func (l List) MaxMerge(other List) List {
	result := make(List, len(l))
	copy(result, l)

	for _, op := range other {
		matched := false
		for i, rp := range result {
			if rp.ApproxEqual(op, OverlapFudgeFactor) {
				result[i] = rp.MaxMerge(op)
				matched = true
				break
			}
		}
		if !matched {
			result = append(result, op)
		}
	}

	return result
}

// AdjacentToOrOverlaps reports whether any pixel in l is adjacent to or
// overlaps any pixel in other, after a cheap bounding-box pre-check over
// the two lists as a whole.
func (l List) AdjacentToOrOverlaps(other List, eps float64) bool {
	if len(l) == 0 || len(other) == 0 {
		return false
	}

	if !l.BoundingBox().Overlap(other.BoundingBox(), eps) {
		return false
	}

	for _, lp := range l {
		for _, op := range other {
			if lp.IsAdjacentToOrOverlaps(op, eps) {
				return true
			}
		}
	}

	return false
}
