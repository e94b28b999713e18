package geo

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Line is an ordered pair of coordinates, (Start, End).
type Line struct {
	Start Coord
	End   Coord
}

// IntersectResult describes where two line segments cross.
type IntersectResult struct {
	Intersection       Coord
	IntersectIsEndpoints bool
}

// singularDeterminantEps is the threshold below which the 2x2 system matrix
// is treated as singular (parallel or coincident lines).
const singularDeterminantEps = 1e-12

// Intersect computes the intersection of l and other, treating (lon, lat)
// as ordinary Cartesian coordinates. It returns (_, false) when the lines
// are parallel/coincident (determinant within singularDeterminantEps of
// zero) or when the intersection falls outside either segment (t or u outside
// [0,1], allowing eps of slop at either end).
//
// IntersectIsEndpoints is true when the intersection point lies within eps
// of either endpoint of either line — callers use this to suppress
// "shared corner" false positives when testing pixel overlap.
func (l Line) Intersect(other Line, eps float64) (IntersectResult, bool) {
	dx1 := l.End.Lon - l.Start.Lon
	dy1 := l.End.Lat - l.Start.Lat
	dx2 := other.End.Lon - other.Start.Lon
	dy2 := other.End.Lat - other.Start.Lat

	// Solve:
	//   t*dx1 - u*dx2 = other.Start.Lon - l.Start.Lon
	//   t*dy1 - u*dy2 = other.Start.Lat - l.Start.Lat
	a := mat.NewDense(2, 2, []float64{dx1, -dx2, dy1, -dy2})
	b := mat.NewVecDense(2, []float64{
		other.Start.Lon - l.Start.Lon,
		other.Start.Lat - l.Start.Lat,
	})

	det := mat.Det(a)
	if math.Abs(det) < singularDeterminantEps {
		return IntersectResult{}, false
	}

	var tu mat.VecDense
	if err := tu.SolveVec(a, b); err != nil {
		return IntersectResult{}, false
	}
	t := tu.AtVec(0)
	u := tu.AtVec(1)

	if t < -eps || t > 1+eps || u < -eps || u > 1+eps {
		return IntersectResult{}, false
	}

	intersection := Coord{
		Lat: l.Start.Lat + t*dy1,
		Lon: l.Start.Lon + t*dx1,
	}

	endpointTouch := math.Min(t, 1-t) < eps || math.Min(u, 1-u) < eps

	return IntersectResult{
		Intersection:         intersection,
		IntersectIsEndpoints: endpointTouch,
	}, true
}
