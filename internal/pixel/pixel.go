// Package pixel implements the Pixel and PixelList geometric primitives: a
// satellite pixel's quadrilateral footprint, its radiative attributes, and
// the predicates (containment, overlap, adjacency, merging) the clustering
// algorithm is built on.
package pixel

import (
	"fmt"
	"math"

	"github.com/rnleach/satfire/internal/geo"
)

// OverlapFudgeFactor is the default epsilon used when two pixel lists are
// merged and corners must be matched up to floating-point noise.
const OverlapFudgeFactor = 1.0e-2

// Pixel is a convex quadrilateral viewed from a geostationary satellite,
// plus its radiative attributes.
type Pixel struct {
	// UL, LL, LR, UR are the upper-left, lower-left, lower-right, and
	// upper-right corners, in that fixed order.
	UL, LL, LR, UR geo.Coord

	// Power is the radiative power of the pixel, in megawatts.
	Power float64
	// Area is the estimated fire area within the pixel, in square meters.
	Area float64
	// Temperature is the estimated fire temperature, in Kelvin.
	Temperature float64
	// ScanAngle is the satellite-frame viewing angle from nadir, in degrees.
	ScanAngle float64

	// MaskFlag describes the detection class of this pixel.
	MaskFlag int16
	// DataQualityFlag carries the upstream product's quality code.
	DataQualityFlag int16
}

// New constructs a Pixel, panicking if the four corners do not form a
// convex, non-degenerate quadrilateral (a programmer error — see the
// precondition-violation error kind in the project specification).
func New(ul, ll, lr, ur geo.Coord, power, area, temperature, scanAngle float64, maskFlag, dataQualityFlag int16) Pixel {
	p := Pixel{
		UL: ul, LL: ll, LR: lr, UR: ur,
		Power: power, Area: area, Temperature: temperature, ScanAngle: scanAngle,
		MaskFlag: maskFlag, DataQualityFlag: dataQualityFlag,
	}
	if err := p.validateConvex(); err != nil {
		panic(fmt.Sprintf("pixel.New: %v", err))
	}
	return p
}

// validateConvex checks that the four corners are distinct and that walking
// them in UL, UR, LR, LL order traces a convex ring (consistent cross
// product sign at every vertex).
func (p Pixel) validateConvex() error {
	ring := [4]geo.Coord{p.UL, p.UR, p.LR, p.LL}

	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			if ring[i] == ring[j] {
				return fmt.Errorf("corners must be distinct, got duplicate corner %+v", ring[i])
			}
		}
	}

	var sign float64
	for i := 0; i < 4; i++ {
		a := ring[i]
		b := ring[(i+1)%4]
		c := ring[(i+2)%4]

		cross := crossProduct(a, b, c)
		if cross == 0 {
			continue // collinear vertex, not itself a convexity violation
		}
		if sign == 0 {
			sign = math.Copysign(1, cross)
		} else if math.Copysign(1, cross) != sign {
			return fmt.Errorf("corners %+v do not form a convex quadrilateral", ring)
		}
	}

	return nil
}

func crossProduct(a, b, c geo.Coord) float64 {
	ux, uy := b.Lon-a.Lon, b.Lat-a.Lat
	vx, vy := c.Lon-b.Lon, c.Lat-b.Lat
	return ux*vy - uy*vx
}

// Centroid computes the centroid of the quadrilateral as the intersection
// of the two "diagonal centroid lines": split the quad into triangles along
// each diagonal, connect the two triangle centroids from each split, and
// intersect the two resulting segments.
func (p Pixel) Centroid() geo.Coord {
	t1 := geo.TriangleCentroid(p.UL, p.LL, p.LR)
	t2 := geo.TriangleCentroid(p.UL, p.UR, p.LR)
	diag1 := geo.Line{Start: t1, End: t2}

	t3 := geo.TriangleCentroid(p.UL, p.LL, p.UR)
	t4 := geo.TriangleCentroid(p.LR, p.UR, p.LL)
	diag2 := geo.Line{Start: t3, End: t4}

	res, ok := diag1.Intersect(diag2, 1.0e-30)
	if !ok {
		panic("pixel.Centroid: diagonal centroid lines did not intersect; pixel is degenerate")
	}

	return res.Intersection
}

// BoundingBox returns the componentwise min/max bounding box of the four
// corners.
func (p Pixel) BoundingBox() geo.BoundingBox {
	minLat := math.Min(math.Min(p.LL.Lat, p.LR.Lat), math.Min(p.UL.Lat, p.UR.Lat))
	maxLat := math.Max(math.Max(p.LL.Lat, p.LR.Lat), math.Max(p.UL.Lat, p.UR.Lat))
	minLon := math.Min(math.Min(p.LL.Lon, p.LR.Lon), math.Min(p.UL.Lon, p.UR.Lon))
	maxLon := math.Max(math.Max(p.LL.Lon, p.LR.Lon), math.Max(p.UL.Lon, p.UR.Lon))

	return geo.BoundingBox{
		LL: geo.Coord{Lat: minLat, Lon: minLon},
		UR: geo.Coord{Lat: maxLat, Lon: maxLon},
	}
}

// ApproxEqual reports whether every corner of p is within eps of the
// corresponding corner of other. Only geometry is compared, not the
// radiative attributes.
func (p Pixel) ApproxEqual(other Pixel, eps float64) bool {
	return p.UL.IsClose(other.UL, eps) &&
		p.UR.IsClose(other.UR, eps) &&
		p.LR.IsClose(other.LR, eps) &&
		p.LL.IsClose(other.LL, eps)
}

// ContainsCoord reports whether c lies strictly inside p (points on the
// boundary are NOT considered contained).
func (p Pixel) ContainsCoord(c geo.Coord, eps float64) bool {
	if !p.BoundingBox().ContainsCoord(c, eps) {
		return false
	}

	pxlLines := p.edges()

	// A point within eps of an edge is on the boundary, not inside.
	for _, e := range pxlLines {
		dx, dy := e.End.Lon-e.Start.Lon, e.End.Lat-e.Start.Lat
		cross := dx*(c.Lat-e.Start.Lat) - dy*(c.Lon-e.Start.Lon)
		edgeBox := geo.BoundingBox{
			LL: geo.Coord{Lat: math.Min(e.Start.Lat, e.End.Lat), Lon: math.Min(e.Start.Lon, e.End.Lon)},
			UR: geo.Coord{Lat: math.Max(e.Start.Lat, e.End.Lat), Lon: math.Max(e.Start.Lon, e.End.Lon)},
		}
		if math.Abs(cross) <= eps*math.Hypot(dx, dy) && edgeBox.ContainsCoord(c, eps) {
			return false
		}
	}

	coordLines := [4]geo.Line{
		{Start: c, End: p.UL},
		{Start: c, End: p.UR},
		{Start: c, End: p.LL},
		{Start: c, End: p.LR},
	}

	for _, pl := range pxlLines {
		for _, cl := range coordLines {
			if res, ok := pl.Intersect(cl, eps); ok {
				if !res.IntersectIsEndpoints {
					return false
				}
			}
		}
	}

	return true
}

// edges returns the four boundary segments of the quadrilateral in ring
// order: UL->UR, UR->LR, LR->LL, LL->UL.
func (p Pixel) edges() [4]geo.Line {
	return [4]geo.Line{
		{Start: p.UL, End: p.UR},
		{Start: p.UR, End: p.LR},
		{Start: p.LR, End: p.LL},
		{Start: p.LL, End: p.UL},
	}
}

func (p Pixel) corners() [4]geo.Coord {
	return [4]geo.Coord{p.UL, p.UR, p.LR, p.LL}
}

// Overlap reports whether p and other overlap: approximately equal, edges
// that properly intersect (not a shared-corner touch), or a corner of p
// strictly interior to other.
//
// The symmetric check (a corner of other interior to p) is intentionally
// omitted: for convex quadrilaterals, if the edges don't intersect and no
// corner of p is interior to other, then geometrically no corner of other
// can be interior to p either without one of the preceding checks having
// already caught it.
func (p Pixel) Overlap(other Pixel, eps float64) bool {
	if p.ApproxEqual(other, eps) {
		return true
	}

	if !p.BoundingBox().Overlap(other.BoundingBox(), eps) {
		return false
	}

	selfLines := p.edges()
	otherLines := other.edges()
	for _, sl := range selfLines {
		for _, ol := range otherLines {
			if res, ok := sl.Intersect(ol, eps); ok {
				if !res.IntersectIsEndpoints {
					return true
				}
			}
		}
	}

	for _, c := range p.corners() {
		if other.ContainsCoord(c, eps) {
			return true
		}
	}

	return false
}

// IsAdjacentTo reports whether p and other are adjacent: not
// approximately equal, overlapping bounding boxes, exactly one or two
// shared corners (within eps), no non-shared corner of either interior to
// the other, and neither centroid interior to the other.
func (p Pixel) IsAdjacentTo(other Pixel, eps float64) bool {
	if p.ApproxEqual(other, eps) {
		return false
	}

	if !p.BoundingBox().Overlap(other.BoundingBox(), eps) {
		return false
	}

	selfCoords := p.corners()
	otherCoords := other.corners()

	var selfClose, otherClose [4]bool
	numClose := 0
	for i := range selfCoords {
		for j := range otherCoords {
			if selfCoords[i].IsClose(otherCoords[j], eps) {
				numClose++
				selfClose[i] = true
				otherClose[j] = true
			}
		}
	}

	if numClose < 1 || numClose > 2 {
		return false
	}

	for i := range selfClose {
		if !selfClose[i] && other.ContainsCoord(selfCoords[i], eps) {
			return false
		}
		if !otherClose[i] && p.ContainsCoord(otherCoords[i], eps) {
			return false
		}
	}

	if other.ContainsCoord(p.Centroid(), eps) {
		return false
	}
	if p.ContainsCoord(other.Centroid(), eps) {
		return false
	}

	return true
}

// IsAdjacentToOrOverlaps is a fast-pathed combination of Overlap and
// IsAdjacentTo: a shared bounding box is required; two or more shared
// corners, or any corner of one interior to the other, short-circuits to
// true; otherwise it falls back to Overlap(other) || IsAdjacentTo(other).
func (p Pixel) IsAdjacentToOrOverlaps(other Pixel, eps float64) bool {
	if !p.BoundingBox().Overlap(other.BoundingBox(), eps) {
		return false
	}

	selfCoords := p.corners()
	otherCoords := other.corners()

	numClose := 0
	for _, sc := range selfCoords {
		for _, oc := range otherCoords {
			if sc.IsClose(oc, eps) {
				numClose++
				if numClose > 1 {
					return true
				}
			}
		}
	}

	for _, sc := range selfCoords {
		if other.ContainsCoord(sc, eps) {
			return true
		}
	}
	for _, oc := range otherCoords {
		if p.ContainsCoord(oc, eps) {
			return true
		}
	}

	return p.Overlap(other, eps) || p.IsAdjacentTo(other, eps)
}

// MaxMerge returns a pixel whose corners match p's, with power, area, and
// temperature set to the componentwise maxima of p and other, and whose
// flag fields take the lexically smaller code of the two.
func (p Pixel) MaxMerge(other Pixel) Pixel {
	merged := p
	merged.Power = maxIgnoreNaN(p.Power, other.Power)
	merged.Area = maxIgnoreNaN(p.Area, other.Area)
	merged.Temperature = maxIgnoreNaN(p.Temperature, other.Temperature)

	if other.MaskFlag < p.MaskFlag {
		merged.MaskFlag = other.MaskFlag
	}
	if other.DataQualityFlag < p.DataQualityFlag {
		merged.DataQualityFlag = other.DataQualityFlag
	}

	return merged
}

// maxIgnoreNaN returns the larger of a and b, preferring whichever operand
// is not NaN when only one of them is.
func maxIgnoreNaN(a, b float64) float64 {
	if math.IsNaN(a) {
		return b
	}
	if math.IsNaN(b) {
		return a
	}
	return math.Max(a, b)
}
