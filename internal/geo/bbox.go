package geo

// BoundingBox is an axis-aligned rectangle in lat/lon space, with LL.Lat <=
// UR.Lat and LL.Lon <= UR.Lon.
type BoundingBox struct {
	LL Coord
	UR Coord
}

// ContainsCoord reports whether c lies within the box, expanded by eps on
// every side.
func (b BoundingBox) ContainsCoord(c Coord, eps float64) bool {
	return c.Lat >= b.LL.Lat-eps && c.Lat <= b.UR.Lat+eps &&
		c.Lon >= b.LL.Lon-eps && c.Lon <= b.UR.Lon+eps
}

// Overlap reports whether b and other overlap, each expanded by eps.
func (b BoundingBox) Overlap(other BoundingBox, eps float64) bool {
	if b.UR.Lat+eps < other.LL.Lat-eps || other.UR.Lat+eps < b.LL.Lat-eps {
		return false
	}
	if b.UR.Lon+eps < other.LL.Lon-eps || other.UR.Lon+eps < b.LL.Lon-eps {
		return false
	}
	return true
}
