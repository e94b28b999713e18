package satimage

import (
	"time"

	"github.com/rnleach/satfire/internal/geo"
)

// FirePoint is a transient record produced by an image adapter: a single
// fire-detected raster cell's grid indices, radiative power, and the four
// geographic corners of the cell. A FirePoint is consumed exactly once, by
// the cluster builder.
type FirePoint struct {
	X, Y int

	Power           float64
	Area            float64
	Temperature     float64
	ScanAngle       float64
	MaskFlag        int16
	DataQualityFlag int16

	UL, LL, LR, UR geo.Coord
}

// FireSatImage is the external-collaborator contract the core consumes: a
// decoded fire-detection image exposing its provenance and a lazy stream of
// fire-bearing raster cells. Decoding the underlying raster file is
// explicitly out of scope for this module; callers supply a concrete
// implementation (e.g. backed by a NetCDF/HDF reader).
type FireSatImage interface {
	Satellite() Satellite
	Sector() Sector
	ScanStart() time.Time
	ScanEnd() time.Time

	// FirePoints lazily produces every fire-detected cell in the image on
	// the returned channel, closing it when exhausted; the error channel
	// is closed after the point channel closes, carrying at most one
	// terminal error.
	FirePoints() (<-chan FirePoint, <-chan error)
}
