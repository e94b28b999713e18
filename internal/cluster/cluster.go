// Package cluster implements connected-component aggregation of a single
// image's fire points into clusters, plus the keep filter that decides
// which clusters are credible enough to persist.
package cluster

import (
	"time"

	"github.com/rnleach/satfire/internal/geo"
	"github.com/rnleach/satfire/internal/pixel"
	"github.com/rnleach/satfire/internal/satimage"
)

// Provenance is the (satellite, sector, scan window) tuple every cluster
// extracted from one image shares.
type Provenance struct {
	Satellite satimage.Satellite
	Sector    satimage.Sector
	ScanStart time.Time
	ScanEnd   time.Time
}

// Cluster is the aggregate of one connected component of fire points: its
// member pixels, derived centroid and totals, and the image's provenance.
type Cluster struct {
	Provenance Provenance

	// Pixels is the cluster's perimeter: its member pixels, each rendered
	// as its own ring by the overlay writer rather than unioned into a
	// single polygon (spec's "implementation-defined, used only for
	// display" perimeter).
	Pixels pixel.List

	Centroid       geo.Coord
	TotalPower     float64
	TotalArea      float64
	MaxTemperature float64
	MaxScanAngle   float64
}

// ClusterList is all clusters extracted from one image, plus the shared
// provenance and scan boundaries.
type ClusterList struct {
	Provenance Provenance
	Clusters   []Cluster
}

// fromPixelList derives a Cluster's statistics from its member pixel list.
func fromPixelList(prov Provenance, pixels pixel.List) Cluster {
	return Cluster{
		Provenance:     prov,
		Pixels:         pixels,
		Centroid:       pixels.Centroid(),
		TotalPower:     pixels.TotalPower(),
		TotalArea:      pixels.TotalArea(),
		MaxTemperature: pixels.MaxTemperature(),
		MaxScanAngle:   pixels.MaxScanAngle(),
	}
}
