// Package store implements the persistent cluster store: a sqlite-backed
// table of clusters keyed by their presence key, a generic key/value meta
// table, and the buffered inserter, presence-query, and range-query
// surfaces the ingestion pipeline and export CLIs depend on.
package store

import (
	"fmt"
	"time"

	"github.com/rnleach/satfire/internal/cluster"
	"github.com/rnleach/satfire/internal/geo"
	"github.com/rnleach/satfire/internal/pixel"
	"github.com/rnleach/satfire/internal/satimage"
)

// ClusterRow is one persisted cluster, mirroring the logical columns of the
// clusters table exactly.
type ClusterRow struct {
	Satellite satimage.Satellite
	Sector    satimage.Sector
	ScanStart time.Time
	ScanEnd   time.Time

	Centroid       geo.Coord
	TotalPower     float64
	TotalArea      float64
	MaxTemperature float64
	MaxScanAngle   float64
	PixelCount     int

	// PixelsBlob is the exact codec output for the cluster's member pixel
	// list (pixel.Serialize).
	PixelsBlob []byte
}

// Pixels decodes PixelsBlob back into a pixel.List.
func (r ClusterRow) Pixels() (pixel.List, error) {
	return pixel.Deserialize(r.PixelsBlob)
}

// PresenceKey returns the row's idempotence key.
func (r ClusterRow) PresenceKey() satimage.PresenceKey {
	return satimage.PresenceKey{
		Satellite: r.Satellite,
		Sector:    r.Sector,
		ScanStart: r.ScanStart,
		ScanEnd:   r.ScanEnd,
	}
}

// ToCluster decodes the row's pixel blob and rebuilds the cluster.Cluster
// it was derived from, for the export CLIs' overlay rendering. The row's
// own stored totals are kept rather than recomputed from the decoded
// pixels, since they are the values that were actually persisted.
func (r ClusterRow) ToCluster() (cluster.Cluster, error) {
	pixels, err := r.Pixels()
	if err != nil {
		return cluster.Cluster{}, fmt.Errorf("store: decoding pixel blob: %w", err)
	}

	return cluster.Cluster{
		Provenance: cluster.Provenance{
			Satellite: r.Satellite,
			Sector:    r.Sector,
			ScanStart: r.ScanStart,
			ScanEnd:   r.ScanEnd,
		},
		Pixels:         pixels,
		Centroid:       r.Centroid,
		TotalPower:     r.TotalPower,
		TotalArea:      r.TotalArea,
		MaxTemperature: r.MaxTemperature,
		MaxScanAngle:   r.MaxScanAngle,
	}, nil
}
