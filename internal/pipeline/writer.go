package pipeline

import (
	"context"
	"fmt"

	"github.com/rnleach/satfire/internal/cluster"
	"github.com/rnleach/satfire/internal/kml"
	"github.com/rnleach/satfire/internal/pixel"
	"github.com/rnleach/satfire/internal/store"
)

// FireStyleID is the style id every rendered cluster placemark references;
// WriteOverlayHeader defines it once per document.
const FireStyleID = "fireStyle"

// WriteOverlayHeader emits the one shared PolyStyle/IconStyle definition
// every cluster placemark in a run or export references by "#"+FireStyleID.
func WriteOverlayHeader(w kml.OverlayWriter) error {
	if err := w.StartStyle(FireStyleID); err != nil {
		return err
	}
	if err := w.CreatePolyStyle("ff0000ff", true, true); err != nil {
		return err
	}
	if err := w.CreateIconStyle("", 1.0); err != nil {
		return err
	}
	return w.FinishStyle()
}

// Writer is the pipeline's fourth stage: it drains surviving ClusterLists
// into the store's buffered inserter and, when Overlay is non-nil, renders
// each cluster as a placemark. Overlay's lifecycle (open/Close) belongs to
// the caller; Writer only calls the per-cluster operations.
type Writer struct {
	Inserter *store.Inserter
	Overlay  kml.OverlayWriter
	Log      Logger
}

// Run drains in until it closes, then flushes the inserter. A flush
// failure is fatal (spec.md §7 kind 4); the in-memory buffer is lost.
func (w Writer) Run(ctx context.Context, in <-chan cluster.ClusterList, stats *RunStats) error {
	for {
		select {
		case list, ok := <-in:
			if !ok {
				if err := w.Inserter.Flush(); err != nil {
					return fmt.Errorf("pipeline: final flush: %w", err)
				}
				return nil
			}
			if err := w.writeList(list); err != nil {
				return err
			}
		case <-ctx.Done():
			if err := w.Inserter.Flush(); err != nil {
				return fmt.Errorf("pipeline: final flush: %w", err)
			}
			return ctx.Err()
		}
	}
}

func (w Writer) writeList(list cluster.ClusterList) error {
	for _, c := range list.Clusters {
		row := toClusterRow(c)
		if err := w.Inserter.Add(row); err != nil {
			return fmt.Errorf("pipeline: buffering cluster row: %w", err)
		}

		if w.Overlay != nil {
			if err := kml.WriteCluster(w.Overlay, c, "#"+FireStyleID); err != nil {
				return fmt.Errorf("pipeline: writing overlay placemark: %w", err)
			}
		}
	}
	return nil
}

func toClusterRow(c cluster.Cluster) store.ClusterRow {
	return store.ClusterRow{
		Satellite:      c.Provenance.Satellite,
		Sector:         c.Provenance.Sector,
		ScanStart:      c.Provenance.ScanStart,
		ScanEnd:        c.Provenance.ScanEnd,
		Centroid:       c.Centroid,
		TotalPower:     c.TotalPower,
		TotalArea:      c.TotalArea,
		MaxTemperature: c.MaxTemperature,
		MaxScanAngle:   c.MaxScanAngle,
		PixelCount:     len(c.Pixels),
		PixelsBlob:     pixel.Serialize(c.Pixels),
	}
}
