package kml

import (
	"fmt"

	"github.com/rnleach/satfire/internal/cluster"
	"github.com/rnleach/satfire/internal/geo"
	"github.com/rnleach/satfire/internal/pixel"
)

// WriteCluster renders one cluster as a placemark: a MultiGeometry-free
// polygon per member pixel, since perimeter union is not attempted (the
// cluster's perimeter is simply its member pixel list, per the cluster
// builder's documented simplification).
func WriteCluster(w OverlayWriter, c cluster.Cluster, styleURL string) error {
	name := fmt.Sprintf("%s/%s %s", c.Provenance.Satellite, c.Provenance.Sector, c.Provenance.ScanStart.Format("2006-01-02 15:04:05"))
	description := fmt.Sprintf("power=%.1fMW area=%.1fm^2 maxT=%.1fK pixels=%d", c.TotalPower, c.TotalArea, c.MaxTemperature, len(c.Pixels))

	if err := w.StartPlacemark(name, description, styleURL); err != nil {
		return err
	}
	if err := w.Timespan(c.Provenance.ScanStart, c.Provenance.ScanEnd); err != nil {
		return err
	}

	for _, p := range c.Pixels {
		if err := writePixelPolygon(w, p); err != nil {
			return err
		}
	}

	return w.FinishPlacemark()
}

func writePixelPolygon(w OverlayWriter, p pixel.Pixel) error {
	if err := w.StartPolygon(); err != nil {
		return err
	}
	if err := w.PolygonStartOuterRing(); err != nil {
		return err
	}
	if err := w.StartLinearRing(); err != nil {
		return err
	}

	ring := []geo.Coord{p.UL, p.UR, p.LR, p.LL, p.UL}
	for _, c := range ring {
		if err := w.LinearRingAddVertex(c.Lat, c.Lon, 0); err != nil {
			return err
		}
	}

	if err := w.FinishLinearRing(); err != nil {
		return err
	}
	if err := w.PolygonFinishOuterRing(); err != nil {
		return err
	}
	return w.FinishPolygon()
}
