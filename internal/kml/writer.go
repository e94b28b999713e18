// Package kml defines the OverlayWriter sink contract the core calls to
// render geographic overlays, plus one concrete streaming XML (KML)
// implementation. The core never parses or interprets the generated
// format; any sink honoring OverlayWriter is a valid renderer.
package kml

import "time"

// OverlayWriter is the abstract sink the cluster store's export CLIs and
// the ingestion pipeline's writer stage render clusters through. Every
// operation may fail (I/O error writing the underlying stream); callers
// must check each returned error.
type OverlayWriter interface {
	StartStyle(id string) error
	CreateIconStyle(href string, scale float64) error
	CreatePolyStyle(colorARGB string, filled, outlined bool) error
	FinishStyle() error

	StartFolder(name, description string, isOpen bool) error
	FinishFolder() error

	StartPlacemark(name, description, styleURL string) error
	FinishPlacemark() error

	Timespan(start, end time.Time) error
	CreatePoint(lat, lon, z float64) error

	StartPolygon() error
	FinishPolygon() error
	PolygonStartOuterRing() error
	PolygonFinishOuterRing() error

	StartLinearRing() error
	FinishLinearRing() error
	LinearRingAddVertex(lat, lon, z float64) error

	// Close finalizes the document and flushes the underlying writer.
	Close() error
}
