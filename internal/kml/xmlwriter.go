package kml

import (
	"bufio"
	"fmt"
	"io"
	"time"
)

// XMLWriter is a streaming, buffered-writer-based KML implementation of
// OverlayWriter. It is a direct idiomatic port of the original source's
// KmlFile: the caller is responsible for balancing every Start*/Finish*
// call, and nothing is buffered in memory beyond the underlying
// bufio.Writer.
type XMLWriter struct {
	w *bufio.Writer
}

var _ OverlayWriter = (*XMLWriter)(nil)

// NewXMLWriter wraps w, writes the KML document header, and returns a
// ready-to-use writer.
func NewXMLWriter(w io.Writer) (*XMLWriter, error) {
	buf := bufio.NewWriter(w)
	const header = `<?xml version="1.0" encoding="UTF-8"?>` +
		`<kml xmlns="http://www.opengis.net/kml/2.2">` +
		"<Document>\n"
	if _, err := buf.WriteString(header); err != nil {
		return nil, fmt.Errorf("kml: writing document header: %w", err)
	}
	return &XMLWriter{w: buf}, nil
}

// Close writes the document footer and flushes the underlying writer.
func (x *XMLWriter) Close() error {
	if _, err := x.w.WriteString("</Document>\n</kml>\n"); err != nil {
		return fmt.Errorf("kml: writing document footer: %w", err)
	}
	if err := x.w.Flush(); err != nil {
		return fmt.Errorf("kml: flushing: %w", err)
	}
	return nil
}

func (x *XMLWriter) writeDescription(description string) error {
	_, err := fmt.Fprintf(x.w, "<description><![CDATA[%s]]></description>\n", description)
	return err
}

func (x *XMLWriter) StartFolder(name, description string, isOpen bool) error {
	if _, err := x.w.WriteString("<Folder>\n"); err != nil {
		return err
	}
	if name != "" {
		if _, err := fmt.Fprintf(x.w, "<name>%s</name>\n", name); err != nil {
			return err
		}
	}
	if description != "" {
		if err := x.writeDescription(description); err != nil {
			return err
		}
	}
	if isOpen {
		if _, err := x.w.WriteString("<open>1</open>\n"); err != nil {
			return err
		}
	}
	return nil
}

func (x *XMLWriter) FinishFolder() error {
	_, err := x.w.WriteString("</Folder>\n")
	return err
}

func (x *XMLWriter) StartPlacemark(name, description, styleURL string) error {
	if _, err := x.w.WriteString("<Placemark>\n"); err != nil {
		return err
	}
	if name != "" {
		if _, err := fmt.Fprintf(x.w, "<name>%s</name>\n", name); err != nil {
			return err
		}
	}
	if description != "" {
		if err := x.writeDescription(description); err != nil {
			return err
		}
	}
	if styleURL != "" {
		if _, err := fmt.Fprintf(x.w, "<styleUrl>%s</styleUrl>\n", styleURL); err != nil {
			return err
		}
	}
	return nil
}

func (x *XMLWriter) FinishPlacemark() error {
	_, err := x.w.WriteString("</Placemark>\n")
	return err
}

func (x *XMLWriter) StartStyle(id string) error {
	var err error
	if id != "" {
		_, err = fmt.Fprintf(x.w, "<Style id=%q>\n", id)
	} else {
		_, err = x.w.WriteString("<Style>\n")
	}
	return err
}

func (x *XMLWriter) FinishStyle() error {
	_, err := x.w.WriteString("</Style>\n")
	return err
}

// CreatePolyStyle writes a PolyStyle element; colorARGB empty means
// colorMode random, matching the original source's optional-color
// behavior.
func (x *XMLWriter) CreatePolyStyle(colorARGB string, filled, outlined bool) error {
	if _, err := x.w.WriteString("<PolyStyle>\n"); err != nil {
		return err
	}

	if colorARGB != "" {
		if _, err := fmt.Fprintf(x.w, "<color>%s</color>\n<colorMode>normal</colorMode>\n", colorARGB); err != nil {
			return err
		}
	} else {
		if _, err := x.w.WriteString("<colorMode>random</colorMode>\n"); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(x.w, "<fill>%d</fill>\n<outline>%d</outline>\n", boolToInt(filled), boolToInt(outlined)); err != nil {
		return err
	}

	_, err := x.w.WriteString("</PolyStyle>\n")
	return err
}

func (x *XMLWriter) CreateIconStyle(href string, scale float64) error {
	if _, err := x.w.WriteString("<IconStyle>\n"); err != nil {
		return err
	}

	if scale > 0 {
		if _, err := fmt.Fprintf(x.w, "<scale>%v</scale>\n", scale); err != nil {
			return err
		}
	} else {
		if _, err := x.w.WriteString("<scale>1</scale>\n"); err != nil {
			return err
		}
	}

	if href != "" {
		if _, err := fmt.Fprintf(x.w, "<Icon><href>%s</href></Icon>\n", href); err != nil {
			return err
		}
	}

	_, err := x.w.WriteString("</IconStyle>\n")
	return err
}

func (x *XMLWriter) Timespan(start, end time.Time) error {
	const layout = "2006-01-02T15:04:05.000Z"
	if _, err := x.w.WriteString("<TimeSpan>\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(x.w, "<begin>%s</begin>\n", start.UTC().Format(layout)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(x.w, "<end>%s</end>\n", end.UTC().Format(layout)); err != nil {
		return err
	}
	_, err := x.w.WriteString("</TimeSpan>\n")
	return err
}

func (x *XMLWriter) CreatePoint(lat, lon, z float64) error {
	_, err := fmt.Fprintf(x.w, "<Point>\n<coordinates>%v,%v,%v</coordinates>\n</Point>\n", lon, lat, z)
	return err
}

func (x *XMLWriter) StartPolygon() error {
	_, err := x.w.WriteString("<Polygon>\n")
	return err
}

func (x *XMLWriter) FinishPolygon() error {
	_, err := x.w.WriteString("</Polygon>\n")
	return err
}

func (x *XMLWriter) PolygonStartOuterRing() error {
	_, err := x.w.WriteString("<outerBoundaryIs>\n")
	return err
}

func (x *XMLWriter) PolygonFinishOuterRing() error {
	_, err := x.w.WriteString("</outerBoundaryIs>\n")
	return err
}

func (x *XMLWriter) StartLinearRing() error {
	_, err := x.w.WriteString("<LinearRing>\n<coordinates>\n")
	return err
}

func (x *XMLWriter) FinishLinearRing() error {
	_, err := x.w.WriteString("</coordinates>\n</LinearRing>\n")
	return err
}

func (x *XMLWriter) LinearRingAddVertex(lat, lon, z float64) error {
	_, err := fmt.Fprintf(x.w, "%v,%v,%v\n", lon, lat, z)
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
