package kml

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestXMLWriterWritesDocumentEnvelope(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewXMLWriter(&buf)
	if err != nil {
		t.Fatalf("NewXMLWriter: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Fatalf("expected XML declaration at the start, got %q", out)
	}
	if !strings.Contains(out, "<Document>") || !strings.Contains(out, "</Document>") {
		t.Fatalf("expected balanced Document element, got %q", out)
	}
}

func TestXMLWriterFolderAndPlacemark(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewXMLWriter(&buf)
	if err != nil {
		t.Fatalf("NewXMLWriter: %v", err)
	}

	if err := w.StartFolder("clusters", "a run summary", true); err != nil {
		t.Fatalf("StartFolder: %v", err)
	}
	if err := w.StartPlacemark("cluster 1", "", "#style1"); err != nil {
		t.Fatalf("StartPlacemark: %v", err)
	}
	if err := w.Timespan(
		time.Date(2021, 4, 10, 12, 0, 0, 0, time.UTC),
		time.Date(2021, 4, 10, 12, 10, 0, 0, time.UTC),
	); err != nil {
		t.Fatalf("Timespan: %v", err)
	}
	if err := w.CreatePoint(44.5, -119.5, 0); err != nil {
		t.Fatalf("CreatePoint: %v", err)
	}
	if err := w.FinishPlacemark(); err != nil {
		t.Fatalf("FinishPlacemark: %v", err)
	}
	if err := w.FinishFolder(); err != nil {
		t.Fatalf("FinishFolder: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"<Folder>", "<open>1</open>", "<Placemark>", "<styleUrl>#style1</styleUrl>",
		"<TimeSpan>", "<begin>2021-04-10T12:00:00.000Z</begin>",
		"<Point>", "-119.5,44.5,0",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestXMLWriterPolygonRing(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewXMLWriter(&buf)
	if err != nil {
		t.Fatalf("NewXMLWriter: %v", err)
	}

	if err := w.StartPolygon(); err != nil {
		t.Fatal(err)
	}
	if err := w.PolygonStartOuterRing(); err != nil {
		t.Fatal(err)
	}
	if err := w.StartLinearRing(); err != nil {
		t.Fatal(err)
	}
	if err := w.LinearRingAddVertex(45, -120, 0); err != nil {
		t.Fatal(err)
	}
	if err := w.LinearRingAddVertex(44, -120, 0); err != nil {
		t.Fatal(err)
	}
	if err := w.FinishLinearRing(); err != nil {
		t.Fatal(err)
	}
	if err := w.PolygonFinishOuterRing(); err != nil {
		t.Fatal(err)
	}
	if err := w.FinishPolygon(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.Contains(out, "<outerBoundaryIs>") || !strings.Contains(out, "-120,45,0") {
		t.Fatalf("expected outer ring with Lon,Lat,Z coordinates, got:\n%s", out)
	}
}

func TestXMLWriterStyles(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewXMLWriter(&buf)
	if err != nil {
		t.Fatalf("NewXMLWriter: %v", err)
	}

	if err := w.StartStyle("fireStyle"); err != nil {
		t.Fatal(err)
	}
	if err := w.CreatePolyStyle("ff0000ff", true, true); err != nil {
		t.Fatal(err)
	}
	if err := w.CreateIconStyle("", 0); err != nil {
		t.Fatal(err)
	}
	if err := w.FinishStyle(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{`<Style id="fireStyle">`, "<color>ff0000ff</color>", "<fill>1</fill>", "<scale>1</scale>"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, out)
		}
	}
}
