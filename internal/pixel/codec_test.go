package pixel

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rnleach/satfire/internal/geo"
)

func squarePixel(centerLat, centerLon float64) Pixel {
	return New(
		geo.Coord{Lat: centerLat + 0.5, Lon: centerLon - 0.5},
		geo.Coord{Lat: centerLat - 0.5, Lon: centerLon - 0.5},
		geo.Coord{Lat: centerLat - 0.5, Lon: centerLon + 0.5},
		geo.Coord{Lat: centerLat + 0.5, Lon: centerLon + 0.5},
		12.3, 4.5, 345.6, 1.2,
		10, 0,
	)
}

func TestSerializeLength(t *testing.T) {
	list := NewList(9)
	for dLat := -1; dLat <= 1; dLat++ {
		for dLon := -1; dLon <= 1; dLon++ {
			list = append(list, squarePixel(44.5+float64(dLat), -119.5+float64(dLon)))
		}
	}

	buf := Serialize(list)

	want := 8 + 9*BytesPerPixel
	if len(buf) != want {
		t.Fatalf("expected %d bytes, got %d", want, len(buf))
	}
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	list := NewList(9)
	for dLat := -1; dLat <= 1; dLat++ {
		for dLon := -1; dLon <= 1; dLon++ {
			list = append(list, squarePixel(44.5+float64(dLat), -119.5+float64(dLon)))
		}
	}

	buf := Serialize(list)

	got, err := Deserialize(buf)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}

	if diff := cmp.Diff([]Pixel(list), []Pixel(got)); diff != "" {
		t.Fatalf("pixel list did not round-trip (-want +got):\n%s", diff)
	}
}

func TestDeserializeEmptyList(t *testing.T) {
	buf := Serialize(NewList(0))
	if len(buf) != 8 {
		t.Fatalf("expected 8-byte empty-list encoding, got %d", len(buf))
	}

	got, err := Deserialize(buf)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty list, got %d pixels", len(got))
	}
}

func TestDeserializeTruncated(t *testing.T) {
	list := List{squarePixel(44.5, -119.5)}
	buf := Serialize(list)

	if _, err := Deserialize(buf[:len(buf)-1]); err == nil {
		t.Fatalf("expected error decoding truncated buffer")
	}
	if _, err := Deserialize(buf[:4]); err == nil {
		t.Fatalf("expected error decoding buffer shorter than the count prefix")
	}
}
