package pixel

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/rnleach/satfire/internal/geo"
)

// BytesPerPixel is the exact on-disk size of one serialized pixel: eight
// float64 corner coordinates, four float64 attributes, and two int16
// flags (8*12 + 2*2).
const BytesPerPixel = 8*12 + 2*2

// Serialize encodes l as the exact little-endian byte layout the cluster
// store persists as a blob: a u64 pixel count followed by BytesPerPixel
// bytes per pixel, with no padding and no per-pixel length prefix.
func Serialize(l List) []byte {
	buf := make([]byte, 0, 8+len(l)*BytesPerPixel)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(len(l)))

	for _, p := range l {
		buf = appendCoord(buf, p.UL)
		buf = appendCoord(buf, p.LL)
		buf = appendCoord(buf, p.LR)
		buf = appendCoord(buf, p.UR)

		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(p.Power))
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(p.Area))
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(p.Temperature))
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(p.ScanAngle))

		buf = binary.LittleEndian.AppendUint16(buf, uint16(p.MaskFlag))
		buf = binary.LittleEndian.AppendUint16(buf, uint16(p.DataQualityFlag))
	}

	return buf
}

// Deserialize decodes the exact byte layout Serialize produces. It returns
// an error on truncated input or a count that implies more bytes than are
// present; such errors are fatal at the read site, per the project's error
// handling design (the store never persists a blob that didn't come from
// Serialize).
func Deserialize(data []byte) (List, error) {
	r := bytes.NewReader(data)

	var count uint64
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("pixel.Deserialize: reading count: %w", err)
	}

	want := 8 + count*BytesPerPixel
	if uint64(len(data)) != want {
		return nil, fmt.Errorf("pixel.Deserialize: expected %d bytes for %d pixels, got %d", want, count, len(data))
	}

	list := make(List, 0, count)
	for i := uint64(0); i < count; i++ {
		p, err := readPixel(r)
		if err != nil {
			return nil, fmt.Errorf("pixel.Deserialize: pixel %d: %w", i, err)
		}
		list = append(list, p)
	}

	return list, nil
}

func readPixel(r *bytes.Reader) (Pixel, error) {
	ul, err := readCoord(r)
	if err != nil {
		return Pixel{}, err
	}
	ll, err := readCoord(r)
	if err != nil {
		return Pixel{}, err
	}
	lr, err := readCoord(r)
	if err != nil {
		return Pixel{}, err
	}
	ur, err := readCoord(r)
	if err != nil {
		return Pixel{}, err
	}

	var power, area, temperature, scanAngle float64
	for _, dst := range []*float64{&power, &area, &temperature, &scanAngle} {
		if err := binary.Read(r, binary.LittleEndian, dst); err != nil {
			return Pixel{}, fmt.Errorf("reading attribute: %w", err)
		}
	}

	var maskFlag, dqf int16
	if err := binary.Read(r, binary.LittleEndian, &maskFlag); err != nil {
		return Pixel{}, fmt.Errorf("reading mask flag: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &dqf); err != nil {
		return Pixel{}, fmt.Errorf("reading data quality flag: %w", err)
	}

	return Pixel{
		UL: ul, LL: ll, LR: lr, UR: ur,
		Power: power, Area: area, Temperature: temperature, ScanAngle: scanAngle,
		MaskFlag: maskFlag, DataQualityFlag: dqf,
	}, nil
}

func appendCoord(buf []byte, c geo.Coord) []byte {
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(c.Lat))
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(c.Lon))
	return buf
}

func readCoord(r *bytes.Reader) (geo.Coord, error) {
	var lat, lon float64
	if err := binary.Read(r, binary.LittleEndian, &lat); err != nil {
		return geo.Coord{}, fmt.Errorf("reading lat: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &lon); err != nil {
		return geo.Coord{}, fmt.Errorf("reading lon: %w", err)
	}
	return geo.Coord{Lat: lat, Lon: lon}, nil
}
