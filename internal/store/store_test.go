package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rnleach/satfire/internal/geo"
	"github.com/rnleach/satfire/internal/satimage"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clusters.sqlite")
	db, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleRow(hour int) ClusterRow {
	start := time.Date(2021, 4, 10, hour, 0, 0, 0, time.UTC)
	return ClusterRow{
		Satellite: satimage.G16,
		Sector:    satimage.FDCF,
		ScanStart: start,
		ScanEnd:   start.Add(10 * time.Minute),
		Centroid:  geo.Coord{Lat: 44.5, Lon: -119.5},
		TotalPower: 12.3, TotalArea: 45.6, MaxTemperature: 345, MaxScanAngle: 1.2,
		PixelCount: 3,
		PixelsBlob: []byte{0, 0, 0, 0, 0, 0, 0, 0},
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clusters.sqlite")

	db1, err := Open(path)
	require.NoError(t, err)
	db1.Close()

	db2, err := Open(path)
	require.NoError(t, err)
	defer db2.Close()
}

func TestInsertAndPresence(t *testing.T) {
	db := openTestDB(t)

	ins := db.PrepareInsert()
	row := sampleRow(12)
	require.NoError(t, ins.Add(row))
	require.NoError(t, ins.Close())

	checker, err := db.PreparePresenceQuery()
	require.NoError(t, err)
	defer checker.Close()

	present, err := checker.Present(row.PresenceKey())
	require.NoError(t, err)
	require.True(t, present)

	absentKey := row.PresenceKey()
	absentKey.ScanStart = absentKey.ScanStart.Add(time.Hour)
	present, err = checker.Present(absentKey)
	require.NoError(t, err)
	require.False(t, present)
}

func TestInserterFlushesOnClose(t *testing.T) {
	db := openTestDB(t)
	ins := db.PrepareInsert()

	for h := 0; h < 5; h++ {
		require.NoError(t, ins.Add(sampleRow(h)))
	}
	require.Equal(t, 5, ins.Len())

	require.NoError(t, ins.Close())
	require.Equal(t, 0, ins.Len())

	it, err := db.QueryClusters(QueryFilter{
		Start: time.Date(2021, 4, 10, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2021, 4, 11, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	defer it.Close()

	count := 0
	for {
		_, ok, err := it.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		count++
	}
	require.Equal(t, 5, count)
}

func TestQueryClustersFiltersByBBox(t *testing.T) {
	db := openTestDB(t)
	ins := db.PrepareInsert()

	inBox := sampleRow(1)
	outOfBox := sampleRow(2)
	outOfBox.Centroid = geo.Coord{Lat: 0, Lon: 0}

	require.NoError(t, ins.Add(inBox))
	require.NoError(t, ins.Add(outOfBox))
	require.NoError(t, ins.Close())

	bbox := geo.BoundingBox{LL: geo.Coord{Lat: 44, Lon: -120}, UR: geo.Coord{Lat: 45, Lon: -119}}
	it, err := db.QueryClusters(QueryFilter{
		Start: time.Date(2021, 4, 10, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2021, 4, 11, 0, 0, 0, 0, time.UTC),
		BBox:  &bbox,
	})
	require.NoError(t, err)
	defer it.Close()

	row, ok, err := it.Next()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, inBox.ScanStart, row.ScanStart)

	_, ok, err = it.Next()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestNewestScanStartFallsBackToOperationalSince(t *testing.T) {
	db := openTestDB(t)

	got, err := db.NewestScanStart(satimage.G16, satimage.FDCF)
	require.NoError(t, err)

	want, _ := satimage.G16.OperationalSince()
	require.True(t, got.Equal(want))
}

func TestNewestScanStartReflectsStoredRows(t *testing.T) {
	db := openTestDB(t)
	ins := db.PrepareInsert()
	require.NoError(t, ins.Add(sampleRow(5)))
	require.NoError(t, ins.Add(sampleRow(20)))
	require.NoError(t, ins.Close())

	got, err := db.NewestScanStart(satimage.G16, satimage.FDCF)
	require.NoError(t, err)
	require.Equal(t, 20, got.Hour())
}

func TestMetaGetSetRoundTrip(t *testing.T) {
	db := openTestDB(t)

	_, ok, err := db.MetaGet("missing")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, db.MetaSet("last run id", "abc-123"))
	val, ok, err := db.MetaGet("last run id")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "abc-123", val)

	require.NoError(t, db.MetaSet("last run id", "def-456"))
	val, _, err = db.MetaGet("last run id")
	require.NoError(t, err)
	require.Equal(t, "def-456", val)
}
