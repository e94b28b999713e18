// Command showclusters renders stored clusters matching a time window and
// optional bounding box as a KML overlay.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rnleach/satfire/internal/geo"
	"github.com/rnleach/satfire/internal/kml"
	"github.com/rnleach/satfire/internal/pipeline"
	"github.com/rnleach/satfire/internal/store"
	"github.com/rnleach/satfire/internal/version"
)

const hourLayout = "2006-01-02-15"

var (
	storePath   = flag.String("store", "clusters.sqlite", "path to the cluster store")
	startArg    = flag.String("start", "", "range start, UTC, as YYYY-MM-DD-HH (required)")
	endArg      = flag.String("end", "", "range end, UTC, as YYYY-MM-DD-HH (required)")
	bboxArg     = flag.String("bbox", "", "optional bounding box as minLat,minLon,maxLat,maxLon")
	kmlPath     = flag.String("kml", "clusters.kml", "path to write the KML overlay")
	showVersion = flag.Bool("version", false, "print version information and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("showclusters %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}

	if *startArg == "" || *endArg == "" {
		log.Fatal("showclusters: -start and -end are required")
	}

	start, err := time.Parse(hourLayout, *startArg)
	if err != nil {
		log.Fatalf("showclusters: parsing -start: %v", err)
	}
	end, err := time.Parse(hourLayout, *endArg)
	if err != nil {
		log.Fatalf("showclusters: parsing -end: %v", err)
	}

	filter := store.QueryFilter{Start: start.UTC(), End: end.UTC()}

	if *bboxArg != "" {
		bbox, err := parseBBox(*bboxArg)
		if err != nil {
			log.Fatalf("showclusters: parsing -bbox: %v", err)
		}
		filter.BBox = &bbox
	}

	db, err := store.Open(*storePath)
	if err != nil {
		log.Fatalf("showclusters: opening %s: %v", *storePath, err)
	}
	defer db.Close()

	it, err := db.QueryClusters(filter)
	if err != nil {
		log.Fatalf("showclusters: querying clusters: %v", err)
	}
	defer it.Close()

	f, err := os.Create(*kmlPath)
	if err != nil {
		log.Fatalf("showclusters: creating %s: %v", *kmlPath, err)
	}
	defer f.Close()

	w, err := kml.NewXMLWriter(f)
	if err != nil {
		log.Fatalf("showclusters: starting KML document: %v", err)
	}
	defer w.Close()

	if err := pipeline.WriteOverlayHeader(w); err != nil {
		log.Fatalf("showclusters: writing overlay header: %v", err)
	}

	count := 0
	for {
		row, ok, err := it.Next()
		if err != nil {
			log.Printf("showclusters: skipping malformed row: %v", err)
			continue
		}
		if !ok {
			break
		}

		c, err := row.ToCluster()
		if err != nil {
			log.Printf("showclusters: skipping row with malformed pixel blob: %v", err)
			continue
		}

		if err := kml.WriteCluster(w, c, "#"+pipeline.FireStyleID); err != nil {
			log.Fatalf("showclusters: writing placemark: %v", err)
		}
		count++
	}

	log.Printf("wrote %d clusters to %s", count, *kmlPath)
}

func parseBBox(s string) (geo.BoundingBox, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return geo.BoundingBox{}, fmt.Errorf("expected minLat,minLon,maxLat,maxLon, got %q", s)
	}

	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return geo.BoundingBox{}, fmt.Errorf("component %d (%q): %w", i, p, err)
		}
		vals[i] = v
	}

	return geo.BoundingBox{
		LL: geo.Coord{Lat: vals[0], Lon: vals[1]},
		UR: geo.Coord{Lat: vals[2], Lon: vals[3]},
	}, nil
}
