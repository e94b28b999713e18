// Command currentclusters renders the most recently stored clusters for one
// satellite/sector pair as a KML overlay.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/rnleach/satfire/internal/kml"
	"github.com/rnleach/satfire/internal/pipeline"
	"github.com/rnleach/satfire/internal/satimage"
	"github.com/rnleach/satfire/internal/store"
	"github.com/rnleach/satfire/internal/version"
)

var (
	storePath    = flag.String("store", "clusters.sqlite", "path to the cluster store")
	kmlPath      = flag.String("kml", "current.kml", "path to write the KML overlay")
	satelliteArg = flag.String("satellite", "G17", "satellite token (e.g. G16, G17)")
	sectorArg    = flag.String("sector", "FDCF", "sector token (e.g. FDCF, FDCM1, FDCM2)")
	verbose      = flag.Bool("verbose", false, "log the query window and row count")
	showVersion  = flag.Bool("version", false, "print version information and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("currentclusters %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}

	sat := satimage.Satellite(*satelliteArg)
	sector := satimage.Sector(*sectorArg)

	db, err := store.Open(*storePath)
	if err != nil {
		log.Fatalf("currentclusters: opening %s: %v", *storePath, err)
	}
	defer db.Close()

	newest, err := db.NewestScanStart(sat, sector)
	if err != nil {
		log.Fatalf("currentclusters: finding newest scan for %s/%s: %v", sat, sector, err)
	}

	if *verbose {
		log.Printf("querying %s/%s clusters at scan_start=%s", sat, sector, newest.Format(time.RFC3339))
	}

	it, err := db.QueryClusters(store.QueryFilter{
		Satellite: sat,
		Sector:    sector,
		Start:     newest,
		End:       newest,
	})
	if err != nil {
		log.Fatalf("currentclusters: querying clusters: %v", err)
	}
	defer it.Close()

	f, err := os.Create(*kmlPath)
	if err != nil {
		log.Fatalf("currentclusters: creating %s: %v", *kmlPath, err)
	}
	defer f.Close()

	w, err := kml.NewXMLWriter(f)
	if err != nil {
		log.Fatalf("currentclusters: starting KML document: %v", err)
	}
	defer w.Close()

	if err := pipeline.WriteOverlayHeader(w); err != nil {
		log.Fatalf("currentclusters: writing overlay header: %v", err)
	}

	count := 0
	for {
		row, ok, err := it.Next()
		if err != nil {
			log.Printf("currentclusters: skipping malformed row: %v", err)
			continue
		}
		if !ok {
			break
		}

		c, err := row.ToCluster()
		if err != nil {
			log.Printf("currentclusters: skipping row with malformed pixel blob: %v", err)
			continue
		}

		if err := kml.WriteCluster(w, c, "#"+pipeline.FireStyleID); err != nil {
			log.Fatalf("currentclusters: writing placemark: %v", err)
		}
		count++
	}

	if *verbose {
		log.Printf("wrote %d clusters to %s", count, *kmlPath)
	}
}
