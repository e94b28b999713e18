// Command findfire walks a satellite archive, clusters newly discovered
// fire detections, persists them to the cluster store, and optionally
// renders the run's clusters as a KML overlay.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/rnleach/satfire/internal/fsutil"
	"github.com/rnleach/satfire/internal/kml"
	"github.com/rnleach/satfire/internal/pipeline"
	"github.com/rnleach/satfire/internal/satimage"
	"github.com/rnleach/satfire/internal/version"
)

var (
	storePath   = flag.String("store", envOrDefault("CLUSTER_DB", "clusters.sqlite"), "path to the cluster store (env CLUSTER_DB)")
	archiveRoot = flag.String("archive", envOrDefault("SAT_ARCHIVE", ""), "path to the satellite archive root (env SAT_ARCHIVE)")
	newOnly     = flag.Bool("new-only", false, "only descend directories newer than each satellite/sector pair's newest stored scan")
	kmlPath     = flag.String("kml", "", "write a KML overlay of this run's clusters to this path")
	verbose     = flag.Bool("verbose", false, "log skipped files and images")
	showVersion = flag.Bool("version", false, "print version information and exit")
)

func envOrDefault(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("findfire %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}

	if *archiveRoot == "" {
		log.Fatal("findfire: -archive (or SAT_ARCHIVE) is required")
	}

	var overlay kml.OverlayWriter
	if *kmlPath != "" {
		f, err := os.Create(*kmlPath)
		if err != nil {
			log.Fatalf("findfire: creating %s: %v", *kmlPath, err)
		}
		defer f.Close()

		w, err := kml.NewXMLWriter(f)
		if err != nil {
			log.Fatalf("findfire: starting KML document: %v", err)
		}
		defer w.Close()

		if err := pipeline.WriteOverlayHeader(w); err != nil {
			log.Fatalf("findfire: writing overlay header: %v", err)
		}
		overlay = w
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := pipeline.Config{
		StorePath:   *storePath,
		ArchiveRoot: *archiveRoot,
		NewOnly:     *newOnly,
		Load:        decodeImage,
		Overlay:     overlay,
		Verbose:     *verbose,
	}

	stats, err := pipeline.Run(ctx, fsutil.OSFileSystem{}, cfg)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("findfire: run failed: %v", err)
	}

	fmt.Println(stats.Summary())
}

// decodeImage is the raster-decoding collaborator findfire wires in.
// Decoding the underlying NetCDF fire-detection product is outside this
// module's scope; a production deployment supplies a concrete decoder here.
func decodeImage(path string) (satimage.FireSatImage, error) {
	return nil, fmt.Errorf("findfire: no raster decoder configured for %s", path)
}
