// Package pipeline wires the four ingestion stages spec.md §4.5 describes
// (walker, presence filter, loader pool, writer) into one supervised run:
// bounded channels of capacity 8 connect the stages, each stage returns its
// terminal error on join, and a shared RunStats accumulates counters for
// the final summary.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/rnleach/satfire/internal/cluster"
	"github.com/rnleach/satfire/internal/fsutil"
	"github.com/rnleach/satfire/internal/kml"
	"github.com/rnleach/satfire/internal/satimage"
	"github.com/rnleach/satfire/internal/store"
	"github.com/rnleach/satfire/internal/timeutil"
)

const channelCapacity = 8

// Config configures one ingestion run. Overlay, if non-nil, receives one
// placemark per surviving cluster; its lifecycle belongs to the caller.
type Config struct {
	StorePath   string
	ArchiveRoot string

	// NewOnly selects the directory-prune cutoff: each (satellite, sector)
	// pair's latest stored scan_start when true, or the satellite's
	// operational-since date (process everything) when false.
	NewOnly bool

	Load    ImageLoader
	Overlay kml.OverlayWriter
	Verbose bool
	Clock   timeutil.Clock
}

// Run executes one full walker -> presence-filter -> loader-pool -> writer
// pipeline over cfg.ArchiveRoot and returns the run's statistics. Each
// stage opens its own store handle, per spec.md §5.
func Run(ctx context.Context, fsys fsutil.FileSystem, cfg Config) (*RunStats, error) {
	runID := uuid.New().String()
	logger := log.New(os.Stderr, fmt.Sprintf("[findfire %s] ", runID), log.LstdFlags)

	clock := cfg.Clock
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	stats := NewRunStats(clock)
	stats.start()

	walkerDB, err := store.Open(cfg.StorePath)
	if err != nil {
		return stats, fmt.Errorf("pipeline: opening walker store handle: %w", err)
	}
	defer walkerDB.Close()

	presenceDB, err := store.Open(cfg.StorePath)
	if err != nil {
		return stats, fmt.Errorf("pipeline: opening presence store handle: %w", err)
	}
	defer presenceDB.Close()

	writerDB, err := store.Open(cfg.StorePath)
	if err != nil {
		return stats, fmt.Errorf("pipeline: opening writer store handle: %w", err)
	}
	defer writerDB.Close()

	checker, err := presenceDB.PreparePresenceQuery()
	if err != nil {
		return stats, fmt.Errorf("pipeline: preparing presence query: %w", err)
	}
	defer checker.Close()

	inserter := writerDB.PrepareInsert()
	lookup := cutoffLookup(walkerDB, cfg.NewOnly)

	paths := make(chan string, channelCapacity)
	filtered := make(chan string, channelCapacity)
	lists := make(chan cluster.ClusterList, channelCapacity)

	var wg sync.WaitGroup
	errs := make([]error, 4)

	wg.Add(1)
	go func() {
		defer wg.Done()
		errs[0] = Walker{FS: fsys, Lookup: lookup}.Walk(ctx, cfg.ArchiveRoot, paths)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		errs[1] = PresenceFilter{Checker: checker, Verbose: cfg.Verbose, Log: logger}.
			Run(ctx, paths, filtered, stats)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		errs[2] = LoaderPool{Load: cfg.Load, Verbose: cfg.Verbose, Log: logger}.
			Run(ctx, filtered, lists, stats)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		errs[3] = Writer{Inserter: inserter, Overlay: cfg.Overlay, Log: logger}.
			Run(ctx, lists, stats)
	}()

	wg.Wait()
	stats.finish()
	logger.Printf("run complete: %s", stats.Summary())

	if err := writerDB.MetaSet("last run id", runID); err != nil {
		logger.Printf("recording run id: %v", err)
	}

	if joined := errors.Join(errs...); joined != nil {
		return stats, fmt.Errorf("pipeline: %w", joined)
	}
	return stats, nil
}

func cutoffLookup(db *store.DB, newOnly bool) satimage.CutoffLookup {
	return func(sat satimage.Satellite, sector satimage.Sector) (satimage.Cutoff, bool) {
		if newOnly {
			t, err := db.NewestScanStart(sat, sector)
			if err != nil {
				return satimage.Cutoff{}, false
			}
			return satimage.Cutoff{Year: t.Year(), DOY: t.YearDay(), Hour: t.Hour()}, true
		}
		if t, ok, err := db.OperationalSinceOverride(sat); err == nil && ok {
			return satimage.Cutoff{Year: t.Year(), DOY: t.YearDay(), Hour: t.Hour()}, true
		}
		return satimage.CutoffFromOperationalSince(sat)
	}
}
