package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rnleach/satfire/internal/satimage"
	"github.com/rnleach/satfire/internal/store"
)

// PresenceFilter is the pipeline's second stage: it parses the presence
// key out of each candidate path's file name and forwards only the paths
// not already present in the store.
type PresenceFilter struct {
	Checker *store.PresenceChecker
	Verbose bool
	Log     Logger
}

// Run drains in, forwarding unseen paths on out, until in closes. It
// closes out on return. Malformed file names are skipped (spec.md §7
// kind 1); a presence-query failure is fatal for the stage (kind 3).
func (f PresenceFilter) Run(ctx context.Context, in <-chan string, out chan<- string, stats *RunStats) error {
	defer close(out)

	for {
		select {
		case path, ok := <-in:
			if !ok {
				return nil
			}
			stats.addFileSeen()

			key, err := satimage.ParsePresenceKey(filepath.Base(path))
			if err != nil {
				if f.Verbose {
					f.Log.Printf("skipping %s: %v", path, err)
				}
				continue
			}

			present, err := f.Checker.Present(key)
			if err != nil {
				return fmt.Errorf("pipeline: presence query for %s: %w", path, err)
			}
			if present {
				continue
			}

			select {
			case out <- path:
			case <-ctx.Done():
				return ctx.Err()
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
