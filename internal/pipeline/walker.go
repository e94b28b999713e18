package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rnleach/satfire/internal/fsutil"
	"github.com/rnleach/satfire/internal/satimage"
)

// Walker depth-first traverses an archive root laid out as
// SATELLITE/SECTOR/YEAR/DAY_OF_YEAR/HOUR/...files, forwarding candidate
// file paths (.nc/.zip extensions) on its output channel while pruning
// subtrees the directory filter rules out (spec.md §4.5.1).
type Walker struct {
	FS     fsutil.FileSystem
	Lookup satimage.CutoffLookup
}

// Walk traverses root, sending every undiscarded candidate path on out,
// and closes out when traversal completes or ctx is cancelled.
func (w Walker) Walk(ctx context.Context, root string, out chan<- string) error {
	defer close(out)
	return w.walkDir(ctx, root, satimage.WalkState{}, out)
}

func (w Walker) walkDir(ctx context.Context, dir string, state satimage.WalkState, out chan<- string) error {
	entries, err := w.FS.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("pipeline: reading directory %s: %w", dir, err)
	}

	for _, e := range entries {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		path := filepath.Join(dir, e.Name())

		if e.IsDir() {
			childState := state
			if satimage.ShouldPruneComponent(e.Name(), w.Lookup, &childState) == satimage.Prune {
				continue
			}
			if err := w.walkDir(ctx, path, childState, out); err != nil {
				return err
			}
			continue
		}

		if !isCandidateFile(e.Name()) {
			continue
		}

		select {
		case out <- path:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return nil
}

func isCandidateFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".nc" || ext == ".zip"
}
