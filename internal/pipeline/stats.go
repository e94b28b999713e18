package pipeline

import (
	"fmt"
	"sync"
	"time"

	"github.com/rnleach/satfire/internal/timeutil"
)

// Logger is the minimal logging surface the pipeline stages need; a
// *log.Logger satisfies it directly.
type Logger interface {
	Printf(format string, v ...interface{})
}

// RunStats accumulates the run-wide counters Run logs in its summary:
// files seen by the presence filter, images successfully decoded, clusters
// that survived the keep filter, and the pixels they contain. It is safe
// for concurrent use since the presence filter and the loader pool's
// workers all touch it.
type RunStats struct {
	mu sync.Mutex

	FilesSeen       int
	ImagesProcessed int
	ClustersKept    int
	PixelsKept      int

	clock   timeutil.Clock
	started time.Time
	Elapsed time.Duration
}

// NewRunStats returns a zeroed RunStats using clock for elapsed-time
// measurement.
func NewRunStats(clock timeutil.Clock) *RunStats {
	return &RunStats{clock: clock}
}

func (s *RunStats) start() {
	s.started = s.clock.Now()
}

func (s *RunStats) finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Elapsed = s.clock.Since(s.started)
}

func (s *RunStats) addFileSeen() {
	s.mu.Lock()
	s.FilesSeen++
	s.mu.Unlock()
}

func (s *RunStats) addImageProcessed() {
	s.mu.Lock()
	s.ImagesProcessed++
	s.mu.Unlock()
}

func (s *RunStats) addClustersKept(clusters, pixels int) {
	s.mu.Lock()
	s.ClustersKept += clusters
	s.PixelsKept += pixels
	s.mu.Unlock()
}

// Summary renders a one-line human-readable summary, used both in Run's log
// and in findfire's output.
func (s *RunStats) Summary() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf(
		"files=%d images=%d clusters=%d pixels=%d elapsed=%s",
		s.FilesSeen, s.ImagesProcessed, s.ClustersKept, s.PixelsKept, s.Elapsed,
	)
}
