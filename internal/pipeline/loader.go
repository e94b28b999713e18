package pipeline

import (
	"context"
	"sync"

	"github.com/rnleach/satfire/internal/cluster"
	"github.com/rnleach/satfire/internal/satimage"
)

// NumLoaderThreads is the fixed size of the loader worker pool (spec.md
// §4.5, NUM_LOADER_THREADS).
const NumLoaderThreads = 4

// ImageLoader decodes the file at path into a FireSatImage. Decoding the
// underlying raster format is an external collaborator's responsibility
// (spec.md §1 scope boundary); the pipeline only consumes the result.
type ImageLoader func(path string) (satimage.FireSatImage, error)

// LoaderPool is the pipeline's third stage: NumLoaderThreads workers each
// decode a path, build that image's clusters, apply the keep filter, and
// forward the surviving ClusterList.
type LoaderPool struct {
	Load    ImageLoader
	Verbose bool
	Log     Logger
}

// Run fans NumLoaderThreads workers out over in, forwards each image's
// surviving clusters on out, and closes out once every worker has
// finished draining in.
func (p LoaderPool) Run(ctx context.Context, in <-chan string, out chan<- cluster.ClusterList, stats *RunStats) error {
	var wg sync.WaitGroup
	errs := make(chan error, NumLoaderThreads)

	for i := 0; i < NumLoaderThreads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := p.worker(ctx, in, out, stats); err != nil {
				errs <- err
			}
		}()
	}

	wg.Wait()
	close(out)
	close(errs)

	for err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (p LoaderPool) worker(ctx context.Context, in <-chan string, out chan<- cluster.ClusterList, stats *RunStats) error {
	for {
		select {
		case path, ok := <-in:
			if !ok {
				return nil
			}
			if err := p.process(ctx, path, out, stats); err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (p LoaderPool) process(ctx context.Context, path string, out chan<- cluster.ClusterList, stats *RunStats) error {
	img, err := p.Load(path)
	if err != nil {
		if p.Verbose {
			p.Log.Printf("skipping %s: decode failed: %v", path, err)
		}
		return nil
	}

	prov := cluster.Provenance{
		Satellite: img.Satellite(),
		Sector:    img.Sector(),
		ScanStart: img.ScanStart(),
		ScanEnd:   img.ScanEnd(),
	}

	pointCh, errCh := img.FirePoints()
	var points []satimage.FirePoint
	for pt := range pointCh {
		points = append(points, pt)
	}
	if loadErr := <-errCh; loadErr != nil {
		if p.Verbose {
			p.Log.Printf("skipping %s: %v", path, loadErr)
		}
		return nil
	}

	stats.addImageProcessed()

	clusters := cluster.KeepAll(cluster.Build(points, prov))
	if len(clusters) == 0 {
		return nil
	}

	pixelCount := 0
	for _, c := range clusters {
		pixelCount += len(c.Pixels)
	}
	stats.addClustersKept(len(clusters), pixelCount)

	select {
	case out <- cluster.ClusterList{Provenance: prov, Clusters: clusters}:
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}
