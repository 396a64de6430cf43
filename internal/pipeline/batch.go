package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/keagan/motioncut/pkg/util"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Run processes every video in the input directory. Videos are fully
// independent (own background model, own detector state), so the driver may
// run them on parallel workers. Per-video failures are logged and counted,
// never fatal to the batch.
func (p *Pipeline) Run(ctx context.Context, opts BatchOptions) (*Summary, error) {
	videos, err := util.ListVideos(opts.InputDir)
	if err != nil {
		return nil, fmt.Errorf("cannot list input directory: %w", err)
	}

	if len(videos) == 0 {
		p.logger.Info().Str("dir", opts.InputDir).Msg("no video files found")
		return &Summary{}, nil
	}

	if err := util.EnsureDir(opts.OutputDir); err != nil {
		return nil, fmt.Errorf("cannot create output directory: %w", err)
	}

	p.logger.Info().
		Int("videos", len(videos)).
		Int("workers", p.cfg.Workers).
		Msg("starting batch")

	summary := runBatch(ctx, p.logger, videos, p.cfg.Workers, func(ctx context.Context, path string) *Report {
		return p.Process(ctx, path, opts.OutputDir, opts.Reel)
	})

	return summary, nil
}

// processFunc handles one video and reports what happened to it.
type processFunc func(ctx context.Context, path string) *Report

// runBatch fans videos out to at most workers goroutines and aggregates the
// per-video reports. Every video gets its turn regardless of earlier
// failures.
func runBatch(ctx context.Context, logger zerolog.Logger, videos []string, workers int, process processFunc) *Summary {
	if workers < 1 {
		workers = 1
	}

	summary := &Summary{Videos: len(videos)}
	var mu sync.Mutex

	g := new(errgroup.Group)
	g.SetLimit(workers)

	for _, path := range videos {
		path := path
		g.Go(func() error {
			report := process(ctx, path)

			mu.Lock()
			defer mu.Unlock()
			if report.Skipped {
				summary.Skipped++
			} else {
				summary.Processed++
			}
			summary.Extracted += report.Extracted
			summary.Failed += report.Failed
			return nil
		})
	}

	// Workers never return errors; failures live in the reports.
	_ = g.Wait()

	logger.Info().
		Int("videos", summary.Videos).
		Int("processed", summary.Processed).
		Int("skipped", summary.Skipped).
		Int("clips_extracted", summary.Extracted).
		Int("clips_failed", summary.Failed).
		Msg("batch complete")

	return summary
}
