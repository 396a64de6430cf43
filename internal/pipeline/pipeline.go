package pipeline

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/keagan/motioncut/internal/clips"
	"github.com/keagan/motioncut/internal/config"
	"github.com/keagan/motioncut/internal/ffmpeg"
	"github.com/keagan/motioncut/internal/motion"
	"github.com/keagan/motioncut/internal/video"
	"github.com/keagan/motioncut/pkg/util"
	"github.com/rs/zerolog"
)

// debugSampleLimit caps the (timestamp, fraction) pairs kept for debug logs
const debugSampleLimit = 10

// Pipeline runs the per-video motion-to-clip workflow:
// sample -> score -> detect -> merge -> extract.
type Pipeline struct {
	logger zerolog.Logger
	cfg    *config.Config
	ffmpeg *ffmpeg.Executor
}

// New validates the configuration and builds a pipeline. Configuration
// errors are fatal here, before any video is touched.
func New(logger zerolog.Logger, cfg *config.Config) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ffmpegExec, err := ffmpeg.New(logger, cfg.FFmpeg.Threads)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize ffmpeg: %w", err)
	}

	return &Pipeline{
		logger: logger.With().Str("component", "pipeline").Logger(),
		cfg:    cfg,
		ffmpeg: ffmpegExec,
	}, nil
}

// policy builds the detector policy the configuration selects.
func (p *Pipeline) policy() motion.Policy {
	d := p.cfg.Detection
	if d.ThresholdMode == config.ModeSingle {
		return motion.SingleThreshold{Threshold: d.Threshold}
	}
	return motion.Hysteresis{Max: d.ThresholdMax, Min: d.ThresholdMin}
}

// Analyze runs a single sequential detection pass over one video and returns
// the merged clip intervals without extracting anything.
//
// The background model and detector are created fresh for the pass and
// discarded with it; nothing carries over between videos.
func (p *Pipeline) Analyze(ctx context.Context, path string) (*Analysis, error) {
	d := p.cfg.Detection

	src, err := video.Open(path, d.FrameSkip)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	p.logger.Info().
		Str("video", filepath.Base(path)).
		Float64("duration_s", src.Duration()).
		Float64("fps", src.FPS()).
		Int("frames", src.FrameCount()).
		Msg("starting detection pass")

	analysis := &Analysis{Path: path, Duration: src.Duration()}

	// Cross-check the decoder's duration against the container metadata.
	// A disagreement shifts every clip boundary, so surface it before the pass.
	if info, err := p.ffmpeg.ProbeVideo(ctx, path); err != nil {
		p.logger.Warn().Err(err).Str("video", filepath.Base(path)).Msg("container metadata unavailable")
	} else {
		analysis.ContainerDuration = info.Duration.Seconds()
		if math.Abs(analysis.ContainerDuration-src.Duration()) > 1 {
			p.logger.Warn().
				Str("video", filepath.Base(path)).
				Float64("container_s", analysis.ContainerDuration).
				Float64("decoder_s", src.Duration()).
				Msg("container and decoder durations disagree")
		}
	}

	// The model history is counted in sampled frames, so scale the
	// configured real-frame history down by the stride.
	scorer := motion.NewScorer(motion.ScorerConfig{
		History:       d.HistoryFrames / d.FrameSkip,
		VarThreshold:  d.VarThreshold,
		DetectShadows: d.DetectShadows,
	})
	defer scorer.Close()

	detector := motion.NewDetector(p.policy())
	var debugSamples []motion.Sample

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		frame, ok := src.Next()
		if !ok {
			break
		}

		fraction := scorer.Score(frame.Mat)
		detector.Observe(motion.Sample{Timestamp: frame.Timestamp, Fraction: fraction})
		analysis.SampledFrames++

		if fraction > analysis.PeakFraction {
			analysis.PeakFraction = fraction
		}
		if fraction > 0 && len(debugSamples) < debugSampleLimit {
			debugSamples = append(debugSamples, motion.Sample{Timestamp: frame.Timestamp, Fraction: fraction})
		}
	}

	analysis.Events = detector.Finish()
	analysis.Intervals = motion.MergeEvents(analysis.Events, motion.MergeOptions{
		BufferBefore: p.cfg.Clips.BufferBefore,
		BufferAfter:  p.cfg.Clips.BufferAfter,
		MergeGap:     p.cfg.Clips.MergeGap,
		MinDuration:  p.cfg.Clips.MinDuration,
	}, src.Duration())

	p.logger.Debug().Float64("peak_fraction", analysis.PeakFraction).Msg("detection pass stats")
	for _, s := range debugSamples {
		p.logger.Debug().
			Float64("t", s.Timestamp).
			Float64("fraction", s.Fraction).
			Msg("motion sample")
	}

	p.logger.Info().
		Str("video", filepath.Base(path)).
		Int("sampled_frames", analysis.SampledFrames).
		Int("events", len(analysis.Events)).
		Int("clips", len(analysis.Intervals)).
		Msg("detection pass complete")

	return analysis, nil
}

// Process analyzes one video and extracts its clips into outputDir.
// All failures are captured in the report; Process never panics the batch.
func (p *Pipeline) Process(ctx context.Context, path, outputDir string, reel bool) *Report {
	report := &Report{Path: path}

	analysis, err := p.Analyze(ctx, path)
	if err != nil {
		report.Skipped = true
		report.Err = err
		p.logger.Warn().Err(err).Str("video", path).Msg("skipping video")
		return report
	}

	if len(analysis.Intervals) == 0 {
		p.logger.Info().Str("video", filepath.Base(path)).Msg("no motion detected")
		return report
	}

	// Wall-clock naming needs the source mtime; fall back to zero time if
	// stat fails (the index still keeps names unique).
	modTime := statModTime(path)

	for i, iv := range analysis.Intervals {
		clip := clips.New(path, util.Seconds(iv.Start), util.Seconds(iv.End))
		clip.Output = filepath.Join(outputDir, clips.OutputName(path, modTime, clip.Start, i))
		report.Clips = append(report.Clips, clip)

		err := p.ffmpeg.Extract(ctx, path, ffmpeg.ExtractOptions{
			Start:  clip.Start,
			End:    clip.End,
			Output: clip.Output,
		})
		if err != nil {
			report.Failed++
			p.logger.Error().Err(err).Str("clip", clip.ID).Msg("clip extraction failed")
			continue
		}
		report.Extracted++

		if p.cfg.Clips.Thumbnails {
			thumb := filepath.Join(outputDir, clips.ThumbnailName(filepath.Base(clip.Output)))
			if err := p.ffmpeg.Thumbnail(ctx, clip.Output, thumb, 0); err != nil {
				p.logger.Warn().Err(err).Str("clip", clip.ID).Msg("thumbnail generation failed")
			}
		}
	}

	if reel && report.Extracted > 1 {
		if err := p.buildReel(ctx, path, outputDir, report); err != nil {
			p.logger.Warn().Err(err).Str("video", path).Msg("highlight reel failed")
		}
	}

	return report
}

// buildReel concatenates a video's extracted clips into one highlight file.
func (p *Pipeline) buildReel(ctx context.Context, source, outputDir string, report *Report) error {
	inputs := make([]string, 0, report.Extracted)
	for _, c := range report.Clips {
		if util.FileExists(c.Output) {
			inputs = append(inputs, c.Output)
		}
	}
	if len(inputs) < 2 {
		return nil
	}

	ext := filepath.Ext(source)
	base := strings.TrimSuffix(filepath.Base(source), ext)
	output := filepath.Join(outputDir, base+"_reel"+ext)

	return p.ffmpeg.Concat(ctx, ffmpeg.ConcatOptions{
		Inputs: inputs,
		Output: output,
	})
}

func statModTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
