package ffmpeg

import (
	"context"
	"fmt"
	"time"

	"github.com/keagan/motioncut/pkg/util"
)

// ExtractionError reports a failed clip extraction. The clip is skipped;
// remaining clips and videos continue.
type ExtractionError struct {
	Source string
	Output string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction of %s from %s failed: %v", e.Output, e.Source, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// ExtractOptions defines stream-copy extraction parameters
type ExtractOptions struct {
	Start        time.Duration
	End          time.Duration
	Output       string
	ProgressFunc ProgressFunc
}

// Extract cuts a segment from a video without re-encoding: seek to start,
// copy streams to end. Cut points snap to the nearest keyframes, which is
// the price of a lossless copy.
func (e *Executor) Extract(ctx context.Context, input string, opts ExtractOptions) error {
	duration := opts.End - opts.Start
	if duration <= 0 {
		return &ExtractionError{
			Source: input,
			Output: opts.Output,
			Err:    fmt.Errorf("invalid clip duration: end must be after start"),
		}
	}

	e.logger.Info().
		Str("input", input).
		Str("output", opts.Output).
		Dur("start", opts.Start).
		Dur("duration", duration).
		Msg("extracting clip")

	// -ss before -i seeks on the demuxer, fast and keyframe-aligned
	args := []string{
		"-ss", util.FormatDuration(opts.Start),
		"-i", input,
		"-t", util.FormatDuration(duration),
		"-c", "copy",
		"-avoid_negative_ts", "make_zero",
		opts.Output,
	}

	runOpts := RunOptions{
		Args:            args,
		ProgressHandler: opts.ProgressFunc,
		LogHandler: func(line string) {
			e.logger.Debug().Str("ffmpeg", line).Msg("clip extraction")
		},
	}

	if err := e.Run(ctx, runOpts); err != nil {
		return &ExtractionError{Source: input, Output: opts.Output, Err: err}
	}

	e.logger.Info().Str("output", opts.Output).Msg("clip extraction complete")
	return nil
}

// Thumbnail writes a single downscaled JPEG frame at the given timestamp.
func (e *Executor) Thumbnail(ctx context.Context, input, output string, timestamp time.Duration) error {
	if input == "" {
		return fmt.Errorf("input path is required")
	}
	if output == "" {
		return fmt.Errorf("output path is required")
	}

	e.logger.Debug().
		Str("input", input).
		Str("output", output).
		Dur("timestamp", timestamp).
		Msg("generating thumbnail")

	filter := NewFilterBuilder().Scale(320, 180).Build()

	args := []string{
		"-ss", util.FormatDuration(timestamp),
		"-i", input,
		"-vframes", "1",
		"-vf", filter,
		"-q:v", "2", // high quality JPEG
		output,
	}

	opts := RunOptions{
		Args: args,
		LogHandler: func(line string) {
			e.logger.Debug().Str("ffmpeg", line).Msg("thumbnail generation")
		},
	}

	return e.Run(ctx, opts)
}
