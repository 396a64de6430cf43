package pipeline

import (
	"github.com/keagan/motioncut/internal/clips"
	"github.com/keagan/motioncut/internal/motion"
)

// Analysis is the outcome of one detection pass over a video, before any
// extraction happens.
type Analysis struct {
	Path     string
	Duration float64 // seconds, from the decoder's declared metadata

	// ContainerDuration is the ffprobe-reported duration in seconds,
	// zero when probing failed. Cross-checked against Duration.
	ContainerDuration float64

	SampledFrames int
	PeakFraction  float64 // highest motion fraction seen in the pass
	Events        []motion.Event
	Intervals     []motion.Interval
}

// Report is the per-video outcome of a batch run.
type Report struct {
	Path      string
	Skipped   bool // the video could not be processed at all
	Err       error
	Clips     []*clips.Clip
	Extracted int
	Failed    int
}

// Summary aggregates a whole batch for the end-of-run report.
type Summary struct {
	Videos    int
	Processed int
	Skipped   int
	Extracted int
	Failed    int
}

// BatchOptions configures a batch run over an input directory.
type BatchOptions struct {
	InputDir  string
	OutputDir string
	// Reel concatenates each video's extracted clips into one highlight file.
	Reel bool
}
