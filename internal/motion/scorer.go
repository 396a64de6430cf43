package motion

import (
	"gocv.io/x/gocv"
)

// ScorerConfig configures the MOG2 background model.
// https://docs.opencv.org/4.x/d7/d7b/classcv_1_1BackgroundSubtractorMOG2.html
type ScorerConfig struct {
	History       int     // sampled frames used to build the background model
	VarThreshold  float64 // variance threshold for background/foreground split
	DetectShadows bool    // mark shadow pixels in the mask
}

// Scorer computes a per-frame motion fraction: the share of pixels the
// adaptive background model classifies as foreground.
//
// The model is mutable per-video state. Frames must be scored in temporal
// order for a single video, and a Scorer must never be shared across videos
// or goroutines. The first few frames after creation produce noisy scores
// while the model converges; the detector policy absorbs that.
type Scorer struct {
	sub     gocv.BackgroundSubtractorMOG2
	mask    gocv.Mat
	shadows bool
}

// NewScorer creates a scorer with a fresh background model.
func NewScorer(cfg ScorerConfig) *Scorer {
	if cfg.History < 1 {
		cfg.History = 1
	}
	return &Scorer{
		sub:     gocv.NewBackgroundSubtractorMOG2WithParams(cfg.History, cfg.VarThreshold, cfg.DetectShadows),
		mask:    gocv.NewMat(),
		shadows: cfg.DetectShadows,
	}
}

// Score feeds one frame to the background model and returns the foreground
// pixel fraction in [0,1]. Mutates the model on every call.
func (s *Scorer) Score(frame gocv.Mat) float64 {
	s.sub.Apply(frame, &s.mask)

	if s.shadows {
		// Shadow pixels are marked 127; count only definite foreground
		gocv.Threshold(s.mask, &s.mask, 200, 255, gocv.ThresholdBinary)
	}

	total := s.mask.Rows() * s.mask.Cols()
	if total == 0 {
		return 0
	}

	return float64(gocv.CountNonZero(s.mask)) / float64(total)
}

// Close releases the background model and mask buffer.
func (s *Scorer) Close() error {
	if err := s.mask.Close(); err != nil {
		return err
	}
	return s.sub.Close()
}
