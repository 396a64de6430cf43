package motion

import (
	"image"
	"image/color"
	"testing"

	"gocv.io/x/gocv"
)

func newTestScorer(t *testing.T) *Scorer {
	t.Helper()
	s := NewScorer(ScorerConfig{History: 50, VarThreshold: 50, DetectShadows: false})
	t.Cleanup(func() { s.Close() })
	return s
}

func grayFrame(t *testing.T, value uint8) gocv.Mat {
	t.Helper()
	m := gocv.NewMatWithSizeFromScalar(
		gocv.NewScalar(float64(value), float64(value), float64(value), 0),
		120, 160, gocv.MatTypeCV8UC3,
	)
	t.Cleanup(func() { m.Close() })
	return m
}

func TestScorerStaticSceneConverges(t *testing.T) {
	s := newTestScorer(t)
	frame := grayFrame(t, 80)

	var last float64
	for i := 0; i < 30; i++ {
		last = s.Score(frame)
	}

	if last > 0.01 {
		t.Errorf("static scene still scores %v after warmup", last)
	}
}

func TestScorerDetectsChange(t *testing.T) {
	s := newTestScorer(t)
	background := grayFrame(t, 80)

	for i := 0; i < 30; i++ {
		s.Score(background)
	}

	// Paint a bright rectangle over roughly a quarter of the frame
	moved := background.Clone()
	defer moved.Close()
	gocv.Rectangle(&moved, image.Rect(0, 0, 80, 60), color.RGBA{R: 255, G: 255, B: 255}, -1)

	fraction := s.Score(moved)

	if fraction < 0.1 {
		t.Errorf("expected substantial foreground fraction, got %v", fraction)
	}
	if fraction > 1 {
		t.Errorf("fraction above 1: %v", fraction)
	}
}

func TestScorerFractionBounds(t *testing.T) {
	s := newTestScorer(t)

	for _, v := range []uint8{0, 255, 0, 255, 128} {
		frame := grayFrame(t, v)
		f := s.Score(frame)
		if f < 0 || f > 1 {
			t.Fatalf("fraction out of bounds: %v", f)
		}
	}
}
