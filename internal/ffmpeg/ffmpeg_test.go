package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// skipIfNoFFmpeg skips the test if ffmpeg is not available
func skipIfNoFFmpeg(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not found in PATH")
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		t.Skip("ffprobe not found in PATH")
	}
}

// generateTestVideo writes a short synthetic video with lavfi testsrc
func generateTestVideo(t *testing.T, path string, seconds int) {
	t.Helper()
	cmd := exec.Command("ffmpeg",
		"-f", "lavfi", "-i", fmt.Sprintf("testsrc=duration=%d:size=320x240:rate=30", seconds),
		"-pix_fmt", "yuv420p", "-y", path)
	if err := cmd.Run(); err != nil {
		t.Skipf("could not generate test video: %v", err)
	}
}

func TestExecutorCreation(t *testing.T) {
	skipIfNoFFmpeg(t)

	e, err := New(zerolog.Nop(), 2)
	if err != nil {
		t.Fatalf("failed to create executor: %v", err)
	}
	if e.ffmpegPath == "" {
		t.Error("ffmpeg path is empty")
	}
	if e.ffprobePath == "" {
		t.Error("ffprobe path is empty")
	}
}

func TestExtractStreamCopy(t *testing.T) {
	skipIfNoFFmpeg(t)

	dir := t.TempDir()
	source := filepath.Join(dir, "source.mp4")
	generateTestVideo(t, source, 4)

	e, err := New(zerolog.Nop(), 2)
	if err != nil {
		t.Fatalf("failed to create executor: %v", err)
	}

	ctx := context.Background()
	output := filepath.Join(dir, "clip.mp4")

	err = e.Extract(ctx, source, ExtractOptions{
		Start:  1 * time.Second,
		End:    3 * time.Second,
		Output: output,
	})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	stat, err := os.Stat(output)
	if err != nil {
		t.Fatalf("output file was not created: %v", err)
	}
	if stat.Size() == 0 {
		t.Error("output file is empty")
	}

	// Cut points snap to keyframes; the clip should be roughly 2s
	info, err := e.ProbeVideo(ctx, output)
	if err != nil {
		t.Fatalf("ProbeVideo on clip failed: %v", err)
	}
	if info.Duration < 1*time.Second || info.Duration > 4*time.Second {
		t.Errorf("clip duration %v far from requested 2s", info.Duration)
	}
}

func TestExtractRejectsEmptyRange(t *testing.T) {
	skipIfNoFFmpeg(t)

	e, err := New(zerolog.Nop(), 0)
	if err != nil {
		t.Fatalf("failed to create executor: %v", err)
	}

	err = e.Extract(context.Background(), "in.mp4", ExtractOptions{
		Start:  5 * time.Second,
		End:    5 * time.Second,
		Output: "out.mp4",
	})
	if err == nil {
		t.Fatal("expected error for zero-length range")
	}

	var xerr *ExtractionError
	if !errors.As(err, &xerr) {
		t.Errorf("expected *ExtractionError, got %T", err)
	}
}

func TestProbeVideo(t *testing.T) {
	skipIfNoFFmpeg(t)

	dir := t.TempDir()
	source := filepath.Join(dir, "probe.mp4")
	generateTestVideo(t, source, 2)

	e, err := New(zerolog.Nop(), 2)
	if err != nil {
		t.Fatalf("failed to create executor: %v", err)
	}

	info, err := e.ProbeVideo(context.Background(), source)
	if err != nil {
		t.Fatalf("ProbeVideo failed: %v", err)
	}

	if info.Width != 320 || info.Height != 240 {
		t.Errorf("expected 320x240, got %dx%d", info.Width, info.Height)
	}
	if info.FPS < 29 || info.FPS > 31 {
		t.Errorf("expected ~30 fps, got %v", info.FPS)
	}
	if info.Duration == 0 {
		t.Error("duration is zero")
	}
}

func TestProbeVideoInvalidFile(t *testing.T) {
	skipIfNoFFmpeg(t)

	e, err := New(zerolog.Nop(), 2)
	if err != nil {
		t.Fatalf("failed to create executor: %v", err)
	}

	ctx := context.Background()

	if _, err := e.ProbeVideo(ctx, "nonexistent.mp4"); err == nil {
		t.Error("ProbeVideo should fail for non-existent file")
	}

	invalid := filepath.Join(t.TempDir(), "invalid.mp4")
	os.WriteFile(invalid, []byte("not a video"), 0644)
	if _, err := e.ProbeVideo(ctx, invalid); err == nil {
		t.Error("ProbeVideo should fail for invalid video file")
	}
}

func TestConcatClipsFromSameSource(t *testing.T) {
	skipIfNoFFmpeg(t)

	dir := t.TempDir()
	source := filepath.Join(dir, "source.mp4")
	generateTestVideo(t, source, 4)

	e, err := New(zerolog.Nop(), 2)
	if err != nil {
		t.Fatalf("failed to create executor: %v", err)
	}

	ctx := context.Background()
	a := filepath.Join(dir, "a.mp4")
	b := filepath.Join(dir, "b.mp4")

	if err := e.Extract(ctx, source, ExtractOptions{Start: 0, End: time.Second, Output: a}); err != nil {
		t.Fatalf("extract a failed: %v", err)
	}
	if err := e.Extract(ctx, source, ExtractOptions{Start: 2 * time.Second, End: 3 * time.Second, Output: b}); err != nil {
		t.Fatalf("extract b failed: %v", err)
	}

	reel := filepath.Join(dir, "reel.mp4")
	if err := e.Concat(ctx, ConcatOptions{Inputs: []string{a, b}, Output: reel}); err != nil {
		t.Fatalf("Concat failed: %v", err)
	}

	if stat, err := os.Stat(reel); err != nil || stat.Size() == 0 {
		t.Errorf("reel was not created: %v", err)
	}
}

func TestConcatRequiresInputs(t *testing.T) {
	skipIfNoFFmpeg(t)

	e, err := New(zerolog.Nop(), 2)
	if err != nil {
		t.Fatalf("failed to create executor: %v", err)
	}

	if err := e.Concat(context.Background(), ConcatOptions{Output: "out.mp4"}); err == nil {
		t.Error("expected error for empty input list")
	}
}

func TestThumbnail(t *testing.T) {
	skipIfNoFFmpeg(t)

	dir := t.TempDir()
	source := filepath.Join(dir, "source.mp4")
	generateTestVideo(t, source, 2)

	e, err := New(zerolog.Nop(), 2)
	if err != nil {
		t.Fatalf("failed to create executor: %v", err)
	}

	output := filepath.Join(dir, "thumb.jpg")
	if err := e.Thumbnail(context.Background(), source, output, 500*time.Millisecond); err != nil {
		t.Fatalf("Thumbnail failed: %v", err)
	}

	if stat, err := os.Stat(output); err != nil || stat.Size() == 0 {
		t.Errorf("thumbnail was not created: %v", err)
	}
}

func TestFilterBuilder(t *testing.T) {
	filter := NewFilterBuilder().Scale(320, 180).Build()

	if filter != "scale=320:180" {
		t.Errorf("expected scale filter, got %q", filter)
	}
}

func TestFilterBuilderEmpty(t *testing.T) {
	if filter := NewFilterBuilder().Build(); filter != "" {
		t.Errorf("expected empty string, got %q", filter)
	}
}

func TestFilterBuilderChaining(t *testing.T) {
	filter := NewFilterBuilder().Scale(1920, 1080).FPS(30).Build()

	expected := "scale=1920:1080,fps=30.000000"
	if filter != expected {
		t.Errorf("expected %q, got %q", expected, filter)
	}
}

func TestFilterBuilderIgnoresInvalidValues(t *testing.T) {
	filter := NewFilterBuilder().Scale(0, 180).FPS(-1).Custom("hflip").Build()

	if filter != "hflip" {
		t.Errorf("expected invalid filters dropped, got %q", filter)
	}
}
