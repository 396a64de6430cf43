package video

import (
	"fmt"

	"gocv.io/x/gocv"
)

// MediaReadError reports a source that cannot be decoded: unopenable, corrupt,
// or missing frame/fps metadata. The batch driver skips the video and moves on.
type MediaReadError struct {
	Path   string
	Reason string
	Err    error
}

func (e *MediaReadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot read %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("cannot read %s: %s", e.Path, e.Reason)
}

func (e *MediaReadError) Unwrap() error {
	return e.Err
}

// Frame is a single decoded, sampled frame. Mat is a buffer owned by the
// Source and reused on the next call to Next; callers must not retain it.
type Frame struct {
	Index     int     // decoded frame index in the source
	Timestamp float64 // seconds, Index / FPS
	Mat       gocv.Mat
}

// Source decodes a video at a fixed sampling stride, yielding every Nth frame
// (frame 0, N, 2N, ...). It is forward-only: a fresh pass needs a new Source.
type Source struct {
	path   string
	cap    *gocv.VideoCapture
	mat    gocv.Mat
	fps    float64
	frames int
	stride int
	next   int // decoded index of the next frame to emit
}

// Open opens a video file for stride-sampled decoding.
func Open(path string, stride int) (*Source, error) {
	if stride < 1 {
		stride = 1
	}

	cap, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, &MediaReadError{Path: path, Reason: "open failed", Err: err}
	}

	fps := cap.Get(gocv.VideoCaptureFPS)
	frames := int(cap.Get(gocv.VideoCaptureFrameCount))
	if fps <= 0 || frames <= 0 {
		cap.Close()
		return nil, &MediaReadError{
			Path:   path,
			Reason: fmt.Sprintf("no usable metadata (fps=%.2f frames=%d)", fps, frames),
		}
	}

	return &Source{
		path:   path,
		cap:    cap,
		mat:    gocv.NewMat(),
		fps:    fps,
		frames: frames,
		stride: stride,
	}, nil
}

// Next returns the next sampled frame, or ok=false at end of stream.
func (s *Source) Next() (Frame, bool) {
	for {
		if s.next > 0 && s.stride > 1 {
			// Skip undecoded frames between samples
			s.cap.Grab(s.stride - 1)
		}

		if ok := s.cap.Read(&s.mat); !ok {
			return Frame{}, false
		}

		idx := s.next
		s.next += s.stride

		if s.mat.Empty() {
			continue
		}

		return Frame{
			Index:     idx,
			Timestamp: float64(idx) / s.fps,
			Mat:       s.mat,
		}, true
	}
}

// FPS returns the declared frame rate.
func (s *Source) FPS() float64 {
	return s.fps
}

// FrameCount returns the declared total frame count.
func (s *Source) FrameCount() int {
	return s.frames
}

// Duration returns the video length in seconds, from declared metadata.
func (s *Source) Duration() float64 {
	return float64(s.frames) / s.fps
}

// Path returns the source file path.
func (s *Source) Path() string {
	return s.path
}

// Close releases the decoder and the frame buffer.
func (s *Source) Close() error {
	if err := s.mat.Close(); err != nil {
		return err
	}
	return s.cap.Close()
}
