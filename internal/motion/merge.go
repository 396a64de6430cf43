package motion

import "sort"

// MergeOptions shapes raw events into final clip intervals.
// All values are seconds and must be non-negative.
type MergeOptions struct {
	BufferBefore float64 // context added before each event
	BufferAfter  float64 // context added after each event
	MergeGap     float64 // intervals closer than this collapse into one
	MinDuration  float64 // shorter results are dropped
}

// Interval is a buffer-expanded, merged time range within a video.
type Interval struct {
	Start float64
	End   float64
}

// Duration returns the interval length in seconds.
func (iv Interval) Duration() float64 {
	return iv.End - iv.Start
}

// MergeEvents turns raw motion events into final intervals: each event is
// expanded by the buffers and clamped to [0, videoDuration], overlapping or
// near intervals (gap <= MergeGap) are merged in a single left-to-right
// sweep, and anything shorter than MinDuration is dropped.
//
// Pure function: deterministic, no side effects. Output is sorted by start
// and pairwise non-overlapping. Already-merged input maps to itself.
func MergeEvents(events []Event, opts MergeOptions, videoDuration float64) []Interval {
	if len(events) == 0 {
		return nil
	}

	expanded := make([]Interval, 0, len(events))
	for _, ev := range events {
		start := ev.Start - opts.BufferBefore
		if start < 0 {
			start = 0
		}
		end := ev.End + opts.BufferAfter
		if end > videoDuration {
			end = videoDuration
		}
		expanded = append(expanded, Interval{Start: start, End: end})
	}

	// Detector output is already ordered; sort anyway so unordered callers
	// still get a correct sweep.
	sort.Slice(expanded, func(i, j int) bool {
		return expanded[i].Start < expanded[j].Start
	})

	merged := make([]Interval, 0, len(expanded))
	acc := expanded[0]
	for _, iv := range expanded[1:] {
		if iv.Start <= acc.End+opts.MergeGap {
			if iv.End > acc.End {
				acc.End = iv.End
			}
			continue
		}
		merged = append(merged, acc)
		acc = iv
	}
	merged = append(merged, acc)

	final := merged[:0]
	for _, iv := range merged {
		if iv.Duration() >= opts.MinDuration {
			final = append(final, iv)
		}
	}

	if len(final) == 0 {
		return nil
	}
	return final
}
