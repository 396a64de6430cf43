package motion

// Sample pairs a frame timestamp (seconds) with its motion fraction.
type Sample struct {
	Timestamp float64
	Fraction  float64
}

// Event is a raw interval where the active-motion predicate held,
// before buffering and merging. Start <= End always.
type Event struct {
	Start float64
	End   float64
}

// Policy decides when a motion fraction stream turns activity on and off.
// All comparisons are inclusive: a fraction exactly at a bound meets it.
type Policy interface {
	// Trigger reports whether an IDLE detector should go ACTIVE.
	Trigger(fraction float64) bool
	// Sustain reports whether an ACTIVE detector stays ACTIVE.
	Sustain(fraction float64) bool
	// EndAt picks the end timestamp when a sample breaks Sustain:
	// lastActive is the most recent sustaining sample, current the breaking one.
	EndAt(lastActive, current float64) float64
}

// SingleThreshold activates and sustains on the same bound. The sample that
// drops below the bound is the event edge.
type SingleThreshold struct {
	Threshold float64
}

func (p SingleThreshold) Trigger(f float64) bool { return f >= p.Threshold }

func (p SingleThreshold) Sustain(f float64) bool { return f >= p.Threshold }

func (p SingleThreshold) EndAt(lastActive, current float64) float64 { return current }

// Hysteresis requires a dramatic spike (>= Max) to activate, then extends the
// event for as long as the fraction stays at or above the lower Min bound.
// Slow continuous drift below Max never triggers; a single leap pulls in the
// surrounding lower-motion context. The event ends at the last sample that
// still held motion, not at the sample that fell below Min.
type Hysteresis struct {
	Max float64
	Min float64
}

func (p Hysteresis) Trigger(f float64) bool { return f >= p.Max }

func (p Hysteresis) Sustain(f float64) bool { return f >= p.Min }

func (p Hysteresis) EndAt(lastActive, current float64) float64 { return lastActive }

// Detector folds an ordered motion fraction stream into Events. It starts
// IDLE; Finish force-closes any open event at the last seen timestamp.
// Zero-duration events are emitted as-is: minimum-length filtering belongs
// to the merge step, not detection.
type Detector struct {
	policy     Policy
	active     bool
	start      float64
	lastActive float64
	lastSeen   float64
	events     []Event
}

// NewDetector creates an idle detector with the given policy.
func NewDetector(policy Policy) *Detector {
	return &Detector{policy: policy}
}

// Observe feeds one sample. Samples must arrive in temporal order.
func (d *Detector) Observe(s Sample) {
	d.lastSeen = s.Timestamp

	if !d.active {
		if d.policy.Trigger(s.Fraction) {
			d.active = true
			d.start = s.Timestamp
			d.lastActive = s.Timestamp
		}
		return
	}

	if d.policy.Sustain(s.Fraction) {
		d.lastActive = s.Timestamp
		return
	}

	d.events = append(d.events, Event{
		Start: d.start,
		End:   d.policy.EndAt(d.lastActive, s.Timestamp),
	})
	d.active = false
}

// Finish closes any open event at the last seen timestamp and returns all
// events in start order. The detector is spent afterwards.
func (d *Detector) Finish() []Event {
	if d.active {
		d.events = append(d.events, Event{Start: d.start, End: d.lastSeen})
		d.active = false
	}
	return d.events
}
