package chunk

import "math"

// Span is one planned slice of a recording: where it starts on the global
// timeline and how long it runs, both in seconds.
type Span struct {
	Offset   float64
	Duration float64
}

// Plan splits a recording of total seconds into spans of at most max seconds
// each. A recording that already fits comes back as a single span at offset
// zero. Longer recordings are cut into ceil(total/max) equal parts, and the
// last span's duration is recomputed from its own offset so the spans always
// cover the total exactly even after float rounding. A non-positive or
// non-finite total yields no spans; a non-positive max means no limit. Plan
// never fails.
func Plan(total, max float64) []Span {
	if total <= 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return nil
	}
	if max <= 0 || math.IsNaN(max) || total <= max {
		return []Span{{Offset: 0, Duration: total}}
	}

	count := int(math.Ceil(total / max))
	size := total / float64(count)

	spans := make([]Span, count)
	for i := range spans {
		spans[i] = Span{Offset: float64(i) * size, Duration: size}
	}
	// last span absorbs the accumulated rounding error
	spans[count-1].Duration = total - spans[count-1].Offset

	return spans
}
