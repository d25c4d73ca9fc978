package core

import (
	"sort"

	"github.com/vidgrade/vidgrade/schema"
)

// violation is a single timestamped rule breach.
type violation struct {
	t float64
}

// highlightDetector tracks one reason channel. Channels are independent:
// overlapping windows with different reasons are all reported, while
// windows within a channel never overlap by construction.
type highlightDetector struct {
	reason     string
	mergeGapS  float64
	minDurS    float64
	violations []violation
}

func newHighlightDetector(reason string, mergeGapS, minDurS float64) *highlightDetector {
	return &highlightDetector{reason: reason, mergeGapS: mergeGapS, minDurS: minDurS}
}

// observe records whether the rule was violated at time t. Samples where
// the rule does not apply (for example frames without a detected face)
// should simply not be observed.
func (d *highlightDetector) observe(t float64, violated bool) {
	if violated {
		d.violations = append(d.violations, violation{t: t})
	}
}

// windows compresses the recorded violations into merged windows.
// Violations closer than the merge gap join the same window; windows
// shorter than the minimum duration are discarded.
func (d *highlightDetector) windows() []schema.HighlightWindow {
	if len(d.violations) == 0 {
		return nil
	}

	var out []schema.HighlightWindow
	start := d.violations[0].t
	prev := start
	flush := func(end float64) {
		if end-start >= d.minDurS && end > start {
			out = append(out, schema.HighlightWindow{
				Start:  start,
				End:    end,
				Reason: d.reason,
			})
		}
	}
	for _, v := range d.violations[1:] {
		if v.t-prev > d.mergeGapS {
			flush(prev)
			start = v.t
		}
		prev = v.t
	}
	flush(prev)
	return out
}

// collectHighlights drains every detector and returns all windows
// ordered by start time, breaking ties by reason for stable output.
func collectHighlights(detectors ...*highlightDetector) []schema.HighlightWindow {
	var all []schema.HighlightWindow
	for _, d := range detectors {
		all = append(all, d.windows()...)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Start != all[j].Start {
			return all[i].Start < all[j].Start
		}
		return all[i].Reason < all[j].Reason
	})
	return all
}

// roundHighlights rounds window bounds for output.
func roundHighlights(ws []schema.HighlightWindow, places int) []schema.HighlightWindow {
	out := make([]schema.HighlightWindow, len(ws))
	for i, w := range ws {
		out[i] = schema.HighlightWindow{
			Start:  schema.Round(w.Start, places),
			End:    schema.Round(w.End, places),
			Reason: w.Reason,
		}
	}
	return out
}
