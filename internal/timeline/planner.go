package timeline

import (
	"errors"
	"fmt"
)

// ErrConfiguration indicates an invalid planner configuration. The planner
// never recovers from it internally; callers decide whether to abort or fix.
var ErrConfiguration = errors.New("invalid planner configuration")

// ErrUnsortedSegments indicates the input segments are not in ascending start
// order (or a segment has start >= end). The sliding-window rate check is
// order-dependent, so the planner refuses rather than silently re-sorting.
var ErrUnsortedSegments = errors.New("segments not in ascending time order")

// Segment is one translated transcript segment with its importance score.
type Segment struct {
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Text       string  `json:"text"`
	Importance float64 `json:"importance"`
	Prompt     string  `json:"prompt,omitempty"`
}

// ImageEvent schedules one illustrative image at a fixed point in the output.
type ImageEvent struct {
	Time     float64 `json:"time"`
	Duration float64 `json:"duration"`
	Segment  Segment `json:"-"`
	Prompt   string  `json:"prompt"`
}

// PlannerConfig controls image selection and pacing.
type PlannerConfig struct {
	MinImportanceScore   float64
	MaxImagesPerWindow   int
	WindowSeconds        float64
	ImageDurationSeconds float64
}

// Plan selects which segments receive an illustrative image.
//
// Segments at or above the importance threshold are walked in ascending start
// order; a candidate is accepted only while fewer than MaxImagesPerWindow
// events already sit in the trailing window [start-WindowSeconds, start],
// inclusive on both ends. The pass is greedy and single-shot: it never looks
// ahead or backtracks, so it is O(n) with a bounded window but does not
// maximize total importance covered.
//
// Every accepted event gets exactly ImageDurationSeconds. A pure function:
// identical inputs produce identical output.
func Plan(segments []Segment, cfg PlannerConfig) ([]ImageEvent, error) {
	if cfg.MaxImagesPerWindow <= 0 {
		return nil, fmt.Errorf("%w: max images per window must be > 0, got %d", ErrConfiguration, cfg.MaxImagesPerWindow)
	}
	if cfg.WindowSeconds <= 0 {
		return nil, fmt.Errorf("%w: window seconds must be > 0, got %g", ErrConfiguration, cfg.WindowSeconds)
	}
	if cfg.ImageDurationSeconds <= 0 {
		return nil, fmt.Errorf("%w: image duration must be > 0, got %g", ErrConfiguration, cfg.ImageDurationSeconds)
	}
	if err := validateOrder(segments); err != nil {
		return nil, err
	}

	events := []ImageEvent{}
	accepted := []float64{} // timestamps of accepted events, ascending

	for _, seg := range segments {
		if seg.Importance < cfg.MinImportanceScore {
			continue
		}
		if !admit(accepted, seg.Start, cfg.WindowSeconds, cfg.MaxImagesPerWindow) {
			continue
		}
		accepted = append(accepted, seg.Start)
		events = append(events, ImageEvent{
			Time:     seg.Start,
			Duration: cfg.ImageDurationSeconds,
			Segment:  seg,
			Prompt:   seg.Prompt,
		})
	}

	return events, nil
}

// admit reports whether a candidate at time t may be accepted given the
// already-accepted timestamps. A candidate colliding exactly with an accepted
// timestamp is refused outright so no two events share a time.
func admit(accepted []float64, t, window float64, limit int) bool {
	count := 0
	for i := len(accepted) - 1; i >= 0; i-- {
		if accepted[i] < t-window {
			break
		}
		if accepted[i] == t {
			return false
		}
		count++
	}
	return count < limit
}

func validateOrder(segments []Segment) error {
	for i, seg := range segments {
		if seg.Start >= seg.End {
			return fmt.Errorf("%w: segment %d has start %g >= end %g", ErrUnsortedSegments, i, seg.Start, seg.End)
		}
		if i > 0 && seg.Start < segments[i-1].Start {
			return fmt.Errorf("%w: segment %d starts at %g before segment %d at %g", ErrUnsortedSegments, i, seg.Start, i-1, segments[i-1].Start)
		}
	}
	return nil
}
