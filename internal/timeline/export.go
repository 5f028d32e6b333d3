package timeline

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/reelforge/reelforge/internal/overlay"
)

// ArtifactEntry is one reviewable line of the exported timeline: when an
// image appears, for how long, from which prompt, and where its caption sits.
type ArtifactEntry struct {
	Time      float64           `json:"time"`
	Duration  float64           `json:"duration"`
	Prompt    string            `json:"prompt"`
	Placement overlay.Placement `json:"placement"`
}

// Artifact is the serialized timeline handed to the renderer and written next
// to the output video for review.
type Artifact struct {
	Entries []ArtifactEntry `json:"entries"`
}

// WriteArtifact serializes events and their overlay placements as JSON, one
// entry per accepted image in time order. placements must be parallel to
// events, as produced by the overlay pass.
func WriteArtifact(w io.Writer, events []ImageEvent, placements []overlay.Placement) error {
	if len(placements) != len(events) {
		return fmt.Errorf("timeline artifact: %d events but %d placements", len(events), len(placements))
	}

	art := Artifact{Entries: make([]ArtifactEntry, 0, len(events))}
	for i, ev := range events {
		art.Entries = append(art.Entries, ArtifactEntry{
			Time:      ev.Time,
			Duration:  ev.Duration,
			Prompt:    ev.Prompt,
			Placement: placements[i],
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(art)
}
