package analyzer

import (
	"context"

	"github.com/reelforge/reelforge/internal/timeline"
)

// Analysis is the scorer's verdict on one transcript segment.
type Analysis struct {
	Segment            timeline.Segment
	NeedsVisualization bool
	Importance         float64
	Reasoning          string
	ImagePrompt        string
}

// Caption is a condensed on-screen text for a phrase, with the sentiment that
// drives its styling.
type Caption struct {
	Text          string
	Sentiment     string
	EmphasisWords []string
}

// Analyzer scores transcript segments for visualization and condenses phrases
// into on-screen captions. Both calls go to Gemini.
type Analyzer interface {
	ScoreSegments(ctx context.Context, segments []timeline.Segment) ([]Analysis, error)
	Summarize(ctx context.Context, phraseText string) (Caption, error)
}
