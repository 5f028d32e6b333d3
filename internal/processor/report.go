package processor

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// runStats summarizes one pipeline run for the processing report.
type runStats struct {
	Input           string
	Output          string
	Segments        int
	Phrases         int
	ImageCandidates int
	ImagesPlanned   int
	ImagesRendered  int
	FallbackCaption int
	Elapsed         time.Duration
}

func writeReport(path string, stats runStats) error {
	var b strings.Builder
	b.WriteString("reelforge - Processing Report\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")
	fmt.Fprintf(&b, "Input: %s\n", stats.Input)
	fmt.Fprintf(&b, "Output: %s\n\n", stats.Output)
	fmt.Fprintf(&b, "Transcript segments: %d\n", stats.Segments)
	fmt.Fprintf(&b, "Caption phrases: %d\n", stats.Phrases)
	fmt.Fprintf(&b, "Image candidates: %d\n", stats.ImageCandidates)
	fmt.Fprintf(&b, "Images planned: %d\n", stats.ImagesPlanned)
	fmt.Fprintf(&b, "Images rendered: %d\n", stats.ImagesRendered)
	fmt.Fprintf(&b, "Captions on fallback position: %d\n", stats.FallbackCaption)
	fmt.Fprintf(&b, "Processing time: %s\n", stats.Elapsed.Round(time.Second))
	return os.WriteFile(path, []byte(b.String()), 0644)
}
