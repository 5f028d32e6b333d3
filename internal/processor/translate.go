package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/reelforge/reelforge/internal/timeline"
)

// whisperOutput matches whisper.cpp's -oj JSON file.
type whisperOutput struct {
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"` // milliseconds
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

// translate runs whisper in translate mode (source language to English) and
// returns the translated segments in ascending time order.
func (p *implProcessor) translate(ctx context.Context, audioPath string) ([]timeline.Segment, error) {
	outputPrefix := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))

	p.logger.Info(ctx, "Translating audio to English (%d threads): %s", p.cfg.Whisper.Threads, audioPath)

	args := []string{
		"-m", p.cfg.Whisper.ModelPath,
		"-f", audioPath,
		"-l", p.cfg.Whisper.Language,
		"-tr", // translate to English
		"-oj", // JSON output
		"-t", strconv.Itoa(p.cfg.Whisper.Threads),
		"--output-file", outputPrefix,
	}
	if _, err := p.executor.Execute(ctx, p.cfg.Whisper.BinaryPath, args...); err != nil {
		return nil, fmt.Errorf("whisper translate: %w", err)
	}

	jsonPath := outputPrefix + ".json"
	defer p.cleanupTempFile(ctx, jsonPath)

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("read whisper output: %w", err)
	}

	segments, err := parseWhisperOutput(data)
	if err != nil {
		return nil, fmt.Errorf("parse whisper output: %w", err)
	}

	p.logger.Info(ctx, "Translation complete: %d segments", len(segments))
	return segments, nil
}

func parseWhisperOutput(data []byte) ([]timeline.Segment, error) {
	var out whisperOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}

	segments := make([]timeline.Segment, 0, len(out.Transcription))
	for _, t := range out.Transcription {
		text := strings.TrimSpace(t.Text)
		if text == "" || t.Offsets.To <= t.Offsets.From {
			continue
		}
		segments = append(segments, timeline.Segment{
			Start: float64(t.Offsets.From) / 1000,
			End:   float64(t.Offsets.To) / 1000,
			Text:  text,
		})
	}

	// Whisper emits in order, but the planner refuses unsorted input, so make
	// the guarantee explicit here.
	sort.SliceStable(segments, func(i, j int) bool { return segments[i].Start < segments[j].Start })
	return segments, nil
}
