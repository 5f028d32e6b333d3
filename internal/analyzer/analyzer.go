package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"google.golang.org/genai"

	"github.com/reelforge/reelforge/internal/timeline"
)

type scoringResponse struct {
	NeedsVisualization bool    `json:"needs_visualization"`
	ImportanceScore    float64 `json:"importance_score"`
	Reasoning          string  `json:"reasoning"`
	ImagePrompt        string  `json:"image_prompt"`
}

type captionResponse struct {
	EnglishText   string   `json:"english_text"`
	Sentiment     string   `json:"sentiment"`
	EmphasisWords []string `json:"emphasis_words"`
}

// ScoreSegments asks Gemini to score each segment with its surrounding
// context. A segment whose call fails scores zero rather than aborting the
// batch; the pipeline still has the rest.
func (a *implAnalyzer) ScoreSegments(ctx context.Context, segments []timeline.Segment) ([]Analysis, error) {
	a.logger.Info(ctx, "Scoring %d segments for visualization", len(segments))

	results := make([]Analysis, 0, len(segments))
	for i, seg := range segments {
		before, after := a.contextAround(segments, i)
		prompt := fmt.Sprintf(scoringPrompt, seg.Text, before, after)

		raw, err := a.callGemini(ctx, prompt)
		if err != nil {
			a.logger.Error(ctx, "Scoring segment %d failed: %v", i, err)
			results = append(results, Analysis{Segment: seg, Reasoning: fmt.Sprintf("scoring failed: %v", err)})
			continue
		}

		var resp scoringResponse
		if err := json.Unmarshal([]byte(stripFences(raw)), &resp); err != nil {
			a.logger.Error(ctx, "Scoring segment %d returned malformed JSON: %v", i, err)
			results = append(results, Analysis{Segment: seg, Reasoning: "malformed scorer response"})
			continue
		}

		seg.Importance = clampScore(resp.ImportanceScore)
		seg.Prompt = resp.ImagePrompt
		results = append(results, Analysis{
			Segment:            seg,
			NeedsVisualization: resp.NeedsVisualization,
			Importance:         seg.Importance,
			Reasoning:          resp.Reasoning,
			ImagePrompt:        resp.ImagePrompt,
		})

		if (i+1)%10 == 0 {
			a.logger.Info(ctx, "Scored %d/%d segments", i+1, len(segments))
		}
	}

	return results, nil
}

// Summarize condenses one phrase into a caption.
func (a *implAnalyzer) Summarize(ctx context.Context, phraseText string) (Caption, error) {
	prompt := fmt.Sprintf(captionPrompt, phraseText, a.cfg.MaxTextLength)

	raw, err := a.callGemini(ctx, prompt)
	if err != nil {
		return Caption{}, fmt.Errorf("summarize caption: %w", err)
	}

	var resp captionResponse
	if err := json.Unmarshal([]byte(stripFences(raw)), &resp); err != nil {
		// Degrade to a truncation of the source text.
		return Caption{Text: truncate(phraseText, a.cfg.MaxTextLength), Sentiment: "neutral"}, nil
	}

	text := resp.EnglishText
	if text == "" {
		text = truncate(phraseText, a.cfg.MaxTextLength)
	}
	return Caption{Text: text, Sentiment: resp.Sentiment, EmphasisWords: resp.EmphasisWords}, nil
}

// callGemini sends the prompt, rotating API keys on 429 / quota errors.
func (a *implAnalyzer) callGemini(ctx context.Context, prompt string) (string, error) {
	attempts := len(a.apiKeys)
	var lastErr error

	for range attempts {
		key := a.apiKeys[a.currentKey]

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			a.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, a.model, genai.Text(prompt), nil)
		if err != nil {
			msg := err.Error()
			if strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED") {
				a.logger.Warn(ctx, "Gemini key %d rate limited, rotating", a.currentKey+1)
				a.rotateKey()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text string
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					text += part.Text
				}
			}
			return text, nil
		}

		return "", fmt.Errorf("empty response from Gemini")
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (a *implAnalyzer) rotateKey() {
	a.currentKey = (a.currentKey + 1) % len(a.apiKeys)
}

func (a *implAnalyzer) contextAround(segments []timeline.Segment, i int) (before, after string) {
	n := a.cfg.ContextSegments
	var parts []string
	for j := max(0, i-n); j < i; j++ {
		parts = append(parts, segments[j].Text)
	}
	before = strings.Join(parts, " ")

	parts = parts[:0]
	for j := i + 1; j < min(len(segments), i+n+1); j++ {
		parts = append(parts, segments[j].Text)
	}
	after = strings.Join(parts, " ")
	return before, after
}

// SelectCandidates picks which scored segments go to the planner: segments
// flagged for visualization capped at maxCandidates by score, but never fewer
// than minGuaranteed of the best-scoring segments overall. The returned slice
// is in ascending start order, as the planner requires.
func SelectCandidates(analyses []Analysis, maxCandidates, minGuaranteed int) []timeline.Segment {
	byScore := make([]Analysis, len(analyses))
	copy(byScore, analyses)
	sort.SliceStable(byScore, func(i, j int) bool {
		return byScore[i].Importance > byScore[j].Importance
	})

	var picked []Analysis
	for _, a := range byScore {
		if a.NeedsVisualization && a.ImagePrompt != "" {
			picked = append(picked, a)
		}
	}

	if len(picked) > maxCandidates {
		picked = picked[:maxCandidates]
	} else if len(picked) < minGuaranteed {
		picked = picked[:0]
		for _, a := range byScore {
			if a.ImagePrompt == "" {
				continue
			}
			picked = append(picked, a)
			if len(picked) == minGuaranteed {
				break
			}
		}
	}

	segments := make([]timeline.Segment, 0, len(picked))
	for _, a := range picked {
		segments = append(segments, a.Segment)
	}
	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].Start < segments[j].Start
	})
	return segments
}

func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 10 {
		return 10
	}
	return s
}

// stripFences removes a markdown code fence if the model wrapped its JSON.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}

// truncate cuts s to at most n runes. Counting runes rather than bytes keeps
// multibyte text (Devanagari source captions) valid UTF-8 for drawtext.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
