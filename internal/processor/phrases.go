package processor

import "github.com/reelforge/reelforge/internal/timeline"

// phrase is a run of consecutive segments merged for caption display.
type phrase struct {
	Text  string
	Start float64
	End   float64
}

// groupPhrases merges adjacent segments into caption-sized phrases: a phrase
// closes once adding the next segment would push it past maxDuration seconds.
func groupPhrases(segments []timeline.Segment, maxDuration float64) []phrase {
	var phrases []phrase
	var cur phrase
	open := false

	for _, seg := range segments {
		if !open {
			cur = phrase{Text: seg.Text, Start: seg.Start, End: seg.End}
			open = true
			continue
		}

		if seg.End-cur.Start > maxDuration {
			cur.End = seg.Start
			phrases = append(phrases, cur)
			cur = phrase{Text: seg.Text, Start: seg.Start, End: seg.End}
			continue
		}

		cur.Text += " " + seg.Text
		cur.End = seg.End
	}

	if open {
		phrases = append(phrases, cur)
	}
	return phrases
}
