package processor

import (
	"testing"

	"github.com/reelforge/reelforge/internal/timeline"
)

func TestGroupPhrases(t *testing.T) {
	segments := []timeline.Segment{
		{Start: 0, End: 2, Text: "thank you"},
		{Start: 2, End: 4, Text: "so much"},
		{Start: 4, End: 7, Text: "for everything"},
		{Start: 7, End: 9, Text: "it means a lot"},
	}

	phrases := groupPhrases(segments, 5.0)
	if len(phrases) != 2 {
		t.Fatalf("groupPhrases() = %d phrases, want 2", len(phrases))
	}
	if phrases[0].Text != "thank you so much" {
		t.Errorf("first phrase = %q", phrases[0].Text)
	}
	if phrases[0].Start != 0 || phrases[0].End != 4 {
		t.Errorf("first phrase span = [%g, %g], want [0, 4]", phrases[0].Start, phrases[0].End)
	}
	if phrases[1].Text != "for everything it means a lot" {
		t.Errorf("second phrase = %q", phrases[1].Text)
	}
}

func TestGroupPhrasesEmpty(t *testing.T) {
	if got := groupPhrases(nil, 5.0); len(got) != 0 {
		t.Errorf("groupPhrases(nil) = %v, want empty", got)
	}
}

func TestGroupPhrasesSingle(t *testing.T) {
	segments := []timeline.Segment{{Start: 1, End: 3, Text: "hello"}}
	phrases := groupPhrases(segments, 5.0)
	if len(phrases) != 1 || phrases[0].Text != "hello" || phrases[0].End != 3 {
		t.Errorf("groupPhrases() = %+v", phrases)
	}
}
