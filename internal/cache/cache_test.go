package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/reelforge/reelforge/internal/analyzer"
	"github.com/reelforge/reelforge/internal/detect"
	"github.com/reelforge/reelforge/internal/timeline"
)

func newCache(t *testing.T) *Cache {
	t.Helper()
	c, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func TestTranscriptRoundTrip(t *testing.T) {
	c := newCache(t)
	segments := []timeline.Segment{
		{Start: 0, End: 4.2, Text: "hello", Importance: 7},
		{Start: 4.2, End: 9, Text: "world", Importance: 9},
	}

	if err := c.SaveTranscript("/videos/a.mp4", segments); err != nil {
		t.Fatalf("SaveTranscript() error = %v", err)
	}

	got, ok := c.LoadTranscript("/videos/a.mp4")
	if !ok {
		t.Fatal("LoadTranscript() miss, want hit")
	}
	if len(got) != 2 || got[1].Text != "world" || got[1].Importance != 9 {
		t.Errorf("LoadTranscript() = %+v", got)
	}

	if _, ok := c.LoadTranscript("/videos/other.mp4"); ok {
		t.Error("LoadTranscript() hit for unknown video")
	}
}

func TestAnalysesRoundTrip(t *testing.T) {
	c := newCache(t)
	analyses := []analyzer.Analysis{
		{
			Segment:            timeline.Segment{Start: 1, End: 2, Text: "x"},
			NeedsVisualization: true,
			Importance:         8,
			ImagePrompt:        "a busy market",
		},
	}

	if err := c.SaveAnalyses("/videos/a.mp4", analyses); err != nil {
		t.Fatalf("SaveAnalyses() error = %v", err)
	}
	got, ok := c.LoadAnalyses("/videos/a.mp4")
	if !ok || len(got) != 1 || got[0].ImagePrompt != "a busy market" {
		t.Errorf("LoadAnalyses() = %+v, ok=%v", got, ok)
	}
}

func TestImageRoundTrip(t *testing.T) {
	c := newCache(t)

	src := filepath.Join(t.TempDir(), "img.png")
	if err := os.WriteFile(src, []byte("pngdata"), 0644); err != nil {
		t.Fatal(err)
	}

	cached, err := c.SaveImage("a busy market", src)
	if err != nil {
		t.Fatalf("SaveImage() error = %v", err)
	}

	got, ok := c.LoadImage("a busy market")
	if !ok || got != cached {
		t.Errorf("LoadImage() = %q, ok=%v, want %q", got, ok, cached)
	}
	data, err := os.ReadFile(got)
	if err != nil || string(data) != "pngdata" {
		t.Errorf("cached image content = %q, err=%v", data, err)
	}

	if _, ok := c.LoadImage("different prompt"); ok {
		t.Error("LoadImage() hit for unknown prompt")
	}
}

func TestFacesRoundTrip(t *testing.T) {
	c := newCache(t)

	var idx detect.FaceIndex
	sample := `{"frames":[{"time":1.5,"faces":[{"x":10,"y":20,"w":30,"h":40}]}]}`
	if err := json.Unmarshal([]byte(sample), &idx); err != nil {
		t.Fatal(err)
	}

	if err := c.SaveFaces("/v.mp4", &idx); err != nil {
		t.Fatalf("SaveFaces() error = %v", err)
	}
	got, ok := c.LoadFaces("/v.mp4")
	if !ok {
		t.Fatal("LoadFaces() miss, want hit")
	}
	faces := got.RegionsAt(1.5)
	if len(faces) != 1 || faces[0].Box.X != 10 || faces[0].FrameTime != 1.5 {
		t.Errorf("RegionsAt(1.5) = %+v", faces)
	}
}

func TestInfo(t *testing.T) {
	c := newCache(t)
	if err := c.SaveTranscript("/v.mp4", nil); err != nil {
		t.Fatal(err)
	}

	info := c.Info()
	if info["transcriptions"] != 1 {
		t.Errorf("transcriptions = %d, want 1", info["transcriptions"])
	}
	if info["images"] != 0 {
		t.Errorf("images = %d, want 0", info["images"])
	}
}
