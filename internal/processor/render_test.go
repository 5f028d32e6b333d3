package processor

import (
	"strings"
	"testing"

	"github.com/reelforge/reelforge/internal/config"
	"github.com/reelforge/reelforge/internal/overlay"
	"github.com/reelforge/reelforge/internal/timeline"
)

func renderConfig() config.FFmpegConfig {
	return config.FFmpegConfig{
		VideoCodec:   "libx264",
		AudioCodec:   "aac",
		VideoBitrate: "5000k",
		AudioBitrate: "192k",
		Preset:       "fast",
	}
}

func TestBuildRenderArgs(t *testing.T) {
	images := []imageClip{
		{Event: timeline.ImageEvent{Time: 10, Duration: 1}, Path: "/tmp/a.png"},
		{Event: timeline.ImageEvent{Time: 42.5, Duration: 1}, Path: "/tmp/b.png"},
	}
	captions := []captionClip{
		{
			Start:     0,
			End:       4,
			Placement: overlay.Placement{Text: "Thank You", Position: overlay.Rect{X: 45, Y: 1700, W: 400, H: 120}},
			Sentiment: "happy",
		},
	}
	info := videoInfo{Width: 1080, Height: 1920, FPS: 30, Duration: 60}

	args := buildRenderArgs("in.mp4", images, captions, info, renderConfig(), "out.mp4")
	joined := strings.Join(args, " ")

	for _, want := range []string{
		"-i in.mp4",
		"-i /tmp/a.png",
		"-i /tmp/b.png",
		"scale=1080:1920",
		"overlay=0:0:enable='between(t,10.000,11.000)'",
		"overlay=0:0:enable='between(t,42.500,43.500)'",
		"drawtext=text='Thank You'",
		"fontcolor=springgreen",
		"x=45:y=1700",
		"-c:v libx264",
		"-b:v 5000k",
		"-c:a aac",
		"out.mp4",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("render args missing %q\nargs: %s", want, joined)
		}
	}

	// The last filter label must be the one mapped.
	if !strings.Contains(joined, "-map [c0]") {
		t.Errorf("final caption label not mapped: %s", joined)
	}
}

func TestBuildRenderArgsNoOverlays(t *testing.T) {
	info := videoInfo{Width: 1080, Height: 1920}
	args := buildRenderArgs("in.mp4", nil, nil, info, renderConfig(), "out.mp4")
	joined := strings.Join(args, " ")

	if strings.Contains(joined, "-filter_complex") {
		t.Errorf("empty overlay set should not emit a filter graph: %s", joined)
	}
	if !strings.Contains(joined, "-map 0:v") {
		t.Errorf("plain re-encode should map the source stream: %s", joined)
	}
}

func TestEscapeDrawtext(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"50% there", `50\% there`},
		{"a:b", `a\:b`},
	}
	for _, tt := range tests {
		if got := escapeDrawtext(tt.in); got != tt.want {
			t.Errorf("escapeDrawtext(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSentimentColor(t *testing.T) {
	if got := sentimentColor("important"); got != "gold" {
		t.Errorf("sentimentColor(important) = %q", got)
	}
	if got := sentimentColor("unknown"); got != "white" {
		t.Errorf("sentimentColor(unknown) = %q, want white", got)
	}
	if got := sentimentColor(""); got != "white" {
		t.Errorf("sentimentColor(empty) = %q, want white", got)
	}
}
