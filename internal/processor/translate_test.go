package processor

import "testing"

func TestParseWhisperOutput(t *testing.T) {
	data := []byte(`{
		"transcription": [
			{"offsets": {"from": 0, "to": 4200}, "text": " Hello everyone"},
			{"offsets": {"from": 4200, "to": 9000}, "text": " welcome to the workshop"},
			{"offsets": {"from": 9000, "to": 9000}, "text": " zero-length"},
			{"offsets": {"from": 9000, "to": 9500}, "text": "   "}
		]
	}`)

	segments, err := parseWhisperOutput(data)
	if err != nil {
		t.Fatalf("parseWhisperOutput() error = %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("segments = %d, want 2 (degenerate entries skipped)", len(segments))
	}
	if segments[0].Start != 0 || segments[0].End != 4.2 {
		t.Errorf("first segment span = [%g, %g], want [0, 4.2]", segments[0].Start, segments[0].End)
	}
	if segments[0].Text != "Hello everyone" {
		t.Errorf("first segment text = %q (whitespace not trimmed?)", segments[0].Text)
	}
	if segments[1].Start != 4.2 {
		t.Errorf("second segment start = %g, want 4.2", segments[1].Start)
	}
}

func TestParseWhisperOutputMalformed(t *testing.T) {
	if _, err := parseWhisperOutput([]byte("not json")); err == nil {
		t.Error("parseWhisperOutput() should reject malformed JSON")
	}
}

func TestParseProbeOutput(t *testing.T) {
	data := []byte(`{
		"streams": [{"width": 1080, "height": 1920, "r_frame_rate": "30000/1001", "duration": "63.5"}],
		"format": {"duration": "63.7"}
	}`)

	info, err := parseProbeOutput(data)
	if err != nil {
		t.Fatalf("parseProbeOutput() error = %v", err)
	}
	if info.Width != 1080 || info.Height != 1920 {
		t.Errorf("dimensions = %dx%d, want 1080x1920", info.Width, info.Height)
	}
	if info.FPS < 29.9 || info.FPS > 30.0 {
		t.Errorf("fps = %g, want ~29.97", info.FPS)
	}
	if info.Duration != 63.5 {
		t.Errorf("duration = %g, want stream duration 63.5", info.Duration)
	}
}

func TestParseProbeOutputFormatFallback(t *testing.T) {
	data := []byte(`{
		"streams": [{"width": 640, "height": 480, "r_frame_rate": "25/1"}],
		"format": {"duration": "12.0"}
	}`)

	info, err := parseProbeOutput(data)
	if err != nil {
		t.Fatalf("parseProbeOutput() error = %v", err)
	}
	if info.Duration != 12.0 {
		t.Errorf("duration = %g, want format fallback 12.0", info.Duration)
	}
}

func TestParseProbeOutputNoStream(t *testing.T) {
	if _, err := parseProbeOutput([]byte(`{"streams": []}`)); err == nil {
		t.Error("parseProbeOutput() should reject output without a video stream")
	}
}
