package detect

import (
	"encoding/json"
	"testing"
)

const sampleOutput = `{
  "frames": [
    {"time": 0.0, "faces": [{"x": 100, "y": 50, "w": 80, "h": 80}]},
    {"time": 2.5, "faces": []},
    {"time": 5.0, "faces": [{"x": 300, "y": 60, "w": 90, "h": 90}, {"x": 500, "y": 70, "w": 60, "h": 60}]}
  ]
}`

func TestParseOutput(t *testing.T) {
	idx, err := parseOutput([]byte(sampleOutput))
	if err != nil {
		t.Fatalf("parseOutput() error = %v", err)
	}
	if len(idx.frames) != 3 {
		t.Fatalf("frames = %d, want 3", len(idx.frames))
	}
	if len(idx.frames[2].faces) != 2 {
		t.Errorf("faces at 5.0 = %d, want 2", len(idx.frames[2].faces))
	}
	if idx.frames[0].faces[0].Box.X != 100 {
		t.Errorf("first face X = %d, want 100", idx.frames[0].faces[0].Box.X)
	}
	if idx.frames[0].faces[0].FrameTime != 0 {
		t.Errorf("FrameTime = %g, want 0", idx.frames[0].faces[0].FrameTime)
	}
}

func TestParseOutputMalformed(t *testing.T) {
	if _, err := parseOutput([]byte("not json")); err == nil {
		t.Error("parseOutput() should reject malformed output")
	}
}

func TestRegionsAt(t *testing.T) {
	idx, err := parseOutput([]byte(sampleOutput))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		t     float64
		faces int
	}{
		{"exact sample", 0.0, 1},
		{"nearest below", 1.0, 1},
		{"nearest empty frame", 2.4, 0},
		{"nearest above", 4.2, 2},
		{"beyond last", 100, 2},
		{"before first", -1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := idx.RegionsAt(tt.t); len(got) != tt.faces {
				t.Errorf("RegionsAt(%g) = %d faces, want %d", tt.t, len(got), tt.faces)
			}
		})
	}
}

func TestFaceIndexJSONRoundTrip(t *testing.T) {
	idx, err := parseOutput([]byte(sampleOutput))
	if err != nil {
		t.Fatal(err)
	}

	data, err := json.Marshal(idx)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var back FaceIndex
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(back.frames) != len(idx.frames) {
		t.Fatalf("round trip lost frames: %d vs %d", len(back.frames), len(idx.frames))
	}
	if got := back.RegionsAt(5.0); len(got) != 2 || got[0].Box.W != 90 {
		t.Errorf("RegionsAt(5.0) after round trip = %+v", got)
	}
}

func TestRegionsAtEmptyIndex(t *testing.T) {
	idx := &FaceIndex{}
	if got := idx.RegionsAt(3); got != nil {
		t.Errorf("RegionsAt() on empty index = %v, want nil", got)
	}
	var nilIdx *FaceIndex
	if got := nilIdx.RegionsAt(3); got != nil {
		t.Errorf("RegionsAt() on nil index = %v, want nil", got)
	}
}
