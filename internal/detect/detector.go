package detect

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/reelforge/reelforge/internal/overlay"
)

// detectorOutput is the JSON contract with the external detector command.
type detectorOutput struct {
	Frames []detectorFrame `json:"frames"`
}

type detectorFrame struct {
	Time  float64 `json:"time"`
	Faces []struct {
		X int `json:"x"`
		Y int `json:"y"`
		W int `json:"w"`
		H int `json:"h"`
	} `json:"faces"`
}

// FaceIndex holds sampled face regions, queryable by timestamp.
type FaceIndex struct {
	frames []sampledFrame
}

type sampledFrame struct {
	time  float64
	faces []overlay.FaceRegion
}

// Detect runs the detector command over the video and indexes its output.
func (d *implDetector) Detect(ctx context.Context, videoPath string) (*FaceIndex, error) {
	d.logger.Info(ctx, "Detecting faces: %s (every %d frames)", videoPath, d.cfg.IntervalFrames)

	args := append([]string{}, d.cfg.Args...)
	args = append(args, "--interval", strconv.Itoa(d.cfg.IntervalFrames), videoPath)

	out, err := d.executor.Execute(ctx, d.cfg.Command, args...)
	if err != nil {
		return nil, fmt.Errorf("face detector: %w", err)
	}

	idx, err := parseOutput([]byte(out))
	if err != nil {
		return nil, fmt.Errorf("face detector output: %w", err)
	}

	d.logger.Info(ctx, "Face detection complete: %d sampled frames", len(idx.frames))
	return idx, nil
}

func parseOutput(data []byte) (*FaceIndex, error) {
	var out detectorOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}

	idx := &FaceIndex{frames: make([]sampledFrame, 0, len(out.Frames))}
	for _, f := range out.Frames {
		sf := sampledFrame{time: f.Time}
		for _, face := range f.Faces {
			sf.faces = append(sf.faces, overlay.FaceRegion{
				Box:       overlay.Rect{X: face.X, Y: face.Y, W: face.W, H: face.H},
				FrameTime: f.Time,
			})
		}
		idx.frames = append(idx.frames, sf)
	}
	sort.Slice(idx.frames, func(i, j int) bool { return idx.frames[i].time < idx.frames[j].time })
	return idx, nil
}

// MarshalJSON serializes the index in the detector's wire format, so cached
// face data stays reviewable with the same schema the detector emits.
func (x *FaceIndex) MarshalJSON() ([]byte, error) {
	out := detectorOutput{Frames: make([]detectorFrame, 0, len(x.frames))}
	for _, sf := range x.frames {
		df := detectorFrame{Time: sf.time}
		for _, f := range sf.faces {
			df.Faces = append(df.Faces, struct {
				X int `json:"x"`
				Y int `json:"y"`
				W int `json:"w"`
				H int `json:"h"`
			}{f.Box.X, f.Box.Y, f.Box.W, f.Box.H})
		}
		out.Frames = append(out.Frames, df)
	}
	return json.Marshal(out)
}

func (x *FaceIndex) UnmarshalJSON(data []byte) error {
	parsed, err := parseOutput(data)
	if err != nil {
		return err
	}
	x.frames = parsed.frames
	return nil
}

// RegionsAt returns the face regions of the sampled frame nearest t, or nil
// when the video produced no samples.
func (x *FaceIndex) RegionsAt(t float64) []overlay.FaceRegion {
	if x == nil || len(x.frames) == 0 {
		return nil
	}

	i := sort.Search(len(x.frames), func(i int) bool { return x.frames[i].time >= t })
	if i == len(x.frames) {
		return x.frames[len(x.frames)-1].faces
	}
	if i == 0 {
		return x.frames[0].faces
	}
	if math.Abs(x.frames[i-1].time-t) <= math.Abs(x.frames[i].time-t) {
		return x.frames[i-1].faces
	}
	return x.frames[i].faces
}
