package detect

import "context"

// Detector samples a video for face bounding boxes.
type Detector interface {
	Detect(ctx context.Context, videoPath string) (*FaceIndex, error)
}
