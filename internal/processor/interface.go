package processor

import "context"

// Processor runs the full translate-illustrate-render pipeline on one video.
type Processor interface {
	Process(ctx context.Context, videoPath string) error
}
