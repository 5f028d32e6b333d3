package imagegen

import "context"

// Generator turns an image prompt into a PNG on disk.
type Generator interface {
	Generate(ctx context.Context, prompt string, destDir string) (string, error)
}
