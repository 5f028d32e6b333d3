package processor

import (
	"context"
	"os"
)

// cleanupTempFile removes an intermediate file, logging rather than failing:
// leftover temp files never abort a run that otherwise succeeded.
func (p *implProcessor) cleanupTempFile(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		p.logger.Warn(ctx, "Failed to remove temp file %s: %v", path, err)
	}
}
