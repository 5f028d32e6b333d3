package detect

import (
	"github.com/reelforge/reelforge/internal/config"
	"github.com/reelforge/reelforge/internal/logger"
	"github.com/reelforge/reelforge/pkg/executor"
)

type implDetector struct {
	cfg      config.DetectorConfig
	executor executor.Executor
	logger   logger.Logger
}

// New creates a Detector that shells out to the configured detection command.
func New(cfg config.DetectorConfig, exec executor.Executor, log logger.Logger) Detector {
	return &implDetector{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}
