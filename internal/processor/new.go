package processor

import (
	"github.com/reelforge/reelforge/internal/analyzer"
	"github.com/reelforge/reelforge/internal/cache"
	"github.com/reelforge/reelforge/internal/config"
	"github.com/reelforge/reelforge/internal/detect"
	"github.com/reelforge/reelforge/internal/imagegen"
	"github.com/reelforge/reelforge/internal/logger"
	"github.com/reelforge/reelforge/pkg/executor"
)

type implProcessor struct {
	cfg       *config.Config
	executor  executor.Executor
	analyzer  analyzer.Analyzer
	generator imagegen.Generator
	detector  detect.Detector
	cache     *cache.Cache
	logger    logger.Logger
	skipCache bool
}

// New creates a Processor wired to its external collaborators.
func New(
	cfg *config.Config,
	exec executor.Executor,
	an analyzer.Analyzer,
	gen imagegen.Generator,
	det detect.Detector,
	c *cache.Cache,
	log logger.Logger,
	skipCache bool,
) Processor {
	return &implProcessor{
		cfg:       cfg,
		executor:  exec,
		analyzer:  an,
		generator: gen,
		detector:  det,
		cache:     c,
		logger:    log,
		skipCache: skipCache,
	}
}
