package analyzer

import (
	"fmt"

	"github.com/reelforge/reelforge/internal/config"
	"github.com/reelforge/reelforge/internal/logger"
)

type implAnalyzer struct {
	apiKeys    []string
	currentKey int
	model      string
	cfg        config.AnalysisConfig
	logger     logger.Logger
}

// New creates an Analyzer that rotates through the supplied Gemini API keys
// when one is rate limited.
func New(geminiCfg config.GeminiConfig, analysisCfg config.AnalysisConfig, log logger.Logger) (Analyzer, error) {
	if len(geminiCfg.APIKeys) == 0 {
		return nil, fmt.Errorf("analyzer: at least one Gemini API key required (set GEMINI_API_KEYS)")
	}
	return &implAnalyzer{
		apiKeys: geminiCfg.APIKeys,
		model:   geminiCfg.Model,
		cfg:     analysisCfg,
		logger:  log,
	}, nil
}
