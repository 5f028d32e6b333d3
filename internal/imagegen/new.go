package imagegen

import (
	"fmt"
	"net/http"
	"time"

	"github.com/reelforge/reelforge/internal/config"
	"github.com/reelforge/reelforge/internal/logger"
)

const defaultBaseURL = "https://api.openai.com/v1"

type implGenerator struct {
	apiKey  string
	model   string
	size    string
	quality string
	baseURL string
	client  *http.Client
	logger  logger.Logger
}

// New creates a Generator backed by the OpenAI images API.
func New(cfg config.OpenAIConfig, log logger.Logger) (Generator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("imagegen: OpenAI API key required (set OPENAI_API_KEY)")
	}
	return &implGenerator{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		size:    cfg.Size,
		quality: cfg.Quality,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 5 * time.Minute},
		logger:  log,
	}, nil
}
