package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/reelforge/reelforge/internal/analyzer"
	"github.com/reelforge/reelforge/internal/cache"
	"github.com/reelforge/reelforge/internal/config"
	"github.com/reelforge/reelforge/internal/detect"
	"github.com/reelforge/reelforge/internal/imagegen"
	"github.com/reelforge/reelforge/internal/logger"
	"github.com/reelforge/reelforge/internal/processor"
	"github.com/reelforge/reelforge/internal/watcher"
	"github.com/reelforge/reelforge/pkg/executor"
)

func main() {
	var (
		inputPath  = flag.String("input", "", "input video file (one-shot mode)")
		configPath = flag.String("config", "config.yaml", "path to config file")
		skipCache  = flag.Bool("skip-cache", false, "ignore cached transcripts, analyses, and images")
		watchMode  = flag.Bool("watch", false, "watch the input directory instead of processing one file")
		logLevel   = flag.String("log-level", "", "override configured log level (debug|info|warn|error)")
	)
	flag.Parse()

	if err := run(*inputPath, *configPath, *skipCache, *watchMode, *logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(inputPath, configPath string, skipCache, watchMode bool, logLevel string) error {
	ctx := context.Background()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	log := logger.New(cfg.Logging.Level)
	if cfg.Logging.File != "" {
		fileLog, closer, err := logger.NewWithFile(cfg.Logging.Level, cfg.Logging.File)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer closer.Close()
		log = fileLog
	}
	log.Section(ctx, "reelforge: translated, illustrated videos")

	for _, dir := range []string{cfg.Paths.Output, cfg.Paths.Temp} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	c, err := cache.New(cfg.Paths.Cache)
	if err != nil {
		return fmt.Errorf("init cache: %w", err)
	}
	log.Info(ctx, "Cache: %v", c.Info())

	an, err := analyzer.New(cfg.Gemini, cfg.Analysis, log)
	if err != nil {
		return err
	}
	gen, err := imagegen.New(cfg.OpenAI, log)
	if err != nil {
		return err
	}

	exec := executor.New()
	det := detect.New(cfg.Detector, exec, log)
	proc := processor.New(cfg, exec, an, gen, det, c, log, skipCache)

	if !watchMode {
		if inputPath == "" {
			return fmt.Errorf("-input is required (or use -watch)")
		}
		if _, err := os.Stat(inputPath); err != nil {
			return fmt.Errorf("input video not found: %s", inputPath)
		}
		return proc.Process(ctx, inputPath)
	}

	if err := os.MkdirAll(cfg.Paths.Input, 0755); err != nil {
		return fmt.Errorf("create input directory: %w", err)
	}

	w, err := watcher.New(cfg.Paths.Input, proc.Process, log, cfg.Performance.MaxConcurrent)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := w.Start(ctx); err != nil && err != context.Canceled {
			errChan <- err
		}
	}()

	log.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
	log.Info(ctx, "Press Ctrl+C to stop")

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		return fmt.Errorf("watcher: %w", err)
	}

	cancel()
	log.Info(ctx, "Pipeline stopped")
	return nil
}
