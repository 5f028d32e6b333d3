package logger

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Logger is the leveled logger carried through the pipeline.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...interface{})
	Info(ctx context.Context, msg string, args ...interface{})
	Warn(ctx context.Context, msg string, args ...interface{})
	Error(ctx context.Context, msg string, args ...interface{})

	// Section prints a banner separating pipeline phases in the log.
	Section(ctx context.Context, title string)
}

var levelRank = map[string]int{
	"debug": 0,
	"info":  1,
	"warn":  2,
	"error": 3,
}

type implLogger struct {
	logger *log.Logger
	level  int
}

// New creates a Logger writing to stdout at the given level.
func New(level string) Logger {
	return NewWithWriter(level, os.Stdout)
}

// NewWithFile creates a Logger that writes to stdout and mirrors everything
// to the log file at path, appending across runs. The returned closer must be
// closed when the pipeline finishes.
func NewWithFile(level, path string) (Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return NewWithWriter(level, io.MultiWriter(os.Stdout, f)), f, nil
}

// NewWithWriter creates a Logger writing to w. Pass an opened log file to
// mirror processing logs next to the output artifacts.
func NewWithWriter(level string, w io.Writer) Logger {
	rank, ok := levelRank[strings.ToLower(level)]
	if !ok {
		rank = levelRank["info"]
	}
	return &implLogger{
		logger: log.New(w, "", log.LstdFlags),
		level:  rank,
	}
}

func (l *implLogger) shouldLog(level string) bool {
	rank, ok := levelRank[level]
	if !ok {
		return true
	}
	return rank >= l.level
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog("debug") {
		l.logger.Printf("[DEBUG] "+msg, args...)
	}
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog("info") {
		l.logger.Printf("[INFO] "+msg, args...)
	}
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog("warn") {
		l.logger.Printf("[WARN] "+msg, args...)
	}
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog("error") {
		l.logger.Printf("[ERROR] "+msg, args...)
	}
}

func (l *implLogger) Section(ctx context.Context, title string) {
	if !l.shouldLog("info") {
		return
	}
	bar := strings.Repeat("=", 50)
	l.logger.Printf("[INFO] %s", bar)
	l.logger.Printf("[INFO] %s", title)
	l.logger.Printf("[INFO] %s", bar)
}
