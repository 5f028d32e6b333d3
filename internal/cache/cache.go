package cache

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/reelforge/reelforge/internal/analyzer"
	"github.com/reelforge/reelforge/internal/detect"
	"github.com/reelforge/reelforge/internal/timeline"
)

// Cache stores expensive pipeline results (transcripts, analyses, generated
// images, face detection) as content-addressed files, so interrupted runs
// resume without repeating API calls.
type Cache struct {
	transcriptDir string
	analysisDir   string
	imageDir      string
	faceDir       string
}

type envelope struct {
	Source    string          `json:"source"`
	Timestamp string          `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// New creates the cache directory layout under dir.
func New(dir string) (*Cache, error) {
	c := &Cache{
		transcriptDir: filepath.Join(dir, "transcriptions"),
		analysisDir:   filepath.Join(dir, "analysis"),
		imageDir:      filepath.Join(dir, "images"),
		faceDir:       filepath.Join(dir, "face_detection"),
	}
	for _, d := range []string{c.transcriptDir, c.analysisDir, c.imageDir, c.faceDir} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return nil, fmt.Errorf("create cache dir: %w", err)
		}
	}
	return c, nil
}

func key(identifier string) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(identifier)))
}

func (c *Cache) save(dir, identifier string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	env, err := json.MarshalIndent(envelope{
		Source:    identifier,
		Timestamp: time.Now().Format(time.RFC3339),
		Data:      data,
	}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, key(identifier)+".json"), env, 0644)
}

func (c *Cache) load(dir, identifier string, v interface{}) bool {
	raw, err := os.ReadFile(filepath.Join(dir, key(identifier)+".json"))
	if err != nil {
		return false
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return false
	}
	return json.Unmarshal(env.Data, v) == nil
}

func (c *Cache) SaveTranscript(videoPath string, segments []timeline.Segment) error {
	return c.save(c.transcriptDir, videoPath, segments)
}

func (c *Cache) LoadTranscript(videoPath string) ([]timeline.Segment, bool) {
	var segments []timeline.Segment
	if !c.load(c.transcriptDir, videoPath, &segments) {
		return nil, false
	}
	return segments, true
}

func (c *Cache) SaveAnalyses(videoPath string, analyses []analyzer.Analysis) error {
	return c.save(c.analysisDir, videoPath, analyses)
}

func (c *Cache) LoadAnalyses(videoPath string) ([]analyzer.Analysis, bool) {
	var analyses []analyzer.Analysis
	if !c.load(c.analysisDir, videoPath, &analyses) {
		return nil, false
	}
	return analyses, true
}

func (c *Cache) SaveFaces(videoPath string, idx *detect.FaceIndex) error {
	return c.save(c.faceDir, videoPath, idx)
}

func (c *Cache) LoadFaces(videoPath string) (*detect.FaceIndex, bool) {
	var idx detect.FaceIndex
	if !c.load(c.faceDir, videoPath, &idx) {
		return nil, false
	}
	return &idx, true
}

// SaveImage copies a generated image into the cache, keyed by its prompt.
func (c *Cache) SaveImage(prompt, imagePath string) (string, error) {
	dst := filepath.Join(c.imageDir, key(prompt)+filepath.Ext(imagePath))
	if err := copyFile(imagePath, dst); err != nil {
		return "", fmt.Errorf("cache image: %w", err)
	}
	return dst, nil
}

// LoadImage returns the cached image path for a prompt, if present.
func (c *Cache) LoadImage(prompt string) (string, bool) {
	for _, ext := range []string{".png", ".jpg", ".jpeg", ".webp"} {
		p := filepath.Join(c.imageDir, key(prompt)+ext)
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}

// Info reports entry counts per bucket.
func (c *Cache) Info() map[string]int {
	count := func(dir, pattern string) int {
		matches, _ := filepath.Glob(filepath.Join(dir, pattern))
		return len(matches)
	}
	return map[string]int{
		"transcriptions": count(c.transcriptDir, "*.json"),
		"analysis":       count(c.analysisDir, "*.json"),
		"images":         count(c.imageDir, "*.png") + count(c.imageDir, "*.jpg"),
		"face_detection": count(c.faceDir, "*.json"),
	}
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
