package config

import (
	"os"
	"testing"
)

func validConfig() Config {
	return Config{
		Whisper: WhisperConfig{
			ModelPath:  "models/ggml-large-v3.bin",
			BinaryPath: "./whisper",
		},
		Paths: PathsConfig{
			Output: "data/output",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid config", func(c *Config) {}, false},
		{"missing model path", func(c *Config) { c.Whisper.ModelPath = "" }, true},
		{"missing binary path", func(c *Config) { c.Whisper.BinaryPath = "" }, true},
		{"missing output path", func(c *Config) { c.Paths.Output = "" }, true},
		{"negative rate cap", func(c *Config) { c.Planner.MaxImagesPerWindow = -1 }, true},
		{"negative window", func(c *Config) { c.Planner.WindowSeconds = -5 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Planner.MaxImagesPerWindow != 5 {
		t.Errorf("MaxImagesPerWindow = %d, want 5", cfg.Planner.MaxImagesPerWindow)
	}
	if cfg.Planner.WindowSeconds != 120 {
		t.Errorf("WindowSeconds = %g, want 120", cfg.Planner.WindowSeconds)
	}
	if cfg.Planner.ImageDurationSeconds != 1.0 {
		t.Errorf("ImageDurationSeconds = %g, want 1.0", cfg.Planner.ImageDurationSeconds)
	}
	if cfg.Planner.MinImportanceScore != 8 {
		t.Errorf("MinImportanceScore = %g, want 8", cfg.Planner.MinImportanceScore)
	}
	if cfg.OpenAI.Model != "dall-e-3" {
		t.Errorf("OpenAI.Model = %q, want dall-e-3", cfg.OpenAI.Model)
	}
	if cfg.Gemini.Model != "gemini-2.5-flash" {
		t.Errorf("Gemini.Model = %q, want gemini-2.5-flash", cfg.Gemini.Model)
	}
	if cfg.Detector.Command == "" {
		t.Error("Detector.Command not defaulted")
	}
}

func TestLoad(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	content := `
whisper:
  model_path: "models/ggml-large-v3.bin"
  binary_path: "./whisper"

planner:
  min_importance_score: 7
  max_images_per_window: 4
  window_seconds: 90
  image_duration_seconds: 1.5

paths:
  input: "data/input"
  output: "data/output"

logging:
  level: "debug"
`

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("GEMINI_API_KEYS", "key-a, key-b")

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Planner.MaxImagesPerWindow != 4 {
		t.Errorf("MaxImagesPerWindow = %d, want 4", cfg.Planner.MaxImagesPerWindow)
	}
	if cfg.Planner.ImageDurationSeconds != 1.5 {
		t.Errorf("ImageDurationSeconds = %g, want 1.5", cfg.Planner.ImageDurationSeconds)
	}
	if cfg.OpenAI.APIKey != "sk-test" {
		t.Errorf("OpenAI.APIKey = %q, want sk-test", cfg.OpenAI.APIKey)
	}
	if len(cfg.Gemini.APIKeys) != 2 || cfg.Gemini.APIKeys[1] != "key-b" {
		t.Errorf("Gemini.APIKeys = %v, want [key-a key-b]", cfg.Gemini.APIKeys)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	if _, err := Load("nonexistent.yaml"); err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}
