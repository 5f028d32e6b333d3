package config

import "fmt"

type Config struct {
	Whisper     WhisperConfig     `yaml:"whisper"`
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	OpenAI      OpenAIConfig      `yaml:"openai"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	Planner     PlannerConfig     `yaml:"planner"`
	Analysis    AnalysisConfig    `yaml:"analysis"`
	Detector    DetectorConfig    `yaml:"detector"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type WhisperConfig struct {
	ModelPath  string `yaml:"model_path"`
	BinaryPath string `yaml:"binary_path"`
	Language   string `yaml:"language"`
	Threads    int    `yaml:"threads"`
}

type FFmpegConfig struct {
	VideoCodec   string `yaml:"video_codec"`
	AudioCodec   string `yaml:"audio_codec"`
	VideoBitrate string `yaml:"video_bitrate"`
	AudioBitrate string `yaml:"audio_bitrate"`
	Preset       string `yaml:"preset"`
}

type OpenAIConfig struct {
	// APIKey comes from OPENAI_API_KEY, never from the yaml file.
	APIKey  string `yaml:"-"`
	Model   string `yaml:"model"`
	Size    string `yaml:"size"`
	Quality string `yaml:"quality"`
}

type GeminiConfig struct {
	// APIKeys come from GEMINI_API_KEYS (comma-separated), never from yaml.
	APIKeys []string `yaml:"-"`
	Model   string   `yaml:"model"`
}

type PlannerConfig struct {
	MinImportanceScore   float64 `yaml:"min_importance_score"`
	MaxImagesPerWindow   int     `yaml:"max_images_per_window"`
	WindowSeconds        float64 `yaml:"window_seconds"`
	ImageDurationSeconds float64 `yaml:"image_duration_seconds"`
}

type AnalysisConfig struct {
	MaxCandidates   int     `yaml:"max_candidates"`
	MinGuaranteed   int     `yaml:"min_guaranteed"`
	ContextSegments int     `yaml:"context_segments"`
	MaxTextLength   int     `yaml:"max_text_length"`
	PhraseSeconds   float64 `yaml:"phrase_seconds"`
}

type DetectorConfig struct {
	Command        string   `yaml:"command"`
	Args           []string `yaml:"args"`
	IntervalFrames int      `yaml:"interval_frames"`
}

type PathsConfig struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
	Cache  string `yaml:"cache"`
	Temp   string `yaml:"temp"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

func (c *Config) Validate() error {
	if c.Whisper.BinaryPath == "" {
		return fmt.Errorf("whisper.binary_path is required")
	}
	if c.Whisper.ModelPath == "" {
		return fmt.Errorf("whisper.model_path is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}
	if c.Planner.MaxImagesPerWindow < 0 {
		return fmt.Errorf("planner.max_images_per_window must not be negative")
	}
	if c.Planner.WindowSeconds < 0 || c.Planner.ImageDurationSeconds < 0 {
		return fmt.Errorf("planner window and image duration must not be negative")
	}

	if c.Paths.Input == "" {
		c.Paths.Input = "data/input"
	}
	if c.Paths.Cache == "" {
		c.Paths.Cache = "data/cache"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Whisper.Language == "" {
		c.Whisper.Language = "hi"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 8
	}
	if c.FFmpeg.VideoCodec == "" {
		c.FFmpeg.VideoCodec = "libx264"
	}
	if c.FFmpeg.AudioCodec == "" {
		c.FFmpeg.AudioCodec = "aac"
	}
	if c.FFmpeg.VideoBitrate == "" {
		c.FFmpeg.VideoBitrate = "5000k"
	}
	if c.FFmpeg.AudioBitrate == "" {
		c.FFmpeg.AudioBitrate = "192k"
	}
	if c.FFmpeg.Preset == "" {
		c.FFmpeg.Preset = "medium"
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "dall-e-3"
	}
	if c.OpenAI.Size == "" {
		c.OpenAI.Size = "1024x1024"
	}
	if c.OpenAI.Quality == "" {
		c.OpenAI.Quality = "standard"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Planner.MinImportanceScore == 0 {
		c.Planner.MinImportanceScore = 8
	}
	if c.Planner.MaxImagesPerWindow == 0 {
		c.Planner.MaxImagesPerWindow = 5
	}
	if c.Planner.WindowSeconds == 0 {
		c.Planner.WindowSeconds = 120
	}
	if c.Planner.ImageDurationSeconds == 0 {
		c.Planner.ImageDurationSeconds = 1.0
	}
	if c.Analysis.MaxCandidates == 0 {
		c.Analysis.MaxCandidates = 5
	}
	if c.Analysis.MinGuaranteed == 0 {
		c.Analysis.MinGuaranteed = 3
	}
	if c.Analysis.ContextSegments == 0 {
		c.Analysis.ContextSegments = 2
	}
	if c.Analysis.MaxTextLength == 0 {
		c.Analysis.MaxTextLength = 60
	}
	if c.Analysis.PhraseSeconds == 0 {
		c.Analysis.PhraseSeconds = 5.0
	}
	if c.Detector.Command == "" {
		c.Detector.Command = "python3"
		if len(c.Detector.Args) == 0 {
			c.Detector.Args = []string{"scripts/detect_faces.py"}
		}
	}
	if c.Detector.IntervalFrames == 0 {
		c.Detector.IntervalFrames = 5
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}

	return nil
}
