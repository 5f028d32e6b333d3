package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// extractAudio pulls a 16kHz mono WAV out of the video, the format whisper
// expects. The file lands in the temp dir under a per-run unique name.
func (p *implProcessor) extractAudio(ctx context.Context, videoPath string) (string, error) {
	stem := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	audioPath := filepath.Join(p.cfg.Paths.Temp, fmt.Sprintf("%s_%s.wav", stem, uuid.NewString()[:8]))

	p.logger.Info(ctx, "Extracting audio: %s", videoPath)

	args := []string{
		"-i", videoPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-y",
		audioPath,
	}
	if _, err := p.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		return "", fmt.Errorf("ffmpeg extract audio: %w", err)
	}

	p.logger.Info(ctx, "Audio extracted: %s", audioPath)
	return audioPath, nil
}

// videoInfo is the frame geometry and duration the renderer and placer need.
type videoInfo struct {
	Width    int
	Height   int
	FPS      float64
	Duration float64
}

type ffprobeOutput struct {
	Streams []struct {
		Width      int    `json:"width"`
		Height     int    `json:"height"`
		RFrameRate string `json:"r_frame_rate"`
		Duration   string `json:"duration"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// probeVideo reads stream metadata with ffprobe.
func (p *implProcessor) probeVideo(ctx context.Context, videoPath string) (videoInfo, error) {
	args := []string{
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height,r_frame_rate,duration",
		"-show_entries", "format=duration",
		"-of", "json",
		videoPath,
	}
	out, err := p.executor.Execute(ctx, "ffprobe", args...)
	if err != nil {
		return videoInfo{}, fmt.Errorf("ffprobe: %w", err)
	}
	return parseProbeOutput([]byte(out))
}

func parseProbeOutput(data []byte) (videoInfo, error) {
	var probe ffprobeOutput
	if err := json.Unmarshal(data, &probe); err != nil {
		return videoInfo{}, fmt.Errorf("parse ffprobe output: %w", err)
	}
	if len(probe.Streams) == 0 {
		return videoInfo{}, fmt.Errorf("ffprobe: no video stream")
	}

	s := probe.Streams[0]
	info := videoInfo{Width: s.Width, Height: s.Height}

	if parts := strings.SplitN(s.RFrameRate, "/", 2); len(parts) == 2 {
		num, err1 := strconv.ParseFloat(parts[0], 64)
		den, err2 := strconv.ParseFloat(parts[1], 64)
		if err1 == nil && err2 == nil && den != 0 {
			info.FPS = num / den
		}
	}

	dur := s.Duration
	if dur == "" {
		dur = probe.Format.Duration
	}
	if dur != "" {
		if d, err := strconv.ParseFloat(dur, 64); err == nil {
			info.Duration = d
		}
	}

	if info.Width <= 0 || info.Height <= 0 {
		return videoInfo{}, fmt.Errorf("ffprobe: missing frame dimensions")
	}
	return info, nil
}
