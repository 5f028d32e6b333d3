package processor

import (
	"context"
	"fmt"
	"strings"

	"github.com/reelforge/reelforge/internal/config"
	"github.com/reelforge/reelforge/internal/overlay"
	"github.com/reelforge/reelforge/internal/timeline"
)

const captionFontSize = 42

// imageClip pairs a planned image event with its generated file.
type imageClip struct {
	Event timeline.ImageEvent
	Path  string
}

// captionClip is one timed text overlay with its computed placement.
type captionClip struct {
	Start     float64
	End       float64
	Placement overlay.Placement
	Sentiment string
}

// renderVideo composites image events and captions onto the source video in a
// single ffmpeg pass. The audio stream passes through untouched so sync is
// never disturbed.
func (p *implProcessor) renderVideo(ctx context.Context, videoPath string, images []imageClip, captions []captionClip, info videoInfo, outputPath string) error {
	args := buildRenderArgs(videoPath, images, captions, info, p.cfg.FFmpeg, outputPath)

	p.logger.Info(ctx, "Rendering final video: %d image overlays, %d captions", len(images), len(captions))
	if _, err := p.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		return fmt.Errorf("ffmpeg render: %w", err)
	}
	p.logger.Info(ctx, "Render complete: %s", outputPath)
	return nil
}

func buildRenderArgs(videoPath string, images []imageClip, captions []captionClip, info videoInfo, cfg config.FFmpegConfig, outputPath string) []string {
	args := []string{"-y", "-i", videoPath}
	for _, img := range images {
		args = append(args, "-i", img.Path)
	}

	var filters []string
	cur := "[0:v]"

	for i, img := range images {
		scaled := fmt.Sprintf("[img%d]", i)
		filters = append(filters, fmt.Sprintf("[%d:v]scale=%d:%d%s", i+1, info.Width, info.Height, scaled))

		next := fmt.Sprintf("[v%d]", i)
		filters = append(filters, fmt.Sprintf(
			"%s%soverlay=0:0:enable='between(t,%.3f,%.3f)'%s",
			cur, scaled, img.Event.Time, img.Event.Time+img.Event.Duration, next,
		))
		cur = next
	}

	for i, c := range captions {
		next := fmt.Sprintf("[c%d]", i)
		filters = append(filters, fmt.Sprintf(
			"%sdrawtext=text='%s':x=%d:y=%d:fontsize=%d:fontcolor=%s:borderw=3:bordercolor=black:box=1:boxcolor=black@0.8:boxborderw=12:enable='between(t,%.3f,%.3f)'%s",
			cur,
			escapeDrawtext(c.Placement.Text),
			c.Placement.Position.X, c.Placement.Position.Y,
			captionFontSize,
			sentimentColor(c.Sentiment),
			c.Start, c.End,
			next,
		))
		cur = next
	}

	if len(filters) == 0 {
		// Nothing to composite; still re-encode so the output contract holds.
		args = append(args, "-map", "0:v")
	} else {
		args = append(args, "-filter_complex", strings.Join(filters, ";"), "-map", cur)
	}

	args = append(args,
		"-map", "0:a?",
		"-c:v", cfg.VideoCodec,
		"-preset", cfg.Preset,
		"-b:v", cfg.VideoBitrate,
		"-c:a", cfg.AudioCodec,
		"-b:a", cfg.AudioBitrate,
		outputPath,
	)
	return args
}

// escapeDrawtext escapes characters ffmpeg's drawtext filter treats specially
// inside a single-quoted text argument.
var drawtextEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`:`, `\:`,
	`%`, `\%`,
)

func escapeDrawtext(s string) string {
	return drawtextEscaper.Replace(s)
}

// sentimentColor maps the analyzer's sentiment label to a caption color.
func sentimentColor(sentiment string) string {
	switch sentiment {
	case "important":
		return "gold"
	case "happy":
		return "springgreen"
	case "excited":
		return "hotpink"
	case "sad":
		return "cornflowerblue"
	case "angry":
		return "orangered"
	default:
		return "white"
	}
}
