package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/reelforge/reelforge/internal/analyzer"
	"github.com/reelforge/reelforge/internal/overlay"
	"github.com/reelforge/reelforge/internal/timeline"
)

// Process runs the whole pipeline for one video: translate, score, generate,
// plan, place, render, report.
func (p *implProcessor) Process(ctx context.Context, videoPath string) error {
	startTime := time.Now()
	stem := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))

	p.logger.Section(ctx, fmt.Sprintf("Processing video: %s", filepath.Base(videoPath)))

	// Phase 1: audio extraction and translation.
	p.logger.Section(ctx, "Phase 1: Audio Extraction & Translation")
	segments, err := p.transcript(ctx, videoPath)
	if err != nil {
		return fmt.Errorf("transcript: %w", err)
	}
	if len(segments) == 0 {
		p.logger.Warn(ctx, "No speech segments found; output will carry no overlays")
	}
	phrases := groupPhrases(segments, p.cfg.Analysis.PhraseSeconds)
	p.logger.Info(ctx, "Grouped %d segments into %d caption phrases", len(segments), len(phrases))

	// Phase 2: importance scoring.
	p.logger.Section(ctx, "Phase 2: Content Analysis")
	analyses, err := p.analyses(ctx, videoPath, segments)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}
	candidates := analyzer.SelectCandidates(analyses, p.cfg.Analysis.MaxCandidates, p.cfg.Analysis.MinGuaranteed)
	p.logger.Info(ctx, "%d segments selected as image candidates", len(candidates))

	// Phase 3: face detection.
	p.logger.Section(ctx, "Phase 3: Face Detection")
	faces, err := p.faces(ctx, videoPath)
	if err != nil {
		return fmt.Errorf("detect faces: %w", err)
	}

	// Phase 4: image generation. Failed generations drop the candidate here,
	// before planning, so every planned event has an image to show.
	p.logger.Section(ctx, "Phase 4: Image Generation")
	candidates, imagePaths := p.generateImages(ctx, candidates)

	// Phase 5: timeline planning and overlay placement.
	p.logger.Section(ctx, "Phase 5: Timeline & Overlay Placement")
	events, err := timeline.Plan(candidates, timeline.PlannerConfig{
		MinImportanceScore:   p.cfg.Planner.MinImportanceScore,
		MaxImagesPerWindow:   p.cfg.Planner.MaxImagesPerWindow,
		WindowSeconds:        p.cfg.Planner.WindowSeconds,
		ImageDurationSeconds: p.cfg.Planner.ImageDurationSeconds,
	})
	if err != nil {
		return fmt.Errorf("plan timeline: %w", err)
	}
	p.logger.Info(ctx, "Planned %d image events from %d candidates", len(events), len(candidates))

	info, err := p.probeVideo(ctx, videoPath)
	if err != nil {
		return fmt.Errorf("probe video: %w", err)
	}

	images := attachImages(events, imagePaths)
	captions, fallbacks := p.placeCaptions(ctx, phrases, faces, info)

	// Persist the reviewable timeline artifact.
	if err := os.MkdirAll(p.cfg.Paths.Output, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	artifactPath := filepath.Join(p.cfg.Paths.Output, stem+"_timeline.json")
	if err := p.exportArtifact(artifactPath, events, faces, info); err != nil {
		return fmt.Errorf("export timeline: %w", err)
	}
	p.logger.Info(ctx, "Timeline artifact written: %s", artifactPath)

	// Phase 6: final assembly.
	p.logger.Section(ctx, "Phase 6: Final Video Assembly")
	outputPath := filepath.Join(p.cfg.Paths.Output, stem+"_edited.mp4")
	if err := p.renderVideo(ctx, videoPath, images, captions, info, outputPath); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	reportPath := filepath.Join(p.cfg.Paths.Output, stem+"_report.txt")
	if err := writeReport(reportPath, runStats{
		Input:           videoPath,
		Output:          outputPath,
		Segments:        len(segments),
		Phrases:         len(phrases),
		ImageCandidates: len(candidates),
		ImagesPlanned:   len(events),
		ImagesRendered:  len(images),
		FallbackCaption: fallbacks,
		Elapsed:         time.Since(startTime),
	}); err != nil {
		p.logger.Warn(ctx, "Failed to write report: %v", err)
	}

	p.logger.Section(ctx, "Processing Complete")
	p.logger.Info(ctx, "Output video: %s", outputPath)
	p.logger.Info(ctx, "Processing time: %s", time.Since(startTime).Round(time.Second))
	return nil
}

// transcript returns translated segments, from cache when allowed.
func (p *implProcessor) transcript(ctx context.Context, videoPath string) ([]timeline.Segment, error) {
	if !p.skipCache {
		if segments, ok := p.cache.LoadTranscript(videoPath); ok {
			p.logger.Info(ctx, "Using cached transcript (%d segments)", len(segments))
			return segments, nil
		}
	}

	if err := os.MkdirAll(p.cfg.Paths.Temp, 0755); err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	audioPath, err := p.extractAudio(ctx, videoPath)
	if err != nil {
		return nil, err
	}
	defer p.cleanupTempFile(ctx, audioPath)

	segments, err := p.translate(ctx, audioPath)
	if err != nil {
		return nil, err
	}

	if err := p.cache.SaveTranscript(videoPath, segments); err != nil {
		p.logger.Warn(ctx, "Failed to cache transcript: %v", err)
	}
	return segments, nil
}

func (p *implProcessor) analyses(ctx context.Context, videoPath string, segments []timeline.Segment) ([]analyzer.Analysis, error) {
	if !p.skipCache {
		if analyses, ok := p.cache.LoadAnalyses(videoPath); ok {
			p.logger.Info(ctx, "Using cached analysis (%d segments)", len(analyses))
			return analyses, nil
		}
	}

	analyses, err := p.analyzer.ScoreSegments(ctx, segments)
	if err != nil {
		return nil, err
	}
	if err := p.cache.SaveAnalyses(videoPath, analyses); err != nil {
		p.logger.Warn(ctx, "Failed to cache analysis: %v", err)
	}
	return analyses, nil
}

func (p *implProcessor) faces(ctx context.Context, videoPath string) (faceSource, error) {
	if !p.skipCache {
		if idx, ok := p.cache.LoadFaces(videoPath); ok {
			p.logger.Info(ctx, "Using cached face detection data")
			return idx, nil
		}
	}

	idx, err := p.detector.Detect(ctx, videoPath)
	if err != nil {
		return nil, err
	}
	if err := p.cache.SaveFaces(videoPath, idx); err != nil {
		p.logger.Warn(ctx, "Failed to cache face data: %v", err)
	}
	return idx, nil
}

// generateImages resolves an image file per candidate, consulting the cache
// first. Candidates whose generation fails are dropped with a warning.
func (p *implProcessor) generateImages(ctx context.Context, candidates []timeline.Segment) ([]timeline.Segment, map[float64]string) {
	kept := candidates[:0]
	paths := make(map[float64]string, len(candidates))

	for _, cand := range candidates {
		if cand.Prompt == "" {
			continue
		}

		if !p.skipCache {
			if path, ok := p.cache.LoadImage(cand.Prompt); ok {
				p.logger.Info(ctx, "Using cached image for segment at %.1fs", cand.Start)
				paths[cand.Start] = path
				kept = append(kept, cand)
				continue
			}
		}

		path, err := p.generator.Generate(ctx, cand.Prompt, p.cfg.Paths.Temp)
		if err != nil {
			p.logger.Warn(ctx, "Image generation failed for segment at %.1fs, dropping: %v", cand.Start, err)
			continue
		}
		if cached, err := p.cache.SaveImage(cand.Prompt, path); err == nil {
			p.cleanupTempFile(ctx, path)
			path = cached
		}
		paths[cand.Start] = path
		kept = append(kept, cand)
	}

	return kept, paths
}

// faceSource is what the placement pass needs from face detection.
type faceSource interface {
	RegionsAt(t float64) []overlay.FaceRegion
}

// attachImages pairs each planned event with its generated image file.
func attachImages(events []timeline.ImageEvent, paths map[float64]string) []imageClip {
	images := make([]imageClip, 0, len(events))
	for _, ev := range events {
		path, ok := paths[ev.Time]
		if !ok {
			continue
		}
		images = append(images, imageClip{Event: ev, Path: path})
	}
	return images
}

// placeCaptions computes a face-avoiding placement per phrase. Returns the
// caption clips and how many landed on the fallback position with a face
// underneath (the degraded outcome, logged but never fatal).
func (p *implProcessor) placeCaptions(ctx context.Context, phrases []phrase, faces faceSource, info videoInfo) ([]captionClip, int) {
	candidates := overlay.DefaultCandidates(info.Width, info.Height)
	fallback := overlay.DefaultFallback(info.Width, info.Height)

	clips := make([]captionClip, 0, len(phrases))
	fallbacks := 0

	for _, ph := range phrases {
		caption, err := p.analyzer.Summarize(ctx, ph.Text)
		if err != nil {
			p.logger.Warn(ctx, "Caption summarization failed at %.1fs, using raw text: %v", ph.Start, err)
			caption.Text = ph.Text
			caption.Sentiment = "neutral"
		}

		mid := (ph.Start + ph.End) / 2
		placement := overlay.Place(caption.Text, faces.RegionsAt(mid), candidates, fallback)
		if !placement.FaceAvoided {
			fallbacks++
			p.logger.Warn(ctx, "Caption at %.1fs overlaps a face region; no clear position available", ph.Start)
		}

		clips = append(clips, captionClip{
			Start:     ph.Start,
			End:       ph.End,
			Placement: placement,
			Sentiment: caption.Sentiment,
		})
	}

	return clips, fallbacks
}

// exportArtifact writes the reviewable timeline JSON, computing the text
// placement per image event against the faces at that instant.
func (p *implProcessor) exportArtifact(path string, events []timeline.ImageEvent, faces faceSource, info videoInfo) error {
	candidates := overlay.DefaultCandidates(info.Width, info.Height)
	fallback := overlay.DefaultFallback(info.Width, info.Height)
	placements := make([]overlay.Placement, 0, len(events))
	for _, ev := range events {
		placements = append(placements, overlay.Place(ev.Segment.Text, faces.RegionsAt(ev.Time), candidates, fallback))
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return timeline.WriteArtifact(f, events, placements)
}
