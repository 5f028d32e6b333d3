package imagegen

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

type generationRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	Quality        string `json:"quality"`
	ResponseFormat string `json:"response_format"`
}

type generationResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
	} `json:"data"`
}

// Generate requests one image for the prompt and writes it to destDir as PNG,
// named by the prompt's digest. Returns the written file path.
func (g *implGenerator) Generate(ctx context.Context, prompt string, destDir string) (string, error) {
	g.logger.Info(ctx, "Generating image: %.60s...", prompt)

	payload, err := json.Marshal(generationRequest{
		Model:          g.model,
		Prompt:         prompt,
		N:              1,
		Size:           g.size,
		Quality:        g.quality,
		ResponseFormat: "b64_json",
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/images/generations", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("images request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("images api http %d: %s", resp.StatusCode, body)
	}

	var gr generationResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(gr.Data) == 0 || gr.Data[0].B64JSON == "" {
		return "", fmt.Errorf("images api returned no image data")
	}

	raw, err := base64.StdEncoding.DecodeString(gr.Data[0].B64JSON)
	if err != nil {
		return "", fmt.Errorf("decode image payload: %w", err)
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("create image dir: %w", err)
	}
	path := filepath.Join(destDir, fmt.Sprintf("%x.png", md5.Sum([]byte(prompt))))
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}

	g.logger.Debug(ctx, "Image written: %s (%d bytes)", path, len(raw))
	return path, nil
}
