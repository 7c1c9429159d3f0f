// services/textgen.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

// TextGenerator calls the external copy-improvement API used for bios and
// motivational quotes. The contract is deliberately thin: submit text,
// receive improved text; any upstream detail is collapsed into a generic
// error for the caller to surface.
type TextGenerator struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewTextGenerator(baseURL, apiKey string) *TextGenerator {
	return &TextGenerator{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// NewTextGeneratorFromEnv reads TEXTGEN_API_URL and TEXTGEN_API_KEY.
// Returns nil when no URL is configured; callers treat that as the feature
// being disabled.
func NewTextGeneratorFromEnv() *TextGenerator {
	url := os.Getenv("TEXTGEN_API_URL")
	if url == "" {
		return nil
	}
	return NewTextGenerator(url, os.Getenv("TEXTGEN_API_KEY"))
}

type improveRequest struct {
	Kind string `json:"kind"` // bio or quote
	Text string `json:"text"`
}

type improveResponse struct {
	Text string `json:"text"`
}

// Improve submits text and returns the improved version.
func (g *TextGenerator) Improve(ctx context.Context, kind, text string) (string, error) {
	body, err := json.Marshal(improveRequest{Kind: kind, Text: text})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/improve", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("text generation failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("text generation failed: status %d", resp.StatusCode)
	}

	var out improveResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("text generation failed: %w", err)
	}
	if out.Text == "" {
		return "", fmt.Errorf("text generation failed: empty response")
	}
	return out.Text, nil
}
