// Package prompt talks to the prompt-generation service. The service
// consumes recent journal context and returns a single writing prompt;
// the client never retries on its own.
package prompt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"tableflip.dev/saga/pkg/entry"
	"tableflip.dev/saga/pkg/store"
)

// Request is the generation request payload.
type Request struct {
	PromptType        entry.PromptType `json:"promptType"`
	RecentEntriesText string           `json:"recentEntriesText"`
	ThemeHint         string           `json:"themeHint,omitempty"`
	Model             string           `json:"model,omitempty"`
}

// Response carries either a prompt or a service-side error message.
type Response struct {
	Prompt string `json:"prompt,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Client calls the prompt-generation endpoint.
type Client struct {
	cfg  store.PromptService
	http *http.Client
}

// NewClient builds a client for the configured service.
func NewClient(cfg store.PromptService) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 60 * time.Second},
	}
}

// Generate requests one prompt. A service error payload is surfaced as
// a regular error; callers convert it into a user-visible notice.
func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	if c.cfg.URL == "" {
		return "", errors.New("prompt: no service url configured")
	}
	if req.Model == "" {
		req.Model = c.cfg.Model
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("prompt: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("prompt: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("prompt: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("prompt: service returned %d: %s", resp.StatusCode, snippet)
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("prompt: decode response: %w", err)
	}
	if out.Error != "" {
		return "", fmt.Errorf("prompt: %s", out.Error)
	}
	if out.Prompt == "" {
		return "", errors.New("prompt: empty response")
	}
	return out.Prompt, nil
}
