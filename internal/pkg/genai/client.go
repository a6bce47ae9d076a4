package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the Google Generative Language API base URL
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	// DefaultModel is the default text-generation model
	DefaultModel = "gemini-1.5-flash"
)

// Client calls the text-generation API. It backs the content moderation
// gateway, the chat AI responder and transcript summarization.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// Config holds configuration for the client
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	// Timeout for the underlying HTTP client. Zero means no timeout,
	// matching the behavior of the system this replaces.
	Timeout time.Duration
}

// NewClient creates a new text-generation client
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Model == "" {
		config.Model = DefaultModel
	}

	return &Client{
		apiKey:     config.APIKey,
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		model:      config.Model,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

type generatePart struct {
	Text string `json:"text"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generateRequest struct {
	Contents []generateContent `json:"contents"`
}

type generateCandidate struct {
	Content      generateContent `json:"content"`
	FinishReason string          `json:"finishReason"`
}

type generateResponse struct {
	Candidates []generateCandidate `json:"candidates"`
}

// GenerateText sends a single-turn prompt and returns the first
// candidate's concatenated text.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	body := generateRequest{
		Contents: []generateContent{
			{Parts: []generatePart{{Text: prompt}}},
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal generation request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read generation response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generation API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed generateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse generation response: %w", err)
	}

	if len(parsed.Candidates) == 0 {
		return "", fmt.Errorf("generation API returned no candidates")
	}

	var sb strings.Builder
	for _, part := range parsed.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}

	return sb.String(), nil
}
