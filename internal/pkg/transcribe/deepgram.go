package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the Deepgram API base URL
const DefaultBaseURL = "https://api.deepgram.com"

// Transcriber converts recorded audio to text
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, contentType string) (string, error)
}

// Client is a thin REST client for the speech-to-text API
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Config holds configuration for the transcription client
type Config struct {
	APIKey  string
	BaseURL string
	// Timeout for the underlying HTTP client. Zero means no timeout.
	Timeout time.Duration
}

// NewClient creates a new transcription client
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}

	return &Client{
		apiKey:     config.APIKey,
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

type listenAlternative struct {
	Transcript string `json:"transcript"`
}

type listenChannel struct {
	Alternatives []listenAlternative `json:"alternatives"`
}

type listenResponse struct {
	Results struct {
		Channels []listenChannel `json:"channels"`
	} `json:"results"`
}

// Transcribe sends raw audio bytes and returns the transcript of the
// first channel. An empty transcript is returned as an empty string.
func (c *Client) Transcribe(ctx context.Context, audio []byte, contentType string) (string, error) {
	params := url.Values{}
	params.Set("punctuate", "true")
	params.Set("model", "nova")
	params.Set("language", "en")

	endpoint := fmt.Sprintf("%s/v1/listen?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(audio))
	if err != nil {
		return "", fmt.Errorf("failed to create transcription request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.apiKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcription request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read transcription response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("transcription API returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed listenResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse transcription response: %w", err)
	}

	if len(parsed.Results.Channels) == 0 || len(parsed.Results.Channels[0].Alternatives) == 0 {
		return "", nil
	}

	return parsed.Results.Channels[0].Alternatives[0].Transcript, nil
}
