package tts

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/papertone/papertone/internal/config"
)

const (
	defaultBaseURL = "https://api.murf.ai"

	generatePath = "/v1/speech/generate"
	voicesPath   = "/v1/speech/voices"
)

// Client calls a Murf-style speech API: one synchronous JSON request per
// text segment, authenticated with an api-key header.
type Client struct {
	baseURL    string
	apiKey     string
	style      string
	sampleRate int
	format     string
	channel    string
	httpClient *http.Client
}

// NewClient creates a synthesis client from a ProviderConfig. A missing API
// key is not an error here; synthesis calls fail with ErrMissingAPIKey so
// the server can still start and serve placeholder voices.
func NewClient(cfg *config.ProviderConfig) (*Client, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     cfg.APIKey,
		style:      cfg.Style,
		sampleRate: cfg.SampleRate,
		format:     cfg.Format,
		channel:    cfg.Channel,
		httpClient: &http.Client{Timeout: 90 * time.Second},
	}, nil
}

type speechRequest struct {
	VoiceID    string `json:"voiceId"`
	Style      string `json:"style"`
	Text       string `json:"text"`
	Rate       int    `json:"rate"`
	Pitch      int    `json:"pitch"`
	SampleRate int    `json:"sampleRate"`
	Format     string `json:"format"`
	Channel    string `json:"channel"`
}

// speechResponse covers both success shapes the provider is known to return:
// a retrievable audio URL or inline base64 audio.
type speechResponse struct {
	AudioFile    string `json:"audioFile"`
	EncodedAudio string `json:"encodedAudio"`
}

// Synthesize implements Synthesizer. Rate and pitch are fixed to neutral.
func (c *Client) Synthesize(ctx context.Context, text, voiceID string) ([]byte, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	payload := speechRequest{
		VoiceID:    voiceID,
		Style:      c.style,
		Text:       text,
		Rate:       0,
		Pitch:      0,
		SampleRate: c.sampleRate,
		Format:     c.format,
		Channel:    c.channel,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal synthesis request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+generatePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build synthesis request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("synthesis request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read synthesis response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &SynthesisError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	var out speechResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("decode synthesis response: %w", err)
	}

	switch {
	case out.AudioFile != "":
		return c.fetchAudio(ctx, out.AudioFile)
	case out.EncodedAudio != "":
		data, err := base64.StdEncoding.DecodeString(out.EncodedAudio)
		if err != nil {
			return nil, fmt.Errorf("decode inline audio: %w", err)
		}
		return data, nil
	default:
		return nil, &SynthesisError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}
}

// fetchAudio performs the second network call for the URL response shape.
func (c *Client) fetchAudio(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build audio request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &SynthesisError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return io.ReadAll(resp.Body)
}

// ProviderVoice is one entry of the provider's voice list.
type ProviderVoice struct {
	VoiceID     string `json:"voiceId"`
	DisplayName string `json:"displayName"`
	Locale      string `json:"locale"`
	Gender      string `json:"gender"`
}

// ListVoices fetches the full voice list from the provider.
func (c *Client) ListVoices(ctx context.Context) ([]ProviderVoice, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+voicesPath, nil)
	if err != nil {
		return nil, fmt.Errorf("build voices request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("voices request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("voices request failed: %d - %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var voices []ProviderVoice
	if err := json.NewDecoder(resp.Body).Decode(&voices); err != nil {
		return nil, fmt.Errorf("decode voices response: %w", err)
	}
	return voices, nil
}
