package tts

import (
	"context"
	"fmt"
	"io"

	"github.com/sashabaranov/go-openai"

	"github.com/papertone/papertone/internal/config"
)

// OpenAISynthesizer implements Synthesizer against the OpenAI speech API.
// Selected with provider.name "openai"; voice IDs are OpenAI voice names.
type OpenAISynthesizer struct {
	client *openai.Client
	model  openai.SpeechModel
}

// NewOpenAISynthesizer creates an OpenAI-backed synthesizer.
func NewOpenAISynthesizer(cfg *config.ProviderConfig) (*OpenAISynthesizer, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	model := openai.SpeechModel(cfg.Model)
	if model == "" {
		model = openai.TTSModel1
	}

	return &OpenAISynthesizer{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
	}, nil
}

// FixedCatalog serves a predetermined voice list, for providers whose voices
// are a fixed set rather than a queryable endpoint.
type FixedCatalog []Voice

// Voices returns the fixed list unchanged.
func (f FixedCatalog) Voices(_ context.Context) []Voice {
	return []Voice(f)
}

// OpenAIVoices is the catalog served with the openai backend. The speech API
// accepts exactly these voice names; there is no list endpoint to query.
func OpenAIVoices() FixedCatalog {
	return FixedCatalog{
		{Category: "Alloy", ID: string(openai.VoiceAlloy)},
		{Category: "Echo", ID: string(openai.VoiceEcho)},
		{Category: "Fable", ID: string(openai.VoiceFable)},
		{Category: "Onyx", ID: string(openai.VoiceOnyx)},
		{Category: "Nova", ID: string(openai.VoiceNova)},
		{Category: "Shimmer", ID: string(openai.VoiceShimmer)},
	}
}

// Synthesize implements Synthesizer.
func (s *OpenAISynthesizer) Synthesize(ctx context.Context, text, voiceID string) ([]byte, error) {
	resp, err := s.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          s.model,
		Input:          text,
		Voice:          openai.SpeechVoice(voiceID),
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return nil, fmt.Errorf("openai speech: %w", err)
	}
	defer resp.Close()

	data, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("read openai audio: %w", err)
	}
	return data, nil
}
