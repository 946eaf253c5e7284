// Package tts talks to remote text-to-speech providers.
package tts

import (
	"context"
	"errors"
	"fmt"
)

// ErrNilConfig is returned when a nil provider config is provided.
var ErrNilConfig = errors.New("tts config is nil")

// ErrMissingAPIKey is returned when synthesis is attempted without a
// provider credential configured.
var ErrMissingAPIKey = errors.New("provider api key is not set")

// SynthesisError is a hard failure from the synthesis provider. It carries
// the provider's HTTP status and response body for diagnosis.
type SynthesisError struct {
	StatusCode int
	Body       string
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("synthesis provider error: %d - %s", e.StatusCode, e.Body)
}

// Synthesizer converts one text segment into raw audio bytes.
// Implementations wrap a concrete provider (Murf-style JSON API, OpenAI).
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voiceID string) ([]byte, error)
}
