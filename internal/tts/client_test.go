package tts

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/papertone/papertone/internal/config"
)

func newTestClient(t *testing.T, baseURL, apiKey string) *Client {
	t.Helper()
	c, err := NewClient(&config.ProviderConfig{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		Style:      "Promo",
		SampleRate: 48000,
		Format:     "MP3",
		Channel:    "STEREO",
	})
	require.NoError(t, err)
	return c
}

func TestSynthesize_AudioFileURL(t *testing.T) {
	audio := []byte("mp3-bytes-from-url")
	var audioGets atomic.Int64

	mux := http.NewServeMux()
	var ts *httptest.Server
	mux.HandleFunc("/v1/speech/generate", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.Header.Get("api-key"))

		var req speechRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "voice-1", req.VoiceID)
		assert.Equal(t, "MP3", req.Format)

		json.NewEncoder(w).Encode(map[string]string{"audioFile": ts.URL + "/stored/clip.mp3"})
	})
	mux.HandleFunc("/stored/clip.mp3", func(w http.ResponseWriter, r *http.Request) {
		audioGets.Add(1)
		w.Write(audio)
	})
	ts = httptest.NewServer(mux)
	defer ts.Close()

	c := newTestClient(t, ts.URL, "test-key")
	got, err := c.Synthesize(context.Background(), "hello world", "voice-1")
	require.NoError(t, err)
	assert.Equal(t, audio, got)
	assert.Equal(t, int64(1), audioGets.Load(), "URL shape must trigger exactly one extra GET")
}

func TestSynthesize_EncodedAudio(t *testing.T) {
	audio := []byte("inline-mp3-bytes")
	var requests atomic.Int64

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		json.NewEncoder(w).Encode(map[string]string{
			"encodedAudio": base64.StdEncoding.EncodeToString(audio),
		})
	}))
	defer ts.Close()

	c := newTestClient(t, ts.URL, "test-key")
	got, err := c.Synthesize(context.Background(), "hello", "voice-1")
	require.NoError(t, err)
	assert.Equal(t, audio, got)
	assert.Equal(t, int64(1), requests.Load(), "inline shape must not trigger a second call")
}

func TestSynthesize_ProviderError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusPaymentRequired)
	}))
	defer ts.Close()

	c := newTestClient(t, ts.URL, "test-key")
	_, err := c.Synthesize(context.Background(), "hello", "voice-1")

	var synthErr *SynthesisError
	require.ErrorAs(t, err, &synthErr)
	assert.Equal(t, http.StatusPaymentRequired, synthErr.StatusCode)
	assert.Contains(t, synthErr.Body, "quota exceeded")
}

func TestSynthesize_UnexpectedShape(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"somethingElse": "surprise"})
	}))
	defer ts.Close()

	c := newTestClient(t, ts.URL, "test-key")
	_, err := c.Synthesize(context.Background(), "hello", "voice-1")

	var synthErr *SynthesisError
	require.ErrorAs(t, err, &synthErr)
	assert.Contains(t, synthErr.Body, "somethingElse")
}

func TestSynthesize_MissingAPIKey(t *testing.T) {
	var requests atomic.Int64
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer ts.Close()

	c := newTestClient(t, ts.URL, "")
	_, err := c.Synthesize(context.Background(), "hello", "voice-1")
	require.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Zero(t, requests.Load(), "no network call without a credential")
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(nil)
	assert.True(t, errors.Is(err, ErrNilConfig))

	// An empty base URL falls back to the hosted provider endpoint.
	c, err := NewClient(&config.ProviderConfig{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, defaultBaseURL, c.baseURL)
}

func TestListVoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/speech/voices", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("api-key"))
		json.NewEncoder(w).Encode([]ProviderVoice{
			{VoiceID: "en-US-amara", DisplayName: "Amara", Locale: "en-US", Gender: "Female"},
		})
	}))
	defer ts.Close()

	c := newTestClient(t, ts.URL, "test-key")
	voices, err := c.ListVoices(context.Background())
	require.NoError(t, err)
	require.Len(t, voices, 1)
	assert.Equal(t, "en-US-amara", voices[0].VoiceID)
}
