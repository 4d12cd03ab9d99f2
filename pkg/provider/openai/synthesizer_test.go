package openai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/voxkit/voxkit/pkg/provider"

	"github.com/stretchr/testify/require"
)

func TestSynthesize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/audio/speech", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		require.Equal(t, "gpt-4o-mini-tts", body["model"])
		require.Equal(t, "hello", body["input"])
		require.Equal(t, "alloy", body["voice"])
		require.Equal(t, "mp3", body["response_format"])

		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte("mp3 bytes"))
	}))

	defer server.Close()

	synthesizer, err := NewSynthesizer(server.URL, "gpt-4o-mini-tts", WithToken("test-key"))
	require.NoError(t, err)

	synthesis, err := synthesizer.Synthesize(context.Background(), "hello", nil)
	require.NoError(t, err)

	require.Equal(t, []byte("mp3 bytes"), synthesis.Content)
	require.Equal(t, "audio/mpeg", synthesis.ContentType)
	require.Equal(t, "gpt-4o-mini-tts", synthesis.Model)
}

func TestSynthesizeVoiceOverride(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		require.Equal(t, "nova", body["voice"])

		w.Write([]byte("mp3 bytes"))
	}))

	defer server.Close()

	synthesizer, err := NewSynthesizer(server.URL, "gpt-4o-mini-tts", WithToken("test-key"))
	require.NoError(t, err)

	_, err = synthesizer.Synthesize(context.Background(), "hello", &provider.SynthesizeOptions{
		Voice: "nova",
	})

	require.NoError(t, err)
}

func TestSynthesizeAuthError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": {"message": "invalid api key", "type": "invalid_request_error"}}`))
	}))

	defer server.Close()

	synthesizer, err := NewSynthesizer(server.URL, "gpt-4o-mini-tts", WithToken("bad-key"))
	require.NoError(t, err)

	_, err = synthesizer.Synthesize(context.Background(), "hello", nil)

	var authErr *provider.AuthError
	require.ErrorAs(t, err, &authErr)
}

func TestSynthesizeDeadline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// drain the body so the server can detect the client disconnect
		io.Copy(io.Discard, r.Body)

		// stall until the caller gives up
		<-r.Context().Done()
	}))

	defer server.Close()

	synthesizer, err := NewSynthesizer(server.URL, "gpt-4o-mini-tts", WithToken("test-key"))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = synthesizer.Synthesize(ctx, "hello", nil)

	var timeoutErr *provider.TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
}

func TestProbe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/models", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"object": "list", "data": []}`))
	}))

	defer server.Close()

	synthesizer, err := NewSynthesizer(server.URL, "gpt-4o-mini-tts", WithToken("test-key"))
	require.NoError(t, err)

	require.NoError(t, synthesizer.Probe(context.Background()))
	require.True(t, synthesizer.Configured())
	require.Equal(t, "openai", synthesizer.Name())
}
