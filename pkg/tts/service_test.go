package tts

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/voxkit/voxkit/pkg/provider"
	"github.com/voxkit/voxkit/pkg/store"

	"github.com/stretchr/testify/require"
)

type fakeSynthesizer struct {
	model string

	inputs []string
	voices []string

	err error
}

func (f *fakeSynthesizer) Synthesize(ctx context.Context, input string, options *provider.SynthesizeOptions) (*provider.Synthesis, error) {
	if f.err != nil {
		return nil, f.err
	}

	f.inputs = append(f.inputs, input)
	f.voices = append(f.voices, options.Voice)

	return &provider.Synthesis{
		Model: f.model,

		Content:     []byte("audio-from-" + f.model),
		ContentType: "audio/mpeg",
	}, nil
}

type fakeRouter map[string]provider.Synthesizer

func (r fakeRouter) Synthesizer(model string) (provider.Synthesizer, error) {
	if s, ok := r[model]; ok {
		return s, nil
	}

	return nil, errors.New("synthesizer not found: " + model)
}

func TestResolveProviderVoiceID(t *testing.T) {
	records := store.New()

	records.SaveVoice(store.Voice{
		ID:              "v1",
		ProviderVoiceID: "provider-123",
	})

	svc := New(records, fakeRouter{}, "step-tts-2", t.TempDir())

	require.Equal(t, "provider-123", svc.ResolveProviderVoiceID("v1"))

	// unknown ids pass through untouched
	require.Equal(t, "raw-provider-id", svc.ResolveProviderVoiceID("raw-provider-id"))
}

func TestGenerateWritesArtifact(t *testing.T) {
	records := store.New()

	records.SaveVoice(store.Voice{
		ID:              "v1",
		ProviderVoiceID: "provider-123",
		Model:           "codec",
	})

	primary := &fakeSynthesizer{model: "step-tts-2"}

	dir := t.TempDir()
	svc := New(records, fakeRouter{"step-tts-2": primary}, "step-tts-2", dir)

	result, err := svc.Generate(context.Background(), "v1", "你好")
	require.NoError(t, err)

	require.Equal(t, []string{"你好"}, primary.inputs)
	require.Equal(t, []string{"provider-123"}, primary.voices)

	require.True(t, strings.HasPrefix(result.AudioURL, PublicPath+"v1_"))
	require.True(t, strings.HasSuffix(result.AudioURL, ".mp3"))

	require.Equal(t, dir, filepath.Dir(result.AudioPath))

	data, err := os.ReadFile(result.AudioPath)
	require.NoError(t, err)
	require.Equal(t, "audio-from-step-tts-2", string(data))
}

func TestGenerateRoutesByVoiceModel(t *testing.T) {
	records := store.New()

	records.SaveVoice(store.Voice{
		ID:              "v1",
		ProviderVoiceID: "alloy",
		Model:           "tts-1",
	})

	primary := &fakeSynthesizer{model: "step-tts-2"}
	secondary := &fakeSynthesizer{model: "tts-1"}

	router := fakeRouter{
		"step-tts-2": primary,
		"tts-1":      secondary,
	}

	svc := New(records, router, "step-tts-2", t.TempDir())

	_, err := svc.Generate(context.Background(), "v1", "hello")
	require.NoError(t, err)

	require.Empty(t, primary.inputs)
	require.Equal(t, []string{"hello"}, secondary.inputs)
	require.Equal(t, []string{"alloy"}, secondary.voices)
}

func TestGenerateFallsBackToDefaultModel(t *testing.T) {
	records := store.New()

	// the local codec model has no synthesizer of its own
	records.SaveVoice(store.Voice{
		ID:              "v1",
		ProviderVoiceID: "provider-123",
		Model:           "codec",
	})

	primary := &fakeSynthesizer{model: "step-tts-2"}
	svc := New(records, fakeRouter{"step-tts-2": primary}, "step-tts-2", t.TempDir())

	_, err := svc.Generate(context.Background(), "v1", "hello")
	require.NoError(t, err)
	require.Equal(t, []string{"hello"}, primary.inputs)
}

func TestGeneratePropagatesProviderError(t *testing.T) {
	failing := &fakeSynthesizer{
		model: "step-tts-2",
		err:   &provider.RateLimitError{Provider: "stepfun"},
	}

	dir := t.TempDir()
	svc := New(store.New(), fakeRouter{"step-tts-2": failing}, "step-tts-2", dir)

	_, err := svc.Generate(context.Background(), "v1", "hello")

	var rateErr *provider.RateLimitError
	require.ErrorAs(t, err, &rateErr)

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	require.Empty(t, entries)
}

func TestGenerateUnknownModel(t *testing.T) {
	svc := New(store.New(), fakeRouter{}, "step-tts-2", t.TempDir())

	_, err := svc.Generate(context.Background(), "v1", "hello")
	require.Error(t, err)
}
