// Package tts turns a voice id and a piece of text into a playable audio
// artifact on the local filesystem.
package tts

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/voxkit/voxkit/pkg/provider"
	"github.com/voxkit/voxkit/pkg/store"
)

// PublicPath is the URL mount under which synthesized audio is served.
const PublicPath = "/api/files/tts/"

// Router resolves a model id to the synthesizer serving it.
type Router interface {
	Synthesizer(model string) (provider.Synthesizer, error)
}

type Service struct {
	store  *store.Store
	router Router

	defaultModel string
	outputDir    string
}

func New(records *store.Store, router Router, defaultModel, outputDir string) *Service {
	return &Service{
		store:  records,
		router: router,

		defaultModel: defaultModel,
		outputDir:    outputDir,
	}
}

// ResolveProviderVoiceID maps a local voice id to the provider's identifier.
// Unknown ids pass through unchanged, which allows ad-hoc synthesis against
// a raw provider voice id without a local record.
func (s *Service) ResolveProviderVoiceID(voiceID string) string {
	if v, ok := s.store.Voice(voiceID); ok {
		return v.ProviderVoiceID
	}

	return voiceID
}

type Result struct {
	AudioURL  string `json:"audioUrl"`
	AudioPath string `json:"audioPath"`
}

// Generate synthesizes text with the voice's provider and writes the audio
// under the output directory. Provider errors propagate unchanged; there is
// no retry at this layer.
func (s *Service) Generate(ctx context.Context, voiceID, text string) (*Result, error) {
	providerVoice := voiceID
	model := s.defaultModel

	if v, ok := s.store.Voice(voiceID); ok {
		providerVoice = v.ProviderVoiceID

		// a voice may carry a synthesizer model of its own; anything
		// unknown to the routing table (e.g. the local codec model)
		// falls back to the configured default
		if _, err := s.router.Synthesizer(v.Model); err == nil {
			model = v.Model
		}
	}

	synthesizer, err := s.router.Synthesizer(model)

	if err != nil {
		return nil, err
	}

	synthesis, err := synthesizer.Synthesize(ctx, text, &provider.SynthesizeOptions{
		Voice:  providerVoice,
		Format: "mp3",
	})

	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return nil, err
	}

	name := fmt.Sprintf("%s_%d.mp3", voiceID, time.Now().UnixMilli())
	path := filepath.Join(s.outputDir, name)

	if err := os.WriteFile(path, synthesis.Content, 0o644); err != nil {
		return nil, err
	}

	slog.Info("speech generated", "voice", voiceID, "model", model, "bytes", len(synthesis.Content), "path", path)

	return &Result{
		AudioURL:  PublicPath + name,
		AudioPath: path,
	}, nil
}
