package openai

import (
	"context"
	"io"
	"time"

	"github.com/voxkit/voxkit/pkg/provider"

	"github.com/google/uuid"
	"github.com/openai/openai-go/v3"
)

var (
	_ provider.Synthesizer = (*Synthesizer)(nil)
	_ provider.Prober      = (*Synthesizer)(nil)
)

const (
	requestTimeout = 30 * time.Second
	probeTimeout   = 10 * time.Second
)

type Synthesizer struct {
	*Config

	speech openai.AudioSpeechService
	models openai.ModelService
}

func NewSynthesizer(url, model string, options ...Option) (*Synthesizer, error) {
	cfg := &Config{
		url:   url,
		model: model,

		voice: "alloy",
	}

	for _, option := range options {
		option(cfg)
	}

	return &Synthesizer{
		Config: cfg,

		speech: openai.NewAudioSpeechService(cfg.Options()...),
		models: openai.NewModelService(cfg.Options()...),
	}, nil
}

func (s *Synthesizer) Name() string {
	return "openai"
}

func (s *Synthesizer) Configured() bool {
	return s.token != ""
}

func (s *Synthesizer) Synthesize(ctx context.Context, input string, options *provider.SynthesizeOptions) (*provider.Synthesis, error) {
	if options == nil {
		options = new(provider.SynthesizeOptions)
	}

	voice := s.voice

	if options.Voice != "" {
		voice = options.Voice
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	result, err := s.speech.New(ctx, openai.AudioSpeechNewParams{
		Model: s.model,
		Input: input,

		Voice: openai.AudioSpeechNewParamsVoiceUnion{OfString: openai.String(voice)},

		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
	})

	if err != nil {
		return nil, convertError(err)
	}

	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)

	if err != nil {
		return nil, err
	}

	return &provider.Synthesis{
		ID:    uuid.NewString(),
		Model: s.model,

		Content:     data,
		ContentType: "audio/mpeg",
	}, nil
}

func (s *Synthesizer) Probe(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	if _, err := s.models.List(ctx); err != nil {
		return convertError(err)
	}

	return nil
}
