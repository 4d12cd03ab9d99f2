package otel

import (
	"context"

	"github.com/voxkit/voxkit/pkg/provider"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type observableSynthesizer struct {
	model    string
	provider string

	synthesizer provider.Synthesizer
}

func NewSynthesizer(name, model string, p provider.Synthesizer) provider.Synthesizer {
	return &observableSynthesizer{
		synthesizer: p,

		model:    model,
		provider: name,
	}
}

func (p *observableSynthesizer) Synthesize(ctx context.Context, input string, options *provider.SynthesizeOptions) (*provider.Synthesis, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "synthesize "+p.model)
	defer span.End()

	span.SetAttributes(
		attribute.String("provider", p.provider),
		attribute.String("model", p.model),
	)

	result, err := p.synthesizer.Synthesize(ctx, input, options)

	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	}

	return result, err
}
