package config

import (
	"errors"
	"strings"

	"github.com/voxkit/voxkit/pkg/otel"
	"github.com/voxkit/voxkit/pkg/provider"
	"github.com/voxkit/voxkit/pkg/provider/openai"
	"github.com/voxkit/voxkit/pkg/provider/stepfun"
)

func (cfg *Config) RegisterSynthesizer(id string, p provider.Synthesizer) {
	if cfg.synthesizer == nil {
		cfg.synthesizer = make(map[string]provider.Synthesizer)
	}

	if _, ok := cfg.synthesizer[""]; !ok {
		cfg.synthesizer[""] = p
	}

	cfg.synthesizer[id] = p
}

func (cfg *Config) Synthesizer(id string) (provider.Synthesizer, error) {
	if cfg.synthesizer != nil {
		if s, ok := cfg.synthesizer[id]; ok {
			return s, nil
		}
	}

	return nil, errors.New("synthesizer not found: " + id)
}

func (cfg *Config) RegisterProbe(p provider.Prober) {
	cfg.probes = append(cfg.probes, p)
}

func (cfg *Config) Probes() []provider.Prober {
	return cfg.probes
}

func (cfg *Config) Cloner() (provider.Cloner, error) {
	if cfg.cloner == nil {
		return nil, errors.New("no cloning provider configured")
	}

	return cfg.cloner, nil
}

func (cfg *Config) registerProviders(file *configFile) error {
	for _, p := range file.Providers {
		switch strings.ToLower(p.Type) {
		case "stepfun":
			if err := cfg.registerStepFun(p); err != nil {
				return err
			}

		case "openai", "openai-compatible":
			if err := cfg.registerOpenAI(p); err != nil {
				return err
			}

		default:
			return errors.New("invalid provider type: " + p.Type)
		}
	}

	return nil
}

func (cfg *Config) registerStepFun(p providerConfig) error {
	var options []stepfun.Option

	if p.Token != "" {
		options = append(options, stepfun.WithToken(p.Token))
	}

	for i, model := range p.Models {
		client, err := stepfun.New(p.URL, model, options...)

		if err != nil {
			return err
		}

		cfg.RegisterSynthesizer(model, otel.NewSynthesizer("stepfun", model, client))

		if i == 0 {
			cfg.RegisterProbe(client)

			if cfg.cloner == nil {
				cfg.cloner = client
				cfg.CloneModel = p.CloneModel

				if cfg.CloneModel == "" {
					cfg.CloneModel = "step-voice-clone"
				}
			}
		}
	}

	return nil
}

func (cfg *Config) registerOpenAI(p providerConfig) error {
	var options []openai.Option

	if p.Token != "" {
		options = append(options, openai.WithToken(p.Token))
	}

	if p.Voice != "" {
		options = append(options, openai.WithVoice(p.Voice))
	}

	for i, model := range p.Models {
		synthesizer, err := openai.NewSynthesizer(p.URL, model, options...)

		if err != nil {
			return err
		}

		cfg.RegisterSynthesizer(model, otel.NewSynthesizer("openai", model, synthesizer))

		if i == 0 {
			cfg.RegisterProbe(synthesizer)
		}
	}

	return nil
}
