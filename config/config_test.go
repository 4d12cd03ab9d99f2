package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	return path
}

func TestParseDefaults(t *testing.T) {
	path := writeConfig(t, `
providers:
  - type: stepfun
    token: test-key
    models:
      - step-tts-mini
`)

	cfg, err := Parse(path)
	require.NoError(t, err)

	require.Equal(t, ":8000", cfg.Address)
	require.Equal(t, "data/uploads", cfg.UploadDir)
	require.Equal(t, "data/tts_outputs", cfg.OutputDir)
	require.Equal(t, "step-voice-clone", cfg.CloneModel)
	require.False(t, cfg.Development)
}

func TestParseOverrides(t *testing.T) {
	path := writeConfig(t, `
address: ":9090"
development: true

storage:
  uploads: /var/voxkit/uploads
  outputs: /var/voxkit/outputs

providers:
  - type: stepfun
    token: test-key
    clone_model: step-voice-clone-v2
    models:
      - step-tts-mini
`)

	cfg, err := Parse(path)
	require.NoError(t, err)

	require.Equal(t, ":9090", cfg.Address)
	require.True(t, cfg.Development)
	require.Equal(t, "/var/voxkit/uploads", cfg.UploadDir)
	require.Equal(t, "/var/voxkit/outputs", cfg.OutputDir)
	require.Equal(t, "step-voice-clone-v2", cfg.CloneModel)
}

func TestParseExpandsEnv(t *testing.T) {
	t.Setenv("STEPFUN_API_KEY", "key-from-env")

	path := writeConfig(t, `
providers:
  - type: stepfun
    token: ${STEPFUN_API_KEY}
    models:
      - step-tts-mini
`)

	cfg, err := Parse(path)
	require.NoError(t, err)

	probes := cfg.Probes()
	require.Len(t, probes, 1)
	require.True(t, probes[0].Configured())
}

func TestParseRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, `
adress: ":9090"
`)

	_, err := Parse(path)
	require.Error(t, err)
}

func TestParseRejectsUnknownProviderType(t *testing.T) {
	path := writeConfig(t, `
providers:
  - type: elevenlabs
    models:
      - eleven-v2
`)

	_, err := Parse(path)
	require.Error(t, err)
}

func TestSynthesizerRouting(t *testing.T) {
	path := writeConfig(t, `
providers:
  - type: stepfun
    token: test-key
    models:
      - step-tts-mini
      - step-tts-vivid

  - type: openai
    token: test-key
    models:
      - gpt-4o-mini-tts
`)

	cfg, err := Parse(path)
	require.NoError(t, err)

	for _, model := range []string{"step-tts-mini", "step-tts-vivid", "gpt-4o-mini-tts"} {
		s, err := cfg.Synthesizer(model)
		require.NoError(t, err)
		require.NotNil(t, s)
	}

	// the first registered model doubles as the default
	fallback, err := cfg.Synthesizer("")
	require.NoError(t, err)

	primary, err := cfg.Synthesizer("step-tts-mini")
	require.NoError(t, err)
	require.Same(t, fallback, primary)

	_, err = cfg.Synthesizer("unknown-model")
	require.Error(t, err)
}

func TestClonerRequiresStepFun(t *testing.T) {
	path := writeConfig(t, `
providers:
  - type: openai
    token: test-key
    models:
      - gpt-4o-mini-tts
`)

	cfg, err := Parse(path)
	require.NoError(t, err)

	_, err = cfg.Cloner()
	require.Error(t, err)

	require.Len(t, cfg.Probes(), 1)
}
