package config

import (
	"bytes"
	"os"

	"github.com/voxkit/voxkit/pkg/provider"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Address string

	Development bool

	UploadDir string
	OutputDir string

	CloneModel string

	synthesizer map[string]provider.Synthesizer

	cloner provider.Cloner
	probes []provider.Prober
}

func Parse(path string) (*Config, error) {
	file, err := parseFile(path)

	if err != nil {
		return nil, err
	}

	c := &Config{
		Address: ":8000",

		UploadDir: "data/uploads",
		OutputDir: "data/tts_outputs",
	}

	if file.Address != "" {
		c.Address = file.Address
	}

	c.Development = file.Development

	if file.Storage.Uploads != "" {
		c.UploadDir = file.Storage.Uploads
	}

	if file.Storage.Outputs != "" {
		c.OutputDir = file.Storage.Outputs
	}

	if err := c.registerProviders(file); err != nil {
		return nil, err
	}

	return c, nil
}

type configFile struct {
	Address string `yaml:"address"`

	Development bool `yaml:"development"`

	Storage struct {
		Uploads string `yaml:"uploads"`
		Outputs string `yaml:"outputs"`
	} `yaml:"storage"`

	Providers []providerConfig `yaml:"providers"`
}

type providerConfig struct {
	Type string `yaml:"type"`

	URL   string `yaml:"url"`
	Token string `yaml:"token"`

	Voice string `yaml:"voice"`

	CloneModel string `yaml:"clone_model"`

	Models []string `yaml:"models"`
}

func parseFile(path string) (*configFile, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	data = []byte(os.ExpandEnv(string(data)))

	var config configFile

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
