package config

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

const fileHeader = `# bootstack configuration.
# Every key can be overridden by a BOOTSTACK_* environment variable,
# e.g. initializr.url -> BOOTSTACK_INITIALIZR_URL.
`

// initializrFile is InitializrConfig with durations in Go duration syntax.
type initializrFile struct {
	URL             string `yaml:"url"`
	MetadataURL     string `yaml:"metadataUrl"`
	Type            string `yaml:"type"`
	Language        string `yaml:"language"`
	Timeout         string `yaml:"timeout"`
	MetadataTimeout string `yaml:"metadataTimeout"`
	SkipValidation  bool   `yaml:"skipValidation"`
}

// MarshalYAML implements yaml.Marshaler.
func (c InitializrConfig) MarshalYAML() (interface{}, error) {
	return initializrFile{
		URL:             c.URL,
		MetadataURL:     c.MetadataURL,
		Type:            c.Type,
		Language:        c.Language,
		Timeout:         c.Timeout.String(),
		MetadataTimeout: c.MetadataTimeout.String(),
		SkipValidation:  c.SkipValidation,
	}, nil
}

// Encode renders cfg as a config file that Loader.Load reads back unchanged.
func Encode(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(fileHeader)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return buf.Bytes(), nil
}
