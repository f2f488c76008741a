package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"

	"github.com/mailbridge/mailbridge/pkg/logger"
	"github.com/mailbridge/mailbridge/pkg/storage"
)

// Config is the CLI configuration. Flags fill it first; the environment and
// the YAML config file only supply values the flags left empty.
type Config struct {
	DSN             string         `yaml:"dsn"`
	From            string         `yaml:"from"`
	Sender          string         `yaml:"sender"`
	FallbackSubject string         `yaml:"fallback_subject"`
	Templates       string         `yaml:"templates"`
	Layout          string         `yaml:"layout"`
	ReplyTo         []string       `yaml:"reply_to"`
	BCC             []string       `yaml:"bcc"` // Appended to --bcc
	Log             logger.Config  `yaml:"log"`
	Storage         storage.Config `yaml:"storage"`
}

// loadConfig reads a YAML config file. Unknown keys are rejected.
func loadConfig(path string) (Config, error) {
	var cfg Config

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// mergeConfig fills empty fields of dst from src. Slices are concatenated.
func mergeConfig(dst *Config, src Config) error {
	if err := mergo.Merge(dst, src, mergo.WithAppendSlice); err != nil {
		return fmt.Errorf("config: merge: %w", err)
	}
	return nil
}
