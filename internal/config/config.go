// Package config describes the CLI's YAML configuration file.
package config

import (
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// Config is the top-level CLI configuration, decoded from a YAML file by
// the query command's -config flag.
type Config struct {
	// LogLevel controls the verbosity of the CLI's logrus logger.
	LogLevel logrus.Level `yaml:"log_level"`
	// PageSizeHint is an optional expected page size, checked against the
	// file header after open and logged as a warning on mismatch - it
	// never overrides what the header itself says.
	PageSizeHint uint32 `yaml:"page_size_hint"`
}

// Default returns the configuration used when no -config flag is given.
func Default() *Config {
	return &Config{LogLevel: logrus.InfoLevel}
}

// Load reads and decodes a YAML config file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg := Default()
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
