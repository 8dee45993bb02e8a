// Package config provides configuration management for the normalizer tools.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"safetynorm/internal/registry"
)

// Configuration validation errors.
var (
	ErrNoRegistrySource    = errors.New("registry.builtin or registry.files is required")
	ErrEmptyRegistryFile   = errors.New("registry.files entries must not be empty")
	ErrMissingOutputPath   = errors.New("output.path is required")
	ErrInvalidOutputFormat = errors.New("output.format must be 'json' or 'yaml'")
	ErrInvalidKeyBy        = errors.New("input.key_by must be 'letter' or 'header'")
	ErrInvalidDelimiter    = errors.New("input.delimiter must be a single character")
	ErrInvalidMaxRejects   = errors.New("report.max_rejections must be non-negative")
	ErrInvalidLogLevel     = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat    = errors.New("logging.format must be 'text' or 'json'")
)

// Config represents the complete normalizer configuration.
type Config struct {
	Registry RegistryConfig `yaml:"registry"`
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Report   ReportConfig   `yaml:"report"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// RegistryConfig selects where client mappings come from.
type RegistryConfig struct {
	Files   []string `yaml:"files"`
	Builtin bool     `yaml:"builtin"`
}

// InputConfig describes how raw CSV batches are read.
type InputConfig struct {
	// KeyBy is "letter" (spreadsheet columns A, B, ...) or "header".
	KeyBy     string `yaml:"key_by"`
	Delimiter string `yaml:"delimiter"`
	HasHeader bool   `yaml:"has_header"`
}

// OutputConfig defines output behavior.
type OutputConfig struct {
	Path        string `yaml:"path"`
	Format      string `yaml:"format"`
	PrettyPrint bool   `yaml:"pretty_print"`
}

// ReportConfig controls the text report printed after a run.
type ReportConfig struct {
	MaxRejections  int  `yaml:"max_rejections"`
	ShowRejections bool `yaml:"show_rejections"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns a configuration that uses the builtin clients.
func Default() *Config {
	return &Config{
		Registry: RegistryConfig{Builtin: true},
		Input:    InputConfig{KeyBy: "letter", Delimiter: ",", HasHeader: true},
		Output:   OutputConfig{Path: "./output", Format: "json", PrettyPrint: true},
		Report:   ReportConfig{ShowRejections: true, MaxRejections: 20},
		Logging:  LoggingConfig{Level: "info", Format: "text"},
	}
}

// LoadConfig loads configuration from a YAML file on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Relative mapping files are resolved against the config file.
	base := filepath.Dir(path)
	for i, f := range cfg.Registry.Files {
		if f != "" && !filepath.IsAbs(f) {
			cfg.Registry.Files[i] = filepath.Join(base, f)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to a YAML file.
func (c *Config) SaveConfig(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !c.Registry.Builtin && len(c.Registry.Files) == 0 {
		return ErrNoRegistrySource
	}

	for i, f := range c.Registry.Files {
		if strings.TrimSpace(f) == "" {
			return fmt.Errorf("%w: files[%d]", ErrEmptyRegistryFile, i)
		}
	}

	if c.Input.KeyBy != "letter" && c.Input.KeyBy != "header" {
		return ErrInvalidKeyBy
	}

	if utf8.RuneCountInString(c.Input.Delimiter) != 1 {
		return ErrInvalidDelimiter
	}

	if c.Output.Path == "" {
		return ErrMissingOutputPath
	}

	if c.Output.Format != "json" && c.Output.Format != "yaml" {
		return ErrInvalidOutputFormat
	}

	if c.Report.MaxRejections < 0 {
		return ErrInvalidMaxRejects
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return ErrInvalidLogFormat
	}

	return nil
}

// DelimiterRune returns the CSV delimiter rune.
func (ic *InputConfig) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(ic.Delimiter)
	return r
}

// LoadRegistry builds the client registry from the builtin set and the
// configured mapping files. A client defined twice is an error.
func (c *Config) LoadRegistry() (*registry.Registry, error) {
	reg := registry.New()

	if c.Registry.Builtin {
		if err := reg.Merge(registry.Builtin()); err != nil {
			return nil, err
		}
	}

	for _, f := range c.Registry.Files {
		loaded, err := registry.LoadFile(f)
		if err != nil {
			return nil, err
		}

		if err := reg.Merge(loaded); err != nil {
			return nil, fmt.Errorf("%s: %w", f, err)
		}
	}

	return reg, nil
}

// GetOutputPath follows structure: {path}/{client}/result.{format}.
func (c *Config) GetOutputPath(client string) string {
	return filepath.Join(c.Output.Path, strings.ToLower(client), "result."+c.Output.Format)
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Builtin: %t, Files: %d, Output: %s}",
		c.Registry.Builtin,
		len(c.Registry.Files),
		c.Output.Path,
	)
}
