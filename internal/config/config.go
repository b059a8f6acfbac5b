package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/weft-ui/weft/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "weft.json"

	// DefaultTracer is the default tracer name for flush spans.
	DefaultTracer = "weft"

	// Default bench workload sizes.
	DefaultBenchBoxes      = 1000
	DefaultBenchWrites     = 10000
	DefaultBenchListSize   = 500
	DefaultBenchIterations = 200
)

// Config represents the complete weft.json configuration.
type Config struct {
	// Debug enables diagnostic logging in the reactive engine.
	Debug bool `json:"debug,omitempty"`

	// Metrics enables Prometheus instrumentation on engines the CLI creates.
	Metrics bool `json:"metrics,omitempty"`

	// Tracer names the OpenTelemetry tracer used for flush spans. Empty
	// disables tracing.
	Tracer string `json:"tracer,omitempty"`

	// Bench contains headless benchmark workload sizes.
	Bench BenchConfig `json:"bench,omitempty"`

	// configPath is where this config was loaded from.
	configPath string
}

// BenchConfig contains workload sizes for the bench command.
type BenchConfig struct {
	// Boxes is the number of boxed values in the write-storm workload.
	Boxes int `json:"boxes,omitempty"`

	// Writes is the number of writes issued before each flush.
	Writes int `json:"writes,omitempty"`

	// ListSize is the keyed-list length in the render-and-diff workload.
	ListSize int `json:"listSize,omitempty"`

	// Iterations is the number of render-and-diff rounds.
	Iterations int `json:"iterations,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Tracer: "",
		Bench: BenchConfig{
			Boxes:      DefaultBenchBoxes,
			Writes:     DefaultBenchWrites,
			ListSize:   DefaultBenchListSize,
			Iterations: DefaultBenchIterations,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for weft.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadOrDefault reads configuration from the specified directory, falling
// back to defaults when no weft.json exists. The CLI works without one.
func LoadOrDefault(dir string) (*Config, error) {
	cfg, err := Load(dir)
	if err != nil {
		if we, ok := err.(*errors.WeftError); ok && we.Code == errors.CodeConfigNotFound {
			return New(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.CodeConfigNotFound).
				WithDetail("No weft.json found in " + filepath.Dir(path)).
				WithSuggestion("Create weft.json or rely on flag defaults")
		}
		return nil, errors.New(errors.CodeConfigParse).Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New(errors.CodeConfigParse).
			WithDetail("Failed to parse weft.json: " + err.Error()).
			WithSuggestion("Check that weft.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New(errors.CodeConfigParse).Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New(errors.CodeConfigParse).Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Bench.Boxes == 0 {
		c.Bench.Boxes = DefaultBenchBoxes
	}
	if c.Bench.Writes == 0 {
		c.Bench.Writes = DefaultBenchWrites
	}
	if c.Bench.ListSize == 0 {
		c.Bench.ListSize = DefaultBenchListSize
	}
	if c.Bench.Iterations == 0 {
		c.Bench.Iterations = DefaultBenchIterations
	}
}

// Validate checks if the configuration is valid. Zero workload sizes never
// survive loading (applyDefaults fills them in), so anything non-positive
// here is a programming error or a hand-built Config.
func (c *Config) Validate() error {
	if c.Bench.Boxes <= 0 || c.Bench.Writes <= 0 || c.Bench.ListSize <= 0 || c.Bench.Iterations <= 0 {
		return errors.Newf(errors.CategoryConfig, "bench workload sizes must be positive")
	}
	return nil
}
