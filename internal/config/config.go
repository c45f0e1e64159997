// Package config loads the optional YAML defaults file.
package config

import (
	"fmt"
	"os"

	"scaph2cc/internal/aggregate"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the defaults file looked up in the working directory.
const DefaultPath = ".scaph2cc.yaml"

// Log levels accepted by the logger.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelError = "error"
)

// Config holds defaults for values not given on the command line or by the CI environment.
type Config struct {
	AppID       string                `yaml:"appId,omitempty"`
	Branch      string                `yaml:"branch,omitempty"`
	CommitSHA   string                `yaml:"commitSha,omitempty"`
	PipelineURL string                `yaml:"ciPipelineUrl,omitempty"`
	ProcessName string                `yaml:"processName,omitempty"`
	Match       aggregate.MatchPolicy `yaml:"match,omitempty"`
	LogLevel    string                `yaml:"logLevel,omitempty"`
	JUnitFile   string                `yaml:"junitFile,omitempty"`
	MetricsFile string                `yaml:"metricsFile,omitempty"`
}

// Default returns a config with only defaults applied.
func Default() Config {
	var c Config
	c.applyDefaults()
	return c
}

// Parse parses YAML content into a Config.
func Parse(content []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(content, &c); err != nil {
		return Config{}, fmt.Errorf("invalid YAML: %w", err)
	}

	c.applyDefaults()
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Load reads and parses the config file at path.
// If optional is set, a missing file yields the defaults.
func Load(path string, optional bool) (Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && optional {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	c, err := Parse(content)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// ToYAML serializes the config back to YAML bytes.
func (c Config) ToYAML() ([]byte, error) {
	return yaml.Marshal(&c)
}

func (c *Config) applyDefaults() {
	if c.Match == "" {
		c.Match = aggregate.MatchSuffix
	}
	if c.LogLevel == "" {
		c.LogLevel = LevelInfo
	}
}

func (c *Config) validate() error {
	if _, err := aggregate.ParseMatchPolicy(string(c.Match)); err != nil {
		return err
	}
	if err := ValidateLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ValidateLogLevel checks a log level name.
func ValidateLogLevel(level string) error {
	switch level {
	case LevelDebug, LevelInfo, LevelError:
		return nil
	}
	return fmt.Errorf("unknown log level '%s', must be one of: %s, %s, %s", level, LevelDebug, LevelInfo, LevelError)
}
