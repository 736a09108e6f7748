package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

type ConnectionConfig struct {
	Host      string `yaml:"host,omitempty"`
	Port      int    `yaml:"port,omitempty"`
	URL       string `yaml:"url,omitempty"`
	Namespace string `yaml:"ns,omitempty"`
	Database  string `yaml:"db,omitempty"`
}

// ProjectConfig mirrors slurp.yaml. Zero values mean "not set"; Verbosity is
// a pointer because 0 is a meaningful level.
type ProjectConfig struct {
	Connection ConnectionConfig `yaml:"connection"`
	Table      string           `yaml:"table,omitempty"`
	Batch      int              `yaml:"batch,omitempty"`
	Threads    int              `yaml:"threads,omitempty"`
	Verbosity  *int             `yaml:"verbosity,omitempty"`
	Timeout    string           `yaml:"timeout,omitempty"`
}

const ConfigFileName = "slurp.yaml"

// Load reads the YAML config at configPath.
func Load(configPath string) (*ProjectConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", configPath, err)
	}
	return &cfg, nil
}

// TimeoutDuration parses Timeout. An empty value returns 0.
func (c *ProjectConfig) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	return d, nil
}
