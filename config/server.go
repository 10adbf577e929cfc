package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ServerConfig holds everything the hitmatch server needs at startup.
type ServerConfig struct {
	Port            string          `yaml:"port"`
	MaxRequestBytes int64           `yaml:"max_request_bytes"`
	JobWorkers      int             `yaml:"job_workers"`
	Matcher         MatcherSettings `yaml:"matcher"`
}

// DefaultServerConfig returns the configuration used when no file is given.
func DefaultServerConfig() ServerConfig {
	cfg := ServerConfig{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills unset fields.
func (c *ServerConfig) ApplyDefaults() {
	if c.Port == "" {
		c.Port = "8080"
	}
	if c.MaxRequestBytes == 0 {
		c.MaxRequestBytes = 64 << 20
	}
	if c.JobWorkers == 0 {
		c.JobWorkers = 2
	}
	c.Matcher.ApplyDefaults()
}

// Validate checks the configuration and returns one message per problem.
func (c *ServerConfig) Validate() []string {
	var errors []string
	if strings.TrimSpace(c.Port) == "" {
		errors = append(errors, "port is required")
	}
	if c.MaxRequestBytes < 1 {
		errors = append(errors, "max_request_bytes must be positive")
	}
	if c.JobWorkers < 1 {
		errors = append(errors, "job_workers must be at least 1")
	}
	for _, e := range c.Matcher.Validate() {
		errors = append(errors, "matcher."+e)
	}
	return errors
}

// LoadServerConfig reads a YAML configuration file, applies defaults and
// validates the result.
func LoadServerConfig(path string) (ServerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ServerConfig{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return ParseServerConfig(data)
}

// ParseServerConfig decodes YAML configuration data.
func ParseServerConfig(data []byte) (ServerConfig, error) {
	var cfg ServerConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ServerConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.ApplyDefaults()
	if problems := cfg.Validate(); len(problems) > 0 {
		return ServerConfig{}, fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return cfg, nil
}
