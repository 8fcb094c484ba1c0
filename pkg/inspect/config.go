// Package inspect serves structural snapshots of a presenter's rendered
// tree over HTTP for inspection tooling.
package inspect

import (
	"fmt"
	"os"
	"path/filepath"

	stderrors "errors"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// CurrentProtocol is the snapshot wire format version served by this build.
const CurrentProtocol = "v1.0.0"

// minProtocol is the oldest protocol version tooling may request.
const minProtocol = "v1.0.0"

// Config represents the optional present.yaml configuration.
type Config struct {
	Inspector InspectorConfig `yaml:"inspector"`
}

// InspectorConfig contains inspection server settings.
type InspectorConfig struct {
	// Port to listen on; 0 selects an ephemeral port.
	Port int `yaml:"port,omitempty"`
	// Protocol pins the snapshot wire format expected by tooling.
	Protocol string `yaml:"protocol,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Port     int
	Protocol string
}

// LoadOptional reads present.yaml from dir if present. A missing file is not
// an error; it yields the zero config.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, "present.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read present.yaml: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse present.yaml: %w", err)
	}

	return &cfg, nil
}

// Resolve validates the config and fills in defaults.
func (c *Config) Resolve() (Resolved, error) {
	resolved := Resolved{
		Port:     c.Inspector.Port,
		Protocol: c.Inspector.Protocol,
	}
	if resolved.Port < 0 || resolved.Port > 65535 {
		return Resolved{}, fmt.Errorf("inspector port %d out of range", resolved.Port)
	}
	if resolved.Protocol == "" {
		resolved.Protocol = CurrentProtocol
		return resolved, nil
	}
	if !semver.IsValid(resolved.Protocol) {
		return Resolved{}, fmt.Errorf("inspector protocol %q is not a valid semantic version", resolved.Protocol)
	}
	if semver.Compare(resolved.Protocol, minProtocol) < 0 {
		return Resolved{}, fmt.Errorf("inspector protocol %s is older than the minimum supported %s", resolved.Protocol, minProtocol)
	}
	if semver.Compare(resolved.Protocol, CurrentProtocol) > 0 {
		return Resolved{}, fmt.Errorf("inspector protocol %s is newer than this build's %s", resolved.Protocol, CurrentProtocol)
	}
	return resolved, nil
}
