package process

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// ProcessConfig describes an external script allowed to receive records.
type ProcessConfig struct {
	Name        string        `yaml:"name" json:"name" mapstructure:"name" validate:"required"`
	Command     string        `yaml:"command" json:"command" mapstructure:"command" validate:"required"`
	Args        []string      `yaml:"args" json:"args" mapstructure:"args"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout" mapstructure:"timeout" validate:"gte=0"`
	Description string        `yaml:"description" json:"description" mapstructure:"description"`
}

// ConfigFile represents the structure of a standalone scripts.yaml.
type ConfigFile struct {
	Scripts []ProcessConfig `yaml:"scripts" json:"scripts" mapstructure:"scripts"`
}

// LoadScripts reads a configuration file (YAML or JSON) and returns the scripts by name.
// A missing file yields an empty registry.
func LoadScripts(path string) (map[string]ProcessConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]ProcessConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read scripts config: %w", err)
	}

	// Both formats go through mapstructure so "timeout": "2s" reads the same in each.
	raw := map[string]any{}
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		err = json.Unmarshal(data, &raw)
	} else {
		err = yaml.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	var cfg ConfigFile
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     &cfg,
		DecodeHook: mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return Index(cfg.Scripts), nil
}

// Index keys scripts by name, skipping unnamed entries.
func Index(scripts []ProcessConfig) map[string]ProcessConfig {
	out := make(map[string]ProcessConfig, len(scripts))
	for _, s := range scripts {
		if s.Name == "" {
			continue
		}
		out[s.Name] = s
	}
	return out
}
