// Package config loads ProcessingConfig documents from JSON or YAML
// files and fills in defaults.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/clipforge/clipforge/pkg/types"
)

// Load reads a processing config from path. Files ending in .yaml or .yml
// parse as YAML, everything else as JSON.
func Load(path string) (*types.ProcessingConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	var cfg types.ProcessingConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(err, "failed to parse YAML config")
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(err, "failed to parse JSON config")
		}
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// applyDefaults assigns generated ids to regions that arrived without
// one, so downstream logs and diagnostics can always name a region.
func applyDefaults(cfg *types.ProcessingConfig) {
	for i := range cfg.Zoom {
		if cfg.Zoom[i].ID == "" {
			cfg.Zoom[i].ID = uuid.NewString()
		}
	}
	for i := range cfg.Trim {
		if cfg.Trim[i].ID == "" {
			cfg.Trim[i].ID = uuid.NewString()
		}
	}
	for i := range cfg.Annotations {
		if cfg.Annotations[i].ID == "" {
			cfg.Annotations[i].ID = uuid.NewString()
		}
	}
}
