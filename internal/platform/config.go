package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the optional per-directory configuration file.
const ConfigFileName = "lummu.yaml"

// FileConfig mirrors lummu.yaml. Unset fields keep their defaults.
type FileConfig struct {
	Adapter       string `yaml:"adapter"`
	Versioning    *bool  `yaml:"versioning"`
	SystemDir     string `yaml:"system_dir"`
	NotesKey      string `yaml:"notes_key"`
	BackgroundKey string `yaml:"background_key"`
	ReadOnly      bool   `yaml:"read_only"`
	DevSafety     *bool  `yaml:"dev_safety"`
}

// LoadConfig reads lummu.yaml from dir. A missing file yields a zero config.
func LoadConfig(dir string) (FileConfig, error) {
	var cfg FileConfig

	data, err := os.ReadFile(filepath.Join(dir, ConfigFileName))
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read %s: %w", ConfigFileName, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid %s: %w", ConfigFileName, err)
	}

	switch cfg.Adapter {
	case "", "fs", "sqlite", "memory":
	default:
		return cfg, fmt.Errorf("invalid %s: unknown adapter %q", ConfigFileName, cfg.Adapter)
	}
	return cfg, nil
}

// Options converts the file settings into functional options.
// They are meant to be applied before command-line overrides.
func (c FileConfig) Options() []Option {
	var opts []Option
	if c.Adapter != "" {
		opts = append(opts, WithAdapter(c.Adapter))
	}
	if c.Versioning != nil {
		opts = append(opts, WithVersioning(*c.Versioning))
	}
	if c.SystemDir != "" {
		opts = append(opts, WithSystemDir(c.SystemDir))
	}
	if c.NotesKey != "" {
		opts = append(opts, WithNotesKey(c.NotesKey))
	}
	if c.BackgroundKey != "" {
		opts = append(opts, WithBackgroundKey(c.BackgroundKey))
	}
	if c.ReadOnly {
		opts = append(opts, WithReadOnly(true))
	}
	if c.DevSafety != nil {
		opts = append(opts, WithDevSafety(*c.DevSafety))
	}
	return opts
}
