package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate reports settings the viewer cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Graphics.FPSLimit < 0 {
		errs = append(errs, fmt.Errorf("fps_limit %d must not be negative", c.Graphics.FPSLimit))
	}
	if c.Animation.CompletionPause < 0 {
		errs = append(errs, fmt.Errorf("completion_pause %v must not be negative", c.Animation.CompletionPause))
	}
	if c.Scene.ModelFile == "" {
		errs = append(errs, errors.New("scene.model_file is required"))
	}
	for action, keys := range c.Controls.Bindings {
		if len(keys) == 0 {
			errs = append(errs, fmt.Errorf("controls.bindings.%s has no keys", action))
		}
	}
	return errors.Join(errs...)
}

// ModelPath returns the configured model file joined with its directory.
func (c *Config) ModelPath() string {
	return filepath.Join(c.Scene.ModelDir, c.Scene.ModelFile)
}

// TexturePath resolves a texture file name against the texture directory.
func (c *Config) TexturePath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Scene.TextureDir, name)
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "StairScene")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "StairScene")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "stairscene")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "stairscene")
	}
}

// loadFromFile merges a YAML file over the values already in cfg.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
