package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1024 || cfg.Graphics.Height != 768 {
		t.Errorf("expected 1024x768, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if cfg.Graphics.FPSLimit != 20 {
		t.Errorf("expected fps limit 20, got %d", cfg.Graphics.FPSLimit)
	}
	if cfg.Camera.Distance != 5000 {
		t.Errorf("expected camera distance 5000, got %f", cfg.Camera.Distance)
	}
	if cfg.Animation.CompletionPause != 2*time.Second {
		t.Errorf("expected completion pause 2s, got %v", cfg.Animation.CompletionPause)
	}
	if cfg.Scene.Textures.Pedestal != "gold.jpg" {
		t.Errorf("expected pedestal texture gold.jpg, got %s", cfg.Scene.Textures.Pedestal)
	}
	if got := cfg.Controls.Bindings["climb"]; !reflect.DeepEqual(got, []string{"V"}) {
		t.Errorf("expected climb bound to V, got %v", got)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  fps_limit: 60

scene:
  model_dir: "models/robot"
  model_file: "robot.gltf"
  textures:
    floor: "marble.png"

camera:
  distance: 4200

animation:
  completion_pause: 500ms

controls:
  bindings:
    climb: ["Space"]

logging:
  level: "debug"
  log_file: "viewer.log"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.ModelPath() != filepath.Join("models/robot", "robot.gltf") {
		t.Errorf("unexpected model path %s", cfg.ModelPath())
	}
	if cfg.Scene.Textures.Floor != "marble.png" {
		t.Errorf("expected floor texture override, got %s", cfg.Scene.Textures.Floor)
	}
	if cfg.Scene.Textures.Stairs != "metal.jpg" {
		t.Errorf("expected stairs texture default to survive, got %s", cfg.Scene.Textures.Stairs)
	}
	if cfg.Camera.Distance != 4200 {
		t.Errorf("expected distance 4200, got %f", cfg.Camera.Distance)
	}
	if cfg.Animation.CompletionPause != 500*time.Millisecond {
		t.Errorf("expected 500ms pause, got %v", cfg.Animation.CompletionPause)
	}
	if got := cfg.Controls.Bindings["climb"]; !reflect.DeepEqual(got, []string{"Space"}) {
		t.Errorf("expected climb rebound to Space, got %v", got)
	}
	if got := cfg.Controls.Bindings["cycle_light"]; !reflect.DeepEqual(got, []string{"M"}) {
		t.Errorf("expected untouched binding to keep default, got %v", got)
	}
	if cfg.Logging.LogFile != "viewer.log" {
		t.Errorf("expected log file 'viewer.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")
	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if err := loadFromFile(Default(), configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if err := loadFromFile(Default(), "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero width", func(c *Config) { c.Graphics.Width = 0 }, true},
		{"negative fps", func(c *Config) { c.Graphics.FPSLimit = -1 }, true},
		{"negative pause", func(c *Config) { c.Animation.CompletionPause = -time.Second }, true},
		{"no model", func(c *Config) { c.Scene.ModelFile = "" }, true},
		{"empty binding", func(c *Config) { c.Controls.Bindings["climb"] = nil }, true},
		{"zero pause allowed", func(c *Config) { c.Animation.CompletionPause = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTexturePath(t *testing.T) {
	cfg := Default()
	if got, want := cfg.TexturePath("tiles.jpg"), filepath.Join("assets/textures", "tiles.jpg"); got != want {
		t.Errorf("TexturePath = %s, want %s", got, want)
	}
	abs := filepath.Join(t.TempDir(), "x.png")
	if got := cfg.TexturePath(abs); got != abs {
		t.Errorf("absolute path should pass through, got %s", got)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Setenv("HOME", tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "model flag",
			setup: func() { *flagModel = filepath.Join("models", "ship", "ship.glb") },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Scene.ModelDir != filepath.Join("models", "ship") || cfg.Scene.ModelFile != "ship.glb" {
					t.Errorf("model flag split to %s + %s", cfg.Scene.ModelDir, cfg.Scene.ModelFile)
				}
			},
			teardown: func() { *flagModel = "" },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := `
graphics:
  width: 1600
  height: 900
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Camera.Distance = 3000
	cfg.Animation.CompletionPause = 750 * time.Millisecond
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if loaded.Camera.Distance != 3000 || loaded.Animation.CompletionPause != 750*time.Millisecond {
		t.Errorf("saved values lost: distance=%f pause=%v", loaded.Camera.Distance, loaded.Animation.CompletionPause)
	}
}
