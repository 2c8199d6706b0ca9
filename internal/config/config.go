// Package config handles viewer configuration loading and management.
package config

import "time"

// Config holds all viewer settings.
type Config struct {
	Graphics    GraphicsConfig   `yaml:"graphics"`
	Scene       SceneConfig      `yaml:"scene"`
	Camera      CameraConfig     `yaml:"camera"`
	Animation   AnimationConfig  `yaml:"animation"`
	Controls    ControlsConfig   `yaml:"controls"`
	Screenshots ScreenshotConfig `yaml:"screenshots"`
	Logging     LoggingConfig    `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width          int  `yaml:"width"`
	Height         int  `yaml:"height"`
	Fullscreen     bool `yaml:"fullscreen"`
	VSync          bool `yaml:"vsync"`
	FPSLimit       int  `yaml:"fps_limit"`        // 0 = unlimited
	MaxTextureSize int  `yaml:"max_texture_size"` // larger images are downscaled
}

// SceneConfig locates the model and the scene textures.
type SceneConfig struct {
	ModelDir   string        `yaml:"model_dir"`
	ModelFile  string        `yaml:"model_file"`
	TextureDir string        `yaml:"texture_dir"`
	Textures   TextureConfig `yaml:"textures"`
}

// TextureConfig names the image file for each scene surface.
type TextureConfig struct {
	Floor    string `yaml:"floor"`
	Stairs   string `yaml:"stairs"`
	Pedestal string `yaml:"pedestal"`
	Platform string `yaml:"platform"`
}

// CameraConfig holds the initial camera placement.
type CameraConfig struct {
	Distance float32 `yaml:"distance"`
}

// AnimationConfig holds climb animation settings.
type AnimationConfig struct {
	CompletionPause time.Duration `yaml:"completion_pause"` // blocking hold on the final pose
}

// ControlsConfig maps viewer actions to SDL key names.
type ControlsConfig struct {
	Bindings map[string][]string `yaml:"bindings"`
}

// ScreenshotConfig controls where screenshots are written.
type ScreenshotConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// DefaultBindings returns the stock key map.
func DefaultBindings() map[string][]string {
	return map[string][]string{
		"quit":           {"F4", "Escape"},
		"rotate_x_up":    {"E"},
		"rotate_x_down":  {"D"},
		"rotate_y_left":  {"F"},
		"rotate_y_right": {"S"},
		"zoom_out":       {"Keypad +", "="},
		"zoom_in":        {"Keypad -", "-"},
		"climb":          {"V"},
		"cycle_light":    {"M"},
		"open_model":     {"F2"},
		"screenshot":     {"F12"},
		"next_field":     {"Tab"},
		"erase":          {"Backspace"},
	}
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:          1024,
			Height:         768,
			Fullscreen:     false,
			VSync:          true,
			FPSLimit:       20,
			MaxTextureSize: 2048,
		},
		Scene: SceneConfig{
			ModelDir:   "assets/models/skeleton",
			ModelFile:  "skeleton.glb",
			TextureDir: "assets/textures",
			Textures: TextureConfig{
				Floor:    "tiles.jpg",
				Stairs:   "metal.jpg",
				Pedestal: "gold.jpg",
				Platform: "metal2.jpg",
			},
		},
		Camera: CameraConfig{
			Distance: 5000,
		},
		Animation: AnimationConfig{
			CompletionPause: 2 * time.Second,
		},
		Controls: ControlsConfig{
			Bindings: DefaultBindings(),
		},
		Screenshots: ScreenshotConfig{
			Dir:    "screenshots",
			Prefix: "stairscene",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
