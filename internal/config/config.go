// Package config handles viewer configuration loading and management.
package config

import "github.com/Faultbox/lodview/internal/engine/lod"

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Viewer   ViewerConfig   `yaml:"viewer"`
	LOD      lod.Config     `yaml:"lod"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// ViewerConfig holds model and presentation settings.
type ViewerConfig struct {
	Models     []string   `yaml:"models"`     // OBJ files loaded at startup
	Background [3]float32 `yaml:"background"` // clear color
	ShowStats  bool       `yaml:"show_stats"` // log per-level memory usage periodically
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Viewer: ViewerConfig{
			Background: [3]float32{0.15, 0.15, 0.2},
			ShowStats:  false,
		},
		LOD: lod.DefaultConfig(),
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
