// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Viewer   ViewerConfig   `yaml:"viewer"`
	Assets   AssetsConfig   `yaml:"assets"`
	Remote   RemoteConfig   `yaml:"remote"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// ViewerConfig holds scene behavior settings.
type ViewerConfig struct {
	DefaultSystem   string  `yaml:"default_system"`    // system shown on startup
	AutoRotate      bool    `yaml:"auto_rotate"`       // idle model rotation
	AutoRotateSpeed float32 `yaml:"auto_rotate_speed"` // radians per second
	PainGlowCap     float32 `yaml:"pain_glow_cap"`     // max emissive fraction for pain highlights
}

// AssetsConfig holds model asset paths.
type AssetsConfig struct {
	ModelsDir string `yaml:"models_dir"`
}

// RemoteConfig holds the optional WebSocket control bridge settings.
type RemoteConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
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
			Height:     800,
			Fullscreen: false,
			VSync:      true,
		},
		Viewer: ViewerConfig{
			DefaultSystem:   "all",
			AutoRotate:      true,
			AutoRotateSpeed: 0.3,
			PainGlowCap:     0.5,
		},
		Assets: AssetsConfig{
			ModelsDir: "assets/models",
		},
		Remote: RemoteConfig{
			Enabled: false,
			Listen:  "127.0.0.1:8790",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
