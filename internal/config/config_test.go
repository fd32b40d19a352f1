package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 800 {
		t.Errorf("expected height 800, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	if cfg.Viewer.DefaultSystem != "all" {
		t.Errorf("expected default system 'all', got %s", cfg.Viewer.DefaultSystem)
	}
	if !cfg.Viewer.AutoRotate {
		t.Error("expected auto rotate to be enabled by default")
	}
	if cfg.Viewer.PainGlowCap != 0.5 {
		t.Errorf("expected pain glow cap 0.5, got %f", cfg.Viewer.PainGlowCap)
	}

	if cfg.Assets.ModelsDir != "assets/models" {
		t.Errorf("expected models dir 'assets/models', got %s", cfg.Assets.ModelsDir)
	}

	if cfg.Remote.Enabled {
		t.Error("expected remote bridge to be disabled by default")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

viewer:
  default_system: "circulatory"
  auto_rotate: false
  auto_rotate_speed: 0.5
  pain_glow_cap: 0.4

assets:
  models_dir: "/opt/anatomy/models"

remote:
  enabled: true
  listen: "0.0.0.0:9000"

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

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.VSync {
		t.Error("expected vsync to be false")
	}

	if cfg.Viewer.DefaultSystem != "circulatory" {
		t.Errorf("expected system 'circulatory', got %s", cfg.Viewer.DefaultSystem)
	}
	if cfg.Viewer.AutoRotate {
		t.Error("expected auto rotate to be false")
	}
	if cfg.Viewer.PainGlowCap != 0.4 {
		t.Errorf("expected pain glow cap 0.4, got %f", cfg.Viewer.PainGlowCap)
	}

	if cfg.Assets.ModelsDir != "/opt/anatomy/models" {
		t.Errorf("expected models dir '/opt/anatomy/models', got %s", cfg.Assets.ModelsDir)
	}

	if !cfg.Remote.Enabled {
		t.Error("expected remote bridge to be enabled")
	}
	if cfg.Remote.Listen != "0.0.0.0:9000" {
		t.Errorf("expected listen '0.0.0.0:9000', got %s", cfg.Remote.Listen)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "viewer.log" {
		t.Errorf("expected log file 'viewer.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "system flag",
			setup: func() { *flagSystem = "nervous" },
			verify: func(cfg *Config) {
				if cfg.Viewer.DefaultSystem != "nervous" {
					t.Errorf("expected system 'nervous', got %s", cfg.Viewer.DefaultSystem)
				}
			},
			teardown: func() { *flagSystem = "" },
		},
		{
			name:  "models flag",
			setup: func() { *flagModels = "/data/models" },
			verify: func(cfg *Config) {
				if cfg.Assets.ModelsDir != "/data/models" {
					t.Errorf("expected models dir '/data/models', got %s", cfg.Assets.ModelsDir)
				}
			},
			teardown: func() { *flagModels = "" },
		},
		{
			name:  "remote flag",
			setup: func() { *flagRemote = "127.0.0.1:9100" },
			verify: func(cfg *Config) {
				if !cfg.Remote.Enabled {
					t.Error("expected remote bridge to be enabled")
				}
				if cfg.Remote.Listen != "127.0.0.1:9100" {
					t.Errorf("expected listen '127.0.0.1:9100', got %s", cfg.Remote.Listen)
				}
			},
			teardown: func() { *flagRemote = "" },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Graphics.Width)
				}
				if cfg.Graphics.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Graphics.Height)
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
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

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

	// Width from flag (1920), not file (1600); height from file.
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestSaveTo(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "sub", "config.yaml")

	cfg := Default()
	cfg.Viewer.DefaultSystem = "digestive"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if loaded.Viewer.DefaultSystem != "digestive" {
		t.Errorf("round trip lost default system, got %s", loaded.Viewer.DefaultSystem)
	}
}
