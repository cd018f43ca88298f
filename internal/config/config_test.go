package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name       string
		createFile bool
		content    string
		wantErr    bool
		validate   func(t *testing.T, cfg *Config, err error)
	}{
		{
			name:       "valid yaml",
			createFile: true,
			content: `game:
  frame_rate: 30
assets:
  dir: "testdata/assets"
logging:
  level: "debug"
  file: "will.log"
session:
  server_addr: "sessiond.example.com:1618"
  device_name: "player-one"
`,
			wantErr: false,
			validate: func(t *testing.T, cfg *Config, err error) {
				if cfg.Game.FrameRate != 30 {
					t.Errorf("Game.FrameRate = %d, want %d", cfg.Game.FrameRate, 30)
				}
				if cfg.Assets.Dir != "testdata/assets" {
					t.Errorf("Assets.Dir = %q, want %q", cfg.Assets.Dir, "testdata/assets")
				}
				if cfg.Logging.Level != "debug" {
					t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
				}
				if cfg.Logging.File != "will.log" {
					t.Errorf("Logging.File = %q, want %q", cfg.Logging.File, "will.log")
				}
				if cfg.Session.ServerAddr != "sessiond.example.com:1618" {
					t.Errorf("Session.ServerAddr = %q, want %q", cfg.Session.ServerAddr, "sessiond.example.com:1618")
				}
				if cfg.Session.DeviceName != "player-one" {
					t.Errorf("Session.DeviceName = %q, want %q", cfg.Session.DeviceName, "player-one")
				}
			},
		},
		{
			name:       "missing sections fall back to defaults",
			createFile: true,
			content: `logging:
  level: "warn"
`,
			wantErr: false,
			validate: func(t *testing.T, cfg *Config, err error) {
				if cfg.Game.FrameRate != DefaultFrameRate {
					t.Errorf("Game.FrameRate = %d, want default %d", cfg.Game.FrameRate, DefaultFrameRate)
				}
				if cfg.Assets.Dir != "assets" {
					t.Errorf("Assets.Dir = %q, want default %q", cfg.Assets.Dir, "assets")
				}
			},
		},
		{
			name:       "negative frame rate rejected",
			createFile: true,
			content: `game:
  frame_rate: -1
`,
			wantErr: true,
			validate: func(t *testing.T, cfg *Config, err error) {
				if !strings.Contains(err.Error(), "frame_rate") {
					t.Errorf("error %q does not mention frame_rate", err)
				}
			},
		},
		{
			name:       "malformed yaml",
			createFile: true,
			content:    "game: [unclosed",
			wantErr:    true,
		},
		{
			name:       "missing file",
			createFile: false,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if tt.createFile {
				if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
					t.Fatalf("write config: %v", err)
				}
			}

			cfg, err := Load(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.validate != nil {
				tt.validate(t, cfg, err)
			}
		})
	}
}

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v, want nil", err)
	}
}
