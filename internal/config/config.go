package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const DefaultFrameRate = 60

type Config struct {
	Game    GameConfig    `yaml:"game"`
	Assets  AssetsConfig  `yaml:"assets"`
	Logging LoggingConfig `yaml:"logging"`
	Session SessionConfig `yaml:"session"`
}

type GameConfig struct {
	// FrameRate is the simulation tick rate in ticks per second.
	FrameRate int `yaml:"frame_rate"`
}

type AssetsConfig struct {
	Dir string `yaml:"dir"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type SessionConfig struct {
	// ServerAddr is the session server to connect to when hosting or joining.
	ServerAddr string `yaml:"server_addr"`
	// DeviceName identifies this device to other session members.
	DeviceName string `yaml:"device_name"`
}

func Default() *Config {
	return &Config{
		Game:    GameConfig{FrameRate: DefaultFrameRate},
		Assets:  AssetsConfig{Dir: "assets"},
		Logging: LoggingConfig{Level: "info"},
		Session: SessionConfig{ServerAddr: "127.0.0.1:1618", DeviceName: defaultDeviceName()},
	}
}

func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Game.FrameRate <= 0 {
		return fmt.Errorf("config: frame_rate must be positive, got %d", c.Game.FrameRate)
	}
	if c.Assets.Dir == "" {
		return fmt.Errorf("config: assets dir must not be empty")
	}
	return nil
}

func defaultDeviceName() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		return "will"
	}
	return host
}
