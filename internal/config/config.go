package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// LinkConfig describes one serial link direction and its monitor.
type LinkConfig struct {
	Name            string        `toml:"name"`
	Device          string        `toml:"device"`
	Baud            int           `toml:"baud"`
	InitialSequence uint8         `toml:"initial_sequence"`
	HeartbeatTTL    int32         `toml:"heartbeat_ttl"`
	Monitor         MonitorConfig `toml:"monitor"`
}

// MonitorConfig configures the linkmon HTTP surface.
type MonitorConfig struct {
	Addr        string   `toml:"addr"`
	CorsOrigins []string `toml:"cors_origins"`
}

// Supported baud rates for the UART links we drive. The referee link
// runs at 115200, the controller image-transmission link at 921600.
var validBauds = map[int]bool{
	9600:    true,
	115200:  true,
	460800:  true,
	921600:  true,
	1000000: true,
}

func LoadLinkConfig(path string) (LinkConfig, error) {
	var cfg LinkConfig
	if err := loadToml(path, &cfg); err != nil {
		return LinkConfig{}, err
	}
	if cfg.Name == "" {
		cfg.Name = "uart-link"
	}
	if cfg.Baud == 0 {
		cfg.Baud = 115200
	}
	if cfg.HeartbeatTTL == 0 {
		cfg.HeartbeatTTL = 5
	}
	if cfg.Monitor.Addr == "" {
		cfg.Monitor.Addr = ":9000"
	}
	if err := ValidateLinkConfig(cfg); err != nil {
		return LinkConfig{}, err
	}
	return cfg, nil
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

func ValidateLinkConfig(cfg LinkConfig) error {
	if strings.TrimSpace(cfg.Name) == "" {
		return fmt.Errorf("link config missing name")
	}
	if strings.TrimSpace(cfg.Device) == "" {
		return fmt.Errorf("link config missing device")
	}
	if !validBauds[cfg.Baud] {
		return fmt.Errorf("link config baud %d unsupported", cfg.Baud)
	}
	if cfg.HeartbeatTTL < 1 {
		return fmt.Errorf("link config heartbeat_ttl must be positive")
	}
	if strings.TrimSpace(cfg.Monitor.Addr) == "" {
		return fmt.Errorf("link config missing monitor addr")
	}
	return nil
}
