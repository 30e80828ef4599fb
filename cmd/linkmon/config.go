package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// linkmon config.toml key mapping to monitor runtime settings.
type fileConfig struct {
	Node        string   `toml:"node"`
	Addr        string   `toml:"addr"`
	CorsOrigins []string `toml:"cors_origins"`
	LinkConfig  string   `toml:"link_config_path"`
	Source      string   `toml:"source"`
	ChunkBytes  int      `toml:"chunk_bytes"`
}

type monitorConfig struct {
	Node        string
	Addr        string
	CorsOrigins []string
	LinkConfig  string
	Source      string
	ChunkBytes  int
}

func defaultMonitorConfig() monitorConfig {
	return monitorConfig{
		Node:       "linkmon",
		Addr:       ":9000",
		ChunkBytes: 64,
	}
}

// linkmon loader for TOML config with default overlay.
func loadMonitorConfig(path string) (monitorConfig, error) {
	cfg := defaultMonitorConfig()
	if path == "" {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return monitorConfig{}, fmt.Errorf("load linkmon config: %w", err)
	}

	if meta.IsDefined("node") {
		cfg.Node = strings.TrimSpace(raw.Node)
	}
	if meta.IsDefined("addr") {
		cfg.Addr = strings.TrimSpace(raw.Addr)
	}
	if meta.IsDefined("cors_origins") {
		cfg.CorsOrigins = raw.CorsOrigins
	}
	if meta.IsDefined("link_config_path") {
		cfg.LinkConfig = strings.TrimSpace(raw.LinkConfig)
	}
	if meta.IsDefined("source") {
		cfg.Source = strings.TrimSpace(raw.Source)
	}
	if meta.IsDefined("chunk_bytes") {
		cfg.ChunkBytes = raw.ChunkBytes
	}

	if cfg.Node == "" {
		return monitorConfig{}, fmt.Errorf("load linkmon config: node must not be empty")
	}
	if cfg.Addr == "" {
		return monitorConfig{}, fmt.Errorf("load linkmon config: addr must not be empty")
	}
	if cfg.ChunkBytes < 1 {
		return monitorConfig{}, fmt.Errorf("load linkmon config: chunk_bytes must be positive")
	}
	return cfg, nil
}
