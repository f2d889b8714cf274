package config

import "strings"

// Config is the root configuration of the strokerisk service.
type Config struct {
	App   AppConfig   `toml:"app"`
	Web   WebConfig   `toml:"web"`
	Model ModelConfig `toml:"model"`
	API   APIConfig   `toml:"api"`
	Store StoreConfig `toml:"store"`
}

type AppConfig struct {
	Env      string `toml:"env"`
	LogLevel string `toml:"log_level"`
	LogPath  string `toml:"log_path"`
	HTTPAddr string `toml:"http_addr"`
}

// WebConfig points at on-disk templates/assets. Empty values use the embedded copies.
type WebConfig struct {
	TemplateDir string `toml:"template_dir"`
	StaticDir   string `toml:"static_dir"`
}

// ModelConfig locates the classifier artifact.
type ModelConfig struct {
	Path  string `toml:"path"`
	Watch bool   `toml:"watch"` // reload the artifact when the file changes
}

type APIConfig struct {
	// LegacyFieldOrder builds the /predict_api vector in the order keys appear
	// in the request body instead of the fixed feature order.
	LegacyFieldOrder bool  `toml:"legacy_field_order"`
	MaxBodyBytes     int64 `toml:"max_body_bytes"`
}

// StoreConfig enables the prediction audit log when Path is set.
type StoreConfig struct {
	Path string `toml:"path"`
}

// Enabled reports whether predictions should be persisted.
func (s StoreConfig) Enabled() bool {
	return strings.TrimSpace(s.Path) != ""
}

type keySet map[string]struct{}

func (k keySet) mark(path string) {
	path = strings.ToLower(strings.TrimSpace(path))
	if path == "" {
		return
	}
	k[path] = struct{}{}
}

func (k keySet) isSet(path string) bool {
	if len(k) == 0 {
		return false
	}
	path = strings.ToLower(strings.TrimSpace(path))
	if path == "" {
		return false
	}
	_, ok := k[path]
	return ok
}
