package config

import (
	"fmt"
	"strings"
)

func validate(c *Config) error {
	if err := c.App.validate(); err != nil {
		return err
	}
	if err := c.Model.validate(); err != nil {
		return err
	}
	if err := c.API.validate(); err != nil {
		return err
	}
	return nil
}

func (a *AppConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(a.LogLevel)) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("app.log_level must be one of debug|info|warn|error, got %q", a.LogLevel)
	}
	if strings.TrimSpace(a.HTTPAddr) == "" {
		return fmt.Errorf("app.http_addr cannot be empty")
	}
	return nil
}

func (m *ModelConfig) validate() error {
	if strings.TrimSpace(m.Path) == "" {
		return fmt.Errorf("model.path cannot be empty")
	}
	return nil
}

func (a *APIConfig) validate() error {
	if a.MaxBodyBytes < 0 {
		return fmt.Errorf("api.max_body_bytes must be >= 0")
	}
	return nil
}
