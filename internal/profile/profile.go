package profile

import (
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// Profile is the configuration to start the main server.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Version is the current version of server
	Version string

	// SchedulingURL is the external scheduling-link template booking
	// links are derived from. Empty means the built-in default.
	SchedulingURL string

	// AI Configuration
	AIAPIKey  string // SALESTOOL_AI_API_KEY
	AIBaseURL string // SALESTOOL_AI_BASE_URL (default: https://api.openai.com/v1)
	AIModel   string // SALESTOOL_AI_MODEL (default: gpt-4o-mini)
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// IsAIEnabled returns true if an API key is configured for the
// generation endpoints. The slot finder works without one.
func (p *Profile) IsAIEnabled() bool {
	return p.AIAPIKey != ""
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// FromEnv loads configuration from SALESTOOL_* environment variables.
func (p *Profile) FromEnv() {
	p.Mode = getEnvOrDefault("SALESTOOL_MODE", p.Mode)
	p.Addr = getEnvOrDefault("SALESTOOL_ADDR", p.Addr)
	if port := os.Getenv("SALESTOOL_PORT"); port != "" {
		if v, err := strconv.Atoi(port); err == nil {
			p.Port = v
		}
	}
	p.SchedulingURL = getEnvOrDefault("SALESTOOL_SCHEDULING_URL", p.SchedulingURL)
	p.AIAPIKey = getEnvOrDefault("SALESTOOL_AI_API_KEY", p.AIAPIKey)
	p.AIBaseURL = getEnvOrDefault("SALESTOOL_AI_BASE_URL", p.AIBaseURL)
	p.AIModel = getEnvOrDefault("SALESTOOL_AI_MODEL", p.AIModel)
}

// Validate normalizes the profile and rejects unusable values.
func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}

	if p.Port < 0 || p.Port > 65535 {
		return errors.Errorf("invalid port %d", p.Port)
	}
	if p.Port == 0 {
		p.Port = 8081
	}

	if p.SchedulingURL != "" {
		if _, err := url.Parse(p.SchedulingURL); err != nil {
			return errors.Wrapf(err, "invalid scheduling URL %q", p.SchedulingURL)
		}
	}

	if p.AIBaseURL == "" {
		p.AIBaseURL = "https://api.openai.com/v1"
	}
	if p.AIModel == "" {
		p.AIModel = "gpt-4o-mini"
	}

	return nil
}

// ListenAddr renders the bind address for the HTTP server.
func (p *Profile) ListenAddr() string {
	return fmt.Sprintf("%s:%d", p.Addr, p.Port)
}
