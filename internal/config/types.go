package config

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration to support string based YAML decoding.
type Duration struct {
	time.Duration
}

// UnmarshalYAML parses duration values expressed as Go-style strings or numbers interpreted as seconds.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		raw := strings.TrimSpace(value.Value)
		if raw == "" {
			d.Duration = 0
			return nil
		}
		parsed, err := time.ParseDuration(raw)
		if err == nil {
			d.Duration = parsed
			return nil
		}
		secs, convErr := time.ParseDuration(fmt.Sprintf("%ss", raw))
		if convErr == nil {
			d.Duration = secs
			return nil
		}
		return fmt.Errorf("invalid duration value %q: %w", raw, err)
	default:
		return fmt.Errorf("unsupported duration node kind: %v", value.Kind)
	}
}

// MarshalYAML renders the duration as a string to keep config edits human-friendly.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// Config holds application level configuration aggregated from file and environment variables.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
	Security  SecurityConfig  `yaml:"security"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Address            string   `yaml:"address"`
	ReadTimeout        Duration `yaml:"read_timeout"`
	WriteTimeout       Duration `yaml:"write_timeout"`
	IdleTimeout        Duration `yaml:"idle_timeout"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	AdminMetricsAPIKey string   `yaml:"admin_metrics_api_key"` // Optional API key to protect /metrics (leave empty to disable protection)
}

// LoggingConfig holds structured logging configuration.
type LoggingConfig struct {
	Level       string `yaml:"level"`       // debug, info, warn, error (default: info)
	Format      string `yaml:"format"`      // json, console (default: json)
	Environment string `yaml:"environment"` // production, staging, development
}

// RateLimitConfig holds per-IP rate limiting configuration.
type RateLimitConfig struct {
	Enabled bool     `yaml:"enabled"` // Enable per-IP rate limiting
	Limit   int      `yaml:"limit"`   // Requests allowed per IP per window
	Window  Duration `yaml:"window"`  // Time window for the limit
}

// SecurityConfig is the resolved security header policy for one process.
// It is built once by Load before the listener starts and never mutated after,
// so it is shared across request goroutines without locking.
type SecurityConfig struct {
	// X-Content-Type-Options header value
	ContentTypeOptions string `yaml:"content_type_options"`

	// X-Frame-Options header value
	FrameOptions string `yaml:"frame_options"`

	// X-XSS-Protection header value
	XSSProtection string `yaml:"xss_protection"`

	// Strict-Transport-Security sub-policy
	HSTS HSTSConfig `yaml:"hsts"`

	// Content-Security-Policy sub-policy
	CSP CSPConfig `yaml:"csp"`

	// Referrer-Policy header value
	ReferrerPolicy string `yaml:"referrer_policy"`

	// Permissions-Policy header value
	PermissionsPolicy string `yaml:"permissions_policy"`

	// Server header value, applied only when the handler did not set one
	ServerHeader string `yaml:"server_header"`
}

// HSTSConfig holds the Strict-Transport-Security sub-policy.
type HSTSConfig struct {
	MaxAge            uint32 `yaml:"max_age"` // seconds
	IncludeSubdomains bool   `yaml:"include_subdomains"`
	Preload           bool   `yaml:"preload"`
}

// CSPConfig holds one opaque source-expression string per CSP directive.
// Values are emitted verbatim; no token syntax validation is performed.
type CSPConfig struct {
	DefaultSrc string `yaml:"default_src"`
	ScriptSrc  string `yaml:"script_src"`
	StyleSrc   string `yaml:"style_src"`
	ImgSrc     string `yaml:"img_src"`
	ConnectSrc string `yaml:"connect_src"`
	FontSrc    string `yaml:"font_src"`
	ObjectSrc  string `yaml:"object_src"`
	MediaSrc   string `yaml:"media_src"`
	FrameSrc   string `yaml:"frame_src"`
	ChildSrc   string `yaml:"child_src"`
	WorkerSrc  string `yaml:"worker_src"`
	BaseURI    string `yaml:"base_uri"`
	FormAction string `yaml:"form_action"`
}
