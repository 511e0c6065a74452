package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ServiceName is the identity this service advertises in health output,
// log fields, and the default Server header.
const ServiceName = "tunnelfront"

// Load reads configuration from an optional YAML file and applies environment
// overrides. The returned Config is fully resolved and treated as immutable by
// the rest of the process; a parse failure in any override variable aborts
// start-up rather than running with a partially-resolved policy.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if path != "" {
		if err := cfg.parseFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	cfg.finalize()

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Address:      ":8080",
			ReadTimeout:  Duration{Duration: 15 * time.Second},
			WriteTimeout: Duration{Duration: 15 * time.Second},
			IdleTimeout:  Duration{Duration: 60 * time.Second},
		},
		Logging: LoggingConfig{
			Level:       "info",
			Format:      "json",
			Environment: "production",
		},
		Security: defaultSecurityConfig(),
		RateLimit: RateLimitConfig{
			// Generous limit - designed to prevent spam, not restrict legitimate use
			Enabled: true,
			Limit:   120,
			Window:  Duration{Duration: 1 * time.Minute},
		},
	}
}

// defaultSecurityConfig returns the built-in header policy applied when no
// file or environment override says otherwise.
func defaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		ContentTypeOptions: "nosniff",
		FrameOptions:       "DENY",
		XSSProtection:      "1; mode=block",
		HSTS: HSTSConfig{
			MaxAge:            31536000, // 1 year
			IncludeSubdomains: true,
			Preload:           true,
		},
		CSP: CSPConfig{
			DefaultSrc: "'self'",
			ScriptSrc:  "'self'",
			StyleSrc:   "'self' 'unsafe-inline'",
			ImgSrc:     "'self' data:",
			ConnectSrc: "'self'",
			FontSrc:    "'self'",
			ObjectSrc:  "'none'",
			MediaSrc:   "'self'",
			FrameSrc:   "'none'",
			ChildSrc:   "'none'",
			WorkerSrc:  "'none'",
			BaseURI:    "'self'",
			FormAction: "'self'",
		},
		ReferrerPolicy:    "strict-origin-when-cross-origin",
		PermissionsPolicy: "geolocation=(), microphone=(), camera=()",
		ServerHeader:      ServiceName,
	}
}

// parseFile reads and unmarshals a YAML configuration file.
func (c *Config) parseFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config yaml: %w", err)
	}
	return nil
}

// finalize backfills zero values left behind by a sparse YAML file.
func (c *Config) finalize() {
	if c.Server.Address == "" {
		c.Server.Address = ":8080"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Logging.Environment == "" {
		c.Logging.Environment = "production"
	}
	if c.RateLimit.Limit <= 0 {
		c.RateLimit.Limit = 120
	}
	if c.RateLimit.Window.Duration <= 0 {
		c.RateLimit.Window = Duration{Duration: 1 * time.Minute}
	}
	if c.Security.ServerHeader == "" {
		c.Security.ServerHeader = ServiceName
	}
}
