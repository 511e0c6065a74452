package config

import (
	"os"
	"strconv"
	"strings"
)

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over YAML configuration. Security
// header variables keep their unprefixed names for compatibility with
// existing deployments; server and logging variables use the TUNNELFRONT_
// prefix for namespace isolation.
//
// Overrides are applied field by field in a fixed order. A variable that is
// absent or empty leaves the current value untouched; a variable that is
// present but fails to parse returns a *ConfigError.
func (c *Config) applyEnvOverrides() error {
	// Server config
	setIfEnv(&c.Server.Address, "TUNNELFRONT_SERVER_ADDRESS")
	setIfEnv(&c.Server.AdminMetricsAPIKey, "TUNNELFRONT_ADMIN_METRICS_API_KEY")
	if v := os.Getenv("TUNNELFRONT_CORS_ALLOWED_ORIGINS"); v != "" {
		c.Server.CORSAllowedOrigins = splitAndTrim(v)
	}

	// Logging config
	setIfEnv(&c.Logging.Level, "TUNNELFRONT_LOG_LEVEL")
	setIfEnv(&c.Logging.Format, "TUNNELFRONT_LOG_FORMAT")
	setIfEnv(&c.Logging.Environment, "TUNNELFRONT_ENVIRONMENT")

	// Security header policy
	setIfEnv(&c.Security.ContentTypeOptions, "SECURITY_CONTENT_TYPE_OPTIONS")
	setIfEnv(&c.Security.FrameOptions, "SECURITY_FRAME_OPTIONS")
	setIfEnv(&c.Security.XSSProtection, "SECURITY_XSS_PROTECTION")

	if err := setUint32Env(&c.Security.HSTS.MaxAge, "SECURITY_HSTS_MAX_AGE"); err != nil {
		return err
	}
	if err := setBoolEnv(&c.Security.HSTS.IncludeSubdomains, "SECURITY_HSTS_INCLUDE_SUBDOMAINS"); err != nil {
		return err
	}
	if err := setBoolEnv(&c.Security.HSTS.Preload, "SECURITY_HSTS_PRELOAD"); err != nil {
		return err
	}

	// Only the default/script/style CSP directives are overridable from the
	// environment; the remaining directives are file/default-only.
	setIfEnv(&c.Security.CSP.DefaultSrc, "SECURITY_CSP_DEFAULT_SRC")
	setIfEnv(&c.Security.CSP.ScriptSrc, "SECURITY_CSP_SCRIPT_SRC")
	setIfEnv(&c.Security.CSP.StyleSrc, "SECURITY_CSP_STYLE_SRC")

	setIfEnv(&c.Security.ReferrerPolicy, "SECURITY_REFERRER_POLICY")
	setIfEnv(&c.Security.PermissionsPolicy, "SECURITY_PERMISSIONS_POLICY")
	setIfEnv(&c.Security.ServerHeader, "SERVER_HEADER")

	// Rate limit config
	if err := setBoolEnv(&c.RateLimit.Enabled, "TUNNELFRONT_RATE_LIMIT_ENABLED"); err != nil {
		return err
	}
	if v := os.Getenv("TUNNELFRONT_RATE_LIMIT"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 {
			return &ConfigError{Variable: "TUNNELFRONT_RATE_LIMIT", Value: v, Reason: "must be a positive integer"}
		}
		c.RateLimit.Limit = limit
	}

	return nil
}

// setIfEnv sets a string pointer to the environment variable value if it exists.
func setIfEnv(target *string, key string) {
	if val := os.Getenv(key); val != "" {
		*target = val
	}
}

// setBoolEnv sets a boolean from an environment variable, accepting the
// strconv.ParseBool forms ("true", "false", "1", "0", ...).
func setBoolEnv(target *bool, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return &ConfigError{Variable: key, Value: v, Reason: "must be a boolean"}
	}
	*target = parsed
	return nil
}

// setUint32Env sets a uint32 from an environment variable.
func setUint32Env(target *uint32, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parsed, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return &ConfigError{Variable: key, Value: v, Reason: "must be a non-negative integer"}
	}
	*target = uint32(parsed)
	return nil
}

// splitAndTrim splits a comma-separated list and trims whitespace around entries.
func splitAndTrim(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
