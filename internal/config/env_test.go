package config

import (
	"errors"
	"os"
	"strings"
	"testing"
)

func TestEnvOverrides_SecurityStrings(t *testing.T) {
	defer os.Clearenv()

	tests := []struct {
		name      string
		envVars   map[string]string
		checkFunc func(*testing.T, *Config)
	}{
		{
			name: "SECURITY_CONTENT_TYPE_OPTIONS overrides default",
			envVars: map[string]string{
				"SECURITY_CONTENT_TYPE_OPTIONS": "nosniff-custom",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				if cfg.Security.ContentTypeOptions != "nosniff-custom" {
					t.Errorf("expected nosniff-custom, got %s", cfg.Security.ContentTypeOptions)
				}
			},
		},
		{
			name: "SECURITY_FRAME_OPTIONS override",
			envVars: map[string]string{
				"SECURITY_FRAME_OPTIONS": "SAMEORIGIN",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				if cfg.Security.FrameOptions != "SAMEORIGIN" {
					t.Errorf("expected SAMEORIGIN, got %s", cfg.Security.FrameOptions)
				}
			},
		},
		{
			name: "SECURITY_XSS_PROTECTION override",
			envVars: map[string]string{
				"SECURITY_XSS_PROTECTION": "0",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				if cfg.Security.XSSProtection != "0" {
					t.Errorf("expected 0, got %s", cfg.Security.XSSProtection)
				}
			},
		},
		{
			name: "SECURITY_REFERRER_POLICY override",
			envVars: map[string]string{
				"SECURITY_REFERRER_POLICY": "no-referrer",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				if cfg.Security.ReferrerPolicy != "no-referrer" {
					t.Errorf("expected no-referrer, got %s", cfg.Security.ReferrerPolicy)
				}
			},
		},
		{
			name: "SECURITY_PERMISSIONS_POLICY override",
			envVars: map[string]string{
				"SECURITY_PERMISSIONS_POLICY": "camera=(self)",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				if cfg.Security.PermissionsPolicy != "camera=(self)" {
					t.Errorf("expected camera=(self), got %s", cfg.Security.PermissionsPolicy)
				}
			},
		},
		{
			name: "SERVER_HEADER override",
			envVars: map[string]string{
				"SERVER_HEADER": "edge-gateway",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				if cfg.Security.ServerHeader != "edge-gateway" {
					t.Errorf("expected edge-gateway, got %s", cfg.Security.ServerHeader)
				}
			},
		},
		{
			name:    "empty variable leaves default untouched",
			envVars: map[string]string{"SECURITY_FRAME_OPTIONS": ""},
			checkFunc: func(t *testing.T, cfg *Config) {
				if cfg.Security.FrameOptions != "DENY" {
					t.Errorf("expected default DENY, got %s", cfg.Security.FrameOptions)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			for k, v := range tt.envVars {
				os.Setenv(k, v)
			}

			cfg := defaultConfig()
			if err := cfg.applyEnvOverrides(); err != nil {
				t.Fatalf("applyEnvOverrides: %v", err)
			}
			tt.checkFunc(t, cfg)
		})
	}
}

func TestEnvOverrides_HSTS(t *testing.T) {
	defer os.Clearenv()

	tests := []struct {
		name      string
		envVars   map[string]string
		checkFunc func(*testing.T, *Config)
	}{
		{
			name: "SECURITY_HSTS_MAX_AGE override",
			envVars: map[string]string{
				"SECURITY_HSTS_MAX_AGE": "3600",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				if cfg.Security.HSTS.MaxAge != 3600 {
					t.Errorf("expected 3600, got %d", cfg.Security.HSTS.MaxAge)
				}
			},
		},
		{
			name: "SECURITY_HSTS_INCLUDE_SUBDOMAINS boolean (false)",
			envVars: map[string]string{
				"SECURITY_HSTS_INCLUDE_SUBDOMAINS": "false",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				if cfg.Security.HSTS.IncludeSubdomains {
					t.Error("expected includeSubDomains disabled")
				}
			},
		},
		{
			name: "SECURITY_HSTS_PRELOAD boolean (false)",
			envVars: map[string]string{
				"SECURITY_HSTS_PRELOAD": "false",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				if cfg.Security.HSTS.Preload {
					t.Error("expected preload disabled")
				}
			},
		},
		{
			name: "short HSTS value serializes exactly",
			envVars: map[string]string{
				"SECURITY_HSTS_MAX_AGE":            "3600",
				"SECURITY_HSTS_INCLUDE_SUBDOMAINS": "false",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				if got := cfg.Security.HSTSHeaderValue(); got != "max-age=3600; preload" {
					t.Errorf("HSTSHeaderValue() = %q, want %q", got, "max-age=3600; preload")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			for k, v := range tt.envVars {
				os.Setenv(k, v)
			}

			cfg := defaultConfig()
			if err := cfg.applyEnvOverrides(); err != nil {
				t.Fatalf("applyEnvOverrides: %v", err)
			}
			tt.checkFunc(t, cfg)
		})
	}
}

func TestEnvOverrides_CSPAsymmetry(t *testing.T) {
	// Only default/script/style are environment-overridable; the other
	// directives must ignore lookalike variables.
	defer os.Clearenv()
	os.Clearenv()
	os.Setenv("SECURITY_CSP_DEFAULT_SRC", "'none'")
	os.Setenv("SECURITY_CSP_SCRIPT_SRC", "'self' cdn.example.com")
	os.Setenv("SECURITY_CSP_STYLE_SRC", "'self'")
	os.Setenv("SECURITY_CSP_IMG_SRC", "'none'")
	os.Setenv("SECURITY_CSP_FRAME_SRC", "'self'")

	cfg := defaultConfig()
	if err := cfg.applyEnvOverrides(); err != nil {
		t.Fatalf("applyEnvOverrides: %v", err)
	}

	if cfg.Security.CSP.DefaultSrc != "'none'" {
		t.Errorf("default-src not overridden: %s", cfg.Security.CSP.DefaultSrc)
	}
	if cfg.Security.CSP.ScriptSrc != "'self' cdn.example.com" {
		t.Errorf("script-src not overridden: %s", cfg.Security.CSP.ScriptSrc)
	}
	if cfg.Security.CSP.StyleSrc != "'self'" {
		t.Errorf("style-src not overridden: %s", cfg.Security.CSP.StyleSrc)
	}
	if cfg.Security.CSP.ImgSrc != "'self' data:" {
		t.Errorf("img-src must keep its default, got %s", cfg.Security.CSP.ImgSrc)
	}
	if cfg.Security.CSP.FrameSrc != "'none'" {
		t.Errorf("frame-src must keep its default, got %s", cfg.Security.CSP.FrameSrc)
	}
}

func TestEnvOverrides_ParseFailures(t *testing.T) {
	defer os.Clearenv()

	tests := []struct {
		name     string
		variable string
		value    string
	}{
		{"non-numeric max age", "SECURITY_HSTS_MAX_AGE", "notanumber"},
		{"negative max age", "SECURITY_HSTS_MAX_AGE", "-1"},
		{"non-boolean include subdomains", "SECURITY_HSTS_INCLUDE_SUBDOMAINS", "yes"},
		{"non-boolean preload", "SECURITY_HSTS_PRELOAD", "enabled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			os.Setenv(tt.variable, tt.value)

			cfg := defaultConfig()
			err := cfg.applyEnvOverrides()
			if err == nil {
				t.Fatal("expected a config error")
			}

			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected *ConfigError, got %T", err)
			}
			if cfgErr.Variable != tt.variable {
				t.Errorf("error names %q, want %q", cfgErr.Variable, tt.variable)
			}
			if !strings.Contains(err.Error(), tt.variable) || !strings.Contains(err.Error(), tt.value) {
				t.Errorf("error message must name variable and value: %v", err)
			}
		})
	}
}
