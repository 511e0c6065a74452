package config

import "fmt"

// ConfigError reports an environment variable that was present but failed to
// parse as the field's expected type. It is fatal to start-up: the listener
// must never begin accepting connections with a partially-resolved policy.
type ConfigError struct {
	Variable string // environment variable name, e.g. SECURITY_HSTS_MAX_AGE
	Value    string // raw value as read from the environment
	Reason   string // why it failed to parse
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: invalid value %q: %s", e.Variable, e.Value, e.Reason)
}
