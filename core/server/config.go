package server

import "fmt"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables the check.
	ApiKey string `mapstructure:"api_key" default:""`
	// BodyLimitMB caps request bodies, including list uploads.
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"16"`
	// ReadTimeoutSeconds bounds reading a request. Imports may take minutes, so
	// there is no matching write timeout.
	ReadTimeoutSeconds int `mapstructure:"read_timeout_seconds" default:"60"`
}

const defaultBodyLimitMB = 16

// BodyLimit returns the request body limit in bytes.
func (c Config) BodyLimit() int {
	mb := c.BodyLimitMB
	if mb <= 0 {
		mb = defaultBodyLimitMB
	}
	return mb * 1024 * 1024
}

// Validate reports configuration values the server cannot start with.
func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if c.BodyLimitMB < 0 {
		return fmt.Errorf("body limit must not be negative: %d", c.BodyLimitMB)
	}
	return nil
}
