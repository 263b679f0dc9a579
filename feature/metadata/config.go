package metadata

import "time"

// Config holds configuration for the Jikan metadata client.
type Config struct {
	// BaseURL is the Jikan API root, without trailing slash.
	BaseURL string `mapstructure:"base_url" default:"https://api.jikan.moe/v4"`
	// MinIntervalMillis is the minimum spacing between two outbound calls.
	MinIntervalMillis int `mapstructure:"min_interval_millis" default:"1200"`
	// TimeoutSeconds bounds one HTTP attempt.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
	// MaxAttempts is the number of attempts made while rate limited.
	MaxAttempts int `mapstructure:"max_attempts" default:"3"`
	// BackoffSeconds is the backoff step; attempt n waits n times this value.
	BackoffSeconds int `mapstructure:"backoff_seconds" default:"5"`
}

func (c Config) interval() time.Duration {
	if c.MinIntervalMillis < 0 {
		return 0
	}
	return time.Duration(c.MinIntervalMillis) * time.Millisecond
}

func (c Config) timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c Config) attempts() int {
	if c.MaxAttempts <= 0 {
		return 3
	}
	return c.MaxAttempts
}

func (c Config) backoff() time.Duration {
	if c.BackoffSeconds < 0 {
		return 0
	}
	return time.Duration(c.BackoffSeconds) * time.Second
}
