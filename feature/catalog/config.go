package catalog

import "time"

// Config holds catalogue search, cache and ranking settings.
type Config struct {
	// CacheTTLSeconds is how long facets and ranked listings are cached. 0 disables caching.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"300"`
	// MinVotes is the vote threshold below which an entry is never ranked.
	MinVotes int `mapstructure:"min_votes" default:"1000"`
	// DefaultScore is the ranking prior used while no entry has a score.
	DefaultScore float64 `mapstructure:"default_score" default:"7.0"`
	// TopLimit is the default length of a ranked listing.
	TopLimit int `mapstructure:"top_limit" default:"50"`
}

func (c Config) cacheTTL() time.Duration {
	if c.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

func (c Config) minVotes() int {
	if c.MinVotes <= 0 {
		return 1000
	}
	return c.MinVotes
}

func (c Config) defaultScore() float64 {
	if c.DefaultScore <= 0 {
		return 7.0
	}
	return c.DefaultScore
}

func (c Config) topLimit() int {
	if c.TopLimit <= 0 {
		return 50
	}
	return c.TopLimit
}
