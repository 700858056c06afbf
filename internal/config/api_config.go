package config

import (
	"strings"
	"time"
)

type APIConfig interface {
	GetBaseURL() string
	GetRequestTimeout() time.Duration
	GetSlowRequestThreshold() time.Duration
	GetQueryAttempts() int
	GetMutationAttempts() int
	GetStartupDelay() time.Duration
}

var _ APIConfig = mainConfig{}

// GetBaseURL returns the REST API root, without a trailing slash.
func (c mainConfig) GetBaseURL() string {
	return strings.TrimRight(c.v.GetString("api.base_url"), "/")
}

func (c mainConfig) GetRequestTimeout() time.Duration {
	return positiveDuration(c.v.GetDuration("api.timeout"), 15*time.Second)
}

func (c mainConfig) GetSlowRequestThreshold() time.Duration {
	return positiveDuration(c.v.GetDuration("api.slow_threshold"), 2*time.Second)
}

func (c mainConfig) GetQueryAttempts() int {
	return positiveInt(c.v.GetInt("api.query_attempts"), 3)
}

func (c mainConfig) GetMutationAttempts() int {
	return positiveInt(c.v.GetInt("api.mutation_attempts"), 2)
}

func (c mainConfig) GetStartupDelay() time.Duration {
	d := c.v.GetDuration("api.startup_delay")
	if d < 0 {
		return 0
	}
	return d
}

func positiveDuration(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}

func positiveInt(n, fallback int) int {
	if n <= 0 {
		return fallback
	}
	return n
}
