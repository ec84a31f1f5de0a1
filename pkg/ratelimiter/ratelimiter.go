package ratelimiter

import (
	"context"
)

// RateLimiter represents the RateLimiter operations
type RateLimiter interface {
	IncRequestCount()
	Acquire() (bool, error)
	ResetRequestCount()
	Run(context.Context)
	Shutdown(context.Context)
}

// RateLimiterSetting represents the RateLimiter config
type RateLimiterSetting struct {
	RequestCount int
}

// New returns a ConfigurationRateLimiter when setting carries a request count and
// a NoopRateLimiter otherwise.
func New(setting RateLimiterSetting) (RateLimiter, error) {
	if setting.RequestCount <= 0 {
		return &NoopRateLimiter{}, nil
	}
	return NewConfigurationRateLimiter(setting)
}
