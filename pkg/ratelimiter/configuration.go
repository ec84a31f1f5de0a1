package ratelimiter

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// ConfigurationRateLimiter caps the number of configuration writes per minute
type ConfigurationRateLimiter struct {
	writeCount   uint64
	maxCount     uint64
	ticker       *time.Ticker
	done         chan struct{}
	shutdownOnce sync.Once
}

// NewConfigurationRateLimiter creates RateLimiter implementation for configuration writes using RateLimiterSetting
func NewConfigurationRateLimiter(setting RateLimiterSetting) (*ConfigurationRateLimiter, error) {
	if setting.RequestCount <= 0 {
		return nil, fmt.Errorf("request count must be positive, got %d", setting.RequestCount)
	}
	return &ConfigurationRateLimiter{
		writeCount: 0,
		maxCount:   uint64(setting.RequestCount),
		ticker:     time.NewTicker(1 * time.Minute),
		done:       make(chan struct{}),
	}, nil
}

// IncRequestCount increments the write count by 1
func (rateLimiter *ConfigurationRateLimiter) IncRequestCount() {
	atomic.AddUint64(&rateLimiter.writeCount, 1)
}

// ResetRequestCount resets the write count to 0
func (rateLimiter *ConfigurationRateLimiter) ResetRequestCount() {
	atomic.StoreUint64(&rateLimiter.writeCount, 0)
}

// Acquire takes one write from the quota of the current minute.
func (rateLimiter *ConfigurationRateLimiter) Acquire() (bool, error) {
	select {
	case <-rateLimiter.done:
		return false, fmt.Errorf("shutdown is called")
	default:
	}
	for {
		count := atomic.LoadUint64(&rateLimiter.writeCount)
		if count >= rateLimiter.maxCount {
			return false, fmt.Errorf("request quota of (%d) configuration writes per min is exhausted for the interval", rateLimiter.maxCount)
		}
		if atomic.CompareAndSwapUint64(&rateLimiter.writeCount, count, count+1) {
			return true, nil
		}
	}
}

// Run resets the write counter every minute until ctx is done or Shutdown is called
func (rateLimiter *ConfigurationRateLimiter) Run(ctx context.Context) {
	defer rateLimiter.ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			rateLimiter.Shutdown(ctx)
			return
		case <-rateLimiter.done:
			return
		case <-rateLimiter.ticker.C:
			rateLimiter.ResetRequestCount()
		}
	}
}

// Shutdown stops Run and fails every later Acquire. Calling it more than once is
// safe.
func (rateLimiter *ConfigurationRateLimiter) Shutdown(_ context.Context) {
	rateLimiter.shutdownOnce.Do(func() {
		close(rateLimiter.done)
	})
}
