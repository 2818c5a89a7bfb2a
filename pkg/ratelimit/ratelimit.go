// Package ratelimit bounds signup attempts per network origin with a
// windowed counter held in a capacity-bounded LRU. Expired windows fall out
// through the cache's own TTL, no sweeper needed. Counters are per process:
// a multi-instance deployment throttles per instance.
package ratelimit

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	DefaultMaxAttempts = 5
	DefaultWindow      = time.Hour
	DefaultMaxOrigins  = 500
)

type Config struct {
	MaxAttempts int           `yaml:"maxAttempts"`
	Window      time.Duration `yaml:"window"`
	MaxOrigins  int           `yaml:"maxOrigins"`
}

type Limiter struct {
	mu    sync.Mutex
	cache *expirable.LRU[string, int]
	max   int
}

func New(cfg Config) *Limiter {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.Window <= 0 {
		cfg.Window = DefaultWindow
	}
	if cfg.MaxOrigins <= 0 {
		cfg.MaxOrigins = DefaultMaxOrigins
	}

	return &Limiter{
		cache: expirable.NewLRU[string, int](cfg.MaxOrigins, nil, cfg.Window),
		max:   cfg.MaxAttempts,
	}
}

// Allow reports whether the origin may attempt a signup and counts the
// attempt. At the limit it returns false without counting further, so a
// blocked origin cannot extend its own window.
func (l *Limiter) Allow(originKey string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	attempts, _ := l.cache.Get(originKey)
	if attempts >= l.max {
		return false
	}

	l.cache.Add(originKey, attempts+1)
	return true
}
