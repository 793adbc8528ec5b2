// Package ratelimit provides per-client token-bucket rate limiting for the HTTP API.
package ratelimit

import (
	"sync"
	"time"
)

// tokenBucket allows capacity requests in a burst, refilling at refillRate per second
type tokenBucket struct {
	capacity   float64
	refillRate float64
	tokens     float64
	lastRefill time.Time
	lastAccess time.Time
	mu         sync.Mutex
}

func newTokenBucket(capacity int, refillRate float64, now time.Time) *tokenBucket {
	return &tokenBucket{
		capacity:   float64(capacity),
		refillRate: refillRate,
		tokens:     float64(capacity),
		lastRefill: now,
		lastAccess: now,
	}
}

// take refills the bucket, then consumes one token if available. It reports whether the
// request is allowed, the whole tokens left and when the bucket is next full.
func (tb *tokenBucket) take(now time.Time) (bool, int, time.Time) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	elapsed := now.Sub(tb.lastRefill).Seconds()
	if elapsed > 0 {
		tb.tokens = min(tb.capacity, tb.tokens+elapsed*tb.refillRate)
		tb.lastRefill = now
	}
	tb.lastAccess = now

	allowed := tb.tokens >= 1.0
	if allowed {
		tb.tokens--
	}

	reset := now
	if tb.tokens < tb.capacity && tb.refillRate > 0 {
		missing := tb.capacity - tb.tokens
		reset = now.Add(time.Duration(missing / tb.refillRate * float64(time.Second)))
	}
	return allowed, int(tb.tokens), reset
}

func (tb *tokenBucket) idleSince(cutoff time.Time) bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return tb.lastAccess.Before(cutoff)
}

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Limiter manages rate limiting for multiple clients using token buckets.
type Limiter struct {
	config  *Config
	now     func() time.Time
	mu      sync.Mutex
	buckets map[string]*tokenBucket // client:method:path -> bucket

	stopOnce sync.Once
	stop     chan struct{}
}

// NewLimiter creates a rate limiter. A nil config uses DefaultConfig.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = DefaultConfig()
	}

	limiter := &Limiter{
		config:  config,
		now:     time.Now,
		buckets: make(map[string]*tokenBucket),
		stop:    make(chan struct{}),
	}

	if config.Enabled && config.CleanupInterval > 0 {
		go limiter.cleanupLoop(config.CleanupInterval)
	}

	return limiter
}

// Allow checks if a request from the given client is allowed for the endpoint and
// consumes a token when it is.
func (l *Limiter) Allow(clientID string, path string, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{}
	}

	endpoint := MatchEndpoint(path, method, l.config.EndpointConfigs)
	if endpoint == nil {
		endpoint = &EndpointConfig{
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
		}
	}
	if endpoint.Limit <= 0 || endpoint.Window <= 0 {
		return true, Info{Allowed: true}
	}

	now := l.now()
	bucket := l.bucket(clientID+":"+method+":"+endpoint.key(path), endpoint, now)
	allowed, remaining, reset := bucket.take(now)

	info := Info{
		Allowed:   allowed,
		Limit:     endpoint.Limit,
		Remaining: remaining,
		ResetTime: reset,
	}
	if !allowed {
		// one token is needed, not a full bucket
		info.RetryAfter = max(time.Duration(float64(endpoint.Window)/float64(endpoint.Limit)), 0)
	}
	return allowed, info
}

func (l *Limiter) bucket(key string, endpoint *EndpointConfig, now time.Time) *tokenBucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	if bucket, ok := l.buckets[key]; ok {
		return bucket
	}
	capacity := endpoint.Burst
	if capacity <= 0 {
		capacity = endpoint.Limit
	}
	bucket := newTokenBucket(capacity, float64(endpoint.Limit)/endpoint.Window.Seconds(), now)
	l.buckets[key] = bucket
	return bucket
}

func (l *Limiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.cleanup(l.now().Add(-time.Hour))
		case <-l.stop:
			return
		}
	}
}

// cleanup drops buckets untouched since cutoff
func (l *Limiter) cleanup(cutoff time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, bucket := range l.buckets {
		if bucket.idleSince(cutoff) {
			delete(l.buckets, key)
			removed++
		}
	}
	return removed
}

// Stop stops the cleanup goroutine. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}
