package store

import (
	"context"
	"sync"
	"time"
)

// RateLimitMemory is an in-memory implementation of ratelimit.Store.
type RateLimitMemory struct {
	mu       sync.Mutex
	requests map[string][]time.Time
}

// NewRateLimitMemory creates a new in-memory rate limit store.
func NewRateLimitMemory() *RateLimitMemory {
	return &RateLimitMemory{
		requests: make(map[string][]time.Time),
	}
}

func (s *RateLimitMemory) Record(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-window)

	timestamps := s.requests[key]
	valid := make([]time.Time, 0, len(timestamps)+1)

	for _, ts := range timestamps {
		if ts.After(cutoff) {
			valid = append(valid, ts)
		}
	}

	valid = append(valid, now)
	s.requests[key] = valid

	return int64(len(valid)), nil
}
