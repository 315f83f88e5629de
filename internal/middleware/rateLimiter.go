package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/akolanti/ResumeAPI/pkg/logger_i"
	"golang.org/x/time/rate"
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter hands out one token bucket per client and forgets buckets idle longer than idleTTL.
type IPRateLimiter struct {
	ips       map[string]*limiterEntry
	mu        sync.Mutex
	rateLimit rate.Limit
	burstRate int
	idleTTL   time.Duration
	now       func() time.Time
}

func NewIPRateLimiter(r rate.Limit, b int, idleTTL time.Duration) *IPRateLimiter {
	return &IPRateLimiter{
		ips:       make(map[string]*limiterEntry),
		rateLimit: r,
		burstRate: b,
		idleTTL:   idleTTL,
		now:       time.Now,
	}
}

func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	now := i.now()
	entry, exists := i.ips[ip]
	if !exists {
		entry = &limiterEntry{limiter: rate.NewLimiter(i.rateLimit, i.burstRate)}
		i.ips[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

func (i *IPRateLimiter) Allow(ip string) bool {
	return i.GetLimiter(ip).AllowN(i.now(), 1)
}

// Cleanup drops buckets not used within idleTTL and returns how many were removed.
func (i *IPRateLimiter) Cleanup() int {
	if i.idleTTL <= 0 {
		return 0
	}
	cutoff := i.now().Add(-i.idleTTL)

	i.mu.Lock()
	defer i.mu.Unlock()
	removed := 0
	for ip, entry := range i.ips {
		if entry.lastSeen.Before(cutoff) {
			delete(i.ips, ip)
			removed++
		}
	}
	return removed
}

func (i *IPRateLimiter) Size() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.ips)
}

// StartJanitor stops when ctx is cancelled.
func (i *IPRateLimiter) StartJanitor(ctx context.Context, every time.Duration) {
	if every <= 0 || i.idleTTL <= 0 {
		return
	}
	logger := logger_i.NewLogger("RateLimiter")
	ticker := time.NewTicker(every)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := i.Cleanup(); removed > 0 {
					logger.Debug("Evicted idle limiters", "removed", removed)
				}
			}
		}
	}()
}
