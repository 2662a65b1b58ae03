package middleware

import (
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nordbooks/leadtrack/metrics"
	"github.com/nordbooks/leadtrack/utils"
)

// RateLimiter enforces a per-IP sliding window: at most max requests per
// window. State lives in memory only, so limits reset on restart; that is
// acceptable for a contact-form spam guard.
type RateLimiter struct {
	mu     sync.Mutex
	max    int
	window time.Duration
	hits   map[string][]time.Time

	logger *zap.Logger
	m      *metrics.Metrics
	now    func() time.Time
}

func NewRateLimiter(max int, window time.Duration, m *metrics.Metrics, logger *zap.Logger) *RateLimiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RateLimiter{
		max:    max,
		window: window,
		hits:   make(map[string][]time.Time),
		logger: logger,
		m:      m,
		now:    time.Now,
	}
}

// Allow records a request from ip and reports whether it stays under the
// limit. Rejected requests are not recorded, so a blocked sender's window
// still expires max requests after their first accepted one.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	cutoff := now.Add(-rl.window)

	recent := rl.hits[ip][:0]
	for _, t := range rl.hits[ip] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= rl.max {
		rl.hits[ip] = recent
		return false
	}

	rl.hits[ip] = append(recent, now)
	return true
}

// Limit wraps a handler with the per-IP check, answering 429 on overflow.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := utils.GetIPAddress(r)
		if !rl.Allow(ip) {
			rl.logger.Warn("rate limit exceeded",
				zap.String("ip", ip),
				zap.String("path", r.URL.Path),
			)
			if rl.m != nil {
				rl.m.RateLimitHits.Inc()
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"message":"too many submissions, please try again later"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}
