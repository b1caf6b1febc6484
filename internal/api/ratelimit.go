package api

import (
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/terangaapp/teranga-server/internal/ratelimit"
)

// RateLimiter wraps KeyedRateLimiter for API use.
type RateLimiter = ratelimit.KeyedRateLimiter

// NewRateLimiter creates a new rate limiter.
// ratePerInterval: number of requests allowed per interval.
// interval: time period for the rate (e.g., time.Minute).
// burst: maximum burst size.
func NewRateLimiter(ratePerInterval int, interval time.Duration, burst int) *RateLimiter {
	rps := float64(ratePerInterval) / interval.Seconds()
	return ratelimit.New(rps, burst)
}

// checkRateLimit enforces the limiter for one client IP; returns a 429 error
// when the bucket is empty.
func (s *Server) checkRateLimit(limiter *RateLimiter, ip, operation string) error {
	if !limiter.Allow(ip) {
		s.logger.Warn("rate limit exceeded", "ip", ip, "operation", operation)
		return huma.Error429TooManyRequests("Too many requests. Please try again later.")
	}
	return nil
}

// clientIP extracts the client IP from proxy headers, falling back to a
// fixed key so unproxied requests still share one bucket.
func clientIP(xForwardedFor, xRealIP string) string {
	if xForwardedFor != "" {
		// First IP in the chain is the client.
		for i := 0; i < len(xForwardedFor); i++ {
			if xForwardedFor[i] == ',' {
				return xForwardedFor[:i]
			}
		}
		return xForwardedFor
	}
	if xRealIP != "" {
		return xRealIP
	}
	return "direct"
}
