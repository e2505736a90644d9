package middleware

import (
	"context"
	"fmt"
	"greenplace-be/internal/logger"
	"greenplace-be/internal/transport"
	"greenplace-be/internal/utils"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Checkout hands off to a human, so it gets a much smaller budget.
const (
	limitStrict = rate.Limit(2)
	burstStrict = 5
)

const visitorIdleTTL = 3 * time.Minute

// visitor holds the rate limiter and the last time it was seen.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per identity and tier.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	general  rate.Limit
	burst    int
	now      func() time.Time
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		general:  rate.Limit(rps),
		burst:    burst,
		now:      time.Now,
	}
}

// getVisitor retrieves or creates the limiter for key.
func (l *RateLimiter) getVisitor(key string, r rate.Limit, b int) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, exists := l.visitors[key]
	if !exists {
		limiter := rate.NewLimiter(r, b)
		l.visitors[key] = &visitor{limiter, l.now()}
		return limiter
	}

	v.lastSeen = l.now()
	return v.limiter
}

// sweep drops visitors idle for longer than visitorIdleTTL.
func (l *RateLimiter) sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, v := range l.visitors {
		if l.now().Sub(v.lastSeen) > visitorIdleTTL {
			delete(l.visitors, key)
			removed++
		}
	}
	return removed
}

// Cleanup sweeps idle visitors every interval until ctx is done.
func (l *RateLimiter) Cleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.sweep()
		}
	}
}

// Middleware must run after the session middleware so the session id is
// used as identity when the client presented one.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit, burst, tier := l.resolveRateTier(r)

		key := fmt.Sprintf("%s:%s", identity(r), tier)

		if !l.getVisitor(key, limit, burst).Allow() {
			logger.FromCtx(r.Context()).Warn("rate limit exceeded",
				zap.String("tier", tier),
				zap.String("path", r.URL.Path),
			)
			utils.WriteJSONError(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// identity falls back to the client IP for sessions issued on this request,
// otherwise every cookieless request would get a fresh bucket.
func identity(r *http.Request) string {
	ctx := r.Context()
	if sessionID := transport.SessionFrom(ctx); sessionID != "" && !transport.SessionIssued(ctx) {
		return "session:" + sessionID
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	return "ip:" + ip
}

func (l *RateLimiter) resolveRateTier(r *http.Request) (rate.Limit, int, string) {
	if r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/cart/checkout") {
		return limitStrict, burstStrict, "strict"
	}
	return l.general, l.burst, "general"
}
