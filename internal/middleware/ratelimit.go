package middleware

import (
	"context"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/metrics"
)

// RateLimiter is a fixed-window limiter keyed by client address, counted in
// Redis with INCR/EXPIRE. Without a reachable Redis every request is let
// through.
type RateLimiter struct {
	client   *redis.Client
	logger   logrus.FieldLogger
	requests int
	window   time.Duration
	trusted  []netip.Prefix
}

// NewRateLimiter connects to Redis if cfg names an address. A failed ping
// leaves the limiter without a client.
func NewRateLimiter(
	ctx context.Context,
	logger logrus.FieldLogger,
	cfg config.Redis,
	limit config.RateLimit,
) *RateLimiter {
	rl := &RateLimiter{
		logger:   logger,
		requests: limit.Requests,
		window:   limit.Window,
		trusted:  limit.TrustedProxies,
	}
	if cfg.Addr == "" {
		logger.Info("no REDIS_ADDR set, rate limiting disabled")
		return rl
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.WithError(err).Warn("unable to reach redis, rate limiting disabled")
		client.Close()
		return rl
	}

	rl.client = client
	return rl
}

func (rl *RateLimiter) Enabled() bool {
	return rl.client != nil
}

func (rl *RateLimiter) Close() error {
	if rl.client == nil {
		return nil
	}
	return rl.client.Close()
}

func (rl *RateLimiter) key(ident string) string {
	return "rl:" + strconv.FormatInt(int64(rl.window.Seconds()), 10) + ":" + ident
}

// Limit returns a middleware counting requests under the endpoint label.
func (rl *RateLimiter) Limit(endpoint string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rl.client == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			key := rl.key(rl.clientIP(r))

			val, err := rl.client.Incr(ctx, key).Result()
			if err != nil {
				rl.logger.WithError(err).Warn("rate limiter unavailable")
				w.Header().Set("X-RateLimit-Error", "redis-error")
				next.ServeHTTP(w, r)
				return
			}
			if val == 1 {
				if err := rl.client.Expire(ctx, key, rl.window).Err(); err != nil {
					rl.logger.WithError(err).Warn("unable to set rate limit window")
				}
			}

			if val > int64(rl.requests) {
				metrics.RLBlocked.WithLabelValues(endpoint).Inc()
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"error":"rate limit exceeded"}`))
				return
			}

			metrics.RLRequests.WithLabelValues(endpoint).Inc()
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP is the peer address unless the peer is a trusted proxy. Then
// X-Forwarded-For is walked from the right and the first hop that is not a
// trusted proxy is the client.
func (rl *RateLimiter) clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if !rl.isTrusted(host) {
		return host
	}

	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	client := host
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if _, err := netip.ParseAddr(hop); err != nil {
			break
		}
		client = hop
		if !rl.isTrusted(hop) {
			break
		}
	}
	return client
}

func (rl *RateLimiter) isTrusted(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range rl.trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
