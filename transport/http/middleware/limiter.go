package middleware

import (
	"farmstay/infras/metrics"
	"farmstay/shared"
	"farmstay/shared/constant"
	"farmstay/transport/http/response"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	cacheKeyRateLimit = "limiter"
)

// RateLimit is a fixed window counter in redis keyed by client ip.
// When redis fails the request is checked against an in-process token bucket instead.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !a.config.App.RateLimiter.Enable {
				next.ServeHTTP(w, r)

				return
			}

			maxReqs := a.config.App.RateLimiter.MaxRequests
			windowSecs := a.config.App.RateLimiter.WindowSeconds

			cacheKey := shared.BuildCacheKey(cacheKeyRateLimit, clientIP(r))

			count, err := a.cache.Increment(r.Context(), cacheKey, windowSecs)
			if err != nil {
				log.Warn().Err(err).Msg("rate limiter falling back to in-process limiter")

				if !a.fallbackLimiter(cacheKey, maxReqs, windowSecs).Allow() {
					metrics.IncRateLimited()
					response.WithRequestLimitExceeded(w)

					return
				}

				next.ServeHTTP(w, r)

				return
			}

			if count > int64(maxReqs) {
				metrics.IncRateLimited()
				response.WithRequestLimitExceeded(w)

				return
			}

			w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(maxReqs))
			w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.FormatInt(max(0, int64(maxReqs)-count), 10))
			w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(windowSecs))

			next.ServeHTTP(w, r)
		})
	}
}

func (a *appMiddleware) fallbackLimiter(key string, maxReqs, windowSecs int) *rate.Limiter {
	if v, ok := a.fallback.Load(key); ok {
		if lim, ok := v.(*rate.Limiter); ok {
			return lim
		}
	}

	every := rate.Inf
	if windowSecs > 0 {
		every = rate.Limit(float64(maxReqs) / float64(windowSecs))
	}

	lim := rate.NewLimiter(every, max(maxReqs, 1))
	actual, _ := a.fallback.LoadOrStore(key, lim)

	return actual.(*rate.Limiter) //nolint:forcetypeassert
}

func clientIP(r *http.Request) string {
	// X-Forwarded-For can contain multiple IPs, the first one is the client
	if xff := r.Header.Get(constant.RequestHeaderForwardedFor); xff != "" {
		if commaIdx := strings.Index(xff, ","); commaIdx > 0 {
			return strings.TrimSpace(xff[:commaIdx])
		}

		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get(constant.RequestHeaderRealIP); xri != "" {
		return strings.TrimSpace(xri)
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}

	return r.RemoteAddr
}
