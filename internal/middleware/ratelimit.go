package middleware

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"ethraa/internal/apperr"
	"ethraa/internal/config"
)

// Counter counts hits on key inside a fixed window.
type Counter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// RateLimit allows rule.Requests calls per client IP and window for the
// named route. Counter failures let the request through.
func RateLimit(counter Counter, log zerolog.Logger, name string, rule config.RateLimitRule) gin.HandlerFunc {
	return func(c *gin.Context) {
		if counter == nil || rule.Requests <= 0 || rule.Window <= 0 {
			c.Next()
			return
		}

		key := fmt.Sprintf("%s:%s", name, c.ClientIP())
		count, ttl, err := counter.Hit(c.Request.Context(), key, rule.Window)
		if err != nil {
			log.Warn().Err(err).Str("limit", name).Msg("rate limiter unavailable")
			c.Next()
			return
		}

		remaining := max(int64(rule.Requests)-count, 0)
		c.Header("X-RateLimit-Limit", strconv.Itoa(rule.Requests))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(rule.Requests) {
			if ttl <= 0 {
				ttl = rule.Window
			}
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(ttl.Seconds()))))
			AbortWithError(c, apperr.New(apperr.KindRateLimited, apperr.KeyRateLimit))
			return
		}

		c.Next()
	}
}
