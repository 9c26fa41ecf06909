package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	pkgredis "github.com/storyshare/core/internal/pkg/redis"
	"github.com/storyshare/core/internal/pkg/response"
	"go.uber.org/zap"
)

const rateLimitWindow = time.Second

// RateLimit enforces a fixed one-second window of max requests per client IP.
// Redis failures let the request through.
func RateLimit(rc *pkgredis.Client, max int, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := fmt.Sprintf("story:rate_limit:%s:%d", ip, time.Now().Unix())

		count, err := rc.IncrWindow(ctx, key, rateLimitWindow+time.Second)
		if err != nil {
			log.Warn("rate limit unavailable", zap.Error(err))
			c.Next()
			return
		}

		if count > int64(max) {
			c.Header("Retry-After", "1")
			response.Fail(c, http.StatusTooManyRequests, "Too many requests")
			return
		}
		c.Next()
	}
}
