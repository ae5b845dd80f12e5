package middleware

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"

	"gotodo/internal/transport/http/response"
)

// RateLimit counts requests per client address in a fixed redis window and
// rejects with 429 beyond limit. With no redis client it is a no-op, and a
// redis failure lets the request through rather than blocking traffic.
func RateLimit(client *redisv9.Client, scope string, limit int, window time.Duration, message string) gin.HandlerFunc {
	if client == nil || limit <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := fmt.Sprintf("ratelimit:%s:%s", scope, c.ClientIP())

		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			log.Printf("rate limit incr failed: %v", err)
			c.Next()
			return
		}
		if count == 1 {
			if err := client.Expire(ctx, key, window).Err(); err != nil {
				log.Printf("rate limit expire failed: %v", err)
			}
		}
		if count > int64(limit) {
			response.Error(c, http.StatusTooManyRequests, message)
			c.Abort()
			return
		}
		c.Next()
	}
}
