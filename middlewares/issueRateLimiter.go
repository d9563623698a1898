package middlewares

import (
	"net/http"
	"time"

	"fixit-be/controllers"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// IssueRateLimiter allows each session at most limit issue reports per 24 hours.
// Counters live in Redis under queuePrefix:<session>.
func IssueRateLimiter(client *redis.Client, queuePrefix string, limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		userKey := queuePrefix + ":" + controllers.SessionKey(c)

		count, err := client.Incr(ctx, userKey).Result()
		if err != nil {
			log.WithError(err).Error("Rate limiter failed to increment count")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "redis error incrementing count"})
			c.Abort()
			return
		}

		// Set TTL only for the first increment
		if count == 1 {
			if err := client.Expire(ctx, userKey, 24*time.Hour).Err(); err != nil {
				log.WithError(err).Error("Rate limiter failed to set TTL")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "redis error setting TTL"})
				c.Abort()
				return
			}
		}

		if count > int64(limit) {
			retryAfter, _ := client.TTL(ctx, userKey).Result()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": retryAfter.Seconds(),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
