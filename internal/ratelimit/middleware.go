package ratelimit

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Limit caps each client address to max hits per window. A store failure
// lets the request through: availability of the public listing is preferred
// over strict enforcement.
func Limit(store CounterStore, max int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := store.Incr(c.Request.Context(), c.ClientIP(), window)
		if err != nil {
			log.Printf("[ratelimit] store error: %v", err)
			c.Next()
			return
		}

		if count > int64(max) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"ok":    false,
				"error": "too many requests, please try again later",
			})
			return
		}

		c.Next()
	}
}
