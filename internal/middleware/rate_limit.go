package middleware

import (
	"net/http"
	"time"

	"chaikada_store_front/internal/cache"

	"github.com/gin-gonic/gin"
)

const (
	// order creation attempts per window, per session or account
	CheckoutMaxAttempts = 10
	CheckoutWindow      = 1 * time.Minute
)

// CheckoutRateLimit caps order-creation attempts. Keyed by account when
// authenticated, by guest session otherwise.
func CheckoutRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "checkout_attempts:"
		if c.GetBool(CtxIsAuthenticated) {
			key += c.GetString(CtxUserID)
		} else {
			key += c.GetString(CtxSessionID)
		}

		count, err := cache.IncrementRateLimit(c.Request.Context(), key, CheckoutWindow)
		if err != nil {
			// limiter trouble must not block checkout
			c.Next()
			return
		}

		if count > CheckoutMaxAttempts {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many checkout attempts. Please wait a minute and try again",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
