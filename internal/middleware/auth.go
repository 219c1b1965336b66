package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIKeyAuth gates administrative routes behind a shared API key carried in
// the "api_key" header. Placement and discount preview stay outside it.
func APIKeyAuth(validKeys []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("api_key")

		if apiKey == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "API key required"})
			return
		}

		for _, key := range validKeys {
			if apiKey == key {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid API key"})
	}
}
