// Package middleware holds the gin middleware shared by the HTTP surface.
package middleware

import (
	"crypto/subtle"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// AdminAuth gates the mutating catalog endpoints behind the X-Admin-API-Key
// header. The key comes from the ADMIN_API_KEY environment variable; when it
// is unset every request is rejected with a misconfiguration error.
func AdminAuth() gin.HandlerFunc {
	apiKey := os.Getenv("ADMIN_API_KEY")
	if apiKey == "" {
		return func(c *gin.Context) {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "server misconfigured: ADMIN_API_KEY not set",
			})
		}
	}
	keyBytes := []byte(apiKey)

	return func(c *gin.Context) {
		key := c.GetHeader("X-Admin-API-Key")
		// Constant-time compare to prevent timing attacks
		if subtle.ConstantTimeCompare([]byte(key), keyBytes) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "unauthorized",
			})
			return
		}
		c.Next()
	}
}
