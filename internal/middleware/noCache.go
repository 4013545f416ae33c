package middleware

import "github.com/gin-gonic/gin"

// NoCache stops browsers and proxies from caching any response, so the
// image list and the images themselves are always current.
func NoCache() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
		c.Header("Pragma", "no-cache")
		c.Header("Expires", "0")
		c.Next()
	}
}
