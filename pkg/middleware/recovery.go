package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gogotex/modelgate/pkg/logger"
)

// Recovery converts panics into a JSON 500 and writes the stack to the logger output.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(logger.Writer(), func(c *gin.Context, err any) {
		logger.Errorf("panic serving %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	})
}
