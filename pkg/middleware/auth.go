package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gogotex/modelgate/internal/tokens"
	"github.com/gogotex/modelgate/pkg/metrics"
)

// ClaimsKey is the gin context key holding the verified *tokens.Claims.
const ClaimsKey = "claims"

// Verifier is the minimal interface the middleware depends on
type Verifier interface {
	Verify(raw string) (*tokens.Claims, error)
}

// AuthMiddleware returns a Gin middleware that verifies Bearer tokens using the provided verifier.
// A request without a token is rejected with 401, a token that fails verification with 403.
func AuthMiddleware(ver Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := BearerToken(c.GetHeader("Authorization"))
		if raw == "" {
			metrics.AccessDenied.WithLabelValues("missing_token").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			return
		}

		claims, err := ver.Verify(raw)
		if err != nil {
			metrics.AccessDenied.WithLabelValues("invalid_token").Inc()
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" value.
// It returns "" when the header is empty, uses another scheme, or has no token.
func BearerToken(header string) string {
	fields := strings.Fields(header)
	if len(fields) != 2 || !strings.EqualFold(fields[0], "Bearer") {
		return ""
	}
	return fields[1]
}

// ClaimsFrom returns the claims stored by AuthMiddleware, if any.
func ClaimsFrom(c *gin.Context) (*tokens.Claims, bool) {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*tokens.Claims)
	return claims, ok && claims != nil
}
