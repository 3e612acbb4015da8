package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gogotex/modelgate/pkg/logger"
)

// CORSMiddleware builds the CORS handler from a comma-separated origin list.
// "*" (or an empty list) allows any origin without credentials.
func CORSMiddleware(allowOrigins string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Authorization", "Content-Type", "X-Request-Id"},
		ExposeHeaders: []string{"X-Request-Id", "Retry-After"},
		MaxAge:        12 * time.Hour,
	}

	origins := ParseOrigins(allowOrigins)
	if len(origins) == 0 || contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	logger.Debugf("cors: allow all=%v origins=%v", cfg.AllowAllOrigins, cfg.AllowOrigins)
	return cors.New(cfg)
}

// ParseOrigins splits a comma-separated origin list and drops blanks.
func ParseOrigins(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
