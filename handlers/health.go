package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gogotex/modelgate/pkg/logger"
)

// Check reports whether one dependency is usable.
type Check func(ctx context.Context) error

// NamedCheck pairs a readiness check with the key reported under "deps".
type NamedCheck struct {
	Name  string
	Check Check
}

const readyTimeout = 2 * time.Second

var startTime = time.Now()

// RegisterHealth mounts GET /health (liveness) and GET /ready (dependency readiness).
func RegisterHealth(r gin.IRoutes, checks ...NamedCheck) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
		defer cancel()

		ready := true
		deps := map[string]bool{}
		for _, nc := range checks {
			err := nc.Check(ctx)
			deps[nc.Name] = err == nil
			if err != nil {
				ready = false
				logger.Warnf("readiness: %s: %v", nc.Name, err)
			}
		}

		uptime := time.Since(startTime).String()
		if !ready {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": deps, "uptime": uptime})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": uptime})
	})
}
