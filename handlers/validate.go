package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gogotex/modelgate/internal/access"
	"github.com/gogotex/modelgate/pkg/logger"
	"github.com/gogotex/modelgate/pkg/metrics"
)

// ValidateRequest is the body of POST /api/validate.
type ValidateRequest struct {
	ClientKey string `json:"clientKey"`
	Domain    string `json:"domain"`
}

// TokenIssuer is satisfied by *access.Validator.
type TokenIssuer interface {
	Validate(clientKey, domain string) (string, error)
}

// ValidateHandler exchanges a client key and domain for an access token.
type ValidateHandler struct {
	issuer TokenIssuer
}

func NewValidateHandler(issuer TokenIssuer) *ValidateHandler {
	return &ValidateHandler{issuer: issuer}
}

// Register mounts the handler on every given path.
func (h *ValidateHandler) Register(r gin.IRoutes, paths ...string) {
	for _, p := range paths {
		r.POST(p, h.Validate)
	}
}

// Validate never tells the caller which of key or domain was wrong.
func (h *ValidateHandler) Validate(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.deny(c, "malformed body")
		return
	}

	token, err := h.issuer.Validate(req.ClientKey, req.Domain)
	if errors.Is(err, access.ErrForbidden) {
		h.deny(c, "unknown key or domain mismatch")
		return
	}
	if err != nil {
		logger.Errorf("validate: issue token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	metrics.TokensIssued.Inc()
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *ValidateHandler) deny(c *gin.Context, why string) {
	logger.Debugf("validate: denied from %s: %s", c.ClientIP(), why)
	metrics.AccessDenied.WithLabelValues("forbidden").Inc()
	c.JSON(http.StatusForbidden, gin.H{"error": "Invalid access"})
}
