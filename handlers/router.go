package handlers

import (
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/gogotex/modelgate/internal/resource"
	"github.com/gogotex/modelgate/internal/resource/handler"
	"github.com/gogotex/modelgate/internal/resource/service"
	"github.com/gogotex/modelgate/pkg/logger"
	"github.com/gogotex/modelgate/pkg/middleware"
)

// ValidatePaths are the routes answering token requests.
var ValidatePaths = []string{"/api/validate", "/validate"}

// RouterDeps carries everything the HTTP surface needs.
type RouterDeps struct {
	Issuer   TokenIssuer
	Verifier middleware.Verifier
	Assets   service.Service[resource.Asset]
	Configs  service.Service[resource.Config]

	// Checks feed GET /ready.
	Checks []NamedCheck
	// CORSAllowOrigins is "*" or a comma-separated origin list.
	CORSAllowOrigins string
	// RateLimit is applied to validation and to every protected route; nil disables it.
	RateLimit gin.HandlerFunc
	// Metrics is mounted on GET /metrics when set.
	Metrics http.Handler
}

// NewRouter builds the full gateway: validation, protected resources and operational endpoints.
func NewRouter(d RouterDeps) *gin.Engine {
	r := newBase(d)

	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(d.Verifier))
	if d.RateLimit != nil {
		api.Use(d.RateLimit)
	}
	handler.RegisterResourceRoutes(api, d.Assets, d.Configs)

	RegisterSwagger(r)
	return r
}

// NewValidatorRouter builds the standalone validator: validation and health only.
func NewValidatorRouter(d RouterDeps) *gin.Engine {
	return newBase(d)
}

func newBase(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(
		requestid.New(),
		middleware.Recovery(),
		gin.LoggerWithWriter(logger.Writer(), "/health", "/ready", "/metrics"),
		middleware.CORSMiddleware(d.CORSAllowOrigins),
		middleware.MetricsMiddleware(),
	)

	RegisterHealth(r, d.Checks...)
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics))
	}

	pub := r.Group("/")
	if d.RateLimit != nil {
		pub.Use(d.RateLimit)
	}
	NewValidateHandler(d.Issuer).Register(pub, ValidatePaths...)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
	return r
}
