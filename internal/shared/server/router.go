package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cvwizard-backend/internal/shared/config"
	"cvwizard-backend/internal/shared/metrics"
	"cvwizard-backend/internal/shared/server/middleware"
	"cvwizard-backend/internal/shared/server/respond"
)

// RouteRegistrar is implemented by feature handlers that attach themselves to
// the API group.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// RouterDeps carries the handlers the router wires up. Bootstrap builds them
// so tests can swap pieces out.
type RouterDeps struct {
	Config        config.Config
	WizardHandler RouteRegistrar
	ExportHandler RouteRegistrar
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	sessionMaxAge := int(deps.Config.SessionTTL.Seconds())
	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Session(sessionMaxAge, deps.Config.Env == "production"),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"DEFAULT": {Rate: 10, Burst: 30},
				"EXPORT":  {Rate: 0.5, Burst: 3},
			},
			GroupFor: func(c *gin.Context) string {
				if c.Request.Method == http.MethodPost && strings.HasSuffix(c.FullPath(), "/export") {
					return "EXPORT"
				}
				return ""
			},
		}),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())
	if deps.WizardHandler != nil {
		deps.WizardHandler.RegisterRoutes(api)
	}
	if deps.ExportHandler != nil {
		deps.ExportHandler.RegisterRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
