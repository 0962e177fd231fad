package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"outreach-backend/internal/history"
	"outreach-backend/internal/prefs"
	"outreach-backend/internal/shared/config"
	"outreach-backend/internal/shared/server/middleware"
	"outreach-backend/internal/shared/server/respond"
	"outreach-backend/internal/wizard"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config         config.Config
	WizardHandler  *wizard.Handler
	HistoryHandler *history.Handler
	PrefsHandler   *prefs.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	// Everything past health needs a caller identity.
	authed := api.Group("", middleware.Identity())
	deps.WizardHandler.RegisterRoutes(authed)
	deps.HistoryHandler.RegisterRoutes(authed)
	deps.PrefsHandler.RegisterRoutes(authed)

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
