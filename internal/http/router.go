package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/puzlabu/puzlabu-backend/internal/http/handlers"
	httpMW "github.com/puzlabu/puzlabu-backend/internal/http/middleware"
	"github.com/puzlabu/puzlabu-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	AllowedOrigins   []string
	UnlockMiddleware *httpMW.UnlockMiddleware

	ActivationHandler *httpH.ActivationHandler
	CatalogHandler    *httpH.CatalogHandler
	GameHandler       *httpH.GameHandler
	PurchaseHandler   *httpH.PurchaseHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	if cfg.UnlockMiddleware != nil {
		api.Use(cfg.UnlockMiddleware.Attach())
	}
	{
		// Activation
		if cfg.ActivationHandler != nil {
			api.GET("/activation/status", cfg.ActivationHandler.Status)
			api.POST("/activation/redeem", cfg.ActivationHandler.Redeem)
			if cfg.UnlockMiddleware != nil {
				api.POST("/activation/reset", cfg.UnlockMiddleware.RequireUnlock(), cfg.ActivationHandler.Reset)
			}
		}

		// Catalog
		if cfg.CatalogHandler != nil {
			api.GET("/catalog", cfg.CatalogHandler.List)
		}

		// Purchases
		if cfg.PurchaseHandler != nil {
			api.POST("/purchases", cfg.PurchaseHandler.Record)
			api.GET("/purchases/:id", cfg.PurchaseHandler.Get)
		}

		// Games
		if cfg.GameHandler != nil {
			api.POST("/games", cfg.GameHandler.Create)
			api.GET("/games/:id", cfg.GameHandler.Get)
			api.POST("/games/:id/pointer", cfg.GameHandler.Pointer)
			api.POST("/games/:id/touch", cfg.GameHandler.Touch)
			api.POST("/games/:id/restart", cfg.GameHandler.Restart)
		}
	}

	return r
}
