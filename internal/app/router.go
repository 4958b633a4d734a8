package app

import (
	apphttp "github.com/puzlabu/puzlabu-backend/internal/http"
	"github.com/puzlabu/puzlabu-backend/internal/platform/logger"
)

func wireServer(log *logger.Logger, cfg Config, handlerset Handlers, mw Middleware) *apphttp.Server {
	return apphttp.NewServer(apphttp.RouterConfig{
		Log:              log,
		AllowedOrigins:   cfg.AllowedOrigins,
		UnlockMiddleware: mw.Unlock,

		ActivationHandler: handlerset.Activation,
		CatalogHandler:    handlerset.Catalog,
		GameHandler:       handlerset.Game,
		PurchaseHandler:   handlerset.Purchase,

		HealthHandler: handlerset.Health,
	})
}
