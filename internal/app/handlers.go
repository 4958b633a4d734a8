package app

import (
	httpH "github.com/puzlabu/puzlabu-backend/internal/http/handlers"
	"github.com/puzlabu/puzlabu-backend/internal/platform/logger"
)

type Handlers struct {
	Health     *httpH.HealthHandler
	Activation *httpH.ActivationHandler
	Catalog    *httpH.CatalogHandler
	Game       *httpH.GameHandler
	Purchase   *httpH.PurchaseHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:     httpH.NewHealthHandler(),
		Activation: httpH.NewActivationHandler(serviceset.Activation),
		Catalog:    httpH.NewCatalogHandler(serviceset.Catalog),
		Game:       httpH.NewGameHandler(serviceset.Game, serviceset.Catalog),
		Purchase:   httpH.NewPurchaseHandler(serviceset.Purchase),
	}
}
