package app

import (
	"github.com/puzlabu/puzlabu-backend/internal/platform/logger"
	"github.com/puzlabu/puzlabu-backend/internal/services"
)

type Services struct {
	Notifier   services.Notifier
	Activation services.ActivationService
	Catalog    services.CatalogService
	Game       services.GameService
	Purchase   services.PurchaseService
}

func wireServices(log *logger.Logger, cfg Config, clients Clients, reposet Repos) (Services, error) {
	log.Info("Wiring services...")

	notifier := services.NewNotifier(log, clients.Mail)

	activation := services.NewActivationService(
		log,
		reposet.Purchase,
		clients.ActivationStore,
		notifier,
		cfg.JWTSecretKey,
		cfg.UnlockTTL,
		cfg.StoreTimeout,
	)

	catalog, err := services.NewCatalogService(log, cfg.CatalogPath)
	if err != nil {
		return Services{}, err
	}

	game := services.NewGameService(log, catalog, cfg.GameTTL)
	purchase := services.NewPurchaseService(log, reposet.Purchase, notifier, cfg.CodesPerPurchase)

	return Services{
		Notifier:   notifier,
		Activation: activation,
		Catalog:    catalog,
		Game:       game,
		Purchase:   purchase,
	}, nil
}
