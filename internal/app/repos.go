package app

import (
	"gorm.io/gorm"

	"github.com/puzlabu/puzlabu-backend/internal/platform/logger"
	"github.com/puzlabu/puzlabu-backend/internal/repos"
)

type Repos struct {
	Purchase repos.PurchaseRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Purchase: repos.NewPurchaseRepo(db, log),
	}
}
