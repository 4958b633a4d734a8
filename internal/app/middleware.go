package app

import (
	httpMW "github.com/puzlabu/puzlabu-backend/internal/http/middleware"
	"github.com/puzlabu/puzlabu-backend/internal/platform/logger"
)

type Middleware struct {
	Unlock *httpMW.UnlockMiddleware
}

func wireMiddleware(log *logger.Logger, serviceset Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Unlock: httpMW.NewUnlockMiddleware(log, serviceset.Activation),
	}
}
