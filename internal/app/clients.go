package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/puzlabu/puzlabu-backend/internal/clients/redis"
	"github.com/puzlabu/puzlabu-backend/internal/platform/logger"
	"github.com/puzlabu/puzlabu-backend/internal/platform/sendgrid"
	"github.com/puzlabu/puzlabu-backend/internal/services"
)

type Clients struct {
	ActivationStore services.ActivationStore
	Mail            sendgrid.Client
}

func wireClients(log *logger.Logger) (Clients, error) {
	log.Info("Wiring clients...")

	// Redis holds activation records when configured; otherwise records live
	// in process memory and activations do not survive restarts.
	var store services.ActivationStore
	if strings.TrimSpace(os.Getenv("REDIS_ADDR")) != "" {
		s, err := redis.NewActivationStore(log)
		if err != nil {
			return Clients{}, fmt.Errorf("init redis activation store: %w", err)
		}
		store = s
	} else {
		log.Warn("REDIS_ADDR not set, using in-memory activation store")
		store = services.NewMemoryActivationStore()
	}

	// Mail is optional; the notifier degrades to log-only without it.
	var mail sendgrid.Client
	if strings.TrimSpace(os.Getenv("SENDGRID_API_KEY")) != "" {
		m, err := sendgrid.NewFromEnv(log)
		if err != nil {
			return Clients{}, fmt.Errorf("init sendgrid client: %w", err)
		}
		mail = m
	} else {
		log.Warn("SENDGRID_API_KEY not set, activation emails disabled")
	}

	return Clients{ActivationStore: store, Mail: mail}, nil
}
