package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/puzlabu/puzlabu-backend/internal/domain"
	"github.com/puzlabu/puzlabu-backend/internal/platform/logger"
)

// ActivationStore keeps per-device activation records in redis so unlock
// state survives process restarts and is shared across replicas.
type ActivationStore struct {
	log       *logger.Logger
	rdb       *goredis.Client
	keyPrefix string
}

func NewActivationStore(log *logger.Logger) (*ActivationStore, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	prefix := strings.TrimSpace(os.Getenv("REDIS_KEY_PREFIX"))
	if prefix == "" {
		prefix = "puzlabu:activation:"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &ActivationStore{
		log:       log.With("client", "RedisActivationStore"),
		rdb:       rdb,
		keyPrefix: prefix,
	}, nil
}

func (s *ActivationStore) key(deviceID string) string {
	return s.keyPrefix + deviceID
}

func (s *ActivationStore) Get(ctx context.Context, deviceID string) (*domain.ActivationRecord, error) {
	raw, err := s.rdb.Get(ctx, s.key(deviceID)).Bytes()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	var record domain.ActivationRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("decode activation record: %w", err)
	}
	return &record, nil
}

func (s *ActivationStore) Set(ctx context.Context, record *domain.ActivationRecord) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode activation record: %w", err)
	}
	// No TTL: the unlock is permanent until an explicit reset.
	if err := s.rdb.Set(ctx, s.key(record.DeviceID), raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *ActivationStore) Clear(ctx context.Context, deviceID string) error {
	if err := s.rdb.Del(ctx, s.key(deviceID)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (s *ActivationStore) Close() error {
	return s.rdb.Close()
}
