package services

import (
	"context"
	"sync"

	"github.com/puzlabu/puzlabu-backend/internal/domain"
)

// ActivationStore keeps the per-device unlock record. Implementations must
// treat a missing record as a normal locked result, not an error.
type ActivationStore interface {
	Get(ctx context.Context, deviceID string) (*domain.ActivationRecord, error)
	Set(ctx context.Context, record *domain.ActivationRecord) error
	Clear(ctx context.Context, deviceID string) error
}

// MemoryActivationStore is the redis-less ActivationStore, also used as the
// test fake.
type MemoryActivationStore struct {
	mu      sync.RWMutex
	records map[string]domain.ActivationRecord
}

func NewMemoryActivationStore() *MemoryActivationStore {
	return &MemoryActivationStore{records: make(map[string]domain.ActivationRecord)}
}

func (s *MemoryActivationStore) Get(ctx context.Context, deviceID string) (*domain.ActivationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[deviceID]
	if !ok {
		return nil, nil
	}
	out := rec
	return &out, nil
}

func (s *MemoryActivationStore) Set(ctx context.Context, record *domain.ActivationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.DeviceID] = *record
	return nil
}

func (s *MemoryActivationStore) Clear(ctx context.Context, deviceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, deviceID)
	return nil
}
