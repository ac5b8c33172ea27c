package repository

import (
	"context"
	"sync"

	"github.com/comitanigiacomo/presence-analyzer/internal/core/domain"
)

var _ domain.PresenceRepository = (*InMemoryPresenceRepository)(nil)

// InMemoryPresenceRepository serves a fixed set of records. Every Load
// returns an independent copy.
type InMemoryPresenceRepository struct {
	records []domain.PresenceRecord

	mu sync.RWMutex
}

func NewInMemoryPresenceRepository(records ...domain.PresenceRecord) *InMemoryPresenceRepository {
	return &InMemoryPresenceRepository{
		records: records,
	}
}

func (r *InMemoryPresenceRepository) Add(rec domain.PresenceRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = append(r.records, rec)
}

func (r *InMemoryPresenceRepository) Load(ctx context.Context) (domain.PresenceIndex, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := domain.NewPresenceIndex()
	for _, rec := range r.records {
		idx.Add(rec)
	}
	return idx, nil
}
