package store

import (
	"context"
	"sync"

	"github.com/shelfaware/backend/internal/domain"
)

// MemoryStore is a thread-safe in-memory product store. It backs tests and
// single-node deployments that don't want Postgres; cached products never
// expire, so there is no TTL or cleanup.
type MemoryStore struct {
	mu       sync.RWMutex
	products map[string]domain.Product
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{products: make(map[string]domain.Product)}
}

// FindByUPC returns the cached product for a barcode, or ErrProductNotCached.
func (s *MemoryStore) FindByUPC(ctx context.Context, upc string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, ok := s.products[upc]
	if !ok {
		return nil, domain.ErrProductNotCached
	}

	// Copy out so later mutation of the returned value can't touch the store.
	return &product, nil
}

// Upsert stores the product keyed by UPC, replacing any existing row.
func (s *MemoryStore) Upsert(ctx context.Context, product *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products[product.UPC] = *product
	return nil
}

// Size returns the number of cached products (for debugging/monitoring).
func (s *MemoryStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}
