// Package memory provides an in-memory Store for tests and single-process
// deployments.
package memory

import (
	"context"
	"sync"

	"github.com/unchainedshop/unchained-sub022/calculation"
	"github.com/unchainedshop/unchained-sub022/discount"
	"github.com/unchainedshop/unchained-sub022/id"
	"github.com/unchainedshop/unchained-sub022/store"
)

// Store keeps all records in maps guarded by a single mutex. Reads return
// copies, so callers can never corrupt stored state.
type Store struct {
	mu           sync.RWMutex
	calculations map[string]store.OrderCalculation
	discounts    map[string][]discount.Applied
}

var _ store.Store = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		calculations: make(map[string]store.OrderCalculation),
		discounts:    make(map[string][]discount.Applied),
	}
}

// SaveOrderCalculation implements store.Store.
func (s *Store) SaveOrderCalculation(_ context.Context, calc store.OrderCalculation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	calc.Rows = append([]calculation.Row(nil), calc.Rows...)
	s.calculations[calc.OrderID.String()] = calc

	return nil
}

// OrderCalculation implements store.Store.
func (s *Store) OrderCalculation(_ context.Context, orderID id.ID) (store.OrderCalculation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	calc, ok := s.calculations[orderID.String()]
	if !ok {
		return store.OrderCalculation{}, store.ErrNotFound
	}

	calc.Rows = append([]calculation.Row(nil), calc.Rows...)

	return calc, nil
}

// SaveAppliedDiscounts implements store.Store.
func (s *Store) SaveAppliedDiscounts(_ context.Context, orderID id.ID, discounts []discount.Applied) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.discounts[orderID.String()] = append([]discount.Applied(nil), discounts...)

	return nil
}

// AppliedDiscounts implements store.Store.
func (s *Store) AppliedDiscounts(_ context.Context, orderID id.ID) ([]discount.Applied, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]discount.Applied(nil), s.discounts[orderID.String()]...), nil
}

// Migrate implements store.Store. No-op for the in-memory store.
func (s *Store) Migrate(_ context.Context) error { return nil }

// Ping implements store.Store.
func (s *Store) Ping(_ context.Context) error { return nil }

// Close implements store.Store.
func (s *Store) Close(_ context.Context) error { return nil }
