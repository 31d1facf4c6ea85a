package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/thaumlab/aspecter/pkg/types"
)

// MemoryStore is a map-backed store for tests and embedded use. It needs no
// setup and never fails on I/O.
type MemoryStore struct {
	mu       sync.RWMutex
	aspects  map[string]types.Aspect
	recipes  []types.Recipe
	holdings map[string]float64
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		aspects:  make(map[string]types.Aspect),
		holdings: make(map[string]float64),
	}
}

// Provider identifies the backend.
func (m *MemoryStore) Provider() Provider { return ProviderMemory }

// Close is a no-op.
func (m *MemoryStore) Close() error { return nil }

// ListAspects returns all aspect records ordered by name.
func (m *MemoryStore) ListAspects(_ context.Context) ([]types.Aspect, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]types.Aspect, 0, len(m.aspects))
	for _, a := range m.aspects {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ListRecipes returns all recipe records ordered by result name.
func (m *MemoryStore) ListRecipes(_ context.Context) ([]types.Recipe, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]types.Recipe, len(m.recipes))
	copy(out, m.recipes)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ListHoldings returns the held quantity per aspect name.
func (m *MemoryStore) ListHoldings(_ context.Context) (map[string]float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]float64, len(m.holdings))
	for k, v := range m.holdings {
		out[k] = v
	}
	return out, nil
}

// PutAspect inserts or replaces an aspect record.
func (m *MemoryStore) PutAspect(_ context.Context, a types.Aspect) error {
	if a.BaseValue == 0 {
		a.BaseValue = 1.0
	}
	if err := a.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.aspects[a.Name] = a
	return nil
}

// PutRecipe inserts a recipe; duplicates are ignored.
func (m *MemoryStore) PutRecipe(_ context.Context, r types.Recipe) error {
	if err := r.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, have := range m.recipes {
		if have == r {
			return nil
		}
	}
	m.recipes = append(m.recipes, r)
	return nil
}

// SetHolding records the held quantity for an existing aspect.
func (m *MemoryStore) SetHolding(_ context.Context, name string, qty float64) error {
	if qty < 0 {
		return fmt.Errorf("holding for %q must be non-negative", name)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.aspects[name]; !ok {
		return fmt.Errorf("%q: %w", name, types.ErrUnknownAspect)
	}
	m.holdings[name] = qty
	return nil
}
