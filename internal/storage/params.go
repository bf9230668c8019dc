package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/san-kum/pvtlab/internal/pvt"
)

// ParamStore holds the current input values per correlation. Values
// survive switching between correlations and, for SQLStore, restarts.
type ParamStore interface {
	Get(ctx context.Context, formulaID, param string) (float64, bool, error)
	Set(ctx context.Context, formulaID, param string, v float64) error
	Delete(ctx context.Context, formulaID, param string) error
	Snapshot(ctx context.Context, formulaID string) (pvt.Snapshot, error)
	// Formulas lists the ids with at least one stored value, sorted.
	Formulas(ctx context.Context) ([]string, error)
	Close() error
}

type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]pvt.Snapshot
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]pvt.Snapshot)}
}

func (m *MemoryStore) Get(_ context.Context, formulaID, param string) (float64, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[formulaID][param]
	return v, ok, nil
}

func (m *MemoryStore) Set(_ context.Context, formulaID, param string, v float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.values[formulaID]
	if !ok {
		s = make(pvt.Snapshot)
		m.values[formulaID] = s
	}
	s[param] = v
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, formulaID, param string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values[formulaID], param)
	if len(m.values[formulaID]) == 0 {
		delete(m.values, formulaID)
	}
	return nil
}

func (m *MemoryStore) Snapshot(_ context.Context, formulaID string) (pvt.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[formulaID].Clone(), nil
}

func (m *MemoryStore) Formulas(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.values))
	for id := range m.values {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *MemoryStore) Close() error { return nil }

// SetAll writes every value of s for formulaID.
func SetAll(ctx context.Context, st ParamStore, formulaID string, s pvt.Snapshot) error {
	for _, k := range s.Keys() {
		if err := st.Set(ctx, formulaID, k, s[k]); err != nil {
			return err
		}
	}
	return nil
}
