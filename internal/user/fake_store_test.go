package user

import (
	"context"
	"sync"
)

// memStore is an in-memory Store keyed by id with a naive email scan.
type memStore struct {
	mu      sync.Mutex
	records map[string]map[string]string
	order   []string

	findErr   error
	updateErr error

	updatedID string
	calls     int
}

func newMemStore() *memStore {
	return &memStore{records: make(map[string]map[string]string)}
}

func (m *memStore) put(id string, attrs map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[id]; !ok {
		m.order = append(m.order, id)
	}
	m.records[id] = attrs
}

func (m *memStore) get(id string) map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(m.records[id]))
	for k, v := range m.records[id] {
		out[k] = v
	}
	return out
}

func (m *memStore) FindIDsByEmail(_ context.Context, email string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	var ids []string
	for _, id := range m.order {
		if m.records[id]["email"] == email {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (m *memStore) UpdateFields(_ context.Context, id string, patch Patch) (map[string]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.updatedID = id
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	rec, ok := m.records[id]
	if !ok {
		rec = map[string]string{"id": id}
		m.records[id] = rec
		m.order = append(m.order, id)
	}
	out := make(map[string]any, len(patch))
	for _, a := range patch {
		rec[a.Field] = a.Value
		out[a.Field] = a.Value
	}
	return out, nil
}
