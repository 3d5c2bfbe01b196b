package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/skaldic/campaign-engine/pkg/state"
)

// MockStorage is an in-memory Storage for tests. Documents round-trip
// through JSON so tests see the same serialization behavior as the real
// backends.
type MockStorage struct {
	mu        sync.RWMutex
	campaigns map[uuid.UUID][]byte

	FailPing bool
	FailSave bool
}

var _ Storage = (*MockStorage)(nil)

func NewMockStorage() *MockStorage {
	return &MockStorage{campaigns: make(map[uuid.UUID][]byte)}
}

func (m *MockStorage) Ping(ctx context.Context) error {
	if m.FailPing {
		return &StoreUnavailableError{Op: "ping", Err: fmt.Errorf("mock ping failure")}
	}
	return nil
}

func (m *MockStorage) Close() error { return nil }

func (m *MockStorage) SaveCampaign(ctx context.Context, id uuid.UUID, cs *state.CampaignState) error {
	if m.FailSave {
		return &StoreUnavailableError{Op: "save", Err: fmt.Errorf("mock save failure")}
	}
	data, err := json.Marshal(cs)
	if err != nil {
		return fmt.Errorf("failed to marshal campaign: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.campaigns[id] = data
	return nil
}

func (m *MockStorage) LoadCampaign(ctx context.Context, id uuid.UUID) (*state.CampaignState, error) {
	m.mu.RLock()
	data, ok := m.campaigns[id]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	var cs state.CampaignState
	if err := json.Unmarshal(data, &cs); err != nil {
		return nil, &DocumentCorruptError{Key: id.String(), Err: err}
	}
	return &cs, nil
}

func (m *MockStorage) DeleteCampaign(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.campaigns, id)
	return nil
}

func (m *MockStorage) ListCampaigns(ctx context.Context) ([]uuid.UUID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]uuid.UUID, 0, len(m.campaigns))
	for id := range m.campaigns {
		ids = append(ids, id)
	}
	return ids, nil
}
