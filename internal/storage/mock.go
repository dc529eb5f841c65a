package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/jwebster45206/initiative-tracker/pkg/bestiary"
	"github.com/jwebster45206/initiative-tracker/pkg/encounter"
	"github.com/jwebster45206/initiative-tracker/pkg/party"
)

// MockStorage is a mock implementation of Storage for testing
type MockStorage struct {
	mu         sync.RWMutex
	encounters map[string]encounter.Snapshot
	monsters   map[string]*bestiary.Monster
	pcs        map[string]*party.MemberSpec
	pingError  error
	saveError  error
	loadError  error
}

// Ensure MockStorage implements Storage interface
var _ Storage = (*MockStorage)(nil)

// NewMockStorage creates a new mock storage
func NewMockStorage() *MockStorage {
	return &MockStorage{
		encounters: make(map[string]encounter.Snapshot),
		monsters:   make(map[string]*bestiary.Monster),
		pcs:        make(map[string]*party.MemberSpec),
	}
}

// SetPingError configures the mock to fail on ping with the given error
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

// SetSaveError configures the mock to fail encounter saves
func (m *MockStorage) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveError = err
}

// SetLoadError configures the mock to fail encounter reads
func (m *MockStorage) SetLoadError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadError = err
}

// Ping mocks storage ping
func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

// Close mocks storage close
func (m *MockStorage) Close() error {
	// Mock close doesn't need to do anything
	return nil
}

// SaveEncounter mocks saving an encounter snapshot
func (m *MockStorage) SaveEncounter(ctx context.Context, snap encounter.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveError != nil {
		return m.saveError
	}
	m.encounters[encounter.Slug(snap.Name)] = snap
	return nil
}

// LoadEncounter mocks loading an encounter snapshot
func (m *MockStorage) LoadEncounter(ctx context.Context, slug string) (*encounter.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.loadError != nil {
		return nil, m.loadError
	}
	snap, exists := m.encounters[slug]
	if !exists {
		return nil, nil // Return nil for not found
	}
	return &snap, nil
}

// ListEncounters mocks listing encounter snapshots, most recent first
func (m *MockStorage) ListEncounters(ctx context.Context) ([]encounter.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.loadError != nil {
		return nil, m.loadError
	}

	result := make([]encounter.Snapshot, 0, len(m.encounters))
	for _, snap := range m.encounters {
		result = append(result, snap)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].SavedAt.After(result[j].SavedAt)
	})
	return result, nil
}

// DeleteEncounter mocks deleting an encounter snapshot
func (m *MockStorage) DeleteEncounter(ctx context.Context, slug string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.encounters, slug)
	return nil
}

// ListMonsters mocks listing bestiary templates
func (m *MockStorage) ListMonsters(ctx context.Context) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]string)
	for id, monster := range m.monsters {
		result[monster.Name] = id
	}
	return result, nil
}

// GetMonster mocks getting a bestiary template by ID
func (m *MockStorage) GetMonster(ctx context.Context, id string) (*bestiary.Monster, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	monster, exists := m.monsters[id]
	if !exists {
		return nil, nil
	}
	return monster, nil
}

// AddMonster adds a bestiary template to the mock storage (for testing)
func (m *MockStorage) AddMonster(id string, monster *bestiary.Monster) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.monsters[id] = monster
}

// ListPartyMembers mocks listing PC sheets
func (m *MockStorage) ListPartyMembers(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]string, 0, len(m.pcs))
	for id := range m.pcs {
		result = append(result, id)
	}
	sort.Strings(result)
	return result, nil
}

// GetPartyMember mocks getting a PC sheet by ID
func (m *MockStorage) GetPartyMember(ctx context.Context, id string) (*party.MemberSpec, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	spec, exists := m.pcs[id]
	if !exists {
		return nil, nil
	}
	return spec, nil
}

// AddPartyMember adds a PC sheet to the mock storage (for testing)
func (m *MockStorage) AddPartyMember(id string, spec *party.MemberSpec) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pcs[id] = spec
}
