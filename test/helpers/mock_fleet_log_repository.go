package helpers

import (
	"context"
	"sync"
	"time"

	"github.com/andrescamacho/basedbot-go/internal/adapters/persistence"
)

// MockFleetLogRepository is an in-memory FleetLogRepository
type MockFleetLogRepository struct {
	mu      sync.Mutex
	entries []persistence.FleetLogEntry
	LogErr  error
}

func NewMockFleetLogRepository() *MockFleetLogRepository {
	return &MockFleetLogRepository{}
}

func (m *MockFleetLogRepository) Log(ctx context.Context, profileKey, fleetName, level, message string, metadata map[string]interface{}) error {
	if m.LogErr != nil {
		return m.LogErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, persistence.FleetLogEntry{
		ID:         len(m.entries) + 1,
		ProfileKey: profileKey,
		FleetName:  fleetName,
		Timestamp:  time.Now(),
		Level:      level,
		Message:    message,
		Metadata:   metadata,
	})
	return nil
}

// GetLogs returns matching entries newest first
func (m *MockFleetLogRepository) GetLogs(ctx context.Context, filter persistence.LogFilter) ([]persistence.FleetLogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	filtered := make([]persistence.FleetLogEntry, 0)
	for i := len(m.entries) - 1; i >= 0; i-- {
		e := m.entries[i]
		if filter.ProfileKey != "" && e.ProfileKey != filter.ProfileKey {
			continue
		}
		if filter.FleetName != "" && e.FleetName != filter.FleetName {
			continue
		}
		if filter.Level != "" && e.Level != filter.Level {
			continue
		}
		if filter.Since != nil && !e.Timestamp.After(*filter.Since) {
			continue
		}
		filtered = append(filtered, e)
	}

	if filter.Offset >= len(filtered) {
		return []persistence.FleetLogEntry{}, nil
	}
	filtered = filtered[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(filtered) {
		filtered = filtered[:filter.Limit]
	}
	return filtered, nil
}

// Entries returns a copy of every entry in write order
func (m *MockFleetLogRepository) Entries() []persistence.FleetLogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]persistence.FleetLogEntry(nil), m.entries...)
}
