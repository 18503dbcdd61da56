package persistence

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/andrescamacho/basedbot-go/internal/domain/shared"
)

const (
	defaultDedupWindow  = 60 * time.Second
	defaultDedupMaxSize = 10000
)

// FleetLogRepository stores bot log entries
type FleetLogRepository interface {
	// Log writes an entry, dropping repeats of the same message for the same
	// fleet inside the dedup window
	Log(ctx context.Context, profileKey, fleetName, level, message string, metadata map[string]interface{}) error

	// GetLogs returns entries newest first
	GetLogs(ctx context.Context, filter LogFilter) ([]FleetLogEntry, error)
}

// LogFilter narrows a log query. Zero fields do not filter.
type LogFilter struct {
	ProfileKey string
	FleetName  string
	Level      string
	Since      *time.Time
	Limit      int
	Offset     int
}

// FleetLogEntry represents a log entry
type FleetLogEntry struct {
	ID         int
	ProfileKey string
	FleetName  string
	Timestamp  time.Time
	Level      string
	Message    string
	Metadata   map[string]interface{}
}

// GormFleetLogRepository is a GORM-based implementation
type GormFleetLogRepository struct {
	db    *gorm.DB
	clock shared.Clock

	dedupCache   map[string]time.Time // key: profile|fleet|message
	dedupMu      sync.Mutex
	dedupWindow  time.Duration
	dedupMaxSize int
}

// NewGormFleetLogRepository creates a new fleet log repository.
// If clock is nil, uses RealClock.
func NewGormFleetLogRepository(db *gorm.DB, clock shared.Clock) *GormFleetLogRepository {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GormFleetLogRepository{
		db:           db,
		clock:        clock,
		dedupCache:   make(map[string]time.Time),
		dedupWindow:  defaultDedupWindow,
		dedupMaxSize: defaultDedupMaxSize,
	}
}

// Log writes a log entry with time-windowed deduplication. In-transit
// fleets report the same countdown every tick, hence the window.
func (r *GormFleetLogRepository) Log(ctx context.Context, profileKey, fleetName, level, message string, metadata map[string]interface{}) error {
	now := r.clock.Now()
	if r.isDuplicate(profileKey+"|"+fleetName+"|"+message, now) {
		return nil
	}

	var metadataJSON string
	if len(metadata) > 0 {
		if b, err := json.Marshal(metadata); err == nil {
			metadataJSON = string(b)
		}
	}

	entry := &FleetLogModel{
		ProfileKey: profileKey,
		FleetName:  fleetName,
		Timestamp:  now,
		Level:      level,
		Message:    message,
		Metadata:   metadataJSON,
	}
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *GormFleetLogRepository) isDuplicate(key string, now time.Time) bool {
	r.dedupMu.Lock()
	defer r.dedupMu.Unlock()

	if last, ok := r.dedupCache[key]; ok && now.Sub(last) < r.dedupWindow {
		return true
	}
	if len(r.dedupCache) >= r.dedupMaxSize {
		r.evictExpired(now)
	}
	r.dedupCache[key] = now
	return false
}

// evictExpired must be called with dedupMu held
func (r *GormFleetLogRepository) evictExpired(now time.Time) {
	cutoff := now.Add(-r.dedupWindow)
	for key, ts := range r.dedupCache {
		if ts.Before(cutoff) {
			delete(r.dedupCache, key)
		}
	}
}

func (r *GormFleetLogRepository) GetLogs(ctx context.Context, filter LogFilter) ([]FleetLogEntry, error) {
	query := r.db.WithContext(ctx).Model(&FleetLogModel{})

	if filter.ProfileKey != "" {
		query = query.Where("profile_key = ?", filter.ProfileKey)
	}
	if filter.FleetName != "" {
		query = query.Where("fleet_name = ?", filter.FleetName)
	}
	if filter.Level != "" {
		query = query.Where("level = ?", filter.Level)
	}
	if filter.Since != nil {
		query = query.Where("timestamp > ?", *filter.Since)
	}

	query = query.Order("timestamp DESC").Order("id DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var models []FleetLogModel
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	entries := make([]FleetLogEntry, len(models))
	for i, model := range models {
		var metadata map[string]interface{}
		if model.Metadata != "" {
			if err := json.Unmarshal([]byte(model.Metadata), &metadata); err != nil {
				metadata = nil
			}
		}

		entries[i] = FleetLogEntry{
			ID:         model.ID,
			ProfileKey: model.ProfileKey,
			FleetName:  model.FleetName,
			Timestamp:  model.Timestamp,
			Level:      model.Level,
			Message:    model.Message,
			Metadata:   metadata,
		}
	}
	return entries, nil
}

var _ FleetLogRepository = (*GormFleetLogRepository)(nil)
