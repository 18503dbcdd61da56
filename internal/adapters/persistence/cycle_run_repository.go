package persistence

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/andrescamacho/basedbot-go/internal/application/common"
)

// GormCycleRunRepository keeps the cycle history
type GormCycleRunRepository struct {
	db *gorm.DB
}

func NewGormCycleRunRepository(db *gorm.DB) *GormCycleRunRepository {
	return &GormCycleRunRepository{db: db}
}

func (r *GormCycleRunRepository) Record(ctx context.Context, record common.CycleRecord) error {
	model := &CycleRunModel{
		CycleID:    record.CycleID,
		ProfileKey: record.ProfileKey,
		StartedAt:  record.StartedAt,
		DurationMs: record.Duration.Milliseconds(),
		Observed:   record.Observed,
		Ticked:     record.Ticked,
		Failures:   record.Failures,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to record cycle %s: %w", record.CycleID, err)
	}
	return nil
}

// Recent returns the latest cycles of the profile, newest first
func (r *GormCycleRunRepository) Recent(ctx context.Context, profileKey string, limit int) ([]common.CycleRecord, error) {
	var models []CycleRunModel
	query := r.db.WithContext(ctx).
		Where("profile_key = ?", profileKey).
		Order("started_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to load cycle history: %w", err)
	}

	records := make([]common.CycleRecord, len(models))
	for i, m := range models {
		records[i] = common.CycleRecord{
			CycleID:    m.CycleID,
			ProfileKey: m.ProfileKey,
			StartedAt:  m.StartedAt,
			Duration:   time.Duration(m.DurationMs) * time.Millisecond,
			Observed:   m.Observed,
			Ticked:     m.Ticked,
			Failures:   m.Failures,
		}
	}
	return records, nil
}

var _ common.CycleHistory = (*GormCycleRunRepository)(nil)
