package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/basedbot-go/internal/domain/shared"
	domainTransport "github.com/andrescamacho/basedbot-go/internal/domain/transport"
)

// GormLatchStore persists route direction latches so a restarted bot
// resumes each round trip where it left off
type GormLatchStore struct {
	db         *gorm.DB
	profileKey string
	clock      shared.Clock
}

// NewGormLatchStore creates a latch store scoped to one profile.
// If clock is nil, uses RealClock.
func NewGormLatchStore(db *gorm.DB, profileKey string, clock shared.Clock) *GormLatchStore {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GormLatchStore{db: db, profileKey: profileKey, clock: clock}
}

func (s *GormLatchStore) Get(ctx context.Context, key domainTransport.RouteKey) (domainTransport.Direction, error) {
	var model RouteLatchModel
	err := s.db.WithContext(ctx).
		Where("route_key = ? AND profile_key = ?", string(key), s.profileKey).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainTransport.InitialDirection, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read latch %s: %w", key, err)
	}

	direction, err := domainTransport.ParseDirection(model.Direction)
	if err != nil {
		return "", fmt.Errorf("corrupt latch %s: %w", key, err)
	}
	return direction, nil
}

func (s *GormLatchStore) Set(ctx context.Context, key domainTransport.RouteKey, direction domainTransport.Direction) error {
	model := RouteLatchModel{
		RouteKey:   string(key),
		ProfileKey: s.profileKey,
		FleetName:  key.FleetName(),
		Direction:  string(direction),
		UpdatedAt:  s.clock.Now(),
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "profile_key"}, {Name: "route_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"direction", "updated_at"}),
	}).Create(&model).Error
	if err != nil {
		return fmt.Errorf("failed to write latch %s: %w", key, err)
	}
	return nil
}

// List returns every latch of the profile
func (s *GormLatchStore) List(ctx context.Context) ([]RouteLatchModel, error) {
	var models []RouteLatchModel
	if err := s.db.WithContext(ctx).
		Where("profile_key = ?", s.profileKey).
		Order("route_key").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list latches: %w", err)
	}
	return models, nil
}

var _ domainTransport.LatchStore = (*GormLatchStore)(nil)
