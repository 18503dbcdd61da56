package persistence

import (
	"time"
)

// RouteLatchModel represents the route_latches table
type RouteLatchModel struct {
	ProfileKey string    `gorm:"column:profile_key;primaryKey"`
	RouteKey   string    `gorm:"column:route_key;primaryKey"`
	FleetName  string    `gorm:"column:fleet_name;not null"`
	Direction  string    `gorm:"column:direction;not null"`
	UpdatedAt  time.Time `gorm:"column:updated_at;not null"`
}

func (RouteLatchModel) TableName() string {
	return "route_latches"
}

// FleetLogModel represents the fleet_logs table
type FleetLogModel struct {
	ID         int       `gorm:"column:id;primaryKey;autoIncrement"`
	ProfileKey string    `gorm:"column:profile_key;not null;index:idx_fleet_logs_scope"`
	FleetName  string    `gorm:"column:fleet_name;index:idx_fleet_logs_scope"` // empty for cycle-level entries
	Timestamp  time.Time `gorm:"column:timestamp;not null"`
	Level      string    `gorm:"column:level;not null;default:'INFO'"`
	Message    string    `gorm:"column:message;type:text;not null"`
	Metadata   string    `gorm:"column:metadata;type:text"` // JSON as text
}

func (FleetLogModel) TableName() string {
	return "fleet_logs"
}

// CycleRunModel represents the cycle_runs table
type CycleRunModel struct {
	CycleID    string    `gorm:"column:cycle_id;primaryKey"`
	ProfileKey string    `gorm:"column:profile_key;not null;index"`
	StartedAt  time.Time `gorm:"column:started_at;not null"`
	DurationMs int64     `gorm:"column:duration_ms;not null"`
	Observed   int       `gorm:"column:observed;not null;default:0"`
	Ticked     int       `gorm:"column:ticked;not null;default:0"`
	Failures   int       `gorm:"column:failures;not null;default:0"`
}

func (CycleRunModel) TableName() string {
	return "cycle_runs"
}

// AllModels lists every model for auto-migration
func AllModels() []interface{} {
	return []interface{}{
		&RouteLatchModel{},
		&FleetLogModel{},
		&CycleRunModel{},
	}
}
