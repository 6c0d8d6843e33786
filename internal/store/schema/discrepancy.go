package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/pitchside/consolidator/internal/domain"
)

// Discrepancy represents the discrepancies table - one field-level
// disagreement between sources. Rows are upserted on the natural key
// (target, field) so re-running a batch refreshes candidates instead of
// piling up duplicates; a manually overridden row is never overwritten by
// the pipeline.
type Discrepancy struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// TargetType classifies what the discrepancy is about (match,
	// club_season, attendance)
	TargetType domain.FactType `gorm:"column:target_type;not null;type:text;uniqueIndex:idx_discrepancies_target_field,priority:1"`
	// TargetKey is the natural key string of the row the discrepancy
	// belongs to
	TargetKey string `gorm:"column:target_key;not null;type:text;uniqueIndex:idx_discrepancies_target_field,priority:2"`
	// Field is the disputed field name (e.g. "home_goals")
	Field string `gorm:"column:field;not null;type:text;uniqueIndex:idx_discrepancies_target_field,priority:3"`
	// TargetID references the canonical row the discrepancy belongs to
	// (matches.id or club_seasons.id); a manual override writes the chosen
	// value back through it
	TargetID *int64 `gorm:"column:target_id"`
	// Candidates maps source id to the value it reported, as JSON. Every
	// candidate survives resolution.
	Candidates datatypes.JSON `gorm:"column:candidates;not null;type:jsonb"`
	// Resolution is the lifecycle state (auto_resolved, pending,
	// manually_overridden)
	Resolution domain.Resolution `gorm:"column:resolution;not null;type:text;index:idx_discrepancies_resolution"`
	// ResolvedValue is the adopted value; nil while pending
	ResolvedValue *string `gorm:"column:resolved_value;type:text"`
	// ResolvedBy is the operator who overrode the resolution, if anyone
	ResolvedBy *string `gorm:"column:resolved_by;type:text"`
	// ResolvedAt is when the discrepancy left the pending state
	ResolvedAt *time.Time `gorm:"column:resolved_at;type:timestamptz"`
	// CreatedAt is the timestamp when this record was first written
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Discrepancy model
func (Discrepancy) TableName() string {
	return "discrepancies"
}
