package schema

import (
	"time"

	"github.com/pitchside/consolidator/internal/domain"
)

// AttendanceSample represents the attendance_samples table - every
// per-source attendance observation for a fixture. The reconciled figure on
// the match row never destroys the individual samples.
type AttendanceSample struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// MatchID references the fixture
	MatchID int64 `gorm:"column:match_id;not null;uniqueIndex:idx_attendance_samples_match_source,priority:1"`
	// SourceID is the source that reported this figure
	SourceID domain.SourceID `gorm:"column:source_id;not null;type:text;uniqueIndex:idx_attendance_samples_match_source,priority:2"`
	// Figure is the reported attendance
	Figure int `gorm:"column:figure;not null"`
	// RecordedAt is the timestamp when this sample was written
	RecordedAt time.Time `gorm:"column:recorded_at;not null;default:now();type:timestamptz"`

	// Associations
	Match Match `gorm:"foreignKey:MatchID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the AttendanceSample model
func (AttendanceSample) TableName() string {
	return "attendance_samples"
}
