package schema

import (
	"time"

	"gorm.io/datatypes"
)

// RunStatus represents the lifecycle state of an ingestion run
type RunStatus string

const (
	// RunStatusRunning indicates the run is in progress
	RunStatusRunning RunStatus = "running"
	// RunStatusSucceeded indicates the run completed and its summary counts
	// are final
	RunStatusSucceeded RunStatus = "succeeded"
	// RunStatusFailed indicates the run aborted on a whole-stage error
	RunStatusFailed RunStatus = "failed"
)

// IngestionRun represents the ingestion_runs table - one row per pipeline
// execution, carrying the run summary an operator checks after each batch
type IngestionRun struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// RunID is the UUID assigned when the run starts
	RunID string `gorm:"column:run_id;not null;uniqueIndex;type:text"`
	// Status is the lifecycle state of the run
	Status RunStatus `gorm:"column:status;not null;type:text"`
	// StartedAt is when the run began
	StartedAt time.Time `gorm:"column:started_at;not null;type:timestamptz"`
	// FinishedAt is when the run ended; nil while running
	FinishedAt *time.Time `gorm:"column:finished_at;type:timestamptz"`
	// RecordsRead counts raw records consumed across all sources
	RecordsRead int `gorm:"column:records_read;not null;default:0"`
	// RecordsNormalized counts records that produced at least one fact
	RecordsNormalized int `gorm:"column:records_normalized;not null;default:0"`
	// RecordsSkipped counts malformed or unresolvable records
	RecordsSkipped int `gorm:"column:records_skipped;not null;default:0"`
	// MatchesWritten counts canonical match rows upserted
	MatchesWritten int `gorm:"column:matches_written;not null;default:0"`
	// ClubSeasonsWritten counts club season rows upserted
	ClubSeasonsWritten int `gorm:"column:club_seasons_written;not null;default:0"`
	// DiscrepanciesFound counts discrepancies raised by the run
	DiscrepanciesFound int `gorm:"column:discrepancies_found;not null;default:0"`
	// Error is the whole-run failure message, if the run failed
	Error *string `gorm:"column:error;type:text"`
	// Detail carries per-source breakdowns as JSON
	Detail datatypes.JSON `gorm:"column:detail;type:jsonb"`
}

// TableName specifies the table name for the IngestionRun model
func (IngestionRun) TableName() string {
	return "ingestion_runs"
}
