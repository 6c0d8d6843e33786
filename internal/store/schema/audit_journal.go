package schema

import (
	"time"

	"gorm.io/datatypes"
)

// AuditSubjectType represents the type of entity an audit event is about
type AuditSubjectType string

const (
	// AuditSubjectMatch indicates a change to a canonical match row
	AuditSubjectMatch AuditSubjectType = "match"
	// AuditSubjectClubSeason indicates a change to a club season row
	AuditSubjectClubSeason AuditSubjectType = "club_season"
	// AuditSubjectDiscrepancy indicates a discrepancy state transition
	AuditSubjectDiscrepancy AuditSubjectType = "discrepancy"
	// AuditSubjectRun indicates an ingestion run lifecycle event
	AuditSubjectRun AuditSubjectType = "run"
)

// AuditAction represents what happened to the subject
type AuditAction string

const (
	// AuditActionCreated indicates the row was first written
	AuditActionCreated AuditAction = "created"
	// AuditActionUpdated indicates a field on the row changed
	AuditActionUpdated AuditAction = "updated"
	// AuditActionOverridden indicates an operator manually resolved a
	// discrepancy
	AuditActionOverridden AuditAction = "overridden"
)

// AuditJournal represents the audit_journal table - an append-only log of
// every change the writer makes. Rows are never updated or deleted.
type AuditJournal struct {
	// Cursor is an auto-incrementing sequence number for efficient
	// pagination and ordering
	Cursor int64 `gorm:"column:\"cursor\";primaryKey;autoIncrement"`
	// EventID is a ULID, globally unique and lexically time-ordered
	EventID string `gorm:"column:event_id;not null;uniqueIndex;type:text"`
	// RunID identifies the ingestion run that produced the event
	RunID string `gorm:"column:run_id;not null;type:text;index:idx_audit_journal_run"`
	// SubjectType identifies what kind of entity changed
	SubjectType AuditSubjectType `gorm:"column:subject_type;not null;type:text;index:idx_audit_journal_subject,priority:1"`
	// SubjectKey is the natural key string of the changed entity
	SubjectKey string `gorm:"column:subject_key;not null;type:text;index:idx_audit_journal_subject,priority:2"`
	// Action records what happened (created, updated, overridden)
	Action AuditAction `gorm:"column:action;not null;type:text"`
	// OccurredAt is the timestamp of the change
	OccurredAt time.Time `gorm:"column:occurred_at;not null;default:now();type:timestamptz"`
	// Meta carries field-level before/after context as JSON
	Meta datatypes.JSON `gorm:"column:meta;type:jsonb"`
}

// TableName specifies the table name for the AuditJournal model
func (AuditJournal) TableName() string {
	return "audit_journal"
}
