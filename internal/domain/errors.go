package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrMalformedRecord is returned when a source record lacks mandatory fields
	ErrMalformedRecord = errors.New("malformed record")

	// ErrUnknownAlias is returned when no alias row covers a (name, date) pair
	ErrUnknownAlias = errors.New("unknown club alias")

	// ErrUnknownLeagueLabel is returned when no curated row covers a league label
	ErrUnknownLeagueLabel = errors.New("unknown league label")

	// ErrIntegrityViolation is returned when a write would break a schema invariant
	ErrIntegrityViolation = errors.New("integrity violation")
)

// MalformedRecordError reports a source record that failed syntactic
// translation. It is counted and skipped, never fatal to a batch.
type MalformedRecordError struct {
	SourceID SourceID
	Line     int
	Reason   string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record from %s (line %d): %s", e.SourceID, e.Line, e.Reason)
}

func (e *MalformedRecordError) Unwrap() error { return ErrMalformedRecord }

// UnknownAliasError reports a curation gap in the club alias table. It
// carries the name and date so the curator can add the missing row.
type UnknownAliasError struct {
	Name string
	AsOf time.Time
}

func (e *UnknownAliasError) Error() string {
	return fmt.Sprintf("no club alias covers %q as of %s", e.Name, e.AsOf.Format("2006-01-02"))
}

func (e *UnknownAliasError) Unwrap() error { return ErrUnknownAlias }

// UnknownLeagueLabelError reports a curation gap in the league label table
type UnknownLeagueLabelError struct {
	Label string
	AsOf  time.Time
}

func (e *UnknownLeagueLabelError) Error() string {
	return fmt.Sprintf("no league mapping covers %q as of %s", e.Label, e.AsOf.Format("2006-01-02"))
}

func (e *UnknownLeagueLabelError) Unwrap() error { return ErrUnknownLeagueLabel }

// IntegrityViolationError reports an attempted write that would break a
// canonical-schema invariant. Fatal for the record, never for the batch.
type IntegrityViolationError struct {
	Key    string
	Reason string
}

func (e *IntegrityViolationError) Error() string {
	return fmt.Sprintf("integrity violation on %s: %s", e.Key, e.Reason)
}

func (e *IntegrityViolationError) Unwrap() error { return ErrIntegrityViolation }
