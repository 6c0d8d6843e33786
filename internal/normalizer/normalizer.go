// Package normalizer translates source-native records into the common
// RawFact shape. Translation is strictly syntactic: per-source column names,
// date formats and score encodings are unified here, but identity
// resolution and conflict handling are left to later stages.
package normalizer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pitchside/consolidator/internal/domain"
	"github.com/pitchside/consolidator/internal/logger"
)

// Record is one source-native row, keyed by the source's own column names
type Record struct {
	// Line is the 1-based line number in the source file, for error context
	Line   int
	Fields map[string]string
}

// Get returns a trimmed field value; missing columns read as empty
func (r Record) Get(column string) string {
	return strings.TrimSpace(r.Fields[column])
}

// Adapter translates one source's records into RawFacts. A single record
// may yield several facts, e.g. a match row that also carries an
// attendance figure.
type Adapter interface {
	// SourceID identifies the source this adapter understands
	SourceID() domain.SourceID
	// Normalize translates one record. A record lacking mandatory fields
	// returns a domain.MalformedRecordError; the caller skips and counts it.
	Normalize(rec Record) ([]domain.RawFact, error)
}

// Result reports what one normalization pass produced. Malformed records
// are skipped and counted, never silently dropped.
type Result struct {
	Facts      []domain.RawFact
	Normalized int
	Malformed  int
}

// Normalizer fans source-native record streams through their adapters
type Normalizer struct {
	adapters map[domain.SourceID]Adapter
}

// New creates a normalizer with the given source adapters
func New(adapters ...Adapter) *Normalizer {
	n := &Normalizer{adapters: make(map[domain.SourceID]Adapter, len(adapters))}
	for _, a := range adapters {
		n.adapters[a.SourceID()] = a
	}
	return n
}

// All returns one adapter per supported source, for wiring the full
// pipeline in one call
func All() []Adapter {
	return []Adapter{
		NewFootballData(),
		NewFBRef(),
		NewTodor(),
		NewEFLTables(),
		NewEngSoccerData(),
		NewTransferMarkt(),
		NewFootballWebPages(),
	}
}

// Sources returns the source ids this normalizer can translate
func (n *Normalizer) Sources() []domain.SourceID {
	ids := make([]domain.SourceID, 0, len(n.adapters))
	for id := range n.adapters {
		ids = append(ids, id)
	}
	return ids
}

// NormalizeCSV reads one CSV export for a source and translates every row.
// The first row must be a header. Per-record failures are logged and
// counted in the result; only an unreadable stream is an error.
func (n *Normalizer) NormalizeCSV(sourceID domain.SourceID, r io.Reader) (*Result, error) {
	adapter, ok := n.adapters[sourceID]
	if !ok {
		return nil, fmt.Errorf("no adapter registered for source %s", sourceID)
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header for source %s: %w", sourceID, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	result := &Result{}
	line := 1
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			result.Malformed++
			logger.Warn("Skipping unparseable record",
				zap.String("source", string(sourceID)),
				zap.Int("line", line),
				zap.Error(err),
			)
			continue
		}

		rec := Record{Line: line, Fields: make(map[string]string, len(header))}
		for i, col := range header {
			if i < len(row) {
				rec.Fields[col] = row[i]
			}
		}

		facts, err := adapter.Normalize(rec)
		if err != nil {
			result.Malformed++
			logger.Warn("Skipping malformed record",
				zap.String("source", string(sourceID)),
				zap.Int("line", line),
				zap.Error(err),
			)
			continue
		}

		result.Facts = append(result.Facts, facts...)
		result.Normalized++
	}

	return result, nil
}

// malformed builds the per-record error adapters return on bad shape
func malformed(sourceID domain.SourceID, rec Record, format string, args ...any) error {
	return &domain.MalformedRecordError{
		SourceID: sourceID,
		Line:     rec.Line,
		Reason:   fmt.Sprintf(format, args...),
	}
}

// parseDate tries each layout in order
func parseDate(value string, layouts ...string) (time.Time, error) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

// parseCount parses a non-negative integer that may carry thousands
// separators, e.g. "54,000"
func parseCount(value string) (int, error) {
	cleaned := strings.ReplaceAll(strings.ReplaceAll(value, ",", ""), " ", "")
	n, err := strconv.Atoi(cleaned)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("bad count %q", value)
	}
	return n, nil
}

// parseScore splits a "2-1" style score, tolerating the en dash some
// sources use
func parseScore(value string) (home, away int, err error) {
	normalized := strings.NewReplacer("–", "-", "—", "-", ":", "-").Replace(value)
	parts := strings.SplitN(normalized, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("bad score %q", value)
	}
	home, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("bad score %q", value)
	}
	away, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("bad score %q", value)
	}
	if home < 0 || away < 0 {
		return 0, 0, fmt.Errorf("bad score %q", value)
	}
	return home, away, nil
}
