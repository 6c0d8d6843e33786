package curation

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/pitchside/consolidator/internal/adapter"
	"github.com/pitchside/consolidator/internal/domain"
)

// AliasRow maps one historical name string, valid over [ValidFrom, ValidTo),
// to exactly one club. A nil ValidTo means the alias is still in force.
type AliasRow struct {
	ClubID    domain.ClubID
	Name      string
	ValidFrom time.Time
	ValidTo   *time.Time
}

// Covers reports whether the row is active at the given date
func (r *AliasRow) Covers(asOf time.Time) bool {
	if asOf.Before(r.ValidFrom) {
		return false
	}
	return r.ValidTo == nil || asOf.Before(*r.ValidTo)
}

// AliasTable is the curated club-name alias table, hand-built from
// historical research. It is read-only for the duration of a run.
type AliasTable struct {
	// rows indexed by normalized name, each slice sorted by ValidFrom
	byName map[string][]AliasRow
}

// NormalizeName folds a reported club name into its lookup form: trimmed,
// lower-cased, inner whitespace collapsed. This is purely syntactic; it
// never merges distinct names.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// LoadAliasTable reads the alias CSV (club_id, name, valid_from, valid_to)
// and validates the date-partitioning invariant: for any name, active date
// ranges must not overlap.
func LoadAliasTable(fs adapter.FileSystem, path string) (*AliasTable, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read alias table: %w", err)
	}
	return parseAliasTable(data, path)
}

func parseAliasTable(data []byte, path string) (*AliasTable, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = 4
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read alias table header: %w", err)
	}
	if len(header) != 4 || strings.TrimSpace(header[0]) != "club_id" {
		return nil, fmt.Errorf("unexpected alias table header in %s: %v", path, header)
	}

	table := &AliasTable{byName: make(map[string][]AliasRow)}
	line := 1
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to parse alias table line %d: %w", line, err)
		}

		row, err := parseAliasRow(record)
		if err != nil {
			return nil, fmt.Errorf("invalid alias table line %d: %w", line, err)
		}
		key := NormalizeName(row.Name)
		table.byName[key] = append(table.byName[key], row)
	}

	for name, rows := range table.byName {
		sort.Slice(rows, func(i, j int) bool { return rows[i].ValidFrom.Before(rows[j].ValidFrom) })
		for i := 1; i < len(rows); i++ {
			prev := rows[i-1]
			if prev.ValidTo == nil || rows[i].ValidFrom.Before(*prev.ValidTo) {
				return nil, fmt.Errorf("alias table: overlapping date ranges for name %q (clubs %s and %s)",
					name, prev.ClubID, rows[i].ClubID)
			}
		}
	}

	return table, nil
}

func parseAliasRow(record []string) (AliasRow, error) {
	clubID := strings.TrimSpace(record[0])
	name := strings.TrimSpace(record[1])
	if clubID == "" || name == "" {
		return AliasRow{}, fmt.Errorf("club_id and name are required")
	}

	validFrom, err := time.Parse("2006-01-02", strings.TrimSpace(record[2]))
	if err != nil {
		return AliasRow{}, fmt.Errorf("bad valid_from: %w", err)
	}

	row := AliasRow{
		ClubID:    domain.ClubID(clubID),
		Name:      name,
		ValidFrom: validFrom,
	}

	if to := strings.TrimSpace(record[3]); to != "" {
		validTo, err := time.Parse("2006-01-02", to)
		if err != nil {
			return AliasRow{}, fmt.Errorf("bad valid_to: %w", err)
		}
		if !validFrom.Before(validTo) {
			return AliasRow{}, fmt.Errorf("valid_from %s is not before valid_to %s", record[2], to)
		}
		row.ValidTo = &validTo
	}

	return row, nil
}

// Lookup returns the club the name belonged to at the given date. The
// boolean is false when no alias row covers (name, asOf).
func (t *AliasTable) Lookup(name string, asOf time.Time) (domain.ClubID, bool) {
	for _, row := range t.byName[NormalizeName(name)] {
		if row.Covers(asOf) {
			return row.ClubID, true
		}
	}
	return "", false
}

// Rows returns every alias row, ordered by normalized name then ValidFrom,
// for mirroring the curated table into the canonical store
func (t *AliasTable) Rows() []AliasRow {
	names := make([]string, 0, len(t.byName))
	for name := range t.byName {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]AliasRow, 0, t.Len())
	for _, name := range names {
		rows = append(rows, t.byName[name]...)
	}
	return rows
}

// Len returns the number of alias rows loaded
func (t *AliasTable) Len() int {
	n := 0
	for _, rows := range t.byName {
		n += len(rows)
	}
	return n
}
