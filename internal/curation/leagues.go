package curation

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pitchside/consolidator/internal/adapter"
	"github.com/pitchside/consolidator/internal/domain"
)

// LeagueRow maps one raw league label, valid over [ValidFrom, ValidTo), to a
// pyramid tier. League names have changed non-monotonically over ~135 years
// while tier numbering has stayed stable; the label is display vocabulary,
// the tier is the join key.
type LeagueRow struct {
	Label     string
	ValidFrom time.Time
	ValidTo   *time.Time
	Tier      int
	Section   domain.Section
}

// Covers reports whether the row is active at the given date
func (r *LeagueRow) Covers(asOf time.Time) bool {
	if asOf.Before(r.ValidFrom) {
		return false
	}
	return r.ValidTo == nil || asOf.Before(*r.ValidTo)
}

// LeagueTable is the curated league-label-to-tier mapping
type LeagueTable struct {
	byLabel map[string][]LeagueRow
}

// LoadLeagueTable reads the league label CSV
// (label, valid_from, valid_to, tier, section).
func LoadLeagueTable(fs adapter.FileSystem, path string) (*LeagueTable, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read league table: %w", err)
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = 5
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read league table header: %w", err)
	}
	if len(header) != 5 || strings.TrimSpace(header[0]) != "label" {
		return nil, fmt.Errorf("unexpected league table header in %s: %v", path, header)
	}

	table := &LeagueTable{byLabel: make(map[string][]LeagueRow)}
	line := 1
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to parse league table line %d: %w", line, err)
		}

		row, err := parseLeagueRow(record)
		if err != nil {
			return nil, fmt.Errorf("invalid league table line %d: %w", line, err)
		}
		key := NormalizeName(row.Label)
		table.byLabel[key] = append(table.byLabel[key], row)
	}

	// The same label may map to different tiers in different eras, so an
	// overlap would make the lookup ambiguous
	for label, rows := range table.byLabel {
		sort.Slice(rows, func(i, j int) bool { return rows[i].ValidFrom.Before(rows[j].ValidFrom) })
		for i := 1; i < len(rows); i++ {
			prev := rows[i-1]
			if prev.ValidTo == nil || rows[i].ValidFrom.Before(*prev.ValidTo) {
				return nil, fmt.Errorf("league table: overlapping date ranges for label %q (tiers %d and %d)",
					label, prev.Tier, rows[i].Tier)
			}
		}
	}

	return table, nil
}

func parseLeagueRow(record []string) (LeagueRow, error) {
	label := strings.TrimSpace(record[0])
	if label == "" {
		return LeagueRow{}, fmt.Errorf("label is required")
	}

	validFrom, err := time.Parse("2006-01-02", strings.TrimSpace(record[1]))
	if err != nil {
		return LeagueRow{}, fmt.Errorf("bad valid_from: %w", err)
	}

	row := LeagueRow{Label: label, ValidFrom: validFrom}

	if to := strings.TrimSpace(record[2]); to != "" {
		validTo, err := time.Parse("2006-01-02", to)
		if err != nil {
			return LeagueRow{}, fmt.Errorf("bad valid_to: %w", err)
		}
		row.ValidTo = &validTo
	}

	tier, err := strconv.Atoi(strings.TrimSpace(record[3]))
	if err != nil || tier < 1 {
		return LeagueRow{}, fmt.Errorf("bad tier %q", record[3])
	}
	row.Tier = tier

	switch section := domain.Section(strings.TrimSpace(record[4])); section {
	case domain.SectionNone, domain.SectionNorth, domain.SectionSouth:
		row.Section = section
	default:
		return LeagueRow{}, fmt.Errorf("bad section %q", record[4])
	}

	return row, nil
}

// Lookup returns the tier row the label belonged to at the given date
func (t *LeagueTable) Lookup(label string, asOf time.Time) (LeagueRow, bool) {
	for _, row := range t.byLabel[NormalizeName(label)] {
		if row.Covers(asOf) {
			return row, true
		}
	}
	return LeagueRow{}, false
}

// Len returns the number of league rows loaded
func (t *LeagueTable) Len() int {
	n := 0
	for _, rows := range t.byLabel {
		n += len(rows)
	}
	return n
}
