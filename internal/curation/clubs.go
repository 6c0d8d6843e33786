package curation

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/pitchside/consolidator/internal/adapter"
	"github.com/pitchside/consolidator/internal/domain"
)

// ClubRow is one curated canonical club identity. Clubs are created by
// manual curation, never auto-discovered, and never deleted: retired
// entities stay for historical joins.
type ClubRow struct {
	ClubID      domain.ClubID
	DisplayName string
	// LineageNotes explains mergers, renames, phoenix continuity and
	// mid-season replacement inheritance in free text
	LineageNotes string
}

// ClubRegistry is the curated set of canonical clubs
type ClubRegistry struct {
	byID  map[domain.ClubID]ClubRow
	order []domain.ClubID
}

// LoadClubRegistry reads the clubs CSV (club_id, display_name, lineage_notes)
func LoadClubRegistry(fs adapter.FileSystem, path string) (*ClubRegistry, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read club registry: %w", err)
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = 3
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read club registry header: %w", err)
	}
	if len(header) != 3 || strings.TrimSpace(header[0]) != "club_id" {
		return nil, fmt.Errorf("unexpected club registry header in %s: %v", path, header)
	}

	reg := &ClubRegistry{byID: make(map[domain.ClubID]ClubRow)}
	line := 1
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to parse club registry line %d: %w", line, err)
		}

		id := domain.ClubID(strings.TrimSpace(record[0]))
		name := strings.TrimSpace(record[1])
		if id == "" || name == "" {
			return nil, fmt.Errorf("club registry line %d: club_id and display_name are required", line)
		}
		if _, dup := reg.byID[id]; dup {
			return nil, fmt.Errorf("club registry line %d: duplicate club_id %s", line, id)
		}

		reg.byID[id] = ClubRow{
			ClubID:       id,
			DisplayName:  name,
			LineageNotes: strings.TrimSpace(record[2]),
		}
		reg.order = append(reg.order, id)
	}

	return reg, nil
}

// Get returns the curated club row for an id
func (r *ClubRegistry) Get(id domain.ClubID) (ClubRow, bool) {
	row, ok := r.byID[id]
	return row, ok
}

// All returns every curated club in file order
func (r *ClubRegistry) All() []ClubRow {
	rows := make([]ClubRow, 0, len(r.order))
	for _, id := range r.order {
		rows = append(rows, r.byID[id])
	}
	return rows
}

// Len returns the number of curated clubs
func (r *ClubRegistry) Len() int {
	return len(r.byID)
}
