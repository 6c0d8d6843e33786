// Package leagues maps raw league labels plus dates onto canonical
// (tier, season) keys. League marketing names have changed repeatedly over
// ~135 years while the pyramid tier has stayed stable in meaning, so the
// curated label table is the single join point between the two vocabularies.
package leagues

import (
	"time"

	"github.com/pitchside/consolidator/internal/curation"
	"github.com/pitchside/consolidator/internal/domain"
)

// Mapper maps raw league labels to canonical league/season keys
type Mapper struct {
	table *curation.LeagueTable
}

// NewMapper creates a mapper over a curated league label table
func NewMapper(table *curation.LeagueTable) *Mapper {
	return &Mapper{table: table}
}

// Map returns the canonical key for a raw label at a given date. The season
// bounds follow the August-anchored convention (domain.SeasonStartYear);
// wartime and other anomalies are curated as their own label rows with
// explicit date ranges. The 1921-1958 third-tier regional sections surface
// in LeagueSeasonKey.Section and are never folded into a single tier-3 key.
// Returns a domain.UnknownLeagueLabelError on a curation gap.
func (m *Mapper) Map(rawLabel string, asOf time.Time) (domain.LeagueSeasonKey, error) {
	row, ok := m.table.Lookup(rawLabel, asOf)
	if !ok {
		return domain.LeagueSeasonKey{}, &domain.UnknownLeagueLabelError{Label: rawLabel, AsOf: asOf}
	}

	start := domain.SeasonStartYear(asOf)
	return domain.LeagueSeasonKey{
		Tier:            row.Tier,
		Section:         row.Section,
		SeasonStartYear: start,
		SeasonEndYear:   start + 1,
		HistoricalLabel: row.Label,
	}, nil
}
