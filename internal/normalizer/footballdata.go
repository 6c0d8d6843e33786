package normalizer

import (
	"strconv"

	"github.com/pitchside/consolidator/internal/domain"
)

// footballData translates football-data.co.uk match exports. Dates come as
// dd/mm/yy or dd/mm/yyyy, the league is reported as a division code
// (E0, E1, ...) and full-time goals sit in FTHG/FTAG.
type footballData struct{}

// NewFootballData creates the football-data source adapter
func NewFootballData() Adapter {
	return &footballData{}
}

func (a *footballData) SourceID() domain.SourceID {
	return domain.SourceFootballData
}

func (a *footballData) Normalize(rec Record) ([]domain.RawFact, error) {
	home := rec.Get("HomeTeam")
	away := rec.Get("AwayTeam")
	if home == "" || away == "" {
		return nil, malformed(a.SourceID(), rec, "missing club name (home=%q away=%q)", home, away)
	}

	rawDate := rec.Get("Date")
	if rawDate == "" {
		return nil, malformed(a.SourceID(), rec, "missing date")
	}
	matchDate, err := parseDate(rawDate, "02/01/2006", "02/01/06")
	if err != nil {
		return nil, malformed(a.SourceID(), rec, "%v", err)
	}

	div := rec.Get("Div")
	if div == "" {
		return nil, malformed(a.SourceID(), rec, "missing division code")
	}

	homeGoals, err := strconv.Atoi(rec.Get("FTHG"))
	if err != nil {
		return nil, malformed(a.SourceID(), rec, "bad home goals %q", rec.Get("FTHG"))
	}
	awayGoals, err := strconv.Atoi(rec.Get("FTAG"))
	if err != nil {
		return nil, malformed(a.SourceID(), rec, "bad away goals %q", rec.Get("FTAG"))
	}

	match := domain.RawFact{
		SourceID:        a.SourceID(),
		FactType:        domain.FactTypeMatch,
		RawClubNames:    []string{home, away},
		RawLeagueLabel:  div,
		ObservationDate: matchDate,
		Payload: map[string]string{
			domain.FieldHomeGoals: strconv.Itoa(homeGoals),
			domain.FieldAwayGoals: strconv.Itoa(awayGoals),
			domain.FieldStatus:    string(domain.StatusPlayed),
		},
	}

	facts := []domain.RawFact{match}

	// Older seasons carry the gate in the same row
	if raw := rec.Get("Attendance"); raw != "" {
		attendance, err := parseCount(raw)
		if err != nil {
			return nil, malformed(a.SourceID(), rec, "%v", err)
		}
		facts = append(facts, domain.RawFact{
			SourceID:        a.SourceID(),
			FactType:        domain.FactTypeAttendance,
			RawClubNames:    []string{home, away},
			RawLeagueLabel:  div,
			ObservationDate: matchDate,
			Payload: map[string]string{
				domain.FieldAttendance: strconv.Itoa(attendance),
			},
		})
	}

	return facts, nil
}
