package normalizer

import (
	"strconv"

	"github.com/pitchside/consolidator/internal/domain"
)

// fbref translates FBRef match exports. Dates are ISO, the score is one
// "2–1" column (en dash), and the competition name is spelled out.
type fbref struct{}

// NewFBRef creates the FBRef source adapter
func NewFBRef() Adapter {
	return &fbref{}
}

func (a *fbref) SourceID() domain.SourceID {
	return domain.SourceFBRef
}

func (a *fbref) Normalize(rec Record) ([]domain.RawFact, error) {
	home := rec.Get("Home")
	away := rec.Get("Away")
	if home == "" || away == "" {
		return nil, malformed(a.SourceID(), rec, "missing club name (home=%q away=%q)", home, away)
	}

	rawDate := rec.Get("Date")
	if rawDate == "" {
		return nil, malformed(a.SourceID(), rec, "missing date")
	}
	matchDate, err := parseDate(rawDate, "2006-01-02")
	if err != nil {
		return nil, malformed(a.SourceID(), rec, "%v", err)
	}

	competition := rec.Get("Competition")
	if competition == "" {
		return nil, malformed(a.SourceID(), rec, "missing competition")
	}

	homeGoals, awayGoals, err := parseScore(rec.Get("Score"))
	if err != nil {
		return nil, malformed(a.SourceID(), rec, "%v", err)
	}

	match := domain.RawFact{
		SourceID:        a.SourceID(),
		FactType:        domain.FactTypeMatch,
		RawClubNames:    []string{home, away},
		RawLeagueLabel:  competition,
		ObservationDate: matchDate,
		Payload: map[string]string{
			domain.FieldHomeGoals: strconv.Itoa(homeGoals),
			domain.FieldAwayGoals: strconv.Itoa(awayGoals),
			domain.FieldStatus:    string(domain.StatusPlayed),
		},
	}

	facts := []domain.RawFact{match}

	if raw := rec.Get("Attendance"); raw != "" {
		attendance, err := parseCount(raw)
		if err != nil {
			return nil, malformed(a.SourceID(), rec, "%v", err)
		}
		facts = append(facts, domain.RawFact{
			SourceID:        a.SourceID(),
			FactType:        domain.FactTypeAttendance,
			RawClubNames:    []string{home, away},
			RawLeagueLabel:  competition,
			ObservationDate: matchDate,
			Payload: map[string]string{
				domain.FieldAttendance: strconv.Itoa(attendance),
			},
		})
	}

	return facts, nil
}
