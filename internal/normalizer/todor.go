package normalizer

import (
	"strconv"

	"github.com/pitchside/consolidator/internal/domain"
)

// todor translates todor66-style historical league tables. Lower-case
// columns, dd.mm.yyyy dates, one full-time score column.
type todor struct{}

// NewTodor creates the todor source adapter
func NewTodor() Adapter {
	return &todor{}
}

func (a *todor) SourceID() domain.SourceID {
	return domain.SourceTodor
}

func (a *todor) Normalize(rec Record) ([]domain.RawFact, error) {
	home := rec.Get("home")
	away := rec.Get("visitor")
	if home == "" || away == "" {
		return nil, malformed(a.SourceID(), rec, "missing club name (home=%q visitor=%q)", home, away)
	}

	rawDate := rec.Get("date")
	if rawDate == "" {
		return nil, malformed(a.SourceID(), rec, "missing date")
	}
	matchDate, err := parseDate(rawDate, "02.01.2006", "2006-01-02")
	if err != nil {
		return nil, malformed(a.SourceID(), rec, "%v", err)
	}

	league := rec.Get("league")
	if league == "" {
		return nil, malformed(a.SourceID(), rec, "missing league")
	}

	homeGoals, awayGoals, err := parseScore(rec.Get("score"))
	if err != nil {
		return nil, malformed(a.SourceID(), rec, "%v", err)
	}

	return []domain.RawFact{{
		SourceID:        a.SourceID(),
		FactType:        domain.FactTypeMatch,
		RawClubNames:    []string{home, away},
		RawLeagueLabel:  league,
		ObservationDate: matchDate,
		Payload: map[string]string{
			domain.FieldHomeGoals: strconv.Itoa(homeGoals),
			domain.FieldAwayGoals: strconv.Itoa(awayGoals),
			domain.FieldStatus:    string(domain.StatusPlayed),
		},
	}}, nil
}
