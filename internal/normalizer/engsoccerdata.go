package normalizer

import (
	"strconv"

	"github.com/pitchside/consolidator/internal/domain"
)

// engSoccerData translates the engsoccerdata historical archive. Division
// is reported as a bare number; goals sit in hgoal/vgoal.
type engSoccerData struct{}

// NewEngSoccerData creates the engsoccerdata source adapter
func NewEngSoccerData() Adapter {
	return &engSoccerData{}
}

func (a *engSoccerData) SourceID() domain.SourceID {
	return domain.SourceEngSoccerData
}

func (a *engSoccerData) Normalize(rec Record) ([]domain.RawFact, error) {
	home := rec.Get("home")
	away := rec.Get("visitor")
	if home == "" || away == "" {
		return nil, malformed(a.SourceID(), rec, "missing club name (home=%q visitor=%q)", home, away)
	}

	rawDate := rec.Get("Date")
	if rawDate == "" {
		return nil, malformed(a.SourceID(), rec, "missing date")
	}
	matchDate, err := parseDate(rawDate, "2006-01-02")
	if err != nil {
		return nil, malformed(a.SourceID(), rec, "%v", err)
	}

	division := rec.Get("division")
	if division == "" {
		return nil, malformed(a.SourceID(), rec, "missing division")
	}

	homeGoals, err := strconv.Atoi(rec.Get("hgoal"))
	if err != nil {
		return nil, malformed(a.SourceID(), rec, "bad home goals %q", rec.Get("hgoal"))
	}
	awayGoals, err := strconv.Atoi(rec.Get("vgoal"))
	if err != nil {
		return nil, malformed(a.SourceID(), rec, "bad away goals %q", rec.Get("vgoal"))
	}

	return []domain.RawFact{{
		SourceID:        a.SourceID(),
		FactType:        domain.FactTypeMatch,
		RawClubNames:    []string{home, away},
		RawLeagueLabel:  "division " + division,
		ObservationDate: matchDate,
		Payload: map[string]string{
			domain.FieldHomeGoals: strconv.Itoa(homeGoals),
			domain.FieldAwayGoals: strconv.Itoa(awayGoals),
			domain.FieldStatus:    string(statusFromNotes(rec.Get("note"))),
		},
	}}, nil
}
