package normalizer

import (
	"strconv"
	"strings"

	"github.com/pitchside/consolidator/internal/domain"
)

// eflTables translates English Football League Tables match exports. This
// source reaches back before the war years and annotates awarded and
// voided results in a free-text notes column.
type eflTables struct{}

// NewEFLTables creates the efl-tables source adapter
func NewEFLTables() Adapter {
	return &eflTables{}
}

func (a *eflTables) SourceID() domain.SourceID {
	return domain.SourceEFLTables
}

func (a *eflTables) Normalize(rec Record) ([]domain.RawFact, error) {
	home := rec.Get("home team")
	away := rec.Get("away team")
	if home == "" || away == "" {
		return nil, malformed(a.SourceID(), rec, "missing club name (home=%q away=%q)", home, away)
	}

	rawDate := rec.Get("match date")
	if rawDate == "" {
		return nil, malformed(a.SourceID(), rec, "missing date")
	}
	matchDate, err := parseDate(rawDate, "2006-01-02", "02 Jan 2006")
	if err != nil {
		return nil, malformed(a.SourceID(), rec, "%v", err)
	}

	league := rec.Get("league")
	if league == "" {
		return nil, malformed(a.SourceID(), rec, "missing league")
	}

	homeGoals, err := strconv.Atoi(rec.Get("home goals"))
	if err != nil {
		return nil, malformed(a.SourceID(), rec, "bad home goals %q", rec.Get("home goals"))
	}
	awayGoals, err := strconv.Atoi(rec.Get("away goals"))
	if err != nil {
		return nil, malformed(a.SourceID(), rec, "bad away goals %q", rec.Get("away goals"))
	}

	match := domain.RawFact{
		SourceID:        a.SourceID(),
		FactType:        domain.FactTypeMatch,
		RawClubNames:    []string{home, away},
		RawLeagueLabel:  league,
		ObservationDate: matchDate,
		Payload: map[string]string{
			domain.FieldHomeGoals: strconv.Itoa(homeGoals),
			domain.FieldAwayGoals: strconv.Itoa(awayGoals),
			domain.FieldStatus:    string(statusFromNotes(rec.Get("notes"))),
		},
	}

	facts := []domain.RawFact{match}

	if raw := rec.Get("attendance"); raw != "" {
		attendance, err := parseCount(raw)
		if err != nil {
			return nil, malformed(a.SourceID(), rec, "%v", err)
		}
		facts = append(facts, domain.RawFact{
			SourceID:        a.SourceID(),
			FactType:        domain.FactTypeAttendance,
			RawClubNames:    []string{home, away},
			RawLeagueLabel:  league,
			ObservationDate: matchDate,
			Payload: map[string]string{
				domain.FieldAttendance: strconv.Itoa(attendance),
			},
		})
	}

	return facts, nil
}

// statusFromNotes reads the historical annotations this source uses for
// results the governing body assigned or annulled
func statusFromNotes(notes string) domain.MatchStatus {
	lowered := strings.ToLower(notes)
	switch {
	case strings.Contains(lowered, "awarded"):
		return domain.StatusAwardedWithoutPlay
	case strings.Contains(lowered, "void"), strings.Contains(lowered, "expunged"):
		return domain.StatusVoided
	default:
		return domain.StatusPlayed
	}
}
