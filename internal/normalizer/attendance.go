package normalizer

import (
	"strconv"

	"github.com/pitchside/consolidator/internal/domain"
)

// attendanceSource is the shared shape of the attendance-only scrapes
// (transfermarkt, footballwebpages). Both report lower-case
// home team / away team / attendance columns and differ only in date
// format and league column name.
type attendanceSource struct {
	sourceID    domain.SourceID
	dateLayouts []string
	leagueCol   string
}

// NewTransferMarkt creates the transfermarkt attendance adapter
func NewTransferMarkt() Adapter {
	return &attendanceSource{
		sourceID:    domain.SourceTransferMarkt,
		dateLayouts: []string{"Jan 2, 2006", "2006-01-02"},
		leagueCol:   "competition",
	}
}

// NewFootballWebPages creates the footballwebpages attendance adapter
func NewFootballWebPages() Adapter {
	return &attendanceSource{
		sourceID:    domain.SourceFootballWebPages,
		dateLayouts: []string{"02/01/2006", "2006-01-02"},
		leagueCol:   "league",
	}
}

func (a *attendanceSource) SourceID() domain.SourceID {
	return a.sourceID
}

func (a *attendanceSource) Normalize(rec Record) ([]domain.RawFact, error) {
	home := rec.Get("home team")
	away := rec.Get("away team")
	if home == "" || away == "" {
		return nil, malformed(a.sourceID, rec, "missing club name (home=%q away=%q)", home, away)
	}

	rawDate := rec.Get("date")
	if rawDate == "" {
		return nil, malformed(a.sourceID, rec, "missing date")
	}
	matchDate, err := parseDate(rawDate, a.dateLayouts...)
	if err != nil {
		return nil, malformed(a.sourceID, rec, "%v", err)
	}

	league := rec.Get(a.leagueCol)
	if league == "" {
		return nil, malformed(a.sourceID, rec, "missing league")
	}

	attendance, err := parseCount(rec.Get("attendance"))
	if err != nil {
		return nil, malformed(a.sourceID, rec, "%v", err)
	}

	return []domain.RawFact{{
		SourceID:        a.sourceID,
		FactType:        domain.FactTypeAttendance,
		RawClubNames:    []string{home, away},
		RawLeagueLabel:  league,
		ObservationDate: matchDate,
		Payload: map[string]string{
			domain.FieldAttendance: strconv.Itoa(attendance),
		},
	}}, nil
}
