package normalizer_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchside/consolidator/internal/domain"
	"github.com/pitchside/consolidator/internal/normalizer"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNormalizeCSV_FootballData(t *testing.T) {
	csv := "Div,Date,HomeTeam,AwayTeam,FTHG,FTAG,Attendance\n" +
		"E0,10/08/2019,Arsenal,Burnley,2,1,60214\n" +
		"E0,10/08/2019,,Burnley,2,1,\n" + // missing home team
		"E0,10/08/2019,Everton,Watford,1,0,\n"

	n := normalizer.New(normalizer.NewFootballData())
	result, err := n.NormalizeCSV(domain.SourceFootballData, strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 2, result.Normalized)
	assert.Equal(t, 1, result.Malformed)
	// First row yields a match fact plus an attendance fact
	require.Len(t, result.Facts, 3)

	match := result.Facts[0]
	assert.Equal(t, domain.FactTypeMatch, match.FactType)
	assert.Equal(t, []string{"Arsenal", "Burnley"}, match.RawClubNames)
	assert.Equal(t, "E0", match.RawLeagueLabel)
	assert.Equal(t, date(2019, time.August, 10), match.ObservationDate)
	assert.Equal(t, "2", match.Payload[domain.FieldHomeGoals])
	assert.Equal(t, "1", match.Payload[domain.FieldAwayGoals])

	attendance := result.Facts[1]
	assert.Equal(t, domain.FactTypeAttendance, attendance.FactType)
	assert.Equal(t, "60214", attendance.Payload[domain.FieldAttendance])

	// Attendance column empty on the third row: match fact only
	assert.Equal(t, domain.FactTypeMatch, result.Facts[2].FactType)
}

func TestNormalizeCSV_FBRef(t *testing.T) {
	csv := "Date,Competition,Home,Score,Away,Attendance\n" +
		"2019-08-10,Premier League,Arsenal,2–1,Burnley,60214\n" +
		"2019-08-10,Premier League,Everton,not a score,Watford,\n"

	n := normalizer.New(normalizer.NewFBRef())
	result, err := n.NormalizeCSV(domain.SourceFBRef, strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Normalized)
	assert.Equal(t, 1, result.Malformed)
	require.Len(t, result.Facts, 2)

	match := result.Facts[0]
	assert.Equal(t, "2", match.Payload[domain.FieldHomeGoals])
	assert.Equal(t, "1", match.Payload[domain.FieldAwayGoals])

	assert.Equal(t, "60214", result.Facts[1].Payload[domain.FieldAttendance])
}

func TestNormalizeCSV_EFLTables_Statuses(t *testing.T) {
	csv := "match date,league,home team,away team,home goals,away goals,attendance,notes\n" +
		"1947-09-06,Third Division North,Accrington Stanley,Rochdale,2,0,4500,\n" +
		"1939-09-02,First Division,Arsenal,Sunderland,5,2,,expunged - season abandoned\n" +
		"1905-10-14,Second Division,Chelsea,Hull City,2,0,,awarded to home side\n"

	n := normalizer.New(normalizer.NewEFLTables())
	result, err := n.NormalizeCSV(domain.SourceEFLTables, strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 3, result.Normalized)
	assert.Equal(t, 0, result.Malformed)
	require.Len(t, result.Facts, 4) // three matches, one attendance

	assert.Equal(t, string(domain.StatusPlayed), result.Facts[0].Payload[domain.FieldStatus])
	assert.Equal(t, string(domain.StatusVoided), result.Facts[2].Payload[domain.FieldStatus])
	assert.Equal(t, string(domain.StatusAwardedWithoutPlay), result.Facts[3].Payload[domain.FieldStatus])
}

func TestNormalizeCSV_AttendanceSources(t *testing.T) {
	t.Run("transfermarkt", func(t *testing.T) {
		csv := "date,competition,home team,away team,attendance\n" +
			"\"Aug 10, 2019\",Premier League,Arsenal,Burnley,\"60,214\"\n"

		n := normalizer.New(normalizer.NewTransferMarkt())
		result, err := n.NormalizeCSV(domain.SourceTransferMarkt, strings.NewReader(csv))
		require.NoError(t, err)
		require.Len(t, result.Facts, 1)

		fact := result.Facts[0]
		assert.Equal(t, domain.FactTypeAttendance, fact.FactType)
		assert.Equal(t, "60214", fact.Payload[domain.FieldAttendance])
		assert.Equal(t, date(2019, time.August, 10), fact.ObservationDate)
	})

	t.Run("footballwebpages", func(t *testing.T) {
		csv := "date,league,home team,away team,attendance\n" +
			"10/08/2019,Premier League,Arsenal,Burnley,60214\n" +
			"10/08/2019,Premier League,Arsenal,Burnley,unknown\n"

		n := normalizer.New(normalizer.NewFootballWebPages())
		result, err := n.NormalizeCSV(domain.SourceFootballWebPages, strings.NewReader(csv))
		require.NoError(t, err)
		assert.Equal(t, 1, result.Normalized)
		assert.Equal(t, 1, result.Malformed)
	})
}

func TestNormalizeCSV_MalformedErrorsCarryContext(t *testing.T) {
	adapter := normalizer.NewTodor()
	_, err := adapter.Normalize(normalizer.Record{
		Line:   7,
		Fields: map[string]string{"home": "Arsenal", "visitor": "Burnley", "league": "First Division"},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMalformedRecord))

	var malformedErr *domain.MalformedRecordError
	require.True(t, errors.As(err, &malformedErr))
	assert.Equal(t, domain.SourceTodor, malformedErr.SourceID)
	assert.Equal(t, 7, malformedErr.Line)
}

func TestNormalizeCSV_UnknownSource(t *testing.T) {
	n := normalizer.New()
	_, err := n.NormalizeCSV(domain.SourceTodor, strings.NewReader("date\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no adapter registered")
}

func TestAll_CoversEverySource(t *testing.T) {
	adapters := normalizer.All()
	seen := make(map[domain.SourceID]bool)
	for _, a := range adapters {
		seen[a.SourceID()] = true
	}

	assert.Len(t, adapters, 7)
	for _, src := range []domain.SourceID{
		domain.SourceFootballData,
		domain.SourceFBRef,
		domain.SourceTodor,
		domain.SourceEFLTables,
		domain.SourceEngSoccerData,
		domain.SourceTransferMarkt,
		domain.SourceFootballWebPages,
	} {
		assert.True(t, seen[src], "missing adapter for %s", src)
	}
}
