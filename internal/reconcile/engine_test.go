package reconcile_test

import (
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchside/consolidator/internal/curation"
	"github.com/pitchside/consolidator/internal/domain"
	"github.com/pitchside/consolidator/internal/mocks"
	"github.com/pitchside/consolidator/internal/reconcile"
)

const aliasCSV = "club_id,name,valid_from,valid_to\n" +
	"arsenal,Woolwich Arsenal,1893-01-01,1914-06-01\n" +
	"arsenal,Arsenal,1914-06-01,\n" +
	"arsenal,Arsenal FC,1914-06-01,\n" +
	"burnley,Burnley,1882-01-01,\n" +
	"wrexham,Wrexham,1872-01-01,\n" +
	"gateshead,Gateshead,1930-06-01,1960-06-01\n"

const clubCSV = "club_id,display_name,lineage_notes\n" +
	"arsenal,Arsenal,renamed from Woolwich Arsenal in 1914\n" +
	"burnley,Burnley,\n" +
	"wrexham,Wrexham,\n" +
	"gateshead,Gateshead,renamed from South Shields in 1930\n"

const leagueCSV = "label,valid_from,valid_to,tier,section\n" +
	"Premier League,1992-07-01,,1,\n" +
	"First Division,1888-09-01,1992-07-01,1,\n" +
	"Third Division North,1921-07-01,1958-07-01,3,north\n"

const precedenceYAML = `match:
  home_goals: [football-data, engsoccerdata]
  away_goals: [football-data, engsoccerdata]
attendance:
  attendance: [transfermarkt, football-data]
`

func loadSnapshot(t *testing.T) *curation.Snapshot {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockFS := mocks.NewMockFileSystem(ctrl)
	mockFS.EXPECT().ReadFile("curated/club_aliases.csv").Return([]byte(aliasCSV), nil)
	mockFS.EXPECT().ReadFile("curated/clubs.csv").Return([]byte(clubCSV), nil)
	mockFS.EXPECT().ReadFile("curated/league_labels.csv").Return([]byte(leagueCSV), nil)
	mockFS.EXPECT().ReadFile("curated/precedence.yaml").Return([]byte(precedenceYAML), nil)

	snapshot, err := curation.Load(mockFS, "curated")
	require.NoError(t, err)
	return snapshot
}

func matchFact(source domain.SourceID, date time.Time, home, away, league string, payload map[string]string) domain.RawFact {
	return domain.RawFact{
		SourceID:        source,
		FactType:        domain.FactTypeMatch,
		RawClubNames:    []string{home, away},
		RawLeagueLabel:  league,
		ObservationDate: date,
		Payload:         payload,
	}
}

func resolveAll(t *testing.T, engine *reconcile.Engine, facts []domain.RawFact) []reconcile.ResolvedFact {
	t.Helper()
	resolved := make([]reconcile.ResolvedFact, 0, len(facts))
	for _, fact := range facts {
		rf, err := engine.Resolve(fact)
		require.NoError(t, err)
		resolved = append(resolved, rf)
	}
	return resolved
}

func TestResolve(t *testing.T) {
	engine := reconcile.NewEngine(loadSnapshot(t))

	t.Run("alias and label resolve per the observation date", func(t *testing.T) {
		rf, err := engine.Resolve(matchFact(
			domain.SourceEngSoccerData,
			time.Date(1905, time.December, 2, 0, 0, 0, 0, time.UTC),
			"Woolwich Arsenal", "Burnley", "First Division",
			map[string]string{domain.FieldHomeGoals: "2", domain.FieldAwayGoals: "0"},
		))
		require.NoError(t, err)
		assert.Equal(t, domain.ClubID("arsenal"), rf.ClubIDs[0])
		assert.Equal(t, domain.ClubID("burnley"), rf.ClubIDs[1])
		assert.Equal(t, 1, rf.LeagueKey.Tier)
		assert.Equal(t, 1905, rf.LeagueKey.SeasonStartYear)
	})

	t.Run("unknown alias fails that record only", func(t *testing.T) {
		_, err := engine.Resolve(matchFact(
			domain.SourceFootballData,
			time.Date(2019, time.August, 10, 0, 0, 0, 0, time.UTC),
			"Arsenal", "Not A Real Club", "Premier League",
			map[string]string{domain.FieldHomeGoals: "1", domain.FieldAwayGoals: "1"},
		))
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrUnknownAlias)

		var aliasErr *domain.UnknownAliasError
		require.ErrorAs(t, err, &aliasErr)
		assert.Equal(t, "Not A Real Club", aliasErr.Name)
	})

	t.Run("unknown league label fails the record", func(t *testing.T) {
		_, err := engine.Resolve(matchFact(
			domain.SourceFootballData,
			time.Date(2019, time.August, 10, 0, 0, 0, 0, time.UTC),
			"Arsenal", "Burnley", "Superleague",
			nil,
		))
		assert.ErrorIs(t, err, domain.ErrUnknownLeagueLabel)
	})

	t.Run("match fact with one club name is malformed", func(t *testing.T) {
		fact := matchFact(
			domain.SourceFootballData,
			time.Date(2019, time.August, 10, 0, 0, 0, 0, time.UTC),
			"Arsenal", "Burnley", "Premier League",
			nil,
		)
		fact.RawClubNames = fact.RawClubNames[:1]
		_, err := engine.Resolve(fact)
		assert.ErrorIs(t, err, domain.ErrMalformedRecord)
	})
}

func TestReconcileMerge(t *testing.T) {
	engine := reconcile.NewEngine(loadSnapshot(t))
	matchDate := time.Date(2019, time.August, 10, 0, 0, 0, 0, time.UTC)

	t.Run("same fixture under different spellings merges to one row", func(t *testing.T) {
		facts := resolveAll(t, engine, []domain.RawFact{
			matchFact(domain.SourceFootballData, matchDate, "Arsenal", "Burnley", "Premier League",
				map[string]string{domain.FieldHomeGoals: "2", domain.FieldAwayGoals: "1"}),
			matchFact(domain.SourceFBRef, matchDate, "Arsenal FC", "Burnley", "Premier League",
				map[string]string{domain.FieldHomeGoals: "2", domain.FieldAwayGoals: "1"}),
		})

		out := engine.Reconcile(facts)
		require.Len(t, out.Matches, 1)
		assert.Empty(t, out.Discrepancies)

		match := out.Matches[0]
		assert.Equal(t, domain.ClubID("arsenal"), match.HomeClubID)
		require.NotNil(t, match.HomeGoals)
		assert.Equal(t, 2, *match.HomeGoals)
		require.NotNil(t, match.AwayGoals)
		assert.Equal(t, 1, *match.AwayGoals)
		assert.Equal(t, domain.StatusPlayed, match.Status)
		assert.ElementsMatch(t,
			[]domain.SourceID{domain.SourceFootballData, domain.SourceFBRef},
			match.Sources)
	})

	t.Run("conflict with a precedence rule auto-resolves and keeps all candidates", func(t *testing.T) {
		facts := resolveAll(t, engine, []domain.RawFact{
			matchFact(domain.SourceFBRef, matchDate, "Arsenal", "Burnley", "Premier League",
				map[string]string{domain.FieldHomeGoals: "3", domain.FieldAwayGoals: "1"}),
			matchFact(domain.SourceFootballData, matchDate, "Arsenal", "Burnley", "Premier League",
				map[string]string{domain.FieldHomeGoals: "2", domain.FieldAwayGoals: "1"}),
		})

		out := engine.Reconcile(facts)
		require.Len(t, out.Matches, 1)
		require.Len(t, out.Discrepancies, 1)

		// football-data outranks fbref for goals
		require.NotNil(t, out.Matches[0].HomeGoals)
		assert.Equal(t, 2, *out.Matches[0].HomeGoals)

		disc := out.Discrepancies[0]
		assert.Equal(t, domain.FieldHomeGoals, disc.Field)
		assert.Equal(t, domain.ResolutionAutoResolved, disc.Resolution)
		require.NotNil(t, disc.ResolvedValue)
		assert.Equal(t, "2", *disc.ResolvedValue)
		assert.Equal(t, map[domain.SourceID]string{
			domain.SourceFootballData: "2",
			domain.SourceFBRef:        "3",
		}, disc.Candidates)
	})

	t.Run("conflict without a rule stays pending and leaves the field unset", func(t *testing.T) {
		seasonFact := func(source domain.SourceID, points string) domain.RawFact {
			return domain.RawFact{
				SourceID:        source,
				FactType:        domain.FactTypeClubSeason,
				RawClubNames:    []string{"Burnley"},
				RawLeagueLabel:  "Premier League",
				ObservationDate: matchDate,
				Payload:         map[string]string{domain.FieldPlayed: "38", domain.FieldPoints: points},
			}
		}
		facts := resolveAll(t, engine, []domain.RawFact{
			seasonFact(domain.SourceEFLTables, "54"),
			seasonFact(domain.SourceEngSoccerData, "52"),
		})

		out := engine.Reconcile(facts)
		require.Len(t, out.ClubSeasons, 1)

		season := out.ClubSeasons[0]
		require.NotNil(t, season.Played)
		assert.Equal(t, 38, *season.Played)
		// No precedence rule for points: the row exists but the field is null
		assert.Nil(t, season.Points)

		require.Len(t, out.Discrepancies, 1)
		assert.Equal(t, domain.ResolutionPending, out.Discrepancies[0].Resolution)
		assert.Nil(t, out.Discrepancies[0].ResolvedValue)
	})

	t.Run("attendance facts attach to their fixture with samples preserved", func(t *testing.T) {
		attendanceFact := func(source domain.SourceID, figure string) domain.RawFact {
			return domain.RawFact{
				SourceID:        source,
				FactType:        domain.FactTypeAttendance,
				RawClubNames:    []string{"Arsenal", "Burnley"},
				RawLeagueLabel:  "Premier League",
				ObservationDate: matchDate,
				Payload:         map[string]string{domain.FieldAttendance: figure},
			}
		}
		facts := resolveAll(t, engine, []domain.RawFact{
			matchFact(domain.SourceFootballData, matchDate, "Arsenal", "Burnley", "Premier League",
				map[string]string{domain.FieldHomeGoals: "2", domain.FieldAwayGoals: "1"}),
			attendanceFact(domain.SourceTransferMarkt, "60214"),
			attendanceFact(domain.SourceFootballWebPages, "60002"),
		})

		out := engine.Reconcile(facts)
		require.Len(t, out.Matches, 1)

		match := out.Matches[0]
		// transfermarkt outranks for attendance
		require.NotNil(t, match.Attendance)
		assert.Equal(t, 60214, *match.Attendance)
		assert.Equal(t, map[domain.SourceID]int{
			domain.SourceTransferMarkt:    60214,
			domain.SourceFootballWebPages: 60002,
		}, match.AttendanceSamples)

		require.Len(t, out.Discrepancies, 1)
		assert.Equal(t, domain.FactTypeAttendance, out.Discrepancies[0].TargetType)
	})

	t.Run("attendance with no fixture in the batch is counted and dropped", func(t *testing.T) {
		facts := resolveAll(t, engine, []domain.RawFact{{
			SourceID:        domain.SourceTransferMarkt,
			FactType:        domain.FactTypeAttendance,
			RawClubNames:    []string{"Arsenal", "Burnley"},
			RawLeagueLabel:  "Premier League",
			ObservationDate: matchDate,
			Payload:         map[string]string{domain.FieldAttendance: "60214"},
		}})

		out := engine.Reconcile(facts)
		assert.Empty(t, out.Matches)
		assert.Equal(t, 1, out.Stats.OrphanAttendance)
	})

	t.Run("unanimous but unparseable value is counted and left unset", func(t *testing.T) {
		facts := resolveAll(t, engine, []domain.RawFact{
			matchFact(domain.SourceFootballData, matchDate, "Arsenal", "Burnley", "Premier League",
				map[string]string{domain.FieldHomeGoals: "two", domain.FieldAwayGoals: "1"}),
		})

		out := engine.Reconcile(facts)
		require.Len(t, out.Matches, 1)
		assert.Nil(t, out.Matches[0].HomeGoals)
		require.NotNil(t, out.Matches[0].AwayGoals)
		assert.Equal(t, 1, out.Stats.MalformedValues)
		assert.Empty(t, out.Discrepancies)
	})

	t.Run("self-match is dropped as an integrity violation", func(t *testing.T) {
		facts := resolveAll(t, engine, []domain.RawFact{
			matchFact(domain.SourceTodor, matchDate, "Arsenal", "Arsenal FC", "Premier League",
				map[string]string{domain.FieldHomeGoals: "1", domain.FieldAwayGoals: "0"}),
		})

		out := engine.Reconcile(facts)
		assert.Empty(t, out.Matches)
		assert.Equal(t, 1, out.Stats.IntegrityViolations)
	})
}

func TestReconcileStatus(t *testing.T) {
	engine := reconcile.NewEngine(loadSnapshot(t))
	matchDate := time.Date(1947, time.January, 4, 0, 0, 0, 0, time.UTC)

	t.Run("awarded result is a status flag, not a discrepancy", func(t *testing.T) {
		facts := resolveAll(t, engine, []domain.RawFact{
			matchFact(domain.SourceEngSoccerData, matchDate, "Wrexham", "Gateshead", "Third Division North",
				map[string]string{domain.FieldHomeGoals: "2", domain.FieldAwayGoals: "0"}),
			matchFact(domain.SourceEFLTables, matchDate, "Wrexham", "Gateshead", "Third Division North",
				map[string]string{
					domain.FieldHomeGoals: "2",
					domain.FieldAwayGoals: "0",
					domain.FieldStatus:    string(domain.StatusAwardedWithoutPlay),
				}),
		})

		out := engine.Reconcile(facts)
		require.Len(t, out.Matches, 1)
		assert.Equal(t, domain.StatusAwardedWithoutPlay, out.Matches[0].Status)
		assert.Empty(t, out.Discrepancies)

		// Regional section is part of the fixture's league identity
		assert.Equal(t, "3-north:1946", out.Matches[0].LeagueKey.Key())
	})

	t.Run("a voided report wins over every other status", func(t *testing.T) {
		facts := resolveAll(t, engine, []domain.RawFact{
			matchFact(domain.SourceEFLTables, matchDate, "Wrexham", "Gateshead", "Third Division North",
				map[string]string{domain.FieldStatus: string(domain.StatusVoided)}),
			matchFact(domain.SourceEngSoccerData, matchDate, "Wrexham", "Gateshead", "Third Division North",
				map[string]string{domain.FieldHomeGoals: "2", domain.FieldAwayGoals: "0"}),
		})

		out := engine.Reconcile(facts)
		require.Len(t, out.Matches, 1)
		assert.Equal(t, domain.StatusVoided, out.Matches[0].Status)
	})
}

func TestReconcileDeterminism(t *testing.T) {
	engine := reconcile.NewEngine(loadSnapshot(t))

	var facts []domain.RawFact
	dates := []time.Time{
		time.Date(2019, time.August, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2019, time.August, 17, 0, 0, 0, 0, time.UTC),
		time.Date(2019, time.August, 24, 0, 0, 0, 0, time.UTC),
	}
	for _, d := range dates {
		facts = append(facts,
			matchFact(domain.SourceFBRef, d, "Arsenal", "Burnley", "Premier League",
				map[string]string{domain.FieldHomeGoals: "3", domain.FieldAwayGoals: "1"}),
			matchFact(domain.SourceFootballData, d, "Arsenal", "Burnley", "Premier League",
				map[string]string{domain.FieldHomeGoals: "2", domain.FieldAwayGoals: "1"}),
		)
	}

	first := engine.Reconcile(resolveAll(t, engine, facts))

	// Same input in reverse order must reconcile to identical output
	reversed := make([]domain.RawFact, len(facts))
	for i, fact := range facts {
		reversed[len(facts)-1-i] = fact
	}
	second := engine.Reconcile(resolveAll(t, engine, reversed))

	assert.Equal(t, first.Matches, second.Matches)
	assert.Equal(t, first.Discrepancies, second.Discrepancies)
}
