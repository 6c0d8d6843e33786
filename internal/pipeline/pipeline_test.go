package pipeline_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchside/consolidator/internal/domain"
	"github.com/pitchside/consolidator/internal/mocks"
	"github.com/pitchside/consolidator/internal/normalizer"
	"github.com/pitchside/consolidator/internal/pipeline"
	"github.com/pitchside/consolidator/internal/store"
	"github.com/pitchside/consolidator/internal/store/schema"
)

const aliasCSV = "club_id,name,valid_from,valid_to\n" +
	"arsenal,Arsenal,1914-06-01,\n" +
	"burnley,Burnley,1882-01-01,\n"

const clubCSV = "club_id,display_name,lineage_notes\n" +
	"arsenal,Arsenal,\n" +
	"burnley,Burnley,\n"

const leagueCSV = "label,valid_from,valid_to,tier,section\n" +
	"Premier League,1992-07-01,,1,\n" +
	"E0,1993-07-01,,1,\n"

const precedenceYAML = "match:\n  home_goals: [football-data, fbref]\n  away_goals: [football-data, fbref]\n"

// football-data reports three fixtures; the second row is malformed and the
// third names a club the alias table does not cover
const footballDataCSV = "Div,Date,HomeTeam,AwayTeam,FTHG,FTAG,Attendance\n" +
	"E0,10/08/2019,Arsenal,Burnley,2,1,60214\n" +
	"E0,not-a-date,Arsenal,Burnley,1,1,\n" +
	"E0,17/08/2019,Arsenal,Leeds United,1,1,\n"

// fbref reports the same fixture with a conflicting home score
const fbrefCSV = "Date,Competition,Home,Score,Away,Attendance\n" +
	"2019-08-10,Premier League,Arsenal,3–1,Burnley,\n"

func expectCuratedFiles(mockFS *mocks.MockFileSystem) {
	mockFS.EXPECT().ReadFile("curated/club_aliases.csv").Return([]byte(aliasCSV), nil)
	mockFS.EXPECT().ReadFile("curated/clubs.csv").Return([]byte(clubCSV), nil)
	mockFS.EXPECT().ReadFile("curated/league_labels.csv").Return([]byte(leagueCSV), nil)
	mockFS.EXPECT().ReadFile("curated/precedence.yaml").Return([]byte(precedenceYAML), nil)
}

func fileReader(content string) io.ReadCloser {
	return io.NopCloser(strings.NewReader(content))
}

func TestRunConsolidatesConflictingSources(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFS := mocks.NewMockFileSystem(ctrl)
	mockClock := mocks.NewMockClock(ctrl)
	mockStore := mocks.NewMockStore(ctrl)

	mockClock.EXPECT().Now().Return(time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC))
	mockClock.EXPECT().Since(gomock.Any()).Return(3 * time.Second)

	expectCuratedFiles(mockFS)
	mockFS.EXPECT().Glob("sources/football-data/*.csv").Return([]string{"sources/football-data/2019.csv"}, nil)
	mockFS.EXPECT().Open("sources/football-data/2019.csv").Return(fileReader(footballDataCSV), nil)
	mockFS.EXPECT().Glob("sources/fbref/*.csv").Return([]string{"sources/fbref/2019.csv"}, nil)
	mockFS.EXPECT().Open("sources/fbref/2019.csv").Return(fileReader(fbrefCSV), nil)

	var runID string
	mockStore.EXPECT().CreateIngestionRun(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id string, _ time.Time) error {
			runID = id
			return nil
		})
	mockStore.EXPECT().SyncCuration(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input store.SyncCurationInput) error {
			assert.Len(t, input.Clubs, 2)
			assert.Len(t, input.Aliases, 2)
			return nil
		})

	matchID := int64(17)
	mockStore.EXPECT().UpsertMatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input store.UpsertMatchInput) (store.WriteResult, error) {
			assert.Equal(t, runID, input.RunID)
			assert.Equal(t, domain.ClubID("arsenal"), input.HomeClubID)
			assert.Equal(t, domain.ClubID("burnley"), input.AwayClubID)
			// football-data outranks fbref, so the conflicting home score
			// resolves to 2
			require.NotNil(t, input.HomeGoals)
			assert.Equal(t, 2, *input.HomeGoals)
			require.NotNil(t, input.AwayGoals)
			assert.Equal(t, 1, *input.AwayGoals)
			return store.WriteResult{ID: matchID, Created: true}, nil
		})
	mockStore.EXPECT().UpsertDiscrepancy(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input store.UpsertDiscrepancyInput) (store.WriteResult, error) {
			assert.Equal(t, domain.FieldHomeGoals, input.Field)
			assert.Equal(t, domain.ResolutionAutoResolved, input.Resolution)
			require.NotNil(t, input.TargetID)
			assert.Equal(t, matchID, *input.TargetID)
			assert.Len(t, input.Candidates, 2)
			return store.WriteResult{ID: 1, Created: true}, nil
		})
	mockStore.EXPECT().FinishIngestionRun(gomock.Any(), gomock.Any(), schema.RunStatusSucceeded, gomock.Any(), nil).
		DoAndReturn(func(_ context.Context, id string, _ schema.RunStatus, counts store.RunCounts, _ error) error {
			assert.Equal(t, runID, id)
			assert.Equal(t, 4, counts.RecordsRead)
			assert.Equal(t, 3, counts.RecordsNormalized)
			// One malformed row plus one unknown-alias skip
			assert.Equal(t, 2, counts.RecordsSkipped)
			assert.Equal(t, 1, counts.MatchesWritten)
			assert.Equal(t, 1, counts.DiscrepanciesFound)
			assert.Equal(t, 1, counts.Detail["unknown_alias_skips"])
			assert.Equal(t, 0, counts.Detail["unknown_league_skips"])
			return nil
		})

	p := pipeline.New(mockFS, mockClock, mockStore, normalizer.New(normalizer.All()...), pipeline.Config{
		CuratedDir: "curated",
		SourcesDir: "sources",
		Sources:    []domain.SourceID{domain.SourceFootballData, domain.SourceFBRef},
	})

	summary, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, runID, summary.RunID)
	assert.Equal(t, 3*time.Second, summary.Duration)
}

func TestRunFailsWhenCurationIsInvalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFS := mocks.NewMockFileSystem(ctrl)
	mockClock := mocks.NewMockClock(ctrl)
	mockStore := mocks.NewMockStore(ctrl)

	mockClock.EXPECT().Now().Return(time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC))
	mockClock.EXPECT().Since(gomock.Any()).Return(time.Second)

	// An unreadable curated table is a whole-run failure, and the run row
	// records it
	mockFS.EXPECT().ReadFile("curated/club_aliases.csv").Return(nil, errors.New("permission denied"))

	mockStore.EXPECT().CreateIngestionRun(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	mockStore.EXPECT().FinishIngestionRun(gomock.Any(), gomock.Any(), schema.RunStatusFailed, gomock.Any(), gomock.Any()).Return(nil)

	p := pipeline.New(mockFS, mockClock, mockStore, normalizer.New(normalizer.All()...), pipeline.Config{
		CuratedDir: "curated",
		SourcesDir: "sources",
	})

	_, err := p.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "alias table")
}

func TestRunSkipsSourceWithNoExports(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFS := mocks.NewMockFileSystem(ctrl)
	mockClock := mocks.NewMockClock(ctrl)
	mockStore := mocks.NewMockStore(ctrl)

	mockClock.EXPECT().Now().Return(time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC))
	mockClock.EXPECT().Since(gomock.Any()).Return(time.Second)

	expectCuratedFiles(mockFS)
	mockFS.EXPECT().Glob("sources/todor/*.csv").Return(nil, nil)

	mockStore.EXPECT().CreateIngestionRun(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	mockStore.EXPECT().SyncCuration(gomock.Any(), gomock.Any()).Return(nil)
	mockStore.EXPECT().FinishIngestionRun(gomock.Any(), gomock.Any(), schema.RunStatusSucceeded, gomock.Any(), nil).
		DoAndReturn(func(_ context.Context, _ string, _ schema.RunStatus, counts store.RunCounts, _ error) error {
			assert.Zero(t, counts.RecordsRead)
			assert.Zero(t, counts.MatchesWritten)
			return nil
		})

	p := pipeline.New(mockFS, mockClock, mockStore, normalizer.New(normalizer.All()...), pipeline.Config{
		CuratedDir: "curated",
		SourcesDir: "sources",
		Sources:    []domain.SourceID{domain.SourceTodor},
	})

	summary, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, summary.RunID)
}
