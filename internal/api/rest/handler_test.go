package rest_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/pitchside/consolidator/internal/api/middleware"
	"github.com/pitchside/consolidator/internal/api/rest"
	"github.com/pitchside/consolidator/internal/domain"
	"github.com/pitchside/consolidator/internal/mocks"
	"github.com/pitchside/consolidator/internal/store"
	"github.com/pitchside/consolidator/internal/store/schema"
)

func newTestRouter(t *testing.T) (*gin.Engine, *mocks.MockStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockStore := mocks.NewMockStore(ctrl)

	router := gin.New()
	rest.SetupRoutes(router, rest.NewHandler(mockStore), middleware.AuthConfig{
		APIKeys: []string{"test-key"},
	})
	return router, mockStore
}

func pendingDiscrepancy(id int64) *schema.Discrepancy {
	return &schema.Discrepancy{
		ID:         id,
		TargetType: domain.FactTypeMatch,
		TargetKey:  "1:2019|2019-08-10|arsenal|burnley",
		Field:      domain.FieldHomeGoals,
		Candidates: datatypes.JSON(`{"football-data":"2","fbref":"3"}`),
		Resolution: domain.ResolutionPending,
		CreatedAt:  time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC),
		UpdatedAt:  time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC),
	}
}

func TestListDiscrepancies(t *testing.T) {
	router, mockStore := newTestRouter(t)

	mockStore.EXPECT().GetDiscrepancies(gomock.Any(), store.DiscrepancyFilter{
		Resolution: domain.ResolutionPending,
		Limit:      50,
	}).Return([]*schema.Discrepancy{pendingDiscrepancy(7)}, int64(1), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/discrepancies?resolution=pending", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp rest.ListDiscrepanciesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Total)
	require.Len(t, resp.Discrepancies, 1)
	assert.Equal(t, int64(7), resp.Discrepancies[0].ID)
	assert.Equal(t, "pending", resp.Discrepancies[0].Resolution)
	assert.Equal(t, map[string]string{"football-data": "2", "fbref": "3"}, resp.Discrepancies[0].Candidates)
}

func TestListDiscrepanciesRejectsUnknownResolution(t *testing.T) {
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/discrepancies?resolution=bogus", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown resolution")
}

func TestGetDiscrepancyNotFound(t *testing.T) {
	router, mockStore := newTestRouter(t)

	mockStore.EXPECT().GetDiscrepancyByID(gomock.Any(), int64(99)).Return(nil, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/discrepancies/99", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOverrideDiscrepancyRequiresAPIKey(t *testing.T) {
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/discrepancies/7/override",
		strings.NewReader(`{"resolved_value":"2","resolved_by":"alex"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOverrideDiscrepancy(t *testing.T) {
	router, mockStore := newTestRouter(t)

	resolvedValue := "2"
	resolvedBy := "alex"
	overridden := pendingDiscrepancy(7)
	overridden.Resolution = domain.ResolutionManuallyOverridden
	overridden.ResolvedValue = &resolvedValue
	overridden.ResolvedBy = &resolvedBy

	gomock.InOrder(
		mockStore.EXPECT().GetDiscrepancyByID(gomock.Any(), int64(7)).Return(pendingDiscrepancy(7), nil),
		mockStore.EXPECT().ApplyManualOverride(gomock.Any(), store.ManualOverrideInput{
			DiscrepancyID: 7,
			ResolvedValue: "2",
			ResolvedBy:    "alex",
		}).Return(nil),
		mockStore.EXPECT().GetDiscrepancyByID(gomock.Any(), int64(7)).Return(overridden, nil),
	)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/discrepancies/7/override",
		strings.NewReader(`{"resolved_value":"2","resolved_by":"alex"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "APIKey test-key")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp rest.DiscrepancyDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "manually_overridden", resp.Resolution)
	require.NotNil(t, resp.ResolvedValue)
	assert.Equal(t, "2", *resp.ResolvedValue)
}

func TestOverrideDiscrepancyRejectsEmptyValue(t *testing.T) {
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/discrepancies/7/override",
		strings.NewReader(`{"resolved_by":"alex"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "APIKey test-key")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "resolved_value is required")
}

func TestGetSummary(t *testing.T) {
	router, mockStore := newTestRouter(t)

	mockStore.EXPECT().PendingDiscrepancyCount(gomock.Any()).Return(int64(4), nil)
	mockStore.EXPECT().ContestedMatchCount(gomock.Any()).Return(int64(3), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/summary", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp rest.SummaryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(4), resp.PendingDiscrepancies)
	assert.Equal(t, int64(3), resp.ContestedMatches)
}

func TestListAuditEventsAdvancesCursor(t *testing.T) {
	router, mockStore := newTestRouter(t)

	mockStore.EXPECT().GetAuditEvents(gomock.Any(), store.AuditEventFilter{
		After: 10,
		Limit: 100,
	}).Return([]*schema.AuditJournal{
		{Cursor: 11, EventID: "01JGE9Y5R7W8X9K2M3N4P5Q6R7", RunID: "run-1", SubjectType: schema.AuditSubjectMatch, SubjectKey: "1:2019|2019-08-10|arsenal|burnley", Action: schema.AuditActionCreated},
		{Cursor: 12, EventID: "01JGE9Y5R8A1B2C3D4E5F6G7H8", RunID: "run-1", SubjectType: schema.AuditSubjectRun, SubjectKey: "run-1", Action: schema.AuditActionUpdated},
	}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/audit-events?after=10", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp rest.ListAuditEventsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Events, 2)
	assert.Equal(t, int64(12), resp.NextCursor)
	assert.Equal(t, "created", resp.Events[0].Action)
}

func TestListClubMatches(t *testing.T) {
	router, mockStore := newTestRouter(t)

	homeGoals, awayGoals := 2, 1
	mockStore.EXPECT().MatchesForClub(gomock.Any(), domain.ClubID("arsenal"), false, 100, 0).
		Return([]*schema.Match{
			{
				ID:         5,
				MatchDate:  time.Date(2019, time.August, 10, 0, 0, 0, 0, time.UTC),
				HomeClubID: "arsenal",
				AwayClubID: "burnley",
				HomeGoals:  &homeGoals,
				AwayGoals:  &awayGoals,
				Status:     domain.StatusPlayed,
				Sources:    datatypes.JSON(`["football-data","fbref"]`),
			},
		}, int64(1), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/clubs/arsenal/matches", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp rest.ListClubMatchesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Matches, 1)
	assert.Equal(t, "2019-08-10", resp.Matches[0].MatchDate)
	assert.Equal(t, []string{"football-data", "fbref"}, resp.Matches[0].Sources)
}

func TestGetClubRecord(t *testing.T) {
	router, mockStore := newTestRouter(t)

	// One awarded win on top of 40 contested matches: the award counts
	// toward wins but not toward matches contested
	mockStore.EXPECT().RecordForClub(gomock.Any(), domain.ClubID("arsenal")).
		Return(store.ClubRecord{
			MatchesContested: 40,
			Wins:             21,
			Draws:            10,
			Losses:           10,
		}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/clubs/arsenal/record", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp rest.ClubRecordResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "arsenal", resp.ClubID)
	assert.Equal(t, int64(40), resp.MatchesContested)
	assert.Equal(t, int64(21), resp.Wins)
	assert.Equal(t, int64(10), resp.Draws)
	assert.Equal(t, int64(10), resp.Losses)
}

func TestGetClubTierHistory(t *testing.T) {
	router, mockStore := newTestRouter(t)

	mockStore.EXPECT().TierHistoryForClub(gomock.Any(), domain.ClubID("gateshead")).
		Return([]store.TierEntry{
			{SeasonStartYear: 1946, Tier: 3, Section: domain.SectionNorth, HistoricalLabel: "Third Division North"},
			{SeasonStartYear: 1958, Tier: 4, HistoricalLabel: "Fourth Division"},
		}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/clubs/gateshead/tiers", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp rest.TierHistoryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Seasons, 2)
	assert.Equal(t, "north", resp.Seasons[0].Section)
	assert.Equal(t, 4, resp.Seasons[1].Tier)
}
