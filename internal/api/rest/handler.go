package rest

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pitchside/consolidator/internal/domain"
	"github.com/pitchside/consolidator/internal/store"
	"github.com/pitchside/consolidator/internal/store/schema"
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
type Handler interface {
	// ListDiscrepancies retrieves discrepancies with optional filters
	// GET /api/v1/discrepancies?resolution=<state>&target_type=<type>&limit=<limit>&offset=<offset>
	ListDiscrepancies(c *gin.Context)

	// GetDiscrepancy retrieves a single discrepancy by its ID
	// GET /api/v1/discrepancies/:id
	GetDiscrepancy(c *gin.Context)

	// OverrideDiscrepancy resolves a discrepancy by operator decision
	// (requires API key authentication)
	// POST /api/v1/discrepancies/:id/override
	OverrideDiscrepancy(c *gin.Context)

	// GetSummary returns the headline audit state: pending discrepancies
	// and contested matches
	// GET /api/v1/summary
	GetSummary(c *gin.Context)

	// ListRuns retrieves ingestion runs, most recent first
	// GET /api/v1/runs?limit=<limit>&offset=<offset>
	ListRuns(c *gin.Context)

	// ListAuditEvents pages through the append-only audit journal
	// GET /api/v1/audit-events?run_id=<id>&subject_type=<type>&after=<cursor>&limit=<limit>
	ListAuditEvents(c *gin.Context)

	// ListClubMatches retrieves the canonical matches a club took part in
	// GET /api/v1/clubs/:id/matches?include_voided=<bool>&limit=<limit>&offset=<offset>
	ListClubMatches(c *gin.Context)

	// GetClubTierHistory retrieves a club's league tier per season
	// GET /api/v1/clubs/:id/tiers
	GetClubTierHistory(c *gin.Context)

	// GetClubRecord retrieves a club's aggregated results: matches actually
	// contested on one side, points-bearing results (awarded included) on
	// the other
	// GET /api/v1/clubs/:id/record
	GetClubRecord(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	store store.Store
}

// NewHandler creates a new REST API handler over the canonical store
func NewHandler(st store.Store) Handler {
	return &handler{store: st}
}

// ListDiscrepancies retrieves discrepancies with optional filters
func (h *handler) ListDiscrepancies(c *gin.Context) {
	params, err := parseListDiscrepanciesQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}
	if err := params.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	rows, total, err := h.store.GetDiscrepancies(c.Request.Context(), store.DiscrepancyFilter{
		Resolution: domain.Resolution(params.Resolution),
		TargetType: domain.FactType(params.TargetType),
		Limit:      params.Limit,
		Offset:     params.Offset,
	})
	if err != nil {
		respondInternalError(c, err, "Failed to list discrepancies")
		return
	}

	response := ListDiscrepanciesResponse{
		Discrepancies: make([]DiscrepancyDTO, 0, len(rows)),
		Total:         total,
		Limit:         params.Limit,
		Offset:        params.Offset,
	}
	for _, row := range rows {
		response.Discrepancies = append(response.Discrepancies, toDiscrepancyDTO(row))
	}

	c.JSON(http.StatusOK, response)
}

// GetDiscrepancy retrieves a single discrepancy by its ID
func (h *handler) GetDiscrepancy(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid discrepancy ID")
		return
	}

	row, err := h.store.GetDiscrepancyByID(c.Request.Context(), id)
	if err != nil {
		respondInternalError(c, err, "Failed to get discrepancy")
		return
	}
	if row == nil {
		respondNotFound(c, "Discrepancy not found")
		return
	}

	c.JSON(http.StatusOK, toDiscrepancyDTO(row))
}

// OverrideDiscrepancy resolves a discrepancy by operator decision
func (h *handler) OverrideDiscrepancy(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid discrepancy ID")
		return
	}

	var req OverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	// Existence is checked up front so a missing row is a 404 rather than
	// a write failure
	row, err := h.store.GetDiscrepancyByID(c.Request.Context(), id)
	if err != nil {
		respondInternalError(c, err, "Failed to get discrepancy")
		return
	}
	if row == nil {
		respondNotFound(c, "Discrepancy not found")
		return
	}

	err = h.store.ApplyManualOverride(c.Request.Context(), store.ManualOverrideInput{
		DiscrepancyID: id,
		ResolvedValue: req.ResolvedValue,
		ResolvedBy:    req.ResolvedBy,
	})
	if err != nil {
		respondInternalError(c, err, "Failed to apply override")
		return
	}

	updated, err := h.store.GetDiscrepancyByID(c.Request.Context(), id)
	if err != nil || updated == nil {
		respondInternalError(c, err, "Failed to reload discrepancy")
		return
	}

	c.JSON(http.StatusOK, toDiscrepancyDTO(updated))
}

// GetSummary returns the headline audit state of the canonical store
func (h *handler) GetSummary(c *gin.Context) {
	pending, err := h.store.PendingDiscrepancyCount(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Failed to count pending discrepancies")
		return
	}

	contested, err := h.store.ContestedMatchCount(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Failed to count contested matches")
		return
	}

	c.JSON(http.StatusOK, SummaryResponse{
		PendingDiscrepancies: pending,
		ContestedMatches:     contested,
	})
}

// ListRuns retrieves ingestion runs, most recent first
func (h *handler) ListRuns(c *gin.Context) {
	params, err := parseListRunsQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	rows, total, err := h.store.GetIngestionRuns(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondInternalError(c, err, "Failed to list ingestion runs")
		return
	}

	response := ListRunsResponse{
		Runs:   make([]IngestionRunDTO, 0, len(rows)),
		Total:  total,
		Limit:  params.Limit,
		Offset: params.Offset,
	}
	for _, row := range rows {
		response.Runs = append(response.Runs, toIngestionRunDTO(row))
	}

	c.JSON(http.StatusOK, response)
}

// ListAuditEvents pages through the append-only audit journal
func (h *handler) ListAuditEvents(c *gin.Context) {
	params, err := parseListAuditEventsQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	rows, err := h.store.GetAuditEvents(c.Request.Context(), store.AuditEventFilter{
		RunID:       params.RunID,
		SubjectType: schema.AuditSubjectType(params.SubjectType),
		After:       params.After,
		Limit:       params.Limit,
	})
	if err != nil {
		respondInternalError(c, err, "Failed to list audit events")
		return
	}

	response := ListAuditEventsResponse{
		Events:     make([]AuditEventDTO, 0, len(rows)),
		NextCursor: params.After,
	}
	for _, row := range rows {
		response.Events = append(response.Events, toAuditEventDTO(row))
		response.NextCursor = row.Cursor
	}

	c.JSON(http.StatusOK, response)
}

// ListClubMatches retrieves the canonical matches a club took part in
func (h *handler) ListClubMatches(c *gin.Context) {
	clubID := c.Param("id")
	if clubID == "" {
		respondBadRequest(c, "Club ID is required")
		return
	}

	params, err := parseListClubMatchesQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	rows, total, err := h.store.MatchesForClub(
		c.Request.Context(),
		domain.ClubID(clubID),
		params.IncludeVoided,
		params.Limit,
		params.Offset,
	)
	if err != nil {
		respondInternalError(c, err, "Failed to list matches for club")
		return
	}

	response := ListClubMatchesResponse{
		ClubID:  clubID,
		Matches: make([]MatchDTO, 0, len(rows)),
		Total:   total,
		Limit:   params.Limit,
		Offset:  params.Offset,
	}
	for _, row := range rows {
		response.Matches = append(response.Matches, toMatchDTO(row))
	}

	c.JSON(http.StatusOK, response)
}

// GetClubTierHistory retrieves a club's league tier per season
func (h *handler) GetClubTierHistory(c *gin.Context) {
	clubID := c.Param("id")
	if clubID == "" {
		respondBadRequest(c, "Club ID is required")
		return
	}

	entries, err := h.store.TierHistoryForClub(c.Request.Context(), domain.ClubID(clubID))
	if err != nil {
		respondInternalError(c, err, "Failed to get tier history")
		return
	}

	response := TierHistoryResponse{
		ClubID:  clubID,
		Seasons: make([]TierEntryDTO, 0, len(entries)),
	}
	for _, entry := range entries {
		response.Seasons = append(response.Seasons, toTierEntryDTO(entry))
	}

	c.JSON(http.StatusOK, response)
}

// GetClubRecord retrieves a club's aggregated results. An awarded match
// never counts as contested but its result still lands in the win/loss
// tallies; a voided match counts nowhere.
func (h *handler) GetClubRecord(c *gin.Context) {
	clubID := c.Param("id")
	if clubID == "" {
		respondBadRequest(c, "Club ID is required")
		return
	}

	record, err := h.store.RecordForClub(c.Request.Context(), domain.ClubID(clubID))
	if err != nil {
		respondInternalError(c, err, "Failed to get club record")
		return
	}

	c.JSON(http.StatusOK, ClubRecordResponse{
		ClubID:           clubID,
		MatchesContested: record.MatchesContested,
		Wins:             record.Wins,
		Draws:            record.Draws,
		Losses:           record.Losses,
	})
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"service": "pitchside-audit-api",
	})
}
