package rest

import (
	"errors"
	"time"
)

// DiscrepancyDTO is one field-level disagreement as served by the API
type DiscrepancyDTO struct {
	ID            int64             `json:"id"`
	TargetType    string            `json:"target_type"`
	TargetKey     string            `json:"target_key"`
	Field         string            `json:"field"`
	Candidates    map[string]string `json:"candidates"`
	Resolution    string            `json:"resolution"`
	ResolvedValue *string           `json:"resolved_value,omitempty"`
	ResolvedBy    *string           `json:"resolved_by,omitempty"`
	ResolvedAt    *time.Time        `json:"resolved_at,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// ListDiscrepanciesResponse is a paged discrepancy listing
type ListDiscrepanciesResponse struct {
	Discrepancies []DiscrepancyDTO `json:"discrepancies"`
	Total         int64            `json:"total"`
	Limit         int              `json:"limit"`
	Offset        int              `json:"offset"`
}

// OverrideRequest is an operator's manual resolution of a discrepancy
type OverrideRequest struct {
	ResolvedValue string `json:"resolved_value"`
	ResolvedBy    string `json:"resolved_by"`
}

// Validate checks the override request carries both required fields
func (r *OverrideRequest) Validate() error {
	if r.ResolvedValue == "" {
		return errors.New("resolved_value is required")
	}
	if r.ResolvedBy == "" {
		return errors.New("resolved_by is required")
	}
	return nil
}

// SummaryResponse is the headline audit state of the canonical store
type SummaryResponse struct {
	PendingDiscrepancies int64 `json:"pending_discrepancies"`
	ContestedMatches     int64 `json:"contested_matches"`
}

// IngestionRunDTO is one pipeline run as served by the API
type IngestionRunDTO struct {
	RunID              string         `json:"run_id"`
	Status             string         `json:"status"`
	StartedAt          time.Time      `json:"started_at"`
	FinishedAt         *time.Time     `json:"finished_at,omitempty"`
	RecordsRead        int            `json:"records_read"`
	RecordsNormalized  int            `json:"records_normalized"`
	RecordsSkipped     int            `json:"records_skipped"`
	MatchesWritten     int            `json:"matches_written"`
	ClubSeasonsWritten int            `json:"club_seasons_written"`
	DiscrepanciesFound int            `json:"discrepancies_found"`
	Error              *string        `json:"error,omitempty"`
	Detail             map[string]any `json:"detail,omitempty"`
}

// ListRunsResponse is a paged run listing, most recent first
type ListRunsResponse struct {
	Runs   []IngestionRunDTO `json:"runs"`
	Total  int64             `json:"total"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}

// AuditEventDTO is one append-only journal entry
type AuditEventDTO struct {
	Cursor      int64          `json:"cursor"`
	EventID     string         `json:"event_id"`
	RunID       string         `json:"run_id"`
	SubjectType string         `json:"subject_type"`
	SubjectKey  string         `json:"subject_key"`
	Action      string         `json:"action"`
	OccurredAt  time.Time      `json:"occurred_at"`
	Meta        map[string]any `json:"meta,omitempty"`
}

// ListAuditEventsResponse pages the journal by cursor. NextCursor is the
// cursor of the last returned event; pass it back as "after" to continue.
type ListAuditEventsResponse struct {
	Events     []AuditEventDTO `json:"events"`
	NextCursor int64           `json:"next_cursor"`
}

// MatchDTO is one canonical fixture as served by the API
type MatchDTO struct {
	ID         int64    `json:"id"`
	MatchDate  string   `json:"match_date"`
	HomeClubID string   `json:"home_club_id"`
	AwayClubID string   `json:"away_club_id"`
	HomeGoals  *int     `json:"home_goals"`
	AwayGoals  *int     `json:"away_goals"`
	Attendance *int     `json:"attendance,omitempty"`
	Status     string   `json:"status"`
	Sources    []string `json:"sources"`
}

// ListClubMatchesResponse is a paged match listing for one club
type ListClubMatchesResponse struct {
	ClubID  string     `json:"club_id"`
	Matches []MatchDTO `json:"matches"`
	Total   int64      `json:"total"`
	Limit   int        `json:"limit"`
	Offset  int        `json:"offset"`
}

// TierEntryDTO is one season of a club's league placement
type TierEntryDTO struct {
	SeasonStartYear int    `json:"season_start_year"`
	Tier            int    `json:"tier"`
	Section         string `json:"section,omitempty"`
	HistoricalLabel string `json:"historical_label"`
}

// TierHistoryResponse is a club's tier per season, oldest first
type TierHistoryResponse struct {
	ClubID  string         `json:"club_id"`
	Seasons []TierEntryDTO `json:"seasons"`
}

// ClubRecordResponse is a club's aggregated results. MatchesContested counts
// only fixtures actually played; the win/draw/loss tallies include awarded
// results, so point totals derived from them credit awarded_without_play.
type ClubRecordResponse struct {
	ClubID           string `json:"club_id"`
	MatchesContested int64  `json:"matches_contested"`
	Wins             int64  `json:"wins"`
	Draws            int64  `json:"draws"`
	Losses           int64  `json:"losses"`
}
