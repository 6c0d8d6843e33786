package store

import (
	"context"
	"time"

	"github.com/pitchside/consolidator/internal/domain"
	"github.com/pitchside/consolidator/internal/store/schema"
)

// UpsertMatchInput carries one reconciled fixture into the writer
type UpsertMatchInput struct {
	// RunID identifies the ingestion run for the audit journal
	RunID      string
	LeagueKey  domain.LeagueSeasonKey
	MatchDate  time.Time
	HomeClubID domain.ClubID
	AwayClubID domain.ClubID
	HomeGoals  *int
	AwayGoals  *int
	Attendance *int
	// AttendanceSamples holds every per-source attendance observation
	AttendanceSamples map[domain.SourceID]int
	Status            domain.MatchStatus
	Sources           []domain.SourceID
}

// UpsertClubSeasonInput carries one reconciled club season stat line
type UpsertClubSeasonInput struct {
	RunID        string
	LeagueKey    domain.LeagueSeasonKey
	ClubID       domain.ClubID
	Played       *int
	Won          *int
	Drawn        *int
	Lost         *int
	GoalsFor     *int
	GoalsAgainst *int
	Points       *int
	Sources      []domain.SourceID
}

// UpsertDiscrepancyInput carries one field-level disagreement
type UpsertDiscrepancyInput struct {
	RunID      string
	TargetType domain.FactType
	TargetKey  string
	Field      string
	// TargetID is the canonical row the discrepancy is about, when known
	TargetID      *int64
	Candidates    map[domain.SourceID]string
	Resolution    domain.Resolution
	ResolvedValue *string
}

// ManualOverrideInput records an operator resolving a discrepancy by hand
type ManualOverrideInput struct {
	DiscrepancyID int64
	ResolvedValue string
	ResolvedBy    string
}

// SyncCurationInput carries the curated club registry and alias table to be
// mirrored into the canonical store
type SyncCurationInput struct {
	Clubs   []schema.Club
	Aliases []schema.ClubNameAlias
}

// WriteResult reports whether an upsert created a new row or refreshed an
// existing one
type WriteResult struct {
	ID      int64
	Created bool
}

// RunCounts is the summary persisted when an ingestion run finishes
type RunCounts struct {
	RecordsRead        int
	RecordsNormalized  int
	RecordsSkipped     int
	MatchesWritten     int
	ClubSeasonsWritten int
	DiscrepanciesFound int
	Detail             map[string]any
}

// DiscrepancyFilter narrows discrepancy queries for the audit API
type DiscrepancyFilter struct {
	// Resolution filters by lifecycle state; empty means all
	Resolution domain.Resolution
	// TargetType filters by subject kind; empty means all
	TargetType domain.FactType
	Limit      int
	Offset     int
}

// AuditEventFilter narrows audit journal queries. Cursor-based: events with
// a cursor strictly greater than After are returned in order.
type AuditEventFilter struct {
	RunID       string
	SubjectType schema.AuditSubjectType
	After       int64
	Limit       int
}

// ClubRecord aggregates a club's results across every season. The contested
// count covers only fixtures actually played; wins, draws and losses carry
// awarded results too, so points-style sums include awarded_without_play.
type ClubRecord struct {
	MatchesContested int64 `gorm:"column:matches_contested"`
	Wins             int64 `gorm:"column:wins"`
	Draws            int64 `gorm:"column:draws"`
	Losses           int64 `gorm:"column:losses"`
}

// TierEntry is one season of a club's league placement history
type TierEntry struct {
	SeasonStartYear int            `gorm:"column:season_start_year"`
	Tier            int            `gorm:"column:tier"`
	Section         domain.Section `gorm:"column:section"`
	HistoricalLabel string         `gorm:"column:historical_label"`
}

// Store defines the interface for canonical database operations
type Store interface {
	// SyncCuration mirrors the curated clubs and aliases into the store
	SyncCuration(ctx context.Context, input SyncCurationInput) error
	// EnsureLeagueSeason upserts the league season row for a key and
	// returns it
	EnsureLeagueSeason(ctx context.Context, key domain.LeagueSeasonKey) (*schema.LeagueSeason, error)
	// UpsertMatch writes one reconciled fixture on its natural key
	UpsertMatch(ctx context.Context, input UpsertMatchInput) (WriteResult, error)
	// UpsertClubSeason writes one reconciled club season on its natural key
	UpsertClubSeason(ctx context.Context, input UpsertClubSeasonInput) (WriteResult, error)
	// UpsertDiscrepancy writes one discrepancy on its natural key. A row an
	// operator has manually overridden keeps the operator's resolution; the
	// pipeline only refreshes its candidates.
	UpsertDiscrepancy(ctx context.Context, input UpsertDiscrepancyInput) (WriteResult, error)
	// ApplyManualOverride resolves a discrepancy by operator decision
	ApplyManualOverride(ctx context.Context, input ManualOverrideInput) error

	// CreateIngestionRun opens a run row in the running state
	CreateIngestionRun(ctx context.Context, runID string, startedAt time.Time) error
	// FinishIngestionRun closes a run with its final status and counts
	FinishIngestionRun(ctx context.Context, runID string, status schema.RunStatus, counts RunCounts, runErr error) error

	// GetDiscrepancies lists discrepancies for the audit API
	GetDiscrepancies(ctx context.Context, filter DiscrepancyFilter) ([]*schema.Discrepancy, int64, error)
	// GetDiscrepancyByID fetches one discrepancy; nil when absent
	GetDiscrepancyByID(ctx context.Context, id int64) (*schema.Discrepancy, error)
	// PendingDiscrepancyCount counts discrepancies awaiting a human
	PendingDiscrepancyCount(ctx context.Context) (int64, error)
	// GetAuditEvents pages through the append-only audit journal
	GetAuditEvents(ctx context.Context, filter AuditEventFilter) ([]*schema.AuditJournal, error)
	// GetIngestionRuns lists runs, most recent first
	GetIngestionRuns(ctx context.Context, limit, offset int) ([]*schema.IngestionRun, int64, error)

	// MatchesForClub lists every canonical match a club took part in, via
	// the participation table, in season then date order. Voided matches
	// are excluded unless includeVoided is set.
	MatchesForClub(ctx context.Context, clubID domain.ClubID, includeVoided bool, limit, offset int) ([]*schema.Match, int64, error)
	// TierHistoryForClub returns the club's tier per season, oldest first
	TierHistoryForClub(ctx context.Context, clubID domain.ClubID) ([]TierEntry, error)
	// RecordForClub aggregates a club's results: played fixtures on one
	// side, points-bearing results (awarded included) on the other
	RecordForClub(ctx context.Context, clubID domain.ClubID) (ClubRecord, error)
	// ContestedMatchCount counts matches that still carry at least one
	// pending discrepancy
	ContestedMatchCount(ctx context.Context) (int64, error)
}
