package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pitchside/consolidator/internal/domain"
	"github.com/pitchside/consolidator/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. It accesses the underlying *sql.DB and sets the pool
// configuration. Zero values fall back to reasonable defaults.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings
// into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
//
// Notes:
//   - database/sql treats MaxOpenConns=0 as "unlimited"
//   - database/sql treats MaxIdleConns=0 as "no idle connections"
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// appendAudit writes one append-only journal entry inside the caller's
// transaction. Journal rows are never updated or deleted.
func appendAudit(tx *gorm.DB, runID string, subjectType schema.AuditSubjectType, subjectKey string, action schema.AuditAction, meta any) error {
	var metaJSON []byte
	if meta != nil {
		var err error
		metaJSON, err = json.Marshal(meta)
		if err != nil {
			return fmt.Errorf("failed to marshal audit meta: %w", err)
		}
	}

	entry := schema.AuditJournal{
		EventID:     ulid.Make().String(),
		RunID:       runID,
		SubjectType: subjectType,
		SubjectKey:  subjectKey,
		Action:      action,
		OccurredAt:  time.Now().UTC(),
		Meta:        metaJSON,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to append audit journal: %w", err)
	}
	return nil
}

func sourcesJSON(sources []domain.SourceID) ([]byte, error) {
	if len(sources) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(sources)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sources: %w", err)
	}
	return data, nil
}

// SyncCuration mirrors the curated club registry and alias table into the
// canonical store so canonical rows can always be traced back to the names
// that produced them
func (s *pgStore) SyncCuration(ctx context.Context, input SyncCurationInput) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range input.Clubs {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "club_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"display_name", "lineage_notes", "updated_at"}),
			}).Create(&input.Clubs[i]).Error; err != nil {
				return fmt.Errorf("failed to upsert club %s: %w", input.Clubs[i].ClubID, err)
			}
		}

		for i := range input.Aliases {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "club_id"}, {Name: "name"}, {Name: "valid_from"}},
				DoUpdates: clause.AssignmentColumns([]string{"valid_to"}),
			}).Create(&input.Aliases[i]).Error; err != nil {
				return fmt.Errorf("failed to upsert alias %q: %w", input.Aliases[i].Name, err)
			}
		}

		return nil
	})
}

// EnsureLeagueSeason upserts the league season row for a key
func (s *pgStore) EnsureLeagueSeason(ctx context.Context, key domain.LeagueSeasonKey) (*schema.LeagueSeason, error) {
	var season *schema.LeagueSeason
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txErr error
		season, txErr = ensureLeagueSeasonTx(tx, key)
		return txErr
	})
	return season, err
}

func ensureLeagueSeasonTx(tx *gorm.DB, key domain.LeagueSeasonKey) (*schema.LeagueSeason, error) {
	season := schema.LeagueSeason{
		Tier:            key.Tier,
		Section:         key.Section,
		SeasonStartYear: key.SeasonStartYear,
		SeasonEndYear:   key.SeasonEndYear,
		HistoricalLabel: key.HistoricalLabel,
	}

	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tier"}, {Name: "section"}, {Name: "season_start_year"}},
		DoNothing: true,
	}).Clauses(clause.Returning{Columns: []clause.Column{}}).
		Create(&season).Error; err != nil {
		return nil, fmt.Errorf("failed to create league season: %w", err)
	}

	// ID 0 means the row already existed, so fetch it
	if season.ID == 0 {
		if err := tx.Where("tier = ? AND section = ? AND season_start_year = ?",
			key.Tier, key.Section, key.SeasonStartYear).First(&season).Error; err != nil {
			return nil, fmt.Errorf("failed to get existing league season: %w", err)
		}
	}

	return &season, nil
}

// matchChangeMeta is what a match journal entry records about field values
type matchChangeMeta struct {
	HomeGoals  *int               `json:"home_goals,omitempty"`
	AwayGoals  *int               `json:"away_goals,omitempty"`
	Attendance *int               `json:"attendance,omitempty"`
	Status     domain.MatchStatus `json:"status"`
	Sources    []domain.SourceID  `json:"sources,omitempty"`
}

// UpsertMatch writes one reconciled fixture. The natural key (league season,
// date, home, away) makes the write idempotent: a second run over the same
// batch refreshes the row instead of duplicating it.
func (s *pgStore) UpsertMatch(ctx context.Context, input UpsertMatchInput) (WriteResult, error) {
	var result WriteResult

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		season, err := ensureLeagueSeasonTx(tx, input.LeagueKey)
		if err != nil {
			return err
		}

		var existing schema.Match
		found := true
		if err := tx.Where(
			"league_season_id = ? AND match_date = ? AND home_club_id = ? AND away_club_id = ?",
			season.ID, input.MatchDate, input.HomeClubID, input.AwayClubID,
		).First(&existing).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("failed to look up match: %w", err)
			}
			found = false
		}

		sources, err := sourcesJSON(input.Sources)
		if err != nil {
			return err
		}

		match := schema.Match{
			LeagueSeasonID: season.ID,
			MatchDate:      input.MatchDate,
			HomeClubID:     input.HomeClubID,
			AwayClubID:     input.AwayClubID,
			HomeGoals:      input.HomeGoals,
			AwayGoals:      input.AwayGoals,
			Attendance:     input.Attendance,
			Status:         input.Status,
			Sources:        sources,
		}

		// A no-op re-run must leave the row byte-identical, so the update is
		// skipped entirely when nothing the writer owns has changed
		unchanged := found && matchUnchanged(&existing, &match)
		if unchanged {
			match.ID = existing.ID
		} else {
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{
					{Name: "league_season_id"}, {Name: "match_date"},
					{Name: "home_club_id"}, {Name: "away_club_id"},
				},
				DoUpdates: clause.AssignmentColumns([]string{
					"home_goals", "away_goals", "attendance", "status", "sources", "updated_at",
				}),
			}).Create(&match).Error; err != nil {
				return fmt.Errorf("failed to upsert match: %w", err)
			}
			if match.ID == 0 {
				match.ID = existing.ID
			}

			// One participation row per side keeps "every match X played" a
			// single indexed lookup
			for _, p := range []schema.ClubMatchParticipation{
				{MatchID: match.ID, ClubID: input.HomeClubID, IsHome: true},
				{MatchID: match.ID, ClubID: input.AwayClubID, IsHome: false},
			} {
				if err := tx.Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "match_id"}, {Name: "club_id"}},
					DoUpdates: clause.AssignmentColumns([]string{"is_home"}),
				}).Create(&p).Error; err != nil {
					return fmt.Errorf("failed to upsert participation: %w", err)
				}
			}
		}

		if err := upsertAttendanceSamples(tx, match.ID, found, input.AttendanceSamples); err != nil {
			return err
		}

		// An unchanged row is not a journal event
		if unchanged {
			result = WriteResult{ID: match.ID, Created: false}
			return nil
		}

		action := schema.AuditActionCreated
		if found {
			action = schema.AuditActionUpdated
		}

		meta := matchChangeMeta{
			HomeGoals:  input.HomeGoals,
			AwayGoals:  input.AwayGoals,
			Attendance: input.Attendance,
			Status:     input.Status,
			Sources:    input.Sources,
		}
		key := fmt.Sprintf("%s|%s|%s|%s",
			input.LeagueKey.Key(), input.MatchDate.Format("2006-01-02"), input.HomeClubID, input.AwayClubID)
		if err := appendAudit(tx, input.RunID, schema.AuditSubjectMatch, key, action, meta); err != nil {
			return err
		}

		result = WriteResult{ID: match.ID, Created: !found}
		return nil
	})

	return result, err
}

func matchUnchanged(before, after *schema.Match) bool {
	return intPtrEqual(before.HomeGoals, after.HomeGoals) &&
		intPtrEqual(before.AwayGoals, after.AwayGoals) &&
		intPtrEqual(before.Attendance, after.Attendance) &&
		before.Status == after.Status &&
		sourcesEqual(before.Sources, after.Sources)
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// sourcesEqual compares decoded source lists; jsonb round-tripping may
// reformat the raw bytes, so a byte comparison would always report a change
func sourcesEqual(a, b datatypes.JSON) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	var as, bs []string
	if json.Unmarshal(a, &as) != nil || json.Unmarshal(b, &bs) != nil {
		return false
	}
	if len(as) != len(bs) {
		return false
	}
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

// upsertAttendanceSamples writes only new or changed per-source figures, so
// an unchanged re-run does not touch recorded_at
func upsertAttendanceSamples(tx *gorm.DB, matchID int64, found bool, samples map[domain.SourceID]int) error {
	if len(samples) == 0 {
		return nil
	}

	current := make(map[domain.SourceID]int)
	if found {
		var rows []schema.AttendanceSample
		if err := tx.Where("match_id = ?", matchID).Find(&rows).Error; err != nil {
			return fmt.Errorf("failed to load attendance samples: %w", err)
		}
		for _, row := range rows {
			current[row.SourceID] = row.Figure
		}
	}

	for sourceID, figure := range samples {
		if have, ok := current[sourceID]; ok && have == figure {
			continue
		}
		sample := schema.AttendanceSample{
			MatchID:  matchID,
			SourceID: sourceID,
			Figure:   figure,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "match_id"}, {Name: "source_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"figure", "recorded_at"}),
		}).Create(&sample).Error; err != nil {
			return fmt.Errorf("failed to upsert attendance sample: %w", err)
		}
	}
	return nil
}

// UpsertClubSeason writes one reconciled club season stat line
func (s *pgStore) UpsertClubSeason(ctx context.Context, input UpsertClubSeasonInput) (WriteResult, error) {
	var result WriteResult

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		season, err := ensureLeagueSeasonTx(tx, input.LeagueKey)
		if err != nil {
			return err
		}

		var existing schema.ClubSeason
		found := true
		if err := tx.Where("league_season_id = ? AND club_id = ?", season.ID, input.ClubID).
			First(&existing).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("failed to look up club season: %w", err)
			}
			found = false
		}

		sources, err := sourcesJSON(input.Sources)
		if err != nil {
			return err
		}

		row := schema.ClubSeason{
			LeagueSeasonID: season.ID,
			ClubID:         input.ClubID,
			Played:         input.Played,
			Won:            input.Won,
			Drawn:          input.Drawn,
			Lost:           input.Lost,
			GoalsFor:       input.GoalsFor,
			GoalsAgainst:   input.GoalsAgainst,
			Points:         input.Points,
			Sources:        sources,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "league_season_id"}, {Name: "club_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"played", "won", "drawn", "lost", "goals_for", "goals_against", "points",
				"sources", "updated_at",
			}),
		}).Create(&row).Error; err != nil {
			return fmt.Errorf("failed to upsert club season: %w", err)
		}
		if row.ID == 0 {
			row.ID = existing.ID
		}

		action := schema.AuditActionCreated
		if found {
			action = schema.AuditActionUpdated
		}
		key := fmt.Sprintf("%s|%s", input.LeagueKey.Key(), input.ClubID)
		if err := appendAudit(tx, input.RunID, schema.AuditSubjectClubSeason, key, action, row); err != nil {
			return err
		}

		result = WriteResult{ID: row.ID, Created: !found}
		return nil
	})

	return result, err
}

// UpsertDiscrepancy writes one field-level disagreement on its natural key.
// A row an operator has manually overridden keeps the operator's resolution
// and resolved value; only its candidates are refreshed.
func (s *pgStore) UpsertDiscrepancy(ctx context.Context, input UpsertDiscrepancyInput) (WriteResult, error) {
	var result WriteResult

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		candidates, err := json.Marshal(input.Candidates)
		if err != nil {
			return fmt.Errorf("failed to marshal candidates: %w", err)
		}

		var existing schema.Discrepancy
		found := true
		if err := tx.Where("target_type = ? AND target_key = ? AND field = ?",
			input.TargetType, input.TargetKey, input.Field).
			First(&existing).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("failed to look up discrepancy: %w", err)
			}
			found = false
		}

		if found && existing.Resolution == domain.ResolutionManuallyOverridden {
			if err := tx.Model(&schema.Discrepancy{}).Where("id = ?", existing.ID).
				Updates(map[string]any{
					"candidates": candidates,
					"target_id":  input.TargetID,
					"updated_at": time.Now().UTC(),
				}).Error; err != nil {
				return fmt.Errorf("failed to refresh overridden discrepancy: %w", err)
			}
			result = WriteResult{ID: existing.ID, Created: false}
			return nil
		}

		var resolvedAt *time.Time
		if input.Resolution == domain.ResolutionAutoResolved {
			now := time.Now().UTC()
			resolvedAt = &now
		}

		row := schema.Discrepancy{
			TargetType:    input.TargetType,
			TargetKey:     input.TargetKey,
			Field:         input.Field,
			TargetID:      input.TargetID,
			Candidates:    candidates,
			Resolution:    input.Resolution,
			ResolvedValue: input.ResolvedValue,
			ResolvedAt:    resolvedAt,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "target_type"}, {Name: "target_key"}, {Name: "field"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"target_id", "candidates", "resolution", "resolved_value", "resolved_at", "updated_at",
			}),
		}).Create(&row).Error; err != nil {
			return fmt.Errorf("failed to upsert discrepancy: %w", err)
		}
		if row.ID == 0 {
			row.ID = existing.ID
		}

		if !found || existing.Resolution != input.Resolution {
			action := schema.AuditActionCreated
			if found {
				action = schema.AuditActionUpdated
			}
			subjectKey := fmt.Sprintf("%s|%s|%s", input.TargetType, input.TargetKey, input.Field)
			if err := appendAudit(tx, input.RunID, schema.AuditSubjectDiscrepancy, subjectKey, action, map[string]any{
				"resolution":     input.Resolution,
				"resolved_value": input.ResolvedValue,
			}); err != nil {
				return err
			}
		}

		result = WriteResult{ID: row.ID, Created: !found}
		return nil
	})

	return result, err
}

// overridableFields are the canonical columns a manual override may write
// back to. Field names in discrepancies match column names, but the set is
// closed to keep operator input out of SQL identifiers.
var overridableFields = map[string]struct{}{
	domain.FieldHomeGoals:    {},
	domain.FieldAwayGoals:    {},
	domain.FieldAttendance:   {},
	domain.FieldPlayed:       {},
	domain.FieldWon:          {},
	domain.FieldDrawn:        {},
	domain.FieldLost:         {},
	domain.FieldGoalsFor:     {},
	domain.FieldGoalsAgainst: {},
	domain.FieldPoints:       {},
}

// ApplyManualOverride resolves a discrepancy by operator decision and writes
// the chosen value through to the canonical row
func (s *pgStore) ApplyManualOverride(ctx context.Context, input ManualOverrideInput) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var disc schema.Discrepancy
		if err := tx.Where("id = ?", input.DiscrepancyID).First(&disc).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("discrepancy %d not found", input.DiscrepancyID)
			}
			return fmt.Errorf("failed to look up discrepancy: %w", err)
		}

		now := time.Now().UTC()
		if err := tx.Model(&schema.Discrepancy{}).Where("id = ?", disc.ID).
			Updates(map[string]any{
				"resolution":     domain.ResolutionManuallyOverridden,
				"resolved_value": input.ResolvedValue,
				"resolved_by":    input.ResolvedBy,
				"resolved_at":    now,
				"updated_at":     now,
			}).Error; err != nil {
			return fmt.Errorf("failed to override discrepancy: %w", err)
		}

		if disc.TargetID != nil {
			if _, ok := overridableFields[disc.Field]; !ok {
				return fmt.Errorf("field %q cannot be overridden", disc.Field)
			}
			value, err := strconv.Atoi(input.ResolvedValue)
			if err != nil {
				return fmt.Errorf("override value %q is not numeric: %w", input.ResolvedValue, err)
			}
			table := schema.Match{}.TableName()
			if disc.TargetType == domain.FactTypeClubSeason {
				table = schema.ClubSeason{}.TableName()
			}
			if err := tx.Table(table).Where("id = ?", *disc.TargetID).
				Updates(map[string]any{
					disc.Field:   value,
					"updated_at": now,
				}).Error; err != nil {
				return fmt.Errorf("failed to apply override to canonical row: %w", err)
			}
		}

		subjectKey := fmt.Sprintf("%s|%s|%s", disc.TargetType, disc.TargetKey, disc.Field)
		return appendAudit(tx, "", schema.AuditSubjectDiscrepancy, subjectKey, schema.AuditActionOverridden, map[string]any{
			"resolved_value": input.ResolvedValue,
			"resolved_by":    input.ResolvedBy,
		})
	})
}

// CreateIngestionRun opens a run row in the running state
func (s *pgStore) CreateIngestionRun(ctx context.Context, runID string, startedAt time.Time) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		run := schema.IngestionRun{
			RunID:     runID,
			Status:    schema.RunStatusRunning,
			StartedAt: startedAt,
		}
		if err := tx.Create(&run).Error; err != nil {
			return fmt.Errorf("failed to create ingestion run: %w", err)
		}
		return appendAudit(tx, runID, schema.AuditSubjectRun, runID, schema.AuditActionCreated, nil)
	})
}

// FinishIngestionRun closes a run with its final status and summary counts
func (s *pgStore) FinishIngestionRun(ctx context.Context, runID string, status schema.RunStatus, counts RunCounts, runErr error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var detail []byte
		if counts.Detail != nil {
			var err error
			detail, err = json.Marshal(counts.Detail)
			if err != nil {
				return fmt.Errorf("failed to marshal run detail: %w", err)
			}
		}

		now := time.Now().UTC()
		updates := map[string]any{
			"status":               status,
			"finished_at":          now,
			"records_read":         counts.RecordsRead,
			"records_normalized":   counts.RecordsNormalized,
			"records_skipped":      counts.RecordsSkipped,
			"matches_written":      counts.MatchesWritten,
			"club_seasons_written": counts.ClubSeasonsWritten,
			"discrepancies_found":  counts.DiscrepanciesFound,
			"detail":               detail,
		}
		if runErr != nil {
			updates["error"] = runErr.Error()
		}

		res := tx.Model(&schema.IngestionRun{}).Where("run_id = ?", runID).Updates(updates)
		if res.Error != nil {
			return fmt.Errorf("failed to finish ingestion run: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("ingestion run %s not found", runID)
		}

		return appendAudit(tx, runID, schema.AuditSubjectRun, runID, schema.AuditActionUpdated, map[string]any{
			"status": status,
		})
	})
}

// GetDiscrepancies lists discrepancies for the audit API, newest first
func (s *pgStore) GetDiscrepancies(ctx context.Context, filter DiscrepancyFilter) ([]*schema.Discrepancy, int64, error) {
	query := s.db.WithContext(ctx).Model(&schema.Discrepancy{})
	if filter.Resolution != "" {
		query = query.Where("resolution = ?", filter.Resolution)
	}
	if filter.TargetType != "" {
		query = query.Where("target_type = ?", filter.TargetType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count discrepancies: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var rows []*schema.Discrepancy
	if err := query.Order("updated_at DESC, id DESC").
		Limit(limit).Offset(filter.Offset).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list discrepancies: %w", err)
	}

	return rows, total, nil
}

// GetDiscrepancyByID fetches one discrepancy; nil when absent
func (s *pgStore) GetDiscrepancyByID(ctx context.Context, id int64) (*schema.Discrepancy, error) {
	var row schema.Discrepancy
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get discrepancy: %w", err)
	}
	return &row, nil
}

// PendingDiscrepancyCount counts discrepancies awaiting a human
func (s *pgStore) PendingDiscrepancyCount(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&schema.Discrepancy{}).
		Where("resolution = ?", domain.ResolutionPending).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count pending discrepancies: %w", err)
	}
	return count, nil
}

// GetAuditEvents pages through the append-only audit journal by cursor
func (s *pgStore) GetAuditEvents(ctx context.Context, filter AuditEventFilter) ([]*schema.AuditJournal, error) {
	query := s.db.WithContext(ctx).Model(&schema.AuditJournal{}).
		Where("\"cursor\" > ?", filter.After)
	if filter.RunID != "" {
		query = query.Where("run_id = ?", filter.RunID)
	}
	if filter.SubjectType != "" {
		query = query.Where("subject_type = ?", filter.SubjectType)
	}

	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var rows []*schema.AuditJournal
	if err := query.Order("\"cursor\" ASC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list audit events: %w", err)
	}
	return rows, nil
}

// GetIngestionRuns lists runs, most recent first
func (s *pgStore) GetIngestionRuns(ctx context.Context, limit, offset int) ([]*schema.IngestionRun, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&schema.IngestionRun{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count ingestion runs: %w", err)
	}

	if limit <= 0 || limit > 200 {
		limit = 20
	}

	var rows []*schema.IngestionRun
	if err := s.db.WithContext(ctx).Order("started_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list ingestion runs: %w", err)
	}
	return rows, total, nil
}

// MatchesForClub lists every canonical match a club took part in, via the
// participation table, in chronological order. Seasons are contiguous date
// ranges, so date order is season-then-date order.
func (s *pgStore) MatchesForClub(ctx context.Context, clubID domain.ClubID, includeVoided bool, limit, offset int) ([]*schema.Match, int64, error) {
	query := s.db.WithContext(ctx).Model(&schema.Match{}).
		Joins("JOIN club_match_participations p ON p.match_id = matches.id").
		Where("p.club_id = ?", clubID)
	if !includeVoided {
		query = query.Where("matches.status <> ?", domain.StatusVoided)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count matches for club: %w", err)
	}

	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var rows []*schema.Match
	if err := query.Order("matches.match_date ASC, matches.id ASC").
		Limit(limit).Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list matches for club: %w", err)
	}
	return rows, total, nil
}

// TierHistoryForClub returns the club's tier per season, oldest first. The
// join runs through club_seasons so only seasons the club actually competed
// in appear.
func (s *pgStore) TierHistoryForClub(ctx context.Context, clubID domain.ClubID) ([]TierEntry, error) {
	var entries []TierEntry
	err := s.db.WithContext(ctx).Model(&schema.ClubSeason{}).
		Select("ls.season_start_year, ls.tier, ls.section, ls.historical_label").
		Joins("JOIN league_seasons ls ON ls.id = club_seasons.league_season_id").
		Where("club_seasons.club_id = ?", clubID).
		Order("ls.season_start_year ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get tier history: %w", err)
	}
	return entries, nil
}

// RecordForClub aggregates a club's results. MatchesContested counts only
// fixtures actually played on the pitch; the win/draw/loss tallies carry
// awarded results too, so points-style sums include awarded_without_play.
// Voided matches count nowhere, and a fixture with a score still pending
// reconciliation contributes no result.
func (s *pgStore) RecordForClub(ctx context.Context, clubID domain.ClubID) (ClubRecord, error) {
	var record ClubRecord
	err := s.db.WithContext(ctx).Model(&schema.Match{}).
		Joins("JOIN club_match_participations p ON p.match_id = matches.id").
		Where("p.club_id = ?", clubID).
		Select(`
			COUNT(*) FILTER (WHERE matches.status = ?) AS matches_contested,
			COUNT(*) FILTER (WHERE matches.status <> ? AND ((p.is_home AND matches.home_goals > matches.away_goals) OR (NOT p.is_home AND matches.away_goals > matches.home_goals))) AS wins,
			COUNT(*) FILTER (WHERE matches.status <> ? AND matches.home_goals = matches.away_goals) AS draws,
			COUNT(*) FILTER (WHERE matches.status <> ? AND ((p.is_home AND matches.home_goals < matches.away_goals) OR (NOT p.is_home AND matches.away_goals < matches.home_goals))) AS losses`,
			domain.StatusPlayed, domain.StatusVoided, domain.StatusVoided, domain.StatusVoided).
		Scan(&record).Error
	if err != nil {
		return ClubRecord{}, fmt.Errorf("failed to aggregate club record: %w", err)
	}
	return record, nil
}

// ContestedMatchCount counts fixtures that still carry at least one pending
// disagreement
func (s *pgStore) ContestedMatchCount(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&schema.Discrepancy{}).
		Where("resolution = ? AND target_type IN ?",
			domain.ResolutionPending,
			[]domain.FactType{domain.FactTypeMatch, domain.FactTypeAttendance}).
		Distinct("target_key").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count contested matches: %w", err)
	}
	return count, nil
}
