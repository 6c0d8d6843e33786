// Package pipeline runs one consolidation batch end to end: load curation,
// normalize every source export, resolve identities, reconcile, write. Each
// stage treats per-record failures as skip-and-count and whole-stage input
// failures as fatal for the run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pitchside/consolidator/internal/adapter"
	"github.com/pitchside/consolidator/internal/curation"
	"github.com/pitchside/consolidator/internal/domain"
	"github.com/pitchside/consolidator/internal/logger"
	"github.com/pitchside/consolidator/internal/normalizer"
	"github.com/pitchside/consolidator/internal/reconcile"
	"github.com/pitchside/consolidator/internal/store"
	"github.com/pitchside/consolidator/internal/store/schema"
)

// Config holds one run's input locations and tuning knobs
type Config struct {
	// CuratedDir holds the curated tables (aliases, clubs, league labels,
	// precedence rules)
	CuratedDir string
	// SourcesDir is the root of per-source export directories; each source
	// id is a subdirectory of CSV files
	SourcesDir string
	// Sources limits the run to the listed ids; empty means every source
	// the normalizer knows
	Sources []domain.SourceID

	WorkerPoolSize  int
	WorkerQueueSize int

	WriterMaxRetries      int
	WriterInitialInterval time.Duration
	WriterMaxInterval     time.Duration
}

// RunSummary is what one pipeline run reports back to the operator
type RunSummary struct {
	RunID    string
	Counts   store.RunCounts
	Duration time.Duration
}

// Pipeline wires the consolidation stages over one store
type Pipeline struct {
	fs     adapter.FileSystem
	clock  adapter.Clock
	store  store.Store
	norm   *normalizer.Normalizer
	config Config
}

// New creates a pipeline. The normalizer carries one adapter per supported
// source.
func New(fs adapter.FileSystem, clock adapter.Clock, st store.Store, norm *normalizer.Normalizer, config Config) *Pipeline {
	if config.WorkerPoolSize <= 0 {
		config.WorkerPoolSize = 8
	}
	if config.WorkerQueueSize <= 0 {
		config.WorkerQueueSize = 1024
	}
	if config.WriterMaxRetries <= 0 {
		config.WriterMaxRetries = 5
	}
	if config.WriterInitialInterval <= 0 {
		config.WriterInitialInterval = 500 * time.Millisecond
	}
	if config.WriterMaxInterval <= 0 {
		config.WriterMaxInterval = 10 * time.Second
	}
	return &Pipeline{fs: fs, clock: clock, store: st, norm: norm, config: config}
}

// Run executes one full consolidation batch. The run row is created first
// and always closed, so a crash mid-run is visible as a stuck "running" row
// rather than silence.
func (p *Pipeline) Run(ctx context.Context) (*RunSummary, error) {
	runID := uuid.NewString()
	startedAt := p.clock.Now().UTC()

	logger.InfoCtx(ctx, "Starting consolidation run",
		zap.String("run_id", runID),
		zap.String("curated_dir", p.config.CuratedDir),
		zap.String("sources_dir", p.config.SourcesDir),
	)

	if err := p.store.CreateIngestionRun(ctx, runID, startedAt); err != nil {
		return nil, fmt.Errorf("failed to open ingestion run: %w", err)
	}

	counts, runErr := p.execute(ctx, runID)

	status := schema.RunStatusSucceeded
	if runErr != nil {
		status = schema.RunStatusFailed
	}
	if err := p.store.FinishIngestionRun(ctx, runID, status, counts, runErr); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("run_id", runID))
	}

	summary := &RunSummary{
		RunID:    runID,
		Counts:   counts,
		Duration: p.clock.Since(startedAt),
	}
	if runErr != nil {
		return summary, runErr
	}

	logger.InfoCtx(ctx, "Consolidation run finished",
		zap.String("run_id", runID),
		zap.Int("records_read", counts.RecordsRead),
		zap.Int("records_skipped", counts.RecordsSkipped),
		zap.Int("matches_written", counts.MatchesWritten),
		zap.Int("club_seasons_written", counts.ClubSeasonsWritten),
		zap.Int("discrepancies_found", counts.DiscrepanciesFound),
		zap.Duration("duration", summary.Duration),
	)
	return summary, nil
}

func (p *Pipeline) execute(ctx context.Context, runID string) (store.RunCounts, error) {
	var counts store.RunCounts
	detail := make(map[string]any)
	counts.Detail = detail

	// Stage 1: curation. An invalid curated table fails the whole run.
	snapshot, err := curation.Load(p.fs, p.config.CuratedDir)
	if err != nil {
		return counts, err
	}
	if err := p.syncCuration(ctx, snapshot); err != nil {
		return counts, err
	}

	// Stage 2: normalize every source export
	facts, err := p.normalize(ctx, &counts, detail)
	if err != nil {
		return counts, err
	}

	// Stage 3: resolve identities in parallel over the immutable snapshot
	engine := reconcile.NewEngine(snapshot)
	resolved := p.resolve(ctx, engine, facts, &counts, detail)

	// Stage 4: reconcile into canonical rows and discrepancies
	output := engine.Reconcile(resolved)
	detail["integrity_violations"] = output.Stats.IntegrityViolations
	detail["orphan_attendance"] = output.Stats.OrphanAttendance
	detail["malformed_values"] = output.Stats.MalformedValues

	// Stage 5: write
	if err := p.write(ctx, runID, output, &counts); err != nil {
		return counts, err
	}

	return counts, nil
}

func (p *Pipeline) syncCuration(ctx context.Context, snapshot *curation.Snapshot) error {
	input := store.SyncCurationInput{}
	for _, club := range snapshot.Clubs.All() {
		input.Clubs = append(input.Clubs, schema.Club{
			ClubID:       club.ClubID,
			DisplayName:  club.DisplayName,
			LineageNotes: club.LineageNotes,
		})
	}
	for _, alias := range snapshot.Aliases.Rows() {
		validFrom := alias.ValidFrom
		input.Aliases = append(input.Aliases, schema.ClubNameAlias{
			ClubID:    alias.ClubID,
			Name:      alias.Name,
			ValidFrom: &validFrom,
			ValidTo:   alias.ValidTo,
		})
	}
	if err := p.store.SyncCuration(ctx, input); err != nil {
		return fmt.Errorf("failed to sync curation: %w", err)
	}
	return nil
}

// normalize reads every CSV export under SourcesDir/<source>/ and runs it
// through the source's adapter. A missing directory for a source is fine;
// an unreadable file fails the run.
func (p *Pipeline) normalize(ctx context.Context, counts *store.RunCounts, detail map[string]any) ([]domain.RawFact, error) {
	sources := p.config.Sources
	if len(sources) == 0 {
		sources = p.norm.Sources()
	}

	var facts []domain.RawFact
	for _, sourceID := range sources {
		pattern := filepath.Join(p.config.SourcesDir, string(sourceID), "*.csv")
		files, err := p.fs.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to list exports for %s: %w", sourceID, err)
		}
		if len(files) == 0 {
			logger.WarnCtx(ctx, "No export files for source", zap.String("source", string(sourceID)))
			continue
		}

		sourceRead, sourceMalformed := 0, 0
		for _, file := range files {
			f, err := p.fs.Open(file)
			if err != nil {
				return nil, fmt.Errorf("failed to open %s: %w", file, err)
			}
			result, err := p.norm.NormalizeCSV(sourceID, f)
			_ = f.Close()
			if err != nil {
				return nil, err
			}

			facts = append(facts, result.Facts...)
			sourceRead += result.Normalized + result.Malformed
			sourceMalformed += result.Malformed
		}

		counts.RecordsRead += sourceRead
		counts.RecordsNormalized += sourceRead - sourceMalformed
		counts.RecordsSkipped += sourceMalformed
		detail["source:"+string(sourceID)] = map[string]int{
			"read":      sourceRead,
			"malformed": sourceMalformed,
		}

		logger.InfoCtx(ctx, "Normalized source",
			zap.String("source", string(sourceID)),
			zap.Int("files", len(files)),
			zap.Int("records", sourceRead),
			zap.Int("malformed", sourceMalformed),
		)
	}

	return facts, nil
}

// resolve fans fact resolution out over a worker pool. Resolution only
// reads the immutable snapshot, so ordering is restored afterwards by
// index and the output stays deterministic. Curation-gap skips are counted
// per error type so the run detail shows which curated table needs a row.
func (p *Pipeline) resolve(ctx context.Context, engine *reconcile.Engine, facts []domain.RawFact, counts *store.RunCounts, detail map[string]any) []reconcile.ResolvedFact {
	results := make([]reconcile.ResolvedFact, len(facts))
	ok := make([]bool, len(facts))
	var skipped, unknownAliases, unknownLeagues atomic.Int64

	pool := pond.NewPool(
		p.config.WorkerPoolSize,
		pond.WithQueueSize(p.config.WorkerQueueSize),
		pond.WithContext(ctx),
	)
	for i, fact := range facts {
		pool.Submit(func() {
			rf, err := engine.Resolve(fact)
			if err != nil {
				skipped.Add(1)
				switch {
				case errors.Is(err, domain.ErrUnknownAlias):
					unknownAliases.Add(1)
				case errors.Is(err, domain.ErrUnknownLeagueLabel):
					unknownLeagues.Add(1)
				}
				logger.WarnCtx(ctx, "Skipping unresolvable record",
					zap.String("source", string(fact.SourceID)),
					zap.Error(err),
				)
				return
			}
			results[i] = rf
			ok[i] = true
		})
	}
	pool.StopAndWait()

	counts.RecordsSkipped += int(skipped.Load())
	detail["unknown_alias_skips"] = int(unknownAliases.Load())
	detail["unknown_league_skips"] = int(unknownLeagues.Load())

	resolved := make([]reconcile.ResolvedFact, 0, len(facts))
	for i := range results {
		if ok[i] {
			resolved = append(resolved, results[i])
		}
	}
	return resolved
}

// write pushes the reconciled output into the canonical store. Each upsert
// is retried with exponential backoff; a write that keeps failing fails the
// run.
func (p *Pipeline) write(ctx context.Context, runID string, output *reconcile.Output, counts *store.RunCounts) error {
	// Natural key to row id, so discrepancies can reference their rows
	targetIDs := make(map[string]int64)

	for _, match := range output.Matches {
		var result store.WriteResult
		err := p.retryWrite(ctx, func() error {
			var err error
			result, err = p.store.UpsertMatch(ctx, store.UpsertMatchInput{
				RunID:             runID,
				LeagueKey:         match.LeagueKey,
				MatchDate:         match.MatchDate,
				HomeClubID:        match.HomeClubID,
				AwayClubID:        match.AwayClubID,
				HomeGoals:         match.HomeGoals,
				AwayGoals:         match.AwayGoals,
				Attendance:        match.Attendance,
				AttendanceSamples: match.AttendanceSamples,
				Status:            match.Status,
				Sources:           match.Sources,
			})
			return err
		})
		if err != nil {
			return fmt.Errorf("failed to write match %s: %w", match.NaturalKey(), err)
		}
		targetIDs[match.NaturalKey()] = result.ID
		counts.MatchesWritten++
	}

	for _, season := range output.ClubSeasons {
		var result store.WriteResult
		err := p.retryWrite(ctx, func() error {
			var err error
			result, err = p.store.UpsertClubSeason(ctx, store.UpsertClubSeasonInput{
				RunID:        runID,
				LeagueKey:    season.LeagueKey,
				ClubID:       season.ClubID,
				Played:       season.Played,
				Won:          season.Won,
				Drawn:        season.Drawn,
				Lost:         season.Lost,
				GoalsFor:     season.GoalsFor,
				GoalsAgainst: season.GoalsAgainst,
				Points:       season.Points,
				Sources:      season.Sources,
			})
			return err
		})
		if err != nil {
			return fmt.Errorf("failed to write club season %s: %w", season.NaturalKey(), err)
		}
		targetIDs[season.NaturalKey()] = result.ID
		counts.ClubSeasonsWritten++
	}

	for _, disc := range output.Discrepancies {
		input := store.UpsertDiscrepancyInput{
			RunID:         runID,
			TargetType:    disc.TargetType,
			TargetKey:     disc.TargetKey,
			Field:         disc.Field,
			Candidates:    disc.Candidates,
			Resolution:    disc.Resolution,
			ResolvedValue: disc.ResolvedValue,
		}
		if id, found := targetIDs[disc.TargetKey]; found {
			input.TargetID = &id
		}
		err := p.retryWrite(ctx, func() error {
			_, err := p.store.UpsertDiscrepancy(ctx, input)
			return err
		})
		if err != nil {
			return fmt.Errorf("failed to write discrepancy %s/%s: %w", disc.TargetKey, disc.Field, err)
		}
		counts.DiscrepanciesFound++
	}

	return nil
}

func (p *Pipeline) retryWrite(ctx context.Context, operation func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.config.WriterInitialInterval
	b.MaxInterval = p.config.WriterMaxInterval

	var attempts int
	notify := func(err error, next time.Duration) {
		attempts++
		logger.WarnCtx(ctx, "Write failed, retrying",
			zap.Error(err),
			zap.Int("attempt", attempts),
			zap.Duration("next_retry_in", next),
		)
	}

	return backoff.RetryNotify(operation,
		backoff.WithContext(backoff.WithMaxRetries(b, uint64(p.config.WriterMaxRetries)), ctx),
		notify)
}
