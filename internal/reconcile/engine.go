// Package reconcile merges RawFacts that describe the same real-world fact
// into one canonical row, flagging every disagreement as an auditable
// discrepancy. The architecture is resolve-then-group: each fact is
// independently resolved to canonical club and league identities, then
// facts sharing a natural key are merged under the curated
// source-precedence policy.
package reconcile

import (
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/pitchside/consolidator/internal/curation"
	"github.com/pitchside/consolidator/internal/domain"
	"github.com/pitchside/consolidator/internal/leagues"
	"github.com/pitchside/consolidator/internal/logger"
	"github.com/pitchside/consolidator/internal/resolver"
)

// ResolvedFact is a RawFact whose club names and league label have been
// resolved to canonical identities. Resolution happens independently per
// fact, so this step is safe to parallelize.
type ResolvedFact struct {
	Raw       domain.RawFact
	LeagueKey domain.LeagueSeasonKey
	ClubIDs   []domain.ClubID
}

// GroupKey returns the natural key facts are grouped under. Two facts that
// resolve to the same key describe the same real-world fact regardless of
// originating source. Attendance facts share their match's key.
func (f *ResolvedFact) GroupKey() string {
	date := f.Raw.ObservationDate.Format("2006-01-02")
	switch f.Raw.FactType {
	case domain.FactTypeClubSeason:
		return fmt.Sprintf("%s|%s", f.LeagueKey.Key(), f.ClubIDs[0])
	default:
		return fmt.Sprintf("%s|%s|%s|%s", f.LeagueKey.Key(), date, f.ClubIDs[0], f.ClubIDs[1])
	}
}

// CanonicalMatch is one reconciled fixture
type CanonicalMatch struct {
	LeagueKey  domain.LeagueSeasonKey
	MatchDate  time.Time
	HomeClubID domain.ClubID
	AwayClubID domain.ClubID
	// Goal fields stay nil while a disagreement is pending
	HomeGoals *int
	AwayGoals *int
	// Attendance is the reconciled figure; every per-source observation
	// survives in AttendanceSamples
	Attendance        *int
	AttendanceSamples map[domain.SourceID]int
	Status            domain.MatchStatus
	Sources           []domain.SourceID
}

// NaturalKey returns the match's natural key string
func (m *CanonicalMatch) NaturalKey() string {
	return fmt.Sprintf("%s|%s|%s|%s",
		m.LeagueKey.Key(), m.MatchDate.Format("2006-01-02"), m.HomeClubID, m.AwayClubID)
}

// ClubSeason is one reconciled club/season stat line
type ClubSeason struct {
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

// NaturalKey returns the club season's natural key string
func (s *ClubSeason) NaturalKey() string {
	return fmt.Sprintf("%s|%s", s.LeagueKey.Key(), s.ClubID)
}

// Discrepancy records a field-level disagreement between sources. Every
// candidate value survives auto-resolution; resolution never destroys the
// losing values.
type Discrepancy struct {
	TargetType domain.FactType
	TargetKey  string
	Field      string
	Candidates map[domain.SourceID]string
	Resolution domain.Resolution
	// ResolvedValue is nil while the discrepancy is pending
	ResolvedValue *string
}

// Stats counts what one reconciliation pass did
type Stats struct {
	IntegrityViolations int
	OrphanAttendance    int
	// MalformedValues counts field values no source disagreed on but that
	// still failed to parse; the canonical field is left unset
	MalformedValues int
}

// Output is the full result of reconciling one batch
type Output struct {
	Matches       []CanonicalMatch
	ClubSeasons   []ClubSeason
	Discrepancies []Discrepancy
	Stats         Stats
}

// Engine reconciles resolved facts under one immutable curation snapshot
type Engine struct {
	snapshot *curation.Snapshot
	clubs    *resolver.ClubResolver
	leagues  *leagues.Mapper
}

// NewEngine creates an engine over a curation snapshot
func NewEngine(snapshot *curation.Snapshot) *Engine {
	return &Engine{
		snapshot: snapshot,
		clubs:    resolver.New(snapshot.Aliases),
		leagues:  leagues.NewMapper(snapshot.Leagues),
	}
}

// Resolve turns one RawFact into a ResolvedFact. It only reads the
// immutable curation snapshot, so callers may fan it out across workers.
// Failures are per-record: the caller skips, counts and reports them.
func (e *Engine) Resolve(fact domain.RawFact) (ResolvedFact, error) {
	if err := fact.Validate(); err != nil {
		return ResolvedFact{}, &domain.MalformedRecordError{SourceID: fact.SourceID, Reason: err.Error()}
	}

	leagueKey, err := e.leagues.Map(fact.RawLeagueLabel, fact.ObservationDate)
	if err != nil {
		return ResolvedFact{}, err
	}

	clubIDs, err := e.clubs.ResolveAll(fact.RawClubNames, fact.ObservationDate)
	if err != nil {
		return ResolvedFact{}, err
	}

	if fact.FactType != domain.FactTypeClubSeason && len(clubIDs) < 2 {
		return ResolvedFact{}, &domain.MalformedRecordError{
			SourceID: fact.SourceID,
			Reason:   fmt.Sprintf("%s fact needs two club names, got %d", fact.FactType, len(clubIDs)),
		}
	}

	return ResolvedFact{Raw: fact, LeagueKey: leagueKey, ClubIDs: clubIDs}, nil
}

// Reconcile groups resolved facts by natural key and merges each group.
// The grouping is a deterministic global sort, so re-running over the same
// input always yields the same output in the same order.
func (e *Engine) Reconcile(facts []ResolvedFact) *Output {
	out := &Output{}

	matchGroups := make(map[string][]ResolvedFact)
	seasonGroups := make(map[string][]ResolvedFact)

	for _, fact := range facts {
		switch fact.Raw.FactType {
		case domain.FactTypeClubSeason:
			seasonGroups[fact.GroupKey()] = append(seasonGroups[fact.GroupKey()], fact)
		default:
			// Matches and their attendance observations share a key
			if fact.ClubIDs[0] == fact.ClubIDs[1] {
				out.Stats.IntegrityViolations++
				logger.Warn("Dropping self-match fact",
					zap.String("source", string(fact.Raw.SourceID)),
					zap.String("club", string(fact.ClubIDs[0])),
					zap.Time("date", fact.Raw.ObservationDate),
				)
				continue
			}
			matchGroups[fact.GroupKey()] = append(matchGroups[fact.GroupKey()], fact)
		}
	}

	for _, key := range sortedKeys(matchGroups) {
		e.mergeMatchGroup(key, matchGroups[key], out)
	}
	for _, key := range sortedKeys(seasonGroups) {
		e.mergeSeasonGroup(seasonGroups[key], out)
	}

	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// sortGroup orders a group's facts by source id so candidate maps and
// winner selection are stable across runs
func sortGroup(group []ResolvedFact) {
	sort.SliceStable(group, func(i, j int) bool {
		return group[i].Raw.SourceID < group[j].Raw.SourceID
	})
}

func (e *Engine) mergeMatchGroup(key string, group []ResolvedFact, out *Output) {
	sortGroup(group)

	var matchFacts, attendanceFacts []ResolvedFact
	for _, fact := range group {
		if fact.Raw.FactType == domain.FactTypeMatch {
			matchFacts = append(matchFacts, fact)
		} else {
			attendanceFacts = append(attendanceFacts, fact)
		}
	}

	// An attendance observation with no match observation in the batch has
	// nothing to attach to; it is counted, not written.
	if len(matchFacts) == 0 {
		out.Stats.OrphanAttendance += len(attendanceFacts)
		logger.Warn("Dropping attendance with no matching fixture", zap.String("key", key))
		return
	}

	first := matchFacts[0]
	match := CanonicalMatch{
		LeagueKey:  first.LeagueKey,
		MatchDate:  first.Raw.ObservationDate,
		HomeClubID: first.ClubIDs[0],
		AwayClubID: first.ClubIDs[1],
		Status:     mergeStatus(matchFacts),
	}
	for _, fact := range group {
		match.Sources = append(match.Sources, fact.Raw.SourceID)
	}

	match.HomeGoals = e.mergeIntField(domain.FactTypeMatch, match.NaturalKey(), domain.FieldHomeGoals, matchFacts, out)
	match.AwayGoals = e.mergeIntField(domain.FactTypeMatch, match.NaturalKey(), domain.FieldAwayGoals, matchFacts, out)

	// Attendance candidates come from dedicated attendance facts; each
	// per-source sample is preserved alongside the reconciled figure
	if len(attendanceFacts) > 0 {
		match.AttendanceSamples = make(map[domain.SourceID]int, len(attendanceFacts))
		for _, fact := range attendanceFacts {
			if n, err := parseIntValue(fact.Raw.Payload[domain.FieldAttendance]); err == nil {
				match.AttendanceSamples[fact.Raw.SourceID] = n
			}
		}
		match.Attendance = e.mergeIntField(domain.FactTypeAttendance, match.NaturalKey(), domain.FieldAttendance, attendanceFacts, out)
	}

	out.Matches = append(out.Matches, match)
}

func (e *Engine) mergeSeasonGroup(group []ResolvedFact, out *Output) {
	sortGroup(group)

	first := group[0]
	season := ClubSeason{
		LeagueKey: first.LeagueKey,
		ClubID:    first.ClubIDs[0],
	}
	for _, fact := range group {
		season.Sources = append(season.Sources, fact.Raw.SourceID)
	}

	key := season.NaturalKey()
	season.Played = e.mergeIntField(domain.FactTypeClubSeason, key, domain.FieldPlayed, group, out)
	season.Won = e.mergeIntField(domain.FactTypeClubSeason, key, domain.FieldWon, group, out)
	season.Drawn = e.mergeIntField(domain.FactTypeClubSeason, key, domain.FieldDrawn, group, out)
	season.Lost = e.mergeIntField(domain.FactTypeClubSeason, key, domain.FieldLost, group, out)
	season.GoalsFor = e.mergeIntField(domain.FactTypeClubSeason, key, domain.FieldGoalsFor, group, out)
	season.GoalsAgainst = e.mergeIntField(domain.FactTypeClubSeason, key, domain.FieldGoalsAgainst, group, out)
	season.Points = e.mergeIntField(domain.FactTypeClubSeason, key, domain.FieldPoints, group, out)

	out.ClubSeasons = append(out.ClubSeasons, season)
}

// mergeStatus adopts the most informed status across sources: a source
// reporting an award or a voiding knows strictly more than one recording a
// plain result, so non-played statuses win without raising a discrepancy.
func mergeStatus(matchFacts []ResolvedFact) domain.MatchStatus {
	status := domain.StatusPlayed
	for _, fact := range matchFacts {
		switch domain.MatchStatus(fact.Raw.Payload[domain.FieldStatus]) {
		case domain.StatusVoided:
			return domain.StatusVoided
		case domain.StatusAwardedWithoutPlay:
			status = domain.StatusAwardedWithoutPlay
		}
	}
	return status
}

// mergeIntField applies the field-level merge policy: unanimous values are
// adopted silently; disagreements resolve by curated source precedence and
// always leave a discrepancy record carrying every candidate; disagreements
// with no precedence rule stay pending and the canonical field stays unset.
func (e *Engine) mergeIntField(factType domain.FactType, targetKey, field string, group []ResolvedFact, out *Output) *int {
	candidates := make(map[domain.SourceID]string)
	var reported []domain.SourceID
	distinct := make(map[string]struct{})

	for _, fact := range group {
		value, ok := fact.Raw.Payload[field]
		if !ok || value == "" {
			continue
		}
		if _, seen := candidates[fact.Raw.SourceID]; !seen {
			reported = append(reported, fact.Raw.SourceID)
		}
		candidates[fact.Raw.SourceID] = value
		distinct[value] = struct{}{}
	}

	if len(candidates) == 0 {
		return nil
	}

	if len(distinct) == 1 {
		// Full agreement: adopt, no discrepancy
		value, err := parseIntValue(candidates[reported[0]])
		if err != nil {
			out.Stats.MalformedValues++
			logger.Warn("Dropping unparseable field value",
				zap.String("key", targetKey),
				zap.String("field", field),
				zap.String("value", candidates[reported[0]]),
			)
			return nil
		}
		return &value
	}

	winner, ok := e.snapshot.Precedence.Winner(factType, field, reported)
	if !ok {
		out.Discrepancies = append(out.Discrepancies, Discrepancy{
			TargetType: factType,
			TargetKey:  targetKey,
			Field:      field,
			Candidates: candidates,
			Resolution: domain.ResolutionPending,
		})
		return nil
	}

	resolved := candidates[winner]
	out.Discrepancies = append(out.Discrepancies, Discrepancy{
		TargetType:    factType,
		TargetKey:     targetKey,
		Field:         field,
		Candidates:    candidates,
		Resolution:    domain.ResolutionAutoResolved,
		ResolvedValue: &resolved,
	})

	value, err := parseIntValue(resolved)
	if err != nil {
		out.Stats.MalformedValues++
		logger.Warn("Dropping unparseable field value",
			zap.String("key", targetKey),
			zap.String("field", field),
			zap.String("value", resolved),
		)
		return nil
	}
	return &value
}

func parseIntValue(s string) (int, error) {
	var n int
	_, err := fmt.Sscanf(s, "%d", &n)
	return n, err
}
