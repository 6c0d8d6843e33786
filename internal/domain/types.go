package domain

import (
	"fmt"
	"strings"
	"time"
)

// SourceID identifies one upstream scraping source
type SourceID string

const (
	SourceFootballData     SourceID = "football-data"
	SourceFBRef            SourceID = "fbref"
	SourceTodor            SourceID = "todor"
	SourceEFLTables        SourceID = "efl-tables"
	SourceEngSoccerData    SourceID = "engsoccerdata"
	SourceTransferMarkt    SourceID = "transfermarkt"
	SourceFootballWebPages SourceID = "footballwebpages"
)

// FactType classifies what real-world fact a RawFact describes
type FactType string

const (
	FactTypeMatch      FactType = "match"
	FactTypeClubSeason FactType = "club_season"
	FactTypeAttendance FactType = "attendance"
)

// IsValidFactType checks if a fact type is one of the known values
func IsValidFactType(ft FactType) bool {
	return ft == FactTypeMatch || ft == FactTypeClubSeason || ft == FactTypeAttendance
}

// ClubID is the opaque, curated identifier for one footballing entity
// across all its historical names. It is stable for the lifetime of the
// dataset and never reused.
type ClubID string

// Section distinguishes the parallel regional sections of the third tier
// (1920-1958). Empty for every unified tier.
type Section string

const (
	SectionNone  Section = ""
	SectionNorth Section = "north"
	SectionSouth Section = "south"
)

// LeagueSeasonKey is the canonical identity for "tier T in season S".
// (Tier, Section, SeasonStartYear) is unique; HistoricalLabel is the league
// name in force that season and is kept for display only, never for joins.
type LeagueSeasonKey struct {
	Tier            int
	Section         Section
	SeasonStartYear int
	SeasonEndYear   int
	HistoricalLabel string
}

// Key returns the join key string for the league season, e.g. "2:1946" or
// "3-north:1947". The historical label is deliberately not part of it.
func (k LeagueSeasonKey) Key() string {
	if k.Section != SectionNone {
		return fmt.Sprintf("%d-%s:%d", k.Tier, k.Section, k.SeasonStartYear)
	}
	return fmt.Sprintf("%d:%d", k.Tier, k.SeasonStartYear)
}

func (k LeagueSeasonKey) String() string {
	if k.HistoricalLabel == "" {
		return k.Key()
	}
	return fmt.Sprintf("%s %d/%d", k.HistoricalLabel, k.SeasonStartYear, k.SeasonEndYear%100)
}

// SeasonStartYear computes the anchor year of the season a date falls in.
// A season spans two calendar years; dates from July onwards belong to the
// season starting that year, dates before July to the season started the
// year before. Wartime and other anomalies are handled by the curated
// league table, not here.
func SeasonStartYear(date time.Time) int {
	if date.Month() >= time.July {
		return date.Year()
	}
	return date.Year() - 1
}

// MatchStatus records how a match result came to be
type MatchStatus string

const (
	// StatusPlayed means the fixture was contested on the pitch
	StatusPlayed MatchStatus = "played"
	// StatusAwardedWithoutPlay means the governing body assigned the result
	// without the fixture being contested
	StatusAwardedWithoutPlay MatchStatus = "awarded_without_play"
	// StatusVoided means the result was later annulled; the row is retained
	// but excluded from default query views
	StatusVoided MatchStatus = "voided"
)

// Resolution is the lifecycle state of a discrepancy
type Resolution string

const (
	ResolutionAutoResolved       Resolution = "auto_resolved"
	ResolutionPending            Resolution = "pending"
	ResolutionManuallyOverridden Resolution = "manually_overridden"
)

// Well-known RawFact payload field names. Sources report these under their
// own column names; normalizer adapters translate into this vocabulary.
const (
	FieldHomeGoals    = "home_goals"
	FieldAwayGoals    = "away_goals"
	FieldAttendance   = "attendance"
	FieldStatus       = "status"
	FieldPlayed       = "played"
	FieldWon          = "won"
	FieldDrawn        = "drawn"
	FieldLost         = "lost"
	FieldGoalsFor     = "goals_for"
	FieldGoalsAgainst = "goals_against"
	FieldPoints       = "points"
)

// RawFact is one observation from one source for one real-world fact.
// It is immutable once ingested: a new scraping run supersedes facts, it
// never mutates them.
type RawFact struct {
	// SourceID identifies the originating scraping source
	SourceID SourceID
	// FactType classifies the observation (match, club_season, attendance)
	FactType FactType
	// RawClubNames holds club names exactly as the source reported them.
	// For matches the order is home, away. For club_season facts there is
	// exactly one entry.
	RawClubNames []string
	// RawLeagueLabel is the league name as the source reported it
	RawLeagueLabel string
	// ObservationDate is the date of the observed fact (match date, or the
	// reference date of a season-level stat)
	ObservationDate time.Time
	// Payload maps well-known field names to source-reported values.
	// Values stay strings until reconciliation; syntactic translation only.
	Payload map[string]string
}

// HomeName returns the reported home club name for a match-shaped fact
func (f *RawFact) HomeName() string {
	if len(f.RawClubNames) > 0 {
		return f.RawClubNames[0]
	}
	return ""
}

// AwayName returns the reported away club name for a match-shaped fact
func (f *RawFact) AwayName() string {
	if len(f.RawClubNames) > 1 {
		return f.RawClubNames[1]
	}
	return ""
}

// Validate checks the minimum contract upstream collaborators must honor
func (f *RawFact) Validate() error {
	if f.SourceID == "" {
		return fmt.Errorf("raw fact missing source id")
	}
	if !IsValidFactType(f.FactType) {
		return fmt.Errorf("raw fact has unknown fact type %q", f.FactType)
	}
	if f.ObservationDate.IsZero() {
		return fmt.Errorf("raw fact missing observation date")
	}
	if len(f.RawClubNames) == 0 || strings.TrimSpace(f.RawClubNames[0]) == "" {
		return fmt.Errorf("raw fact missing club names")
	}
	return nil
}
