package curation

import (
	"fmt"
	"path/filepath"

	"github.com/pitchside/consolidator/internal/adapter"
)

// Snapshot bundles every curated lookup table for one pipeline run. It is
// loaded once, treated as immutable, and passed explicitly into each stage
// so independent runs (and tests with different curation states) never
// share ambient globals.
type Snapshot struct {
	Aliases    *AliasTable
	Clubs      *ClubRegistry
	Leagues    *LeagueTable
	Precedence *PrecedenceRules
}

// Standard file names inside a curated data directory
const (
	AliasFileName      = "club_aliases.csv"
	ClubFileName       = "clubs.csv"
	LeagueFileName     = "league_labels.csv"
	PrecedenceFileName = "precedence.yaml"
)

// Load reads a full curation snapshot from a directory. An unreadable or
// invalid curated table is a whole-stage input error and fails the run.
func Load(fs adapter.FileSystem, dir string) (*Snapshot, error) {
	aliases, err := LoadAliasTable(fs, filepath.Join(dir, AliasFileName))
	if err != nil {
		return nil, fmt.Errorf("failed to load curation snapshot: %w", err)
	}

	clubs, err := LoadClubRegistry(fs, filepath.Join(dir, ClubFileName))
	if err != nil {
		return nil, fmt.Errorf("failed to load curation snapshot: %w", err)
	}

	leagues, err := LoadLeagueTable(fs, filepath.Join(dir, LeagueFileName))
	if err != nil {
		return nil, fmt.Errorf("failed to load curation snapshot: %w", err)
	}

	precedence, err := LoadPrecedenceRules(fs, filepath.Join(dir, PrecedenceFileName))
	if err != nil {
		return nil, fmt.Errorf("failed to load curation snapshot: %w", err)
	}

	// Every alias must point at a curated club; a dangling alias is a
	// curation bug better caught at load time than at write time.
	for name, rows := range aliases.byName {
		for _, row := range rows {
			if _, ok := clubs.Get(row.ClubID); !ok {
				return nil, fmt.Errorf("alias %q references unknown club %s", name, row.ClubID)
			}
		}
	}

	return &Snapshot{
		Aliases:    aliases,
		Clubs:      clubs,
		Leagues:    leagues,
		Precedence: precedence,
	}, nil
}
