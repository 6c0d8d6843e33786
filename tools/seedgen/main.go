// seedgen generates synthetic source exports for exercising the
// consolidation pipeline without real scraped data. It writes one CSV per
// source under the output directory, in each source's native column layout,
// covering the same fixtures so the reconciliation engine has something to
// merge. A configurable share of fixtures gets a deliberately conflicting
// score from fbref to exercise precedence resolution and discrepancies.
//
// Usage:
//
//	go run ./tools/seedgen -out data/sources -start 2019 -seasons 1 -conflicts 0.05
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"
)

type Config struct {
	OutDir       string
	StartYear    int
	Seasons      int
	Seed         int64
	ConflictRate float64
}

// clubs plays a synthetic top flight. Names match the curated alias table so
// generated exports resolve cleanly.
var clubs = []string{
	"Arsenal",
	"Aston Villa",
	"Blackburn Rovers",
	"Bolton Wanderers",
	"Burnley",
	"Everton",
	"Leicester City",
	"Manchester United",
	"Preston North End",
	"Stoke City",
	"West Bromwich Albion",
	"Wolverhampton Wanderers",
}

// Fixture is one generated match with its ground truth
type Fixture struct {
	Date       time.Time
	Home       string
	Away       string
	HomeGoals  int
	AwayGoals  int
	Attendance int
	// ConflictingHomeGoals is set when fbref should disagree with the
	// other sources on the home score
	ConflictingHomeGoals *int
}

func main() {
	cfg := Config{}
	flag.StringVar(&cfg.OutDir, "out", "data/sources", "Output directory for per-source exports")
	flag.IntVar(&cfg.StartYear, "start", 2019, "First season start year")
	flag.IntVar(&cfg.Seasons, "seasons", 1, "Number of seasons to generate")
	flag.Int64Var(&cfg.Seed, "seed", 1, "Random seed (same seed, same exports)")
	flag.Float64Var(&cfg.ConflictRate, "conflicts", 0.05, "Share of fixtures where fbref disagrees on the home score")
	flag.Parse()

	if cfg.Seasons < 1 {
		fmt.Fprintln(os.Stderr, "seasons must be at least 1")
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	var total int
	for season := 0; season < cfg.Seasons; season++ {
		year := cfg.StartYear + season
		fixtures := GenerateSeason(rng, year, cfg.ConflictRate)

		if err := writeSeason(cfg.OutDir, year, fixtures); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write season %d: %v\n", year, err)
			os.Exit(1)
		}
		total += len(fixtures)
	}

	fmt.Printf("wrote %d fixtures across %d season(s) to %s\n", total, cfg.Seasons, cfg.OutDir)
}

// GenerateSeason produces a full double round-robin for one season with
// deterministic scores and attendances
func GenerateSeason(rng *rand.Rand, startYear int, conflictRate float64) []Fixture {
	var fixtures []Fixture

	// Matches spread weekly from mid August; home and away legs half a
	// season apart
	kickoff := time.Date(startYear, time.August, 10, 0, 0, 0, 0, time.UTC)
	matchday := 0
	for i := range clubs {
		for j := range clubs {
			if i == j {
				continue
			}
			f := Fixture{
				Date:       kickoff.AddDate(0, 0, (matchday%38)*7),
				Home:       clubs[i],
				Away:       clubs[j],
				HomeGoals:  rng.Intn(5),
				AwayGoals:  rng.Intn(4),
				Attendance: 8000 + rng.Intn(52000),
			}
			if rng.Float64() < conflictRate {
				conflicting := f.HomeGoals + 1
				f.ConflictingHomeGoals = &conflicting
			}
			fixtures = append(fixtures, f)
			matchday++
		}
	}
	return fixtures
}

func writeSeason(outDir string, year int, fixtures []Fixture) error {
	name := fmt.Sprintf("%d.csv", year)

	writers := []struct {
		source string
		header []string
		row    func(f Fixture) []string
	}{
		{
			source: "football-data",
			header: []string{"Div", "Date", "HomeTeam", "AwayTeam", "FTHG", "FTAG", "Attendance"},
			row: func(f Fixture) []string {
				return []string{
					"E0",
					f.Date.Format("02/01/2006"),
					f.Home, f.Away,
					fmt.Sprint(f.HomeGoals), fmt.Sprint(f.AwayGoals),
					fmt.Sprint(f.Attendance),
				}
			},
		},
		{
			source: "fbref",
			header: []string{"Date", "Competition", "Home", "Score", "Away", "Attendance"},
			row: func(f Fixture) []string {
				homeGoals := f.HomeGoals
				if f.ConflictingHomeGoals != nil {
					homeGoals = *f.ConflictingHomeGoals
				}
				return []string{
					f.Date.Format("2006-01-02"),
					"Premier League",
					f.Home,
					fmt.Sprintf("%d–%d", homeGoals, f.AwayGoals),
					f.Away,
					"",
				}
			},
		},
		{
			source: "transfermarkt",
			header: []string{"date", "competition", "home team", "away team", "attendance"},
			row: func(f Fixture) []string {
				return []string{
					f.Date.Format("2006-01-02"),
					"Premier League",
					f.Home, f.Away,
					fmt.Sprint(f.Attendance),
				}
			},
		},
	}

	for _, w := range writers {
		dir := filepath.Join(outDir, w.source)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
		if err := writeCSV(filepath.Join(dir, name), w.header, fixtures, w.row); err != nil {
			return err
		}
	}
	return nil
}

func writeCSV(path string, header []string, fixtures []Fixture, row func(f Fixture) []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, fixture := range fixtures {
		if err := w.Write(row(fixture)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
