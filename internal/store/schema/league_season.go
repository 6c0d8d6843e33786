package schema

import (
	"github.com/pitchside/consolidator/internal/domain"
)

// LeagueSeason represents the league_seasons table - the canonical identity
// for one tier in one season, independent of whatever the league was named
// that year
type LeagueSeason struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Tier is the level in the pyramid (1 = top flight)
	Tier int `gorm:"column:tier;not null;uniqueIndex:idx_league_seasons_tier_section_season,priority:1"`
	// Section distinguishes parallel regional sections of the same tier
	// (e.g. the split third tier, 1920-1958); empty for unified tiers
	Section domain.Section `gorm:"column:section;not null;default:'';type:text;uniqueIndex:idx_league_seasons_tier_section_season,priority:2"`
	// SeasonStartYear anchors the season (2019 for 2019/20)
	SeasonStartYear int `gorm:"column:season_start_year;not null;uniqueIndex:idx_league_seasons_tier_section_season,priority:3"`
	// SeasonEndYear is the closing calendar year of the season
	SeasonEndYear int `gorm:"column:season_end_year;not null"`
	// HistoricalLabel is the league name in force that season, kept for
	// display only and never used for joins
	HistoricalLabel string `gorm:"column:historical_label;not null;type:text"`

	// Associations
	Matches     []Match      `gorm:"foreignKey:LeagueSeasonID;constraint:OnDelete:CASCADE"`
	ClubSeasons []ClubSeason `gorm:"foreignKey:LeagueSeasonID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the LeagueSeason model
func (LeagueSeason) TableName() string {
	return "league_seasons"
}
