package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/pitchside/consolidator/internal/domain"
)

// ClubSeason represents the club_seasons table - one club's reconciled stat
// line for one league season. Stat fields stay nil while a disagreement on
// them is pending.
type ClubSeason struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// LeagueSeasonID references the league season
	LeagueSeasonID int64 `gorm:"column:league_season_id;not null;uniqueIndex:idx_club_seasons_league_club,priority:1"`
	// ClubID is the canonical club id
	ClubID domain.ClubID `gorm:"column:club_id;not null;type:text;uniqueIndex:idx_club_seasons_league_club,priority:2;index:idx_club_seasons_club"`
	// Played is the number of matches played
	Played *int `gorm:"column:played"`
	// Won is the number of wins
	Won *int `gorm:"column:won"`
	// Drawn is the number of draws
	Drawn *int `gorm:"column:drawn"`
	// Lost is the number of defeats
	Lost *int `gorm:"column:lost"`
	// GoalsFor is goals scored over the season
	GoalsFor *int `gorm:"column:goals_for"`
	// GoalsAgainst is goals conceded over the season
	GoalsAgainst *int `gorm:"column:goals_against"`
	// Points is the season points total under the rules of that era
	Points *int `gorm:"column:points"`
	// Sources lists every source id that contributed to this row, as JSON
	Sources datatypes.JSON `gorm:"column:sources;type:jsonb"`
	// CreatedAt is the timestamp when this record was first written
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	LeagueSeason LeagueSeason `gorm:"foreignKey:LeagueSeasonID;constraint:OnDelete:CASCADE"`
	Club         Club         `gorm:"foreignKey:ClubID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the ClubSeason model
func (ClubSeason) TableName() string {
	return "club_seasons"
}
