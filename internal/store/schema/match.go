package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/pitchside/consolidator/internal/domain"
)

// Match represents the matches table - one reconciled fixture. The natural
// key (league season, date, home, away) makes re-ingestion an upsert rather
// than a duplicate insert.
type Match struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// LeagueSeasonID references the league season the fixture belongs to
	LeagueSeasonID int64 `gorm:"column:league_season_id;not null;uniqueIndex:idx_matches_natural_key,priority:1"`
	// MatchDate is the date the fixture was (or was scheduled to be) played
	MatchDate time.Time `gorm:"column:match_date;not null;type:date;uniqueIndex:idx_matches_natural_key,priority:2"`
	// HomeClubID is the canonical id of the home side
	HomeClubID domain.ClubID `gorm:"column:home_club_id;not null;type:text;uniqueIndex:idx_matches_natural_key,priority:3;index:idx_matches_home_club"`
	// AwayClubID is the canonical id of the away side
	AwayClubID domain.ClubID `gorm:"column:away_club_id;not null;type:text;uniqueIndex:idx_matches_natural_key,priority:4;index:idx_matches_away_club"`
	// HomeGoals is nil while a score disagreement is pending
	HomeGoals *int `gorm:"column:home_goals"`
	// AwayGoals is nil while a score disagreement is pending
	AwayGoals *int `gorm:"column:away_goals"`
	// Attendance is the reconciled attendance figure; per-source samples
	// live in attendance_samples
	Attendance *int `gorm:"column:attendance"`
	// Status records how the result came to be (played, awarded without
	// play, voided)
	Status domain.MatchStatus `gorm:"column:status;not null;default:'played';type:text"`
	// Sources lists every source id that contributed to this row, as JSON
	Sources datatypes.JSON `gorm:"column:sources;type:jsonb"`
	// CreatedAt is the timestamp when this record was first written
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	LeagueSeason      LeagueSeason             `gorm:"foreignKey:LeagueSeasonID;constraint:OnDelete:CASCADE"`
	Participations    []ClubMatchParticipation `gorm:"foreignKey:MatchID;constraint:OnDelete:CASCADE"`
	AttendanceSamples []AttendanceSample       `gorm:"foreignKey:MatchID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Match model
func (Match) TableName() string {
	return "matches"
}
