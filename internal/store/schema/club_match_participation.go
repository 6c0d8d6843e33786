package schema

import (
	"github.com/pitchside/consolidator/internal/domain"
)

// ClubMatchParticipation represents the club_match_participations table -
// one row per club per match, so "every match X played" is a single indexed
// lookup instead of an OR over the home and away columns
type ClubMatchParticipation struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// MatchID references the fixture
	MatchID int64 `gorm:"column:match_id;not null;uniqueIndex:idx_participations_match_club,priority:1"`
	// ClubID is the participating club
	ClubID domain.ClubID `gorm:"column:club_id;not null;type:text;uniqueIndex:idx_participations_match_club,priority:2;index:idx_participations_club"`
	// IsHome is true for the home side
	IsHome bool `gorm:"column:is_home;not null"`

	// Associations
	Match Match `gorm:"foreignKey:MatchID;constraint:OnDelete:CASCADE"`
	Club  Club  `gorm:"foreignKey:ClubID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the ClubMatchParticipation model
func (ClubMatchParticipation) TableName() string {
	return "club_match_participations"
}
