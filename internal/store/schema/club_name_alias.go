package schema

import (
	"time"

	"github.com/pitchside/consolidator/internal/domain"
)

// ClubNameAlias represents the club_name_aliases table - the persisted copy
// of the curated alias mapping, so canonical rows can always be traced back
// to the name spellings that produced them
type ClubNameAlias struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// ClubID references the club this alias resolves to
	ClubID domain.ClubID `gorm:"column:club_id;not null;type:text;uniqueIndex:idx_club_name_aliases_club_name_from,priority:1"`
	// Name is the alias exactly as curated
	Name string `gorm:"column:name;not null;type:text;uniqueIndex:idx_club_name_aliases_club_name_from,priority:2"`
	// ValidFrom is the inclusive start of the alias's validity range
	ValidFrom *time.Time `gorm:"column:valid_from;type:date;uniqueIndex:idx_club_name_aliases_club_name_from,priority:3"`
	// ValidTo is the exclusive end of the validity range; nil means open
	ValidTo *time.Time `gorm:"column:valid_to;type:date"`

	// Associations
	Club Club `gorm:"foreignKey:ClubID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the ClubNameAlias model
func (ClubNameAlias) TableName() string {
	return "club_name_aliases"
}
