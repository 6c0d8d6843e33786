package schema

import (
	"time"

	"github.com/pitchside/consolidator/internal/domain"
)

// Club represents the clubs table - one row per footballing entity across
// all of its historical names. The primary key is the curated club id, not
// a surrogate, so the identity survives re-ingestion.
type Club struct {
	// ClubID is the curated, stable identifier (e.g. "aldershot-town")
	ClubID domain.ClubID `gorm:"column:club_id;primaryKey;type:text"`
	// DisplayName is the club's current canonical name
	DisplayName string `gorm:"column:display_name;not null;type:text"`
	// LineageNotes is free-text curator commentary on renames, mergers and
	// phoenix successions
	LineageNotes string `gorm:"column:lineage_notes;type:text"`
	// CreatedAt is the timestamp when this record was first written
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	Aliases []ClubNameAlias `gorm:"foreignKey:ClubID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Club model
func (Club) TableName() string {
	return "clubs"
}
