package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pitchside/consolidator/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSeasonStartYear(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		expected int
	}{
		{
			name:     "august fixture anchors the new season",
			date:     date(2019, time.August, 10),
			expected: 2019,
		},
		{
			name:     "spring fixture belongs to the season started the year before",
			date:     date(2020, time.March, 7),
			expected: 2019,
		},
		{
			name:     "june date still counts to the prior season",
			date:     date(2020, time.June, 30),
			expected: 2019,
		},
		{
			name:     "july is the season boundary",
			date:     date(2020, time.July, 1),
			expected: 2020,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, domain.SeasonStartYear(tt.date))
		})
	}
}

func TestLeagueSeasonKey_Key(t *testing.T) {
	tests := []struct {
		name     string
		key      domain.LeagueSeasonKey
		expected string
	}{
		{
			name: "unified tier",
			key: domain.LeagueSeasonKey{
				Tier:            1,
				SeasonStartYear: 2019,
				SeasonEndYear:   2020,
				HistoricalLabel: "Premier League",
			},
			expected: "1:2019",
		},
		{
			name: "regional third tier keeps its section in the key",
			key: domain.LeagueSeasonKey{
				Tier:            3,
				Section:         domain.SectionNorth,
				SeasonStartYear: 1947,
				SeasonEndYear:   1948,
				HistoricalLabel: "Third Division North",
			},
			expected: "3-north:1947",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.key.Key())
		})
	}
}

func TestRawFact_Validate(t *testing.T) {
	valid := domain.RawFact{
		SourceID:        domain.SourceFootballData,
		FactType:        domain.FactTypeMatch,
		RawClubNames:    []string{"Arsenal", "Burnley"},
		RawLeagueLabel:  "Premier League",
		ObservationDate: date(2019, time.August, 10),
	}

	t.Run("valid fact", func(t *testing.T) {
		f := valid
		assert.NoError(t, f.Validate())
	})

	t.Run("missing source", func(t *testing.T) {
		f := valid
		f.SourceID = ""
		assert.Error(t, f.Validate())
	})

	t.Run("unknown fact type", func(t *testing.T) {
		f := valid
		f.FactType = "transfer"
		assert.Error(t, f.Validate())
	})

	t.Run("zero observation date", func(t *testing.T) {
		f := valid
		f.ObservationDate = time.Time{}
		assert.Error(t, f.Validate())
	})

	t.Run("no club names", func(t *testing.T) {
		f := valid
		f.RawClubNames = nil
		assert.Error(t, f.Validate())
	})

	t.Run("blank club name", func(t *testing.T) {
		f := valid
		f.RawClubNames = []string{"   "}
		assert.Error(t, f.Validate())
	})
}

func TestRawFact_HomeAway(t *testing.T) {
	f := domain.RawFact{RawClubNames: []string{"Arsenal", "Burnley"}}
	assert.Equal(t, "Arsenal", f.HomeName())
	assert.Equal(t, "Burnley", f.AwayName())

	single := domain.RawFact{RawClubNames: []string{"Arsenal"}}
	assert.Equal(t, "Arsenal", single.HomeName())
	assert.Equal(t, "", single.AwayName())
}
