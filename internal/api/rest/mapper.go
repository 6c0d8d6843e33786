package rest

import (
	"encoding/json"

	"github.com/pitchside/consolidator/internal/store"
	"github.com/pitchside/consolidator/internal/store/schema"
)

func toDiscrepancyDTO(row *schema.Discrepancy) DiscrepancyDTO {
	candidates := make(map[string]string)
	if len(row.Candidates) > 0 {
		// Candidates is written by the pipeline as a string map; a decode
		// failure leaves the map empty rather than failing the read.
		_ = json.Unmarshal(row.Candidates, &candidates)
	}
	return DiscrepancyDTO{
		ID:            row.ID,
		TargetType:    string(row.TargetType),
		TargetKey:     row.TargetKey,
		Field:         row.Field,
		Candidates:    candidates,
		Resolution:    string(row.Resolution),
		ResolvedValue: row.ResolvedValue,
		ResolvedBy:    row.ResolvedBy,
		ResolvedAt:    row.ResolvedAt,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

func toIngestionRunDTO(row *schema.IngestionRun) IngestionRunDTO {
	var detail map[string]any
	if len(row.Detail) > 0 {
		_ = json.Unmarshal(row.Detail, &detail)
	}
	return IngestionRunDTO{
		RunID:              row.RunID,
		Status:             string(row.Status),
		StartedAt:          row.StartedAt,
		FinishedAt:         row.FinishedAt,
		RecordsRead:        row.RecordsRead,
		RecordsNormalized:  row.RecordsNormalized,
		RecordsSkipped:     row.RecordsSkipped,
		MatchesWritten:     row.MatchesWritten,
		ClubSeasonsWritten: row.ClubSeasonsWritten,
		DiscrepanciesFound: row.DiscrepanciesFound,
		Error:              row.Error,
		Detail:             detail,
	}
}

func toAuditEventDTO(row *schema.AuditJournal) AuditEventDTO {
	var meta map[string]any
	if len(row.Meta) > 0 {
		_ = json.Unmarshal(row.Meta, &meta)
	}
	return AuditEventDTO{
		Cursor:      row.Cursor,
		EventID:     row.EventID,
		RunID:       row.RunID,
		SubjectType: string(row.SubjectType),
		SubjectKey:  row.SubjectKey,
		Action:      string(row.Action),
		OccurredAt:  row.OccurredAt,
		Meta:        meta,
	}
}

func toMatchDTO(row *schema.Match) MatchDTO {
	var sources []string
	if len(row.Sources) > 0 {
		_ = json.Unmarshal(row.Sources, &sources)
	}
	return MatchDTO{
		ID:         row.ID,
		MatchDate:  row.MatchDate.Format("2006-01-02"),
		HomeClubID: string(row.HomeClubID),
		AwayClubID: string(row.AwayClubID),
		HomeGoals:  row.HomeGoals,
		AwayGoals:  row.AwayGoals,
		Attendance: row.Attendance,
		Status:     string(row.Status),
		Sources:    sources,
	}
}

func toTierEntryDTO(entry store.TierEntry) TierEntryDTO {
	return TierEntryDTO{
		SeasonStartYear: entry.SeasonStartYear,
		Tier:            entry.Tier,
		Section:         string(entry.Section),
		HistoricalLabel: entry.HistoricalLabel,
	}
}
