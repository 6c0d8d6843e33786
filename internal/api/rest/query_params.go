package rest

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/pitchside/consolidator/internal/domain"
)

const MAX_PAGE_SIZE = 200

// ListDiscrepanciesQueryParams holds query parameters for GET /discrepancies
type ListDiscrepanciesQueryParams struct {
	Resolution string `form:"resolution"`
	TargetType string `form:"target_type"`
	Limit      int    `form:"limit,default=50"`
	Offset     int    `form:"offset,default=0"`
}

// Validate checks the filter values name real enum members
func (p *ListDiscrepanciesQueryParams) Validate() error {
	switch domain.Resolution(p.Resolution) {
	case "", domain.ResolutionPending, domain.ResolutionAutoResolved, domain.ResolutionManuallyOverridden:
	default:
		return fmt.Errorf("unknown resolution %q", p.Resolution)
	}
	switch domain.FactType(p.TargetType) {
	case "", domain.FactTypeMatch, domain.FactTypeClubSeason, domain.FactTypeAttendance:
	default:
		return fmt.Errorf("unknown target_type %q", p.TargetType)
	}
	return nil
}

// ListRunsQueryParams holds query parameters for GET /runs
type ListRunsQueryParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListAuditEventsQueryParams holds query parameters for GET /audit-events.
// Pagination is cursor based: "after" is the last cursor already seen.
type ListAuditEventsQueryParams struct {
	RunID       string `form:"run_id"`
	SubjectType string `form:"subject_type"`
	After       int64  `form:"after,default=0"`
	Limit       int    `form:"limit,default=100"`
}

// ListClubMatchesQueryParams holds query parameters for GET
// /clubs/:id/matches
type ListClubMatchesQueryParams struct {
	IncludeVoided bool `form:"include_voided,default=false"`
	Limit         int  `form:"limit,default=100"`
	Offset        int  `form:"offset,default=0"`
}

// parseListDiscrepanciesQuery parses query parameters for GET /discrepancies
func parseListDiscrepanciesQuery(c *gin.Context) (*ListDiscrepanciesQueryParams, error) {
	var params ListDiscrepanciesQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	if params.Limit > MAX_PAGE_SIZE {
		params.Limit = MAX_PAGE_SIZE
	}
	return &params, nil
}

// parseListRunsQuery parses query parameters for GET /runs
func parseListRunsQuery(c *gin.Context) (*ListRunsQueryParams, error) {
	var params ListRunsQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	if params.Limit > MAX_PAGE_SIZE {
		params.Limit = MAX_PAGE_SIZE
	}
	return &params, nil
}

// parseListAuditEventsQuery parses query parameters for GET /audit-events
func parseListAuditEventsQuery(c *gin.Context) (*ListAuditEventsQueryParams, error) {
	var params ListAuditEventsQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	if params.Limit > MAX_PAGE_SIZE {
		params.Limit = MAX_PAGE_SIZE
	}
	return &params, nil
}

// parseListClubMatchesQuery parses query parameters for GET
// /clubs/:id/matches
func parseListClubMatchesQuery(c *gin.Context) (*ListClubMatchesQueryParams, error) {
	var params ListClubMatchesQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	if params.Limit > MAX_PAGE_SIZE {
		params.Limit = MAX_PAGE_SIZE
	}
	return &params, nil
}
