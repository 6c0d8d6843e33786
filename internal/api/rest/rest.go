package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/pitchside/consolidator/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Discrepancy endpoints (public read access)
		v1.GET("/discrepancies", handler.ListDiscrepancies)
		v1.GET("/discrepancies/:id", handler.GetDiscrepancy)

		// Manual override (requires API key authentication)
		v1.POST("/discrepancies/:id/override", middleware.APIKeyAuth(authCfg), handler.OverrideDiscrepancy)

		// Headline audit state (public read access)
		v1.GET("/summary", handler.GetSummary)

		// Ingestion run endpoints (public read access)
		v1.GET("/runs", handler.ListRuns)

		// Audit journal endpoint (public read access, cursor pagination)
		v1.GET("/audit-events", handler.ListAuditEvents)

		// Club endpoints (public read access)
		v1.GET("/clubs/:id/matches", handler.ListClubMatches)
		v1.GET("/clubs/:id/tiers", handler.GetClubTierHistory)
		v1.GET("/clubs/:id/record", handler.GetClubRecord)
	}
}
