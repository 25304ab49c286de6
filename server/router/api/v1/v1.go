// Package v1 exposes the sales tool's HTTP API: the cross-timezone
// meeting-slot finder and the prompt-templated email generators.
package v1

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/Atharvayadav11/sales-tool-email-generator/internal/profile"
	"github.com/Atharvayadav11/sales-tool-email-generator/server/ai"
	"github.com/Atharvayadav11/sales-tool-email-generator/server/scheduler/overlap"
)

// APIV1Service wires the v1 handlers to their collaborators. Nothing in
// here retains per-request state.
type APIV1Service struct {
	Profile  *profile.Profile
	Provider ai.ChatProvider
	Finder   *overlap.Finder

	logger *slog.Logger
}

// NewAPIV1Service creates the v1 API surface. Provider may be nil when
// no LLM credentials are configured; the generation endpoints then
// report unavailability while the slot finder keeps working.
func NewAPIV1Service(p *profile.Profile, provider ai.ChatProvider, logger *slog.Logger) *APIV1Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &APIV1Service{
		Profile:  p,
		Provider: provider,
		Finder:   overlap.NewFinder(),
		logger:   logger,
	}
}

// Register mounts the v1 routes on the given echo instance.
func (s *APIV1Service) Register(e *echo.Echo) {
	g := e.Group("/api/v1")
	g.POST("/meeting-slots", s.FindMeetingSlots)
	g.POST("/emails/cold", s.GenerateColdEmail)
	g.POST("/emails/followup", s.GenerateFollowupEmail)
	g.GET("/system/metrics", s.GetSystemMetrics)
}
