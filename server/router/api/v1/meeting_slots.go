package v1

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	svcerrors "github.com/Atharvayadav11/sales-tool-email-generator/server/internal/errors"
	"github.com/Atharvayadav11/sales-tool-email-generator/server/internal/observability"
	"github.com/Atharvayadav11/sales-tool-email-generator/server/scheduler/overlap"
)

// FindMeetingSlotsRequest is the body of POST /api/v1/meeting-slots.
// DurationMinutes is accepted as a JSON number or string; anything that
// does not parse falls back to the 30-minute default.
type FindMeetingSlotsRequest struct {
	OrganizerZone        string `json:"organizerZone"`
	ParticipantLocations string `json:"participantLocations"`
	DurationMinutes      any    `json:"durationMinutes"`
}

// FindMeetingSlots computes candidate meeting windows that fall inside
// the 09:00-17:00 band simultaneously for the organizer and every
// participant over the next three days.
//
// Error policy, deliberately asymmetric: a missing required field is a
// 400 before any computation; a resolvable-but-invalid zone is a 200
// whose table explains the problem and whose booking link is empty, so
// UI callers always get something renderable.
// POST /api/v1/meeting-slots
func (s *APIV1Service) FindMeetingSlots(c echo.Context) (err error) {
	reqCtx := observability.NewRequestContext(s.logger, "meeting_slots")
	observability.GlobalMetrics().RecordRequest(reqCtx.Endpoint)
	defer func() {
		observability.GlobalMetrics().RecordDuration(reqCtx.Endpoint, reqCtx.Duration())
	}()

	// Unexpected faults inside the pipeline become a degraded 200, not
	// a crash and not a 5xx.
	defer func() {
		if r := recover(); r != nil {
			reqCtx.Warn("slot search recovered from panic",
				slog.String(observability.LogFieldErrorCode, string(svcerrors.ErrCodeInternal)),
				slog.Any("panic", r))
			observability.GlobalMetrics().RecordFailure(reqCtx.Endpoint)
			err = c.JSON(http.StatusOK, overlap.Degraded("An internal error occurred while searching for slots."))
		}
	}()

	var req FindMeetingSlotsRequest
	if bindErr := c.Bind(&req); bindErr != nil {
		observability.GlobalMetrics().RecordFailure(reqCtx.Endpoint)
		return c.JSON(http.StatusBadRequest, errorBody(svcerrors.InvalidArgument("request body must be valid JSON")))
	}

	if strings.TrimSpace(req.OrganizerZone) == "" {
		observability.GlobalMetrics().RecordFailure(reqCtx.Endpoint)
		return c.JSON(http.StatusBadRequest, errorBody(svcerrors.InvalidArgument("organizerZone is required")))
	}
	if strings.TrimSpace(req.ParticipantLocations) == "" {
		observability.GlobalMetrics().RecordFailure(reqCtx.Endpoint)
		return c.JSON(http.StatusBadRequest, errorBody(svcerrors.InvalidArgument("participantLocations is required")))
	}

	organizer, parties, resolveErr := overlap.Resolve(req.OrganizerZone, req.ParticipantLocations)
	if resolveErr != nil {
		if errors.Is(resolveErr, overlap.ErrNoParticipants) {
			observability.GlobalMetrics().RecordFailure(reqCtx.Endpoint)
			return c.JSON(http.StatusBadRequest, errorBody(svcerrors.InvalidArgument("participantLocations contains no locations")))
		}
		// Unresolvable zones are a valid, explained empty result.
		reqCtx.Info("zone resolution failed",
			slog.String(observability.LogFieldErrorCode, string(svcerrors.ErrCodeZoneUnresolvable)),
			slog.String("detail", resolveErr.Error()))
		return c.JSON(http.StatusOK, overlap.Degraded(resolveErr.Error()))
	}

	duration := coerceDuration(req.DurationMinutes)
	slots := s.Finder.FindSlots(organizer, parties, duration, overlap.DefaultHorizonDays)
	payload := overlap.Format(organizer, parties, slots, s.Profile.SchedulingURL)

	reqCtx.Info("slot search completed",
		slog.Int(observability.LogFieldParties, len(parties)),
		slog.Int(observability.LogFieldSlots, len(slots)),
		slog.Int64(observability.LogFieldDuration, reqCtx.DurationMs()))

	return c.JSON(http.StatusOK, payload)
}

// coerceDuration turns the loosely-typed durationMinutes field into
// minutes, defaulting when it is absent or not a usable number.
func coerceDuration(raw any) int {
	switch v := raw.(type) {
	case nil:
		return overlap.DefaultDurationMinutes
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return overlap.DefaultDurationMinutes
		}
		return n
	default:
		return overlap.DefaultDurationMinutes
	}
}

// errorBody renders a coded error as a client-facing JSON body without
// leaking internal error text.
func errorBody(err *svcerrors.ServiceError) map[string]string {
	return map[string]string{
		"code":    string(err.Code),
		"message": err.Message,
	}
}
