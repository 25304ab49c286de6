package v1

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Atharvayadav11/sales-tool-email-generator/internal/profile"
	"github.com/Atharvayadav11/sales-tool-email-generator/server/scheduler/overlap"
)

func newTestService(t *testing.T) *APIV1Service {
	t.Helper()
	p := &profile.Profile{Mode: "dev"}
	require.NoError(t, p.Validate())
	return NewAPIV1Service(p, nil, nil)
}

func postJSON(t *testing.T, handler echo.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, handler(c))
	return rec
}

func decodePresentation(t *testing.T, rec *httptest.ResponseRecorder) overlap.Presentation {
	t.Helper()
	var p overlap.Presentation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	return p
}

func TestFindMeetingSlotsMissingOrganizerZone(t *testing.T) {
	s := newTestService(t)

	rec := postJSON(t, s.FindMeetingSlots, `{"participantLocations":"london"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "organizerZone is required")
}

func TestFindMeetingSlotsMissingParticipants(t *testing.T) {
	s := newTestService(t)

	rec := postJSON(t, s.FindMeetingSlots, `{"organizerZone":"UTC"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "participantLocations is required")
}

func TestFindMeetingSlotsBlankParticipantListIsRequestError(t *testing.T) {
	s := newTestService(t)

	rec := postJSON(t, s.FindMeetingSlots, `{"organizerZone":"UTC","participantLocations":" , , "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "no locations")
}

func TestFindMeetingSlotsUnresolvableZoneIsDegradedSuccess(t *testing.T) {
	s := newTestService(t)

	rec := postJSON(t, s.FindMeetingSlots,
		`{"organizerZone":"America/New_York","participantLocations":"london, Nowhere City"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	p := decodePresentation(t, rec)
	assert.True(t, p.SlotsTable.Empty)
	assert.Contains(t, p.SlotsTable.Notice, "invalid timezone")
	assert.Contains(t, p.SlotsTable.Notice, "Nowhere City")
	assert.Empty(t, p.BookingLink)
}

func TestFindMeetingSlotsSuccess(t *testing.T) {
	s := newTestService(t)

	rec := postJSON(t, s.FindMeetingSlots,
		`{"organizerZone":"America/New_York","participantLocations":"london","durationMinutes":30}`)
	require.Equal(t, http.StatusOK, rec.Code)

	p := decodePresentation(t, rec)
	assert.Equal(t, []string{"America/New_York", "London"}, p.SlotsTable.Header)
	if !p.SlotsTable.Empty {
		require.NotEmpty(t, p.SlotsTable.Rows)
		for _, row := range p.SlotsTable.Rows {
			assert.Len(t, row, 2)
		}
		assert.NotEmpty(t, p.BookingLink)
	}
}

func TestFindMeetingSlotsDurationDefaults(t *testing.T) {
	s := newTestService(t)

	// Non-numeric duration behaves exactly like an omitted one.
	recDefault := postJSON(t, s.FindMeetingSlots,
		`{"organizerZone":"UTC","participantLocations":"london"}`)
	recGarbage := postJSON(t, s.FindMeetingSlots,
		`{"organizerZone":"UTC","participantLocations":"london","durationMinutes":"soon"}`)

	require.Equal(t, http.StatusOK, recDefault.Code)
	require.Equal(t, http.StatusOK, recGarbage.Code)
	assert.Equal(t,
		decodePresentation(t, recDefault).SlotsTable.Header,
		decodePresentation(t, recGarbage).SlotsTable.Header)
}

func TestFindMeetingSlotsFullDayDuration(t *testing.T) {
	s := newTestService(t)

	rec := postJSON(t, s.FindMeetingSlots,
		`{"organizerZone":"UTC","participantLocations":"london","durationMinutes":480}`)
	require.Equal(t, http.StatusOK, rec.Code)

	p := decodePresentation(t, rec)
	assert.True(t, p.SlotsTable.Empty)
	assert.Equal(t, overlap.EmptyNotice, p.SlotsTable.Notice)
	assert.Empty(t, p.BookingLink)
}

func TestFindMeetingSlotsStringDuration(t *testing.T) {
	s := newTestService(t)

	rec := postJSON(t, s.FindMeetingSlots,
		`{"organizerZone":"UTC","participantLocations":"london","durationMinutes":"60"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCoerceDuration(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want int
	}{
		{name: "nil defaults", raw: nil, want: overlap.DefaultDurationMinutes},
		{name: "number", raw: float64(45), want: 45},
		{name: "numeric string", raw: "45", want: 45},
		{name: "padded numeric string", raw: " 45 ", want: 45},
		{name: "garbage string defaults", raw: "soon", want: overlap.DefaultDurationMinutes},
		{name: "bool defaults", raw: true, want: overlap.DefaultDurationMinutes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, coerceDuration(tt.raw))
		})
	}
}

func TestFindMeetingSlotsInternalFaultIsDegradedSuccess(t *testing.T) {
	s := newTestService(t)
	// A nil finder makes the pipeline panic on the first search; the
	// handler must absorb that into a renderable 200, never a crash.
	s.Finder = nil

	rec := postJSON(t, s.FindMeetingSlots,
		`{"organizerZone":"America/New_York","participantLocations":"london"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	p := decodePresentation(t, rec)
	assert.True(t, p.SlotsTable.Empty)
	assert.Contains(t, p.SlotsTable.Notice, "internal error")
	assert.Empty(t, p.BookingLink)
}
