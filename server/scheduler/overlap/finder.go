package overlap

import (
	"time"

	"github.com/Atharvayadav11/sales-tool-email-generator/server/timezone"
)

// Business window policy applied uniformly to every party's local clock.
// Per-party custom hours are deliberately not supported.
const (
	BusinessStartHour = 9
	BusinessEndHour   = 17

	// DefaultDurationMinutes is used when the requested duration is
	// absent or not a usable number.
	DefaultDurationMinutes = 30

	// DefaultHorizonDays is how many calendar days ahead of "now" the
	// search covers.
	DefaultHorizonDays = 3
)

// AcceptedSlot is one meeting window that falls inside the business
// window of the organizer and every participant simultaneously.
type AcceptedSlot struct {
	// Start is the window start as an organizer-zoned instant.
	Start time.Time
	// Duration is the meeting length.
	Duration time.Duration
	// OrganizerLocal is Start rendered in the organizer's local time.
	OrganizerLocal string
	// PartyLocal holds Start rendered in each participant's local time,
	// in participant input order.
	PartyLocal []string
}

// Finder enumerates hour-granularity candidate windows over the horizon
// and keeps those acceptable to every party. It holds no per-request
// state; a single Finder serves all requests.
type Finder struct {
	now func() time.Time
}

// NewFinder creates a finder anchored to the wall clock.
func NewFinder() *Finder {
	return &Finder{now: time.Now}
}

// FindSlots searches the organizer's business day at hour granularity for
// each day offset in [0, horizonDays), relative to "now" in the
// organizer's zone. Candidate start hours run from 9 up to but not
// including 17 minus the duration rounded up to whole hours: a sub-hour
// meeting's last candidate starts at 15:00, and an 8-hour meeting has no
// candidates at all. Results are chronological by organizer-local start,
// day-major then hour-minor. Non-positive duration or horizon fall back
// to the defaults.
func (f *Finder) FindSlots(organizer ResolvedParty, parties []ResolvedParty, durationMinutes int, horizonDays int) []AcceptedSlot {
	if durationMinutes <= 0 {
		durationMinutes = DefaultDurationMinutes
	}
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}

	duration := time.Duration(durationMinutes) * time.Minute
	// Upper bound on candidate start hours, counting partial hours as
	// whole ones. The bound is exclusive: an 8-hour meeting leaves no
	// candidate hours at all.
	maxStartHour := BusinessEndHour - (durationMinutes+59)/60

	slots := make([]AcceptedSlot, 0)
	base := f.now().In(organizer.Loc)

	for d := 0; d < horizonDays; d++ {
		day := base.AddDate(0, 0, d)
		for hour := BusinessStartHour; hour < maxStartHour; hour++ {
			start := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, organizer.Loc)
			end := start.Add(duration)

			if !fitsAllParties(parties, start, end) {
				continue
			}

			slot := AcceptedSlot{
				Start:          start,
				Duration:       duration,
				OrganizerLocal: timezone.FormatSlot(start, organizer.Loc),
				PartyLocal:     make([]string, 0, len(parties)),
			}
			for _, p := range parties {
				slot.PartyLocal = append(slot.PartyLocal, timezone.FormatSlot(start, p.Loc))
			}
			slots = append(slots, slot)
		}
	}
	return slots
}

// fitsAllParties reports whether the window is acceptable to every
// participant. The organizer's own window passes by construction.
func fitsAllParties(parties []ResolvedParty, start, end time.Time) bool {
	for _, p := range parties {
		if !fitsBusinessWindow(p, start, end) {
			return false
		}
	}
	return true
}

// fitsBusinessWindow reports whether the window, projected into the
// party's zone, lands inside the 09:00-17:00 band. The comparison is
// hour-granular at both edges: a window ending 17:30 local still passes
// because only the end hour is compared. Minute-exact checking would
// reject windows callers have historically been offered, so the looser
// rule stands.
func fitsBusinessWindow(p ResolvedParty, start, end time.Time) (ok bool) {
	// A faulty projection disqualifies this candidate instead of
	// failing the whole search.
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	localStart := start.In(p.Loc)
	localEnd := end.In(p.Loc)
	return localStart.Hour() >= BusinessStartHour && localEnd.Hour() <= BusinessEndHour
}
