package overlap

import (
	"net/url"
	"strconv"
	"time"
)

// DefaultBookingBase is the external scheduling-link template the booking
// link is derived from when no override is configured.
const DefaultBookingBase = "https://scheduler.example.com/book"

// EmptyNotice is the explanatory row shown when no window overlaps.
const EmptyNotice = "No overlapping business-hours slot found within the next 3 days."

// SlotsTable is the rendered tabular structure returned to the caller.
// When Empty is true the table carries a single Notice row spanning all
// columns instead of slot rows.
type SlotsTable struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
	Empty  bool       `json:"empty"`
	Notice string     `json:"notice,omitempty"`
}

// Presentation is the response payload for a slot search. It is always
// renderable: degraded outcomes carry an explanatory notice rather than
// an error shape.
type Presentation struct {
	SlotsTable  SlotsTable `json:"slotsTable"`
	BookingLink string     `json:"bookingLink"`
}

// Format renders the accepted slots as a table with one header column for
// the organizer and one per participant in input order, plus a booking
// link derived from the earliest slot. Zero accepted slots produce the
// empty-state table and an empty link. Format performs no validation;
// upstream contracts are assumed to hold.
func Format(organizer ResolvedParty, parties []ResolvedParty, slots []AcceptedSlot, bookingBase string) Presentation {
	header := make([]string, 0, len(parties)+1)
	header = append(header, organizer.Label)
	for _, p := range parties {
		header = append(header, p.Label)
	}

	if len(slots) == 0 {
		return Presentation{
			SlotsTable: SlotsTable{Header: header, Rows: [][]string{}, Empty: true, Notice: EmptyNotice},
		}
	}

	rows := make([][]string, 0, len(slots))
	for _, slot := range slots {
		row := make([]string, 0, len(slot.PartyLocal)+1)
		row = append(row, slot.OrganizerLocal)
		row = append(row, slot.PartyLocal...)
		rows = append(rows, row)
	}

	return Presentation{
		SlotsTable:  SlotsTable{Header: header, Rows: rows},
		BookingLink: BookingLink(bookingBase, organizer, slots[0]),
	}
}

// Degraded renders the degraded-success payload used when resolution
// fails or an internal fault was absorbed: an empty table whose notice
// explains why, and no booking link.
func Degraded(message string) Presentation {
	return Presentation{
		SlotsTable: SlotsTable{Rows: [][]string{}, Empty: true, Notice: message},
	}
}

// BookingLink encodes the organizer zone, the slot start as an ISO
// instant, and the duration in minutes as query parameters of the
// scheduling-link template.
func BookingLink(base string, organizer ResolvedParty, slot AcceptedSlot) string {
	if base == "" {
		base = DefaultBookingBase
	}
	u, err := url.Parse(base)
	if err != nil {
		return ""
	}

	q := u.Query()
	q.Set("zone", organizer.Zone)
	q.Set("start", slot.Start.UTC().Format(time.RFC3339))
	q.Set("duration", strconv.Itoa(int(slot.Duration.Minutes())))
	u.RawQuery = q.Encode()
	return u.String()
}
