// Package timezone provides timezone utilities for the sales tool.
//
// This package handles IANA zone parsing, validation, and local-time
// formatting so that every component converts and renders times the
// same way.
package timezone

import (
	"fmt"
	"time"
)

// UTC is the coordinated universal time timezone.
var UTC = time.UTC

// SlotTimeLayout is the layout used when rendering a slot timestamp in a
// party's local time.
const SlotTimeLayout = "2006-01-02 15:04 MST"

// ParseTimezone parses an IANA timezone identifier (e.g., "Asia/Tokyo").
// If the timezone is invalid, returns UTC and an error.
func ParseTimezone(tz string) (*time.Location, error) {
	if tz == "" || tz == "UTC" {
		return UTC, nil
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return UTC, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}

	return loc, nil
}

// MustParseTimezone parses a timezone or panics if invalid.
// Use this for constants that are known to be valid at compile time.
func MustParseTimezone(tz string) *time.Location {
	loc, err := ParseTimezone(tz)
	if err != nil {
		panic(err)
	}
	return loc
}

// Verify confirms that a zone identifier is usable for local-time
// conversion by loading it and constructing a current zoned time in it.
// This is the validation gate every party passes before slot search.
func Verify(tz string) (*time.Location, error) {
	loc, err := ParseTimezone(tz)
	if err != nil {
		return nil, err
	}
	// Constructing a zoned "now" exercises the location data itself.
	_ = time.Now().In(loc)
	return loc, nil
}

// FormatSlot renders an instant as a local timestamp in the given zone.
func FormatSlot(t time.Time, tz *time.Location) string {
	if tz == nil {
		tz = UTC
	}
	return t.In(tz).Format(SlotTimeLayout)
}

// Common timezone constants used across tests and the curated city table.
const (
	// TimezoneUTC is the UTC timezone identifier
	TimezoneUTC = "UTC"

	// TimezoneAmericaNewYork is the Eastern Time timezone
	TimezoneAmericaNewYork = "America/New_York"

	// TimezoneEuropeLondon is the GMT/BST timezone
	TimezoneEuropeLondon = "Europe/London"

	// TimezoneAsiaTokyo is the Japan Standard Time timezone
	TimezoneAsiaTokyo = "Asia/Tokyo"

	// TimezoneAustraliaSydney is the AEST/AEDT timezone
	TimezoneAustraliaSydney = "Australia/Sydney"
)
