// Package overlap implements the cross-timezone meeting-slot finder: it
// resolves free-text locations to validated zones, enumerates candidate
// windows inside every party's business hours, and renders the accepted
// slots with a shareable booking link.
package overlap

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/Atharvayadav11/sales-tool-email-generator/server/timezone"
)

// Source tags how a location query was mapped to a zone identifier.
type Source int

const (
	// SourceCity means the query matched the curated city table.
	SourceCity Source = iota
	// SourceLiteral means the query itself was used as a zone identifier.
	SourceLiteral
	// SourceDefault means an empty query fell back to UTC.
	SourceDefault
)

// ResolvedParty is one meeting participant with a validated zone.
type ResolvedParty struct {
	// Query is the raw location string this party was resolved from.
	Query string
	// Zone is the canonical IANA zone identifier.
	Zone string
	// Label is the display name used in table headers.
	Label string
	// Source records how Zone was derived from Query.
	Source Source
	// Loc is the loaded location for Zone.
	Loc *time.Location
}

// ResolutionFailure describes a single location that failed validation.
type ResolutionFailure struct {
	Query  string
	Zone   string
	Source Source
	Err    error
}

// Reason renders a caller-facing explanation. A literal passthrough that
// failed is reported as neither a known city nor a valid zone; a curated
// entry that failed points at the zone the table mapped it to.
func (f ResolutionFailure) Reason() string {
	if f.Source == SourceLiteral {
		return fmt.Sprintf("%q is not a recognized city and is not a valid timezone identifier", f.Query)
	}
	return fmt.Sprintf("%q maps to timezone %q, which could not be loaded", f.Query, f.Zone)
}

// ResolutionError aggregates every location that failed validation.
// Resolution is all-or-nothing: one bad zone fails the whole request, and
// the search must not run with a subset of valid parties.
type ResolutionError struct {
	Failures []ResolutionFailure
}

func (e *ResolutionError) Error() string {
	reasons := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		reasons[i] = f.Reason()
	}
	return "invalid timezone: " + strings.Join(reasons, "; ")
}

// ErrNoParticipants is returned when the participant list holds no tokens
// after trimming. Callers treat this as a request error, not a degraded
// result.
var ErrNoParticipants = errors.New("participant list is empty")

// Resolve maps the organizer's declared zone and the comma-delimited
// participant list to validated parties, preserving participant input
// order. The organizer goes through the same city-table-then-literal
// resolution as everyone else.
func Resolve(organizerZone string, participantLocations string) (ResolvedParty, []ResolvedParty, error) {
	tokens := splitLocations(participantLocations)
	if len(tokens) == 0 {
		return ResolvedParty{}, nil, ErrNoParticipants
	}

	var failures []ResolutionFailure

	organizer, fail := resolveOne(organizerZone)
	if fail != nil {
		failures = append(failures, *fail)
	}

	parties := make([]ResolvedParty, 0, len(tokens))
	for _, token := range tokens {
		party, fail := resolveOne(token)
		if fail != nil {
			failures = append(failures, *fail)
			continue
		}
		parties = append(parties, party)
	}

	if len(failures) > 0 {
		return ResolvedParty{}, nil, &ResolutionError{Failures: failures}
	}
	return organizer, parties, nil
}

// resolveOne maps one raw location string to a validated party.
func resolveOne(raw string) (ResolvedParty, *ResolutionFailure) {
	query := strings.TrimSpace(raw)

	party := ResolvedParty{Query: query}
	switch entry, ok := lookupCity(query); {
	case query == "":
		party.Zone = timezone.TimezoneUTC
		party.Label = timezone.TimezoneUTC
		party.Source = SourceDefault
	case ok:
		party.Zone = entry.Zone
		party.Label = entry.Label
		party.Source = SourceCity
	default:
		// Unknown token: treat it as a literal zone identifier so that
		// direct IANA input like "Europe/Oslo" still works.
		party.Zone = query
		party.Label = query
		party.Source = SourceLiteral
	}

	loc, err := timezone.Verify(party.Zone)
	if err != nil {
		return ResolvedParty{}, &ResolutionFailure{
			Query:  query,
			Zone:   party.Zone,
			Source: party.Source,
			Err:    errors.Wrapf(err, "resolving location %q", query),
		}
	}
	party.Loc = loc
	return party, nil
}

// splitLocations splits a comma-delimited location list, trims each token,
// and drops empties while preserving the order of the remainder.
func splitLocations(raw string) []string {
	parts := strings.Split(raw, ",")
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		token := strings.TrimSpace(part)
		if token == "" {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// normalizeCityKey lowercases and collapses a query for table lookup.
func normalizeCityKey(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}
