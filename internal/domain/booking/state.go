package booking

import (
	"sort"
	"strings"
	"time"

	"github.com/peershare/service-sharing/internal/domain"
)

// State is a query-side bucket for listing bookings. It is distinct from
// Status: a State selects a status subset plus an optional wall-clock
// predicate.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

// ParseState converts a request string to a State, case-insensitively.
// An empty string defaults to ALL; anything unrecognized fails before the
// query engine is ever reached.
func ParseState(s string) (State, error) {
	if s == "" {
		return StateAll, nil
	}
	switch st := State(strings.ToUpper(s)); st {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return st, nil
	default:
		return "", domain.NewStateError("Unknown state: %s", strings.ToUpper(s))
	}
}

// Statuses returns the status subset fetched from storage for this state.
// A nil result means no status filtering at all (ALL).
func (s State) Statuses() []Status {
	switch s {
	case StateCurrent:
		return []Status{StatusApproved, StatusRejected, StatusWaiting, StatusCanceled}
	case StateFuture:
		return []Status{StatusApproved, StatusWaiting}
	case StatePast:
		return []Status{StatusApproved, StatusRejected, StatusCanceled}
	case StateRejected:
		return []Status{StatusRejected, StatusCanceled}
	case StateWaiting:
		return []Status{StatusWaiting}
	default:
		return nil
	}
}

// Matches applies the state's wall-clock predicate to a booking.
// Status-only states (ALL, WAITING, REJECTED) match everything fetched.
func (s State) Matches(b *Booking, now time.Time) bool {
	switch s {
	case StateCurrent:
		return b.start.Before(now) && b.end.After(now)
	case StateFuture:
		return b.start.After(now)
	case StatePast:
		return b.end.Before(now)
	default:
		return true
	}
}

// Bucket filters the fetched bookings by the state's time predicate, sorts
// the survivors by start descending and applies offset/limit pagination.
// Filtering happens before pagination, so page boundaries reflect the
// post-filter cardinality.
func Bucket(bookings []*Booking, state State, now time.Time, offset, limit int) []*Booking {
	filtered := make([]*Booking, 0, len(bookings))
	for _, b := range bookings {
		if state.Matches(b, now) {
			filtered = append(filtered, b)
		}
	}
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].start.After(filtered[j].start)
	})
	if offset >= len(filtered) {
		return []*Booking{}
	}
	filtered = filtered[offset:]
	if limit > 0 && limit < len(filtered) {
		filtered = filtered[:limit]
	}
	return filtered
}
