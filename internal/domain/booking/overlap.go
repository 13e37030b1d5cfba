package booking

import "time"

// Overlaps reports whether the half-open intervals [s1, e1) and [s2, e2)
// intersect. Exactly touching endpoints (e1 == s2 or e2 == s1) do not
// count as an overlap, so back-to-back bookings are allowed.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// ConflictsWith reports whether a proposed interval [start, end) collides
// with any of the given bookings. Callers pass the item's existing bookings
// already narrowed to the statuses that block the calendar (WAITING and
// APPROVED); the check itself runs only at creation time.
func ConflictsWith(start, end time.Time, existing []*Booking) bool {
	for _, b := range existing {
		if Overlaps(start, end, b.start, b.end) {
			return true
		}
	}
	return false
}

// BlockingStatuses is the status subset that makes a booking occupy its
// item's calendar for conflict purposes.
func BlockingStatuses() []Status {
	return []Status{StatusWaiting, StatusApproved}
}
