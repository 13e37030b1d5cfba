package booking

import "time"

// Summary is the lightweight projection of a booking attached to item
// display records. It is derived, never persisted.
type Summary struct {
	ID       int64     `json:"id"`
	BookerID int64     `json:"bookerId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

// ItemProjection carries the derived last/next booking view for one item.
type ItemProjection struct {
	Last *Summary `json:"lastBooking,omitempty"`
	Next *Summary `json:"nextBooking,omitempty"`
}

func summarize(b *Booking) *Summary {
	return &Summary{ID: b.id, BookerID: b.bookerID, Start: b.start, End: b.end}
}

// ProjectForItems groups a flat booking list (pre-fetched for many items
// with statuses WAITING/APPROVED) by item id and reduces each group to its
// last/next view. One bulk fetch plus this in-memory grouping replaces a
// per-item query.
//
//   - next: among bookings with start > now, the earliest start.
//   - last: among APPROVED bookings with end < now, the latest end;
//     if none, the current APPROVED booking (start < now < end) stands in.
func ProjectForItems(bookings []*Booking, now time.Time) map[int64]ItemProjection {
	byItem := make(map[int64][]*Booking)
	for _, b := range bookings {
		byItem[b.itemID] = append(byItem[b.itemID], b)
	}

	projections := make(map[int64]ItemProjection, len(byItem))
	for itemID, group := range byItem {
		projections[itemID] = ItemProjection{
			Last: lastBooking(group, now),
			Next: nextBooking(group, now),
		}
	}
	return projections
}

func nextBooking(group []*Booking, now time.Time) *Summary {
	var next *Booking
	for _, b := range group {
		if !b.start.After(now) {
			continue
		}
		if next == nil || b.start.Before(next.start) {
			next = b
		}
	}
	if next == nil {
		return nil
	}
	return summarize(next)
}

func lastBooking(group []*Booking, now time.Time) *Summary {
	var last *Booking
	for _, b := range group {
		if b.status != StatusApproved || !b.end.Before(now) {
			continue
		}
		if last == nil || b.end.After(last.end) {
			last = b
		}
	}
	if last == nil {
		last = currentBooking(group, now)
	}
	if last == nil {
		return nil
	}
	return summarize(last)
}

// currentBooking picks the APPROVED booking covering now. The conflict
// checker should make more than one impossible; the latest start wins if
// storage contains overlapping rows anyway.
func currentBooking(group []*Booking, now time.Time) *Booking {
	var current *Booking
	for _, b := range group {
		if b.status != StatusApproved || !b.start.Before(now) || !b.end.After(now) {
			continue
		}
		if current == nil || b.start.After(current.start) {
			current = b
		}
	}
	return current
}
