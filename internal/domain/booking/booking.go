package booking

import (
	"time"

	"github.com/peershare/service-sharing/internal/domain"
)

// Booking is the aggregate root for the booking domain. A booking reserves
// an item for a half-open time interval [start, end). After creation only
// the status field ever changes; bookings are never deleted.
type Booking struct {
	id       int64
	itemID   int64
	bookerID int64
	status   Status
	start    time.Time
	end      time.Time
}

// ValidateInterval checks the creation-time interval rules: both bounds set,
// neither in the past, end strictly after start.
func ValidateInterval(start, end, now time.Time) error {
	if start.IsZero() || end.IsZero() {
		return domain.NewIncorrectTimeError("booking start and end must both be set")
	}
	if start.Before(now) || end.Before(now) {
		return domain.NewIncorrectTimeError("booking dates must not be in the past")
	}
	if !end.After(start) {
		return domain.NewIncorrectTimeError("booking end must be strictly after start")
	}
	return nil
}

// New creates a booking request for an item. The status is forced to
// WAITING regardless of anything the caller may have supplied.
func New(itemID, bookerID int64, start, end, now time.Time) (*Booking, error) {
	if err := ValidateInterval(start, end, now); err != nil {
		return nil, err
	}
	return &Booking{
		itemID:   itemID,
		bookerID: bookerID,
		status:   StatusWaiting,
		start:    start,
		end:      end,
	}, nil
}

// Reconstruct rebuilds a Booking from persistence data (no validation).
func Reconstruct(id, itemID, bookerID int64, status Status, start, end time.Time) *Booking {
	return &Booking{
		id:       id,
		itemID:   itemID,
		bookerID: bookerID,
		status:   status,
		start:    start,
		end:      end,
	}
}

// ID returns the booking's identifier, assigned by the persistence layer.
func (b *Booking) ID() int64 { return b.id }

// ItemID returns the identifier of the booked item.
func (b *Booking) ItemID() int64 { return b.itemID }

// BookerID returns the identifier of the user who requested the booking.
func (b *Booking) BookerID() int64 { return b.bookerID }

// Status returns the current booking status.
func (b *Booking) Status() Status { return b.status }

// Start returns the inclusive start of the booked interval.
func (b *Booking) Start() time.Time { return b.start }

// End returns the exclusive end of the booked interval.
func (b *Booking) End() time.Time { return b.end }

// IsBookedBy checks whether the booking belongs to the given booker.
func (b *Booking) IsBookedBy(userID int64) bool { return b.bookerID == userID }

// EnsureDecidable checks the guards for an approval/rejection decision: an
// approved booking can never be re-decided in either direction, and no
// decision is possible once the booked interval has started. The caller
// checks decision authority separately.
func (b *Booking) EnsureDecidable(now time.Time) error {
	if b.status == StatusApproved {
		return domain.NewUnavailableError("booking with id = %d is already approved and cannot be re-decided", b.id)
	}
	if b.start.Before(now) {
		return domain.NewIncorrectTimeError("booking with id = %d has already started", b.id)
	}
	return nil
}

// Decide applies the owner's approval or rejection.
func (b *Booking) Decide(approved bool, now time.Time) error {
	if err := b.EnsureDecidable(now); err != nil {
		return err
	}
	if approved {
		b.status = StatusApproved
	} else {
		b.status = StatusRejected
	}
	return nil
}

// Cancel moves the booking to CANCELED on behalf of the external
// cancellation flow.
func (b *Booking) Cancel() error {
	if !b.status.CanTransitionTo(StatusCanceled) {
		return domain.NewUnavailableError("booking with id = %d cannot be cancelled from status %s", b.id, b.status)
	}
	b.status = StatusCanceled
	return nil
}

// FinishedApprovedBy reports whether this booking is a completed, approved
// rental of the given item by the given user. The comment subsystem uses
// this fact to gate review eligibility.
func (b *Booking) FinishedApprovedBy(userID, itemID int64, now time.Time) bool {
	return b.bookerID == userID &&
		b.itemID == itemID &&
		b.status == StatusApproved &&
		b.end.Before(now)
}
