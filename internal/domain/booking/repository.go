package booking

import "context"

// Repository defines the persistence contract for bookings (the Booking
// Store). Implementations assign ids on Save; the domain layer never
// generates them.
type Repository interface {
	// Save persists a new booking and returns it with its assigned id.
	// The insert and the storage-level interval constraint run in one
	// transaction so two racing creations cannot both commit overlapping
	// WAITING/APPROVED intervals for the same item.
	Save(ctx context.Context, b *Booking) (*Booking, error)

	// Update persists a status change to an existing booking.
	Update(ctx context.Context, b *Booking) error

	// FindByID retrieves a booking by its identifier.
	FindByID(ctx context.Context, id int64) (*Booking, error)

	// FindByBookerID retrieves a booker's bookings, optionally narrowed to
	// a status subset. A nil subset fetches everything.
	FindByBookerID(ctx context.Context, bookerID int64, statuses []Status) ([]*Booking, error)

	// FindByItemIDs retrieves the bookings of a set of items, optionally
	// narrowed to a status subset. A nil subset fetches everything.
	FindByItemIDs(ctx context.Context, itemIDs []int64, statuses []Status) ([]*Booking, error)
}
