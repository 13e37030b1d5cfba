package events

import "time"

// Topics.
const (
	// TopicBookingEvents carries the booking lifecycle events this service
	// publishes.
	TopicBookingEvents = "booking.events"
	// TopicCancellations carries cancellation requests produced by the
	// external cancellation flow; this service only consumes it.
	TopicCancellations = "booking.cancellations"
)

// Event types.
const (
	BookingRequested      = "booking.requested"
	BookingApproved       = "booking.approved"
	BookingRejected       = "booking.rejected"
	BookingCanceled       = "booking.canceled"
	CommentAdded          = "booking.comment_added"
	CancellationRequested = "booking.cancellation_requested"
)

// BookingRequestedEvent is published when a booking is created.
type BookingRequestedEvent struct {
	BookingID  int64     `json:"booking_id"`
	ItemID     int64     `json:"item_id"`
	BookerID   int64     `json:"booker_id"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BookingDecidedEvent is published when the owner approves or rejects a
// booking; Type distinguishes the two.
type BookingDecidedEvent struct {
	BookingID  int64     `json:"booking_id"`
	ItemID     int64     `json:"item_id"`
	OwnerID    int64     `json:"owner_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BookingCanceledEvent is published after a cancellation request has been
// applied.
type BookingCanceledEvent struct {
	BookingID  int64     `json:"booking_id"`
	CanceledBy int64     `json:"canceled_by"`
	OccurredAt time.Time `json:"occurred_at"`
}

// CancellationRequestedEvent is the inbound payload on TopicCancellations.
type CancellationRequestedEvent struct {
	BookingID  int64     `json:"booking_id"`
	CanceledBy int64     `json:"canceled_by"`
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurred_at"`
}

// CommentAddedEvent is published when a review lands on an item.
type CommentAddedEvent struct {
	CommentID  int64     `json:"comment_id"`
	ItemID     int64     `json:"item_id"`
	AuthorID   int64     `json:"author_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
