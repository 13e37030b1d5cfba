package booking

import "fmt"

// Status represents the lifecycle state of a booking.
type Status string

const (
	// StatusWaiting is the initial status, set unconditionally at creation.
	StatusWaiting Status = "WAITING"
	// StatusApproved is set by the item's owner through Decide.
	StatusApproved Status = "APPROVED"
	// StatusRejected is set by the item's owner through Decide. A rejected
	// booking may still be re-decided while it has not started.
	StatusRejected Status = "REJECTED"
	// StatusCanceled is only ever written by the external cancellation
	// flow (see the events package); no booking API operation produces it.
	StatusCanceled Status = "CANCELED"
)

// validTransitions defines the state machine for booking status transitions.
var validTransitions = map[Status][]Status{
	StatusWaiting:  {StatusApproved, StatusRejected, StatusCanceled},
	StatusApproved: {StatusCanceled},
	StatusRejected: {StatusApproved, StatusRejected},
	StatusCanceled: {},
}

// IsValid returns true if the status is a recognized booking status.
func (s Status) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

// CanTransitionTo returns true if a transition from this status to the target is allowed.
func (s Status) CanTransitionTo(target Status) bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible from this status.
func (s Status) IsTerminal() bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return true
	}
	return len(allowed) == 0
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// ParseStatus converts a string to a Status, returning an error if invalid.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid booking status: %s", s)
	}
	return status, nil
}
