// Package request holds the wishlist subsystem: users describing an item
// they would like someone to list. Unrelated to booking logic.
package request

import (
	"context"
	"time"

	"github.com/peershare/service-sharing/internal/domain"
)

// ItemRequest is a wish for an item not yet in the catalog. Items created
// later may reference the request they answer.
type ItemRequest struct {
	ID          int64
	RequestorID int64
	Description string
	Created     time.Time
}

// New creates an item request with validated fields.
func New(requestorID int64, description string, created time.Time) (*ItemRequest, error) {
	if description == "" {
		return nil, domain.NewValidationError("request description is required")
	}
	return &ItemRequest{RequestorID: requestorID, Description: description, Created: created}, nil
}

// Repository defines the persistence contract for item requests.
type Repository interface {
	// Save persists a new request and returns it with its assigned id.
	Save(ctx context.Context, r *ItemRequest) (*ItemRequest, error)

	// FindByID retrieves a request by id.
	FindByID(ctx context.Context, id int64) (*ItemRequest, error)

	// FindByRequestorID retrieves a user's own requests, newest first.
	FindByRequestorID(ctx context.Context, requestorID int64) ([]*ItemRequest, error)

	// FindOthers retrieves other users' requests, newest first, paginated.
	FindOthers(ctx context.Context, requestorID int64, offset, limit int) ([]*ItemRequest, error)
}
