// Package comment holds post-rental reviews. Eligibility is gated on the
// booking core's completed-rental fact, not decided here.
package comment

import (
	"context"
	"time"

	"github.com/peershare/service-sharing/internal/domain"
)

// Comment is a review left on an item by a user who finished renting it.
type Comment struct {
	ID       int64
	ItemID   int64
	AuthorID int64
	Text     string
	Created  time.Time
}

// New creates a comment with validated fields.
func New(itemID, authorID int64, text string, created time.Time) (*Comment, error) {
	if text == "" {
		return nil, domain.NewValidationError("comment text is required")
	}
	return &Comment{ItemID: itemID, AuthorID: authorID, Text: text, Created: created}, nil
}

// Repository defines the persistence contract for comments.
type Repository interface {
	// Save persists a new comment and returns it with its assigned id.
	Save(ctx context.Context, c *Comment) (*Comment, error)

	// FindByItemID retrieves all comments on one item.
	FindByItemID(ctx context.Context, itemID int64) ([]*Comment, error)

	// FindByItemIDs retrieves all comments on a set of items.
	FindByItemIDs(ctx context.Context, itemIDs []int64) ([]*Comment, error)
}
