package item

import "context"

// Repository defines the persistence contract for items (the Catalog Store).
type Repository interface {
	// Save persists a new item and returns it with its assigned id.
	Save(ctx context.Context, i *Item) (*Item, error)

	// Update persists changes to an existing item.
	Update(ctx context.Context, i *Item) error

	// FindByID retrieves an item by its identifier.
	FindByID(ctx context.Context, id int64) (*Item, error)

	// FindByIDs retrieves several items at once.
	FindByIDs(ctx context.Context, ids []int64) ([]*Item, error)

	// FindByOwnerID retrieves all items owned by a user, ordered by id.
	FindByOwnerID(ctx context.Context, ownerID int64) ([]*Item, error)

	// FindByRequestIDs retrieves the items answering a set of wishlist requests.
	FindByRequestIDs(ctx context.Context, requestIDs []int64) ([]*Item, error)

	// Search finds available items whose name or description matches the
	// text, case-insensitively.
	Search(ctx context.Context, text string) ([]*Item, error)

	// Delete removes an item listing.
	Delete(ctx context.Context, id int64) error
}
