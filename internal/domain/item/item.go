// Package item holds the catalog side of the platform: the things users
// list for sharing.
package item

import (
	"github.com/peershare/service-sharing/internal/domain"
)

// Item is a shareable thing listed by its owner. The booking core reads
// items but never writes them.
type Item struct {
	id          int64
	ownerID     int64
	name        string
	description string
	available   bool
	requestID   int64 // wishlist request this item answers, 0 if none
}

// New creates a new item listing with validated fields.
func New(ownerID int64, name, description string, available bool, requestID int64) (*Item, error) {
	if name == "" {
		return nil, domain.NewValidationError("item name is required")
	}
	if description == "" {
		return nil, domain.NewValidationError("item description is required")
	}
	return &Item{
		ownerID:     ownerID,
		name:        name,
		description: description,
		available:   available,
		requestID:   requestID,
	}, nil
}

// Reconstruct rebuilds an Item from persistence data (no validation).
func Reconstruct(id, ownerID int64, name, description string, available bool, requestID int64) *Item {
	return &Item{
		id:          id,
		ownerID:     ownerID,
		name:        name,
		description: description,
		available:   available,
		requestID:   requestID,
	}
}

func (i *Item) ID() int64           { return i.id }
func (i *Item) OwnerID() int64      { return i.ownerID }
func (i *Item) Name() string        { return i.name }
func (i *Item) Description() string { return i.description }
func (i *Item) Available() bool     { return i.available }
func (i *Item) RequestID() int64    { return i.requestID }

// IsOwnedBy checks whether the item belongs to the given user.
func (i *Item) IsOwnedBy(userID int64) bool {
	return i.ownerID == userID
}

// Update applies a partial update; empty fields keep their current value.
func (i *Item) Update(name, description string, available *bool) {
	if name != "" {
		i.name = name
	}
	if description != "" {
		i.description = description
	}
	if available != nil {
		i.available = *available
	}
}
