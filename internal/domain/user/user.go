// Package user holds the identity side of the platform. The booking core
// only ever reads users for existence and ownership comparisons.
package user

import (
	"context"
	"strings"

	"github.com/peershare/service-sharing/internal/domain"
)

// User is a registered participant, identified by a unique email.
type User struct {
	ID    int64
	Name  string
	Email string
}

// New creates a user with validated fields.
func New(name, email string) (*User, error) {
	if name == "" {
		return nil, domain.NewValidationError("user name is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.NewValidationError("a valid user email is required")
	}
	return &User{Name: name, Email: email}, nil
}

// Repository defines the persistence contract for users (the Identity Store).
type Repository interface {
	// Save persists a new user and returns it with its assigned id.
	// Saving a duplicate email fails with a conflict.
	Save(ctx context.Context, u *User) (*User, error)

	// Update persists changes to an existing user.
	Update(ctx context.Context, u *User) error

	// FindByID retrieves a user by id.
	FindByID(ctx context.Context, id int64) (*User, error)

	// FindByIDs retrieves several users at once.
	FindByIDs(ctx context.Context, ids []int64) ([]*User, error)

	// FindAll retrieves all users ordered by id.
	FindAll(ctx context.Context) ([]*User, error)

	// ExistsByID reports whether a user exists.
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// Delete removes a user.
	Delete(ctx context.Context, id int64) error
}
