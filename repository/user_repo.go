package repository

import (
	"context"
	"errors"
	"fmt"

	"givebridge/models"
)

// ErrDuplicate is returned when a unique index (user email, NGO name) rejects a write.
var ErrDuplicate = errors.New("duplicate key")

// ErrDuplicateNGO is the ErrDuplicate raised by the unique NGO name.
var ErrDuplicateNGO = fmt.Errorf("%w: ngo name", ErrDuplicate)

// UserRepository defines the interface for user and profile operations.
// Single lookups return (nil, nil) when nothing matches.
type UserRepository interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListHomeOwners(ctx context.Context) ([]*models.HomeOwner, error)
	GetHomeOwnerByEmail(ctx context.Context, email string) (*models.HomeOwner, error)
	GetNGOByName(ctx context.Context, nameNGO string) (*models.NGOOwner, error)
	GetNGOByEmail(ctx context.Context, email string) (*models.NGOOwner, error)
	GetVolunteerByEmail(ctx context.Context, email string) (*models.Volunteer, error)

	// CreateAccount writes the user, its profile and, for volunteers, the NGO
	// back-link atomically. IDs are assigned on the passed models.
	CreateAccount(ctx context.Context, account *models.Account) error
}
