package repository

import (
	"context"
	"errors"

	"user-access-service/internal/domain/entity"
)

// ErrNotFound is returned by lookups that match no account.
var ErrNotFound = errors.New("user not found")

// ErrAlreadyExists is returned when a commit hits the storage uniqueness
// constraint on username or email. Callers treat it the same as a failed
// pre-insert uniqueness check.
var ErrAlreadyExists = errors.New("account already exists")

// ListFilter narrows and pages the user listing.
type ListFilter struct {
	Username string // case-insensitive contains match when non-empty
	Skip     *int
	Take     *int
}

// UserRepository is the persistence contract for the User aggregate.
// Insert, Update and Delete stage writes on the enclosing unit of work;
// nothing reaches storage until Save runs.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]entity.User, int, error)
	Insert(u *entity.User)
	Update(u *entity.User)
	Delete(u *entity.User)
}

// UnitOfWork commits all staged writes in one transaction. The audit
// interceptor runs over the staged set before anything is serialized.
type UnitOfWork interface {
	Save(ctx context.Context) error
}

// Store opens a fresh repository/unit-of-work pair per request. Units of
// work are never shared across concurrent requests.
type Store interface {
	NewUnitOfWork() (UserRepository, UnitOfWork)
}
