package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrUsernameTaken = errors.New("username taken")
)

type Repository interface {
	CreateUser(ctx context.Context, u User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (User, error)
	GetUserByUsername(ctx context.Context, username string) (User, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	UpdateUser(ctx context.Context, u User) error

	// ListCandidates returns every user except the given one. The match
	// finder filters and ranks the result in memory.
	ListCandidates(ctx context.Context, exclude uuid.UUID) ([]User, error)
}
