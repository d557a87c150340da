package pairing

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("pairing request not found")
	ErrPendingExists   = errors.New("pending request already exists")
	ErrAlreadyResolved = errors.New("pairing request already resolved")
)

type ListFilter struct {
	Status Status    // empty = all
	Sent   bool      // filter by requester = UserID
	Recv   bool      // filter by recipient = UserID
	UserID uuid.UUID
}

type Repository interface {
	Create(ctx context.Context, r Request) error
	GetByID(ctx context.Context, id uuid.UUID) (Request, error)
	List(ctx context.Context, f ListFilter) ([]Request, error)

	// UpdateStatus flips a pending request to target with a conditional
	// update; ErrAlreadyResolved when another transition won first.
	UpdateStatus(ctx context.Context, id uuid.UUID, target Status) error
}
