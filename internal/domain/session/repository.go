package session

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound            = errors.New("session not found")
	ErrSessionExists       = errors.New("session already exists for request")
	ErrRequestMissing      = errors.New("referenced request missing")
	ErrCancelled           = errors.New("session cancelled")
	ErrParticipantNotFound = errors.New("participant not found")
)

type Repository interface {
	// Create inserts the session row and both participant rows in one
	// transaction; ErrSessionExists when the request already has one,
	// ErrRequestMissing when the referenced request row is gone.
	Create(ctx context.Context, s Session) error
	GetByID(ctx context.Context, id uuid.UUID) (Session, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Session, error)

	// Update never resurrects a cancelled row: it refuses the write with
	// ErrCancelled so a stale reschedule cannot race a cancellation.
	Update(ctx context.Context, s Session) error
	UpdateParticipant(ctx context.Context, p Participant) error
}
