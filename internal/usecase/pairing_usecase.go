package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"skill-swap/internal/domain/pairing"
	"skill-swap/internal/domain/user"

	"github.com/google/uuid"
)

var (
	ErrSelfRequest        = errors.New("cannot send request to yourself")
	ErrRecipientNotFound  = errors.New("recipient not found")
	ErrPendingExists      = errors.New("pending request already exists")
	ErrRequestNotFound    = errors.New("pairing request not found")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrAlreadyResolved    = errors.New("request already resolved")
	ErrForbidden          = errors.New("forbidden")
)

// Notifier pushes realtime events to a connected user. Nil-safe at the call
// sites; delivery is best effort.
type Notifier interface {
	Notify(userID uuid.UUID, event string, payload any)
}

const (
	EventRequestReceived = "pairing_request_received"
	EventRequestResolved = "pairing_request_resolved"
)

type CreateRequestInput struct {
	RecipientID uuid.UUID
	TeachSkills []string
	LearnSkills []string
	Message     string
}

type ListRequestsInput struct {
	Status string // pending | accepted | declined | cancelled | ""
	Type   string // sent | received | ""
}

// RequestItem is the read-side projection: the request plus both user
// summaries, assembled here so the domain stays presentation-free.
type RequestItem struct {
	ID          uuid.UUID      `json:"id"`
	Requester   user.Summary   `json:"requester"`
	Recipient   user.Summary   `json:"recipient"`
	TeachSkills []string       `json:"teach_skills"`
	LearnSkills []string       `json:"learn_skills"`
	Message     string         `json:"message,omitempty"`
	Status      pairing.Status `json:"status"`
	CreatedAt   string         `json:"created_at"`
}

type PairingUsecase interface {
	CreateRequest(ctx context.Context, requesterID uuid.UUID, in CreateRequestInput) (RequestItem, error)
	ListRequests(ctx context.Context, userID uuid.UUID, in ListRequestsInput) ([]RequestItem, error)
	UpdateStatus(ctx context.Context, actorID, requestID uuid.UUID, rawStatus string) (RequestItem, error)
}

type Pairing struct {
	requests pairing.Repository
	users    user.Repository
	notifier Notifier
}

func NewPairingUsecase(requests pairing.Repository, users user.Repository, notifier Notifier) *Pairing {
	return &Pairing{requests: requests, users: users, notifier: notifier}
}

func (u *Pairing) CreateRequest(ctx context.Context, requesterID uuid.UUID, in CreateRequestInput) (RequestItem, error) {
	if requesterID == uuid.Nil {
		return RequestItem{}, ErrUnauthorized
	}
	if in.RecipientID == uuid.Nil {
		return RequestItem{}, ErrInvalidInput
	}
	if in.RecipientID == requesterID {
		return RequestItem{}, ErrSelfRequest
	}

	teach, err := cleanRequestSkills(in.TeachSkills)
	if err != nil {
		return RequestItem{}, err
	}
	learn, err := cleanRequestSkills(in.LearnSkills)
	if err != nil {
		return RequestItem{}, err
	}

	exists, err := u.users.ExistsByID(ctx, in.RecipientID)
	if err != nil {
		return RequestItem{}, ErrInternal
	}
	if !exists {
		return RequestItem{}, ErrRecipientNotFound
	}

	req := pairing.Request{
		ID:          uuid.New(),
		RequesterID: requesterID,
		RecipientID: in.RecipientID,
		TeachSkills: teach,
		LearnSkills: learn,
		Message:     strings.TrimSpace(in.Message),
		Status:      pairing.StatusPending,
	}

	if err := u.requests.Create(ctx, req); err != nil {
		if errors.Is(err, pairing.ErrPendingExists) {
			return RequestItem{}, ErrPendingExists
		}
		return RequestItem{}, ErrInternal
	}

	item, err := u.toItem(ctx, req)
	if err != nil {
		return RequestItem{}, err
	}

	if u.notifier != nil {
		u.notifier.Notify(req.RecipientID, EventRequestReceived, item)
	}
	return item, nil
}

func (u *Pairing) ListRequests(ctx context.Context, userID uuid.UUID, in ListRequestsInput) ([]RequestItem, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	f := pairing.ListFilter{UserID: userID}
	switch in.Type {
	case "sent":
		f.Sent = true
	case "received":
		f.Recv = true
	case "":
	default:
		return nil, ErrInvalidInput
	}

	if in.Status != "" {
		switch pairing.Status(in.Status) {
		case pairing.StatusPending, pairing.StatusAccepted, pairing.StatusDeclined, pairing.StatusCancelled:
			f.Status = pairing.Status(in.Status)
		default:
			return nil, ErrInvalidStatus
		}
	}

	reqs, err := u.requests.List(ctx, f)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]RequestItem, 0, len(reqs))
	for _, req := range reqs {
		item, err := u.toItem(ctx, req)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (u *Pairing) UpdateStatus(ctx context.Context, actorID, requestID uuid.UUID, rawStatus string) (RequestItem, error) {
	if actorID == uuid.Nil {
		return RequestItem{}, ErrUnauthorized
	}

	target, ok := pairing.ParseStatus(rawStatus)
	if !ok {
		return RequestItem{}, ErrInvalidStatus
	}

	req, err := u.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, pairing.ErrNotFound) {
			return RequestItem{}, ErrRequestNotFound
		}
		return RequestItem{}, ErrInternal
	}

	// Actor check first: the wrong side gets forbidden even when the
	// request already left pending.
	if !req.AllowedBy(actorID, target) {
		return RequestItem{}, ErrForbidden
	}
	if req.Status != pairing.StatusPending {
		return RequestItem{}, ErrAlreadyResolved
	}

	if err := u.requests.UpdateStatus(ctx, requestID, target); err != nil {
		switch {
		case errors.Is(err, pairing.ErrNotFound):
			return RequestItem{}, ErrRequestNotFound
		case errors.Is(err, pairing.ErrAlreadyResolved):
			return RequestItem{}, ErrAlreadyResolved
		default:
			return RequestItem{}, ErrInternal
		}
	}
	req.Status = target

	item, err := u.toItem(ctx, req)
	if err != nil {
		return RequestItem{}, err
	}

	// Requester hears about accept/decline; cancel is their own doing.
	if u.notifier != nil && target != pairing.StatusCancelled {
		u.notifier.Notify(req.RequesterID, EventRequestResolved, item)
	}
	return item, nil
}

func (u *Pairing) toItem(ctx context.Context, req pairing.Request) (RequestItem, error) {
	requester, err := u.users.GetUserByID(ctx, req.RequesterID)
	if err != nil {
		return RequestItem{}, ErrInternal
	}
	recipient, err := u.users.GetUserByID(ctx, req.RecipientID)
	if err != nil {
		return RequestItem{}, ErrInternal
	}

	return RequestItem{
		ID:          req.ID,
		Requester:   requester.Summary(),
		Recipient:   recipient.Summary(),
		TeachSkills: req.TeachSkills,
		LearnSkills: req.LearnSkills,
		Message:     req.Message,
		Status:      req.Status,
		CreatedAt:   req.CreatedAt.UTC().Format(time.RFC3339),
	}, nil
}

// cleanRequestSkills mirrors the profile edit rules: trimmed, unique,
// non-empty, at most the per-set cap.
func cleanRequestSkills(skills []string) ([]string, error) {
	if len(skills) == 0 {
		return nil, ErrInvalidInput
	}
	out := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, raw := range skills {
		s := strings.TrimSpace(raw)
		if s == "" {
			return nil, ErrInvalidInput
		}
		if _, dup := seen[s]; dup {
			return nil, ErrInvalidInput
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	if len(out) > user.MaxSkills {
		return nil, ErrInvalidInput
	}
	return out, nil
}
