package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"skill-swap/internal/domain/pairing"
	"skill-swap/internal/domain/session"
	"skill-swap/internal/domain/user"

	"github.com/google/uuid"
)

var (
	ErrRequestNotAccepted = errors.New("request not accepted")
	ErrSessionExists      = errors.New("session already exists for request")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionCancelled   = errors.New("session cancelled")
	ErrInvalidRating      = errors.New("invalid rating")
)

const EventSessionUpdated = "session_updated"

type CreateSessionInput struct {
	RequestID       uuid.UUID
	ScheduledAt     time.Time
	DurationMinutes int
	Location        string
	Notes           string
}

// UpdateSessionInput uses nil for fields left unchanged. Status, when set,
// may only be "cancelled"; completed is derived, never written.
type UpdateSessionInput struct {
	ScheduledAt     *time.Time
	DurationMinutes *int
	Location        *string
	Notes           *string
	Status          *string
}

type FeedbackInput struct {
	Attended *bool
	Feedback *string
	Rating   *int
}

type ParticipantItem struct {
	User     user.Summary `json:"user"`
	Attended *bool        `json:"attended,omitempty"`
	Feedback *string      `json:"feedback,omitempty"`
	Rating   *int         `json:"rating,omitempty"`
}

type SessionItem struct {
	ID              uuid.UUID         `json:"id"`
	RequestID       uuid.UUID         `json:"request_id"`
	ScheduledAt     time.Time         `json:"scheduled_at"`
	DurationMinutes int               `json:"duration_minutes"`
	Location        session.Location  `json:"location"`
	Notes           string            `json:"notes,omitempty"`
	Status          session.Status    `json:"status"`
	Participants    []ParticipantItem `json:"participants"`
}

type SessionUsecase interface {
	CreateSession(ctx context.Context, callerID uuid.UUID, in CreateSessionInput) (SessionItem, error)
	ListSessions(ctx context.Context, callerID uuid.UUID, statusFilter string) ([]SessionItem, error)
	UpdateSession(ctx context.Context, callerID, sessionID uuid.UUID, in UpdateSessionInput) (SessionItem, error)
	SubmitFeedback(ctx context.Context, callerID, sessionID uuid.UUID, in FeedbackInput) (SessionItem, error)
}

type Sessions struct {
	sessions session.Repository
	requests pairing.Repository
	users    user.Repository
	notifier Notifier
	now      func() time.Time
}

func NewSessionUsecase(sessions session.Repository, requests pairing.Repository, users user.Repository, notifier Notifier) *Sessions {
	return &Sessions{
		sessions: sessions,
		requests: requests,
		users:    users,
		notifier: notifier,
		now:      time.Now,
	}
}

func (u *Sessions) CreateSession(ctx context.Context, callerID uuid.UUID, in CreateSessionInput) (SessionItem, error) {
	if callerID == uuid.Nil {
		return SessionItem{}, ErrUnauthorized
	}
	if in.RequestID == uuid.Nil || in.ScheduledAt.IsZero() || in.DurationMinutes <= 0 {
		return SessionItem{}, ErrInvalidInput
	}
	loc, ok := session.ParseLocation(in.Location)
	if !ok {
		return SessionItem{}, ErrInvalidInput
	}

	req, err := u.requests.GetByID(ctx, in.RequestID)
	if err != nil {
		if errors.Is(err, pairing.ErrNotFound) {
			return SessionItem{}, ErrRequestNotFound
		}
		return SessionItem{}, ErrInternal
	}

	if callerID != req.RequesterID && callerID != req.RecipientID {
		return SessionItem{}, ErrForbidden
	}
	if req.Status != pairing.StatusAccepted {
		return SessionItem{}, ErrRequestNotAccepted
	}

	sessionID := uuid.New()
	s := session.Session{
		ID:              sessionID,
		RequestID:       req.ID,
		ScheduledAt:     in.ScheduledAt,
		DurationMinutes: in.DurationMinutes,
		Location:        loc,
		Notes:           strings.TrimSpace(in.Notes),
		Status:          session.StatusScheduled,
		Participants: []session.Participant{
			{ID: uuid.New(), SessionID: sessionID, UserID: req.RequesterID},
			{ID: uuid.New(), SessionID: sessionID, UserID: req.RecipientID},
		},
	}

	if err := u.sessions.Create(ctx, s); err != nil {
		switch {
		case errors.Is(err, session.ErrSessionExists):
			return SessionItem{}, ErrSessionExists
		case errors.Is(err, session.ErrRequestMissing):
			// The request row vanished between the check and the insert.
			return SessionItem{}, ErrRequestNotFound
		default:
			return SessionItem{}, ErrInternal
		}
	}

	item, err := u.toItem(ctx, s)
	if err != nil {
		return SessionItem{}, err
	}

	u.notifyOther(s, callerID, item)
	return item, nil
}

func (u *Sessions) ListSessions(ctx context.Context, callerID uuid.UUID, statusFilter string) ([]SessionItem, error) {
	if callerID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	var want session.Status
	if statusFilter != "" {
		switch session.Status(statusFilter) {
		case session.StatusScheduled, session.StatusCompleted, session.StatusCancelled:
			want = session.Status(statusFilter)
		default:
			return nil, ErrInvalidStatus
		}
	}

	sessions, err := u.sessions.ListByUser(ctx, callerID)
	if err != nil {
		return nil, ErrInternal
	}

	now := u.now()
	out := make([]SessionItem, 0, len(sessions))
	for _, s := range sessions {
		if want != "" && s.EffectiveStatus(now) != want {
			continue
		}
		item, err := u.toItem(ctx, s)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (u *Sessions) UpdateSession(ctx context.Context, callerID, sessionID uuid.UUID, in UpdateSessionInput) (SessionItem, error) {
	if callerID == uuid.Nil {
		return SessionItem{}, ErrUnauthorized
	}

	s, err := u.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return SessionItem{}, ErrSessionNotFound
		}
		return SessionItem{}, ErrInternal
	}

	if !s.HasParticipant(callerID) {
		return SessionItem{}, ErrForbidden
	}
	if s.Status == session.StatusCancelled {
		return SessionItem{}, ErrSessionCancelled
	}

	if in.Status != nil {
		// cancelled is the only writable transition; completed is derived.
		if session.Status(*in.Status) != session.StatusCancelled {
			return SessionItem{}, ErrInvalidStatus
		}
		s.Status = session.StatusCancelled
	}
	if in.ScheduledAt != nil {
		if in.ScheduledAt.IsZero() {
			return SessionItem{}, ErrInvalidInput
		}
		s.ScheduledAt = *in.ScheduledAt
	}
	if in.DurationMinutes != nil {
		if *in.DurationMinutes <= 0 {
			return SessionItem{}, ErrInvalidInput
		}
		s.DurationMinutes = *in.DurationMinutes
	}
	if in.Location != nil {
		loc, ok := session.ParseLocation(*in.Location)
		if !ok {
			return SessionItem{}, ErrInvalidInput
		}
		s.Location = loc
	}
	if in.Notes != nil {
		s.Notes = strings.TrimSpace(*in.Notes)
	}

	if err := u.sessions.Update(ctx, s); err != nil {
		switch {
		case errors.Is(err, session.ErrNotFound):
			return SessionItem{}, ErrSessionNotFound
		case errors.Is(err, session.ErrCancelled):
			// Lost the race against a concurrent cancel; the cancel wins.
			return SessionItem{}, ErrSessionCancelled
		default:
			return SessionItem{}, ErrInternal
		}
	}

	item, err := u.toItem(ctx, s)
	if err != nil {
		return SessionItem{}, err
	}

	u.notifyOther(s, callerID, item)
	return item, nil
}

func (u *Sessions) SubmitFeedback(ctx context.Context, callerID, sessionID uuid.UUID, in FeedbackInput) (SessionItem, error) {
	if callerID == uuid.Nil {
		return SessionItem{}, ErrUnauthorized
	}
	if in.Rating != nil && (*in.Rating < 1 || *in.Rating > 5) {
		return SessionItem{}, ErrInvalidRating
	}

	s, err := u.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return SessionItem{}, ErrSessionNotFound
		}
		return SessionItem{}, ErrInternal
	}

	var mine *session.Participant
	for i := range s.Participants {
		if s.Participants[i].UserID == callerID {
			mine = &s.Participants[i]
			break
		}
	}
	if mine == nil {
		return SessionItem{}, ErrForbidden
	}

	if in.Attended != nil {
		mine.Attended = in.Attended
	}
	if in.Feedback != nil {
		fb := strings.TrimSpace(*in.Feedback)
		mine.Feedback = &fb
	}
	if in.Rating != nil {
		mine.Rating = in.Rating
	}

	if err := u.sessions.UpdateParticipant(ctx, *mine); err != nil {
		if errors.Is(err, session.ErrParticipantNotFound) {
			return SessionItem{}, ErrForbidden
		}
		return SessionItem{}, ErrInternal
	}

	return u.toItem(ctx, s)
}

func (u *Sessions) toItem(ctx context.Context, s session.Session) (SessionItem, error) {
	parts := make([]ParticipantItem, 0, len(s.Participants))
	for _, p := range s.Participants {
		usr, err := u.users.GetUserByID(ctx, p.UserID)
		if err != nil {
			return SessionItem{}, ErrInternal
		}
		parts = append(parts, ParticipantItem{
			User:     usr.Summary(),
			Attended: p.Attended,
			Feedback: p.Feedback,
			Rating:   p.Rating,
		})
	}

	return SessionItem{
		ID:              s.ID,
		RequestID:       s.RequestID,
		ScheduledAt:     s.ScheduledAt,
		DurationMinutes: s.DurationMinutes,
		Location:        s.Location,
		Notes:           s.Notes,
		Status:          s.EffectiveStatus(u.now()),
		Participants:    parts,
	}, nil
}

func (u *Sessions) notifyOther(s session.Session, actor uuid.UUID, item SessionItem) {
	if u.notifier == nil {
		return
	}
	for _, p := range s.Participants {
		if p.UserID != actor {
			u.notifier.Notify(p.UserID, EventSessionUpdated, item)
		}
	}
}
