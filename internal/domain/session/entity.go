package session

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed" // derived, never stored
	StatusCancelled Status = "cancelled"
)

type Location string

const (
	LocationOnline   Location = "online"
	LocationInPerson Location = "in-person"
)

func ParseLocation(raw string) (Location, bool) {
	switch Location(raw) {
	case LocationOnline, LocationInPerson:
		return Location(raw), true
	default:
		return "", false
	}
}

// Session is a scheduled meeting created from an accepted pairing request.
// Exactly one session exists per accepted request.
type Session struct {
	ID              uuid.UUID
	RequestID       uuid.UUID
	ScheduledAt     time.Time
	DurationMinutes int
	Location        Location
	Notes           string
	Status          Status
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Participants []Participant
}

// Participant carries the post-hoc, per-user annotations. All three fields
// are optional and independent of the session lifecycle.
type Participant struct {
	ID        uuid.UUID
	SessionID uuid.UUID
	UserID    uuid.UUID
	Attended  *bool
	Feedback  *string
	Rating    *int
}

// EffectiveStatus resolves the derived completed state: a scheduled session
// whose date has passed reads as completed. Cancelled always wins.
func (s Session) EffectiveStatus(now time.Time) Status {
	if s.Status == StatusCancelled {
		return StatusCancelled
	}
	if now.After(s.ScheduledAt) {
		return StatusCompleted
	}
	return StatusScheduled
}

func (s Session) HasParticipant(userID uuid.UUID) bool {
	for _, p := range s.Participants {
		if p.UserID == userID {
			return true
		}
	}
	return false
}
