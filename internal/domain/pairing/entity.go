package pairing

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusDeclined  Status = "declined"
	StatusCancelled Status = "cancelled"
)

// ParseStatus validates a client-supplied status value. Only transition
// targets are accepted here; "pending" is never a valid target.
func ParseStatus(raw string) (Status, bool) {
	switch Status(raw) {
	case StatusAccepted, StatusDeclined, StatusCancelled:
		return Status(raw), true
	default:
		return "", false
	}
}

// Request is a directed proposal: the requester offers TeachSkills and asks
// for LearnSkills from the recipient. Status is pending until exactly one
// terminal transition wins.
type Request struct {
	ID          uuid.UUID
	RequesterID uuid.UUID
	RecipientID uuid.UUID
	TeachSkills []string
	LearnSkills []string
	Message     string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AllowedBy reports whether actor may move a pending request to target.
// Recipients resolve (accept/decline), requesters withdraw (cancel).
func (r Request) AllowedBy(actor uuid.UUID, target Status) bool {
	switch target {
	case StatusAccepted, StatusDeclined:
		return actor == r.RecipientID
	case StatusCancelled:
		return actor == r.RequesterID
	default:
		return false
	}
}
