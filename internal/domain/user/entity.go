package user

import (
	"time"

	"github.com/google/uuid"
)

// MaxSkills caps each of the two skill sets, enforced at the edit boundary.
const MaxSkills = 5

type User struct {
	ID           uuid.UUID
	Username     string
	FullName     string
	PasswordHash string
	TeachSkills  []string
	LearnSkills  []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Summary is the public projection embedded in pairing-request and session
// reads. It never carries credentials.
type Summary struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	FullName    string    `json:"full_name"`
	TeachSkills []string  `json:"teach_skills"`
	LearnSkills []string  `json:"learn_skills"`
}

func (u User) Summary() Summary {
	return Summary{
		ID:          u.ID,
		Username:    u.Username,
		FullName:    u.FullName,
		TeachSkills: u.TeachSkills,
		LearnSkills: u.LearnSkills,
	}
}
