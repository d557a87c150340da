package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	FullName    string    `json:"full_name,omitempty"`
	TeachSkills []string  `json:"teach_skills"`
	LearnSkills []string  `json:"learn_skills"`
}

type UserProfileResponse struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	FullName    string    `json:"full_name,omitempty"`
	TeachSkills []string  `json:"teach_skills"`
	LearnSkills []string  `json:"learn_skills"`
	CreatedAt   time.Time `json:"created_at"`
}
