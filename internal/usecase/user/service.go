package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"skill-swap/internal/domain/user"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrTooManySkills  = errors.New("too many skills")
	ErrDuplicateSkill = errors.New("duplicate skill")
	ErrSkillOverlap   = errors.New("skill in both sets")
	ErrInternal       = errors.New("internal error")
)

type Profile struct {
	ID          uuid.UUID
	Username    string
	FullName    string
	TeachSkills []string
	LearnSkills []string
	CreatedAt   time.Time
}

// UpdateProfileInput uses nil to mean "leave unchanged"; an empty non-nil
// slice clears a skill set.
type UpdateProfileInput struct {
	FullName    *string
	TeachSkills []string
	LearnSkills []string
}

type Service struct {
	users user.Repository
}

func NewService(users user.Repository) *Service {
	return &Service{users: users}
}

func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (Profile, error) {
	usr, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Profile{}, user.ErrNotFound
		}
		return Profile{}, ErrInternal
	}
	return toProfile(usr), nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (Profile, error) {
	usr, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Profile{}, user.ErrNotFound
		}
		return Profile{}, ErrInternal
	}

	if in.FullName != nil {
		name := strings.TrimSpace(*in.FullName)
		if name == "" {
			return Profile{}, ErrInvalidInput
		}
		usr.FullName = name
	}

	if in.TeachSkills != nil {
		cleaned, err := cleanSkillSet(in.TeachSkills)
		if err != nil {
			return Profile{}, err
		}
		usr.TeachSkills = cleaned
	}
	if in.LearnSkills != nil {
		cleaned, err := cleanSkillSet(in.LearnSkills)
		if err != nil {
			return Profile{}, err
		}
		usr.LearnSkills = cleaned
	}

	// A skill may not sit in both sets for the same user.
	if overlaps(usr.TeachSkills, usr.LearnSkills) {
		return Profile{}, ErrSkillOverlap
	}

	if err := s.users.UpdateUser(ctx, usr); err != nil {
		return Profile{}, ErrInternal
	}
	return toProfile(usr), nil
}

// cleanSkillSet trims entries and enforces the edit-boundary rules: no empty
// entries, no duplicates, at most MaxSkills. Matching stays case-sensitive,
// so trimming is the only normalization applied.
func cleanSkillSet(skills []string) ([]string, error) {
	out := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, raw := range skills {
		skill := strings.TrimSpace(raw)
		if skill == "" {
			return nil, ErrInvalidInput
		}
		if _, dup := seen[skill]; dup {
			return nil, ErrDuplicateSkill
		}
		seen[skill] = struct{}{}
		out = append(out, skill)
	}
	if len(out) > user.MaxSkills {
		return nil, ErrTooManySkills
	}
	return out, nil
}

func overlaps(a, b []string) bool {
	set := make(map[string]struct{}, len(a))
	for _, s := range a {
		set[s] = struct{}{}
	}
	for _, s := range b {
		if _, ok := set[s]; ok {
			return true
		}
	}
	return false
}

func toProfile(u user.User) Profile {
	return Profile{
		ID:          u.ID,
		Username:    u.Username,
		FullName:    u.FullName,
		TeachSkills: u.TeachSkills,
		LearnSkills: u.LearnSkills,
		CreatedAt:   u.CreatedAt,
	}
}
