package usecase

import (
	"context"
	"errors"
	"time"

	"skill-swap/internal/domain/matching"
	"skill-swap/internal/domain/user"
	"skill-swap/internal/infrastructure/cache"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidInput = errors.New("invalid input")
)

const defaultMatchLimit = 20

// MatchCache is the slice of the redis wrapper the matching path needs.
// A nil cache means every call recomputes, which is always correct.
type MatchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type SuggestedMatch struct {
	User                 user.Summary `json:"user"`
	YouCanTeachThem      []string     `json:"you_can_teach_them"`
	TheyCanTeachYou      []string     `json:"they_can_teach_you"`
	MatchScore           int          `json:"match_score"`
	TotalSkillsExchanged int          `json:"total_skills_exchanged"`
	MinSkillsExchanged   int          `json:"min_skills_exchanged"`
	Tier                 string       `json:"tier"`
}

type MatchingUsecase interface {
	SuggestedMatches(ctx context.Context, userID uuid.UUID, limit, offset int) ([]SuggestedMatch, error)
}

type Matching struct {
	users user.Repository
	cache MatchCache
}

func NewMatchingUsecase(users user.Repository, matchCache MatchCache) *Matching {
	return &Matching{users: users, cache: matchCache}
}

func (u *Matching) SuggestedMatches(ctx context.Context, userID uuid.UUID, limit, offset int) ([]SuggestedMatch, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	if limit < 0 || offset < 0 {
		return nil, ErrInvalidInput
	}
	if limit == 0 {
		limit = defaultMatchLimit
	}

	ranked, err := u.rankedForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return pageMatches(ranked, limit, offset), nil
}

// rankedForUser returns the full ranked list, read through the cache. Cache
// failures fall back to recomputation.
func (u *Matching) rankedForUser(ctx context.Context, userID uuid.UUID) ([]SuggestedMatch, error) {
	key := cache.MatchKey(userID)
	if u.cache != nil {
		var cached []SuggestedMatch
		if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	usr, err := u.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, ErrInternal
	}

	// A user with either set empty can never produce a mutual match.
	if len(usr.TeachSkills) == 0 || len(usr.LearnSkills) == 0 {
		return []SuggestedMatch{}, nil
	}

	candidates, err := u.users.ListCandidates(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}

	pool := make([]matching.Profile, 0, len(candidates))
	profiles := make(map[uuid.UUID]user.User, len(candidates))
	for _, c := range candidates {
		profiles[c.ID] = c
		pool = append(pool, toMatchProfile(c))
	}

	ranked := matching.Rank(toMatchProfile(usr), pool)

	out := make([]SuggestedMatch, 0, len(ranked))
	for _, m := range ranked {
		out = append(out, SuggestedMatch{
			User:                 profiles[m.Candidate.UserID].Summary(),
			YouCanTeachThem:      m.YouCanTeachThem,
			TheyCanTeachYou:      m.TheyCanTeachYou,
			MatchScore:           m.MatchScore,
			TotalSkillsExchanged: m.TotalSkillsExchanged,
			MinSkillsExchanged:   m.MinSkillsExchanged,
			Tier:                 m.Tier,
		})
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, out, 0)
	}
	return out, nil
}

func pageMatches(matches []SuggestedMatch, limit, offset int) []SuggestedMatch {
	if offset >= len(matches) {
		return []SuggestedMatch{}
	}
	rest := matches[offset:]
	if limit < len(rest) {
		rest = rest[:limit]
	}
	out := make([]SuggestedMatch, len(rest))
	copy(out, rest)
	return out
}

func toMatchProfile(u user.User) matching.Profile {
	return matching.Profile{
		UserID:      u.ID,
		Username:    u.Username,
		FullName:    u.FullName,
		TeachSkills: u.TeachSkills,
		LearnSkills: u.LearnSkills,
	}
}
