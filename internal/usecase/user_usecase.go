package usecase

import (
	"context"

	"skill-swap/internal/domain/user"
	"skill-swap/internal/infrastructure/cache"
	ucuser "skill-swap/internal/usecase/user"

	"github.com/google/uuid"
)

type UserUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (ucuser.Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, in ucuser.UpdateProfileInput) (ucuser.Profile, error)
}

type User struct {
	svc   *ucuser.Service
	cache MatchCache
}

func NewUserUsecase(users user.Repository, matchCache MatchCache) *User {
	return &User{svc: ucuser.NewService(users), cache: matchCache}
}

func (u *User) GetProfile(ctx context.Context, userID uuid.UUID) (ucuser.Profile, error) {
	return u.svc.GetProfile(ctx, userID)
}

func (u *User) UpdateProfile(ctx context.Context, userID uuid.UUID, in ucuser.UpdateProfileInput) (ucuser.Profile, error) {
	prof, err := u.svc.UpdateProfile(ctx, userID, in)
	if err != nil {
		return ucuser.Profile{}, err
	}

	// Skill edits change this user's ranking; the stale cached list goes.
	// Other users' caches age out on TTL.
	if u.cache != nil && (in.TeachSkills != nil || in.LearnSkills != nil) {
		_ = u.cache.Delete(ctx, cache.MatchKey(userID))
	}

	return prof, nil
}
