package usecase

import (
	"context"
	"errors"
	"testing"

	"skill-swap/internal/domain/user"
	ucuser "skill-swap/internal/usecase/user"

	"github.com/google/uuid"
)

func TestMatching_SuggestedMatches(t *testing.T) {
	a, b := twoUsers()
	uc := NewMatchingUsecase(newMockUserRepo(a, b), nil)

	matches, err := uc.SuggestedMatches(context.Background(), a.ID, 0, 0)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	m := matches[0]
	if m.User.Username != "bob" {
		t.Fatalf("expected bob, got %s", m.User.Username)
	}
	if m.MatchScore != 120 || m.TotalSkillsExchanged != 2 || m.MinSkillsExchanged != 1 {
		t.Fatalf("unexpected scoring: %+v", m)
	}
	if m.Tier != "good" {
		t.Fatalf("expected tier good, got %s", m.Tier)
	}
}

func TestMatching_EmptySkillSetNoMatches(t *testing.T) {
	a, b := twoUsers()
	a.TeachSkills = nil
	uc := NewMatchingUsecase(newMockUserRepo(a, b), nil)

	matches, err := uc.SuggestedMatches(context.Background(), a.ID, 0, 0)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("expected no matches with empty teach set, got %d", len(matches))
	}
}

func TestMatching_Pagination(t *testing.T) {
	me := user.User{
		ID:          uuid.New(),
		Username:    "me",
		TeachSkills: []string{"Go"},
		LearnSkills: []string{"French"},
	}
	repo := newMockUserRepo(me)
	for _, name := range []string{"u1", "u2", "u3"} {
		_ = repo.CreateUser(context.Background(), user.User{
			ID:          uuid.New(),
			Username:    name,
			TeachSkills: []string{"French"},
			LearnSkills: []string{"Go"},
		})
	}
	uc := NewMatchingUsecase(repo, nil)

	page1, err := uc.SuggestedMatches(context.Background(), me.ID, 2, 0)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(page1) != 2 {
		t.Fatalf("expected 2, got %d", len(page1))
	}

	page2, err := uc.SuggestedMatches(context.Background(), me.ID, 2, 2)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(page2) != 1 {
		t.Fatalf("expected 1, got %d", len(page2))
	}

	if _, err := uc.SuggestedMatches(context.Background(), me.ID, -1, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestMatching_CacheReadThrough(t *testing.T) {
	a, b := twoUsers()
	repo := newMockUserRepo(a, b)
	c := newMockCache()
	uc := NewMatchingUsecase(repo, c)

	if _, err := uc.SuggestedMatches(context.Background(), a.ID, 10, 0); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if c.sets != 1 {
		t.Fatalf("expected ranked list cached once, sets=%d", c.sets)
	}

	// Second call must come from the cache even if the store breaks.
	repo.err = errors.New("db down")
	matches, err := uc.SuggestedMatches(context.Background(), a.ID, 10, 0)
	if err != nil {
		t.Fatalf("cached call: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected cached match, got %d", len(matches))
	}
}

func TestMatching_UnknownUser(t *testing.T) {
	uc := NewMatchingUsecase(newMockUserRepo(), nil)
	if _, err := uc.SuggestedMatches(context.Background(), uuid.New(), 10, 0); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserUsecase_SkillEditInvalidatesMatchCache(t *testing.T) {
	a, b := twoUsers()
	repo := newMockUserRepo(a, b)
	c := newMockCache()

	matchUC := NewMatchingUsecase(repo, c)
	if _, err := matchUC.SuggestedMatches(context.Background(), a.ID, 10, 0); err != nil {
		t.Fatalf("warm cache: %v", err)
	}
	if len(c.store) != 1 {
		t.Fatalf("expected warm cache")
	}

	userUC := NewUserUsecase(repo, c)
	in := ucuser.UpdateProfileInput{TeachSkills: []string{"Go"}, LearnSkills: []string{"Spanish"}}
	if _, err := userUC.UpdateProfile(context.Background(), a.ID, in); err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if len(c.store) != 0 {
		t.Fatalf("expected cache invalidated after skill edit")
	}
}
