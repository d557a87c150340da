package user

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"skill-swap/internal/domain/user"

	"github.com/google/uuid"
)

type memUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]user.User
}

func newMemUserRepo(seed ...user.User) *memUserRepo {
	m := &memUserRepo{users: make(map[uuid.UUID]user.User)}
	for _, u := range seed {
		m.users[u.ID] = u
	}
	return m
}

func (m *memUserRepo) CreateUser(_ context.Context, u user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
	return nil
}

func (m *memUserRepo) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *memUserRepo) GetUserByUsername(_ context.Context, username string) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m *memUserRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.users[id]
	return ok, nil
}

func (m *memUserRepo) UpdateUser(_ context.Context, u user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.ID]; !ok {
		return user.ErrNotFound
	}
	m.users[u.ID] = u
	return nil
}

func (m *memUserRepo) ListCandidates(_ context.Context, exclude uuid.UUID) ([]user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]user.User, 0, len(m.users))
	for id, u := range m.users {
		if id != exclude {
			out = append(out, u)
		}
	}
	return out, nil
}

func seedUser() user.User {
	return user.User{
		ID:          uuid.New(),
		Username:    "alice",
		FullName:    "Alice",
		TeachSkills: []string{"Python"},
		LearnSkills: []string{"Spanish"},
	}
}

func TestUpdateProfile_Skills(t *testing.T) {
	u := seedUser()
	svc := NewService(newMemUserRepo(u))

	prof, err := svc.UpdateProfile(context.Background(), u.ID, UpdateProfileInput{
		TeachSkills: []string{" Go ", "Python"},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !reflect.DeepEqual(prof.TeachSkills, []string{"Go", "Python"}) {
		t.Fatalf("expected trimmed skills, got %v", prof.TeachSkills)
	}
	// nil means unchanged
	if !reflect.DeepEqual(prof.LearnSkills, []string{"Spanish"}) {
		t.Fatalf("learn set should be untouched, got %v", prof.LearnSkills)
	}
}

func TestUpdateProfile_ClearSkills(t *testing.T) {
	u := seedUser()
	svc := NewService(newMemUserRepo(u))

	prof, err := svc.UpdateProfile(context.Background(), u.ID, UpdateProfileInput{
		TeachSkills: []string{},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(prof.TeachSkills) != 0 {
		t.Fatalf("expected cleared teach set, got %v", prof.TeachSkills)
	}
}

func TestUpdateProfile_SkillRules(t *testing.T) {
	u := seedUser()
	svc := NewService(newMemUserRepo(u))

	cases := []struct {
		name string
		in   UpdateProfileInput
		want error
	}{
		{
			name: "too many",
			in:   UpdateProfileInput{TeachSkills: []string{"a", "b", "c", "d", "e", "f"}},
			want: ErrTooManySkills,
		},
		{
			name: "duplicate after trim",
			in:   UpdateProfileInput{TeachSkills: []string{"Go", " Go "}},
			want: ErrDuplicateSkill,
		},
		{
			name: "empty entry",
			in:   UpdateProfileInput{LearnSkills: []string{"Go", "  "}},
			want: ErrInvalidInput,
		},
		{
			name: "overlap across sets",
			in:   UpdateProfileInput{TeachSkills: []string{"Spanish"}},
			want: ErrSkillOverlap,
		},
		{
			name: "overlap within one update",
			in: UpdateProfileInput{
				TeachSkills: []string{"Go"},
				LearnSkills: []string{"Go"},
			},
			want: ErrSkillOverlap,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.UpdateProfile(context.Background(), u.ID, tc.in); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			// Rejected updates must not stick.
			prof, err := svc.GetProfile(context.Background(), u.ID)
			if err != nil {
				t.Fatalf("get profile: %v", err)
			}
			if !reflect.DeepEqual(prof.TeachSkills, []string{"Python"}) {
				t.Fatalf("teach set changed after rejected update: %v", prof.TeachSkills)
			}
		})
	}
}

func TestUpdateProfile_FullName(t *testing.T) {
	u := seedUser()
	svc := NewService(newMemUserRepo(u))

	name := "  Alice Liddell  "
	prof, err := svc.UpdateProfile(context.Background(), u.ID, UpdateProfileInput{FullName: &name})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if prof.FullName != "Alice Liddell" {
		t.Fatalf("expected trimmed name, got %q", prof.FullName)
	}

	blank := "   "
	if _, err := svc.UpdateProfile(context.Background(), u.ID, UpdateProfileInput{FullName: &blank}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}
}

func TestUpdateProfile_UnknownUser(t *testing.T) {
	svc := NewService(newMemUserRepo())
	if _, err := svc.UpdateProfile(context.Background(), uuid.New(), UpdateProfileInput{}); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
