package auth

import (
	"context"
	"errors"
	"sync"
	"testing"

	"skill-swap/internal/domain/user"

	"github.com/google/uuid"
)

type memUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]user.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]user.User)}
}

func (m *memUserRepo) CreateUser(_ context.Context, u user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Username == u.Username {
			return user.ErrUsernameTaken
		}
	}
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

func TestRegister(t *testing.T) {
	svc := NewService(newMemUserRepo())

	u, err := svc.Register(context.Background(), RegisterInput{
		Username: "  Alice ",
		Password: "correct horse",
		FullName: " Alice Liddell ",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.Username != "alice" {
		t.Fatalf("expected normalized username, got %q", u.Username)
	}
	if u.FullName != "Alice Liddell" {
		t.Fatalf("expected trimmed full name, got %q", u.FullName)
	}
	if u.PasswordHash != "" {
		t.Fatal("password hash must not leave the service")
	}
	if u.TeachSkills == nil || u.LearnSkills == nil {
		t.Fatal("skill sets should start as empty slices")
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc := NewService(newMemUserRepo())
	in := RegisterInput{Username: "alice", Password: "password1"}

	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first register: %v", err)
	}
	// Same name modulo case must collide.
	in.Username = "ALICE"
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestRegister_InvalidInput(t *testing.T) {
	svc := NewService(newMemUserRepo())
	cases := []RegisterInput{
		{Username: "", Password: "password1"},
		{Username: "has space", Password: "password1"},
		{Username: "alice", Password: "short"},
		{Username: "alice", Password: "        "},
	}
	for _, in := range cases {
		if _, err := svc.Register(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("input %+v: expected ErrInvalidInput, got %v", in, err)
		}
	}
}

func TestLogin(t *testing.T) {
	svc := NewService(newMemUserRepo())
	if _, err := svc.Register(context.Background(), RegisterInput{Username: "bob", Password: "hunter22!"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	u, err := svc.Login(context.Background(), LoginInput{Username: "Bob", Password: "hunter22!"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if u.Username != "bob" {
		t.Fatalf("unexpected user %q", u.Username)
	}
	if u.PasswordHash != "" {
		t.Fatal("password hash must not leave the service")
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	svc := NewService(newMemUserRepo())
	if _, err := svc.Register(context.Background(), RegisterInput{Username: "bob", Password: "hunter22!"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	cases := []LoginInput{
		{Username: "bob", Password: "wrong password"},
		{Username: "nobody", Password: "hunter22!"},
		{Username: "bob", Password: ""},
	}
	for _, in := range cases {
		if _, err := svc.Login(context.Background(), in); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("input %+v: expected ErrInvalidCredentials, got %v", in, err)
		}
	}
}
