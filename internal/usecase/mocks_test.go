package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"skill-swap/internal/domain/pairing"
	"skill-swap/internal/domain/session"
	"skill-swap/internal/domain/user"

	"github.com/google/uuid"
)

type mockUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]user.User
	err   error
}

func newMockUserRepo(users ...user.User) *mockUserRepo {
	m := &mockUserRepo{users: make(map[uuid.UUID]user.User)}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *mockUserRepo) CreateUser(_ context.Context, u user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for _, existing := range m.users {
		if existing.Username == u.Username {
			return user.ErrUsernameTaken
		}
	}
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepo) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return user.User{}, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) GetUserByUsername(_ context.Context, username string) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m *mockUserRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.users[id]
	return ok, nil
}

func (m *mockUserRepo) UpdateUser(_ context.Context, u user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.ID]; !ok {
		return user.ErrNotFound
	}
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepo) ListCandidates(_ context.Context, exclude uuid.UUID) ([]user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]user.User, 0, len(m.users))
	for _, u := range m.users {
		if u.ID != exclude {
			out = append(out, u)
		}
	}
	return out, nil
}

type mockPairingRepo struct {
	mu       sync.Mutex
	requests map[uuid.UUID]pairing.Request
	err      error
}

func newMockPairingRepo() *mockPairingRepo {
	return &mockPairingRepo{requests: make(map[uuid.UUID]pairing.Request)}
}

func (m *mockPairingRepo) Create(_ context.Context, r pairing.Request) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for _, existing := range m.requests {
		if existing.RequesterID == r.RequesterID &&
			existing.RecipientID == r.RecipientID &&
			existing.Status == pairing.StatusPending {
			return pairing.ErrPendingExists
		}
	}
	r.CreatedAt = time.Now()
	m.requests[r.ID] = r
	return nil
}

func (m *mockPairingRepo) GetByID(_ context.Context, id uuid.UUID) (pairing.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.requests[id]
	if !ok {
		return pairing.Request{}, pairing.ErrNotFound
	}
	return r, nil
}

func (m *mockPairingRepo) List(_ context.Context, f pairing.ListFilter) ([]pairing.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]pairing.Request, 0)
	for _, r := range m.requests {
		switch {
		case f.Sent && r.RequesterID != f.UserID:
			continue
		case f.Recv && r.RecipientID != f.UserID:
			continue
		case !f.Sent && !f.Recv && r.RequesterID != f.UserID && r.RecipientID != f.UserID:
			continue
		}
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *mockPairingRepo) UpdateStatus(_ context.Context, id uuid.UUID, target pairing.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.requests[id]
	if !ok {
		return pairing.ErrNotFound
	}
	if r.Status != pairing.StatusPending {
		return pairing.ErrAlreadyResolved
	}
	r.Status = target
	m.requests[id] = r
	return nil
}

type mockSessionRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]session.Session
	err      error

	// onUpdate runs before Update takes the lock, letting tests interleave
	// a competing write between a caller's read and its write-back.
	onUpdate func()
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[uuid.UUID]session.Session)}
}

func (m *mockSessionRepo) Create(_ context.Context, s session.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for _, existing := range m.sessions {
		if existing.RequestID == s.RequestID {
			return session.ErrSessionExists
		}
	}
	m.sessions[s.ID] = s
	return nil
}

func (m *mockSessionRepo) GetByID(_ context.Context, id uuid.UUID) (session.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return session.Session{}, session.ErrNotFound
	}
	return s, nil
}

func (m *mockSessionRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]session.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]session.Session, 0)
	for _, s := range m.sessions {
		if s.HasParticipant(userID) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockSessionRepo) Update(_ context.Context, s session.Session) error {
	if m.onUpdate != nil {
		m.onUpdate()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.sessions[s.ID]
	if !ok {
		return session.ErrNotFound
	}
	if existing.Status == session.StatusCancelled {
		return session.ErrCancelled
	}
	s.Participants = existing.Participants
	m.sessions[s.ID] = s
	return nil
}

func (m *mockSessionRepo) setStatus(id uuid.UUID, status session.Status) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.sessions[id]
	s.Status = status
	m.sessions[id] = s
}

func (m *mockSessionRepo) UpdateParticipant(_ context.Context, p session.Participant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[p.SessionID]
	if !ok {
		return session.ErrParticipantNotFound
	}
	for i := range s.Participants {
		if s.Participants[i].UserID == p.UserID {
			s.Participants[i] = p
			m.sessions[p.SessionID] = s
			return nil
		}
	}
	return session.ErrParticipantNotFound
}

type mockCache struct {
	mu    sync.Mutex
	store map[string][]byte
	gets  int
	sets  int
}

func newMockCache() *mockCache {
	return &mockCache{store: make(map[string][]byte)}
}

func (m *mockCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	b, ok := m.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (m *mockCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.store[key] = b
	return nil
}

func (m *mockCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, key)
	return nil
}

type notification struct {
	userID  uuid.UUID
	event   string
	payload any
}

type mockNotifier struct {
	mu   sync.Mutex
	sent []notification
}

func (m *mockNotifier) Notify(userID uuid.UUID, event string, payload any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, notification{userID: userID, event: event, payload: payload})
}

func (m *mockNotifier) sentTo(userID uuid.UUID) []notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]notification, 0)
	for _, n := range m.sent {
		if n.userID == userID {
			out = append(out, n)
		}
	}
	return out
}
