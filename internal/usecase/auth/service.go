package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"skill-swap/internal/domain/user"
)

var (
	ErrUsernameTaken      = errors.New("username taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInternal           = errors.New("internal error")
)

type RegisterInput struct {
	Username string
	Password string
	FullName string
}

type LoginInput struct {
	Username string
	Password string
}

type Service struct {
	users user.Repository
}

func NewService(users user.Repository) *Service {
	return &Service{users: users}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	username := normalizeUsername(in.Username)
	if username == "" {
		return user.User{}, ErrInvalidInput
	}
	if !isValidPassword(in.Password) {
		return user.User{}, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, ErrInternal
	}

	u := user.User{
		ID:           uuid.New(),
		Username:     username,
		FullName:     strings.TrimSpace(in.FullName),
		PasswordHash: string(hash),
		TeachSkills:  []string{},
		LearnSkills:  []string{},
	}

	if err := s.users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, user.ErrUsernameTaken) {
			return user.User{}, ErrUsernameTaken
		}
		return user.User{}, ErrInternal
	}

	return sanitizeUser(u), nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, error) {
	username := normalizeUsername(in.Username)
	if username == "" || in.Password == "" {
		return user.User{}, ErrInvalidCredentials
	}

	u, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrInvalidCredentials
		}
		return user.User{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, ErrInvalidCredentials
	}

	return sanitizeUser(u), nil
}

func normalizeUsername(username string) string {
	username = strings.TrimSpace(username)
	if strings.ContainsAny(username, " \t\n") {
		return ""
	}
	return strings.ToLower(username)
}

func isValidPassword(pw string) bool {
	return len(strings.TrimSpace(pw)) >= 8
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
