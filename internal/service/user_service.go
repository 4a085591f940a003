package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"inventory-api/internal/domain"
	"inventory-api/internal/repository"
)

// DefaultBcryptCost is the work factor used when none is configured.
const DefaultBcryptCost = 10

var errInvalidCredentials = &domain.Error{Kind: domain.ErrInvalidCredentials, Msg: "Invalid credentials"}

// UserService registers users and exchanges credentials for access tokens.
type UserService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	Verify(token string) (domain.Identity, error)
}

type userService struct {
	users  repository.UserRepository
	tokens *TokenManager
	cost   int

	dummyOnce sync.Once
	dummyHash []byte
}

func NewUserService(users repository.UserRepository, tokens *TokenManager, bcryptCost int) UserService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = DefaultBcryptCost
	}
	return &userService{
		users:  users,
		tokens: tokens,
		cost:   bcryptCost,
	}
}

func (s *userService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, domain.Validation("Please enter all fields")
	}

	// Fast path only; the unique index on username is authoritative.
	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, domain.Conflict("User already exists")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
	}
	if _, err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return sanitizeUser(user), nil
}

// Login answers unknown usernames and wrong passwords identically, and
// spends a bcrypt comparison in both cases.
func (s *userService) Login(ctx context.Context, username, password string) (string, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return "", domain.Validation("Please enter all fields")
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.placeholderHash(), []byte(password))
			return "", errInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", errInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

func (s *userService) Verify(token string) (domain.Identity, error) {
	return s.tokens.Verify(token)
}

func (s *userService) placeholderHash() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("placeholder-password"), s.cost)
	})
	return s.dummyHash
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	}
}
