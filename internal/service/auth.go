package service

import (
	"context"
	"fmt"
	"time"

	"github.com/focusflowhq/backend/internal/clock"
	"github.com/focusflowhq/backend/internal/domain"
	"github.com/focusflowhq/backend/internal/security"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository is the user access the auth service needs
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	UpdateTimezone(ctx context.Context, id uuid.UUID, timezone string) (*domain.User, error)
}

// AuthService handles registration, login and account settings
type AuthService struct {
	userRepo   UserRepository
	jwtManager *security.JWTManager
	clock      clock.Clock
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo UserRepository, jwtManager *security.JWTManager, clk clock.Clock) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		clock:      clk,
	}
}

// Register creates a new account and returns it with a bearer token. New
// accounts start in UTC until they set a timezone.
func (s *AuthService) Register(ctx context.Context, input domain.UserCreate) (*domain.AuthResult, error) {
	taken, err := s.userRepo.EmailExists(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrEmailTaken
	}

	taken, err = s.userRepo.UsernameExists(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.clock.Now()
	user := &domain.User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		Timezone:     "UTC",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.jwtManager.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &domain.AuthResult{User: user, Token: token}, nil
}

// Login verifies credentials and returns the account with a fresh bearer
// token. A wrong email and a wrong password are indistinguishable to the
// caller.
func (s *AuthService) Login(ctx context.Context, input domain.UserLogin) (*domain.AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &domain.AuthResult{User: user, Token: token}, nil
}

// GetProfile retrieves the authenticated user's account
func (s *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// UpdateTimezone stores a new IANA timezone for the user after verifying it
// resolves to a real location
func (s *AuthService) UpdateTimezone(ctx context.Context, userID uuid.UUID, input domain.TimezoneUpdate) (*domain.User, error) {
	if _, err := time.LoadLocation(input.Timezone); err != nil || input.Timezone == "" {
		return nil, domain.ErrInvalidTimezone
	}

	user, err := s.userRepo.UpdateTimezone(ctx, userID, input.Timezone)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}
