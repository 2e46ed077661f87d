package service

import (
	"context"
	"time"

	"github.com/convocraft/backend/internal/domain"
	"github.com/convocraft/backend/internal/security"
	"github.com/convocraft/backend/internal/store"
	"github.com/google/uuid"
)

// AuthService handles signup, login and profile lookup
type AuthService struct {
	store      *store.Store
	jwtManager *security.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(st *store.Store, jwtManager *security.JWTManager) *AuthService {
	return &AuthService{
		store:      st,
		jwtManager: jwtManager,
	}
}

// Signup creates a new account. It does not issue a session; the caller must
// log in separately.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*domain.Profile, error) {
	if name == "" || email == "" || password == "" {
		return nil, domain.ErrValidation
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		History:      []domain.HistoryEntry{},
		CreatedAt:    time.Now(),
	}

	// InsertUser checks uniqueness and persists under one lock
	if err := s.store.InsertUser(user); err != nil {
		return nil, err
	}

	profile := user.Profile()
	return &profile, nil
}

// Login verifies credentials and mints a session token. It never mutates the
// store.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.TokenResponse, error) {
	user, err := s.store.GetByEmail(email)
	if err != nil {
		return nil, err
	}

	if !security.CheckPassword(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.jwtManager.Generate(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &domain.TokenResponse{
		Token:     token,
		ExpiresIn: int64(s.jwtManager.TokenTTL().Seconds()),
	}, nil
}

// Profile returns the public view of the user, never the hash or reset fields
func (s *AuthService) Profile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	user, err := s.store.GetByID(userID)
	if err != nil {
		return nil, err
	}
	profile := user.Profile()
	return &profile, nil
}
