package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/convocraft/backend/internal/domain"
	"github.com/convocraft/backend/internal/security"
	"github.com/convocraft/backend/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "db.json"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	return s
}

func newTestAuthService(t *testing.T) (*AuthService, *store.Store, *security.JWTManager) {
	t.Helper()
	st := newTestStore(t)
	jwtManager := security.NewJWTManager("test-secret-key-with-32-chars!!", 24*time.Hour)
	return NewAuthService(st, jwtManager), st, jwtManager
}

func TestAuthService_Signup(t *testing.T) {
	svc, st, _ := newTestAuthService(t)
	ctx := context.Background()

	profile, err := svc.Signup(ctx, "Ann", "ann@x.com", "pw1")
	assert.NoError(t, err)
	assert.Equal(t, "Ann", profile.Name)
	assert.Equal(t, "ann@x.com", profile.Email)
	assert.NotEqual(t, uuid.Nil, profile.ID)

	stored, err := st.GetByEmail("ann@x.com")
	assert.NoError(t, err)
	assert.NotEqual(t, "pw1", stored.PasswordHash)
	assert.True(t, security.CheckPassword(stored.PasswordHash, "pw1"))
	assert.Empty(t, stored.History)
	assert.Nil(t, stored.ResetCode)
	assert.Nil(t, stored.ResetExpiry)
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "Ann", "ann@x.com", "pw1")
	assert.NoError(t, err)

	_, err = svc.Signup(ctx, "Bob", "ann@x.com", "pw2")
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestAuthService_Signup_EmptyFields(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	cases := []struct {
		name, userName, email, password string
	}{
		{"empty name", "", "ann@x.com", "pw1"},
		{"empty email", "Ann", "", "pw1"},
		{"empty password", "Ann", "ann@x.com", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Signup(ctx, tc.userName, tc.email, tc.password)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	svc, _, jwtManager := newTestAuthService(t)
	ctx := context.Background()

	profile, err := svc.Signup(ctx, "Ann", "ann@x.com", "pw1")
	assert.NoError(t, err)

	// Wrong password
	_, err = svc.Login(ctx, "ann@x.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	// Unknown email
	_, err = svc.Login(ctx, "nobody@x.com", "pw1")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	// Correct credentials yield a token identifying the user
	tokens, err := svc.Login(ctx, "ann@x.com", "pw1")
	assert.NoError(t, err)
	assert.NotEmpty(t, tokens.Token)

	claims, err := jwtManager.Validate(tokens.Token)
	assert.NoError(t, err)
	assert.Equal(t, profile.ID, claims.UserID)
}

func TestAuthService_Profile(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	created, err := svc.Signup(ctx, "Ann", "ann@x.com", "pw1")
	assert.NoError(t, err)

	profile, err := svc.Profile(ctx, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, created.ID, profile.ID)
	assert.Equal(t, "Ann", profile.Name)
	assert.Equal(t, "ann@x.com", profile.Email)

	_, err = svc.Profile(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
