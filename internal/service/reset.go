package service

import (
	"context"
	"time"

	"github.com/convocraft/backend/internal/domain"
	"github.com/convocraft/backend/internal/security"
	"github.com/convocraft/backend/internal/store"
	"github.com/rs/zerolog/log"
)

// Notifier delivers a reset code to the account owner. Swap in a real
// out-of-band channel (email, SMS) in production wiring.
type Notifier interface {
	SendResetCode(ctx context.Context, email, code string) error
}

// DirectNotifier performs no delivery; the code is handed straight back to the
// requester. Suitable only for test and offline configurations.
type DirectNotifier struct{}

func (DirectNotifier) SendResetCode(ctx context.Context, email, code string) error {
	log.Debug().Str("email", email).Msg("reset code returned directly to requester")
	return nil
}

// ResetService handles the time-boxed password reset flow
type ResetService struct {
	store    *store.Store
	notifier Notifier
	now      func() time.Time
}

// NewResetService creates a new reset service. A nil notifier defaults to
// direct return.
func NewResetService(st *store.Store, notifier Notifier) *ResetService {
	if notifier == nil {
		notifier = DirectNotifier{}
	}
	return &ResetService{
		store:    st,
		notifier: notifier,
		now:      time.Now,
	}
}

// RequestReset issues a fresh 6-digit code valid for ten minutes and stores it
// on the user record. A new request replaces any previous code. The code is
// returned to the caller after the Notifier has been given a chance to
// deliver it.
func (s *ResetService) RequestReset(ctx context.Context, email string) (string, error) {
	code, err := security.GenerateResetCode()
	if err != nil {
		return "", err
	}
	expiry := s.now().Add(security.ResetCodeTTL)

	err = s.store.WithUser(email, func(u *domain.User) error {
		u.ResetCode = &code
		u.ResetExpiry = &expiry
		return nil
	})
	if err != nil {
		return "", err
	}

	if err := s.notifier.SendResetCode(ctx, email, code); err != nil {
		log.Error().Err(err).Str("email", email).Msg("reset code delivery failed")
	}

	return code, nil
}

// CompleteReset consumes a code and replaces the password. The code must match
// exactly and be consumed strictly before its expiry; expiry is checked lazily
// here, not proactively cleared. On any failure the stored hash is untouched.
func (s *ResetService) CompleteReset(ctx context.Context, email, code, newPassword string) error {
	if newPassword == "" {
		return domain.ErrValidation
	}

	hash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.store.WithUser(email, func(u *domain.User) error {
		if u.ResetCode == nil || *u.ResetCode != code {
			return domain.ErrInvalidResetCode
		}
		if u.ResetExpiry == nil || !s.now().Before(*u.ResetExpiry) {
			return domain.ErrResetCodeExpired
		}

		u.PasswordHash = hash
		u.ResetCode = nil
		u.ResetExpiry = nil
		return nil
	})
}
