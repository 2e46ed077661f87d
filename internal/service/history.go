package service

import (
	"context"
	"errors"
	"time"

	"github.com/convocraft/backend/internal/domain"
	"github.com/convocraft/backend/internal/store"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// HistoryService appends and lists per-user interaction records
type HistoryService struct {
	store *store.Store
}

// NewHistoryService creates a new history service
func NewHistoryService(st *store.Store) *HistoryService {
	return &HistoryService{store: st}
}

// Append records one exchange at the end of the user's history. An unknown
// user id is a no-op, not an error: the exchange already happened and the
// caller should not fail over bookkeeping.
func (s *HistoryService) Append(ctx context.Context, userID uuid.UUID, userMessage, aiReply string) error {
	err := s.store.WithUserByID(userID, func(u *domain.User) error {
		u.History = append(u.History, domain.HistoryEntry{
			UserMessage: userMessage,
			AIReply:     aiReply,
			Timestamp:   time.Now(),
		})
		return nil
	})
	if errors.Is(err, domain.ErrUserNotFound) {
		log.Warn().Str("user_id", userID.String()).Msg("history append for unknown user, dropping")
		return nil
	}
	return err
}

// List returns the user's history oldest-first. Unknown users get an empty
// sequence, no error.
func (s *HistoryService) List(ctx context.Context, userID uuid.UUID) ([]domain.HistoryEntry, error) {
	user, err := s.store.GetByID(userID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return []domain.HistoryEntry{}, nil
	}
	if err != nil {
		return nil, err
	}
	if user.History == nil {
		return []domain.HistoryEntry{}, nil
	}
	return user.History, nil
}
