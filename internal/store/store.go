package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/convocraft/backend/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Document is the full on-disk state: every user, read and written as a whole.
type Document struct {
	Users []*domain.User `json:"users"`
}

// Store is the single source of truth for all users, backed by one JSON file.
// All mutating calls hold an exclusive lock for the full read-modify-persist
// span; reads are served from the in-memory document under a shared lock.
type Store struct {
	path string
	mu   sync.RWMutex
	doc  Document
}

// Open loads the document at path. A missing or unparsable file initializes an
// empty document and persists it immediately so subsequent loads are
// well-formed. Any other I/O failure is a StorageError.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.doc = Document{Users: []*domain.User{}}
		if perr := s.persistLocked(); perr != nil {
			return nil, perr
		}
	case err != nil:
		return nil, domain.NewStorageError("load", err)
	default:
		if uerr := json.Unmarshal(data, &s.doc); uerr != nil {
			log.Warn().Err(uerr).Str("path", path).Msg("store file unparsable, reinitializing")
			s.doc = Document{Users: []*domain.User{}}
			if perr := s.persistLocked(); perr != nil {
				return nil, perr
			}
		}
		if s.doc.Users == nil {
			s.doc.Users = []*domain.User{}
		}
	}

	log.Info().Str("path", path).Int("users", len(s.doc.Users)).Msg("store loaded")
	return s, nil
}

// Path returns the backing file path
func (s *Store) Path() string {
	return s.path
}

// persistLocked serializes the full document and writes it durably. The write
// goes to a temp file in the same directory and replaces the target with a
// rename, so a crash mid-write never leaves a half-written document. Callers
// must hold the write lock.
func (s *Store) persistLocked() error {
	data, err := json.MarshalIndent(&s.doc, "", "  ")
	if err != nil {
		return domain.NewStorageError("persist", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return domain.NewStorageError("persist", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return domain.NewStorageError("persist", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return domain.NewStorageError("persist", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return domain.NewStorageError("persist", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return domain.NewStorageError("persist", err)
	}
	return nil
}

// InsertUser adds a new user after checking email uniqueness, then persists.
// The uniqueness check and the insert happen under one exclusive lock so two
// concurrent signups cannot both pass the check.
func (s *Store) InsertUser(user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.doc.Users {
		if u.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}

	s.doc.Users = append(s.doc.Users, user)
	if err := s.persistLocked(); err != nil {
		s.doc.Users = s.doc.Users[:len(s.doc.Users)-1]
		return err
	}
	return nil
}

// WithUser locates a user by email, applies fn and persists the document.
// An error from fn aborts the mutation without persisting. The exclusive lock
// is held across locate, mutate and persist.
func (s *Store) WithUser(email string, fn func(*domain.User) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.doc.Users {
		if u.Email == email {
			return s.mutateLocked(u, fn)
		}
	}
	return domain.ErrUserNotFound
}

// WithUserByID is WithUser keyed by user id
func (s *Store) WithUserByID(id uuid.UUID, fn func(*domain.User) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.doc.Users {
		if u.ID == id {
			return s.mutateLocked(u, fn)
		}
	}
	return domain.ErrUserNotFound
}

// mutateLocked applies fn and persists. Any failure, from fn or from the
// persist itself, restores the pre-mutation state so the in-memory document
// never diverges from disk.
func (s *Store) mutateLocked(u *domain.User, fn func(*domain.User) error) error {
	before := *u
	if err := fn(u); err != nil {
		*u = before
		return err
	}
	if err := s.persistLocked(); err != nil {
		*u = before
		return err
	}
	return nil
}

// GetByEmail returns a copy of the user with the given email, or
// ErrUserNotFound. Email comparison is exact, case-sensitive as stored.
func (s *Store) GetByEmail(email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.doc.Users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// GetByID returns a copy of the user with the given id, or ErrUserNotFound
func (s *Store) GetByID(id uuid.UUID) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.doc.Users {
		if u.ID == id {
			return copyUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// Count returns the number of stored users
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.doc.Users)
}

func copyUser(u *domain.User) *domain.User {
	c := *u
	c.History = append([]domain.HistoryEntry(nil), u.History...)
	if u.ResetCode != nil {
		code := *u.ResetCode
		c.ResetCode = &code
	}
	if u.ResetExpiry != nil {
		exp := *u.ResetExpiry
		c.ResetExpiry = &exp
	}
	return &c
}
