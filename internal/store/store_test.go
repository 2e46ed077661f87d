package store_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/convocraft/backend/internal/domain"
	"github.com/convocraft/backend/internal/store"
	"github.com/google/uuid"
)

func newUser(name, email string) *domain.User {
	return &domain.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: "$2a$10$fakefakefakefakefakefake",
		History:      []domain.HistoryEntry{},
		CreatedAt:    time.Now(),
	}
}

func TestOpen_FirstBoot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")

	s, err := store.Open(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	if s.Count() != 0 {
		t.Errorf("expected empty store, got %d users", s.Count())
	}

	// First boot must persist the empty document immediately
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("backing file not created: %v", err)
	}
	if !strings.Contains(string(data), "users") {
		t.Errorf("backing file missing users collection: %s", data)
	}
}

func TestOpen_UnparsableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	s, err := store.Open(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if s.Count() != 0 {
		t.Errorf("expected reinitialized empty store, got %d users", s.Count())
	}

	// Reinitialized document must be loadable again
	s2, err := store.Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if s2.Count() != 0 {
		t.Errorf("expected empty store on reopen, got %d users", s2.Count())
	}
}

func TestInsertUser_UniqueEmail(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "db.json"))
	if err != nil {
		t.Fatal(err)
	}

	if err := s.InsertUser(newUser("Ann", "ann@x.com")); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}

	err = s.InsertUser(newUser("Bob", "ann@x.com"))
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}

	if s.Count() != 1 {
		t.Errorf("expected 1 user, got %d", s.Count())
	}
}

func TestInsertUser_CaseSensitiveEmail(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "db.json"))
	if err != nil {
		t.Fatal(err)
	}

	if err := s.InsertUser(newUser("Ann", "ann@x.com")); err != nil {
		t.Fatal(err)
	}
	// Emails compare exactly as stored
	if err := s.InsertUser(newUser("Ann", "ANN@x.com")); err != nil {
		t.Errorf("differently-cased email should not conflict: %v", err)
	}
}

func TestPersist_Durability(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	s, err := store.Open(path)
	if err != nil {
		t.Fatal(err)
	}

	u := newUser("Ann", "ann@x.com")
	if err := s.InsertUser(u); err != nil {
		t.Fatal(err)
	}

	err = s.WithUser("ann@x.com", func(usr *domain.User) error {
		usr.History = append(usr.History, domain.HistoryEntry{
			UserMessage: "hi",
			AIReply:     "hello",
			Timestamp:   time.Now(),
		})
		return nil
	})
	if err != nil {
		t.Fatalf("mutation failed: %v", err)
	}

	// Reload from disk and expect the mutation
	reloaded, err := store.Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	got, err := reloaded.GetByEmail("ann@x.com")
	if err != nil {
		t.Fatalf("user missing after reload: %v", err)
	}
	if len(got.History) != 1 || got.History[0].UserMessage != "hi" {
		t.Errorf("mutation not durable: %+v", got.History)
	}
}

func TestPersist_NoTempArtifacts(t *testing.T) {
	dir := t.TempDir()
	s, err := store.Open(filepath.Join(dir, "db.json"))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.InsertUser(newUser("Ann", "ann@x.com")); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected only the store file, got %v", names)
	}
}

func TestWithUser_ErrorAbortsMutation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	s, err := store.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.InsertUser(newUser("Ann", "ann@x.com")); err != nil {
		t.Fatal(err)
	}

	boom := errors.New("boom")
	code := "482913"
	err = s.WithUser("ann@x.com", func(u *domain.User) error {
		u.Name = "changed"
		u.ResetCode = &code // no expiry: would break the code/expiry pairing
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected fn error, got %v", err)
	}

	got, err := s.GetByEmail("ann@x.com")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Ann" {
		t.Errorf("aborted mutation leaked: name = %q", got.Name)
	}
	if got.ResetCode != nil {
		t.Errorf("aborted mutation leaked: resetCode = %q", *got.ResetCode)
	}

	// An unrelated persist afterwards must not flush the aborted change
	if err := s.InsertUser(newUser("Bob", "bob@x.com")); err != nil {
		t.Fatal(err)
	}
	reloaded, err := store.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	onDisk, err := reloaded.GetByEmail("ann@x.com")
	if err != nil {
		t.Fatal(err)
	}
	if onDisk.Name != "Ann" || onDisk.ResetCode != nil {
		t.Errorf("aborted mutation reached disk: name=%q resetCode=%v", onDisk.Name, onDisk.ResetCode)
	}
}

func TestWithUser_UnknownEmail(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "db.json"))
	if err != nil {
		t.Fatal(err)
	}

	err = s.WithUser("nobody@x.com", func(u *domain.User) error { return nil })
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestGetByEmail_ReturnsCopy(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "db.json"))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.InsertUser(newUser("Ann", "ann@x.com")); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetByEmail("ann@x.com")
	if err != nil {
		t.Fatal(err)
	}
	got.Name = "mutated"
	got.History = append(got.History, domain.HistoryEntry{UserMessage: "x"})

	again, err := s.GetByEmail("ann@x.com")
	if err != nil {
		t.Fatal(err)
	}
	if again.Name != "Ann" || len(again.History) != 0 {
		t.Errorf("caller mutation leaked into store: %+v", again)
	}
}

func TestConcurrentSignups_NoDuplicates(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "db.json"))
	if err != nil {
		t.Fatal(err)
	}

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.InsertUser(newUser("Ann", "ann@x.com"))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else if !errors.Is(err, domain.ErrEmailTaken) {
			t.Errorf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Errorf("expected exactly 1 successful signup, got %d", succeeded)
	}
	if s.Count() != 1 {
		t.Errorf("expected 1 stored user, got %d", s.Count())
	}
}
