package devconnect_test

import (
	"context"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/goliatone/go-devconnect"
)

const testSigningKey = "test-signing-key-0123456789"

func testOptions() devconnect.Options {
	return devconnect.Options{
		SigningKey: testSigningKey,
		Issuer:     "devconnect-test",
		HashCost:   bcrypt.MinCost,
	}
}

func testLogger() devconnect.Logger {
	return devconnect.NewLogger(io.Discard, "text", "error")
}

// MockCredentialStore implements devconnect.CredentialStore
type MockCredentialStore struct {
	mock.Mock
}

func (m *MockCredentialStore) FindByEmail(ctx context.Context, email string) (*devconnect.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*devconnect.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCredentialStore) FindByID(ctx context.Context, id uuid.UUID) (*devconnect.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*devconnect.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCredentialStore) Save(ctx context.Context, user *devconnect.User) (*devconnect.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*devconnect.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

// memoryStore is an in-process CredentialStore and ProfileStore
type memoryStore struct {
	mu       sync.Mutex
	users    map[uuid.UUID]devconnect.User
	profiles map[uuid.UUID]devconnect.Profile
	saves    int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:    map[uuid.UUID]devconnect.User{},
		profiles: map[uuid.UUID]devconnect.Profile{},
	}
}

func (s *memoryStore) FindByEmail(_ context.Context, email string) (*devconnect.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email = devconnect.NormalizeEmail(email)
	for _, u := range s.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, devconnect.ErrUserNotFound
}

func (s *memoryStore) FindByID(_ context.Context, id uuid.UUID) (*devconnect.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, devconnect.ErrUserNotFound
	}
	return &u, nil
}

func (s *memoryStore) Save(_ context.Context, user *devconnect.User) (*devconnect.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user.Email = devconnect.NormalizeEmail(user.Email)
	for _, u := range s.users {
		if u.Email == user.Email {
			return nil, devconnect.ErrDuplicateUser
		}
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	s.users[user.ID] = *user
	s.saves++
	return user, nil
}

func (s *memoryStore) FindByUserID(_ context.Context, userID uuid.UUID) (*devconnect.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[userID]
	if !ok {
		return nil, devconnect.ErrProfileNotFound
	}
	return &p, nil
}

func (s *memoryStore) Upsert(_ context.Context, profile *devconnect.Profile) (*devconnect.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.profiles[profile.UserID]; ok {
		profile.ID = existing.ID
	} else if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}

	s.profiles[profile.UserID] = *profile
	out := *profile
	return &out, nil
}

func (s *memoryStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// recordingLogger keeps messages per level
type recordingLogger struct {
	mu      sync.Mutex
	entries map[string][]string
}

func newRecordingLogger() *recordingLogger {
	return &recordingLogger{entries: map[string][]string{}}
}

func (l *recordingLogger) add(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[level] = append(l.entries[level], msg)
}

func (l *recordingLogger) Debug(msg string, _ ...any) { l.add("debug", msg) }
func (l *recordingLogger) Info(msg string, _ ...any)  { l.add("info", msg) }
func (l *recordingLogger) Warn(msg string, _ ...any)  { l.add("warn", msg) }
func (l *recordingLogger) Error(msg string, _ ...any) { l.add("error", msg) }

func (l *recordingLogger) messages(level string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.entries[level]...)
}
