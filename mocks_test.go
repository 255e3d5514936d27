package alumni_test

import (
	"context"
	"sync"

	alumni "github.com/goliatone/go-alumni"
	"github.com/stretchr/testify/mock"
)

// MockUserStore is a testify mock for the UserStore contract
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Exists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*alumni.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*alumni.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserStore) Register(ctx context.Context, user *alumni.User) (*alumni.User, error) {
	args := m.Called(ctx, user)
	if created, ok := args.Get(0).(*alumni.User); ok {
		return created, args.Error(1)
	}
	return nil, args.Error(1)
}

// memoryUserStore is an in-memory UserStore used by the end to end HTTP tests
type memoryUserStore struct {
	mu    sync.Mutex
	users map[string]*alumni.User
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{users: map[string]*alumni.User{}}
}

func (s *memoryUserStore) Exists(_ context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.users[email]
	return ok, nil
}

func (s *memoryUserStore) GetByEmail(_ context.Context, email string) (*alumni.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[email]
	if !ok {
		return nil, alumni.ErrIdentityNotFound
	}
	return user, nil
}

func (s *memoryUserStore) Register(_ context.Context, user *alumni.User) (*alumni.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.Email]; ok {
		return nil, alumni.ErrEmailRegistered
	}
	s.users[user.Email] = user
	return user, nil
}

func (s *memoryUserStore) Count(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users), nil
}

func testConfig() *alumni.AppConfig {
	return &alumni.AppConfig{
		Address:     ":0",
		DatabaseDSN: "file::memory:",
		SigningKey:  "test-signing-key-0123456789",
		TokenTTL:    alumni.DefaultTokenTTL,
		Issuer:      "test-issuer",
	}
}
