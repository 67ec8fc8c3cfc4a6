package store

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/stackit-qa/backend/internal/models"
)

// UserStore is the in-memory identity directory. It is constructed once at
// startup and shared by reference; the mutex keeps registration atomic under
// concurrent writers.
type UserStore struct {
	mu     sync.RWMutex
	users  map[int]*models.User
	nextID int
}

func NewUserStore() *UserStore {
	return &UserStore{
		users:  make(map[int]*models.User),
		nextID: 1,
	}
}

// Create registers a new member. It fails with ErrDuplicate when the
// username or email is already taken, leaving the directory unchanged.
func (s *UserStore) Create(username, email, passwordHash string) (models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username || strings.EqualFold(u.Email, email) {
			return models.User{}, fmt.Errorf("username or email %w", ErrDuplicate)
		}
	}

	user := &models.User{
		ID:           s.nextID,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         models.RoleMember,
		CreatedAt:    time.Now().UTC(),
	}
	s.users[user.ID] = user
	s.nextID++

	return *user, nil
}

func (s *UserStore) GetByID(id int) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return models.User{}, fmt.Errorf("user %d %w", id, ErrNotFound)
	}
	return *u, nil
}

func (s *UserStore) GetByEmail(email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return *u, nil
		}
	}
	return models.User{}, fmt.Errorf("user %q %w", email, ErrNotFound)
}

// Count returns the number of registered users.
func (s *UserStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}
