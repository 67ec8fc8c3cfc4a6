package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/stackit-qa/backend/internal/models"
)

// NotificationStore holds per-user notification records. All queries are
// scoped to a single recipient; there is no cross-user listing.
type NotificationStore struct {
	mu            sync.RWMutex
	notifications []*models.Notification
	nextID        int
}

func NewNotificationStore() *NotificationStore {
	return &NotificationStore{nextID: 1}
}

// Add appends a notification for the recipient. It always succeeds.
func (s *NotificationStore) Add(userID int, kind, title, message string, relatedID *int) models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := &models.Notification{
		ID:        s.nextID,
		UserID:    userID,
		Kind:      kind,
		Title:     title,
		Message:   message,
		RelatedID: relatedID,
		CreatedAt: time.Now().UTC(),
	}
	s.notifications = append(s.notifications, n)
	s.nextID++

	return *n
}

// MarkRead marks one of the user's notifications as read. Marking an
// already-read notification again is a no-op. A notification that does not
// exist or belongs to another user is not found.
func (s *NotificationStore) MarkRead(userID, notificationID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range s.notifications {
		if n.ID == notificationID && n.UserID == userID {
			n.IsRead = true
			return nil
		}
	}
	return fmt.Errorf("notification %d %w", notificationID, ErrNotFound)
}

// MarkAllRead marks every notification for the user as read. It is a no-op
// when none are unread.
func (s *NotificationStore) MarkAllRead(userID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range s.notifications {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
}

// ForUser returns the user's notifications, newest first.
func (s *NotificationStore) ForUser(userID int) []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Notification{}
	for i := len(s.notifications) - 1; i >= 0; i-- {
		if s.notifications[i].UserID == userID {
			out = append(out, *s.notifications[i])
		}
	}
	return out
}

// UnreadCount returns how many of the user's notifications are unread.
func (s *NotificationStore) UnreadCount(userID int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, n := range s.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count
}
