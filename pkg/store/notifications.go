package store

import (
	"github.com/google/uuid"

	"github.com/Harishrk21/sudind-connect-sub000/pkg/models"
)

// NotificationInput carries the caller-supplied fields of a new notification.
type NotificationInput struct {
	UserID  string
	Title   string
	Message string
	Type    models.NotificationType
}

// AddNotification appends an unread notification for a user.
func (s *Store) AddNotification(in NotificationInput) models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := models.Notification{
		ID:        uuid.NewString(),
		UserID:    in.UserID,
		Title:     in.Title,
		Message:   in.Message,
		Type:      in.Type,
		Read:      false,
		CreatedAt: s.now(),
	}
	s.notifications = append(s.notifications, n)
	return n
}

// MarkNotificationRead flips the read flag.
func (s *Store) MarkNotificationRead(id string) (models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].Read = true
			return s.notifications[i], nil
		}
	}
	return models.Notification{}, ErrNotFound
}

// MarkAllNotificationsRead flips every unread notification of a user and
// reports how many changed.
func (s *Store) MarkAllNotificationsRead(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for i := range s.notifications {
		if s.notifications[i].UserID == userID && !s.notifications[i].Read {
			s.notifications[i].Read = true
			n++
		}
	}
	return n
}

// NotificationsForUser returns every notification addressed to the user.
func (s *Store) NotificationsForUser(userID string) []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Notification{}
	for _, n := range s.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}
