// Package notify fans a portal event out to the user's in-app notification
// feed and, best-effort, to their email address. Mail failures never affect
// the calling operation; they are logged and swallowed.
package notify

import (
	"go.uber.org/zap"

	"github.com/Harishrk21/sudind-connect-sub000/pkg/models"
	"github.com/Harishrk21/sudind-connect-sub000/pkg/store"
)

// Mailer sends a single plain-text email. Implementations must be safe to
// call inline from request handlers.
type Mailer interface {
	Send(to, subject, body string) error
}

type Service struct {
	st   *store.Store
	mail Mailer // nil disables email delivery
	log  *zap.Logger
}

func New(st *store.Store, mail Mailer, log *zap.Logger) *Service {
	return &Service{st: st, mail: mail, log: log}
}

// Push records an in-app notification and attempts email delivery.
func (s *Service) Push(userID, title, message string, typ models.NotificationType) models.Notification {
	n := s.st.AddNotification(store.NotificationInput{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    typ,
	})

	if s.mail == nil {
		return n
	}
	u, err := s.st.UserByID(userID)
	if err != nil {
		s.log.Warn("notification target missing, skipping mail",
			zap.String("user_id", userID))
		return n
	}
	if err := s.mail.Send(u.Email, title, message); err != nil {
		// Best-effort: log and move on.
		s.log.Warn("notification mail failed",
			zap.String("to", u.Email), zap.Error(err))
	}
	return n
}
