package store

import (
	"github.com/google/uuid"

	"github.com/Harishrk21/sudind-connect-sub000/pkg/models"
)

// MessageInput carries the caller-supplied fields of a new message.
type MessageInput struct {
	SenderID   string
	ReceiverID string
	CaseID     string
	Text       string
}

// AddMessage appends an unread message.
func (s *Store) AddMessage(in MessageInput) models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := models.Message{
		MsgID:      uuid.NewString(),
		SenderID:   in.SenderID,
		ReceiverID: in.ReceiverID,
		CaseID:     in.CaseID,
		Text:       in.Text,
		Read:       false,
		SentAt:     s.now(),
	}
	s.messages = append(s.messages, m)
	return m
}

// MarkMessageRead flips the read flag. Only the receiver-side action calls
// this; re-reading an already read message is a no-op.
func (s *Store) MarkMessageRead(id string) (models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.messages {
		if s.messages[i].MsgID == id {
			s.messages[i].Read = true
			return s.messages[i], nil
		}
	}
	return models.Message{}, ErrNotFound
}

// MessageByID returns a copy of the message.
func (s *Store) MessageByID(id string) (models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, m := range s.messages {
		if m.MsgID == id {
			return m, nil
		}
	}
	return models.Message{}, ErrNotFound
}

// MessagesForUser returns every message the user sent or received.
func (s *Store) MessagesForUser(userID string) []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Message{}
	for _, m := range s.messages {
		if m.SenderID == userID || m.ReceiverID == userID {
			out = append(out, m)
		}
	}
	return out
}

// Conversation returns the messages exchanged between two users, in send
// order.
func (s *Store) Conversation(a, b string) []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Message{}
	for _, m := range s.messages {
		if (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a) {
			out = append(out, m)
		}
	}
	return out
}

// UnreadMessageCount counts unread messages addressed to the user.
func (s *Store) UnreadMessageCount(userID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, m := range s.messages {
		if m.ReceiverID == userID && !m.Read {
			n++
		}
	}
	return n
}
