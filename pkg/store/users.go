package store

import (
	"strings"

	"github.com/google/uuid"

	"github.com/Harishrk21/sudind-connect-sub000/pkg/models"
)

// UserInput carries the caller-supplied fields of a new user.
type UserInput struct {
	Role       models.Role
	Name       string
	Email      string
	Password   string
	Phone      string
	ClientType models.ClientType
	Country    string
}

// AddUser appends a new active user. Email uniqueness is the caller's
// concern (checked reactively via UserByEmail before calling, as the portal
// always did); the store itself enforces nothing.
func (s *Store) AddUser(in UserInput) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := models.User{
		ID:         uuid.NewString(),
		Role:       in.Role,
		Name:       in.Name,
		Email:      strings.ToLower(strings.TrimSpace(in.Email)),
		Password:   in.Password,
		Phone:      in.Phone,
		ClientType: in.ClientType,
		Country:    in.Country,
		Status:     models.UserActive,
		CreatedAt:  s.now(),
	}
	s.users = append(s.users, u)
	return u
}

// UserPatch carries the optional fields of a user update; nil means "leave
// unchanged".
type UserPatch struct {
	Name     *string
	Phone    *string
	Country  *string
	Password *string
	Status   *models.UserStatus
}

// UpdateUser merges the patch into the matching user. Last write wins; there
// is no conflict detection.
func (s *Store) UpdateUser(id string, p UserPatch) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID != id {
			continue
		}
		u := &s.users[i]
		if p.Name != nil {
			u.Name = *p.Name
		}
		if p.Phone != nil {
			u.Phone = *p.Phone
		}
		if p.Country != nil {
			u.Country = *p.Country
		}
		if p.Password != nil {
			u.Password = *p.Password
		}
		if p.Status != nil {
			u.Status = *p.Status
		}
		return *u, nil
	}
	return models.User{}, ErrNotFound
}

// DeleteUser removes the user. Cases, messages, and other records that point
// at the user are left in place.
func (s *Store) DeleteUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// UserByID returns a copy of the user.
func (s *Store) UserByID(id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

// UserByEmail looks a user up by normalized email.
func (s *Store) UserByEmail(email string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

// Users returns all users, optionally filtered by role ("" means all).
func (s *Store) Users(role models.Role) []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		if role == "" || u.Role == role {
			out = append(out, u)
		}
	}
	return out
}
