package store

import (
	"github.com/google/uuid"

	"github.com/Harishrk21/sudind-connect-sub000/pkg/ids"
	"github.com/Harishrk21/sudind-connect-sub000/pkg/lifecycle"
	"github.com/Harishrk21/sudind-connect-sub000/pkg/models"
)

// CaseInput carries the caller-supplied fields of a new case.
type CaseInput struct {
	ClientID           string
	AgentID            string
	Type               models.CaseType
	Title              string
	Description        string
	EstimatedCostCents int64
	Hospital           string
	University         string
}

// AddCase mints the next per-type case ID, stamps timestamps (created ==
// updated), sets status new, and records a "created" history entry. ID
// generation happens under the write lock, so concurrent creations cannot
// race the count-based scheme.
func (s *Store) AddCase(in CaseInput, actorID string) (models.Case, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := ids.NextCaseID(s.cases, in.Type)
	if err != nil {
		return models.Case{}, err
	}
	now := s.now()
	c := models.Case{
		CaseID:             id,
		ClientID:           in.ClientID,
		AgentID:            in.AgentID,
		Type:               in.Type,
		Status:             models.CaseNew,
		Title:              in.Title,
		Description:        in.Description,
		EstimatedCostCents: in.EstimatedCostCents,
		Hospital:           in.Hospital,
		University:         in.University,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	s.cases = append(s.cases, c)
	s.logHistory(c.CaseID, actorID, "created", "", models.CaseNew, "")
	return c, nil
}

// CasePatch carries the optional fields of a case update.
type CasePatch struct {
	AgentID            *string
	Title              *string
	Description        *string
	EstimatedCostCents *int64
	Hospital           *string
	University         *string
}

// UpdateCase merges the patch and refreshes UpdatedAt. CreatedAt and Status
// are never touched here; status moves through UpdateCaseStatus.
func (s *Store) UpdateCase(id string, p CasePatch) (models.Case, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cases {
		if s.cases[i].CaseID != id {
			continue
		}
		c := &s.cases[i]
		if p.AgentID != nil {
			c.AgentID = *p.AgentID
		}
		if p.Title != nil {
			c.Title = *p.Title
		}
		if p.Description != nil {
			c.Description = *p.Description
		}
		if p.EstimatedCostCents != nil {
			c.EstimatedCostCents = *p.EstimatedCostCents
		}
		if p.Hospital != nil {
			c.Hospital = *p.Hospital
		}
		if p.University != nil {
			c.University = *p.University
		}
		c.UpdatedAt = s.now()
		return *c, nil
	}
	return models.Case{}, ErrNotFound
}

// UpdateCaseStatus moves a case along its lifecycle. Forward-only movement is
// enforced via lifecycle.ValidateTransition unless force is set (admin
// override). Every change is recorded in the case history.
func (s *Store) UpdateCaseStatus(id string, next models.CaseStatus, actorID string, force bool) (models.Case, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cases {
		if s.cases[i].CaseID != id {
			continue
		}
		c := &s.cases[i]
		action := "status_changed"
		if force {
			action = "forced_status"
			if !lifecycle.Known(next, c.Type) {
				return models.Case{}, lifecycle.ErrInvalidTransition
			}
		} else if err := lifecycle.ValidateTransition(c.Status, next, c.Type); err != nil {
			return models.Case{}, err
		}
		old := c.Status
		c.Status = next
		c.UpdatedAt = s.now()
		s.logHistory(c.CaseID, actorID, action, old, next, "")
		return *c, nil
	}
	return models.Case{}, ErrNotFound
}

// DeleteCase removes the case only. Documents, invoices, and contracts that
// reference it are deliberately left behind; whether to cascade is an open
// product decision.
func (s *Store) DeleteCase(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cases {
		if s.cases[i].CaseID == id {
			s.cases = append(s.cases[:i], s.cases[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// CaseByID returns a copy of the case.
func (s *Store) CaseByID(id string) (models.Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.cases {
		if c.CaseID == id {
			return c, nil
		}
	}
	return models.Case{}, ErrNotFound
}

// Cases returns every case.
func (s *Store) Cases() []models.Case {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Case(nil), s.cases...)
}

// CasesByClient returns the cases owned by a client.
func (s *Store) CasesByClient(clientID string) []models.Case {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Case{}
	for _, c := range s.cases {
		if c.ClientID == clientID {
			out = append(out, c)
		}
	}
	return out
}

// CasesByAgent returns the cases assigned to an agent.
func (s *Store) CasesByAgent(agentID string) []models.Case {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Case{}
	for _, c := range s.cases {
		if c.AgentID == agentID {
			out = append(out, c)
		}
	}
	return out
}

// UnassignedCases returns the pool of cases with no agent yet.
func (s *Store) UnassignedCases() []models.Case {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Case{}
	for _, c := range s.cases {
		if c.AgentID == "" {
			out = append(out, c)
		}
	}
	return out
}

// ClientsOfAgent scans the agent's cases and returns their clients,
// de-duplicated, in first-seen order.
func (s *Store) ClientsOfAgent(agentID string) []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := map[string]bool{}
	out := []models.User{}
	for _, c := range s.cases {
		if c.AgentID != agentID || seen[c.ClientID] {
			continue
		}
		seen[c.ClientID] = true
		for _, u := range s.users {
			if u.ID == c.ClientID {
				out = append(out, u)
				break
			}
		}
	}
	return out
}

/* ============================ Case history ============================== */

// logHistory appends an audit entry. Callers must hold the write lock.
func (s *Store) logHistory(caseID, actorID, action string, oldS, newS models.CaseStatus, reason string) {
	s.history = append(s.history, models.CaseHistory{
		ID:        uuid.NewString(),
		CaseID:    caseID,
		ActorID:   actorID,
		Action:    action,
		OldStatus: oldS,
		NewStatus: newS,
		Reason:    reason,
		CreatedAt: s.now(),
	})
}

// HistoryForCase returns the audit trail of a case, oldest first.
func (s *Store) HistoryForCase(caseID string) []models.CaseHistory {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.CaseHistory{}
	for _, h := range s.history {
		if h.CaseID == caseID {
			out = append(out, h)
		}
	}
	return out
}
