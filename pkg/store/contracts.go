package store

import (
	"time"

	"github.com/Harishrk21/sudind-connect-sub000/pkg/ids"
	"github.com/Harishrk21/sudind-connect-sub000/pkg/models"
)

// ContractInput carries the caller-supplied fields of a new contract.
type ContractInput struct {
	CaseID    string
	ClientID  string
	AgentID   string
	Type      models.CaseType
	Title     string
	Terms     string
	StartDate time.Time
	EndDate   time.Time
}

// AddContract mints the next CNT-<nnn> identifier and appends a draft
// contract.
func (s *Store) AddContract(in ContractInput) (models.Contract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := ids.NextContractID(s.contracts)
	if err != nil {
		return models.Contract{}, err
	}
	ct := models.Contract{
		ContractID: id,
		CaseID:     in.CaseID,
		ClientID:   in.ClientID,
		AgentID:    in.AgentID,
		Type:       in.Type,
		Status:     models.ContractDraft,
		Title:      in.Title,
		Terms:      in.Terms,
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
		CreatedAt:  s.now(),
	}
	s.contracts = append(s.contracts, ct)
	return ct, nil
}

// ContractPatch carries the optional fields of a contract update.
type ContractPatch struct {
	Title     *string
	Terms     *string
	Status    *models.ContractStatus
	StartDate *time.Time
	EndDate   *time.Time
}

// UpdateContract merges the patch into the matching contract.
func (s *Store) UpdateContract(id string, p ContractPatch) (models.Contract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.contracts {
		if s.contracts[i].ContractID != id {
			continue
		}
		ct := &s.contracts[i]
		if p.Title != nil {
			ct.Title = *p.Title
		}
		if p.Terms != nil {
			ct.Terms = *p.Terms
		}
		if p.Status != nil {
			ct.Status = *p.Status
		}
		if p.StartDate != nil {
			ct.StartDate = *p.StartDate
		}
		if p.EndDate != nil {
			ct.EndDate = *p.EndDate
		}
		return *ct, nil
	}
	return models.Contract{}, ErrNotFound
}

// ArchiveContract sets status archived and stamps ArchivedAt. There is no
// guard against archiving a draft or re-archiving: a second call simply
// restamps ArchivedAt, matching the portal's historical behavior.
func (s *Store) ArchiveContract(id string) (models.Contract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.contracts {
		if s.contracts[i].ContractID != id {
			continue
		}
		now := s.now()
		s.contracts[i].Status = models.ContractArchived
		s.contracts[i].ArchivedAt = &now
		return s.contracts[i], nil
	}
	return models.Contract{}, ErrNotFound
}

// ContractByID returns a copy of the contract.
func (s *Store) ContractByID(id string) (models.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, ct := range s.contracts {
		if ct.ContractID == id {
			return ct, nil
		}
	}
	return models.Contract{}, ErrNotFound
}

// Contracts returns every contract.
func (s *Store) Contracts() []models.Contract {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Contract(nil), s.contracts...)
}

// ContractsByClient returns the contracts belonging to a client.
func (s *Store) ContractsByClient(clientID string) []models.Contract {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Contract{}
	for _, ct := range s.contracts {
		if ct.ClientID == clientID {
			out = append(out, ct)
		}
	}
	return out
}
