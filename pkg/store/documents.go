package store

import (
	"github.com/google/uuid"

	"github.com/Harishrk21/sudind-connect-sub000/pkg/models"
)

// DocumentInput carries the caller-supplied fields of an upload record.
type DocumentInput struct {
	CaseID       string
	UploaderID   string
	UploaderRole models.Role
	Type         string
	Filename     string
	Size         int64
}

// AddDocument records upload metadata. Documents are immutable after
// creation except for deletion.
func (s *Store) AddDocument(in DocumentInput) models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := models.Document{
		DocID:        uuid.NewString(),
		CaseID:       in.CaseID,
		UploaderID:   in.UploaderID,
		UploaderRole: in.UploaderRole,
		Type:         in.Type,
		Filename:     in.Filename,
		Size:         in.Size,
		UploadedAt:   s.now(),
	}
	s.documents = append(s.documents, d)
	return d
}

// DeleteDocument removes the record.
func (s *Store) DeleteDocument(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.documents {
		if s.documents[i].DocID == id {
			s.documents = append(s.documents[:i], s.documents[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// DocumentByID returns a copy of the record.
func (s *Store) DocumentByID(id string) (models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, d := range s.documents {
		if d.DocID == id {
			return d, nil
		}
	}
	return models.Document{}, ErrNotFound
}

// DocumentsByCase returns all documents uploaded to a case.
func (s *Store) DocumentsByCase(caseID string) []models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Document{}
	for _, d := range s.documents {
		if d.CaseID == caseID {
			out = append(out, d)
		}
	}
	return out
}
