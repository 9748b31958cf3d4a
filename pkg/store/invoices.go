package store

import (
	"time"

	"github.com/Harishrk21/sudind-connect-sub000/pkg/ids"
	"github.com/Harishrk21/sudind-connect-sub000/pkg/models"
)

// InvoiceInput carries the caller-supplied fields of a new invoice.
type InvoiceInput struct {
	CaseID      string
	ClientID    string
	AmountCents int64
	Currency    string
	Description string
	DueDate     time.Time
}

// AddInvoice mints the next INV-<n> identifier and appends a pending invoice.
func (s *Store) AddInvoice(in InvoiceInput) (models.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := ids.NextInvoiceID(s.invoices)
	if err != nil {
		return models.Invoice{}, err
	}
	inv := models.Invoice{
		InvoiceID:   id,
		CaseID:      in.CaseID,
		ClientID:    in.ClientID,
		AmountCents: in.AmountCents,
		Currency:    in.Currency,
		Status:      models.InvoicePending,
		Description: in.Description,
		IssuedAt:    s.now(),
		DueDate:     in.DueDate,
	}
	s.invoices = append(s.invoices, inv)
	return inv, nil
}

// MarkInvoicePaid sets status paid and stamps PaidAt. Calling it again is
// idempotent apart from overwriting PaidAt with the later timestamp.
func (s *Store) MarkInvoicePaid(id string) (models.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.invoices {
		if s.invoices[i].InvoiceID != id {
			continue
		}
		now := s.now()
		s.invoices[i].Status = models.InvoicePaid
		s.invoices[i].PaidAt = &now
		return s.invoices[i], nil
	}
	return models.Invoice{}, ErrNotFound
}

// SweepOverdueInvoices flips pending invoices whose due date has passed to
// overdue and reports how many changed. Nothing triggers this automatically;
// it is driven externally (an admin endpoint here, a scheduled job in a real
// deployment).
func (s *Store) SweepOverdueInvoices(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for i := range s.invoices {
		if s.invoices[i].Status == models.InvoicePending && s.invoices[i].DueDate.Before(now) {
			s.invoices[i].Status = models.InvoiceOverdue
			n++
		}
	}
	return n
}

// DeleteInvoice removes the record.
func (s *Store) DeleteInvoice(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.invoices {
		if s.invoices[i].InvoiceID == id {
			s.invoices = append(s.invoices[:i], s.invoices[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// InvoiceByID returns a copy of the invoice.
func (s *Store) InvoiceByID(id string) (models.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, inv := range s.invoices {
		if inv.InvoiceID == id {
			return inv, nil
		}
	}
	return models.Invoice{}, ErrNotFound
}

// Invoices returns every invoice.
func (s *Store) Invoices() []models.Invoice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Invoice(nil), s.invoices...)
}

// InvoicesByCase returns the invoices issued against a case.
func (s *Store) InvoicesByCase(caseID string) []models.Invoice {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Invoice{}
	for _, inv := range s.invoices {
		if inv.CaseID == caseID {
			out = append(out, inv)
		}
	}
	return out
}

// InvoicesByClient returns the invoices billed to a client.
func (s *Store) InvoicesByClient(clientID string) []models.Invoice {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Invoice{}
	for _, inv := range s.invoices {
		if inv.ClientID == clientID {
			out = append(out, inv)
		}
	}
	return out
}
