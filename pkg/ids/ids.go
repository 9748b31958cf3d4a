// Package ids derives the human-readable sequential identifiers used for
// cases, invoices, and contracts. The scheme is count-based: callers must
// serialize creation (the store does this under its write lock) or two
// writers starting from the same snapshot would mint the same ID.
package ids

import (
	"errors"
	"fmt"

	"github.com/Harishrk21/sudind-connect-sub000/pkg/models"
)

// ErrCollision is returned when a freshly derived ID already exists in the
// snapshot it was derived from.
var ErrCollision = errors.New("identifier collision")

const invoiceBase = 1001

// NextCaseID returns the next case identifier for the given type, e.g.
// MED-003 or ACAD-001. Medical and academic sequences are independent.
func NextCaseID(existing []models.Case, t models.CaseType) (string, error) {
	prefix := "MED"
	if t == models.CaseAcademic {
		prefix = "ACAD"
	}
	n := 0
	for _, c := range existing {
		if c.Type == t {
			n++
		}
	}
	id := fmt.Sprintf("%s-%03d", prefix, n+1)
	for _, c := range existing {
		if c.CaseID == id {
			return "", fmt.Errorf("%w: %s", ErrCollision, id)
		}
	}
	return id, nil
}

// NextInvoiceID returns the next invoice identifier, e.g. INV-1001 for the
// first invoice.
func NextInvoiceID(existing []models.Invoice) (string, error) {
	id := fmt.Sprintf("INV-%d", invoiceBase+len(existing))
	for _, inv := range existing {
		if inv.InvoiceID == id {
			return "", fmt.Errorf("%w: %s", ErrCollision, id)
		}
	}
	return id, nil
}

// NextContractID returns the next contract identifier, e.g. CNT-001.
func NextContractID(existing []models.Contract) (string, error) {
	id := fmt.Sprintf("CNT-%03d", len(existing)+1)
	for _, ct := range existing {
		if ct.ContractID == id {
			return "", fmt.Errorf("%w: %s", ErrCollision, id)
		}
	}
	return id, nil
}
