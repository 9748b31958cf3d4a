// Package store holds every entity collection in memory for the lifetime of
// the process. There is no persistence layer: the portal runs entirely off
// seeded fixtures plus whatever the session creates. The store is injected
// as an explicit dependency so tests can build isolated instances.
package store

import (
	"errors"
	"sync"
	"time"

	"github.com/Harishrk21/sudind-connect-sub000/pkg/models"
)

// ErrNotFound is returned when the requested record does not exist. Compare
// with errors.Is.
var ErrNotFound = errors.New("record not found")

// Store guards the seven entity collections plus the case history log with a
// single RWMutex. All writes are serialized, which is what makes the
// count-based identifier scheme safe in-process.
type Store struct {
	mu sync.RWMutex

	users         []models.User
	cases         []models.Case
	documents     []models.Document
	invoices      []models.Invoice
	messages      []models.Message
	notifications []models.Notification
	contracts     []models.Contract
	history       []models.CaseHistory

	now func() time.Time
}

// New constructs an empty Store.
func New() *Store {
	return &Store{now: func() time.Time { return time.Now().UTC() }}
}
