// Package lifecycle encodes the canonical progression of a case through its
// six tracked stages and the derived views the portal renders from it.
package lifecycle

import (
	"errors"
	"fmt"
	"math"

	"github.com/Harishrk21/sudind-connect-sub000/pkg/models"
)

// ErrInvalidTransition is returned when a status change would move a case
// backwards along its canonical order.
var ErrInvalidTransition = errors.New("invalid status transition")

// StepCount is the number of tracked stages in every case path.
const StepCount = 6

var sharedHead = []models.CaseStatus{
	models.CaseNew,
	models.CaseReview,
	models.CasePending,
	models.CaseApproved,
}

// StatusOrder returns the six tracked statuses for a case type. Index 4 is
// under_treatment for medical cases and under_admission for academic ones;
// the other five positions are shared. closed is deliberately not part of
// the order: it sits past the end as the terminal administrative state.
func StatusOrder(t models.CaseType) []models.CaseStatus {
	branch := models.CaseUnderTreatment
	if t == models.CaseAcademic {
		branch = models.CaseUnderAdmission
	}
	order := make([]models.CaseStatus, 0, StepCount)
	order = append(order, sharedHead...)
	return append(order, branch, models.CaseCompleted)
}

// position maps a status to its index in the type's order. closed maps to
// StepCount (beyond the last tracked step). An unknown status, or the branch
// status of the other case type, is a programming error: the enum is closed
// and callers must not hand us foreign values.
func position(s models.CaseStatus, t models.CaseType) int {
	if s == models.CaseClosed {
		return StepCount
	}
	for i, st := range StatusOrder(t) {
		if st == s {
			return i
		}
	}
	panic(fmt.Sprintf("lifecycle: status %q not in %s order", s, t))
}

// Known reports whether s is a valid status for a case of type t.
func Known(s models.CaseStatus, t models.CaseType) bool {
	if s == models.CaseClosed {
		return true
	}
	for _, st := range StatusOrder(t) {
		if st == s {
			return true
		}
	}
	return false
}

// IsCompletedUpTo reports whether candidate is at or before current in the
// canonical order, i.e. whether the portal should render candidate's step
// with a "done" checkmark.
func IsCompletedUpTo(current, candidate models.CaseStatus, t models.CaseType) bool {
	return position(candidate, t) <= position(current, t)
}

// ProgressPercent reports how far along its path a case at the given status
// is. A status at index i counts i+1 completed steps out of six, so a fresh
// case already shows ~17% and completed or closed shows 100%.
func ProgressPercent(current models.CaseStatus, t models.CaseType) int {
	done := position(current, t) + 1
	if done > StepCount {
		done = StepCount
	}
	return int(math.Round(100 * float64(done) / float64(StepCount)))
}

// ValidateTransition permits only forward movement along the canonical order
// (skipping steps is allowed; going back is not). Closing is allowed from any
// state; reopening a closed case is not. This guard did not exist in the
// original portal, which let any status be written over any other; it is a
// deliberate integrity change, and the store exposes a force flag for admins
// that bypasses it.
func ValidateTransition(current, next models.CaseStatus, t models.CaseType) error {
	if !Known(next, t) {
		return fmt.Errorf("%w: %q is not a %s status", ErrInvalidTransition, next, t)
	}
	if position(next, t) < position(current, t) {
		return fmt.Errorf("%w: %s → %s moves backwards", ErrInvalidTransition, current, next)
	}
	return nil
}

/* ============================ Display tables ============================ */

var labels = map[models.CaseStatus]string{
	models.CaseNew:            "New",
	models.CaseReview:         "Under Review",
	models.CasePending:        "Pending Documents",
	models.CaseApproved:       "Approved",
	models.CaseUnderTreatment: "Under Treatment",
	models.CaseUnderAdmission: "Under Admission",
	models.CaseCompleted:      "Completed",
	models.CaseClosed:         "Closed",
}

var descriptions = map[models.CaseStatus]string{
	models.CaseNew:            "The case has been created and is awaiting initial review.",
	models.CaseReview:         "An agent is reviewing the case details and requirements.",
	models.CasePending:        "Additional documents or information are required from the client.",
	models.CaseApproved:       "The case has been approved and institution arrangements are underway.",
	models.CaseUnderTreatment: "The patient is receiving treatment at the assigned hospital.",
	models.CaseUnderAdmission: "The student's admission is being processed by the university.",
	models.CaseCompleted:      "All case activities have been completed successfully.",
	models.CaseClosed:         "The case has been closed and archived.",
}

// Label returns the human-readable name of a status.
func Label(s models.CaseStatus) string { return labels[s] }

// Description returns the explanatory text shown under a timeline step.
func Description(s models.CaseStatus) string { return descriptions[s] }

/* ============================== Timeline ================================ */

// Step is one entry of a case's rendered timeline.
type Step struct {
	Status      models.CaseStatus `json:"status"`
	Label       string            `json:"label"`
	Description string            `json:"description"`
	Done        bool              `json:"done"`
	Current     bool              `json:"current"`
}

// Timeline returns the six steps of a case's path with done/current flags
// relative to the given status.
func Timeline(current models.CaseStatus, t models.CaseType) []Step {
	steps := make([]Step, 0, StepCount)
	for _, st := range StatusOrder(t) {
		steps = append(steps, Step{
			Status:      st,
			Label:       Label(st),
			Description: Description(st),
			Done:        IsCompletedUpTo(current, st, t),
			Current:     st == current,
		})
	}
	return steps
}
