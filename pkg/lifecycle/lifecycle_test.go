package lifecycle

import (
	"errors"
	"testing"

	"github.com/Harishrk21/sudind-connect-sub000/pkg/models"
)

// Both orders must have exactly six steps and differ only at index 4.
func Test_StatusOrder_SixSteps_BranchAtIndexFour(t *testing.T) {
	med := StatusOrder(models.CaseMedical)
	acad := StatusOrder(models.CaseAcademic)

	if len(med) != StepCount || len(acad) != StepCount {
		t.Fatalf("want %d steps, got medical=%d academic=%d", StepCount, len(med), len(acad))
	}
	for i := range med {
		if i == 4 {
			continue
		}
		if med[i] != acad[i] {
			t.Fatalf("orders differ at index %d: %s vs %s", i, med[i], acad[i])
		}
	}
	if med[4] != models.CaseUnderTreatment {
		t.Fatalf("medical branch step = %s", med[4])
	}
	if acad[4] != models.CaseUnderAdmission {
		t.Fatalf("academic branch step = %s", acad[4])
	}
}

func Test_ProgressPercent_MonotoneAndEndpoints(t *testing.T) {
	for _, typ := range []models.CaseType{models.CaseMedical, models.CaseAcademic} {
		prev := -1
		for _, st := range StatusOrder(typ) {
			p := ProgressPercent(st, typ)
			if p < prev {
				t.Fatalf("%s/%s: progress %d dropped below %d", typ, st, p, prev)
			}
			prev = p
		}
		if p := ProgressPercent(models.CaseNew, typ); p != 17 {
			t.Fatalf("%s/new: want 17, got %d", typ, p)
		}
		if p := ProgressPercent(models.CaseApproved, typ); p != 67 {
			t.Fatalf("%s/approved: want 67, got %d", typ, p)
		}
		if p := ProgressPercent(models.CaseCompleted, typ); p != 100 {
			t.Fatalf("%s/completed: want 100, got %d", typ, p)
		}
		if p := ProgressPercent(models.CaseClosed, typ); p != 100 {
			t.Fatalf("%s/closed: want 100, got %d", typ, p)
		}
	}
}

func Test_IsCompletedUpTo(t *testing.T) {
	if !IsCompletedUpTo(models.CaseApproved, models.CaseReview, models.CaseMedical) {
		t.Fatal("review should be done once approved")
	}
	if IsCompletedUpTo(models.CaseReview, models.CaseApproved, models.CaseMedical) {
		t.Fatal("approved should not be done while in review")
	}
	if !IsCompletedUpTo(models.CaseApproved, models.CaseApproved, models.CaseMedical) {
		t.Fatal("current step counts as done")
	}
	if !IsCompletedUpTo(models.CaseClosed, models.CaseUnderAdmission, models.CaseAcademic) {
		t.Fatal("everything is done on a closed case")
	}
}

func Test_ValidateTransition_ForwardOnly(t *testing.T) {
	// Forward moves, including skips and closing, are fine.
	for _, tc := range []struct{ from, to models.CaseStatus }{
		{models.CaseNew, models.CaseReview},
		{models.CaseNew, models.CaseApproved},
		{models.CaseUnderTreatment, models.CaseCompleted},
		{models.CasePending, models.CaseClosed},
		{models.CaseApproved, models.CaseApproved},
	} {
		if err := ValidateTransition(tc.from, tc.to, models.CaseMedical); err != nil {
			t.Fatalf("%s → %s should be allowed: %v", tc.from, tc.to, err)
		}
	}

	// Backward moves and reopening are rejected.
	for _, tc := range []struct{ from, to models.CaseStatus }{
		{models.CaseApproved, models.CaseNew},
		{models.CaseCompleted, models.CaseUnderTreatment},
		{models.CaseClosed, models.CaseReview},
	} {
		err := ValidateTransition(tc.from, tc.to, models.CaseMedical)
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("%s → %s should be rejected, got %v", tc.from, tc.to, err)
		}
	}

	// The other type's branch status is not a valid target.
	err := ValidateTransition(models.CaseApproved, models.CaseUnderAdmission, models.CaseMedical)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("under_admission on a medical case should be rejected, got %v", err)
	}
}

func Test_Position_PanicsOnUnknownStatus(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unknown status")
		}
	}()
	_ = ProgressPercent(models.CaseStatus("bogus"), models.CaseMedical)
}

func Test_Timeline_FlagsAndLabels(t *testing.T) {
	steps := Timeline(models.CaseApproved, models.CaseAcademic)
	if len(steps) != StepCount {
		t.Fatalf("want %d steps, got %d", StepCount, len(steps))
	}
	for i, s := range steps {
		wantDone := i <= 3
		if s.Done != wantDone {
			t.Fatalf("step %d (%s): done=%v, want %v", i, s.Status, s.Done, wantDone)
		}
		if s.Current != (s.Status == models.CaseApproved) {
			t.Fatalf("step %d (%s): current flag wrong", i, s.Status)
		}
		if s.Label == "" || s.Description == "" {
			t.Fatalf("step %d (%s): missing display text", i, s.Status)
		}
	}
}
