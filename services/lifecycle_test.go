package services

import (
	"errors"
	"testing"

	"activity-portal-api/models"
)

func TestTransitionCreateForcesPendingValidation(t *testing.T) {
	status, err := Transition("", ActionCreate, "")
	if err != nil {
		t.Fatalf("create transition returned error: %v", err)
	}
	if status != models.StatusPendingValidation {
		t.Fatalf("expected %q, got %q", models.StatusPendingValidation, status)
	}
}

func TestTransitionValidationComplete(t *testing.T) {
	status, err := Transition(models.StatusPendingValidation, ActionValidationComplete, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != models.StatusAwaitingIntimaReview {
		t.Fatalf("expected %q, got %q", models.StatusAwaitingIntimaReview, status)
	}

	if _, err := Transition(models.StatusApproved, ActionValidationComplete, ""); !errors.Is(err, ErrTransitionNotAllowed) {
		t.Fatalf("expected ErrTransitionNotAllowed, got %v", err)
	}
}

func TestTransitionDepartmentReviewForcesIntimaReviewFromAnyStatus(t *testing.T) {
	for _, current := range []string{
		models.StatusPendingValidation,
		models.StatusAwaitingIntimaReview,
		models.StatusRequiresAmendment,
		models.StatusApproved,
		models.StatusRejected,
	} {
		status, err := Transition(current, ActionDepartmentReview, "")
		if err != nil {
			t.Fatalf("department review from %q returned error: %v", current, err)
		}
		if status != models.StatusAwaitingIntimaReview {
			t.Fatalf("department review from %q: expected %q, got %q",
				current, models.StatusAwaitingIntimaReview, status)
		}
	}
}

func TestTransitionAmendOnlyFromRequiresAmendment(t *testing.T) {
	status, err := Transition(models.StatusRequiresAmendment, ActionAmend, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != models.StatusAwaitingIntimaReview {
		t.Fatalf("expected %q, got %q", models.StatusAwaitingIntimaReview, status)
	}

	for _, current := range []string{
		models.StatusPendingValidation,
		models.StatusAwaitingIntimaReview,
		models.StatusApproved,
		models.StatusRejected,
	} {
		if _, err := Transition(current, ActionAmend, ""); !errors.Is(err, ErrTransitionNotAllowed) {
			t.Fatalf("amend from %q: expected ErrTransitionNotAllowed, got %v", current, err)
		}
	}
}

func TestTransitionFinalDecisionValidatesTarget(t *testing.T) {
	status, err := Transition(models.StatusAwaitingIntimaReview, ActionFinalDecision, models.StatusApproved)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != models.StatusApproved {
		t.Fatalf("expected %q, got %q", models.StatusApproved, status)
	}

	if _, err := Transition(models.StatusAwaitingIntimaReview, ActionFinalDecision, "Escalated"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus for out-of-enumeration target, got %v", err)
	}
}

func TestTransitionRejectsInvalidCurrentStatus(t *testing.T) {
	if _, err := Transition("Lost In Transit", ActionDepartmentReview, ""); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestStageIndex(t *testing.T) {
	if got := StageIndex(models.StatusPendingValidation); got != 0 {
		t.Fatalf("expected stage 0, got %d", got)
	}
	if got := StageIndex(models.StatusRequiresAmendment); got != 2 {
		t.Fatalf("expected stage 2, got %d", got)
	}
	if StageIndex(models.StatusApproved) != StageIndex(models.StatusRejected) {
		t.Fatal("Approved and Rejected should share the final stage")
	}
}
