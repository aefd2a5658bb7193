package services

import (
	"fmt"

	"activity-portal-api/models"
)

// Action identifies a status-changing operation on a submission.
type Action string

const (
	ActionCreate             Action = "create"
	ActionValidationComplete Action = "validation-complete"
	ActionDepartmentReview   Action = "department-review"
	ActionFinalDecision      Action = "final-decision"
	ActionAmend              Action = "amend"
)

// ErrTransitionNotAllowed is wrapped by Transition when the action is not
// permitted from the current status.
var ErrTransitionNotAllowed = fmt.Errorf("transition not allowed")

// ErrInvalidStatus is wrapped when a status outside the closed enumeration
// is supplied.
var ErrInvalidStatus = fmt.Errorf("invalid status")

// transitionRule describes one action in the lifecycle. An empty From set
// means the action applies from any status; an empty To means the action
// carries its own target status (the administrative decision).
type transitionRule struct {
	From []string
	To   string
}

var transitions = map[Action]transitionRule{
	ActionCreate: {
		To: models.StatusPendingValidation,
	},
	ActionValidationComplete: {
		From: []string{models.StatusPendingValidation},
		To:   models.StatusAwaitingIntimaReview,
	},
	// A department review forces the parent back under INTIMA review from
	// any status, terminal ones included. That overwrite is mandated
	// behavior; the audit log keeps it observable.
	ActionDepartmentReview: {
		To: models.StatusAwaitingIntimaReview,
	},
	ActionFinalDecision: {},
	ActionAmend: {
		From: []string{models.StatusRequiresAmendment},
		To:   models.StatusAwaitingIntimaReview,
	},
}

// Transition computes the status that results from applying action to a
// submission currently in current. target is only consulted for
// ActionFinalDecision and must then be a member of the closed enumeration.
func Transition(current string, action Action, target string) (string, error) {
	rule, ok := transitions[action]
	if !ok {
		return "", fmt.Errorf("%w: unknown action %q", ErrTransitionNotAllowed, action)
	}

	if action != ActionCreate && !models.ValidStatus(current) {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, current)
	}

	if len(rule.From) > 0 {
		allowed := false
		for _, from := range rule.From {
			if from == current {
				allowed = true
				break
			}
		}
		if !allowed {
			return "", fmt.Errorf("%w: %s from %q", ErrTransitionNotAllowed, action, current)
		}
	}

	if rule.To != "" {
		return rule.To, nil
	}

	if !models.ValidStatus(target) {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, target)
	}
	return target, nil
}

// ProgressStages is the ordered set of lifecycle stages shown by tracker
// views. Amendment sits after INTIMA review because that is the only edge
// that can reach it.
var ProgressStages = []string{
	models.StatusPendingValidation,
	models.StatusAwaitingIntimaReview,
	models.StatusRequiresAmendment,
	models.StatusApproved,
}

// StageIndex returns the tracker position for a status. Rejected shares the
// final slot with Approved.
func StageIndex(status string) int {
	if status == models.StatusRejected {
		return len(ProgressStages) - 1
	}
	for i, stage := range ProgressStages {
		if stage == status {
			return i
		}
	}
	return 0
}
