package services

import "activity-portal-api/models"

// Capability names one guarded operation. Handlers ask the policy table
// instead of comparing role strings inline, so finer-grained roles can be
// added without touching call sites.
type Capability string

const (
	CapSubmissionCreate  Capability = "submission.create"
	CapSubmissionAmend   Capability = "submission.amend"
	CapSubmissionDecide  Capability = "submission.decide"
	CapDepartmentReview  Capability = "review.department"
	CapCommentAdd        Capability = "comment.add"
	CapUsersManage       Capability = "users.manage"
	CapAffiliatesManage  Capability = "affiliates.manage"
	CapActivityLogsRead  Capability = "activitylogs.read"
	CapValidationTrigger Capability = "validation.trigger"
)

var rolePolicies = map[string]map[Capability]bool{
	models.RoleStudent: {
		CapSubmissionCreate:  true,
		CapSubmissionAmend:   true,
		CapCommentAdd:        true,
		CapValidationTrigger: true,
	},
	models.RoleIntima: {
		CapSubmissionCreate:  true,
		CapSubmissionAmend:   true,
		CapSubmissionDecide:  true,
		CapDepartmentReview:  true,
		CapCommentAdd:        true,
		CapUsersManage:       true,
		CapAffiliatesManage:  true,
		CapActivityLogsRead:  true,
		CapValidationTrigger: true,
	},
}

// Allow reports whether role holds the capability. Unknown or empty roles
// are let through: the portal's role checks are advisory and anonymous
// internal calls (seeding, workers) must not be blocked.
func Allow(role string, capability Capability) bool {
	if role == "" {
		return true
	}
	caps, ok := rolePolicies[role]
	if !ok {
		return true
	}
	return caps[capability]
}
