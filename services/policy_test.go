package services

import (
	"testing"

	"activity-portal-api/models"
)

func TestStudentCapabilities(t *testing.T) {
	if !Allow(models.RoleStudent, CapSubmissionCreate) {
		t.Error("students should be able to create submissions")
	}
	if !Allow(models.RoleStudent, CapSubmissionAmend) {
		t.Error("students should be able to amend submissions")
	}
	if Allow(models.RoleStudent, CapSubmissionDecide) {
		t.Error("students must not issue final decisions")
	}
	if Allow(models.RoleStudent, CapUsersManage) {
		t.Error("students must not manage users")
	}
	if Allow(models.RoleStudent, CapDepartmentReview) {
		t.Error("students must not submit department reviews")
	}
	if !Allow(models.RoleStudent, CapValidationTrigger) {
		t.Error("students should be able to trigger validation")
	}
	if Allow(models.RoleStudent, CapActivityLogsRead) {
		t.Error("students must not read the audit trail")
	}
}

func TestIntimaCapabilities(t *testing.T) {
	for _, cap := range []Capability{
		CapSubmissionDecide,
		CapDepartmentReview,
		CapUsersManage,
		CapAffiliatesManage,
		CapActivityLogsRead,
	} {
		if !Allow(models.RoleIntima, cap) {
			t.Errorf("intima should hold %s", cap)
		}
	}
}

func TestUnknownRolesPassAdvisoryCheck(t *testing.T) {
	if !Allow("", CapSubmissionDecide) {
		t.Error("anonymous callers pass the advisory check")
	}
	if !Allow("advisor", CapSubmissionDecide) {
		t.Error("unknown roles pass the advisory check")
	}
}
