package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_Hierarchy(t *testing.T) {
	assert.True(t, RoleSuperAdmin.AtLeast(RoleAdmin))
	assert.True(t, RoleAdmin.AtLeast(RolePatrol))
	assert.True(t, RolePatrol.AtLeast(RolePatrol))
	assert.False(t, RoleUser.AtLeast(RolePatrol))
	assert.False(t, Role("ghost").AtLeast(RoleUser))
	assert.False(t, RoleSuperAdmin.AtLeast(Role("ghost")))
}

func TestRole_IsAdmin(t *testing.T) {
	assert.True(t, RoleAdmin.IsAdmin())
	assert.True(t, RoleSuperAdmin.IsAdmin())
	assert.False(t, RolePatrol.IsAdmin())
	assert.False(t, RoleUser.IsAdmin())
	assert.False(t, Role("").IsAdmin())
}

func TestAuthorize_ReportAccessMatrix(t *testing.T) {
	report := &Report{UserID: "owner", PatrolUserID: "patrol"}

	relations := map[string]string{
		"owner":    "owner",
		"assigned": "patrol",
		"stranger": "someone-else",
	}

	roles := []Role{RoleUser, RolePatrol, RoleAdmin, RoleSuperAdmin}

	for _, role := range roles {
		for relName, callerID := range relations {
			want := relName != "stranger" || role.IsAdmin()
			err := Authorize(role, report.RelationTo(callerID), RuleReportAccess)
			if want {
				assert.NoError(t, err, "role=%s relation=%s", role, relName)
			} else {
				assert.ErrorIs(t, err, ErrForbidden, "role=%s relation=%s", role, relName)
			}
		}
	}
}

func TestAuthorize_RoleRules(t *testing.T) {
	cases := []struct {
		name  string
		role  Role
		rule  Rule
		allow bool
	}{
		{"user is authenticated", RoleUser, RuleAuthenticated, true},
		{"unknown role is not authenticated", Role("ghost"), RuleAuthenticated, false},
		{"user below patrol", RoleUser, RulePatrol, false},
		{"patrol meets patrol", RolePatrol, RulePatrol, true},
		{"admin above patrol", RoleAdmin, RulePatrol, true},
		{"patrol not admin", RolePatrol, RuleAdmin, false},
		{"admin is admin", RoleAdmin, RuleAdmin, true},
		{"superAdmin is admin", RoleSuperAdmin, RuleAdmin, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Authorize(tc.role, RelationNone, tc.rule)
			if tc.allow {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrForbidden)
			}
		})
	}
}

func TestAuthorize_SubjectAccess(t *testing.T) {
	assert.NoError(t, Authorize(RoleUser, SubjectRelation("u1", "u1"), RuleSubjectAccess))
	assert.ErrorIs(t, Authorize(RoleUser, SubjectRelation("u1", "u2"), RuleSubjectAccess), ErrForbidden)
	assert.ErrorIs(t, Authorize(RolePatrol, SubjectRelation("u1", "u2"), RuleSubjectAccess), ErrForbidden)
	assert.NoError(t, Authorize(RoleAdmin, SubjectRelation("u1", "u2"), RuleSubjectAccess))
	assert.Equal(t, RelationNone, SubjectRelation("", ""))
}

func TestAuthorize_ProofUploadExcludesOwner(t *testing.T) {
	report := &Report{UserID: "owner", PatrolUserID: "patrol"}
	assert.ErrorIs(t, Authorize(RoleUser, report.RelationTo("owner"), RuleProofUpload), ErrForbidden)
	assert.NoError(t, Authorize(RolePatrol, report.RelationTo("patrol"), RuleProofUpload))
	assert.NoError(t, Authorize(RoleAdmin, report.RelationTo("x"), RuleProofUpload))
}
