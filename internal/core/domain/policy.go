package domain

// Relation is the set of ways a caller relates to a resource.
type Relation uint8

const (
	RelationNone  Relation = 0
	RelationOwner Relation = 1 << iota
	RelationAssignedPatrol
	RelationSelf
)

// Rule describes who may perform an action.
//
// MinRole is a hierarchy floor. AdminOnly restricts the action to
// {admin, superAdmin}. Grants lists the relations that allow a caller through;
// admins always pass a Grants check.
type Rule struct {
	MinRole   Role
	AdminOnly bool
	Grants    Relation
}

var (
	// RuleAuthenticated admits any caller with a recognised role.
	RuleAuthenticated = Rule{MinRole: RoleUser}
	// RulePatrol admits patrol and above.
	RulePatrol = Rule{MinRole: RolePatrol}
	// RuleAdmin admits admin and superAdmin.
	RuleAdmin = Rule{AdminOnly: true}
	// RuleReportAccess admits the owner, the assigned patrol, or an admin.
	RuleReportAccess = Rule{Grants: RelationOwner | RelationAssignedPatrol}
	// RuleProofUpload admits the assigned patrol or an admin.
	RuleProofUpload = Rule{Grants: RelationAssignedPatrol}
	// RuleSubjectAccess admits the subject themself or an admin.
	RuleSubjectAccess = Rule{Grants: RelationSelf}
)

// Authorize is the single access decision for the whole service. It returns
// ErrForbidden when role, in relation rel to the resource, does not satisfy rule.
func Authorize(role Role, rel Relation, rule Rule) error {
	if rule.MinRole != "" && !role.AtLeast(rule.MinRole) {
		return ErrForbidden
	}
	if rule.AdminOnly && !role.IsAdmin() {
		return ErrForbidden
	}
	if rule.Grants == RelationNone {
		return nil
	}
	if role.IsAdmin() || rel&rule.Grants != 0 {
		return nil
	}
	return ErrForbidden
}

// SubjectRelation returns RelationSelf when callerID and subjectID match.
func SubjectRelation(callerID, subjectID string) Relation {
	if callerID != "" && callerID == subjectID {
		return RelationSelf
	}
	return RelationNone
}
