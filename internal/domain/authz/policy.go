package authz

import "github.com/crewbase/crewbase-mcp/internal/domain/identity"

// Operation is a policy-gated operation class.
type Operation string

const (
	OpReadProject       Operation = "read_project"
	OpViewFinancials    Operation = "view_financials"
	OpMutateProject     Operation = "mutate_project"
	OpAddComment        Operation = "add_comment"
	OpSuggestForProject Operation = "suggest_for_project"
	OpGenerateContent   Operation = "generate_content"
	OpCreateProject     Operation = "create_project"
	OpDeleteProject     Operation = "delete_project"
)

// Allows is the policy table: a pure predicate over the caller and their
// resolved membership. Financial visibility is wider than mutation rights
// (clients see their own invoices but cannot edit project data). Deletion
// requires ownership and is never granted on role alone, ADMIN included.
func Allows(op Operation, caller identity.Caller, m Membership) bool {
	admin := caller.Role == identity.RoleAdmin
	switch op {
	case OpReadProject, OpAddComment:
		return admin || m.IsOwner || m.IsClient || m.IsMember
	case OpViewFinancials:
		return admin || m.IsOwner || m.IsClient
	case OpMutateProject, OpSuggestForProject:
		return admin || m.IsOwner
	case OpCreateProject, OpGenerateContent:
		return admin || caller.Role == identity.RoleUser
	case OpDeleteProject:
		return m.IsOwner
	}
	return false
}

// AllowsByRole reports whether op is granted on role alone, with no
// membership at all. This encodes the ADMIN bypass for read-class
// operations: when it holds, membership resolution can be skipped.
func AllowsByRole(op Operation, caller identity.Caller) bool {
	return Allows(op, caller, Membership{})
}

// Reason returns the human-readable denial reason for op. Denials are
// all-or-nothing per operation class; no redacted partial data.
func Reason(op Operation) string {
	switch op {
	case OpReadProject:
		return "you do not have permission to view this project"
	case OpViewFinancials:
		return "only project owners, clients, or administrators can view financial details"
	case OpMutateProject:
		return "only the project owner or an administrator can modify project data"
	case OpAddComment:
		return "you do not have permission to comment on this project"
	case OpSuggestForProject:
		return "only the project owner or an administrator can generate suggestions for this project"
	case OpGenerateContent:
		return "your role is not authorized to generate content"
	case OpCreateProject:
		return "only ADMIN or USER roles can create projects"
	case OpDeleteProject:
		return "only the project owner can delete a project"
	}
	return "operation not permitted"
}
