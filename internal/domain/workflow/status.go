package workflow

import (
	"fmt"
	"strings"
)

// statusKind discriminates the status variants
type statusKind int

const (
	kindSubmitted statusKind = iota
	kindRoleApproved
	kindRoleRejected
	kindCompleted
)

// Status is the workflow state of an instance. It is a tagged value
// internally and serializes to the legacy display strings ("Submitted",
// "Dean Approved", "HR Rejected", "Completed") at the storage boundary,
// so the same value is both the persisted column and the UI label.
type Status struct {
	kind statusKind
	role Role
}

// Submitted is the initial status of every instance
func Submitted() Status {
	return Status{kind: kindSubmitted}
}

// Approved is the status after the given role approves a non-terminal step
func Approved(role Role) Status {
	return Status{kind: kindRoleApproved, role: role}
}

// Rejected is the terminal status after the given role rejects
func Rejected(role Role) Status {
	return Status{kind: kindRoleRejected, role: role}
}

// Completed is the terminal status after the terminal role approves
func Completed() Status {
	return Status{kind: kindCompleted}
}

// IsTerminal returns true when no further decisions are possible:
// Completed, or rejected by any role.
func (s Status) IsTerminal() bool {
	return s.kind == kindCompleted || s.kind == kindRoleRejected
}

// IsSubmitted returns true for the initial status
func (s Status) IsSubmitted() bool {
	return s.kind == kindSubmitted
}

// IsCompleted returns true for the Completed status
func (s Status) IsCompleted() bool {
	return s.kind == kindCompleted
}

// IsRejected returns true when any role rejected the instance
func (s Status) IsRejected() bool {
	return s.kind == kindRoleRejected
}

// Role returns the role embedded in an approved/rejected status,
// or false for Submitted and Completed.
func (s Status) Role() (Role, bool) {
	if s.kind == kindRoleApproved || s.kind == kindRoleRejected {
		return s.role, true
	}
	return "", false
}

// String returns the legacy storage/display representation
func (s Status) String() string {
	switch s.kind {
	case kindSubmitted:
		return "Submitted"
	case kindRoleApproved:
		return string(s.role) + " Approved"
	case kindRoleRejected:
		return string(s.role) + " Rejected"
	case kindCompleted:
		return "Completed"
	}
	return ""
}

// ParseStatus converts a stored status string back to a Status value
func ParseStatus(raw string) (Status, error) {
	switch raw {
	case "Submitted":
		return Submitted(), nil
	case "Completed":
		return Completed(), nil
	}

	if name, ok := strings.CutSuffix(raw, " Approved"); ok {
		role := Role(name)
		if role.IsValid() {
			return Approved(role), nil
		}
	}
	if name, ok := strings.CutSuffix(raw, " Rejected"); ok {
		role := Role(name)
		if role.IsValid() {
			return Rejected(role), nil
		}
	}

	return Status{}, fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
}
