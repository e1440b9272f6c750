package entity

import (
	"time"

	"github.com/facultyops/renewal-workflow/internal/domain/workflow"
)

// ApprovalStep is one ledger entry: a single role's decision (or the
// pending wait for one) on a workflow instance. Steps are created when
// the workflow advances to a role and resolved exactly once.
//
// Invariants enforced by the transition engine:
//   - at most one Pending step per instance at any time
//   - at most one resolved step per role per instance
type ApprovalStep struct {
	ID             int64               `json:"id"`
	Kind           workflow.Kind       `json:"workflow_kind"`
	InstanceID     int64               `json:"instance_id"`
	Role           workflow.Role       `json:"role"`
	AssigneeUserID int64               `json:"assignee_user_id"`
	Status         workflow.StepStatus `json:"status"`
	YearsGranted   *int                `json:"years_granted,omitempty"`
	Comments       string              `json:"comments,omitempty"`
	ActionDate     *time.Time          `json:"action_date,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
}

// IsPending returns true while the step awaits a decision
func (s *ApprovalStep) IsPending() bool {
	return s.Status == workflow.StepPending
}
