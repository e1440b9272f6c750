package workflow

// Decision is an approver's verdict on a pending step
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// String returns the string representation of the decision
func (d Decision) String() string {
	return string(d)
}

// IsValid returns true if the decision is one of the two recognized values
func (d Decision) IsValid() bool {
	return d == DecisionApprove || d == DecisionReject
}

// StepStatus is the state of a single ledger entry
type StepStatus string

const (
	StepPending  StepStatus = "Pending"
	StepApproved StepStatus = "Approved"
	StepRejected StepStatus = "Rejected"
)

// String returns the string representation of the step status
func (s StepStatus) String() string {
	return string(s)
}

// Resolved returns true once the step has been decided
func (s StepStatus) Resolved() bool {
	return s == StepApproved || s == StepRejected
}
