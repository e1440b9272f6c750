package event

// Type identifies the type of domain event
type Type string

const (
	TypeRenewalInitiated    Type = "renewal.initiated"
	TypeTerminationCreated  Type = "termination.created"
	TypeDecisionSubmitted   Type = "decision.submitted"
	TypeInstanceCompleted   Type = "instance.completed"
	TypeInstanceRejected    Type = "instance.rejected"
	TypeDossierUploaded     Type = "dossier.uploaded"
	TypeSummaryReady        Type = "summary.ready"
)

// String returns the string representation of the event type
func (t Type) String() string {
	return string(t)
}

// IsValid checks if the event type is one of the defined constants
func (t Type) IsValid() bool {
	switch t {
	case TypeRenewalInitiated,
		TypeTerminationCreated,
		TypeDecisionSubmitted,
		TypeInstanceCompleted,
		TypeInstanceRejected,
		TypeDossierUploaded,
		TypeSummaryReady:
		return true
	default:
		return false
	}
}
