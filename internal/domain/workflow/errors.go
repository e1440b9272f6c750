package workflow

import "errors"

// Validation errors: bad input, no state change.
var (
	// ErrInvalidDecision is returned when a decision is neither approve nor reject
	ErrInvalidDecision = errors.New("invalid decision")

	// ErrMissingYearsGranted is returned when a non-HR renewal approval omits the years selection
	ErrMissingYearsGranted = errors.New("years granted is required for this approval")

	// ErrMissingFields is returned when a creation request omits required fields
	ErrMissingFields = errors.New("missing required fields")

	// ErrInvalidStatus is returned when a stored status string cannot be parsed
	ErrInvalidStatus = errors.New("invalid workflow status")
)

// Authorization errors: actor mismatch, no state change.
var (
	// ErrNotAuthorizedStep is returned when the acting role holds no pending step on the instance
	ErrNotAuthorizedStep = errors.New("no pending approval step for this role")

	// ErrNotAuthorized is returned when the actor does not own the resource
	ErrNotAuthorized = errors.New("not authorized")
)

// Conflict and invariant errors. A multiple-pending ledger is a data
// integrity bug and is surfaced rather than guessed around.
var (
	// ErrNoPendingStep is returned when the ledger holds zero or multiple pending steps
	ErrNoPendingStep = errors.New("instance has no single pending step")

	// ErrDuplicateActiveApplication is returned when a faculty member already has a live renewal
	ErrDuplicateActiveApplication = errors.New("active renewal application already exists")

	// ErrNoEligibleUser is returned when no active user holds the next approver role
	ErrNoEligibleUser = errors.New("no eligible user for approver role")

	// ErrNotCancelable is returned when a termination request has already entered review
	ErrNotCancelable = errors.New("request can no longer be cancelled")

	// ErrNotCompleted is returned when an operation requires a Completed instance
	ErrNotCompleted = errors.New("instance has not completed its approval chain")
)

// Lookup errors.
var (
	// ErrFacultyNotFound is returned when the referenced faculty record does not exist
	ErrFacultyNotFound = errors.New("faculty not found")

	// ErrInstanceNotFound is returned when the referenced workflow instance does not exist
	ErrInstanceNotFound = errors.New("workflow instance not found")
)
