package port

import (
	"context"
	"time"

	"github.com/facultyops/renewal-workflow/internal/domain/entity"
	"github.com/facultyops/renewal-workflow/internal/domain/workflow"
)

// FacultyRepository defines persistence operations for Faculty
type FacultyRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Faculty, error)
	GetByBannerID(ctx context.Context, bannerID string) (*entity.Faculty, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Faculty, error)
	UpdateStatus(ctx context.Context, id int64, status entity.EmploymentStatus) error
	UpdateContractExpiration(ctx context.Context, id int64, expiration time.Time) error
}

// UserRepository defines persistence operations for User
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByBannerID(ctx context.Context, bannerID string) (*entity.User, error)
	// FirstActiveByRole returns the first active account holding the role,
	// or nil when no such account exists.
	FirstActiveByRole(ctx context.Context, role workflow.Role) (*entity.User, error)
}

// RenewalRepository defines persistence operations for RenewalApplication
type RenewalRepository interface {
	Create(ctx context.Context, app *entity.RenewalApplication) error
	GetByID(ctx context.Context, id int64) (*entity.RenewalApplication, error)
	// GetActiveByFacultyID returns the faculty member's non-terminal
	// application, or nil when none exists.
	GetActiveByFacultyID(ctx context.Context, facultyID int64) (*entity.RenewalApplication, error)
	GetLatestByFacultyID(ctx context.Context, facultyID int64) (*entity.RenewalApplication, error)
	// ListPendingForRole returns applications whose current pending step
	// belongs to the role, oldest submission first.
	ListPendingForRole(ctx context.Context, role workflow.Role) ([]*entity.RenewalApplication, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	// SetRenewalYears records the granted years. Implementations must not
	// overwrite a previously recorded positive value with zero.
	SetRenewalYears(ctx context.Context, id int64, years int) error
	SetDossierPath(ctx context.Context, id int64, path string) error
	SetSummary(ctx context.Context, id int64, summary string) error
	SetScores(ctx context.Context, id int64, scores entity.EvaluationScores) error
}

// TerminationRepository defines persistence operations for TerminationRequest
type TerminationRepository interface {
	Create(ctx context.Context, req *entity.TerminationRequest) error
	GetByID(ctx context.Context, id int64) (*entity.TerminationRequest, error)
	GetLatestByFacultyID(ctx context.Context, facultyID int64) (*entity.TerminationRequest, error)
	// ListPendingForRole returns requests whose current pending step
	// belongs to the role, oldest submission first.
	ListPendingForRole(ctx context.Context, role workflow.Role) ([]*entity.TerminationRequest, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	SetDocumentPath(ctx context.Context, id int64, path string) error
	SetSummary(ctx context.Context, id int64, summary string) error
	// Delete removes the request; approval steps cascade with it.
	Delete(ctx context.Context, id int64) error
}

// StepRepository defines persistence operations for the approval step
// ledger. Renewal and termination steps live in separate tables sharing
// one shape; the workflow kind selects the table.
type StepRepository interface {
	Create(ctx context.Context, step *entity.ApprovalStep) error
	GetByInstanceID(ctx context.Context, kind workflow.Kind, instanceID int64) ([]*entity.ApprovalStep, error)
	// GetPending returns all Pending steps for the instance. The engine
	// treats anything other than exactly one as an invariant violation.
	GetPending(ctx context.Context, kind workflow.Kind, instanceID int64) ([]*entity.ApprovalStep, error)
	// Resolve flips a step out of Pending exactly once, stamping the
	// decision, comments and action time. Returns the number of rows
	// changed so callers can detect a lost race.
	Resolve(ctx context.Context, kind workflow.Kind, stepID int64, status workflow.StepStatus, comments string, yearsGranted *int, actionDate time.Time) (int64, error)
}

// NotificationRepository defines persistence operations for Notification
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]*entity.Notification, error)
	MarkRead(ctx context.Context, id int64) error
}

// InstanceLookup groups the per-kind reads the transition engine needs
// without caring which concrete instance type it is driving.
type InstanceLookup struct {
	Status    string
	FacultyID int64
}

// TransactionManager handles database transactions
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
