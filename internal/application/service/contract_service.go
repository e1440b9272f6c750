package service

import (
	"context"
	"fmt"

	"github.com/facultyops/renewal-workflow/internal/application/port"
	"github.com/facultyops/renewal-workflow/internal/domain/workflow"
)

const contractDateLayout = "2006-01-02"

// ContractService produces the renewal confirmation document for a
// completed application.
type ContractService interface {
	RenderConfirmation(ctx context.Context, applicationID int64) ([]byte, error)
}

type contractServiceImpl struct {
	renewalRepo port.RenewalRepository
	facultyRepo port.FacultyRepository
	stepRepo    port.StepRepository
	renderer    port.ContractRenderer
	logger      Logger
}

// NewContractService creates a new ContractService
func NewContractService(
	renewalRepo port.RenewalRepository,
	facultyRepo port.FacultyRepository,
	stepRepo port.StepRepository,
	renderer port.ContractRenderer,
	logger Logger,
) ContractService {
	return &contractServiceImpl{
		renewalRepo: renewalRepo,
		facultyRepo: facultyRepo,
		stepRepo:    stepRepo,
		renderer:    renderer,
		logger:      logger,
	}
}

// RenderConfirmation renders the confirmation document for a Completed application
func (s *contractServiceImpl) RenderConfirmation(ctx context.Context, applicationID int64) ([]byte, error) {
	app, err := s.renewalRepo.GetByID(ctx, applicationID)
	if err != nil {
		s.logger.Error("Failed to get application", "error", err, "application_id", applicationID)
		return nil, err
	}
	if app == nil {
		return nil, workflow.ErrInstanceNotFound
	}
	status, err := workflow.ParseStatus(app.Status)
	if err != nil {
		return nil, err
	}
	if !status.IsCompleted() {
		return nil, fmt.Errorf("%w: application %d is %s", workflow.ErrNotCompleted, applicationID, app.Status)
	}

	faculty, err := s.facultyRepo.GetByID(ctx, app.FacultyID)
	if err != nil {
		s.logger.Error("Failed to get faculty", "error", err, "faculty_id", app.FacultyID)
		return nil, err
	}
	if faculty == nil {
		return nil, workflow.ErrFacultyNotFound
	}

	steps, err := s.stepRepo.GetByInstanceID(ctx, workflow.KindRenewal, applicationID)
	if err != nil {
		s.logger.Error("Failed to load step ledger", "error", err, "application_id", applicationID)
		return nil, err
	}
	approvalDates := make(map[workflow.Role]string, len(steps))
	for _, step := range steps {
		if step.Status == workflow.StepApproved && step.ActionDate != nil {
			approvalDates[step.Role] = step.ActionDate.Format(contractDateLayout)
		}
	}

	// Completion already extended the contract, so the pre-renewal
	// expiration is the current one rolled back by the granted years.
	newExpiration := faculty.ContractExpiration
	previousExpiration := newExpiration.AddDate(-app.RenewalYears, 0, 0)

	data := &port.ContractData{
		FacultyName:        faculty.FullName(),
		BannerID:           faculty.BannerID,
		JobTitle:           faculty.JobTitle,
		Department:         faculty.Department,
		RenewalYears:       app.RenewalYears,
		PreviousExpiration: previousExpiration.Format(contractDateLayout),
		NewExpiration:      newExpiration.Format(contractDateLayout),
		ApprovalDates:      approvalDates,
	}
	doc, err := s.renderer.Render(ctx, data)
	if err != nil {
		s.logger.Error("Failed to render confirmation", "error", err, "application_id", applicationID)
		return nil, err
	}

	s.logger.Info("Confirmation rendered", "application_id", applicationID, "bytes", len(doc))
	return doc, nil
}
