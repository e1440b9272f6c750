package service

import (
	"context"
	"fmt"
	"time"

	"github.com/facultyops/renewal-workflow/internal/application/port"
	"github.com/facultyops/renewal-workflow/internal/domain/entity"
	"github.com/facultyops/renewal-workflow/internal/domain/event"
	"github.com/facultyops/renewal-workflow/internal/domain/workflow"
)

// CreateTerminationInput carries the fields a new separation request needs
type CreateTerminationInput struct {
	FacultyID            int64
	Type                 entity.TerminationType
	Reason               string
	LastWorkingDate      time.Time
	NoticeDate           time.Time
	NoticePeriodAccepted bool
	MonthsInLieu         int
}

// TerminationService manages separation requests
type TerminationService interface {
	// Create files a separation request, moves the faculty member to
	// Termination Pending and queues the first approval step with the dean.
	Create(ctx context.Context, input CreateTerminationInput) (*entity.TerminationRequest, error)
	// Cancel withdraws a request that has not entered review. Only the
	// faculty member who is the subject of the request may cancel, and
	// only while the status is still Submitted.
	Cancel(ctx context.Context, id int64, actorUserID int64) error
	GetRequest(ctx context.Context, id int64) (*entity.TerminationRequest, error)
	GetLatestForFaculty(ctx context.Context, facultyID int64) (*entity.TerminationRequest, error)
	ListPendingForRole(ctx context.Context, role workflow.Role) ([]*entity.TerminationRequest, error)
	// AttachDocument records the supporting document path and kicks off
	// asynchronous summarization.
	AttachDocument(ctx context.Context, id int64, documentPath string) error
}

type terminationServiceImpl struct {
	terminationRepo port.TerminationRepository
	facultyRepo     port.FacultyRepository
	userRepo        port.UserRepository
	stepRepo        port.StepRepository
	selector        port.ApproverSelector
	txManager       port.TransactionManager
	emitter         EventEmitter
	logger          Logger
}

// NewTerminationService creates a new TerminationService
func NewTerminationService(
	terminationRepo port.TerminationRepository,
	facultyRepo port.FacultyRepository,
	userRepo port.UserRepository,
	stepRepo port.StepRepository,
	selector port.ApproverSelector,
	txManager port.TransactionManager,
	emitter EventEmitter,
	logger Logger,
) TerminationService {
	return &terminationServiceImpl{
		terminationRepo: terminationRepo,
		facultyRepo:     facultyRepo,
		userRepo:        userRepo,
		stepRepo:        stepRepo,
		selector:        selector,
		txManager:       txManager,
		emitter:         emitter,
		logger:          logger,
	}
}

func (in CreateTerminationInput) validate() error {
	switch {
	case in.FacultyID == 0:
		return fmt.Errorf("%w: faculty id", workflow.ErrMissingFields)
	case !in.Type.IsValid():
		return fmt.Errorf("%w: termination type %q", workflow.ErrMissingFields, in.Type)
	case in.Reason == "":
		return fmt.Errorf("%w: reason", workflow.ErrMissingFields)
	case in.LastWorkingDate.IsZero():
		return fmt.Errorf("%w: last working date", workflow.ErrMissingFields)
	case in.NoticeDate.IsZero():
		return fmt.Errorf("%w: notice date", workflow.ErrMissingFields)
	}
	return nil
}

// Create files a separation request
func (s *terminationServiceImpl) Create(ctx context.Context, input CreateTerminationInput) (*entity.TerminationRequest, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	faculty, err := s.facultyRepo.GetByID(ctx, input.FacultyID)
	if err != nil {
		s.logger.Error("Failed to load faculty", "error", err, "faculty_id", input.FacultyID)
		return nil, err
	}
	if faculty == nil {
		return nil, workflow.ErrFacultyNotFound
	}

	req := &entity.TerminationRequest{
		FacultyID:            input.FacultyID,
		Status:               workflow.Submitted().String(),
		Type:                 input.Type,
		Reason:               input.Reason,
		LastWorkingDate:      input.LastWorkingDate,
		NoticeDate:           input.NoticeDate,
		NoticePeriodAccepted: input.NoticePeriodAccepted,
		MonthsInLieu:         input.MonthsInLieu,
	}
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.terminationRepo.Create(txCtx, req); err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		if err := s.facultyRepo.UpdateStatus(txCtx, input.FacultyID, entity.EmploymentTerminationPending); err != nil {
			return fmt.Errorf("mark faculty pending: %w", err)
		}

		chain := workflow.ChainFor(workflow.KindTermination)
		firstRole := chain.First()
		assigneeID, err := s.selector.SelectApprover(txCtx, firstRole)
		if err != nil {
			return fmt.Errorf("select %s approver: %w", firstRole, err)
		}
		if err := s.stepRepo.Create(txCtx, &entity.ApprovalStep{
			Kind:           workflow.KindTermination,
			InstanceID:     req.ID,
			Role:           firstRole,
			AssigneeUserID: assigneeID,
			Status:         workflow.StepPending,
		}); err != nil {
			return fmt.Errorf("create first step: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to create termination request", "error", err, "faculty_id", input.FacultyID)
		return nil, err
	}

	s.logger.Info("Termination request created", "request_id", req.ID, "faculty_id", input.FacultyID, "type", input.Type)
	if s.emitter != nil {
		s.emitter.DispatchAsync(ctx, event.NewEvent(event.TypeTerminationCreated, workflow.KindTermination, req.ID, map[string]interface{}{
			"faculty_id": input.FacultyID,
			"type":       string(input.Type),
		}))
	}
	return req, nil
}

// Cancel withdraws a Submitted request
func (s *terminationServiceImpl) Cancel(ctx context.Context, id int64, actorUserID int64) error {
	req, err := s.terminationRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get termination request", "error", err, "request_id", id)
		return err
	}
	if req == nil {
		return workflow.ErrInstanceNotFound
	}

	status, err := workflow.ParseStatus(req.Status)
	if err != nil {
		return err
	}
	if !status.IsSubmitted() {
		return fmt.Errorf("%w: request %d is %s", workflow.ErrNotCancelable, id, req.Status)
	}

	owns, err := s.actorOwnsRequest(ctx, actorUserID, req.FacultyID)
	if err != nil {
		return err
	}
	if !owns {
		return workflow.ErrNotAuthorized
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		// Steps cascade with the request.
		if err := s.terminationRepo.Delete(txCtx, id); err != nil {
			return fmt.Errorf("delete request: %w", err)
		}
		if err := s.facultyRepo.UpdateStatus(txCtx, req.FacultyID, entity.EmploymentActive); err != nil {
			return fmt.Errorf("restore faculty status: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to cancel termination request", "error", err, "request_id", id)
		return err
	}

	s.logger.Info("Termination request cancelled", "request_id", id, "faculty_id", req.FacultyID)
	return nil
}

func (s *terminationServiceImpl) actorOwnsRequest(ctx context.Context, actorUserID, facultyID int64) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, actorUserID)
	if err != nil {
		return false, fmt.Errorf("get actor account: %w", err)
	}
	if user == nil {
		return false, nil
	}
	faculty, err := s.facultyRepo.GetByID(ctx, facultyID)
	if err != nil {
		return false, fmt.Errorf("get faculty: %w", err)
	}
	if faculty == nil {
		return false, nil
	}
	return user.BannerID == faculty.BannerID, nil
}

// GetRequest retrieves a request by ID
func (s *terminationServiceImpl) GetRequest(ctx context.Context, id int64) (*entity.TerminationRequest, error) {
	req, err := s.terminationRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get termination request", "error", err, "request_id", id)
		return nil, err
	}
	if req == nil {
		return nil, workflow.ErrInstanceNotFound
	}
	return req, nil
}

// GetLatestForFaculty retrieves the faculty member's most recent request
func (s *terminationServiceImpl) GetLatestForFaculty(ctx context.Context, facultyID int64) (*entity.TerminationRequest, error) {
	req, err := s.terminationRepo.GetLatestByFacultyID(ctx, facultyID)
	if err != nil {
		s.logger.Error("Failed to get latest request", "error", err, "faculty_id", facultyID)
		return nil, err
	}
	if req == nil {
		return nil, workflow.ErrInstanceNotFound
	}
	return req, nil
}

// ListPendingForRole retrieves the role's review queue
func (s *terminationServiceImpl) ListPendingForRole(ctx context.Context, role workflow.Role) ([]*entity.TerminationRequest, error) {
	reqs, err := s.terminationRepo.ListPendingForRole(ctx, role)
	if err != nil {
		s.logger.Error("Failed to list pending requests", "error", err, "role", role)
		return nil, err
	}
	return reqs, nil
}

// AttachDocument records the supporting document path and triggers summarization
func (s *terminationServiceImpl) AttachDocument(ctx context.Context, id int64, documentPath string) error {
	if documentPath == "" {
		return fmt.Errorf("%w: document path", workflow.ErrMissingFields)
	}
	req, err := s.terminationRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get termination request", "error", err, "request_id", id)
		return err
	}
	if req == nil {
		return workflow.ErrInstanceNotFound
	}
	if err := s.terminationRepo.SetDocumentPath(ctx, id, documentPath); err != nil {
		s.logger.Error("Failed to record document path", "error", err, "request_id", id)
		return err
	}

	s.logger.Info("Termination document attached", "request_id", id, "path", documentPath)
	if s.emitter != nil {
		s.emitter.DispatchAsync(ctx, event.NewEvent(event.TypeDossierUploaded, workflow.KindTermination, id, map[string]interface{}{
			"path": documentPath,
		}))
	}
	return nil
}
