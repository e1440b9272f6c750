package service

import (
	"context"
	"fmt"

	"github.com/facultyops/renewal-workflow/internal/application/port"
	"github.com/facultyops/renewal-workflow/internal/domain/entity"
	"github.com/facultyops/renewal-workflow/internal/domain/event"
	"github.com/facultyops/renewal-workflow/internal/domain/workflow"
)

// RenewalService manages contract renewal applications
type RenewalService interface {
	// Initiate opens a renewal application for the faculty member and
	// queues the first approval step with the department chair.
	Initiate(ctx context.Context, facultyID int64) (*entity.RenewalApplication, error)
	GetApplication(ctx context.Context, id int64) (*entity.RenewalApplication, error)
	GetLatestForFaculty(ctx context.Context, facultyID int64) (*entity.RenewalApplication, error)
	ListPendingForRole(ctx context.Context, role workflow.Role) ([]*entity.RenewalApplication, error)
	// AttachDossier records the uploaded dossier path and kicks off
	// asynchronous summarization.
	AttachDossier(ctx context.Context, id int64, documentPath string) error
	RecordScores(ctx context.Context, id int64, scores entity.EvaluationScores) error
}

type renewalServiceImpl struct {
	renewalRepo      port.RenewalRepository
	facultyRepo      port.FacultyRepository
	userRepo         port.UserRepository
	stepRepo         port.StepRepository
	notificationRepo port.NotificationRepository
	selector         port.ApproverSelector
	txManager        port.TransactionManager
	emitter          EventEmitter
	logger           Logger
}

// NewRenewalService creates a new RenewalService
func NewRenewalService(
	renewalRepo port.RenewalRepository,
	facultyRepo port.FacultyRepository,
	userRepo port.UserRepository,
	stepRepo port.StepRepository,
	notificationRepo port.NotificationRepository,
	selector port.ApproverSelector,
	txManager port.TransactionManager,
	emitter EventEmitter,
	logger Logger,
) RenewalService {
	return &renewalServiceImpl{
		renewalRepo:      renewalRepo,
		facultyRepo:      facultyRepo,
		userRepo:         userRepo,
		stepRepo:         stepRepo,
		notificationRepo: notificationRepo,
		selector:         selector,
		txManager:        txManager,
		emitter:          emitter,
		logger:           logger,
	}
}

// Initiate opens a renewal application
func (s *renewalServiceImpl) Initiate(ctx context.Context, facultyID int64) (*entity.RenewalApplication, error) {
	faculty, err := s.facultyRepo.GetByID(ctx, facultyID)
	if err != nil {
		s.logger.Error("Failed to load faculty", "error", err, "faculty_id", facultyID)
		return nil, err
	}
	if faculty == nil {
		return nil, workflow.ErrFacultyNotFound
	}

	existing, err := s.renewalRepo.GetActiveByFacultyID(ctx, facultyID)
	if err != nil {
		s.logger.Error("Failed to check active applications", "error", err, "faculty_id", facultyID)
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: application %d is %s", workflow.ErrDuplicateActiveApplication, existing.ID, existing.Status)
	}

	app := &entity.RenewalApplication{
		FacultyID: facultyID,
		Status:    workflow.Submitted().String(),
	}
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.renewalRepo.Create(txCtx, app); err != nil {
			return fmt.Errorf("create application: %w", err)
		}

		chain := workflow.ChainFor(workflow.KindRenewal)
		firstRole := chain.First()
		assigneeID, err := s.selector.SelectApprover(txCtx, firstRole)
		if err != nil {
			return fmt.Errorf("select %s approver: %w", firstRole, err)
		}
		if err := s.stepRepo.Create(txCtx, &entity.ApprovalStep{
			Kind:           workflow.KindRenewal,
			InstanceID:     app.ID,
			Role:           firstRole,
			AssigneeUserID: assigneeID,
			Status:         workflow.StepPending,
		}); err != nil {
			return fmt.Errorf("create first step: %w", err)
		}

		user, err := s.userRepo.GetByBannerID(txCtx, faculty.BannerID)
		if err != nil {
			return fmt.Errorf("get applicant account: %w", err)
		}
		if user != nil {
			n := &entity.Notification{
				UserID:  user.ID,
				Message: "Your renewal application has been submitted and is awaiting department chair review.",
			}
			if err := s.notificationRepo.Create(txCtx, n); err != nil {
				return fmt.Errorf("create notification: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to initiate renewal", "error", err, "faculty_id", facultyID)
		return nil, err
	}

	s.logger.Info("Renewal initiated", "application_id", app.ID, "faculty_id", facultyID)
	if s.emitter != nil {
		s.emitter.DispatchAsync(ctx, event.NewEvent(event.TypeRenewalInitiated, workflow.KindRenewal, app.ID, map[string]interface{}{
			"faculty_id": facultyID,
		}))
	}
	return app, nil
}

// GetApplication retrieves an application by ID
func (s *renewalServiceImpl) GetApplication(ctx context.Context, id int64) (*entity.RenewalApplication, error) {
	app, err := s.renewalRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get application", "error", err, "application_id", id)
		return nil, err
	}
	if app == nil {
		return nil, workflow.ErrInstanceNotFound
	}
	return app, nil
}

// GetLatestForFaculty retrieves the faculty member's most recent application
func (s *renewalServiceImpl) GetLatestForFaculty(ctx context.Context, facultyID int64) (*entity.RenewalApplication, error) {
	app, err := s.renewalRepo.GetLatestByFacultyID(ctx, facultyID)
	if err != nil {
		s.logger.Error("Failed to get latest application", "error", err, "faculty_id", facultyID)
		return nil, err
	}
	if app == nil {
		return nil, workflow.ErrInstanceNotFound
	}
	return app, nil
}

// ListPendingForRole retrieves the role's review queue
func (s *renewalServiceImpl) ListPendingForRole(ctx context.Context, role workflow.Role) ([]*entity.RenewalApplication, error) {
	apps, err := s.renewalRepo.ListPendingForRole(ctx, role)
	if err != nil {
		s.logger.Error("Failed to list pending applications", "error", err, "role", role)
		return nil, err
	}
	return apps, nil
}

// AttachDossier records the dossier path and triggers summarization
func (s *renewalServiceImpl) AttachDossier(ctx context.Context, id int64, documentPath string) error {
	if documentPath == "" {
		return fmt.Errorf("%w: document path", workflow.ErrMissingFields)
	}
	app, err := s.renewalRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get application", "error", err, "application_id", id)
		return err
	}
	if app == nil {
		return workflow.ErrInstanceNotFound
	}
	if err := s.renewalRepo.SetDossierPath(ctx, id, documentPath); err != nil {
		s.logger.Error("Failed to record dossier path", "error", err, "application_id", id)
		return err
	}

	s.logger.Info("Dossier attached", "application_id", id, "path", documentPath)
	if s.emitter != nil {
		s.emitter.DispatchAsync(ctx, event.NewEvent(event.TypeDossierUploaded, workflow.KindRenewal, id, map[string]interface{}{
			"path": documentPath,
		}))
	}
	return nil
}

// RecordScores stores the evaluation scores on the application
func (s *renewalServiceImpl) RecordScores(ctx context.Context, id int64, scores entity.EvaluationScores) error {
	if err := scores.Validate(); err != nil {
		return fmt.Errorf("%w: %v", workflow.ErrMissingFields, err)
	}
	app, err := s.renewalRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get application", "error", err, "application_id", id)
		return err
	}
	if app == nil {
		return workflow.ErrInstanceNotFound
	}
	if err := s.renewalRepo.SetScores(ctx, id, scores); err != nil {
		s.logger.Error("Failed to record scores", "error", err, "application_id", id)
		return err
	}
	s.logger.Info("Evaluation scores recorded", "application_id", id)
	return nil
}
