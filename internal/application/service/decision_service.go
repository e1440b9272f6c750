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

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// EventEmitter is the narrow slice of the dispatcher the services need
type EventEmitter interface {
	DispatchAsync(ctx context.Context, evt *event.Event)
}

// TransitionResult describes the outcome of a submitted decision
type TransitionResult struct {
	NewStatus workflow.Status
	// NextRole is set when the instance advanced to another approver,
	// nil on rejection or completion.
	NextRole *workflow.Role
}

// InstanceState is the resolved view of one workflow instance: its
// current status plus the full step ledger in creation order.
type InstanceState struct {
	Kind       workflow.Kind
	InstanceID int64
	Status     workflow.Status
	Steps      []*entity.ApprovalStep
}

// DecisionService drives approval chain transitions for both workflow
// kinds. All writes for one decision happen in a single transaction.
type DecisionService interface {
	SubmitDecision(ctx context.Context, kind workflow.Kind, instanceID int64, actorRole workflow.Role, decision workflow.Decision, comments string, yearsGranted int) (*TransitionResult, error)
	GetInstanceState(ctx context.Context, kind workflow.Kind, instanceID int64) (*InstanceState, error)
	// ProcessTermination confirms post-approval processing of a
	// termination. Side effects are applied when the chain completes,
	// so this is a no-op for a Completed request and an error otherwise.
	ProcessTermination(ctx context.Context, terminationID int64) error
}

type decisionServiceImpl struct {
	renewalRepo      port.RenewalRepository
	terminationRepo  port.TerminationRepository
	stepRepo         port.StepRepository
	facultyRepo      port.FacultyRepository
	userRepo         port.UserRepository
	notificationRepo port.NotificationRepository
	selector         port.ApproverSelector
	txManager        port.TransactionManager
	emitter          EventEmitter
	logger           Logger
	now              func() time.Time
}

// NewDecisionService creates a new DecisionService
func NewDecisionService(
	renewalRepo port.RenewalRepository,
	terminationRepo port.TerminationRepository,
	stepRepo port.StepRepository,
	facultyRepo port.FacultyRepository,
	userRepo port.UserRepository,
	notificationRepo port.NotificationRepository,
	selector port.ApproverSelector,
	txManager port.TransactionManager,
	emitter EventEmitter,
	logger Logger,
) DecisionService {
	return &decisionServiceImpl{
		renewalRepo:      renewalRepo,
		terminationRepo:  terminationRepo,
		stepRepo:         stepRepo,
		facultyRepo:      facultyRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		selector:         selector,
		txManager:        txManager,
		emitter:          emitter,
		logger:           logger,
		now:              time.Now,
	}
}

// SubmitDecision applies one approver's decision to the instance's
// pending step and advances, rejects or completes the chain.
func (s *decisionServiceImpl) SubmitDecision(ctx context.Context, kind workflow.Kind, instanceID int64, actorRole workflow.Role, decision workflow.Decision, comments string, yearsGranted int) (*TransitionResult, error) {
	chain := workflow.ChainFor(kind)
	if chain == nil {
		return nil, fmt.Errorf("unknown workflow kind %q", kind)
	}

	var result *TransitionResult
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		pending, err := s.stepRepo.GetPending(txCtx, kind, instanceID)
		if err != nil {
			return fmt.Errorf("load pending steps: %w", err)
		}
		if len(pending) > 1 {
			return fmt.Errorf("%w: %d pending steps on %s %d", workflow.ErrNoPendingStep, len(pending), kind, instanceID)
		}
		if len(pending) == 0 || pending[0].Role != actorRole {
			return workflow.ErrNotAuthorizedStep
		}
		step := pending[0]

		if !decision.IsValid() {
			return workflow.ErrInvalidDecision
		}
		// HR closes the renewal chain and grants nothing itself, so the
		// years requirement stops one step earlier.
		if kind == workflow.KindRenewal && decision == workflow.DecisionApprove &&
			actorRole != workflow.RoleHR && yearsGranted <= 0 {
			return workflow.ErrMissingYearsGranted
		}

		stepStatus := workflow.StepApproved
		if decision == workflow.DecisionReject {
			stepStatus = workflow.StepRejected
		}
		var years *int
		if kind == workflow.KindRenewal && yearsGranted > 0 {
			years = &yearsGranted
		}
		affected, err := s.stepRepo.Resolve(txCtx, kind, step.ID, stepStatus, comments, years, s.now())
		if err != nil {
			return fmt.Errorf("resolve step: %w", err)
		}
		if affected == 0 {
			// Step was resolved between our read and write; the loser
			// of the race holds no pending step anymore.
			return workflow.ErrNotAuthorizedStep
		}

		if decision == workflow.DecisionReject {
			newStatus := workflow.Rejected(actorRole)
			if err := s.updateInstanceStatus(txCtx, kind, instanceID, newStatus); err != nil {
				return err
			}
			result = &TransitionResult{NewStatus: newStatus}
			return s.notifyApplicant(txCtx, kind, instanceID, newStatus)
		}

		if years != nil {
			if err := s.renewalRepo.SetRenewalYears(txCtx, instanceID, *years); err != nil {
				return fmt.Errorf("record renewal years: %w", err)
			}
		}

		steps, err := s.stepRepo.GetByInstanceID(txCtx, kind, instanceID)
		if err != nil {
			return fmt.Errorf("load step ledger: %w", err)
		}
		approved := make(map[workflow.Role]bool, len(steps))
		for _, st := range steps {
			if st.Status == workflow.StepApproved {
				approved[st.Role] = true
			}
		}

		nextRole, ok := chain.NextEligible(approved)
		if !ok {
			newStatus := workflow.Completed()
			if err := s.updateInstanceStatus(txCtx, kind, instanceID, newStatus); err != nil {
				return err
			}
			if err := s.applyTerminalEffects(txCtx, kind, instanceID); err != nil {
				return err
			}
			result = &TransitionResult{NewStatus: newStatus}
			return s.notifyApplicant(txCtx, kind, instanceID, newStatus)
		}

		assigneeID, err := s.selector.SelectApprover(txCtx, nextRole)
		if err != nil {
			return fmt.Errorf("select %s approver: %w", nextRole, err)
		}
		if err := s.stepRepo.Create(txCtx, &entity.ApprovalStep{
			Kind:           kind,
			InstanceID:     instanceID,
			Role:           nextRole,
			AssigneeUserID: assigneeID,
			Status:         workflow.StepPending,
		}); err != nil {
			return fmt.Errorf("create next step: %w", err)
		}

		newStatus := workflow.Approved(actorRole)
		if err := s.updateInstanceStatus(txCtx, kind, instanceID, newStatus); err != nil {
			return err
		}
		next := nextRole
		result = &TransitionResult{NewStatus: newStatus, NextRole: &next}
		return s.notifyApplicant(txCtx, kind, instanceID, newStatus)
	})

	if err != nil {
		s.logger.Error("Failed to apply decision", "error", err, "kind", kind, "instance_id", instanceID, "role", actorRole)
		return nil, err
	}

	s.logger.Info("Decision applied", "kind", kind, "instance_id", instanceID, "role", actorRole, "decision", decision, "new_status", result.NewStatus.String())
	s.emitDecisionEvents(ctx, kind, instanceID, actorRole, decision, result)
	return result, nil
}

// GetInstanceState returns the current status and full ledger
func (s *decisionServiceImpl) GetInstanceState(ctx context.Context, kind workflow.Kind, instanceID int64) (*InstanceState, error) {
	raw, err := s.lookupInstance(ctx, kind, instanceID)
	if err != nil {
		s.logger.Error("Failed to load instance", "error", err, "kind", kind, "instance_id", instanceID)
		return nil, err
	}
	status, err := workflow.ParseStatus(raw.Status)
	if err != nil {
		return nil, err
	}
	steps, err := s.stepRepo.GetByInstanceID(ctx, kind, instanceID)
	if err != nil {
		s.logger.Error("Failed to load step ledger", "error", err, "kind", kind, "instance_id", instanceID)
		return nil, err
	}
	return &InstanceState{Kind: kind, InstanceID: instanceID, Status: status, Steps: steps}, nil
}

// ProcessTermination acknowledges post-approval processing
func (s *decisionServiceImpl) ProcessTermination(ctx context.Context, terminationID int64) error {
	req, err := s.terminationRepo.GetByID(ctx, terminationID)
	if err != nil {
		return fmt.Errorf("get termination: %w", err)
	}
	if req == nil {
		return workflow.ErrInstanceNotFound
	}
	status, err := workflow.ParseStatus(req.Status)
	if err != nil {
		return err
	}
	if status.IsCompleted() {
		s.logger.Info("Termination already processed", "termination_id", terminationID)
		return nil
	}
	return fmt.Errorf("%w: termination %d has status %q", workflow.ErrNotCompleted, terminationID, req.Status)
}

func (s *decisionServiceImpl) lookupInstance(ctx context.Context, kind workflow.Kind, instanceID int64) (*port.InstanceLookup, error) {
	switch kind {
	case workflow.KindRenewal:
		app, err := s.renewalRepo.GetByID(ctx, instanceID)
		if err != nil {
			return nil, err
		}
		if app == nil {
			return nil, workflow.ErrInstanceNotFound
		}
		return &port.InstanceLookup{Status: app.Status, FacultyID: app.FacultyID}, nil
	case workflow.KindTermination:
		req, err := s.terminationRepo.GetByID(ctx, instanceID)
		if err != nil {
			return nil, err
		}
		if req == nil {
			return nil, workflow.ErrInstanceNotFound
		}
		return &port.InstanceLookup{Status: req.Status, FacultyID: req.FacultyID}, nil
	default:
		return nil, fmt.Errorf("unknown workflow kind %q", kind)
	}
}

func (s *decisionServiceImpl) updateInstanceStatus(ctx context.Context, kind workflow.Kind, instanceID int64, status workflow.Status) error {
	var err error
	switch kind {
	case workflow.KindRenewal:
		err = s.renewalRepo.UpdateStatus(ctx, instanceID, status.String())
	case workflow.KindTermination:
		err = s.terminationRepo.UpdateStatus(ctx, instanceID, status.String())
	default:
		err = fmt.Errorf("unknown workflow kind %q", kind)
	}
	if err != nil {
		return fmt.Errorf("update instance status: %w", err)
	}
	return nil
}

// applyTerminalEffects runs the completion side effects inside the
// decision transaction. Both effects are written as absolute values, so
// replaying them against an already Completed instance is harmless.
func (s *decisionServiceImpl) applyTerminalEffects(ctx context.Context, kind workflow.Kind, instanceID int64) error {
	switch kind {
	case workflow.KindRenewal:
		app, err := s.renewalRepo.GetByID(ctx, instanceID)
		if err != nil {
			return fmt.Errorf("get application: %w", err)
		}
		if app == nil {
			return workflow.ErrInstanceNotFound
		}
		if app.RenewalYears <= 0 {
			return fmt.Errorf("%w: completed application %d has no renewal years", workflow.ErrMissingYearsGranted, instanceID)
		}
		faculty, err := s.facultyRepo.GetByID(ctx, app.FacultyID)
		if err != nil {
			return fmt.Errorf("get faculty: %w", err)
		}
		if faculty == nil {
			return workflow.ErrFacultyNotFound
		}
		newExpiration := faculty.ContractExpiration.AddDate(app.RenewalYears, 0, 0)
		if err := s.facultyRepo.UpdateContractExpiration(ctx, faculty.ID, newExpiration); err != nil {
			return fmt.Errorf("extend contract: %w", err)
		}
	case workflow.KindTermination:
		req, err := s.terminationRepo.GetByID(ctx, instanceID)
		if err != nil {
			return fmt.Errorf("get termination: %w", err)
		}
		if req == nil {
			return workflow.ErrInstanceNotFound
		}
		if err := s.facultyRepo.UpdateStatus(ctx, req.FacultyID, entity.EmploymentTerminated); err != nil {
			return fmt.Errorf("mark faculty terminated: %w", err)
		}
		if err := s.facultyRepo.UpdateContractExpiration(ctx, req.FacultyID, req.LastWorkingDate); err != nil {
			return fmt.Errorf("set contract end: %w", err)
		}
	}
	return nil
}

// notifyApplicant writes an in-app notification for the faculty member
// behind the instance. Only renewal applicants hold accounts; the
// termination workflow is initiated about, not by, the faculty member.
func (s *decisionServiceImpl) notifyApplicant(ctx context.Context, kind workflow.Kind, instanceID int64, status workflow.Status) error {
	if kind != workflow.KindRenewal {
		return nil
	}
	app, err := s.renewalRepo.GetByID(ctx, instanceID)
	if err != nil {
		return fmt.Errorf("get application: %w", err)
	}
	if app == nil {
		return workflow.ErrInstanceNotFound
	}
	faculty, err := s.facultyRepo.GetByID(ctx, app.FacultyID)
	if err != nil {
		return fmt.Errorf("get faculty: %w", err)
	}
	if faculty == nil {
		return workflow.ErrFacultyNotFound
	}
	user, err := s.userRepo.GetByBannerID(ctx, faculty.BannerID)
	if err != nil {
		return fmt.Errorf("get applicant account: %w", err)
	}
	if user == nil {
		// Faculty without a portal account simply gets no notification.
		return nil
	}
	n := &entity.Notification{
		UserID:  user.ID,
		Message: fmt.Sprintf("Your renewal application status has been updated to: %s", status.String()),
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

func (s *decisionServiceImpl) emitDecisionEvents(ctx context.Context, kind workflow.Kind, instanceID int64, actorRole workflow.Role, decision workflow.Decision, result *TransitionResult) {
	if s.emitter == nil {
		return
	}
	payload := map[string]interface{}{
		"role":     string(actorRole),
		"decision": string(decision),
		"status":   result.NewStatus.String(),
	}
	s.emitter.DispatchAsync(ctx, event.NewEvent(event.TypeDecisionSubmitted, kind, instanceID, payload))
	if result.NewStatus.IsCompleted() {
		s.emitter.DispatchAsync(ctx, event.NewEvent(event.TypeInstanceCompleted, kind, instanceID, payload))
	} else if result.NewStatus.IsRejected() {
		s.emitter.DispatchAsync(ctx, event.NewEvent(event.TypeInstanceRejected, kind, instanceID, payload))
	}
}
