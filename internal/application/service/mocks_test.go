package service

import (
	"context"
	"sync"
	"time"

	"github.com/facultyops/renewal-workflow/internal/domain/entity"
	"github.com/facultyops/renewal-workflow/internal/domain/event"
	"github.com/facultyops/renewal-workflow/internal/domain/workflow"
)

type testLogger struct{}

func (testLogger) Info(msg string, keysAndValues ...interface{})  {}
func (testLogger) Error(msg string, keysAndValues ...interface{}) {}

// mockTxManager runs the function directly; transactional behavior is
// covered by the sqlite package tests.
type mockTxManager struct {
	calls int
}

func (m *mockTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type mockEmitter struct {
	mu     sync.Mutex
	events []*event.Event
}

func (m *mockEmitter) DispatchAsync(ctx context.Context, evt *event.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, evt)
}

func (m *mockEmitter) typesSeen() []event.Type {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]event.Type, len(m.events))
	for i, evt := range m.events {
		types[i] = evt.Type
	}
	return types
}

type mockFacultyRepo struct {
	getByIDFn                  func(ctx context.Context, id int64) (*entity.Faculty, error)
	getByBannerIDFn            func(ctx context.Context, bannerID string) (*entity.Faculty, error)
	listFn                     func(ctx context.Context, limit, offset int) ([]*entity.Faculty, error)
	updateStatusFn             func(ctx context.Context, id int64, status entity.EmploymentStatus) error
	updateContractExpirationFn func(ctx context.Context, id int64, expiration time.Time) error
}

func (m *mockFacultyRepo) GetByID(ctx context.Context, id int64) (*entity.Faculty, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockFacultyRepo) GetByBannerID(ctx context.Context, bannerID string) (*entity.Faculty, error) {
	if m.getByBannerIDFn != nil {
		return m.getByBannerIDFn(ctx, bannerID)
	}
	return nil, nil
}

func (m *mockFacultyRepo) List(ctx context.Context, limit, offset int) ([]*entity.Faculty, error) {
	if m.listFn != nil {
		return m.listFn(ctx, limit, offset)
	}
	return nil, nil
}

func (m *mockFacultyRepo) UpdateStatus(ctx context.Context, id int64, status entity.EmploymentStatus) error {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, id, status)
	}
	return nil
}

func (m *mockFacultyRepo) UpdateContractExpiration(ctx context.Context, id int64, expiration time.Time) error {
	if m.updateContractExpirationFn != nil {
		return m.updateContractExpirationFn(ctx, id, expiration)
	}
	return nil
}

type mockUserRepo struct {
	getByIDFn           func(ctx context.Context, id int64) (*entity.User, error)
	getByBannerIDFn     func(ctx context.Context, bannerID string) (*entity.User, error)
	firstActiveByRoleFn func(ctx context.Context, role workflow.Role) (*entity.User, error)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByBannerID(ctx context.Context, bannerID string) (*entity.User, error) {
	if m.getByBannerIDFn != nil {
		return m.getByBannerIDFn(ctx, bannerID)
	}
	return nil, nil
}

func (m *mockUserRepo) FirstActiveByRole(ctx context.Context, role workflow.Role) (*entity.User, error) {
	if m.firstActiveByRoleFn != nil {
		return m.firstActiveByRoleFn(ctx, role)
	}
	return nil, nil
}

type mockRenewalRepo struct {
	createFn               func(ctx context.Context, app *entity.RenewalApplication) error
	getByIDFn              func(ctx context.Context, id int64) (*entity.RenewalApplication, error)
	getActiveByFacultyIDFn func(ctx context.Context, facultyID int64) (*entity.RenewalApplication, error)
	getLatestByFacultyIDFn func(ctx context.Context, facultyID int64) (*entity.RenewalApplication, error)
	listPendingForRoleFn   func(ctx context.Context, role workflow.Role) ([]*entity.RenewalApplication, error)
	updateStatusFn         func(ctx context.Context, id int64, status string) error
	setRenewalYearsFn      func(ctx context.Context, id int64, years int) error
	setDossierPathFn       func(ctx context.Context, id int64, path string) error
	setSummaryFn           func(ctx context.Context, id int64, summary string) error
	setScoresFn            func(ctx context.Context, id int64, scores entity.EvaluationScores) error
}

func (m *mockRenewalRepo) Create(ctx context.Context, app *entity.RenewalApplication) error {
	if m.createFn != nil {
		return m.createFn(ctx, app)
	}
	return nil
}

func (m *mockRenewalRepo) GetByID(ctx context.Context, id int64) (*entity.RenewalApplication, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockRenewalRepo) GetActiveByFacultyID(ctx context.Context, facultyID int64) (*entity.RenewalApplication, error) {
	if m.getActiveByFacultyIDFn != nil {
		return m.getActiveByFacultyIDFn(ctx, facultyID)
	}
	return nil, nil
}

func (m *mockRenewalRepo) GetLatestByFacultyID(ctx context.Context, facultyID int64) (*entity.RenewalApplication, error) {
	if m.getLatestByFacultyIDFn != nil {
		return m.getLatestByFacultyIDFn(ctx, facultyID)
	}
	return nil, nil
}

func (m *mockRenewalRepo) ListPendingForRole(ctx context.Context, role workflow.Role) ([]*entity.RenewalApplication, error) {
	if m.listPendingForRoleFn != nil {
		return m.listPendingForRoleFn(ctx, role)
	}
	return nil, nil
}

func (m *mockRenewalRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, id, status)
	}
	return nil
}

func (m *mockRenewalRepo) SetRenewalYears(ctx context.Context, id int64, years int) error {
	if m.setRenewalYearsFn != nil {
		return m.setRenewalYearsFn(ctx, id, years)
	}
	return nil
}

func (m *mockRenewalRepo) SetDossierPath(ctx context.Context, id int64, path string) error {
	if m.setDossierPathFn != nil {
		return m.setDossierPathFn(ctx, id, path)
	}
	return nil
}

func (m *mockRenewalRepo) SetSummary(ctx context.Context, id int64, summary string) error {
	if m.setSummaryFn != nil {
		return m.setSummaryFn(ctx, id, summary)
	}
	return nil
}

func (m *mockRenewalRepo) SetScores(ctx context.Context, id int64, scores entity.EvaluationScores) error {
	if m.setScoresFn != nil {
		return m.setScoresFn(ctx, id, scores)
	}
	return nil
}

type mockTerminationRepo struct {
	createFn               func(ctx context.Context, req *entity.TerminationRequest) error
	getByIDFn              func(ctx context.Context, id int64) (*entity.TerminationRequest, error)
	getLatestByFacultyIDFn func(ctx context.Context, facultyID int64) (*entity.TerminationRequest, error)
	listPendingForRoleFn   func(ctx context.Context, role workflow.Role) ([]*entity.TerminationRequest, error)
	updateStatusFn         func(ctx context.Context, id int64, status string) error
	setDocumentPathFn      func(ctx context.Context, id int64, path string) error
	setSummaryFn           func(ctx context.Context, id int64, summary string) error
	deleteFn               func(ctx context.Context, id int64) error
}

func (m *mockTerminationRepo) Create(ctx context.Context, req *entity.TerminationRequest) error {
	if m.createFn != nil {
		return m.createFn(ctx, req)
	}
	return nil
}

func (m *mockTerminationRepo) GetByID(ctx context.Context, id int64) (*entity.TerminationRequest, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockTerminationRepo) GetLatestByFacultyID(ctx context.Context, facultyID int64) (*entity.TerminationRequest, error) {
	if m.getLatestByFacultyIDFn != nil {
		return m.getLatestByFacultyIDFn(ctx, facultyID)
	}
	return nil, nil
}

func (m *mockTerminationRepo) ListPendingForRole(ctx context.Context, role workflow.Role) ([]*entity.TerminationRequest, error) {
	if m.listPendingForRoleFn != nil {
		return m.listPendingForRoleFn(ctx, role)
	}
	return nil, nil
}

func (m *mockTerminationRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, id, status)
	}
	return nil
}

func (m *mockTerminationRepo) SetDocumentPath(ctx context.Context, id int64, path string) error {
	if m.setDocumentPathFn != nil {
		return m.setDocumentPathFn(ctx, id, path)
	}
	return nil
}

func (m *mockTerminationRepo) SetSummary(ctx context.Context, id int64, summary string) error {
	if m.setSummaryFn != nil {
		return m.setSummaryFn(ctx, id, summary)
	}
	return nil
}

func (m *mockTerminationRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockStepRepo struct {
	createFn          func(ctx context.Context, step *entity.ApprovalStep) error
	getByInstanceIDFn func(ctx context.Context, kind workflow.Kind, instanceID int64) ([]*entity.ApprovalStep, error)
	getPendingFn      func(ctx context.Context, kind workflow.Kind, instanceID int64) ([]*entity.ApprovalStep, error)
	resolveFn         func(ctx context.Context, kind workflow.Kind, stepID int64, status workflow.StepStatus, comments string, yearsGranted *int, actionDate time.Time) (int64, error)
}

func (m *mockStepRepo) Create(ctx context.Context, step *entity.ApprovalStep) error {
	if m.createFn != nil {
		return m.createFn(ctx, step)
	}
	return nil
}

func (m *mockStepRepo) GetByInstanceID(ctx context.Context, kind workflow.Kind, instanceID int64) ([]*entity.ApprovalStep, error) {
	if m.getByInstanceIDFn != nil {
		return m.getByInstanceIDFn(ctx, kind, instanceID)
	}
	return nil, nil
}

func (m *mockStepRepo) GetPending(ctx context.Context, kind workflow.Kind, instanceID int64) ([]*entity.ApprovalStep, error) {
	if m.getPendingFn != nil {
		return m.getPendingFn(ctx, kind, instanceID)
	}
	return nil, nil
}

func (m *mockStepRepo) Resolve(ctx context.Context, kind workflow.Kind, stepID int64, status workflow.StepStatus, comments string, yearsGranted *int, actionDate time.Time) (int64, error) {
	if m.resolveFn != nil {
		return m.resolveFn(ctx, kind, stepID, status, comments, yearsGranted, actionDate)
	}
	return 1, nil
}

type mockNotificationRepo struct {
	createFn       func(ctx context.Context, n *entity.Notification) error
	listByUserIDFn func(ctx context.Context, userID int64, limit, offset int) ([]*entity.Notification, error)
	markReadFn     func(ctx context.Context, id int64) error
}

func (m *mockNotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	if m.createFn != nil {
		return m.createFn(ctx, n)
	}
	return nil
}

func (m *mockNotificationRepo) ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]*entity.Notification, error) {
	if m.listByUserIDFn != nil {
		return m.listByUserIDFn(ctx, userID, limit, offset)
	}
	return nil, nil
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, id int64) error {
	if m.markReadFn != nil {
		return m.markReadFn(ctx, id)
	}
	return nil
}

type mockSelector struct {
	selectFn func(ctx context.Context, role workflow.Role) (int64, error)
}

func (m *mockSelector) SelectApprover(ctx context.Context, role workflow.Role) (int64, error) {
	if m.selectFn != nil {
		return m.selectFn(ctx, role)
	}
	return 1, nil
}
