package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facultyops/renewal-workflow/internal/domain/entity"
	"github.com/facultyops/renewal-workflow/internal/domain/event"
	"github.com/facultyops/renewal-workflow/internal/domain/workflow"
)

type renewalFixture struct {
	faculty     *entity.Faculty
	renewalRepo *mockRenewalRepo
	facultyRepo *mockFacultyRepo
	userRepo    *mockUserRepo
	stepRepo    *mockStepRepo
	noteRepo    *mockNotificationRepo
	selector    *mockSelector
	emitter     *mockEmitter

	createdSteps []*entity.ApprovalStep
	svc          RenewalService
}

func newRenewalFixture(t *testing.T) *renewalFixture {
	t.Helper()
	f := &renewalFixture{
		faculty: &entity.Faculty{
			ID:                 10,
			BannerID:           "B00123456",
			Status:             entity.EmploymentActive,
			ContractExpiration: time.Date(2027, 6, 30, 0, 0, 0, 0, time.UTC),
		},
	}
	f.renewalRepo = &mockRenewalRepo{
		createFn: func(ctx context.Context, app *entity.RenewalApplication) error {
			app.ID = 1
			return nil
		},
	}
	f.facultyRepo = &mockFacultyRepo{
		getByIDFn: func(ctx context.Context, id int64) (*entity.Faculty, error) {
			if id == f.faculty.ID {
				return f.faculty, nil
			}
			return nil, nil
		},
	}
	f.userRepo = &mockUserRepo{
		getByBannerIDFn: func(ctx context.Context, bannerID string) (*entity.User, error) {
			if bannerID == f.faculty.BannerID {
				return &entity.User{ID: 77, BannerID: bannerID, IsActive: true}, nil
			}
			return nil, nil
		},
	}
	f.stepRepo = &mockStepRepo{
		createFn: func(ctx context.Context, step *entity.ApprovalStep) error {
			f.createdSteps = append(f.createdSteps, step)
			return nil
		},
	}
	f.noteRepo = &mockNotificationRepo{}
	f.selector = &mockSelector{}
	f.emitter = &mockEmitter{}

	f.svc = NewRenewalService(
		f.renewalRepo, f.facultyRepo, f.userRepo, f.stepRepo,
		f.noteRepo, f.selector, &mockTxManager{}, f.emitter, testLogger{},
	)
	return f
}

func TestInitiate(t *testing.T) {
	t.Run("creates application with first step at department chair", func(t *testing.T) {
		f := newRenewalFixture(t)

		app, err := f.svc.Initiate(context.Background(), 10)
		require.NoError(t, err)
		assert.Equal(t, "Submitted", app.Status)

		require.Len(t, f.createdSteps, 1)
		step := f.createdSteps[0]
		assert.Equal(t, workflow.KindRenewal, step.Kind)
		assert.Equal(t, workflow.RoleDepartmentChair, step.Role)
		assert.Equal(t, workflow.StepPending, step.Status)

		assert.Contains(t, f.emitter.typesSeen(), event.TypeRenewalInitiated)
	})

	t.Run("rejects duplicate active application", func(t *testing.T) {
		f := newRenewalFixture(t)
		f.renewalRepo.getActiveByFacultyIDFn = func(ctx context.Context, facultyID int64) (*entity.RenewalApplication, error) {
			return &entity.RenewalApplication{ID: 5, FacultyID: facultyID, Status: "Dean Approved"}, nil
		}

		_, err := f.svc.Initiate(context.Background(), 10)
		assert.ErrorIs(t, err, workflow.ErrDuplicateActiveApplication)
		assert.Empty(t, f.createdSteps)
	})

	t.Run("allows re-initiation after terminal application", func(t *testing.T) {
		f := newRenewalFixture(t)
		// Terminal applications are excluded by the repository query, so
		// the active lookup comes back empty.
		f.renewalRepo.getActiveByFacultyIDFn = func(ctx context.Context, facultyID int64) (*entity.RenewalApplication, error) {
			return nil, nil
		}

		_, err := f.svc.Initiate(context.Background(), 10)
		assert.NoError(t, err)
	})

	t.Run("unknown faculty", func(t *testing.T) {
		f := newRenewalFixture(t)
		_, err := f.svc.Initiate(context.Background(), 999)
		assert.ErrorIs(t, err, workflow.ErrFacultyNotFound)
	})

	t.Run("fails when no chair account exists", func(t *testing.T) {
		f := newRenewalFixture(t)
		f.selector.selectFn = func(ctx context.Context, role workflow.Role) (int64, error) {
			return 0, workflow.ErrNoEligibleUser
		}

		_, err := f.svc.Initiate(context.Background(), 10)
		assert.ErrorIs(t, err, workflow.ErrNoEligibleUser)
	})
}

func TestAttachDossier(t *testing.T) {
	t.Run("records path and emits event", func(t *testing.T) {
		f := newRenewalFixture(t)
		var recorded string
		f.renewalRepo.getByIDFn = func(ctx context.Context, id int64) (*entity.RenewalApplication, error) {
			return &entity.RenewalApplication{ID: id, FacultyID: 10, Status: "Submitted"}, nil
		}
		f.renewalRepo.setDossierPathFn = func(ctx context.Context, id int64, path string) error {
			recorded = path
			return nil
		}

		err := f.svc.AttachDossier(context.Background(), 1, "uploads/dossier-1.pdf")
		require.NoError(t, err)
		assert.Equal(t, "uploads/dossier-1.pdf", recorded)
		assert.Contains(t, f.emitter.typesSeen(), event.TypeDossierUploaded)
	})

	t.Run("rejects empty path", func(t *testing.T) {
		f := newRenewalFixture(t)
		err := f.svc.AttachDossier(context.Background(), 1, "")
		assert.ErrorIs(t, err, workflow.ErrMissingFields)
	})

	t.Run("unknown application", func(t *testing.T) {
		f := newRenewalFixture(t)
		err := f.svc.AttachDossier(context.Background(), 404, "uploads/x.pdf")
		assert.ErrorIs(t, err, workflow.ErrInstanceNotFound)
	})
}

func TestRecordScores(t *testing.T) {
	f := newRenewalFixture(t)
	f.renewalRepo.getByIDFn = func(ctx context.Context, id int64) (*entity.RenewalApplication, error) {
		return &entity.RenewalApplication{ID: id, FacultyID: 10, Status: "Submitted"}, nil
	}

	err := f.svc.RecordScores(context.Background(), 1, entity.EvaluationScores{
		Teaching: entity.RatingExcellent,
		Overall:  entity.RatingGood,
	})
	assert.NoError(t, err)

	err = f.svc.RecordScores(context.Background(), 1, entity.EvaluationScores{
		Teaching: entity.Rating("Stellar"),
	})
	assert.Error(t, err)
}
