package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facultyops/renewal-workflow/internal/domain/entity"
	"github.com/facultyops/renewal-workflow/internal/domain/workflow"
)

type terminationFixture struct {
	faculty         *entity.Faculty
	req             *entity.TerminationRequest
	deleted         bool
	createdSteps    []*entity.ApprovalStep
	terminationRepo *mockTerminationRepo
	facultyRepo     *mockFacultyRepo
	userRepo        *mockUserRepo
	stepRepo        *mockStepRepo
	selector        *mockSelector

	svc TerminationService
}

func newTerminationFixture(t *testing.T) *terminationFixture {
	t.Helper()
	f := &terminationFixture{
		faculty: &entity.Faculty{
			ID:       10,
			BannerID: "B00123456",
			Status:   entity.EmploymentActive,
		},
	}
	f.terminationRepo = &mockTerminationRepo{
		createFn: func(ctx context.Context, req *entity.TerminationRequest) error {
			req.ID = 2
			f.req = req
			return nil
		},
		getByIDFn: func(ctx context.Context, id int64) (*entity.TerminationRequest, error) {
			if f.req != nil && f.req.ID == id && !f.deleted {
				return f.req, nil
			}
			return nil, nil
		},
		deleteFn: func(ctx context.Context, id int64) error {
			f.deleted = true
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
		updateStatusFn: func(ctx context.Context, id int64, status entity.EmploymentStatus) error {
			f.faculty.Status = status
			return nil
		},
	}
	f.userRepo = &mockUserRepo{
		getByIDFn: func(ctx context.Context, id int64) (*entity.User, error) {
			if id == 77 {
				return &entity.User{ID: 77, BannerID: f.faculty.BannerID, IsActive: true}, nil
			}
			if id == 88 {
				return &entity.User{ID: 88, BannerID: "B00999999", IsActive: true}, nil
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
	f.selector = &mockSelector{}

	f.svc = NewTerminationService(
		f.terminationRepo, f.facultyRepo, f.userRepo, f.stepRepo,
		f.selector, &mockTxManager{}, &mockEmitter{}, testLogger{},
	)
	return f
}

func validInput() CreateTerminationInput {
	return CreateTerminationInput{
		FacultyID:       10,
		Type:            entity.TerminationResignation,
		Reason:          "Accepted another position",
		LastWorkingDate: time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		NoticeDate:      time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateTermination(t *testing.T) {
	t.Run("creates request, marks faculty pending, queues dean step", func(t *testing.T) {
		f := newTerminationFixture(t)

		req, err := f.svc.Create(context.Background(), validInput())
		require.NoError(t, err)
		assert.Equal(t, "Submitted", req.Status)
		assert.Equal(t, entity.EmploymentTerminationPending, f.faculty.Status)

		require.Len(t, f.createdSteps, 1)
		step := f.createdSteps[0]
		assert.Equal(t, workflow.KindTermination, step.Kind)
		assert.Equal(t, workflow.RoleDean, step.Role)
		assert.Equal(t, workflow.StepPending, step.Status)
	})

	t.Run("validates required fields", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(*CreateTerminationInput)
		}{
			{"missing faculty", func(in *CreateTerminationInput) { in.FacultyID = 0 }},
			{"bad type", func(in *CreateTerminationInput) { in.Type = "Sabbatical" }},
			{"missing reason", func(in *CreateTerminationInput) { in.Reason = "" }},
			{"missing last working date", func(in *CreateTerminationInput) { in.LastWorkingDate = time.Time{} }},
			{"missing notice date", func(in *CreateTerminationInput) { in.NoticeDate = time.Time{} }},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				f := newTerminationFixture(t)
				in := validInput()
				tc.mutate(&in)
				_, err := f.svc.Create(context.Background(), in)
				assert.ErrorIs(t, err, workflow.ErrMissingFields)
			})
		}
	})

	t.Run("unknown faculty", func(t *testing.T) {
		f := newTerminationFixture(t)
		in := validInput()
		in.FacultyID = 999
		_, err := f.svc.Create(context.Background(), in)
		assert.ErrorIs(t, err, workflow.ErrFacultyNotFound)
	})
}

func TestCancelTermination(t *testing.T) {
	t.Run("owner cancels submitted request", func(t *testing.T) {
		f := newTerminationFixture(t)
		_, err := f.svc.Create(context.Background(), validInput())
		require.NoError(t, err)

		err = f.svc.Cancel(context.Background(), 2, 77)
		require.NoError(t, err)
		assert.True(t, f.deleted)
		assert.Equal(t, entity.EmploymentActive, f.faculty.Status)
	})

	t.Run("non-owner cannot cancel", func(t *testing.T) {
		f := newTerminationFixture(t)
		_, err := f.svc.Create(context.Background(), validInput())
		require.NoError(t, err)

		err = f.svc.Cancel(context.Background(), 2, 88)
		assert.ErrorIs(t, err, workflow.ErrNotAuthorized)
		assert.False(t, f.deleted)
	})

	t.Run("cannot cancel once review started", func(t *testing.T) {
		f := newTerminationFixture(t)
		_, err := f.svc.Create(context.Background(), validInput())
		require.NoError(t, err)
		f.req.Status = "Dean Approved"

		err = f.svc.Cancel(context.Background(), 2, 77)
		assert.ErrorIs(t, err, workflow.ErrNotCancelable)
		assert.False(t, f.deleted)
	})

	t.Run("unknown request", func(t *testing.T) {
		f := newTerminationFixture(t)
		err := f.svc.Cancel(context.Background(), 404, 77)
		assert.ErrorIs(t, err, workflow.ErrInstanceNotFound)
	})
}
