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

func TestFacultyService_GetByID(t *testing.T) {
	members := map[int64]*entity.Faculty{
		1: {ID: 1, BannerID: "B00123456", FirstName: "Ada", LastName: "Lovelace", Status: entity.EmploymentActive},
	}
	repo := &mockFacultyRepo{
		getByIDFn: func(ctx context.Context, id int64) (*entity.Faculty, error) {
			return members[id], nil
		},
	}
	svc := NewFacultyService(repo, testLogger{})
	ctx := context.Background()

	got, err := svc.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "B00123456", got.BannerID)

	_, err = svc.GetByID(ctx, 99)
	assert.ErrorIs(t, err, workflow.ErrFacultyNotFound)
}

func TestFacultyService_GetByBannerID(t *testing.T) {
	repo := &mockFacultyRepo{
		getByBannerIDFn: func(ctx context.Context, bannerID string) (*entity.Faculty, error) {
			if bannerID == "B00123456" {
				return &entity.Faculty{ID: 1, BannerID: bannerID}, nil
			}
			return nil, nil
		},
	}
	svc := NewFacultyService(repo, testLogger{})
	ctx := context.Background()

	got, err := svc.GetByBannerID(ctx, "B00123456")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)

	_, err = svc.GetByBannerID(ctx, "B99999999")
	assert.ErrorIs(t, err, workflow.ErrFacultyNotFound)

	_, err = svc.GetByBannerID(ctx, "not-a-banner-id")
	assert.ErrorIs(t, err, workflow.ErrMissingFields)
}

func TestFacultyService_ListClampsLimit(t *testing.T) {
	var gotLimit int
	repo := &mockFacultyRepo{
		listFn: func(ctx context.Context, limit, offset int) ([]*entity.Faculty, error) {
			gotLimit = limit
			return []*entity.Faculty{{ID: 1, HireDate: time.Now()}}, nil
		},
	}
	svc := NewFacultyService(repo, testLogger{})

	_, err := svc.List(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 50, gotLimit)

	_, err = svc.List(context.Background(), 1000, 0)
	require.NoError(t, err)
	assert.Equal(t, 50, gotLimit)
}
