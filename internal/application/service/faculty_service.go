package service

import (
	"context"
	"fmt"

	"github.com/facultyops/renewal-workflow/internal/application/port"
	"github.com/facultyops/renewal-workflow/internal/domain/entity"
	"github.com/facultyops/renewal-workflow/internal/domain/workflow"
	"github.com/facultyops/renewal-workflow/pkg/utils"
)

// FacultyService exposes read access to faculty employment records
type FacultyService interface {
	GetByID(ctx context.Context, id int64) (*entity.Faculty, error)
	GetByBannerID(ctx context.Context, bannerID string) (*entity.Faculty, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Faculty, error)
}

type facultyServiceImpl struct {
	facultyRepo port.FacultyRepository
	logger      Logger
}

// NewFacultyService creates a new FacultyService
func NewFacultyService(facultyRepo port.FacultyRepository, logger Logger) FacultyService {
	return &facultyServiceImpl{facultyRepo: facultyRepo, logger: logger}
}

func (s *facultyServiceImpl) GetByID(ctx context.Context, id int64) (*entity.Faculty, error) {
	faculty, err := s.facultyRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get faculty", "error", err, "faculty_id", id)
		return nil, err
	}
	if faculty == nil {
		return nil, workflow.ErrFacultyNotFound
	}
	return faculty, nil
}

func (s *facultyServiceImpl) GetByBannerID(ctx context.Context, bannerID string) (*entity.Faculty, error) {
	if err := utils.ValidateBannerID(bannerID); err != nil {
		return nil, fmt.Errorf("%w: %v", workflow.ErrMissingFields, err)
	}

	faculty, err := s.facultyRepo.GetByBannerID(ctx, bannerID)
	if err != nil {
		s.logger.Error("Failed to get faculty by banner ID", "error", err, "banner_id", bannerID)
		return nil, err
	}
	if faculty == nil {
		return nil, workflow.ErrFacultyNotFound
	}
	return faculty, nil
}

func (s *facultyServiceImpl) List(ctx context.Context, limit, offset int) ([]*entity.Faculty, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	list, err := s.facultyRepo.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error("Failed to list faculty", "error", err, "limit", limit, "offset", offset)
		return nil, err
	}
	return list, nil
}
