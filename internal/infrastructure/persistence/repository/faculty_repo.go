package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/facultyops/renewal-workflow/internal/application/port"
	"github.com/facultyops/renewal-workflow/internal/domain/entity"
)

// FacultyRepository implements port.FacultyRepository
type FacultyRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewFacultyRepository creates a new faculty repository
func NewFacultyRepository(db *sql.DB, logger *zap.Logger) port.FacultyRepository {
	return &FacultyRepository{db: db, logger: logger}
}

const facultyColumns = `id, banner_id, first_name, last_name, department, job_title,
	hire_date, contract_expiration_date, status, created_at, updated_at`

// GetByID retrieves a faculty record by ID
func (r *FacultyRepository) GetByID(ctx context.Context, id int64) (*entity.Faculty, error) {
	query := fmt.Sprintf(`SELECT %s FROM faculty WHERE id = ?`, facultyColumns)
	return r.scanOne(ctx, query, id)
}

// GetByBannerID retrieves a faculty record by banner ID
func (r *FacultyRepository) GetByBannerID(ctx context.Context, bannerID string) (*entity.Faculty, error) {
	query := fmt.Sprintf(`SELECT %s FROM faculty WHERE banner_id = ?`, facultyColumns)
	return r.scanOne(ctx, query, bannerID)
}

// List retrieves a page of faculty records ordered by last name
func (r *FacultyRepository) List(ctx context.Context, limit, offset int) ([]*entity.Faculty, error) {
	query := fmt.Sprintf(`SELECT %s FROM faculty ORDER BY last_name, first_name LIMIT ? OFFSET ?`, facultyColumns)

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list faculty", zap.Error(err))
		return nil, fmt.Errorf("failed to list faculty: %w", err)
	}
	defer rows.Close()

	var list []*entity.Faculty
	for rows.Next() {
		f, err := scanFaculty(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, f)
	}
	return list, rows.Err()
}

// UpdateStatus updates the employment status
func (r *FacultyRepository) UpdateStatus(ctx context.Context, id int64, status entity.EmploymentStatus) error {
	query := `UPDATE faculty SET status = ?, updated_at = ? WHERE id = ?`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, string(status), time.Now(), id)
	if err != nil {
		r.logger.Error("Failed to update faculty status",
			zap.Int64("id", id),
			zap.String("status", status.String()),
			zap.Error(err))
		return fmt.Errorf("failed to update faculty status: %w", err)
	}
	return nil
}

// UpdateContractExpiration sets the contract expiration date
func (r *FacultyRepository) UpdateContractExpiration(ctx context.Context, id int64, expiration time.Time) error {
	query := `UPDATE faculty SET contract_expiration_date = ?, updated_at = ? WHERE id = ?`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, expiration, time.Now(), id)
	if err != nil {
		r.logger.Error("Failed to update contract expiration",
			zap.Int64("id", id),
			zap.Error(err))
		return fmt.Errorf("failed to update contract expiration: %w", err)
	}
	return nil
}

func (r *FacultyRepository) scanOne(ctx context.Context, query string, arg interface{}) (*entity.Faculty, error) {
	row := getExecutor(ctx, r.db).QueryRowContext(ctx, query, arg)
	f, err := scanFaculty(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get faculty", zap.Error(err))
		return nil, fmt.Errorf("failed to get faculty: %w", err)
	}
	return f, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanFaculty(row rowScanner) (*entity.Faculty, error) {
	var f entity.Faculty
	var status string
	err := row.Scan(
		&f.ID,
		&f.BannerID,
		&f.FirstName,
		&f.LastName,
		&f.Department,
		&f.JobTitle,
		&f.HireDate,
		&f.ContractExpiration,
		&status,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	f.Status = entity.EmploymentStatus(status)
	return &f, nil
}

// Verify interface compliance
var _ port.FacultyRepository = (*FacultyRepository)(nil)
