package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/facultyops/renewal-workflow/internal/application/port"
	"github.com/facultyops/renewal-workflow/internal/domain/entity"
	"github.com/facultyops/renewal-workflow/internal/domain/workflow"
)

// TerminationRepository implements port.TerminationRepository
type TerminationRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewTerminationRepository creates a new termination request repository
func NewTerminationRepository(db *sql.DB, logger *zap.Logger) port.TerminationRepository {
	return &TerminationRepository{db: db, logger: logger}
}

const terminationColumns = `id, faculty_id, status, termination_type, reason,
	submission_date, last_working_date, notice_date, notice_period_accepted,
	months_in_lieu_of_notice, document_path, summary, created_at, updated_at`

// Create inserts a new request
func (r *TerminationRepository) Create(ctx context.Context, req *entity.TerminationRequest) error {
	query := `
		INSERT INTO termination_requests (
			faculty_id, status, termination_type, reason, submission_date,
			last_working_date, notice_date, notice_period_accepted,
			months_in_lieu_of_notice, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	now := time.Now()
	if req.SubmissionDate.IsZero() {
		req.SubmissionDate = now
	}
	req.CreatedAt = now
	req.UpdatedAt = now

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		req.FacultyID, req.Status, string(req.Type), req.Reason, req.SubmissionDate,
		req.LastWorkingDate, req.NoticeDate, req.NoticePeriodAccepted,
		req.MonthsInLieu, req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create termination request",
			zap.Int64("faculty_id", req.FacultyID),
			zap.Error(err))
		return fmt.Errorf("failed to create termination request: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	req.ID = id
	return nil
}

// GetByID retrieves a request by ID
func (r *TerminationRepository) GetByID(ctx context.Context, id int64) (*entity.TerminationRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM termination_requests WHERE id = ?`, terminationColumns)
	return r.scanOne(ctx, query, id)
}

// GetLatestByFacultyID retrieves the most recent request for a faculty member
func (r *TerminationRepository) GetLatestByFacultyID(ctx context.Context, facultyID int64) (*entity.TerminationRequest, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM termination_requests
		WHERE faculty_id = ?
		ORDER BY submission_date DESC
		LIMIT 1
	`, terminationColumns)
	return r.scanOne(ctx, query, facultyID)
}

// ListPendingForRole retrieves requests whose pending step belongs to the role
func (r *TerminationRepository) ListPendingForRole(ctx context.Context, role workflow.Role) ([]*entity.TerminationRequest, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM termination_requests t
		WHERE EXISTS (
			SELECT 1 FROM termination_approval_steps s
			WHERE s.request_id = t.id AND s.role = ? AND s.status = 'Pending'
		)
		ORDER BY t.submission_date
	`, prefixColumns("t", terminationColumns))

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, string(role))
	if err != nil {
		r.logger.Error("Failed to list pending requests",
			zap.String("role", string(role)),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list pending requests: %w", err)
	}
	defer rows.Close()

	var list []*entity.TerminationRequest
	for rows.Next() {
		req, err := scanTermination(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, req)
	}
	return list, rows.Err()
}

// UpdateStatus updates the request status
func (r *TerminationRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE termination_requests SET status = ?, updated_at = ? WHERE id = ?`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		r.logger.Error("Failed to update request status",
			zap.Int64("id", id),
			zap.String("status", status),
			zap.Error(err))
		return fmt.Errorf("failed to update request status: %w", err)
	}
	return nil
}

// SetDocumentPath records the uploaded supporting document location
func (r *TerminationRepository) SetDocumentPath(ctx context.Context, id int64, path string) error {
	query := `UPDATE termination_requests SET document_path = ?, updated_at = ? WHERE id = ?`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, path, time.Now(), id)
	if err != nil {
		r.logger.Error("Failed to set document path", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to set document path: %w", err)
	}
	return nil
}

// SetSummary stores the generated document summary
func (r *TerminationRepository) SetSummary(ctx context.Context, id int64, summary string) error {
	query := `UPDATE termination_requests SET summary = ?, updated_at = ? WHERE id = ?`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, summary, time.Now(), id)
	if err != nil {
		r.logger.Error("Failed to set summary", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to set summary: %w", err)
	}
	return nil
}

// Delete removes the request. The termination step table declares
// ON DELETE CASCADE, so the ledger goes with it.
func (r *TerminationRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM termination_requests WHERE id = ?`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to delete termination request", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete termination request: %w", err)
	}
	return nil
}

func (r *TerminationRepository) scanOne(ctx context.Context, query string, arg interface{}) (*entity.TerminationRequest, error) {
	row := getExecutor(ctx, r.db).QueryRowContext(ctx, query, arg)
	req, err := scanTermination(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get termination request", zap.Error(err))
		return nil, fmt.Errorf("failed to get termination request: %w", err)
	}
	return req, nil
}

func scanTermination(row rowScanner) (*entity.TerminationRequest, error) {
	var req entity.TerminationRequest
	var termType string
	var documentPath, summary sql.NullString
	err := row.Scan(
		&req.ID,
		&req.FacultyID,
		&req.Status,
		&termType,
		&req.Reason,
		&req.SubmissionDate,
		&req.LastWorkingDate,
		&req.NoticeDate,
		&req.NoticePeriodAccepted,
		&req.MonthsInLieu,
		&documentPath,
		&summary,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	req.Type = entity.TerminationType(termType)
	req.DocumentPath = documentPath.String
	req.Summary = summary.String
	return &req, nil
}

// Verify interface compliance
var _ port.TerminationRepository = (*TerminationRepository)(nil)
