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

// RenewalRepository implements port.RenewalRepository
type RenewalRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewRenewalRepository creates a new renewal application repository
func NewRenewalRepository(db *sql.DB, logger *zap.Logger) port.RenewalRepository {
	return &RenewalRepository{db: db, logger: logger}
}

const renewalColumns = `id, faculty_id, status, submission_date, renewal_years,
	dossier_path, summary, score_teaching, score_research, score_service, score_overall,
	created_at, updated_at`

// Create inserts a new application
func (r *RenewalRepository) Create(ctx context.Context, app *entity.RenewalApplication) error {
	query := `
		INSERT INTO renewal_applications (
			faculty_id, status, submission_date, renewal_years, created_at, updated_at
		) VALUES (?, ?, ?, 0, ?, ?)
	`

	now := time.Now()
	if app.SubmissionDate.IsZero() {
		app.SubmissionDate = now
	}
	app.CreatedAt = now
	app.UpdatedAt = now

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		app.FacultyID, app.Status, app.SubmissionDate, app.CreatedAt, app.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create application",
			zap.Int64("faculty_id", app.FacultyID),
			zap.Error(err))
		return fmt.Errorf("failed to create application: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	app.ID = id
	return nil
}

// GetByID retrieves an application by ID
func (r *RenewalRepository) GetByID(ctx context.Context, id int64) (*entity.RenewalApplication, error) {
	query := fmt.Sprintf(`SELECT %s FROM renewal_applications WHERE id = ?`, renewalColumns)
	return r.scanOne(ctx, query, id)
}

// GetActiveByFacultyID retrieves the faculty member's non-terminal
// application. Completed and rejected applications do not count.
func (r *RenewalRepository) GetActiveByFacultyID(ctx context.Context, facultyID int64) (*entity.RenewalApplication, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM renewal_applications
		WHERE faculty_id = ?
			AND status != 'Completed'
			AND status NOT LIKE '%% Rejected'
		ORDER BY submission_date DESC
		LIMIT 1
	`, renewalColumns)
	return r.scanOne(ctx, query, facultyID)
}

// GetLatestByFacultyID retrieves the most recent application regardless of state
func (r *RenewalRepository) GetLatestByFacultyID(ctx context.Context, facultyID int64) (*entity.RenewalApplication, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM renewal_applications
		WHERE faculty_id = ?
		ORDER BY submission_date DESC
		LIMIT 1
	`, renewalColumns)
	return r.scanOne(ctx, query, facultyID)
}

// ListPendingForRole retrieves applications whose pending step belongs to the role
func (r *RenewalRepository) ListPendingForRole(ctx context.Context, role workflow.Role) ([]*entity.RenewalApplication, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM renewal_applications a
		WHERE EXISTS (
			SELECT 1 FROM approval_steps s
			WHERE s.application_id = a.id AND s.role = ? AND s.status = 'Pending'
		)
		ORDER BY a.submission_date
	`, prefixColumns("a", renewalColumns))

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, string(role))
	if err != nil {
		r.logger.Error("Failed to list pending applications",
			zap.String("role", string(role)),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list pending applications: %w", err)
	}
	defer rows.Close()

	var list []*entity.RenewalApplication
	for rows.Next() {
		app, err := scanRenewal(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, app)
	}
	return list, rows.Err()
}

// UpdateStatus updates the application status
func (r *RenewalRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE renewal_applications SET status = ?, updated_at = ? WHERE id = ?`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		r.logger.Error("Failed to update application status",
			zap.Int64("id", id),
			zap.String("status", status),
			zap.Error(err))
		return fmt.Errorf("failed to update application status: %w", err)
	}
	return nil
}

// SetRenewalYears records the granted years. A positive value already
// on the row is never overwritten with zero.
func (r *RenewalRepository) SetRenewalYears(ctx context.Context, id int64, years int) error {
	query := `
		UPDATE renewal_applications
		SET renewal_years = ?, updated_at = ?
		WHERE id = ? AND (? > 0 OR renewal_years <= 0)
	`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, years, time.Now(), id, years)
	if err != nil {
		r.logger.Error("Failed to set renewal years",
			zap.Int64("id", id),
			zap.Int("years", years),
			zap.Error(err))
		return fmt.Errorf("failed to set renewal years: %w", err)
	}
	return nil
}

// SetDossierPath records the uploaded dossier location
func (r *RenewalRepository) SetDossierPath(ctx context.Context, id int64, path string) error {
	query := `UPDATE renewal_applications SET dossier_path = ?, updated_at = ? WHERE id = ?`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, path, time.Now(), id)
	if err != nil {
		r.logger.Error("Failed to set dossier path", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to set dossier path: %w", err)
	}
	return nil
}

// SetSummary stores the generated dossier summary
func (r *RenewalRepository) SetSummary(ctx context.Context, id int64, summary string) error {
	query := `UPDATE renewal_applications SET summary = ?, updated_at = ? WHERE id = ?`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, summary, time.Now(), id)
	if err != nil {
		r.logger.Error("Failed to set summary", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to set summary: %w", err)
	}
	return nil
}

// SetScores stores the evaluation ratings
func (r *RenewalRepository) SetScores(ctx context.Context, id int64, scores entity.EvaluationScores) error {
	query := `
		UPDATE renewal_applications
		SET score_teaching = ?, score_research = ?, score_service = ?, score_overall = ?, updated_at = ?
		WHERE id = ?
	`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		string(scores.Teaching), string(scores.Research),
		string(scores.Service), string(scores.Overall),
		time.Now(), id,
	)
	if err != nil {
		r.logger.Error("Failed to set scores", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to set scores: %w", err)
	}
	return nil
}

func (r *RenewalRepository) scanOne(ctx context.Context, query string, arg interface{}) (*entity.RenewalApplication, error) {
	row := getExecutor(ctx, r.db).QueryRowContext(ctx, query, arg)
	app, err := scanRenewal(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get application", zap.Error(err))
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return app, nil
}

func scanRenewal(row rowScanner) (*entity.RenewalApplication, error) {
	var app entity.RenewalApplication
	var dossierPath, summary sql.NullString
	var teaching, research, service, overall sql.NullString
	err := row.Scan(
		&app.ID,
		&app.FacultyID,
		&app.Status,
		&app.SubmissionDate,
		&app.RenewalYears,
		&dossierPath,
		&summary,
		&teaching,
		&research,
		&service,
		&overall,
		&app.CreatedAt,
		&app.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	app.DossierPath = dossierPath.String
	app.Summary = summary.String
	app.Scores = entity.EvaluationScores{
		Teaching: entity.Rating(teaching.String),
		Research: entity.Rating(research.String),
		Service:  entity.Rating(service.String),
		Overall:  entity.Rating(overall.String),
	}
	return &app, nil
}

// Verify interface compliance
var _ port.RenewalRepository = (*RenewalRepository)(nil)
