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

// StepRepository implements port.StepRepository. Renewal and
// termination steps live in separate tables with the same shape; the
// workflow kind selects the table. Only renewal steps carry a
// years_granted value.
type StepRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewStepRepository creates a new approval step repository
func NewStepRepository(db *sql.DB, logger *zap.Logger) port.StepRepository {
	return &StepRepository{db: db, logger: logger}
}

type stepTable struct {
	name        string
	instanceCol string
}

func tableFor(kind workflow.Kind) (stepTable, error) {
	switch kind {
	case workflow.KindRenewal:
		return stepTable{name: "approval_steps", instanceCol: "application_id"}, nil
	case workflow.KindTermination:
		return stepTable{name: "termination_approval_steps", instanceCol: "request_id"}, nil
	default:
		return stepTable{}, fmt.Errorf("unknown workflow kind %q", kind)
	}
}

// Create inserts a new step
func (r *StepRepository) Create(ctx context.Context, step *entity.ApprovalStep) error {
	table, err := tableFor(step.Kind)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, role, assignee_user_id, status, years_granted, comments, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, table.name, table.instanceCol)

	step.CreatedAt = time.Now()
	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		step.InstanceID, string(step.Role), step.AssigneeUserID,
		string(step.Status), step.YearsGranted, step.Comments, step.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create step",
			zap.String("kind", string(step.Kind)),
			zap.Int64("instance_id", step.InstanceID),
			zap.String("role", string(step.Role)),
			zap.Error(err))
		return fmt.Errorf("failed to create step: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	step.ID = id
	return nil
}

// GetByInstanceID retrieves the full ledger for an instance in creation order
func (r *StepRepository) GetByInstanceID(ctx context.Context, kind workflow.Kind, instanceID int64) ([]*entity.ApprovalStep, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
		SELECT id, %s, role, assignee_user_id, status, years_granted, comments, action_date, created_at
		FROM %s WHERE %s = ? ORDER BY id
	`, table.instanceCol, table.name, table.instanceCol)

	return r.queryList(ctx, kind, query, instanceID)
}

// GetPending retrieves the Pending steps for an instance
func (r *StepRepository) GetPending(ctx context.Context, kind workflow.Kind, instanceID int64) ([]*entity.ApprovalStep, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
		SELECT id, %s, role, assignee_user_id, status, years_granted, comments, action_date, created_at
		FROM %s WHERE %s = ? AND status = 'Pending' ORDER BY id
	`, table.instanceCol, table.name, table.instanceCol)

	return r.queryList(ctx, kind, query, instanceID)
}

// Resolve flips a step out of Pending exactly once. The status guard in
// the WHERE clause makes a concurrent double resolve lose cleanly: the
// second writer changes zero rows.
func (r *StepRepository) Resolve(ctx context.Context, kind workflow.Kind, stepID int64, status workflow.StepStatus, comments string, yearsGranted *int, actionDate time.Time) (int64, error) {
	table, err := tableFor(kind)
	if err != nil {
		return 0, err
	}
	query := fmt.Sprintf(`
		UPDATE %s
		SET status = ?, comments = ?, years_granted = ?, action_date = ?
		WHERE id = ? AND status = 'Pending'
	`, table.name)

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		string(status), comments, yearsGranted, actionDate, stepID,
	)
	if err != nil {
		r.logger.Error("Failed to resolve step",
			zap.String("kind", string(kind)),
			zap.Int64("step_id", stepID),
			zap.Error(err))
		return 0, fmt.Errorf("failed to resolve step: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return affected, nil
}

func (r *StepRepository) queryList(ctx context.Context, kind workflow.Kind, query string, instanceID int64) ([]*entity.ApprovalStep, error) {
	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, instanceID)
	if err != nil {
		r.logger.Error("Failed to query steps",
			zap.String("kind", string(kind)),
			zap.Int64("instance_id", instanceID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to query steps: %w", err)
	}
	defer rows.Close()

	var steps []*entity.ApprovalStep
	for rows.Next() {
		var s entity.ApprovalStep
		var role, status string
		var years sql.NullInt64
		var comments sql.NullString
		var actionDate sql.NullTime
		if err := rows.Scan(
			&s.ID, &s.InstanceID, &role, &s.AssigneeUserID,
			&status, &years, &comments, &actionDate, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan step: %w", err)
		}
		s.Kind = kind
		s.Role = workflow.Role(role)
		s.Status = workflow.StepStatus(status)
		s.Comments = comments.String
		if years.Valid {
			y := int(years.Int64)
			s.YearsGranted = &y
		}
		if actionDate.Valid {
			s.ActionDate = &actionDate.Time
		}
		steps = append(steps, &s)
	}
	return steps, rows.Err()
}

// Verify interface compliance
var _ port.StepRepository = (*StepRepository)(nil)
