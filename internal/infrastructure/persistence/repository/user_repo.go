package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/facultyops/renewal-workflow/internal/application/port"
	"github.com/facultyops/renewal-workflow/internal/domain/entity"
	"github.com/facultyops/renewal-workflow/internal/domain/workflow"
)

// UserRepository implements port.UserRepository
type UserRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB, logger *zap.Logger) port.UserRepository {
	return &UserRepository{db: db, logger: logger}
}

// GetByID retrieves a user with their roles
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	query := `SELECT id, banner_id, is_active, last_login, created_at FROM users WHERE id = ?`
	return r.scanOne(ctx, query, id)
}

// GetByBannerID retrieves a user by banner ID
func (r *UserRepository) GetByBannerID(ctx context.Context, bannerID string) (*entity.User, error) {
	query := `SELECT id, banner_id, is_active, last_login, created_at FROM users WHERE banner_id = ?`
	return r.scanOne(ctx, query, bannerID)
}

// FirstActiveByRole returns the first active account holding the role,
// lowest user ID first so assignment is deterministic.
func (r *UserRepository) FirstActiveByRole(ctx context.Context, role workflow.Role) (*entity.User, error) {
	query := `
		SELECT u.id, u.banner_id, u.is_active, u.last_login, u.created_at
		FROM users u
		JOIN user_roles ur ON ur.user_id = u.id
		JOIN roles r ON r.id = ur.role_id
		WHERE r.name = ? AND u.is_active = 1
		ORDER BY u.id
		LIMIT 1
	`

	var u entity.User
	var lastLogin sql.NullTime
	err := getExecutor(ctx, r.db).QueryRowContext(ctx, query, string(role)).Scan(
		&u.ID, &u.BannerID, &u.IsActive, &lastLogin, &u.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to find user by role",
			zap.String("role", string(role)),
			zap.Error(err))
		return nil, fmt.Errorf("failed to find user by role: %w", err)
	}
	if lastLogin.Valid {
		u.LastLogin = &lastLogin.Time
	}
	if err := r.loadRoles(ctx, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) scanOne(ctx context.Context, query string, arg interface{}) (*entity.User, error) {
	var u entity.User
	var lastLogin sql.NullTime
	err := getExecutor(ctx, r.db).QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.BannerID, &u.IsActive, &lastLogin, &u.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get user", zap.Error(err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if lastLogin.Valid {
		u.LastLogin = &lastLogin.Time
	}
	if err := r.loadRoles(ctx, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) loadRoles(ctx context.Context, u *entity.User) error {
	query := `
		SELECT r.name
		FROM roles r
		JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = ?
		ORDER BY r.name
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, u.ID)
	if err != nil {
		r.logger.Error("Failed to load user roles",
			zap.Int64("user_id", u.ID),
			zap.Error(err))
		return fmt.Errorf("failed to load user roles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("failed to scan role: %w", err)
		}
		u.Roles = append(u.Roles, workflow.Role(name))
	}
	return rows.Err()
}

// Verify interface compliance
var _ port.UserRepository = (*UserRepository)(nil)
