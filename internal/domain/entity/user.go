package entity

import (
	"time"

	"github.com/facultyops/renewal-workflow/internal/domain/workflow"
)

// User represents an account that can act in a workflow. Roles are
// assigned through the user_roles table; a single account may hold
// several roles.
type User struct {
	ID        int64           `json:"id"`
	BannerID  string          `json:"banner_id"`
	IsActive  bool            `json:"is_active"`
	Roles     []workflow.Role `json:"roles,omitempty"`
	LastLogin *time.Time      `json:"last_login,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// HasRole returns true if the user holds the given role
func (u *User) HasRole(role workflow.Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
