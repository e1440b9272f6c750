package service

import (
	"context"
	"fmt"

	"github.com/facultyops/renewal-workflow/internal/application/port"
	"github.com/facultyops/renewal-workflow/internal/domain/workflow"
)

type roleSelector struct {
	userRepo port.UserRepository
}

// NewRoleSelector returns the default ApproverSelector: the first
// active account holding the role.
func NewRoleSelector(userRepo port.UserRepository) port.ApproverSelector {
	return &roleSelector{userRepo: userRepo}
}

func (s *roleSelector) SelectApprover(ctx context.Context, role workflow.Role) (int64, error) {
	user, err := s.userRepo.FirstActiveByRole(ctx, role)
	if err != nil {
		return 0, fmt.Errorf("lookup %s accounts: %w", role, err)
	}
	if user == nil {
		return 0, fmt.Errorf("%w: %s", workflow.ErrNoEligibleUser, role)
	}
	return user.ID, nil
}
