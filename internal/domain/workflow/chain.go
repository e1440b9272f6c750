package workflow

// Chain is the ordered sequence of approver roles for a workflow kind.
// The last role in the sequence is the terminal role: its approval
// completes the instance.
type Chain struct {
	kind  Kind
	roles []Role
}

// Approval chains are fixed per workflow kind. All per-role branching is
// driven off these tables rather than switch statements scattered across
// the transition logic.
var chains = map[Kind]*Chain{
	KindRenewal: {
		kind:  KindRenewal,
		roles: []Role{RoleDepartmentChair, RoleDean, RoleProvost, RoleHR},
	},
	KindTermination: {
		kind:  KindTermination,
		roles: []Role{RoleDean, RoleProvost, RoleHR, RoleVC},
	},
}

// ChainFor returns the approval chain for a workflow kind.
// Returns nil for an unknown kind.
func ChainFor(kind Kind) *Chain {
	return chains[kind]
}

// Kind returns the workflow kind this chain belongs to
func (c *Chain) Kind() Kind {
	return c.kind
}

// Roles returns the ordered approver roles
func (c *Chain) Roles() []Role {
	out := make([]Role, len(c.roles))
	copy(out, c.roles)
	return out
}

// First returns the role that reviews a freshly submitted instance
func (c *Chain) First() Role {
	return c.roles[0]
}

// Next returns the role after the given one, or false when the given
// role is the terminal role (or not part of the chain).
func (c *Chain) Next(role Role) (Role, bool) {
	for i, r := range c.roles {
		if r == role && i+1 < len(c.roles) {
			return c.roles[i+1], true
		}
	}
	return "", false
}

// IsTerminal returns true if the role's approval completes the workflow
func (c *Chain) IsTerminal(role Role) bool {
	return len(c.roles) > 0 && c.roles[len(c.roles)-1] == role
}

// Contains returns true if the role participates in this chain
func (c *Chain) Contains(role Role) bool {
	for _, r := range c.roles {
		if r == role {
			return true
		}
	}
	return false
}

// NextEligible returns the first role in the chain that has not yet
// approved, given the set of roles with a recorded approval. Returns
// false when every role has approved (the chain is exhausted).
func (c *Chain) NextEligible(approved map[Role]bool) (Role, bool) {
	for _, r := range c.roles {
		if !approved[r] {
			return r, true
		}
	}
	return "", false
}
