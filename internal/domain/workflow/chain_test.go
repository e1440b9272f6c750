package workflow

import "testing"

func TestChainFor(t *testing.T) {
	if ChainFor(KindRenewal) == nil {
		t.Fatal("ChainFor(KindRenewal) returned nil")
	}
	if ChainFor(KindTermination) == nil {
		t.Fatal("ChainFor(KindTermination) returned nil")
	}
	if ChainFor(Kind("unknown")) != nil {
		t.Error("ChainFor() should return nil for unknown kind")
	}
}

func TestChain_First(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected Role
	}{
		{KindRenewal, RoleDepartmentChair},
		{KindTermination, RoleDean},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if got := ChainFor(tt.kind).First(); got != tt.expected {
				t.Errorf("First() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestChain_Next(t *testing.T) {
	tests := []struct {
		name     string
		kind     Kind
		role     Role
		expected Role
		ok       bool
	}{
		{"renewal chair to dean", KindRenewal, RoleDepartmentChair, RoleDean, true},
		{"renewal dean to provost", KindRenewal, RoleDean, RoleProvost, true},
		{"renewal provost to hr", KindRenewal, RoleProvost, RoleHR, true},
		{"renewal hr is terminal", KindRenewal, RoleHR, "", false},
		{"renewal vc not in chain", KindRenewal, RoleVC, "", false},
		{"termination dean to provost", KindTermination, RoleDean, RoleProvost, true},
		{"termination hr to vc", KindTermination, RoleHR, RoleVC, true},
		{"termination vc is terminal", KindTermination, RoleVC, "", false},
		{"termination chair not in chain", KindTermination, RoleDepartmentChair, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ChainFor(tt.kind).Next(tt.role)
			if ok != tt.ok || got != tt.expected {
				t.Errorf("Next(%v) = (%v, %v), want (%v, %v)", tt.role, got, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestChain_IsTerminal(t *testing.T) {
	tests := []struct {
		kind     Kind
		role     Role
		expected bool
	}{
		{KindRenewal, RoleHR, true},
		{KindRenewal, RoleProvost, false},
		{KindRenewal, RoleVC, false},
		{KindTermination, RoleVC, true},
		{KindTermination, RoleHR, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind)+"/"+string(tt.role), func(t *testing.T) {
			if got := ChainFor(tt.kind).IsTerminal(tt.role); got != tt.expected {
				t.Errorf("IsTerminal(%v) = %v, want %v", tt.role, got, tt.expected)
			}
		})
	}
}

func TestChain_NextEligible(t *testing.T) {
	chain := ChainFor(KindTermination)

	tests := []struct {
		name     string
		approved map[Role]bool
		expected Role
		ok       bool
	}{
		{"nothing approved", map[Role]bool{}, RoleDean, true},
		{"dean approved", map[Role]bool{RoleDean: true}, RoleProvost, true},
		{"dean and provost approved", map[Role]bool{RoleDean: true, RoleProvost: true}, RoleHR, true},
		{"all approved", map[Role]bool{RoleDean: true, RoleProvost: true, RoleHR: true, RoleVC: true}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := chain.NextEligible(tt.approved)
			if ok != tt.ok || got != tt.expected {
				t.Errorf("NextEligible() = (%v, %v), want (%v, %v)", got, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestChain_Contains(t *testing.T) {
	if !ChainFor(KindRenewal).Contains(RoleDepartmentChair) {
		t.Error("renewal chain should contain Department Chair")
	}
	if ChainFor(KindTermination).Contains(RoleDepartmentChair) {
		t.Error("termination chain should not contain Department Chair")
	}
}
