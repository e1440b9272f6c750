package workflow

import (
	"errors"
	"testing"
)

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status   Status
		expected string
	}{
		{Submitted(), "Submitted"},
		{Approved(RoleDean), "Dean Approved"},
		{Approved(RoleDepartmentChair), "Department Chair Approved"},
		{Rejected(RoleProvost), "Provost Rejected"},
		{Rejected(RoleVC), "VC Rejected"},
		{Completed(), "Completed"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.status.String(); got != tt.expected {
				t.Errorf("String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected Status
		wantErr  bool
	}{
		{"submitted", "Submitted", Submitted(), false},
		{"completed", "Completed", Completed(), false},
		{"dean approved", "Dean Approved", Approved(RoleDean), false},
		{"chair approved", "Department Chair Approved", Approved(RoleDepartmentChair), false},
		{"hr rejected", "HR Rejected", Rejected(RoleHR), false},
		{"unknown role", "Janitor Approved", Status{}, true},
		{"garbage", "banana", Status{}, true},
		{"empty", "", Status{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStatus(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStatus(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidStatus) {
					t.Errorf("ParseStatus(%q) error = %v, want ErrInvalidStatus", tt.raw, err)
				}
				return
			}
			if got != tt.expected {
				t.Errorf("ParseStatus(%q) = %v, want %v", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestParseStatus_RoundTrip(t *testing.T) {
	statuses := []Status{
		Submitted(),
		Approved(RoleDean),
		Rejected(RoleDepartmentChair),
		Completed(),
	}

	for _, s := range statuses {
		parsed, err := ParseStatus(s.String())
		if err != nil {
			t.Fatalf("ParseStatus(%q) error = %v", s.String(), err)
		}
		if parsed != s {
			t.Errorf("round trip of %v produced %v", s, parsed)
		}
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status   Status
		expected bool
	}{
		{Submitted(), false},
		{Approved(RoleDean), false},
		{Approved(RoleHR), false},
		{Rejected(RoleDean), true},
		{Rejected(RoleVC), true},
		{Completed(), true},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			if got := tt.status.IsTerminal(); got != tt.expected {
				t.Errorf("IsTerminal() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestStatus_Role(t *testing.T) {
	if role, ok := Approved(RoleProvost).Role(); !ok || role != RoleProvost {
		t.Errorf("Role() = (%v, %v), want (Provost, true)", role, ok)
	}
	if _, ok := Submitted().Role(); ok {
		t.Error("Role() should report false for Submitted")
	}
	if _, ok := Completed().Role(); ok {
		t.Error("Role() should report false for Completed")
	}
}

func TestDecision_IsValid(t *testing.T) {
	if !DecisionApprove.IsValid() || !DecisionReject.IsValid() {
		t.Error("approve and reject must be valid decisions")
	}
	if Decision("maybe").IsValid() {
		t.Error("unrecognized decision must be invalid")
	}
}
