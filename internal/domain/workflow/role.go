package workflow

// Role identifies an actor in the approval chain
type Role string

const (
	RoleFaculty         Role = "Faculty"
	RoleDepartmentChair Role = "Department Chair"
	RoleDean            Role = "Dean"
	RoleProvost         Role = "Provost"
	RoleHR              Role = "HR"
	RoleVC              Role = "VC"
)

var validRoles = map[Role]bool{
	RoleFaculty:         true,
	RoleDepartmentChair: true,
	RoleDean:            true,
	RoleProvost:         true,
	RoleHR:              true,
	RoleVC:              true,
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// IsValid returns true if the role is one of the defined constants
func (r Role) IsValid() bool {
	return validRoles[r]
}

// Kind identifies which approval workflow an instance belongs to
type Kind string

const (
	KindRenewal     Kind = "renewal"
	KindTermination Kind = "termination"
)

// String returns the string representation of the workflow kind
func (k Kind) String() string {
	return string(k)
}

// IsValid returns true if the kind is one of the defined constants
func (k Kind) IsValid() bool {
	return k == KindRenewal || k == KindTermination
}
