package entity

import "time"

// EmploymentStatus is the employment state of a faculty member
type EmploymentStatus string

const (
	EmploymentActive             EmploymentStatus = "Active"
	EmploymentTerminationPending EmploymentStatus = "Termination Pending"
	EmploymentTerminated         EmploymentStatus = "Terminated"
)

// String returns the string representation of the employment status
func (s EmploymentStatus) String() string {
	return string(s)
}

// Faculty represents a faculty member's employment record.
// Owned by the HR domain; workflow instances reference it but the
// record itself is only mutated at terminal workflow states.
type Faculty struct {
	ID                 int64            `json:"id"`
	BannerID           string           `json:"banner_id"`
	FirstName          string           `json:"first_name"`
	LastName           string           `json:"last_name"`
	Department         string           `json:"department"`
	JobTitle           string           `json:"job_title"`
	HireDate           time.Time        `json:"hire_date"`
	ContractExpiration time.Time        `json:"contract_expiration_date"`
	Status             EmploymentStatus `json:"status"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// FullName returns the display name of the faculty member
func (f *Faculty) FullName() string {
	return f.FirstName + " " + f.LastName
}

// DaysUntilExpiration returns the number of whole days between now and
// the contract expiration date. Negative when already expired.
func (f *Faculty) DaysUntilExpiration(now time.Time) int {
	return int(f.ContractExpiration.Sub(now).Hours() / 24)
}
