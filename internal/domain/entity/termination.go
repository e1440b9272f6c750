package entity

import "time"

// TerminationType classifies a separation request
type TerminationType string

const (
	TerminationResignation TerminationType = "Resignation"
	TerminationNonRenewal  TerminationType = "Non-Renewal"
	TerminationTermination TerminationType = "Termination"
	TerminationRetirement  TerminationType = "Retirement"
	TerminationDeceased    TerminationType = "Deceased"
)

// IsValid returns true if the type is one of the defined constants
func (t TerminationType) IsValid() bool {
	switch t {
	case TerminationResignation, TerminationNonRenewal, TerminationTermination,
		TerminationRetirement, TerminationDeceased:
		return true
	}
	return false
}

// TerminationRequest is one separation process for a faculty member.
// The submitting faculty member may delete it only while the status is
// still Submitted. Status holds the legacy string form.
type TerminationRequest struct {
	ID                   int64           `json:"id"`
	FacultyID            int64           `json:"faculty_id"`
	Status               string          `json:"status"`
	Type                 TerminationType `json:"termination_type"`
	Reason               string          `json:"reason"`
	SubmissionDate       time.Time       `json:"submission_date"`
	LastWorkingDate      time.Time       `json:"last_working_date"`
	NoticeDate           time.Time       `json:"notice_date"`
	NoticePeriodAccepted bool            `json:"notice_period_accepted"`
	MonthsInLieu         int             `json:"months_in_lieu_of_notice"`
	DocumentPath         string          `json:"document_path,omitempty"`
	Summary              string          `json:"summary,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}
