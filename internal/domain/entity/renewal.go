package entity

import (
	"fmt"
	"time"
)

// Rating is an evaluation score on a renewal application
type Rating string

const (
	RatingExcellent      Rating = "Excellent"
	RatingGood           Rating = "Good"
	RatingSatisfactory   Rating = "Satisfactory"
	RatingUnsatisfactory Rating = "Unsatisfactory"
)

// IsValid returns true if the rating is one of the defined constants
func (r Rating) IsValid() bool {
	switch r {
	case RatingExcellent, RatingGood, RatingSatisfactory, RatingUnsatisfactory:
		return true
	}
	return false
}

// EvaluationScores holds the per-area ratings recorded on an application
type EvaluationScores struct {
	Teaching Rating `json:"teaching,omitempty"`
	Research Rating `json:"research,omitempty"`
	Service  Rating `json:"service,omitempty"`
	Overall  Rating `json:"overall,omitempty"`
}

// Validate rejects any set rating outside the defined scale. Unset
// areas are allowed; evaluations can be recorded incrementally.
func (s EvaluationScores) Validate() error {
	for area, r := range map[string]Rating{
		"teaching": s.Teaching,
		"research": s.Research,
		"service":  s.Service,
		"overall":  s.Overall,
	} {
		if r != "" && !r.IsValid() {
			return fmt.Errorf("invalid %s rating %q", area, r)
		}
	}
	return nil
}

// RenewalApplication is one contract renewal cycle for a faculty member.
// At most one non-terminal application may exist per faculty member.
// Status holds the legacy string form; parse with workflow.ParseStatus.
type RenewalApplication struct {
	ID             int64            `json:"id"`
	FacultyID      int64            `json:"faculty_id"`
	Status         string           `json:"status"`
	SubmissionDate time.Time        `json:"submission_date"`
	RenewalYears   int              `json:"renewal_years"`
	DossierPath    string           `json:"dossier_path,omitempty"`
	Summary        string           `json:"summary,omitempty"`
	Scores         EvaluationScores `json:"scores"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}
