package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/facultyops/renewal-workflow/internal/application/service"
	"github.com/facultyops/renewal-workflow/internal/domain/entity"
	"github.com/facultyops/renewal-workflow/internal/domain/workflow"
)

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status     string            `json:"status"`
	Timestamp  string            `json:"timestamp"`
	Version    string            `json:"version"`
	Components map[string]string `json:"components,omitempty"`
}

// RenewalResponse represents a renewal application in API responses
type RenewalResponse struct {
	ID             int64                   `json:"id"`
	FacultyID      int64                   `json:"faculty_id"`
	Status         string                  `json:"status"`
	SubmissionDate string                  `json:"submission_date"`
	RenewalYears   int                     `json:"renewal_years"`
	DossierPath    string                  `json:"dossier_path,omitempty"`
	Summary        string                  `json:"summary,omitempty"`
	Scores         entity.EvaluationScores `json:"scores"`
	CreatedAt      string                  `json:"created_at"`
	UpdatedAt      string                  `json:"updated_at"`
}

// TerminationResponse represents a termination request in API responses
type TerminationResponse struct {
	ID                   int64  `json:"id"`
	FacultyID            int64  `json:"faculty_id"`
	Status               string `json:"status"`
	Type                 string `json:"termination_type"`
	Reason               string `json:"reason"`
	SubmissionDate       string `json:"submission_date"`
	LastWorkingDate      string `json:"last_working_date"`
	NoticeDate           string `json:"notice_date"`
	NoticePeriodAccepted bool   `json:"notice_period_accepted"`
	MonthsInLieu         int    `json:"months_in_lieu_of_notice"`
	DocumentPath         string `json:"document_path,omitempty"`
	Summary              string `json:"summary,omitempty"`
	CreatedAt            string `json:"created_at"`
	UpdatedAt            string `json:"updated_at"`
}

// StepResponse represents one approval step in API responses
type StepResponse struct {
	ID           int64   `json:"id"`
	Role         string  `json:"role"`
	Status       string  `json:"status"`
	YearsGranted *int    `json:"years_granted,omitempty"`
	Comments     string  `json:"comments,omitempty"`
	ActionDate   *string `json:"action_date,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

// InstanceStateResponse represents the resolved workflow state
type InstanceStateResponse struct {
	Kind       string         `json:"workflow_kind"`
	InstanceID int64          `json:"instance_id"`
	Status     string         `json:"status"`
	Steps      []StepResponse `json:"steps"`
}

// DecisionResponse represents the outcome of a submitted decision
type DecisionResponse struct {
	NewStatus string  `json:"new_status"`
	NextRole  *string `json:"next_role,omitempty"`
}

// FacultyResponse represents a faculty member in API responses
type FacultyResponse struct {
	ID                 int64  `json:"id"`
	BannerID           string `json:"banner_id"`
	FirstName          string `json:"first_name"`
	LastName           string `json:"last_name"`
	Department         string `json:"department"`
	JobTitle           string `json:"job_title"`
	HireDate           string `json:"hire_date"`
	ContractExpiration string `json:"contract_expiration_date"`
	Status             string `json:"status"`
}

// FacultyProfileResponse combines a faculty record with its workflow history
type FacultyProfileResponse struct {
	Faculty             FacultyResponse      `json:"faculty"`
	DaysUntilExpiration int                  `json:"days_until_expiration"`
	LatestRenewal       *RenewalResponse     `json:"latest_renewal,omitempty"`
	LatestTermination   *TerminationResponse `json:"latest_termination,omitempty"`
}

// UploadResponse represents the result of a document upload
type UploadResponse struct {
	InstanceID int64  `json:"instance_id"`
	Path       string `json:"path"`
}

func toRenewalResponse(app *entity.RenewalApplication) RenewalResponse {
	return RenewalResponse{
		ID:             app.ID,
		FacultyID:      app.FacultyID,
		Status:         app.Status,
		SubmissionDate: app.SubmissionDate.Format(time.RFC3339),
		RenewalYears:   app.RenewalYears,
		DossierPath:    app.DossierPath,
		Summary:        app.Summary,
		Scores:         app.Scores,
		CreatedAt:      app.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      app.UpdatedAt.Format(time.RFC3339),
	}
}

func toTerminationResponse(req *entity.TerminationRequest) TerminationResponse {
	return TerminationResponse{
		ID:                   req.ID,
		FacultyID:            req.FacultyID,
		Status:               req.Status,
		Type:                 string(req.Type),
		Reason:               req.Reason,
		SubmissionDate:       req.SubmissionDate.Format(time.RFC3339),
		LastWorkingDate:      req.LastWorkingDate.Format("2006-01-02"),
		NoticeDate:           req.NoticeDate.Format("2006-01-02"),
		NoticePeriodAccepted: req.NoticePeriodAccepted,
		MonthsInLieu:         req.MonthsInLieu,
		DocumentPath:         req.DocumentPath,
		Summary:              req.Summary,
		CreatedAt:            req.CreatedAt.Format(time.RFC3339),
		UpdatedAt:            req.UpdatedAt.Format(time.RFC3339),
	}
}

func toStateResponse(state *service.InstanceState) InstanceStateResponse {
	resp := InstanceStateResponse{
		Kind:       state.Kind.String(),
		InstanceID: state.InstanceID,
		Status:     state.Status.String(),
		Steps:      make([]StepResponse, 0, len(state.Steps)),
	}
	for _, step := range state.Steps {
		sr := StepResponse{
			ID:           step.ID,
			Role:         step.Role.String(),
			Status:       step.Status.String(),
			YearsGranted: step.YearsGranted,
			Comments:     step.Comments,
			CreatedAt:    step.CreatedAt.Format(time.RFC3339),
		}
		if step.ActionDate != nil {
			actionDate := step.ActionDate.Format(time.RFC3339)
			sr.ActionDate = &actionDate
		}
		resp.Steps = append(resp.Steps, sr)
	}
	return resp
}

func toDecisionResponse(result *service.TransitionResult) DecisionResponse {
	resp := DecisionResponse{NewStatus: result.NewStatus.String()}
	if result.NextRole != nil {
		nextRole := result.NextRole.String()
		resp.NextRole = &nextRole
	}
	return resp
}

func toFacultyResponse(f *entity.Faculty) FacultyResponse {
	return FacultyResponse{
		ID:                 f.ID,
		BannerID:           f.BannerID,
		FirstName:          f.FirstName,
		LastName:           f.LastName,
		Department:         f.Department,
		JobTitle:           f.JobTitle,
		HireDate:           f.HireDate.Format("2006-01-02"),
		ContractExpiration: f.ContractExpiration.Format("2006-01-02"),
		Status:             f.Status.String(),
	}
}

// statusCodeFor maps domain errors to HTTP status codes
func statusCodeFor(err error) int {
	switch {
	case errors.Is(err, workflow.ErrInvalidDecision),
		errors.Is(err, workflow.ErrMissingYearsGranted),
		errors.Is(err, workflow.ErrMissingFields),
		errors.Is(err, workflow.ErrInvalidStatus):
		return http.StatusBadRequest
	case errors.Is(err, workflow.ErrNotAuthorizedStep),
		errors.Is(err, workflow.ErrNotAuthorized):
		return http.StatusForbidden
	case errors.Is(err, workflow.ErrFacultyNotFound),
		errors.Is(err, workflow.ErrInstanceNotFound):
		return http.StatusNotFound
	case errors.Is(err, workflow.ErrNoPendingStep),
		errors.Is(err, workflow.ErrDuplicateActiveApplication),
		errors.Is(err, workflow.ErrNoEligibleUser),
		errors.Is(err, workflow.ErrNotCancelable),
		errors.Is(err, workflow.ErrNotCompleted):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
