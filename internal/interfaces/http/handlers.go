package http

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/facultyops/renewal-workflow/internal/application/port"
	"github.com/facultyops/renewal-workflow/internal/application/service"
	"github.com/facultyops/renewal-workflow/internal/domain/entity"
	"github.com/facultyops/renewal-workflow/internal/domain/workflow"
	"github.com/facultyops/renewal-workflow/pkg/utils"
)

const dateLayout = "2006-01-02"

// Handlers contains all HTTP request handlers
type Handlers struct {
	services Services
	storage  port.FileStorage
	health   HealthChecker
	logger   Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(services Services, storage port.FileStorage, health HealthChecker, logger Logger) *Handlers {
	return &Handlers{
		services: services,
		storage:  storage,
		health:   health,
		logger:   logger,
	}
}

// InitiateRenewalRequest is the body for opening a renewal application
type InitiateRenewalRequest struct {
	FacultyID int64 `json:"faculty_id" binding:"required"`
}

// DecisionRequest is the body for submitting an approval decision
type DecisionRequest struct {
	Role         string `json:"role" binding:"required"`
	Decision     string `json:"decision" binding:"required"`
	Comments     string `json:"comments"`
	YearsGranted int    `json:"years_granted"`
}

// CreateTerminationRequest is the body for filing a separation request
type CreateTerminationRequest struct {
	FacultyID            int64  `json:"faculty_id" binding:"required"`
	Type                 string `json:"termination_type" binding:"required"`
	Reason               string `json:"reason" binding:"required"`
	LastWorkingDate      string `json:"last_working_date" binding:"required"`
	NoticeDate           string `json:"notice_date" binding:"required"`
	NoticePeriodAccepted bool   `json:"notice_period_accepted"`
	MonthsInLieu         int    `json:"months_in_lieu_of_notice"`
}

// ScoresRequest is the body for recording evaluation scores
type ScoresRequest struct {
	Teaching string `json:"teaching"`
	Research string `json:"research"`
	Service  string `json:"service"`
	Overall  string `json:"overall"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   "1.0.0",
	}
	if h.health != nil {
		response.Components = h.health.Health(c.Request.Context())
		for _, state := range response.Components {
			if state != "healthy" {
				response.Status = "degraded"
			}
		}
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    response,
	})
}

// InitiateRenewal handles POST /api/renewals
func (h *Handlers) InitiateRenewal(c *gin.Context) {
	var req InitiateRenewalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body", err)
		return
	}

	app, err := h.services.Renewal.Initiate(c.Request.Context(), req.FacultyID)
	if err != nil {
		h.serviceError(c, "Failed to initiate renewal", err)
		return
	}

	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    toRenewalResponse(app),
	})
}

// GetRenewal handles GET /api/renewals/:id
func (h *Handlers) GetRenewal(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	app, err := h.services.Renewal.GetApplication(c.Request.Context(), id)
	if err != nil {
		h.serviceError(c, "Failed to get renewal application", err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    toRenewalResponse(app),
	})
}

// GetLatestRenewal handles GET /api/renewals/latest?faculty_id=
func (h *Handlers) GetLatestRenewal(c *gin.Context) {
	facultyID, ok := h.queryID(c, "faculty_id")
	if !ok {
		return
	}

	app, err := h.services.Renewal.GetLatestForFaculty(c.Request.Context(), facultyID)
	if err != nil {
		h.serviceError(c, "Failed to get latest renewal application", err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    toRenewalResponse(app),
	})
}

// ListRenewalQueue handles GET /api/renewals/queue?role=
func (h *Handlers) ListRenewalQueue(c *gin.Context) {
	role, ok := h.queryRole(c)
	if !ok {
		return
	}

	apps, err := h.services.Renewal.ListPendingForRole(c.Request.Context(), role)
	if err != nil {
		h.serviceError(c, "Failed to list renewal queue", err)
		return
	}

	responses := make([]RenewalResponse, 0, len(apps))
	for _, app := range apps {
		responses = append(responses, toRenewalResponse(app))
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    responses,
	})
}

// GetRenewalState handles GET /api/renewals/:id/state
func (h *Handlers) GetRenewalState(c *gin.Context) {
	h.instanceState(c, workflow.KindRenewal)
}

// SubmitRenewalDecision handles POST /api/renewals/:id/decisions
func (h *Handlers) SubmitRenewalDecision(c *gin.Context) {
	h.submitDecision(c, workflow.KindRenewal)
}

// UploadDossier handles POST /api/renewals/:id/dossier
func (h *Handlers) UploadDossier(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	path, ok := h.saveUpload(c, fmt.Sprintf("renewal/%d", id))
	if !ok {
		return
	}

	if err := h.services.Renewal.AttachDossier(c.Request.Context(), id, path); err != nil {
		h.serviceError(c, "Failed to attach dossier", err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    UploadResponse{InstanceID: id, Path: path},
	})
}

// RecordScores handles POST /api/renewals/:id/scores
func (h *Handlers) RecordScores(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req ScoresRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body", err)
		return
	}

	scores := entity.EvaluationScores{
		Teaching: entity.Rating(req.Teaching),
		Research: entity.Rating(req.Research),
		Service:  entity.Rating(req.Service),
		Overall:  entity.Rating(req.Overall),
	}
	if err := h.services.Renewal.RecordScores(c.Request.Context(), id, scores); err != nil {
		h.serviceError(c, "Failed to record scores", err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true})
}

// DownloadContract handles GET /api/renewals/:id/contract
func (h *Handlers) DownloadContract(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	doc, err := h.services.Contract.RenderConfirmation(c.Request.Context(), id)
	if err != nil {
		h.serviceError(c, "Failed to render contract confirmation", err)
		return
	}

	filename := fmt.Sprintf("renewal_confirmation_%d.xlsx", id)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", doc)
}

// CreateTermination handles POST /api/terminations
func (h *Handlers) CreateTermination(c *gin.Context) {
	var req CreateTerminationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body", err)
		return
	}

	lastWorkingDate, err := time.Parse(dateLayout, req.LastWorkingDate)
	if err != nil {
		h.badRequest(c, "invalid last_working_date, expected YYYY-MM-DD", err)
		return
	}
	noticeDate, err := time.Parse(dateLayout, req.NoticeDate)
	if err != nil {
		h.badRequest(c, "invalid notice_date, expected YYYY-MM-DD", err)
		return
	}

	request, err := h.services.Termination.Create(c.Request.Context(), service.CreateTerminationInput{
		FacultyID:            req.FacultyID,
		Type:                 entity.TerminationType(req.Type),
		Reason:               req.Reason,
		LastWorkingDate:      lastWorkingDate,
		NoticeDate:           noticeDate,
		NoticePeriodAccepted: req.NoticePeriodAccepted,
		MonthsInLieu:         req.MonthsInLieu,
	})
	if err != nil {
		h.serviceError(c, "Failed to create termination request", err)
		return
	}

	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    toTerminationResponse(request),
	})
}

// GetTermination handles GET /api/terminations/:id
func (h *Handlers) GetTermination(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	request, err := h.services.Termination.GetRequest(c.Request.Context(), id)
	if err != nil {
		h.serviceError(c, "Failed to get termination request", err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    toTerminationResponse(request),
	})
}

// GetLatestTermination handles GET /api/terminations/latest?faculty_id=
func (h *Handlers) GetLatestTermination(c *gin.Context) {
	facultyID, ok := h.queryID(c, "faculty_id")
	if !ok {
		return
	}

	request, err := h.services.Termination.GetLatestForFaculty(c.Request.Context(), facultyID)
	if err != nil {
		h.serviceError(c, "Failed to get latest termination request", err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    toTerminationResponse(request),
	})
}

// ListTerminationQueue handles GET /api/terminations/queue?role=
func (h *Handlers) ListTerminationQueue(c *gin.Context) {
	role, ok := h.queryRole(c)
	if !ok {
		return
	}

	requests, err := h.services.Termination.ListPendingForRole(c.Request.Context(), role)
	if err != nil {
		h.serviceError(c, "Failed to list termination queue", err)
		return
	}

	responses := make([]TerminationResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, toTerminationResponse(request))
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    responses,
	})
}

// GetTerminationState handles GET /api/terminations/:id/state
func (h *Handlers) GetTerminationState(c *gin.Context) {
	h.instanceState(c, workflow.KindTermination)
}

// SubmitTerminationDecision handles POST /api/terminations/:id/decisions
func (h *Handlers) SubmitTerminationDecision(c *gin.Context) {
	h.submitDecision(c, workflow.KindTermination)
}

// UploadTerminationDocument handles POST /api/terminations/:id/document
func (h *Handlers) UploadTerminationDocument(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	path, ok := h.saveUpload(c, fmt.Sprintf("termination/%d", id))
	if !ok {
		return
	}

	if err := h.services.Termination.AttachDocument(c.Request.Context(), id, path); err != nil {
		h.serviceError(c, "Failed to attach document", err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    UploadResponse{InstanceID: id, Path: path},
	})
}

// ProcessTermination handles POST /api/terminations/:id/process
func (h *Handlers) ProcessTermination(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.services.Decision.ProcessTermination(c.Request.Context(), id); err != nil {
		h.serviceError(c, "Failed to process termination", err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true})
}

// CancelTermination handles DELETE /api/terminations/:id?actor_user_id=
func (h *Handlers) CancelTermination(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	actorID, ok := h.queryID(c, "actor_user_id")
	if !ok {
		return
	}

	if err := h.services.Termination.Cancel(c.Request.Context(), id, actorID); err != nil {
		h.serviceError(c, "Failed to cancel termination request", err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true})
}

// ListFaculty handles GET /api/faculty
func (h *Handlers) ListFaculty(c *gin.Context) {
	limit, offset := h.pagination(c)

	members, err := h.services.Faculty.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.serviceError(c, "Failed to list faculty", err)
		return
	}

	responses := make([]FacultyResponse, 0, len(members))
	for _, member := range members {
		responses = append(responses, toFacultyResponse(member))
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    responses,
	})
}

// GetFaculty handles GET /api/faculty/:id
func (h *Handlers) GetFaculty(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	member, err := h.services.Faculty.GetByID(c.Request.Context(), id)
	if err != nil {
		h.serviceError(c, "Failed to get faculty member", err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    toFacultyResponse(member),
	})
}

// GetFacultyProfile handles GET /api/faculty/:id/profile
func (h *Handlers) GetFacultyProfile(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	member, err := h.services.Faculty.GetByID(ctx, id)
	if err != nil {
		h.serviceError(c, "Failed to get faculty member", err)
		return
	}

	profile := FacultyProfileResponse{
		Faculty:             toFacultyResponse(member),
		DaysUntilExpiration: member.DaysUntilExpiration(time.Now()),
	}

	// Latest instances are optional; a member with no history still has a profile
	if app, err := h.services.Renewal.GetLatestForFaculty(ctx, id); err == nil {
		renewal := toRenewalResponse(app)
		profile.LatestRenewal = &renewal
	} else if statusCodeFor(err) != http.StatusNotFound {
		h.serviceError(c, "Failed to get latest renewal application", err)
		return
	}

	if req, err := h.services.Termination.GetLatestForFaculty(ctx, id); err == nil {
		termination := toTerminationResponse(req)
		profile.LatestTermination = &termination
	} else if statusCodeFor(err) != http.StatusNotFound {
		h.serviceError(c, "Failed to get latest termination request", err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    profile,
	})
}

// ListNotifications handles GET /api/notifications?user_id=
func (h *Handlers) ListNotifications(c *gin.Context) {
	userID, ok := h.queryID(c, "user_id")
	if !ok {
		return
	}
	limit, offset := h.pagination(c)

	notifications, err := h.services.Notification.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		h.serviceError(c, "Failed to list notifications", err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    notifications,
	})
}

// MarkNotificationRead handles POST /api/notifications/:id/read
func (h *Handlers) MarkNotificationRead(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.services.Notification.MarkRead(c.Request.Context(), id); err != nil {
		h.serviceError(c, "Failed to mark notification read", err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true})
}

func (h *Handlers) instanceState(c *gin.Context, kind workflow.Kind) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	state, err := h.services.Decision.GetInstanceState(c.Request.Context(), kind, id)
	if err != nil {
		h.serviceError(c, "Failed to resolve workflow state", err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    toStateResponse(state),
	})
}

func (h *Handlers) submitDecision(c *gin.Context, kind workflow.Kind) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body", err)
		return
	}

	role := workflow.Role(req.Role)
	if !role.IsValid() {
		h.badRequest(c, "unknown role", fmt.Errorf("role %q", req.Role))
		return
	}
	if req.YearsGranted != 0 {
		if err := utils.ValidateRenewalYears(req.YearsGranted); err != nil {
			h.badRequest(c, err.Error(), err)
			return
		}
	}

	result, err := h.services.Decision.SubmitDecision(
		c.Request.Context(),
		kind,
		id,
		role,
		workflow.Decision(req.Decision),
		req.Comments,
		req.YearsGranted,
	)
	if err != nil {
		h.serviceError(c, "Failed to submit decision", err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    toDecisionResponse(result),
	})
}

// saveUpload stores the uploaded form file under the given directory
// and returns the storage-relative path.
func (h *Handlers) saveUpload(c *gin.Context, dir string) (string, bool) {
	file, err := c.FormFile("file")
	if err != nil {
		h.badRequest(c, "missing file upload", err)
		return "", false
	}

	if err := utils.ValidateDocumentFilename(file.Filename); err != nil {
		h.badRequest(c, err.Error(), err)
		return "", false
	}

	src, err := file.Open()
	if err != nil {
		h.badRequest(c, "failed to open uploaded file", err)
		return "", false
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		h.logger.Error("Failed to read uploaded file", "error", err)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to read uploaded file",
		})
		return "", false
	}

	path := fmt.Sprintf("%s/%s", dir, filepath.Base(file.Filename))
	if err := h.storage.Save(c.Request.Context(), path, content); err != nil {
		h.logger.Error("Failed to store uploaded file", "error", err, "path", path)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to store uploaded file",
		})
		return "", false
	}

	return path, true
}

func (h *Handlers) pathID(c *gin.Context) (int64, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		h.badRequest(c, "invalid id", fmt.Errorf("id %q", idStr))
		return 0, false
	}
	return id, true
}

func (h *Handlers) queryID(c *gin.Context, name string) (int64, bool) {
	idStr := c.Query(name)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		h.badRequest(c, "invalid "+name, fmt.Errorf("%s %q", name, idStr))
		return 0, false
	}
	return id, true
}

func (h *Handlers) queryRole(c *gin.Context) (workflow.Role, bool) {
	role := workflow.Role(c.Query("role"))
	if !role.IsValid() {
		h.badRequest(c, "unknown role", fmt.Errorf("role %q", c.Query("role")))
		return "", false
	}
	return role, true
}

func (h *Handlers) pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (h *Handlers) badRequest(c *gin.Context, msg string, err error) {
	h.logger.Error(msg, "error", err)
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Error:   msg,
	})
}

// serviceError logs the failure and writes the mapped status code.
// Domain errors carry their own message; unexpected errors are masked.
func (h *Handlers) serviceError(c *gin.Context, msg string, err error) {
	h.logger.Error(msg, "error", err, "path", c.Request.URL.Path)

	status := statusCodeFor(err)
	body := Response{Success: false, Error: err.Error()}
	if status == http.StatusInternalServerError {
		body.Error = "internal error"
	}
	c.JSON(status, body)
}
