package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/da-kil/reviewflow/internal/application/service"
	"github.com/da-kil/reviewflow/internal/domain/assignment"
	"github.com/da-kil/reviewflow/internal/domain/entity"
	"github.com/da-kil/reviewflow/internal/domain/workflow"
	"github.com/da-kil/reviewflow/internal/export"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	service  *service.AssignmentService
	exporter *export.AuditExporter
	logger   *zap.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(svc *service.AssignmentService, exporter *export.AuditExporter, logger *zap.Logger) *Handlers {
	return &Handlers{
		service:  svc,
		exporter: exporter,
		logger:   logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// SectionResponse represents per-section progress in API responses
type SectionResponse struct {
	SectionID           string  `json:"section_id"`
	IsEmployeeCompleted bool    `json:"is_employee_completed"`
	IsManagerCompleted  bool    `json:"is_manager_completed"`
	EmployeeCompletedAt *string `json:"employee_completed_at,omitempty"`
	ManagerCompletedAt  *string `json:"manager_completed_at,omitempty"`
}

// AssignmentResponse represents an assignment in API responses
type AssignmentResponse struct {
	ID                    string               `json:"id"`
	TemplateID            string               `json:"template_id"`
	EmployeeID            string               `json:"employee_id"`
	AssignedBy            string               `json:"assigned_by"`
	AssignedAt            string               `json:"assigned_at"`
	DueDate               string               `json:"due_date"`
	RequiresManagerReview bool                 `json:"requires_manager_review"`
	State                 string               `json:"state"`
	Withdrawn             bool                 `json:"withdrawn"`
	WithdrawReason        string               `json:"withdraw_reason,omitempty"`
	Sections              []SectionResponse    `json:"sections"`
	EmployeeSubmittedAt   *string              `json:"employee_submitted_at,omitempty"`
	ManagerSubmittedAt    *string              `json:"manager_submitted_at,omitempty"`
	ReviewStartedAt       *string              `json:"review_started_at,omitempty"`
	ReviewFinishedAt      *string              `json:"review_finished_at,omitempty"`
	ReviewSummary         string               `json:"review_summary,omitempty"`
	EmployeeConfirmedAt   *string              `json:"employee_confirmed_at,omitempty"`
	ManagerConfirmedAt    *string              `json:"manager_confirmed_at,omitempty"`
	FinalizedAt           *string              `json:"finalized_at,omitempty"`
	Goals                 []entity.Goal        `json:"goals,omitempty"`
	Ratings               []entity.GoalRating  `json:"ratings,omitempty"`
	Version               int                  `json:"version"`
}

// TransitionsResponse lists the legal moves from the current state
type TransitionsResponse struct {
	State   string            `json:"state"`
	Forward []string          `json:"forward"`
	Reopen  []ReopenOption    `json:"reopen"`
}

// ReopenOption is one backward transition with the roles allowed to take it
type ReopenOption struct {
	Target string   `json:"target"`
	Roles  []string `json:"roles"`
}

// EventResponse represents one stored event in API responses
type EventResponse struct {
	Version    int    `json:"version"`
	EventID    string `json:"event_id"`
	EventType  string `json:"event_type"`
	OccurredAt string `json:"occurred_at"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// CreateAssignmentRequest is the payload for POST /api/assignments
type CreateAssignmentRequest struct {
	TemplateID            string    `json:"template_id" binding:"required"`
	EmployeeID            string    `json:"employee_id" binding:"required"`
	AssignedBy            string    `json:"assigned_by" binding:"required"`
	DueDate               time.Time `json:"due_date" binding:"required"`
	SectionIDs            []string  `json:"section_ids" binding:"required"`
	RequiresManagerReview bool      `json:"requires_manager_review"`
}

// CreateAssignment handles POST /api/assignments
func (h *Handlers) CreateAssignment(c *gin.Context) {
	var req CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	a, err := h.service.Create(c.Request.Context(), service.CreateParams{
		TemplateID:            req.TemplateID,
		EmployeeID:            req.EmployeeID,
		AssignedBy:            req.AssignedBy,
		DueDate:               req.DueDate,
		SectionIDs:            req.SectionIDs,
		RequiresManagerReview: req.RequiresManagerReview,
	})
	if err != nil {
		h.fail(c, "create assignment", err)
		return
	}

	c.JSON(http.StatusCreated, Response{Success: true, Data: toAssignmentResponse(a)})
}

// GetAssignment handles GET /api/assignments/:id
func (h *Handlers) GetAssignment(c *gin.Context) {
	a, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "get assignment", err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: toAssignmentResponse(a)})
}

// GetHistory handles GET /api/assignments/:id/history
func (h *Handlers) GetHistory(c *gin.Context) {
	history, err := h.service.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "get history", err)
		return
	}

	events := make([]EventResponse, 0, len(history))
	for i, evt := range history {
		events = append(events, EventResponse{
			Version:    i + 1,
			EventID:    evt.EventID(),
			EventType:  evt.EventType().String(),
			OccurredAt: evt.OccurredAt().UTC().Format(time.RFC3339Nano),
		})
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: events})
}

// GetTransitions handles GET /api/assignments/:id/transitions
func (h *Handlers) GetTransitions(c *gin.Context) {
	a, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "get transitions", err)
		return
	}

	resp := TransitionsResponse{
		State:   a.State.String(),
		Forward: []string{},
		Reopen:  []ReopenOption{},
	}
	for _, t := range a.ValidNextStates() {
		resp.Forward = append(resp.Forward, t.Target.String())
	}
	for _, t := range a.ValidReopenStates() {
		roles := make([]string, 0, len(t.AllowedRoles))
		for _, r := range t.AllowedRoles {
			roles = append(roles, r.String())
		}
		resp.Reopen = append(resp.Reopen, ReopenOption{Target: t.Target.String(), Roles: roles})
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: resp})
}

// ExportAssignment handles GET /api/assignments/:id/export
func (h *Handlers) ExportAssignment(c *gin.Context) {
	id := c.Param("id")
	a, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "export assignment", err)
		return
	}
	history, err := h.service.History(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "export assignment", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=assignment-%s.xlsx", id))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := h.exporter.Write(a, history, c.Writer); err != nil {
		h.logger.Error("Export failed", zap.String("assignment_id", id), zap.Error(err))
		c.Status(http.StatusInternalServerError)
	}
}

// RoleRequest is the payload shared by role-scoped commands
type RoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// StartWork handles POST /api/assignments/:id/start
func (h *Handlers) StartWork(c *gin.Context) {
	var req RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	a, err := h.service.StartWork(c.Request.Context(), c.Param("id"), workflow.Role(req.Role))
	h.respond(c, "start work", a, err)
}

// CompleteWork handles POST /api/assignments/:id/complete-work
func (h *Handlers) CompleteWork(c *gin.Context) {
	var req RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	a, err := h.service.CompleteWork(c.Request.Context(), c.Param("id"), workflow.Role(req.Role))
	h.respond(c, "complete work", a, err)
}

// ExtendDueDateRequest is the payload for POST /api/assignments/:id/due-date
type ExtendDueDateRequest struct {
	NewDueDate time.Time `json:"new_due_date" binding:"required"`
	Reason     string    `json:"reason"`
}

// ExtendDueDate handles POST /api/assignments/:id/due-date
func (h *Handlers) ExtendDueDate(c *gin.Context) {
	var req ExtendDueDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	a, err := h.service.ExtendDueDate(c.Request.Context(), c.Param("id"), req.NewDueDate, req.Reason)
	h.respond(c, "extend due date", a, err)
}

// WithdrawRequest is the payload for POST /api/assignments/:id/withdraw
type WithdrawRequest struct {
	WithdrawnBy string `json:"withdrawn_by" binding:"required"`
	Reason      string `json:"reason"`
}

// Withdraw handles POST /api/assignments/:id/withdraw
func (h *Handlers) Withdraw(c *gin.Context) {
	var req WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	a, err := h.service.Withdraw(c.Request.Context(), c.Param("id"), req.WithdrawnBy, req.Reason)
	h.respond(c, "withdraw", a, err)
}

// CompleteSectionsRequest is the payload for POST /api/assignments/:id/sections/complete
type CompleteSectionsRequest struct {
	SectionIDs  []string `json:"section_ids" binding:"required"`
	CompletedBy string   `json:"completed_by" binding:"required"`
	Role        string   `json:"role" binding:"required"`
}

// CompleteSections handles POST /api/assignments/:id/sections/complete
func (h *Handlers) CompleteSections(c *gin.Context) {
	var req CompleteSectionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	a, err := h.service.CompleteSections(c.Request.Context(), c.Param("id"),
		req.SectionIDs, req.CompletedBy, workflow.Role(req.Role))
	h.respond(c, "complete sections", a, err)
}

// CompleteSectionRequest is the payload for POST /api/assignments/:id/sections/:sectionID/complete
type CompleteSectionRequest struct {
	CompletedBy string `json:"completed_by" binding:"required"`
	Role        string `json:"role" binding:"required"`
}

// CompleteSection handles POST /api/assignments/:id/sections/:sectionID/complete
func (h *Handlers) CompleteSection(c *gin.Context) {
	var req CompleteSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	a, err := h.service.CompleteSection(c.Request.Context(), c.Param("id"),
		c.Param("sectionID"), req.CompletedBy, workflow.Role(req.Role))
	h.respond(c, "complete section", a, err)
}

// ActorRequest is the payload shared by commands that only need an actor id
type ActorRequest struct {
	ActorID string `json:"actor_id" binding:"required"`
}

// SubmitEmployee handles POST /api/assignments/:id/submit/employee
func (h *Handlers) SubmitEmployee(c *gin.Context) {
	var req ActorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	a, err := h.service.SubmitEmployee(c.Request.Context(), c.Param("id"), req.ActorID)
	h.respond(c, "submit employee questionnaire", a, err)
}

// SubmitManager handles POST /api/assignments/:id/submit/manager
func (h *Handlers) SubmitManager(c *gin.Context) {
	var req ActorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	a, err := h.service.SubmitManager(c.Request.Context(), c.Param("id"), req.ActorID)
	h.respond(c, "submit manager questionnaire", a, err)
}

// InitiateReview handles POST /api/assignments/:id/review/initiate
func (h *Handlers) InitiateReview(c *gin.Context) {
	var req ActorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	a, err := h.service.InitiateReview(c.Request.Context(), c.Param("id"), req.ActorID)
	h.respond(c, "initiate review", a, err)
}

// EditAnswerRequest is the payload for POST /api/assignments/:id/review/edit
type EditAnswerRequest struct {
	SectionID  string `json:"section_id" binding:"required"`
	QuestionID string `json:"question_id" binding:"required"`
	NewValue   string `json:"new_value"`
	EditedBy   string `json:"edited_by" binding:"required"`
}

// EditAnswerDuringReview handles POST /api/assignments/:id/review/edit
func (h *Handlers) EditAnswerDuringReview(c *gin.Context) {
	var req EditAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	a, err := h.service.EditAnswerDuringReview(c.Request.Context(), c.Param("id"),
		req.SectionID, req.QuestionID, req.NewValue, req.EditedBy)
	h.respond(c, "edit answer during review", a, err)
}

// FinishReviewRequest is the payload for POST /api/assignments/:id/review/finish
type FinishReviewRequest struct {
	Summary    string `json:"summary"`
	FinishedBy string `json:"finished_by" binding:"required"`
}

// FinishReview handles POST /api/assignments/:id/review/finish
func (h *Handlers) FinishReview(c *gin.Context) {
	var req FinishReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	a, err := h.service.FinishReview(c.Request.Context(), c.Param("id"), req.Summary, req.FinishedBy)
	h.respond(c, "finish review", a, err)
}

// ConfirmAsEmployee handles POST /api/assignments/:id/confirm/employee
func (h *Handlers) ConfirmAsEmployee(c *gin.Context) {
	var req ActorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	a, err := h.service.ConfirmAsEmployee(c.Request.Context(), c.Param("id"), req.ActorID)
	h.respond(c, "confirm as employee", a, err)
}

// ConfirmAsManager handles POST /api/assignments/:id/confirm/manager
func (h *Handlers) ConfirmAsManager(c *gin.Context) {
	var req ActorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	a, err := h.service.ConfirmAsManager(c.Request.Context(), c.Param("id"), req.ActorID)
	h.respond(c, "confirm as manager", a, err)
}

// Finalize handles POST /api/assignments/:id/finalize
func (h *Handlers) Finalize(c *gin.Context) {
	var req ActorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	a, err := h.service.Finalize(c.Request.Context(), c.Param("id"), req.ActorID)
	h.respond(c, "finalize", a, err)
}

// ReopenRequest is the payload for POST /api/assignments/:id/reopen
type ReopenRequest struct {
	Target      string `json:"target" binding:"required"`
	Role        string `json:"role" binding:"required"`
	RequestedBy string `json:"requested_by" binding:"required"`
	Reason      string `json:"reason" binding:"required"`
}

// Reopen handles POST /api/assignments/:id/reopen
func (h *Handlers) Reopen(c *gin.Context) {
	var req ReopenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	target := workflow.State(req.Target)
	if !target.IsValid() {
		h.badRequest(c, fmt.Errorf("unknown target state %q", req.Target))
		return
	}
	a, err := h.service.Reopen(c.Request.Context(), c.Param("id"), target,
		workflow.Role(req.Role), req.RequestedBy, req.Reason)
	h.respond(c, "reopen", a, err)
}

// AddGoalRequest is the payload for POST /api/assignments/:id/goals
type AddGoalRequest struct {
	QuestionID        string    `json:"question_id" binding:"required"`
	Role              string    `json:"role" binding:"required"`
	TimeframeFrom     time.Time `json:"timeframe_from" binding:"required"`
	TimeframeTo       time.Time `json:"timeframe_to" binding:"required"`
	Objective         string    `json:"objective" binding:"required"`
	MeasurementMetric string    `json:"measurement_metric" binding:"required"`
	Weighting         float64   `json:"weighting"`
	AddedBy           string    `json:"added_by" binding:"required"`
}

// AddGoal handles POST /api/assignments/:id/goals
func (h *Handlers) AddGoal(c *gin.Context) {
	var req AddGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	goalID, err := h.service.AddGoal(c.Request.Context(), c.Param("id"), service.GoalParams{
		QuestionID:        req.QuestionID,
		AddedByRole:       workflow.Role(req.Role),
		TimeframeFrom:     req.TimeframeFrom,
		TimeframeTo:       req.TimeframeTo,
		Objective:         req.Objective,
		MeasurementMetric: req.MeasurementMetric,
		Weighting:         req.Weighting,
		AddedByEmployeeID: req.AddedBy,
	})
	if err != nil {
		h.fail(c, "add goal", err)
		return
	}
	c.JSON(http.StatusCreated, Response{Success: true, Data: gin.H{"goal_id": goalID}})
}

// ModifyGoalRequest is the payload for goal modifications, changed fields only
type ModifyGoalRequest struct {
	Objective         *string    `json:"objective"`
	MeasurementMetric *string    `json:"measurement_metric"`
	Weighting         *float64   `json:"weighting"`
	TimeframeFrom     *time.Time `json:"timeframe_from"`
	TimeframeTo       *time.Time `json:"timeframe_to"`
	Role              string     `json:"role" binding:"required"`
	ChangeReason      string     `json:"change_reason" binding:"required"`
	ModifiedBy        string     `json:"modified_by" binding:"required"`
}

// ModifyGoal handles POST /api/assignments/:id/goals/:goalID/modifications
func (h *Handlers) ModifyGoal(c *gin.Context) {
	var req ModifyGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	a, err := h.service.ModifyGoal(c.Request.Context(), c.Param("id"), c.Param("goalID"),
		entity.GoalModificationRecord{
			ObjectiveDescription: req.Objective,
			MeasurementMetric:    req.MeasurementMetric,
			WeightingPercentage:  req.Weighting,
			TimeframeFrom:        req.TimeframeFrom,
			TimeframeTo:          req.TimeframeTo,
			ModifiedByRole:       workflow.Role(req.Role),
			ChangeReason:         req.ChangeReason,
			ModifiedByEmployeeID: req.ModifiedBy,
		})
	h.respond(c, "modify goal", a, err)
}

// RateGoalRequest is the payload for POST /api/assignments/:id/ratings
type RateGoalRequest struct {
	SourceAssignmentID string  `json:"source_assignment_id" binding:"required"`
	SourceGoalID       string  `json:"source_goal_id" binding:"required"`
	QuestionID         string  `json:"question_id" binding:"required"`
	Role               string  `json:"role" binding:"required"`
	Degree             float64 `json:"degree_of_achievement"`
	Justification      string  `json:"justification"`
	RatedBy            string  `json:"rated_by" binding:"required"`
}

// RatePredecessorGoal handles POST /api/assignments/:id/ratings
func (h *Handlers) RatePredecessorGoal(c *gin.Context) {
	var req RateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	ratingID, err := h.service.RatePredecessorGoal(c.Request.Context(), c.Param("id"), service.RatingParams{
		SourceAssignmentID: req.SourceAssignmentID,
		SourceGoalID:       req.SourceGoalID,
		QuestionID:         req.QuestionID,
		RatedByRole:        workflow.Role(req.Role),
		Degree:             req.Degree,
		Justification:      req.Justification,
		RatedByEmployeeID:  req.RatedBy,
	})
	if err != nil {
		h.fail(c, "rate predecessor goal", err)
		return
	}
	c.JSON(http.StatusCreated, Response{Success: true, Data: gin.H{"rating_id": ratingID}})
}

// ModifyRatingRequest is the payload for rating modifications, changed fields only
type ModifyRatingRequest struct {
	Degree        *float64 `json:"degree_of_achievement"`
	Justification *string  `json:"justification"`
	Role          string   `json:"role" binding:"required"`
	ChangeReason  string   `json:"change_reason" binding:"required"`
	ModifiedBy    string   `json:"modified_by" binding:"required"`
}

// ModifyRating handles POST /api/assignments/:id/ratings/:ratingID/modifications
func (h *Handlers) ModifyRating(c *gin.Context) {
	var req ModifyRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	a, err := h.service.ModifyRating(c.Request.Context(), c.Param("id"), c.Param("ratingID"),
		entity.GoalRatingModificationRecord{
			DegreeOfAchievement:  req.Degree,
			Justification:        req.Justification,
			ModifiedByRole:       workflow.Role(req.Role),
			ChangeReason:         req.ChangeReason,
			ModifiedByEmployeeID: req.ModifiedBy,
		})
	h.respond(c, "modify rating", a, err)
}

func (h *Handlers) respond(c *gin.Context, action string, a *assignment.Assignment, err error) {
	if err != nil {
		h.fail(c, action, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: toAssignmentResponse(a)})
}

func (h *Handlers) badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, Response{Success: false, Error: err.Error()})
}

func (h *Handlers) fail(c *gin.Context, action string, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("Request failed", zap.String("action", action), zap.Error(err))
	}
	c.JSON(status, Response{Success: false, Error: err.Error()})
}

// toAssignmentResponse converts the aggregate to its API representation
func toAssignmentResponse(a *assignment.Assignment) AssignmentResponse {
	resp := AssignmentResponse{
		ID:                    a.ID,
		TemplateID:            a.TemplateID,
		EmployeeID:            a.EmployeeID,
		AssignedBy:            a.AssignedBy,
		AssignedAt:            a.AssignedAt.UTC().Format(time.RFC3339),
		DueDate:               a.DueDate.UTC().Format(time.RFC3339),
		RequiresManagerReview: a.RequiresManagerReview,
		State:                 a.State.String(),
		Withdrawn:             a.Withdrawn,
		WithdrawReason:        a.WithdrawReason,
		ReviewSummary:         a.ReviewSummary,
		EmployeeSubmittedAt:   formatTime(a.EmployeeSubmittedAt),
		ManagerSubmittedAt:    formatTime(a.ManagerSubmittedAt),
		ReviewStartedAt:       formatTime(a.ReviewStartedAt),
		ReviewFinishedAt:      formatTime(a.ReviewFinishedAt),
		EmployeeConfirmedAt:   formatTime(a.EmployeeConfirmedAt),
		ManagerConfirmedAt:    formatTime(a.ManagerConfirmedAt),
		FinalizedAt:           formatTime(a.FinalizedAt),
		Goals:                 a.Goals,
		Ratings:               a.Ratings,
		Version:               a.Version(),
	}
	resp.Sections = make([]SectionResponse, 0, len(a.Sections))
	for _, s := range a.Sections {
		resp.Sections = append(resp.Sections, SectionResponse{
			SectionID:           s.SectionID,
			IsEmployeeCompleted: s.IsEmployeeCompleted,
			IsManagerCompleted:  s.IsManagerCompleted,
			EmployeeCompletedAt: formatTime(s.EmployeeCompletedAt),
			ManagerCompletedAt:  formatTime(s.ManagerCompletedAt),
		})
	}
	return resp
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
