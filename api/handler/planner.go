package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/studybuddy/backend/api/transport"
	"github.com/studybuddy/backend/domain"
	"github.com/studybuddy/backend/pkg/httpcontext"
	studyplanUC "github.com/studybuddy/backend/usecase/studyplan"
)

// PlannerHandler serves the derived task views: lists, the calendar grid,
// suggestion cards and dashboard stats.
type PlannerHandler struct {
	baseHandler
	uc *studyplanUC.UseCase
}

func NewPlannerHandler(uc *studyplanUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *PlannerHandler {
	return &PlannerHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List tasks in planner order
// @Tags planner
// @Router /api/v1/planner/tasks [get]
func (h *PlannerHandler) GetTasks(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	var (
		tasks []domain.Task
		err   error
	)
	switch string(ctx.QueryArgs().Peek("view")) {
	case "today":
		tasks, err = h.uc.TodayTasks(stdCtx, userID)
	case "pending":
		tasks, err = h.uc.PendingTasks(stdCtx, userID)
	case "completed":
		tasks, err = h.uc.CompletedTasks(stdCtx, userID)
	default:
		tasks, err = h.uc.Tasks(stdCtx, userID)
	}
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, tasks)
}

// @Summary Month calendar grid
// @Tags planner
// @Router /api/v1/planner/calendar [get]
func (h *PlannerHandler) GetCalendar(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	reference := parseDate(string(ctx.QueryArgs().Peek("month")))
	selected := parseDate(string(ctx.QueryArgs().Peek("selected")))

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	cells, err := h.uc.Calendar(stdCtx, userID, reference, selected)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, cells)
}

// @Summary Smart study suggestions
// @Tags planner
// @Router /api/v1/planner/suggestions [get]
func (h *PlannerHandler) GetSuggestions(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	suggestions, err := h.uc.Suggestions(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, suggestions)
}

// @Summary Promote a suggestion into a study session
// @Tags planner
// @Router /api/v1/planner/suggestions/accept [post]
func (h *PlannerHandler) AcceptSuggestion(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.SuggestionAcceptRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Title == "" {
		h.badRequest(ctx, "invalid payload")
		return
	}

	suggestion := domain.Suggestion{
		ID:               req.ID,
		Title:            req.Title,
		Type:             domain.SuggestionType(req.Type),
		Priority:         domain.Priority(req.Priority),
		EstimatedMinutes: req.EstimatedMinutes,
		Reason:           req.Reason,
		Subject:          req.Subject,
	}
	if req.ExamDate != "" {
		if parsed, err := time.Parse(time.RFC3339, req.ExamDate); err == nil {
			suggestion.ExamDate = &parsed
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.AcceptSuggestion(stdCtx, userID, suggestion)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Dashboard quick stats
// @Tags planner
// @Router /api/v1/planner/stats [get]
func (h *PlannerHandler) GetStats(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	stats, err := h.uc.Stats(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, stats)
}

func parseDate(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "2006-01"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
