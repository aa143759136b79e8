package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/studybuddy/backend/api/transport"
	"github.com/studybuddy/backend/domain"
	"github.com/studybuddy/backend/pkg/httpcontext"
	"github.com/studybuddy/backend/repository"
)

type ExamHandler struct {
	baseHandler
	exams repository.ExamRepository
}

func NewExamHandler(exams repository.ExamRepository, adapter *httpcontext.Adapter, logger *zap.Logger) *ExamHandler {
	return &ExamHandler{
		baseHandler: newBaseHandler(adapter, logger),
		exams:       exams,
	}
}

// @Summary List upcoming exams
// @Tags exams
// @Router /api/v1/exams [get]
func (h *ExamHandler) ListExams(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	limit := parseInt(string(ctx.QueryArgs().Peek("limit")), 20)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	exams, err := h.exams.ListUpcoming(stdCtx, userID, time.Now(), limit)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, exams)
}

// @Summary Add an upcoming exam
// @Tags exams
// @Router /api/v1/exams [post]
func (h *ExamHandler) CreateExam(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.ExamCreateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Title == "" {
		h.badRequest(ctx, "invalid payload")
		return
	}

	date, err := parseExamDate(req.Date)
	if err != nil {
		h.badRequest(ctx, "invalid exam date")
		return
	}

	exam := &domain.Exam{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     req.Title,
		Subject:   req.Subject,
		Date:      date,
		Weightage: req.Weightage,
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.exams.Create(stdCtx, exam)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Remove an exam
// @Tags exams
// @Router /api/v1/exams/{id} [delete]
func (h *ExamHandler) DeleteExam(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.badRequest(ctx, "missing exam id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.exams.Delete(stdCtx, id, userID); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

func parseExamDate(value string) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", value)
}
