package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/studybuddy/backend/api/transport"
	"github.com/studybuddy/backend/domain"
	"github.com/studybuddy/backend/pkg/httpcontext"
	"github.com/studybuddy/backend/repository"
	studyplanUC "github.com/studybuddy/backend/usecase/studyplan"
)

type StudyHandler struct {
	baseHandler
	uc *studyplanUC.UseCase
}

func NewStudyHandler(uc *studyplanUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *StudyHandler {
	return &StudyHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List study sessions
// @Tags sessions
// @Router /api/v1/sessions [get]
func (h *StudyHandler) ListSessions(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	filter := repository.StudySessionFilter{
		UserID:      userID,
		SessionType: string(ctx.QueryArgs().Peek("type")),
		Limit:       parseInt(string(ctx.QueryArgs().Peek("limit")), 50),
		Offset:      parseInt(string(ctx.QueryArgs().Peek("offset")), 0),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	sessions, err := h.uc.ListSessions(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, sessions)
}

// @Summary Get a study session
// @Tags sessions
// @Router /api/v1/sessions/{id} [get]
func (h *StudyHandler) GetSession(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	id, ok := h.sessionID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	session, err := h.uc.GetSession(stdCtx, id, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, session)
}

// @Summary Create a study session
// @Tags sessions
// @Router /api/v1/sessions [post]
func (h *StudyHandler) CreateSession(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.SessionCreateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.badRequest(ctx, "invalid payload")
		return
	}

	session := &domain.StudySession{
		UserID:          userID,
		Topic:           req.Topic,
		DurationMinutes: req.DurationMinutes,
		SessionType:     req.SessionType,
	}
	if req.Topic == "" {
		session.Topic = req.Title
	}
	setIfPresent(session, domain.ContentTitle, req.Title)
	setIfPresent(session, domain.ContentDescription, req.Description)
	setIfPresent(session, domain.ContentStatus, req.Status)
	setIfPresent(session, domain.ContentPriority, req.Priority)
	setIfPresent(session, domain.ContentDueDate, req.DueDate)
	setIfPresent(session, domain.ContentSubject, req.Subject)
	setIfPresent(session, domain.ContentNotes, req.Notes)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateSession(stdCtx, session)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Patch a study session
// @Tags sessions
// @Router /api/v1/sessions/{id} [patch]
func (h *StudyHandler) UpdateSession(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	id, ok := h.sessionID(ctx)
	if !ok {
		return
	}

	var req transport.SessionUpdateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.badRequest(ctx, "invalid payload")
		return
	}

	content := make(map[string]any)
	patchField(content, domain.ContentTitle, req.Title)
	patchField(content, domain.ContentDescription, req.Description)
	patchField(content, domain.ContentStatus, req.Status)
	patchField(content, domain.ContentPriority, req.Priority)
	patchField(content, domain.ContentDueDate, req.DueDate)
	patchField(content, domain.ContentSubject, req.Subject)
	patchField(content, domain.ContentNotes, req.Notes)
	if len(content) == 0 {
		h.badRequest(ctx, "empty patch")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.UpdateSession(stdCtx, id, userID, content); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}

// @Summary Delete a study session
// @Tags sessions
// @Router /api/v1/sessions/{id} [delete]
func (h *StudyHandler) DeleteSession(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	id, ok := h.sessionID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteSession(stdCtx, id, userID); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Mark a study session completed
// @Tags sessions
// @Router /api/v1/sessions/{id}/complete [post]
func (h *StudyHandler) CompleteSession(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	id, ok := h.sessionID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.MarkCompleted(stdCtx, id, userID); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}

func (h *StudyHandler) sessionID(ctx *fasthttp.RequestCtx) (string, bool) {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.badRequest(ctx, "missing session id")
		return "", false
	}
	return id, true
}

func setIfPresent(session *domain.StudySession, key, value string) {
	if value != "" {
		session.SetContent(key, value)
	}
}

func patchField(content map[string]any, key string, value *string) {
	if value != nil {
		content[key] = *value
	}
}

func parseInt(value string, fallback int) int {
	if v, err := strconv.Atoi(value); err == nil {
		return v
	}
	return fallback
}
