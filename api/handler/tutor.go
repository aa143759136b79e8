package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/studybuddy/backend/api/transport"
	"github.com/studybuddy/backend/pkg/httpcontext"
	tutorUC "github.com/studybuddy/backend/usecase/tutor"
)

type TutorHandler struct {
	baseHandler
	uc *tutorUC.UseCase
}

func NewTutorHandler(uc *tutorUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TutorHandler {
	return &TutorHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Send a message to the AI tutor
// @Tags tutor
// @Router /api/v1/tutor/chat [post]
func (h *TutorHandler) Chat(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.ChatRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Message == "" {
		h.badRequest(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	reply, err := h.uc.Send(stdCtx, userID, req.SessionID, req.Message)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, reply)
}

// @Summary Conversation history for a chat session
// @Tags tutor
// @Router /api/v1/tutor/history/{sessionId} [get]
func (h *TutorHandler) History(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	sessionID, _ := ctx.UserValue("sessionId").(string)
	if sessionID == "" {
		h.badRequest(ctx, "missing session id")
		return
	}

	limit := parseInt(string(ctx.QueryArgs().Peek("limit")), 100)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	history, err := h.uc.History(stdCtx, userID, sessionID, limit)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, history)
}
