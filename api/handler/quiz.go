package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/studybuddy/backend/api/transport"
	"github.com/studybuddy/backend/pkg/httpcontext"
	quizUC "github.com/studybuddy/backend/usecase/quiz"
)

type QuizHandler struct {
	baseHandler
	uc *quizUC.UseCase
}

func NewQuizHandler(uc *quizUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *QuizHandler {
	return &QuizHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Generate an AI quiz
// @Tags quiz
// @Router /api/v1/quiz/generate [post]
func (h *QuizHandler) Generate(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.QuizGenerateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Category == "" {
		h.badRequest(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	questions, err := h.uc.Generate(stdCtx, userID, req.Category, req.Difficulty, req.QuestionCount)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, questions)
}

// @Summary Submit quiz answers
// @Tags quiz
// @Router /api/v1/quiz/complete [post]
func (h *QuizHandler) Complete(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.QuizCompleteRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || len(req.Questions) == 0 {
		h.badRequest(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.uc.Complete(stdCtx, userID, req.Category, req.Difficulty, req.Questions, req.Answers, req.TotalSeconds, req.QuestionTimes)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, result)
}
