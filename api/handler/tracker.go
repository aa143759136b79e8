package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/studybuddy/backend/api/transport"
	"github.com/studybuddy/backend/pkg/httpcontext"
	trackerUC "github.com/studybuddy/backend/usecase/tracker"
)

type TrackerHandler struct {
	baseHandler
	uc *trackerUC.UseCase
}

func NewTrackerHandler(uc *trackerUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TrackerHandler {
	return &TrackerHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Start or resume a task timer
// @Tags tracker
// @Router /api/v1/tracker/start [post]
func (h *TrackerHandler) Start(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.TimerStartRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.TaskID == "" {
		h.badRequest(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	status, err := h.uc.Start(stdCtx, userID, req.TaskID, req.Title, req.EstimatedMinutes)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, status)
}

// @Summary Pause a running timer
// @Tags tracker
// @Router /api/v1/tracker/{taskId}/pause [post]
func (h *TrackerHandler) Pause(ctx *fasthttp.RequestCtx) {
	h.withTimer(ctx, h.uc.Pause)
}

// @Summary Stop a timer and record the tracked time
// @Tags tracker
// @Router /api/v1/tracker/{taskId}/stop [post]
func (h *TrackerHandler) Stop(ctx *fasthttp.RequestCtx) {
	h.withTimer(ctx, h.uc.Stop)
}

// @Summary Poll timer state and drain overrun alerts
// @Tags tracker
// @Router /api/v1/tracker/{taskId} [get]
func (h *TrackerHandler) Status(ctx *fasthttp.RequestCtx) {
	h.withTimer(ctx, h.uc.Status)
}

func (h *TrackerHandler) withTimer(ctx *fasthttp.RequestCtx, op func(stdCtx context.Context, userID, taskID string) (*trackerUC.Status, error)) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	taskID, _ := ctx.UserValue("taskId").(string)
	if taskID == "" {
		h.badRequest(ctx, "missing task id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	status, err := op(stdCtx, userID, taskID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, status)
}
