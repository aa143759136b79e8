package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/studybuddy/backend/pkg/httpcontext"
	exportUC "github.com/studybuddy/backend/usecase/export"
)

type ExportHandler struct {
	baseHandler
	uc *exportUC.UseCase
}

func NewExportHandler(uc *exportUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Export all account data
// @Tags export
// @Router /api/v1/export [get]
func (h *ExportHandler) Export(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	snapshot, err := h.uc.Snapshot(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	ctx.Response.Header.Set("Content-Disposition", `attachment; filename="study-buddy-export.json"`)
	h.respondSuccess(ctx, http.StatusOK, snapshot)
}
