package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/stridelog/backend/internal/services"
	"github.com/stridelog/backend/pkg/httpcontext"
)

type SystemHandler struct {
	baseHandler
	reconciler *services.Reconciler
}

func NewSystemHandler(reconciler *services.Reconciler, adapter *httpcontext.Adapter, logger *zap.Logger) *SystemHandler {
	return &SystemHandler{
		baseHandler: newBaseHandler(adapter, logger),
		reconciler:  reconciler,
	}
}

// @Summary Wake sweep
// @Tags system
// @Router /api/v1/system/wake [post]
//
// Clients call this after the host resumes from sleep so cached days and
// statuses catch up immediately instead of waiting for the next scheduled run.
func (h *SystemHandler) Wake(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.reconciler.RunOnce(stdCtx); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{
		"sweptAt": h.reconciler.LastRun().UTC().Format(time.RFC3339),
	})
}
