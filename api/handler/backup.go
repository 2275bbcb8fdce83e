package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/stridelog/backend/pkg/httpcontext"
	backupUC "github.com/stridelog/backend/usecase/backup"
)

// Sweeper reconciles all challenges; run after an import so restored records
// reflect today's calendar rather than the exporting machine's.
type Sweeper interface {
	ReconcileAll(ctx context.Context) error
}

type BackupHandler struct {
	baseHandler
	uc      *backupUC.UseCase
	sweeper Sweeper
}

func NewBackupHandler(uc *backupUC.UseCase, sweeper Sweeper, adapter *httpcontext.Adapter, logger *zap.Logger) *BackupHandler {
	return &BackupHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
		sweeper:     sweeper,
	}
}

// @Summary Export all data
// @Tags backup
// @Router /api/v1/export [get]
func (h *BackupHandler) Export(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	doc, err := h.uc.Export(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	// The export is served raw, not wrapped in the response envelope, so the
	// downloaded file feeds straight back into the import endpoint.
	body, err := json.Marshal(doc)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	ctx.Response.Header.SetContentType("application/json")
	ctx.Response.Header.Set("Content-Disposition", `attachment; filename="stridelog-export.json"`)
	ctx.SetStatusCode(http.StatusOK)
	ctx.SetBody(body)
}

// @Summary Import data
// @Tags backup
// @Router /api/v1/import [post]
func (h *BackupHandler) Import(ctx *fasthttp.RequestCtx) {
	var doc backupUC.Document
	if err := json.Unmarshal(ctx.PostBody(), &doc); err != nil {
		h.respondInvalid(ctx, "invalid export document")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Import(stdCtx, &doc); err != nil {
		h.respondError(ctx, err)
		return
	}
	if h.sweeper != nil {
		if err := h.sweeper.ReconcileAll(stdCtx); err != nil {
			h.logger.Warn("post-import reconcile failed", zap.Error(err))
		}
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{
		"challenges":       len(doc.Challenges),
		"dailyProgress":    len(doc.DailyProgress),
		"videoReflections": len(doc.VideoReflections),
	})
}

// @Summary Clear all data
// @Tags backup
// @Router /api/v1/data [delete]
func (h *BackupHandler) Clear(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Clear(stdCtx); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}
