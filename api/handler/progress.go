package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/stridelog/backend/api/transport"
	"github.com/stridelog/backend/domain"
	"github.com/stridelog/backend/pkg/httpcontext"
	progressUC "github.com/stridelog/backend/usecase/progress"
)

type ProgressHandler struct {
	baseHandler
	uc *progressUC.UseCase
}

func NewProgressHandler(uc *progressUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ProgressHandler {
	return &ProgressHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Record today's progress
// @Tags progress
// @Router /api/v1/challenges/{id}/progress [post]
func (h *ProgressHandler) Record(ctx *fasthttp.RequestCtx) {
	id := h.pathParam(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing challenge id")
		return
	}

	var req transport.ProgressRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	record, err := h.uc.Record(stdCtx, progressUC.RecordInput{
		ChallengeID:    id,
		CompletedTasks: req.CompletedTasks,
		Notes:          req.Notes,
		Mood:           req.Mood,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, record)
}

// @Summary Today's progress
// @Tags progress
// @Router /api/v1/challenges/{id}/progress/today [get]
func (h *ProgressHandler) Today(ctx *fasthttp.RequestCtx) {
	id := h.pathParam(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing challenge id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	record, err := h.uc.Today(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, record)
}

// @Summary Progress history
// @Tags progress
// @Router /api/v1/challenges/{id}/progress [get]
func (h *ProgressHandler) History(ctx *fasthttp.RequestCtx) {
	id := h.pathParam(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing challenge id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	records, err := h.uc.History(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, records)
}

// @Summary Challenge statistics
// @Tags progress
// @Router /api/v1/challenges/{id}/stats [get]
func (h *ProgressHandler) Stats(ctx *fasthttp.RequestCtx) {
	id := h.pathParam(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing challenge id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	stats, err := h.uc.Stats(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, stats)
}

// @Summary Record reflection
// @Tags progress
// @Router /api/v1/challenges/{id}/reflections [post]
func (h *ProgressHandler) AddReflection(ctx *fasthttp.RequestCtx) {
	id := h.pathParam(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing challenge id")
		return
	}

	var req transport.ReflectionRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	questions := make([]domain.ReflectionQuestion, 0, len(req.Questions))
	for _, q := range req.Questions {
		questions = append(questions, domain.ReflectionQuestion{
			Question: q.Question,
			Answer:   q.Answer,
			Type:     domain.QuestionType(q.Type),
		})
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	reflection, err := h.uc.AddReflection(stdCtx, progressUC.ReflectionInput{
		ChallengeID: id,
		Duration:    req.Duration,
		Questions:   questions,
		Notes:       req.Notes,
		Mood:        req.Mood,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, reflection)
}

// @Summary List reflections
// @Tags progress
// @Router /api/v1/challenges/{id}/reflections [get]
func (h *ProgressHandler) Reflections(ctx *fasthttp.RequestCtx) {
	id := h.pathParam(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing challenge id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	reflections, err := h.uc.Reflections(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, reflections)
}
