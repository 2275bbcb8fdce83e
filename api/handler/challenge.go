package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/stridelog/backend/api/transport"
	"github.com/stridelog/backend/domain"
	"github.com/stridelog/backend/pkg/httpcontext"
	challengeUC "github.com/stridelog/backend/usecase/challenge"
	commitmentUC "github.com/stridelog/backend/usecase/commitment"
)

type ChallengeHandler struct {
	baseHandler
	uc         *challengeUC.UseCase
	commitment *commitmentUC.UseCase
}

func NewChallengeHandler(uc *challengeUC.UseCase, commitment *commitmentUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ChallengeHandler {
	return &ChallengeHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
		commitment:  commitment,
	}
}

// @Summary List challenges
// @Tags challenges
// @Router /api/v1/challenges [get]
func (h *ChallengeHandler) List(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	challenges, err := h.uc.List(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, challenges)
}

// @Summary Get challenge
// @Tags challenges
// @Router /api/v1/challenges/{id} [get]
func (h *ChallengeHandler) Get(ctx *fasthttp.RequestCtx) {
	id := h.pathParam(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing challenge id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	challenge, err := h.uc.Get(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, challenge)
}

// @Summary Get active challenge
// @Tags challenges
// @Router /api/v1/challenges/active [get]
func (h *ChallengeHandler) Active(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	challenge, err := h.uc.Active(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, challenge)
}

// @Summary Create challenge
// @Tags challenges
// @Router /api/v1/challenges [post]
func (h *ChallengeHandler) Create(ctx *fasthttp.RequestCtx) {
	var req transport.ChallengeRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	tasks := make([]domain.Task, 0, len(req.Tasks))
	for _, t := range req.Tasks {
		tasks = append(tasks, domain.Task{
			Name:              t.Name,
			Category:          domain.TaskCategory(t.Category),
			Time:              t.Time,
			Description:       t.Description,
			Priority:          domain.TaskPriority(t.Priority),
			EstimatedDuration: t.EstimatedDuration,
		})
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.Create(stdCtx, challengeUC.CreateInput{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		TotalDays:   req.TotalDays,
		Status:      domain.Status(req.Status),
		Rules:       req.Rules,
		Tasks:       tasks,
		Color:       req.Color,
		Icon:        req.Icon,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update challenge
// @Tags challenges
// @Router /api/v1/challenges/{id} [put]
func (h *ChallengeHandler) Update(ctx *fasthttp.RequestCtx) {
	id := h.pathParam(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing challenge id")
		return
	}

	var req transport.ChallengeUpdateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	patch := challengeUC.UpdateInput{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		TotalDays:   req.TotalDays,
		Rules:       req.Rules,
		Color:       req.Color,
		Icon:        req.Icon,
	}
	if req.Status != nil {
		status := domain.Status(*req.Status)
		patch.Status = &status
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.Update(stdCtx, id, patch)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete challenge
// @Tags challenges
// @Router /api/v1/challenges/{id} [delete]
func (h *ChallengeHandler) Delete(ctx *fasthttp.RequestCtx) {
	id := h.pathParam(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing challenge id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Delete(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Activate challenge
// @Tags challenges
// @Router /api/v1/challenges/{id}/activate [post]
func (h *ChallengeHandler) Activate(ctx *fasthttp.RequestCtx) {
	id := h.pathParam(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing challenge id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	challenge, err := h.uc.SetActive(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, challenge)
}

// @Summary Pause challenge
// @Tags challenges
// @Router /api/v1/challenges/{id}/pause [post]
func (h *ChallengeHandler) Pause(ctx *fasthttp.RequestCtx) {
	id := h.pathParam(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing challenge id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	challenge, err := h.uc.Pause(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, challenge)
}

// @Summary Reconcile challenge
// @Tags challenges
// @Router /api/v1/challenges/{id}/reconcile [post]
func (h *ChallengeHandler) Reconcile(ctx *fasthttp.RequestCtx) {
	id := h.pathParam(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing challenge id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	challenge, err := h.uc.Reconcile(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, challenge)
}

// @Summary Add task
// @Tags challenges
// @Router /api/v1/challenges/{id}/tasks [post]
func (h *ChallengeHandler) AddTask(ctx *fasthttp.RequestCtx) {
	id := h.pathParam(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing challenge id")
		return
	}

	var req transport.TaskRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	challenge, err := h.uc.AddTask(stdCtx, id, domain.Task{
		Name:              req.Name,
		Category:          domain.TaskCategory(req.Category),
		Time:              req.Time,
		Description:       req.Description,
		Priority:          domain.TaskPriority(req.Priority),
		EstimatedDuration: req.EstimatedDuration,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, challenge)
}

// @Summary Update task
// @Tags challenges
// @Router /api/v1/challenges/{id}/tasks/{taskId} [put]
func (h *ChallengeHandler) UpdateTask(ctx *fasthttp.RequestCtx) {
	id := h.pathParam(ctx, "id")
	taskID := h.pathParam(ctx, "taskId")
	if id == "" || taskID == "" {
		h.respondInvalid(ctx, "missing challenge or task id")
		return
	}

	var req transport.TaskUpdateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	patch := challengeUC.TaskUpdate{
		Name:              req.Name,
		Time:              req.Time,
		Description:       req.Description,
		EstimatedDuration: req.EstimatedDuration,
		Completed:         req.Completed,
	}
	if req.Category != nil {
		category := domain.TaskCategory(*req.Category)
		patch.Category = &category
	}
	if req.Priority != nil {
		priority := domain.TaskPriority(*req.Priority)
		patch.Priority = &priority
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	challenge, err := h.uc.UpdateTask(stdCtx, id, taskID, patch)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, challenge)
}

// @Summary Delete task
// @Tags challenges
// @Router /api/v1/challenges/{id}/tasks/{taskId} [delete]
func (h *ChallengeHandler) DeleteTask(ctx *fasthttp.RequestCtx) {
	id := h.pathParam(ctx, "id")
	taskID := h.pathParam(ctx, "taskId")
	if id == "" || taskID == "" {
		h.respondInvalid(ctx, "missing challenge or task id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	challenge, err := h.uc.DeleteTask(stdCtx, id, taskID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, challenge)
}

// @Summary Generate commitment letter
// @Tags challenges
// @Router /api/v1/challenges/{id}/commitment [post]
func (h *ChallengeHandler) Commitment(ctx *fasthttp.RequestCtx) {
	id := h.pathParam(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing challenge id")
		return
	}

	var req transport.CommitmentRequest
	if body := ctx.PostBody(); len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			h.respondInvalid(ctx, "invalid payload")
			return
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	letter, err := h.commitment.Generate(stdCtx, id, req.WitnessName)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, letter)
}
