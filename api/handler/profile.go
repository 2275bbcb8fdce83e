package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/stridelog/backend/api/transport"
	"github.com/stridelog/backend/domain"
	"github.com/stridelog/backend/pkg/httpcontext"
	profileUC "github.com/stridelog/backend/usecase/profile"
)

// SettingsListener is notified after new settings are persisted, so reminder
// schedules pick up changed times without a restart.
type SettingsListener interface {
	Refresh(ctx context.Context) error
}

type ProfileHandler struct {
	baseHandler
	uc       *profileUC.UseCase
	listener SettingsListener
}

func NewProfileHandler(uc *profileUC.UseCase, listener SettingsListener, adapter *httpcontext.Adapter, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
		listener:    listener,
	}
}

// @Summary Get settings
// @Tags profile
// @Router /api/v1/settings [get]
func (h *ProfileHandler) GetSettings(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	settings, err := h.uc.Settings(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, settings)
}

// @Summary Save settings
// @Tags profile
// @Router /api/v1/settings [put]
func (h *ProfileHandler) SaveSettings(ctx *fasthttp.RequestCtx) {
	var req transport.SettingsRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	settings := &domain.UserSettings{
		Theme:         req.Theme,
		Notifications: req.Notifications,
		ReminderTimes: req.ReminderTimes,
		Timezone:      req.Timezone,
		Language:      req.Language,
	}
	if err := h.uc.SaveSettings(stdCtx, settings); err != nil {
		h.respondError(ctx, err)
		return
	}
	if h.listener != nil {
		if err := h.listener.Refresh(stdCtx); err != nil {
			h.logger.Warn("reminder refresh failed", zap.Error(err))
		}
	}
	h.respondSuccess(ctx, http.StatusOK, settings)
}

// @Summary Get profile
// @Tags profile
// @Router /api/v1/profile [get]
func (h *ProfileHandler) GetProfile(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	profile, err := h.uc.Profile(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, profile)
}

// @Summary Save profile
// @Tags profile
// @Router /api/v1/profile [put]
func (h *ProfileHandler) SaveProfile(ctx *fasthttp.RequestCtx) {
	var req transport.ProfileRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	profile, err := h.uc.SaveProfile(stdCtx, profileUC.SaveInput{
		Name:      req.Name,
		Email:     req.Email,
		Signature: req.Signature,
		Avatar:    req.Avatar,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, profile)
}
